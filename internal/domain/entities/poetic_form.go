// Package entities contains core domain data structures.
package entities

// PoeticForm is a poetic form recovered from a legends export.
type PoeticForm struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}
