package entities

// FormTypePoem is the only written-content category kept in the catalog.
const FormTypePoem = "poem"

// WrittenWork is a written content record whose category is a poem.
type WrittenWork struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	AuthorHFID int    `json:"author_hfid"`
	FormID     int    `json:"form_id"`
	FormType   string `json:"form_type"`
}
