package main

// Default limits for CLI commands.
const (
	DefaultSearchLimit = 5
	DefaultRunsLimit   = 20
	// DescriptionWidth bounds form descriptions in listings.
	DescriptionWidth = 72
)

// Valid export formats.
var validFormats = []string{"json", "csv", "markdown"}
