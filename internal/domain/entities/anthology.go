package entities

import "time"

// Poem is one generated piece of the anthology, in source position.
type Poem struct {
	Position int    `json:"position"`
	WorkID   int    `json:"work_id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Bio      string `json:"bio,omitempty"`
	FormID   int    `json:"form_id"`
	FormType string `json:"form_type"`
	Text     string `json:"text"`
	Failed   bool   `json:"failed"`
}

// TOCEntry is one line of the anthology's table of contents.
type TOCEntry struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

// Anthology is a compiled codex ready to be written out.
type Anthology struct {
	World    string     `json:"world"`
	Contents []TOCEntry `json:"contents"`
	Poems    []Poem     `json:"poems"`
	Stats    ScanStats  `json:"stats"`
}

// Failures returns how many poems hold a failure placeholder.
func (a *Anthology) Failures() int {
	n := 0
	for i := range a.Poems {
		if a.Poems[i].Failed {
			n++
		}
	}
	return n
}

// Run is an archived anthology build.
type Run struct {
	ID         string    `json:"id"`
	World      string    `json:"world"`
	SourcePath string    `json:"source_path"`
	Model      string    `json:"model"`
	OutputPath string    `json:"output_path"`
	PoemCount  int       `json:"poem_count"`
	Failures   int       `json:"failures"`
	CreatedAt  time.Time `json:"created_at"`
	Poems      []Poem    `json:"poems,omitempty"`
}
