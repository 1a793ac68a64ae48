package entities

// Codex is a catalog joined with the personas of its authors. It answers
// the author lookups the anthology needs, falling back from persona to
// name directory to UnknownPoet.
type Codex struct {
	Catalog  *Catalog
	Personas Personas
	// Works holds the catalog works whose form exists, in source order.
	Works []WrittenWork
}

// AuthorName returns the persona name, the directory name, or UnknownPoet.
func (c *Codex) AuthorName(hfid int) string {
	if p, ok := c.Personas.Lookup(hfid); ok && p.Name != "" {
		return p.Name
	}
	return c.Catalog.DirectoryName(hfid)
}

// PersonaPhrase returns the generation persona for an author.
func (c *Codex) PersonaPhrase(hfid int) string {
	if p, ok := c.Personas.Lookup(hfid); ok {
		return p.Phrase
	}
	return DefaultPersona
}

// Bio returns the author's bio summary, or "" when no persona exists.
func (c *Codex) Bio(hfid int) string {
	if p, ok := c.Personas.Lookup(hfid); ok {
		return p.BioSummary
	}
	return ""
}

// FormDescription returns the description of a form, or "" if unknown.
func (c *Codex) FormDescription(formID int) string {
	return c.Catalog.Forms[formID].Description
}

// Contents returns one table of contents entry per resolved work. Authors
// come from the name directory.
func (c *Codex) Contents() []TOCEntry {
	entries := make([]TOCEntry, 0, len(c.Works))
	for i := range c.Works {
		entries = append(entries, TOCEntry{
			Title:  c.Works[i].Title,
			Author: c.Catalog.DirectoryName(c.Works[i].AuthorHFID),
		})
	}
	return entries
}
