package entities

// ScanStats counts what the builders dropped while scanning a source.
type ScanStats struct {
	FormsSkipped    int `json:"forms_skipped"`
	WorksSkipped    int `json:"works_skipped"`
	WorksFiltered   int `json:"works_filtered"`
	NamesSkipped    int `json:"names_skipped"`
	PersonasSkipped int `json:"personas_skipped"`
	DanglingForms   int `json:"dangling_forms"`
}

// Catalog holds everything the entity builders recovered from one source.
type Catalog struct {
	Forms map[int]PoeticForm
	Works []WrittenWork
	Names map[int]string
	Stats ScanStats
}

// AuthorIDs returns the distinct author ids of the catalog's works.
func (c *Catalog) AuthorIDs() map[int]struct{} {
	ids := make(map[int]struct{}, len(c.Works))
	for i := range c.Works {
		ids[c.Works[i].AuthorHFID] = struct{}{}
	}
	return ids
}

// Resolve returns the works whose form exists in the catalog, in source
// order, together with the number of works dropped for a dangling form.
func (c *Catalog) Resolve() ([]WrittenWork, int) {
	resolved := make([]WrittenWork, 0, len(c.Works))
	dangling := 0
	for i := range c.Works {
		if _, ok := c.Forms[c.Works[i].FormID]; !ok {
			dangling++
			continue
		}
		resolved = append(resolved, c.Works[i])
	}
	return resolved, dangling
}

// DirectoryName returns the display name from the name directory.
func (c *Catalog) DirectoryName(hfid int) string {
	if name, ok := c.Names[hfid]; ok && name != "" {
		return name
	}
	return UnknownPoet
}
