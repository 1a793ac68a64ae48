package entities

// Default author labels used when no persona or name is known.
const (
	UnknownPoet    = "An Unknown Poet"
	DefaultPersona = "A poet from the worlds of Dwarf Fortress"
)

// Persona is the biographical descriptor built for one historical figure.
type Persona struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Race  string `json:"race"`
	Caste string `json:"caste"`

	// BirthYear, DeathYear and Lifespan are nil when the source omits them.
	BirthYear *int `json:"birth_year,omitempty"`
	DeathYear *int `json:"death_year,omitempty"`
	Lifespan  *int `json:"lifespan,omitempty"`

	ChildCount int `json:"child_count"`

	// DeityLink and DeityStrength are derived independently and may
	// disagree: a deity link without a strength sub-field has strength 0.
	DeityLink     bool `json:"deity_link"`
	DeityStrength int  `json:"deity_strength"`

	Skills      map[string]int `json:"skills"`
	PoetryScore int            `json:"poetry_score"`
	TopSkills   []string       `json:"top_skills"`

	BioSummary string `json:"bio_summary"`
	Phrase     string `json:"persona"`
}

// Personas maps historical figure ids to their personas.
type Personas map[int]Persona

// Lookup returns the persona for id, if one was built.
func (p Personas) Lookup(id int) (Persona, bool) {
	persona, ok := p[id]
	return persona, ok
}
