package services

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ersonp/legends-codex/internal/domain/entities"
	"github.com/ersonp/legends-codex/internal/domain/legends"
)

// PoeticSkills are the skills summed into a figure's poetry score.
var PoeticSkills = []string{"poetry", "writing", "speaking", "storytelling"}

const (
	// PoetThreshold is the poetry score above which a figure is called a poet.
	PoetThreshold = 500
	// TopSkillThreshold is the proficiency a skill must exceed to rank.
	TopSkillThreshold = 500
	// TopSkillLimit caps the ranked skill list.
	TopSkillLimit = 3
	// DeepBondThreshold is the deity link strength above which a bond is deep.
	DeepBondThreshold = 80
)

// PersonaService derives personas from historical figure records.
type PersonaService struct {
	logger *zap.Logger
}

// NewPersonaService creates a new persona service.
func NewPersonaService(logger *zap.Logger) *PersonaService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PersonaService{logger: logger}
}

// BuildPersonas builds a persona for every historical figure whose id is in
// restrict. Figures outside restrict are not scored at all. The second
// return value counts records in restrict that had no name.
func (s *PersonaService) BuildPersonas(doc *legends.Document, restrict map[int]struct{}) (entities.Personas, int) {
	personas := make(entities.Personas, len(restrict))
	skipped := 0

	for rec := range doc.Records(TagHistoricalFigure) {
		id, ok := rec.Int("id")
		if !ok {
			continue
		}
		if _, wanted := restrict[id]; !wanted {
			continue
		}

		persona, ok := Synthesize(id, rec)
		if !ok {
			skipped++
			s.logger.Debug("skipping nameless figure", zap.Int("hfid", id))
			continue
		}
		personas[id] = persona
	}

	s.logger.Debug("personas built",
		zap.Int("requested", len(restrict)),
		zap.Int("built", len(personas)),
		zap.Int("skipped", skipped))

	return personas, skipped
}

// Synthesize derives the persona of one historical figure record. It
// returns false when the record has no name.
func Synthesize(id int, rec legends.Record) (entities.Persona, bool) {
	name, ok := rec.Text("name")
	if !ok {
		return entities.Persona{}, false
	}

	p := entities.Persona{
		ID:    id,
		Name:  name,
		Race:  TitleRace(rec.TextOr("race", "unknown")),
		Caste: strings.ToLower(rec.TextOr("caste", "unknown")),
	}

	p.BirthYear, _ = rec.SignedInt("birth_year")
	p.DeathYear, _ = rec.SignedInt("death_year")
	p.Lifespan = Lifespan(p.BirthYear, p.DeathYear)

	p.ChildCount = rec.CountOf("link_type", "child")
	p.DeityLink = rec.Has("link_type", "deity")
	p.DeityStrength, _ = rec.LinkedInt("hf_link", "link_type", "deity", "link_strength")

	skills, order := parseSkills(rec)
	p.Skills = skills
	p.PoetryScore = PoetryScore(skills)
	p.TopSkills = TopSkills(skills, order)

	fragments := describe(&p)
	p.BioSummary = strings.Join(fragments, ", ")
	for i := range fragments {
		fragments[i] = strings.ToLower(fragments[i])
	}
	p.Phrase = strings.Join(append([]string{name}, fragments...), ", ")

	return p, true
}

// TitleRace capitalizes every word of a race id. Underscores separate
// words, so "NIGHT_CREATURE_3" becomes "Night_Creature_3".
func TitleRace(race string) string {
	caser := cases.Title(language.Und)
	words := strings.Split(race, "_")
	for i := range words {
		words[i] = caser.String(words[i])
	}
	return strings.Join(words, "_")
}

// Lifespan returns death minus birth when both years are known.
func Lifespan(birth, death *int) *int {
	if birth == nil || death == nil {
		return nil
	}
	years := *death - *birth
	return &years
}

// parseSkills returns the skill map and the names in discovery order. A
// repeated skill keeps its first position but takes the later value.
func parseSkills(rec legends.Record) (map[string]int, []string) {
	pairs := rec.Pairs("hf_skill", "skill", "total_ip")
	skills := make(map[string]int, len(pairs))
	order := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		key := strings.ToLower(pair.Name)
		if _, seen := skills[key]; !seen {
			order = append(order, key)
		}
		skills[key] = pair.Value
	}
	return skills, order
}

// PoetryScore sums the proficiency of PoeticSkills; missing skills count 0.
func PoetryScore(skills map[string]int) int {
	score := 0
	for _, name := range PoeticSkills {
		score += skills[name]
	}
	return score
}

// TopSkills ranks skills above TopSkillThreshold by proficiency, keeping
// discovery order among ties, and returns at most TopSkillLimit names.
func TopSkills(skills map[string]int, order []string) []string {
	ranked := make([]string, 0, len(order))
	for _, name := range order {
		if skills[name] > TopSkillThreshold {
			ranked = append(ranked, name)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return skills[ranked[i]] > skills[ranked[j]]
	})
	if len(ranked) > TopSkillLimit {
		ranked = ranked[:TopSkillLimit]
	}
	return ranked
}

// ParentRole names a parent by caste.
func ParentRole(caste string) string {
	switch caste {
	case "female":
		return "mother"
	case "male":
		return "father"
	default:
		return "parent"
	}
}

// describe returns the bio fragments in their fixed order.
func describe(p *entities.Persona) []string {
	fragments := make([]string, 0, 4)

	if p.PoetryScore > PoetThreshold {
		fragments = append(fragments, fmt.Sprintf("a %s poet", p.Race))
	} else {
		fragments = append(fragments, fmt.Sprintf("a %s", p.Race))
	}

	// Figures still alive carry a death year of -1, which yields a
	// negative span; only positive spans are worth describing.
	if p.Lifespan != nil && *p.Lifespan > 0 {
		fragments = append(fragments, fmt.Sprintf("who lived %d years", *p.Lifespan))
	}

	if p.ChildCount > 0 {
		fragments = append(fragments, fmt.Sprintf("%s of %d children", ParentRole(p.Caste), p.ChildCount))
	}

	if p.DeityLink {
		bond := "tenuously"
		if p.DeityStrength > DeepBondThreshold {
			bond = "deeply"
		}
		fragments = append(fragments, bond+" bound to a deity")
	}

	return fragments
}
