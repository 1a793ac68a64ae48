package legends

import (
	"regexp"
	"strconv"
	"strings"
)

// Record is the body of one record block.
type Record string

// Text returns the normalized content of the first <tag> field.
func (r Record) Text(tag string) (string, bool) {
	m := fieldPattern(tag, `.*?`).FindStringSubmatch(string(r))
	if m == nil {
		return "", false
	}
	return Normalize(m[1]), true
}

// TextOr returns the first <tag> field or def when the field is absent.
func (r Record) TextOr(tag, def string) string {
	if v, ok := r.Text(tag); ok {
		return v
	}
	return def
}

// Int returns the first <tag> field holding a non-negative integer.
func (r Record) Int(tag string) (int, bool) {
	return r.number(tag, `\d+`)
}

// SignedInt returns the first <tag> field holding an integer that may be
// negative, as years before the world's epoch are.
func (r Record) SignedInt(tag string) (*int, bool) {
	n, ok := r.number(tag, `-?\d+`)
	if !ok {
		return nil, false
	}
	return &n, true
}

func (r Record) number(tag, token string) (int, bool) {
	m := fieldPattern(tag, token).FindStringSubmatch(string(r))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// All returns the normalized content of every <tag> field in order.
func (r Record) All(tag string) []string {
	matches := fieldPattern(tag, `.*?`).FindAllStringSubmatch(string(r), -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, Normalize(m[1]))
	}
	return out
}

// Has reports whether the record contains a <tag>value</tag> fragment.
func (r Record) Has(tag, value string) bool {
	return strings.Contains(string(r), fragment(tag, value))
}

// CountOf returns how many <tag>value</tag> fragments the record contains.
func (r Record) CountOf(tag, value string) int {
	return strings.Count(string(r), fragment(tag, value))
}

// LinkedInt finds the first <parent> block whose <keyTag> equals key and
// returns the integer in a following <valueTag>. The search is lazy but
// not confined to one block, so a parent lacking valueTag can borrow the
// value from a later sibling.
func (r Record) LinkedInt(parent, keyTag, key, valueTag string) (int, bool) {
	re := compile(`(?s)<` + regexp.QuoteMeta(parent) + `>.*?` +
		regexp.QuoteMeta(fragment(keyTag, key)) + `.*?<` +
		regexp.QuoteMeta(valueTag) + `>(\d+)</` + regexp.QuoteMeta(valueTag) +
		`>.*?</` + regexp.QuoteMeta(parent) + `>`)
	m := re.FindStringSubmatch(string(r))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Pair is a name/value fragment pair taken from one child block.
type Pair struct {
	Name  string
	Value int
}

// Pairs returns every (<nameTag>, <valueTag>) pair found inside <parent>
// blocks, in source order. Values must be non-negative integers.
func (r Record) Pairs(parent, nameTag, valueTag string) []Pair {
	p, n, v := regexp.QuoteMeta(parent), regexp.QuoteMeta(nameTag), regexp.QuoteMeta(valueTag)
	re := compile(`(?s)<` + p + `>.*?<` + n + `>(.*?)</` + n + `>.*?<` +
		v + `>(\d+)</` + v + `>.*?</` + p + `>`)

	matches := re.FindAllStringSubmatch(string(r), -1)
	pairs := make([]Pair, 0, len(matches))
	for _, m := range matches {
		value, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		pairs = append(pairs, Pair{Name: strings.TrimSpace(m[1]), Value: value})
	}
	return pairs
}

func fieldPattern(tag, token string) *regexp.Regexp {
	t := regexp.QuoteMeta(tag)
	return compile(`(?s)<` + t + `>(` + token + `)</` + t + `>`)
}

func fragment(tag, value string) string {
	return "<" + tag + ">" + value + "</" + tag + ">"
}
