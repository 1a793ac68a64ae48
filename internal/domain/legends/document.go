// Package legends scans legends exports for tagged record blocks without
// parsing them as XML. Exports are often huge and not always well formed,
// so every lookup is a bounded, non-greedy pattern search.
package legends

import (
	"iter"
	"regexp"
	"strings"
	"sync"
)

var (
	// reInterTag matches whitespace between two adjacent tags.
	reInterTag = regexp.MustCompile(`>\s*<`)
	// reWhitespace matches runs of whitespace inside extracted text.
	reWhitespace = regexp.MustCompile(`\s+`)
)

// Document is a legends export prepared for scanning.
type Document struct {
	text string
}

// NewDocument collapses inter-tag whitespace so record bodies never start
// or end with indentation from the export.
func NewDocument(raw string) *Document {
	return &Document{text: reInterTag.ReplaceAllString(raw, "><")}
}

// Text returns the normalized text.
func (d *Document) Text() string {
	return d.text
}

// Records yields the body of every non-overlapping <tag>...</tag> block in
// source order. Truncated or unmatched trailing blocks yield nothing.
func (d *Document) Records(tag string) iter.Seq[Record] {
	re := blockPattern(tag)
	return func(yield func(Record) bool) {
		rest := d.text
		for {
			loc := re.FindStringSubmatchIndex(rest)
			if loc == nil {
				return
			}
			if !yield(Record(rest[loc[2]:loc[3]])) {
				return
			}
			rest = rest[loc[1]:]
		}
	}
}

// Count returns the number of <tag> records in the document.
func (d *Document) Count(tag string) int {
	n := 0
	for range d.Records(tag) {
		n++
	}
	return n
}

// patterns caches compiled expressions by their source.
var patterns sync.Map

func compile(expr string) *regexp.Regexp {
	if re, ok := patterns.Load(expr); ok {
		return re.(*regexp.Regexp)
	}
	re, _ := patterns.LoadOrStore(expr, regexp.MustCompile(expr))
	return re.(*regexp.Regexp)
}

func blockPattern(tag string) *regexp.Regexp {
	t := regexp.QuoteMeta(tag)
	return compile(`(?s)<` + t + `>(.*?)</` + t + `>`)
}

// Normalize collapses whitespace runs to single spaces and trims the result.
func Normalize(s string) string {
	return strings.TrimSpace(reWhitespace.ReplaceAllString(s, " "))
}
