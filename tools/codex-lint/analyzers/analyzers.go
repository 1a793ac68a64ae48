// Package analyzers lists the codex-lint analyzers.
package analyzers

import (
	"golang.org/x/tools/go/analysis"

	"github.com/ersonp/legends-codex/tools/codex-lint/analyzers/loopcall"
	"github.com/ersonp/legends-codex/tools/codex-lint/analyzers/regexloop"
)

// All returns all analyzers to run.
func All() []*analysis.Analyzer {
	return []*analysis.Analyzer{
		loopcall.Analyzer,
		regexloop.Analyzer,
	}
}
