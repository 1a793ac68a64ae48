// codex-lint checks the codex for per-item backend calls and for regular
// expressions compiled on every iteration of the scanners.
package main

import (
	"golang.org/x/tools/go/analysis/multichecker"

	"github.com/ersonp/legends-codex/tools/codex-lint/analyzers"
)

func main() {
	multichecker.Main(analyzers.All()...)
}
