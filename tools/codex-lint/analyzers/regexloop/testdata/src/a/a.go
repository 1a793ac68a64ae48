package a

import (
	"regexp"
	"sync"
)

func badField(records []string) {
	for _, rec := range records {
		re := regexp.MustCompile(`<id>(\d+)</id>`) // want "regexp.MustCompile compiles inside loop"
		_ = re.FindStringSubmatch(rec)
	}
}

func badMatch(records []string) int {
	n := 0
	for _, rec := range records {
		if ok, _ := regexp.MatchString(`<form>poem</form>`, rec); ok { // want "regexp.MatchString compiles inside loop"
			n++
		}
	}
	return n
}

var poemForm = regexp.MustCompile(`<form>poem</form>`)

func goodGlobal(records []string) int {
	n := 0
	for _, rec := range records {
		if poemForm.MatchString(rec) {
			n++
		}
	}
	return n
}

var patterns sync.Map

func cached(expr string) *regexp.Regexp {
	if re, ok := patterns.Load(expr); ok {
		return re.(*regexp.Regexp)
	}
	re, _ := patterns.LoadOrStore(expr, regexp.MustCompile(expr))
	return re.(*regexp.Regexp)
}

func goodCached(records []string) {
	for _, rec := range records {
		_ = cached(`<id>(\d+)</id>`).FindStringSubmatch(rec)
	}
}
