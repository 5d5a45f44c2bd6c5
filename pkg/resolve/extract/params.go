package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	pageListRe   = regexp.MustCompile(`\b(\d+(?:\s*-\s*\d+)?(?:\s*,\s*\d+(?:\s*-\s*\d+)?)*)\b`)
	sizeRe       = regexp.MustCompile(`\b(\d+)\s*(kb|mb)\b`)
	percentRe    = regexp.MustCompile(`\b(\d+)\s*%`)
	degreesRe    = regexp.MustCompile(`\b(-?\d+)\s*degrees?\b`)
	rotateNumRe  = regexp.MustCompile(`\brotate\s+(-?\d+)\b`)
	orderListRe  = regexp.MustCompile(`\b\d+(?:\s*,\s*\d+)+\b`)
	rangeTokenRe = regexp.MustCompile(`^(\d+)\s*-\s*(\d+)$`)
)

// ParsePages parses "2,4-6" style page expressions into a deduplicated,
// ascending, 1-indexed list.
func ParsePages(expr string) ([]int, error) {
	seen := map[int]bool{}
	for _, tok := range strings.Split(expr, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if m := rangeTokenRe.FindStringSubmatch(tok); m != nil {
			lo, _ := strconv.Atoi(m[1])
			hi, _ := strconv.Atoi(m[2])
			if lo < 1 || hi < lo {
				return nil, fmt.Errorf("bad page range %q", tok)
			}
			for p := lo; p <= hi; p++ {
				seen[p] = true
			}
			continue
		}
		p, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("bad page token %q", tok)
		}
		if p < 1 {
			return nil, fmt.Errorf("pages are 1-indexed, got %d", p)
		}
		seen[p] = true
	}
	if len(seen) == 0 {
		return nil, fmt.Errorf("no pages in %q", expr)
	}
	pages := make([]int, 0, len(seen))
	for p := range seen {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages, nil
}

// parseTargetMB finds an explicit "N kb"/"N mb" size in the text and
// normalizes it to whole megabytes, rounding kilobytes up to at least 1.
func parseTargetMB(text string) (int, bool) {
	m := sizeRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 0, false
	}
	if m[2] == "kb" {
		mb := (n + 1023) / 1024
		if mb < 1 {
			mb = 1
		}
		return mb, true
	}
	return n, true
}

// parseDegrees finds an explicit rotation amount, from either "N degrees"
// or "rotate N".
func parseDegrees(text string) (int, bool) {
	if m := degreesRe.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return n, true
		}
	}
	if m := rotateNumRe.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return n, true
		}
	}
	return 0, false
}

// pagesAfter extracts a page list that follows a "page"/"pages" keyword
// anywhere in the text.
var pagesKeywordRe = regexp.MustCompile(`\bpages?\s+(\d+(?:\s*-\s*\d+)?(?:\s*,\s*\d+(?:\s*-\s*\d+)?)*)`)

func pagesAfterKeyword(text string) ([]int, bool) {
	m := pagesKeywordRe.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	pages, err := ParsePages(m[1])
	if err != nil {
		return nil, false
	}
	return pages, true
}
