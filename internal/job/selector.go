package job

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kozaktomas/slide-sheets/internal/layout"
)

// resolveSelector expands one page selector:
//
//	blank          an empty spacer page
//	lined          a ruled spacer page
//	deck           every page of document deck
//	deck:*         the same
//	deck:1-4,7,9-  pages 1 to 4, 7, and 9 to the end (1-based)
func resolveSelector(sel string, known map[string]bool, pages PageCounter) ([]layout.PageEntry, error) {
	sel = strings.TrimSpace(sel)
	switch sel {
	case "":
		return nil, fmt.Errorf("empty selector")
	case "blank":
		return []layout.PageEntry{layout.BlankEntry(false)}, nil
	case "lined":
		return []layout.PageEntry{layout.BlankEntry(true)}, nil
	}

	id, ranges, hasRanges := strings.Cut(sel, ":")
	if !known[id] {
		return nil, fmt.Errorf("unknown document %q", id)
	}
	n := pages.PageCount(id)
	if n == 0 {
		return nil, fmt.Errorf("document %q has no decoded pages", id)
	}
	if !hasRanges || strings.TrimSpace(ranges) == "*" {
		return pageRange(id, 1, n), nil
	}

	var out []layout.PageEntry
	for part := range strings.SplitSeq(ranges, ",") {
		from, to, err := parseRange(strings.TrimSpace(part), n)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", sel, err)
		}
		out = append(out, pageRange(id, from, to)...)
	}
	return out, nil
}

// parseRange parses "3", "2-5" or "4-" against a document of n pages.
func parseRange(s string, n int) (int, int, error) {
	if s == "" {
		return 0, 0, fmt.Errorf("empty page range")
	}
	lo, hi, isRange := strings.Cut(s, "-")
	from, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid page %q", lo)
	}
	to := from
	if isRange {
		hi = strings.TrimSpace(hi)
		if hi == "" {
			to = n
		} else if to, err = strconv.Atoi(hi); err != nil {
			return 0, 0, fmt.Errorf("invalid page %q", hi)
		}
	}
	switch {
	case from < 1 || to < 1:
		return 0, 0, fmt.Errorf("pages start at 1")
	case from > n || to > n:
		return 0, 0, fmt.Errorf("page range %s exceeds %d pages", s, n)
	case from > to:
		return 0, 0, fmt.Errorf("page range %s is reversed", s)
	}
	return from, to, nil
}

func pageRange(id string, from, to int) []layout.PageEntry {
	out := make([]layout.PageEntry, 0, to-from+1)
	for p := from; p <= to; p++ {
		out = append(out, layout.RealEntry(id, p-1))
	}
	return out
}
