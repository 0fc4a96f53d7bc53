package layout

import "iter"

// PageCount returns how many output pages n entries need.
func PageCount(n, cellsPerPage int) int {
	if n <= 0 || cellsPerPage <= 0 {
		return 0
	}
	return (n + cellsPerPage - 1) / cellsPerPage
}

// Paginate yields consecutive slices of at most cellsPerPage entries,
// preserving order. The last slice may be shorter; no entries yield nothing.
func Paginate(entries []PageEntry, cellsPerPage int) iter.Seq[[]PageEntry] {
	return func(yield func([]PageEntry) bool) {
		if cellsPerPage <= 0 {
			return
		}
		for start := 0; start < len(entries); start += cellsPerPage {
			end := min(start+cellsPerPage, len(entries))
			if !yield(entries[start:end:end]) {
				return
			}
		}
	}
}
