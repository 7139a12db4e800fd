package stats

import "sort"

// CharCount pairs a character with an occurrence count.
type CharCount struct {
	Char  rune
	Count int
}

// TopMistyped returns the n most frequently mistyped characters.
func TopMistyped(counts map[rune]int, n int) []CharCount {
	if n <= 0 || len(counts) == 0 {
		return nil
	}
	items := make([]CharCount, 0, len(counts))
	for ch, count := range counts {
		items = append(items, CharCount{Char: ch, Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Char < items[j].Char
		}
		return items[i].Count > items[j].Count
	})
	return items[:min(n, len(items))]
}
