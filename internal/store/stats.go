package store

import "sort"

// Stats holds memory store statistics.
type Stats struct {
	Merchants  int             `json:"merchants"`
	Restockers int             `json:"restockers"`
	Items      int             `json:"items"`
	Categories []CategoryStats `json:"categories"`
}

// CategoryStats holds per-category item counts.
type CategoryStats struct {
	Category string `json:"category"`
	Items    int    `json:"items"`
}

// Stats returns counts over the remembered merchants, categories ordered by
// item count descending.
func (s *MemStore) Stats() *Stats {
	st := &Stats{Merchants: len(s.merchants)}
	counts := map[string]int{}
	for _, m := range s.merchants {
		if m.CanRestock {
			st.Restockers++
		}
		st.Items += len(m.Items)
		for _, it := range m.Items {
			counts[it.Category]++
		}
	}

	for c, n := range counts {
		st.Categories = append(st.Categories, CategoryStats{Category: c, Items: n})
	}
	sort.Slice(st.Categories, func(i, j int) bool {
		if st.Categories[i].Items != st.Categories[j].Items {
			return st.Categories[i].Items > st.Categories[j].Items
		}
		return st.Categories[i].Category < st.Categories[j].Category
	})
	return st
}
