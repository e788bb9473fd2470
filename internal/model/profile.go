package model

import (
	"sort"
	"strings"
)

// Unbounded is the MaxSpend sentinel meaning "no upper price limit".
const Unbounded = -1

// FilterProfile holds the constraints applied to a merchant search.
type FilterProfile struct {
	MinSpend       int      `json:"min_spend"`
	MaxSpend       int      `json:"max_spend"`
	OnlyRestocking bool     `json:"only_restocking"`
	Categories     []string `json:"categories,omitempty"`
}

// DefaultFilterProfile returns a profile that filters nothing.
func DefaultFilterProfile() FilterProfile {
	return FilterProfile{MinSpend: 0, MaxSpend: Unbounded}
}

// Clone returns a deep copy of p.
func (p FilterProfile) Clone() FilterProfile {
	c := p
	if p.Categories != nil {
		c.Categories = make([]string, len(p.Categories))
		copy(c.Categories, p.Categories)
	}
	return c
}

// HasMax reports whether an upper price bound is set.
func (p FilterProfile) HasMax() bool {
	return p.MaxSpend >= 0
}

// Allows reports whether category passes the category allow-list. An empty
// list allows everything.
func (p FilterProfile) Allows(category string) bool {
	if len(p.Categories) == 0 {
		return true
	}
	for _, c := range p.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// CategorySet trims, dedups and sorts category names. Blank names are dropped.
func CategorySet(names []string) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
