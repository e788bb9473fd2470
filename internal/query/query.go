// Package query searches remembered merchants and formats the matches.
package query

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rcliao/merchant-memory/internal/calendar"
	"github.com/rcliao/merchant-memory/internal/model"
	"github.com/rcliao/merchant-memory/internal/store"
)

// UnknownDirection labels a grid position outside the 3x3 zone grid.
const UnknownDirection = "???"

// Result is one merchant's header and its matching item lines.
type Result struct {
	Identity string   `json:"identity"`
	Header   string   `json:"header"`
	Lines    []string `json:"lines"`
}

// String renders the result as the popup shows it.
func (r Result) String() string {
	if len(r.Lines) == 0 {
		return r.Header
	}
	return r.Header + "\n" + strings.Join(r.Lines, "\n")
}

// Engine runs searches against a Store.
type Engine struct {
	store store.Store
	clock calendar.Clock
}

// New creates an Engine reading from s. clock supplies the time used for
// recency labels.
func New(s store.Store, clock calendar.Clock) *Engine {
	return &Engine{store: s, clock: clock}
}

// Search returns, for each merchant with at least one item passing the query
// and profile, the merchant header and the matching item lines. Merchants
// are ordered most recently observed first.
func (e *Engine) Search(q string, p model.FilterProfile) []Result {
	q = strings.ToLower(q)
	return e.collect(func(m model.MerchantSnapshot, it model.ItemSnapshot) bool {
		return Matches(m, it, q, p)
	})
}

// Remember lists every remembered merchant with all of its items, ignoring
// any filter profile.
func (e *Engine) Remember() []Result {
	return e.collect(func(model.MerchantSnapshot, model.ItemSnapshot) bool { return true })
}

func (e *Engine) collect(keep func(model.MerchantSnapshot, model.ItemSnapshot) bool) []Result {
	merchants := e.store.All()
	sort.Slice(merchants, func(i, j int) bool {
		if merchants[i].LastObservedAt != merchants[j].LastObservedAt {
			return merchants[i].LastObservedAt > merchants[j].LastObservedAt
		}
		return merchants[i].Identity < merchants[j].Identity
	})

	now := e.clock.Now()
	var results []Result
	for _, m := range merchants {
		var lines []string
		for _, it := range m.Items {
			if keep(m, it) {
				lines = append(lines, ItemLine(m, it))
			}
		}
		if len(lines) == 0 {
			continue
		}
		results = append(results, Result{Identity: m.Identity, Header: Header(m, now), Lines: lines})
	}
	return results
}

// Matches reports whether item at merchant m passes the lower-cased query q
// and every constraint in p.
func Matches(m model.MerchantSnapshot, item model.ItemSnapshot, q string, p model.FilterProfile) bool {
	if q != "" && !strings.Contains(item.SearchKey, q) {
		return false
	}
	price := m.EffectivePrice(item)
	if float64(p.MinSpend) > price {
		return false
	}
	if p.HasMax() && price > float64(p.MaxSpend) {
		return false
	}
	if p.OnlyRestocking && !m.CanRestock {
		return false
	}
	return p.Allows(item.Category)
}

var directions = [3][3]string{
	{"NW", "N", "NE"},
	{"W", "C", "E"},
	{"SW", "S", "SE"},
}

// Direction maps a 3x3 grid cell to a compass label.
func Direction(g model.GridPosition) string {
	if g.X < 0 || g.X > 2 || g.Y < 0 || g.Y > 2 {
		return UnknownDirection
	}
	return directions[g.Y][g.X]
}

// Stratum describes a depth relative to the surface.
func Stratum(rel int) string {
	switch {
	case rel == 0:
		return "surface"
	case rel > 0:
		return fmt.Sprintf("%d strata deep", rel)
	default:
		return fmt.Sprintf("%d strata aboveground", -rel)
	}
}

// Header is the merchant line shown above its items.
func Header(m model.MerchantSnapshot, now int64) string {
	name := m.DisplayName
	if m.CanRestock {
		name += " (restocks)"
	}
	return fmt.Sprintf("%s (%s %s, %s, %s)",
		name, Direction(m.Grid), m.LocationName, Stratum(m.Stratum()), calendar.Ago(now, m.LastObservedAt))
}

// ItemLine formats one item with its effective price and weight.
func ItemLine(m model.MerchantSnapshot, item model.ItemSnapshot) string {
	return fmt.Sprintf(" - %s ($%s %d#)", item.DisplayName, FormatPrice(m.EffectivePrice(item)), item.WeightEach)
}

// FormatPrice renders a price with two decimals.
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', 2, 64)
}

// Render joins results under a title, one blank line between merchants.
func Render(title string, results []Result) string {
	var b strings.Builder
	b.WriteString(title)
	for _, r := range results {
		b.WriteString("\n\n")
		b.WriteString(r.String())
	}
	return b.String()
}
