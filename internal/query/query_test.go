package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/merchant-memory/internal/calendar"
	"github.com/rcliao/merchant-memory/internal/model"
	"github.com/rcliao/merchant-memory/internal/store"
)

func seed(t *testing.T) *store.MemStore {
	t.Helper()
	s := store.New()
	s.Upsert("joppa-tam", model.MerchantSnapshot{
		DisplayName:     "Tam",
		LocationName:    "Joppa",
		Grid:            model.GridPosition{X: 1, Y: 1},
		Depth:           10,
		PriceMultiplier: 0.5,
		LastObservedAt:  0,
		CanRestock:      true,
		Items: []model.ItemSnapshot{
			model.NewItem("Bronze Dagger", 2, 5, false, "Melee Weapons"),
			model.NewItem("fresh water", 1, 1, true, "Water"),
			model.NewItem("Iron Mace", 8, 10, false, "Melee Weapons"),
		},
	})
	s.Upsert("grit-gate-vendor", model.MerchantSnapshot{
		DisplayName:     "Vendor",
		LocationName:    "Grit Gate",
		Grid:            model.GridPosition{X: 0, Y: 2},
		Depth:           13,
		PriceMultiplier: 1.0,
		LastObservedAt:  3 * calendar.TicksPerDay,
		Items: []model.ItemSnapshot{
			model.NewItem("witchwood bark", 1, 9, false, "Food"),
			model.NewItem("dagger sheath", 1, 21, false, "Tools"),
		},
	})
	s.Upsert("empty", model.MerchantSnapshot{DisplayName: "Nobody", Items: nil})
	return s
}

func identities(rs []Result) []string {
	var ids []string
	for _, r := range rs {
		ids = append(ids, r.Identity)
	}
	return ids
}

func TestSearchDefaultProfileReturnsEveryStockedMerchant(t *testing.T) {
	e := New(seed(t), calendar.Fixed(4*calendar.TicksPerDay))
	rs := e.Search("", model.DefaultFilterProfile())

	assert.Equal(t, []string{"grit-gate-vendor", "joppa-tam"}, identities(rs))
	assert.Len(t, rs[1].Lines, 3)
}

func TestSearchSubstringCaseInsensitive(t *testing.T) {
	e := New(seed(t), calendar.Fixed(0))
	rs := e.Search("DAGGER", model.DefaultFilterProfile())

	require.Len(t, rs, 2)
	for _, r := range rs {
		require.Len(t, r.Lines, 1)
	}
}

func TestSearchOmitsMerchantsWithoutMatches(t *testing.T) {
	e := New(seed(t), calendar.Fixed(0))
	rs := e.Search("mace", model.DefaultFilterProfile())
	assert.Equal(t, []string{"joppa-tam"}, identities(rs))

	assert.Empty(t, e.Search("nothing like this", model.DefaultFilterProfile()))
}

func TestSearchPriceBoundsInclusive(t *testing.T) {
	s := store.New()
	s.Upsert("m", model.MerchantSnapshot{
		PriceMultiplier: 1,
		Items: []model.ItemSnapshot{
			model.NewItem("nine", 1, 9, false, ""),
			model.NewItem("ten", 1, 10, false, ""),
			model.NewItem("twenty", 1, 20, false, ""),
			model.NewItem("twentyone", 1, 21, false, ""),
		},
	})
	e := New(s, calendar.Fixed(0))

	rs := e.Search("", model.FilterProfile{MinSpend: 10, MaxSpend: 20})
	require.Len(t, rs, 1)
	assert.Equal(t, []string{" - ten ($10.00 1#)", " - twenty ($20.00 1#)"}, rs[0].Lines)
}

func TestSearchUsesEffectivePrice(t *testing.T) {
	e := New(seed(t), calendar.Fixed(0))

	// Bronze Dagger: 5 / 0.5 = 10. fresh water is currency and stays at 1.
	rs := e.Search("", model.FilterProfile{MinSpend: 0, MaxSpend: 10})
	require.NotEmpty(t, rs)
	tam := rs[len(rs)-1]
	assert.Equal(t, "joppa-tam", tam.Identity)
	assert.Equal(t, []string{" - Bronze Dagger ($10.00 2#)", " - fresh water ($1.00 1#)"}, tam.Lines)
}

func TestSearchOnlyRestocking(t *testing.T) {
	e := New(seed(t), calendar.Fixed(0))
	p := model.DefaultFilterProfile()
	p.OnlyRestocking = true

	assert.Equal(t, []string{"joppa-tam"}, identities(e.Search("", p)))
}

func TestSearchCategories(t *testing.T) {
	e := New(seed(t), calendar.Fixed(0))
	p := model.DefaultFilterProfile()
	p.Categories = []string{"Food", "Water"}

	rs := e.Search("", p)
	require.Len(t, rs, 2)
	for _, r := range rs {
		assert.Len(t, r.Lines, 1)
	}
}

func TestRememberIgnoresFilters(t *testing.T) {
	e := New(seed(t), calendar.Fixed(0))
	rs := e.Remember()
	require.Len(t, rs, 2)
	assert.Len(t, rs[0].Lines, 2)
	assert.Len(t, rs[1].Lines, 3)
}

func TestDirection(t *testing.T) {
	tests := []struct {
		x, y     int
		expected string
	}{
		{0, 0, "NW"}, {1, 0, "N"}, {2, 0, "NE"},
		{0, 1, "W"}, {1, 1, "C"}, {2, 1, "E"},
		{0, 2, "SW"}, {1, 2, "S"}, {2, 2, "SE"},
		{3, 1, UnknownDirection}, {-1, 0, UnknownDirection}, {1, 7, UnknownDirection},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Direction(model.GridPosition{X: tt.x, Y: tt.y}), "(%d,%d)", tt.x, tt.y)
	}
}

func TestStratum(t *testing.T) {
	assert.Equal(t, "surface", Stratum(0))
	assert.Equal(t, "3 strata deep", Stratum(3))
	assert.Equal(t, "2 strata aboveground", Stratum(-2))
}

func TestHeader(t *testing.T) {
	m := model.MerchantSnapshot{
		DisplayName:    "Tam",
		LocationName:   "Joppa",
		Grid:           model.GridPosition{X: 1, Y: 1},
		Depth:          12,
		CanRestock:     true,
		LastObservedAt: 0,
	}
	assert.Equal(t, "Tam (restocks) (C Joppa, 2 strata deep, 5 days ago)", Header(m, 5*calendar.TicksPerDay))

	m.CanRestock = false
	m.Depth = 10
	assert.Equal(t, "Tam (C Joppa, surface, 3 hours ago)", Header(m, 3*calendar.TicksPerHour))
}

func TestRender(t *testing.T) {
	rs := []Result{
		{Header: "A", Lines: []string{" - x", " - y"}},
		{Header: "B", Lines: []string{" - z"}},
	}
	assert.Equal(t, "title\n\nA\n - x\n - y\n\nB\n - z", Render("title", rs))
	assert.Equal(t, "title", Render("title", nil))
}
