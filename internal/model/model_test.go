package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectivePrice(t *testing.T) {
	m := MerchantSnapshot{PriceMultiplier: 0.5}

	assert.InDelta(t, 20.0, m.EffectivePrice(NewItem("dagger", 2, 10, false, "Weapons")), 1e-9)
	assert.InDelta(t, 10.0, m.EffectivePrice(NewItem("fresh water", 1, 10, true, "Water")), 1e-9)
}

func TestNewItemSearchKey(t *testing.T) {
	it := NewItem("Bronze Dagger", 2, 5, false, "Weapons")
	assert.Equal(t, "bronze dagger", it.SearchKey)
}

func TestMerchantCloneDoesNotAlias(t *testing.T) {
	m := MerchantSnapshot{Identity: "m1", Items: []ItemSnapshot{NewItem("a", 1, 1, false, "")}}
	c := m.Clone()
	c.Items[0].DisplayName = "changed"
	assert.Equal(t, "a", m.Items[0].DisplayName)
}

func TestStratum(t *testing.T) {
	assert.Equal(t, 0, MerchantSnapshot{Depth: 10}.Stratum())
	assert.Equal(t, 3, MerchantSnapshot{Depth: 13}.Stratum())
	assert.Equal(t, -2, MerchantSnapshot{Depth: 8}.Stratum())
}

func TestFilterProfileDefaults(t *testing.T) {
	p := DefaultFilterProfile()
	assert.Equal(t, 0, p.MinSpend)
	assert.Equal(t, Unbounded, p.MaxSpend)
	assert.False(t, p.HasMax())
	assert.False(t, p.OnlyRestocking)
	assert.True(t, p.Allows("anything"))
}

func TestFilterProfileCloneDoesNotAlias(t *testing.T) {
	p := FilterProfile{Categories: []string{"Food", "Tools"}}
	c := p.Clone()
	c.Categories[0] = "Weapons"
	assert.Equal(t, []string{"Food", "Tools"}, p.Categories)
}

func TestCategorySet(t *testing.T) {
	got := CategorySet([]string{" Tools", "Food", "", "Tools", "  "})
	assert.Equal(t, []string{"Food", "Tools"}, got)
	assert.Nil(t, CategorySet(nil))
}

func TestAllows(t *testing.T) {
	p := FilterProfile{Categories: []string{"Food", "Tools"}}
	assert.True(t, p.Allows("Tools"))
	assert.False(t, p.Allows("Weapons"))
}
