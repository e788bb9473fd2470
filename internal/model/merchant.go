// Package model defines the merchant memory record types.
package model

import "strings"

// SurfaceDepth is the zone depth of the world surface. Depths below it are
// underground, depths above it are aboveground.
const SurfaceDepth = 10

// GridPosition is a merchant's cell in the 3x3 sub-zone grid.
type GridPosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// WorldPosition is a coarse world-map coordinate.
type WorldPosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ItemSnapshot is one item a merchant had for sale when observed.
type ItemSnapshot struct {
	DisplayName string  `json:"display_name"`
	SearchKey   string  `json:"search_key"`
	WeightEach  int     `json:"weight_each"`
	ValueEach   float64 `json:"value_each"`
	IsCurrency  bool    `json:"is_currency,omitempty"`
	Category    string  `json:"category,omitempty"`
}

// NewItem builds an ItemSnapshot, deriving the search key from the name.
func NewItem(displayName string, weight int, value float64, currency bool, category string) ItemSnapshot {
	return ItemSnapshot{
		DisplayName: displayName,
		SearchKey:   strings.ToLower(displayName),
		WeightEach:  weight,
		ValueEach:   value,
		IsCurrency:  currency,
		Category:    category,
	}
}

// MerchantSnapshot is the remembered state of one merchant at its most
// recent observation.
type MerchantSnapshot struct {
	Identity        string         `json:"identity"`
	ObservationID   string         `json:"observation_id,omitempty"`
	DisplayName     string         `json:"display_name"`
	LocationName    string         `json:"location_name"`
	Grid            GridPosition   `json:"grid"`
	Depth           int            `json:"depth"`
	World           WorldPosition  `json:"world"`
	PriceMultiplier float64        `json:"price_multiplier"`
	LastObservedAt  int64          `json:"last_observed_at"`
	CanRestock      bool           `json:"can_restock,omitempty"`
	Items           []ItemSnapshot `json:"items"`
}

// Clone returns a copy that shares no item storage with m.
func (m MerchantSnapshot) Clone() MerchantSnapshot {
	c := m
	if m.Items != nil {
		c.Items = make([]ItemSnapshot, len(m.Items))
		copy(c.Items, m.Items)
	}
	return c
}

// EffectivePrice is the price the player sees for item at this merchant.
// Currency is never scaled by the multiplier.
func (m MerchantSnapshot) EffectivePrice(item ItemSnapshot) float64 {
	if item.IsCurrency || m.PriceMultiplier == 0 {
		return item.ValueEach
	}
	return item.ValueEach / m.PriceMultiplier
}

// Stratum is the merchant's depth relative to the surface.
func (m MerchantSnapshot) Stratum() int {
	return m.Depth - SurfaceDepth
}
