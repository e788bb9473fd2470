// Package recorder captures merchant snapshots when a trade session opens.
package recorder

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/rcliao/merchant-memory/internal/calendar"
	"github.com/rcliao/merchant-memory/internal/model"
	"github.com/rcliao/merchant-memory/internal/store"
)

// EgoStat is the actor stat that drives trade prices.
const EgoStat = "Ego"

const (
	minMultiplier     = 0.05
	maxMultiplier     = 0.95
	neutralMultiplier = 1.0
	noEgoMultiplier   = 0.25
)

// ErrNoTrader is returned when a trade event carries no merchant to key on.
var ErrNoTrader = errors.New("recorder: missing trader")

// Zone locates a trader in the world.
type Zone struct {
	Name string
	X    int
	Y    int
	Z    int
	WX   int
	WY   int
}

// Item is one object in a trader's inventory.
type Item interface {
	DisplayName() string
	WeightEach() int
	ValueEach() float64
	IsCurrency() bool
}

// Trader is the merchant side of a trade session.
type Trader interface {
	ID() string
	DisplayName() string
	Zone() Zone
	CanRestock() bool
	Inventory() []Item
}

// Actor is the player side of a trade session.
type Actor interface {
	HasStat(name string) bool
	StatMod(name string) int
}

// TradeRules mirrors the host's own trade eligibility and item
// classification rules.
type TradeRules interface {
	ValidForTrade(item Item, trader Trader, actor Actor) bool
	Category(item Item) string
}

// TradeEvent is raised by the host once per trade session opened.
type TradeEvent struct {
	Trader           Trader
	Actor            Actor
	LinearAdjustment float64
	FactorAdjustment float64
}

// Recorder writes one snapshot per trade event into a Store.
type Recorder struct {
	store   store.Store
	rules   TradeRules
	clock   calendar.Clock
	entropy *rand.Rand
	log     zerolog.Logger
}

// New creates a Recorder. A nil rules approves every item without a category.
func New(s store.Store, rules TradeRules, clock calendar.Clock, log zerolog.Logger) *Recorder {
	return &Recorder{
		store:   s,
		rules:   rules,
		clock:   clock,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
		log:     log,
	}
}

// Observe snapshots the event's trader and replaces whatever was remembered
// about it before.
func (r *Recorder) Observe(ev TradeEvent) (model.MerchantSnapshot, error) {
	if ev.Trader == nil {
		return model.MerchantSnapshot{}, ErrNoTrader
	}
	trader := ev.Trader
	zone := trader.Zone()

	snap := model.MerchantSnapshot{
		Identity:        trader.ID(),
		ObservationID:   ulid.MustNew(ulid.Timestamp(time.Now()), r.entropy).String(),
		DisplayName:     trader.DisplayName(),
		LocationName:    zone.Name,
		Grid:            model.GridPosition{X: zone.X, Y: zone.Y},
		Depth:           zone.Z,
		World:           model.WorldPosition{X: zone.WX, Y: zone.WY},
		PriceMultiplier: multiplierFor(ev),
		LastObservedAt:  r.clock.Now(),
		CanRestock:      trader.CanRestock(),
		Items:           []model.ItemSnapshot{},
	}

	skipped := 0
	for _, it := range trader.Inventory() {
		if it == nil {
			continue
		}
		if r.rules != nil && !r.rules.ValidForTrade(it, trader, ev.Actor) {
			skipped++
			continue
		}
		category := ""
		if r.rules != nil {
			category = r.rules.Category(it)
		}
		snap.Items = append(snap.Items, model.NewItem(it.DisplayName(), it.WeightEach(), it.ValueEach(), it.IsCurrency(), category))
	}

	r.store.Upsert(snap.Identity, snap)

	r.log.Debug().
		Str("merchant", snap.Identity).
		Str("observation", snap.ObservationID).
		Int("items", len(snap.Items)).
		Int("skipped", skipped).
		Float64("multiplier", snap.PriceMultiplier).
		Msg("merchant observed")

	return snap, nil
}

func multiplierFor(ev TradeEvent) float64 {
	missing := ev.Trader == nil || ev.Actor == nil
	if missing {
		return PriceMultiplier(0, 0, 1, false, true)
	}
	hasEgo := ev.Actor.HasStat(EgoStat)
	statMod := 0
	if hasEgo {
		statMod = ev.Actor.StatMod(EgoStat)
	}
	return PriceMultiplier(statMod, ev.LinearAdjustment, ev.FactorAdjustment, hasEgo, false)
}

// PriceMultiplier is the fraction of listed value the player trades at.
func PriceMultiplier(statMod int, linear, factor float64, hasEgo, missing bool) float64 {
	if missing {
		return neutralMultiplier
	}
	if !hasEgo {
		return noEgoMultiplier
	}
	raw := (0.35 + 0.07*(float64(statMod)+linear)) * factor
	return math.Min(math.Max(raw, minMultiplier), maxMultiplier)
}

// Describe is a short log-friendly summary of an event's trader.
func Describe(ev TradeEvent) string {
	if ev.Trader == nil {
		return "<no trader>"
	}
	return fmt.Sprintf("%s (%s)", ev.Trader.DisplayName(), ev.Trader.ID())
}
