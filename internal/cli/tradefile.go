package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rcliao/merchant-memory/internal/recorder"
)

// tradeDoc is one trade session as written in a YAML trade file. A file
// may hold several documents separated by ---.
type tradeDoc struct {
	Trader           *traderDoc `yaml:"trader"`
	Actor            *actorDoc  `yaml:"actor"`
	LinearAdjustment float64    `yaml:"linear_adjustment"`
	FactorAdjustment *float64   `yaml:"factor_adjustment"`
}

type traderDoc struct {
	Key     string     `yaml:"id"`
	Name    string     `yaml:"name"`
	Restock bool       `yaml:"can_restock"`
	Where   zoneDoc    `yaml:"zone"`
	Items   []*itemDoc `yaml:"inventory"`
}

type zoneDoc struct {
	Name string `yaml:"name"`
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
	Z    int    `yaml:"z"`
	WX   int    `yaml:"wx"`
	WY   int    `yaml:"wy"`
}

type itemDoc struct {
	Name     string  `yaml:"name"`
	Weight   int     `yaml:"weight"`
	Value    float64 `yaml:"value"`
	Currency bool    `yaml:"currency"`
	Category string  `yaml:"category"`
	Equipped bool    `yaml:"equipped"`
	NoTrade  bool    `yaml:"no_trade"`
}

type actorDoc struct {
	Stats map[string]int `yaml:"stats"`
}

func (t *traderDoc) ID() string          { return t.Key }
func (t *traderDoc) DisplayName() string { return t.Name }
func (t *traderDoc) CanRestock() bool    { return t.Restock }

func (t *traderDoc) Zone() recorder.Zone {
	return recorder.Zone{Name: t.Where.Name, X: t.Where.X, Y: t.Where.Y, Z: t.Where.Z, WX: t.Where.WX, WY: t.Where.WY}
}

func (t *traderDoc) Inventory() []recorder.Item {
	items := make([]recorder.Item, 0, len(t.Items))
	for _, it := range t.Items {
		if it != nil {
			items = append(items, it)
		}
	}
	return items
}

func (i *itemDoc) DisplayName() string { return i.Name }
func (i *itemDoc) WeightEach() int     { return i.Weight }
func (i *itemDoc) ValueEach() float64  { return i.Value }
func (i *itemDoc) IsCurrency() bool    { return i.Currency }

func (a *actorDoc) HasStat(name string) bool {
	_, ok := a.Stats[name]
	return ok
}

func (a *actorDoc) StatMod(name string) int { return a.Stats[name] }

// event converts the document, leaving Trader or Actor nil when absent.
func (d tradeDoc) event() recorder.TradeEvent {
	ev := recorder.TradeEvent{LinearAdjustment: d.LinearAdjustment, FactorAdjustment: 1}
	if d.FactorAdjustment != nil {
		ev.FactorAdjustment = *d.FactorAdjustment
	}
	if d.Trader != nil {
		if d.Trader.Key == "" {
			d.Trader.Key = d.Trader.Name
		}
		ev.Trader = d.Trader
	}
	if d.Actor != nil {
		ev.Actor = d.Actor
	}
	return ev
}

// decodeTrades reads every trade session in r.
func decodeTrades(r io.Reader) ([]recorder.TradeEvent, error) {
	dec := yaml.NewDecoder(r)
	var events []recorder.TradeEvent
	for {
		var doc tradeDoc
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return events, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decode trade %d: %w", len(events)+1, err)
		}
		events = append(events, doc.event())
	}
}

// hostRules keeps items the trader would actually sell: anything not
// equipped and not flagged no_trade. Categories come from the file.
type hostRules struct{}

func (hostRules) ValidForTrade(item recorder.Item, _ recorder.Trader, _ recorder.Actor) bool {
	it, ok := item.(*itemDoc)
	if !ok {
		return true
	}
	return !it.Equipped && !it.NoTrade
}

func (hostRules) Category(item recorder.Item) string {
	if it, ok := item.(*itemDoc); ok {
		return strings.TrimSpace(it.Category)
	}
	return ""
}
