// Package memory is the merchant memory component the host game embeds.
//
// A Memory owns the merchant store and the filter profiles for one game
// session. The host feeds it trade events, dispatches player commands to it
// and hands it the save stream on save and load.
package memory

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rcliao/merchant-memory/internal/calendar"
	"github.com/rcliao/merchant-memory/internal/model"
	"github.com/rcliao/merchant-memory/internal/profile"
	"github.com/rcliao/merchant-memory/internal/query"
	"github.com/rcliao/merchant-memory/internal/recorder"
	"github.com/rcliao/merchant-memory/internal/savegame"
	"github.com/rcliao/merchant-memory/internal/store"
)

const (
	msgNoMemories = "You don't remember any merchants or their wares."
	msgNoMatches  = "You don't remember anyone selling that."
)

var (
	ErrUnknownCommand = errors.New("memory: unknown command")
	ErrNoPrompter     = errors.New("memory: no prompter configured")
)

// Handler is what the host calls into.
type Handler interface {
	HandleTradeObserved(ev recorder.TradeEvent) error
	HandleCommand(c Command) error
}

// Config wires a Memory to its collaborators.
type Config struct {
	Rules  recorder.TradeRules
	Clock  calendar.Clock
	UI     Prompter
	Logger *zerolog.Logger
}

// Memory implements Handler.
type Memory struct {
	merchants *store.MemStore
	profiles  *profile.Store
	recorder  *recorder.Recorder
	engine    *query.Engine
	ui        Prompter
	log       zerolog.Logger
	commands  map[Command]func() error
}

var _ Handler = (*Memory)(nil)

// New creates a Memory with an empty store and default filters.
func New(cfg Config) *Memory {
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = cfg.Logger.With().Str("component", "merchant-memory").Logger()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = calendar.Fixed(0)
	}

	m := &Memory{
		merchants: store.New(),
		profiles:  profile.New(),
		ui:        cfg.UI,
		log:       log,
	}
	m.recorder = recorder.New(m.merchants, cfg.Rules, clock, log)
	m.engine = query.New(m.merchants, clock)
	m.commands = map[Command]func() error{
		CommandRememberMerchants: m.rememberMerchants,
		CommandSearchMerchants:   m.searchMerchants,
		CommandConfigureSearch:   m.configureSearch,
	}
	return m
}

// Init registers every command with the host.
func (m *Memory) Init(reg Registrar) {
	for _, c := range Commands {
		reg.RegisterCommand(c, abilities[c])
	}
}

// Merchants exposes the store for read-only host views such as stats.
func (m *Memory) Merchants() *store.MemStore { return m.merchants }

// Profiles exposes the filter profiles for non-interactive configuration.
func (m *Memory) Profiles() *profile.Store { return m.profiles }

// Engine exposes the query engine.
func (m *Memory) Engine() *query.Engine { return m.engine }

// HandleTradeObserved records the trader of ev. An event without a trader
// is logged and dropped.
func (m *Memory) HandleTradeObserved(ev recorder.TradeEvent) error {
	if ev.Actor == nil && ev.Trader != nil {
		m.log.Warn().Str("trader", recorder.Describe(ev)).Msg("trade event without actor, using neutral prices")
	}
	if _, err := m.recorder.Observe(ev); err != nil {
		if errors.Is(err, recorder.ErrNoTrader) {
			m.log.Warn().Msg("trade event without trader ignored")
			return nil
		}
		return err
	}
	return nil
}

// HandleCommand runs the command c to completion.
func (m *Memory) HandleCommand(c Command) error {
	run, ok := m.commands[c]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, c)
	}
	if m.ui == nil {
		return ErrNoPrompter
	}
	m.log.Debug().Stringer("command", c).Msg("command dispatched")
	return run()
}

func (m *Memory) rememberMerchants() error {
	if m.merchants.IsEmpty() {
		m.ui.Show(msgNoMemories)
		return nil
	}
	m.ui.Show(query.Render("known merchants:", m.engine.Remember()))
	return nil
}

func (m *Memory) searchMerchants() error {
	if m.merchants.IsEmpty() {
		m.ui.Show(msgNoMemories)
		return nil
	}
	q, ok := m.ui.AskString("Search for what item?")
	if !ok {
		return nil
	}

	active := m.profiles.Active()
	results := m.engine.Search(q, active)

	title := fmt.Sprintf("merchants who are selling '%s'", q)
	if !isDefault(active) {
		title += "\n(" + profile.Describe(active) + ")"
	}
	if len(results) == 0 {
		title += "\n\n" + msgNoMatches
	}
	m.ui.Show(query.Render(title, results))
	return nil
}

func isDefault(p model.FilterProfile) bool {
	d := model.DefaultFilterProfile()
	return p.MinSpend == d.MinSpend && p.MaxSpend == d.MaxSpend &&
		p.OnlyRestocking == d.OnlyRestocking && len(p.Categories) == 0
}

// Save writes the session state to the host's save stream.
func (m *Memory) Save(w io.Writer) error {
	active, saved := m.profiles.Export()
	return savegame.Write(w, savegame.State{
		Merchants: m.merchants.Export(),
		Active:    active,
		Profiles:  saved,
	})
}

// Restore replaces the session state with what r holds. Unknown formats and
// corrupt payloads leave the component empty with default filters; only a
// failing reader is reported.
func (m *Memory) Restore(r io.Reader) error {
	st, recognized, err := savegame.Read(r)
	switch {
	case errors.Is(err, savegame.ErrCorrupt):
		m.log.Warn().Err(err).Msg("discarding corrupt merchant memory")
	case err != nil:
		m.reset()
		return fmt.Errorf("restore: %w", err)
	case !recognized:
		m.log.Info().Msg("no merchant memory in save, starting fresh")
	}

	m.merchants.Replace(st.Merchants)
	m.profiles.Replace(st.Active, st.Profiles)
	m.log.Debug().Int("merchants", m.merchants.Len()).Int("profiles", len(st.Profiles)).Msg("merchant memory restored")
	return nil
}

func (m *Memory) reset() {
	m.merchants.Replace(nil)
	m.profiles.Reset()
}

// knownCategories lists the categories seen on remembered items.
func (m *Memory) knownCategories() string {
	var names []string
	for _, c := range m.merchants.Stats().Categories {
		if c.Category != "" {
			names = append(names, c.Category)
		}
	}
	return strings.Join(model.CategorySet(names), ", ")
}
