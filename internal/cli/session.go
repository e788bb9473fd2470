package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rcliao/merchant-memory/internal/calendar"
	"github.com/rcliao/merchant-memory/internal/config"
	"github.com/rcliao/merchant-memory/internal/memory"
	"github.com/rcliao/merchant-memory/internal/savegame"
	"github.com/rcliao/merchant-memory/internal/slots"
)

// session is one CLI invocation's view of a save slot.
type session struct {
	cfg   *config.Config
	log   zerolog.Logger
	saves *slots.SQLiteStore
	mem   *memory.Memory
	// version is the slot version restored, 0 for a fresh slot.
	version int
	// baseline is the encoded state right after restore.
	baseline []byte
}

// openSession opens the database and restores the configured slot into a
// new Memory. ui may be nil for commands that never prompt.
func openSession(cmd *cobra.Command, ui memory.Prompter) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, err := newLogger(cmd, cfg)
	if err != nil {
		return nil, err
	}
	clock, err := newClock(cfg)
	if err != nil {
		return nil, err
	}

	saves, err := slots.Open(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	s := &session{
		cfg:   cfg,
		log:   log.With().Str("slot", cfg.Slot).Logger(),
		saves: saves,
		mem: memory.New(memory.Config{
			Rules:  hostRules{},
			Clock:  clock,
			UI:     ui,
			Logger: &log,
		}),
	}

	if err := s.restore(cmd.Context()); err != nil {
		saves.Close()
		return nil, err
	}
	if s.baseline, err = s.encode(); err != nil {
		saves.Close()
		return nil, err
	}
	return s, nil
}

func (s *session) restore(ctx context.Context) error {
	sv, err := s.saves.Latest(ctx, s.cfg.Slot)
	if errors.Is(err, slots.ErrNotFound) {
		s.log.Debug().Msg("empty slot, starting fresh")
		return nil
	}
	if err != nil {
		return fmt.Errorf("load slot: %w", err)
	}
	s.version = sv.Version
	return s.mem.Restore(bytes.NewReader(sv.Payload))
}

// commit writes the memory as a new version of the slot and prunes old
// versions beyond the configured limit.
func (s *session) commit(ctx context.Context, note string) (*slots.Save, error) {
	payload, err := s.encode()
	if err != nil {
		return nil, err
	}
	return s.put(ctx, payload, note)
}

// commitIfChanged commits only when the state differs from what was
// restored. It returns nil when nothing was written.
func (s *session) commitIfChanged(ctx context.Context, note string) (*slots.Save, error) {
	payload, err := s.encode()
	if err != nil {
		return nil, err
	}
	if bytes.Equal(payload, s.baseline) {
		return nil, nil
	}
	return s.put(ctx, payload, note)
}

func (s *session) encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.mem.Save(&buf); err != nil {
		return nil, fmt.Errorf("encode save: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *session) put(ctx context.Context, payload []byte, note string) (*slots.Save, error) {
	sv, err := s.saves.Put(ctx, slots.PutParams{
		Slot:      s.cfg.Slot,
		Format:    savegame.FormatVersion,
		Payload:   payload,
		Merchants: s.mem.Merchants().Len(),
		Note:      note,
	})
	if err != nil {
		return nil, fmt.Errorf("write save: %w", err)
	}
	pruned, err := s.saves.Prune(ctx, s.cfg.Slot, s.cfg.Keep)
	if err != nil {
		return nil, fmt.Errorf("prune: %w", err)
	}
	s.log.Debug().Int("version", sv.Version).Int("pruned", pruned).Msg("slot saved")
	s.version = sv.Version
	s.baseline = payload
	return sv, nil
}

func (s *session) Close() error {
	return s.saves.Close()
}

// newClock returns the wall clock from cfg unless --turn pins the game time.
func newClock(cfg *config.Config) (calendar.Clock, error) {
	if turnFlag >= 0 {
		return calendar.Fixed(turnFlag), nil
	}
	epoch, err := cfg.Clock.EpochTime()
	if err != nil {
		return nil, err
	}
	return calendar.Wall{Epoch: epoch, Rate: cfg.Clock.Tick}, nil
}
