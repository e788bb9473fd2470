// Package slots keeps versioned save games in SQLite. Every save writes a
// new version of its slot; loads read the latest one.
package slots

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

// timeLayout sorts lexically in chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNotFound is returned when a slot or version does not exist.
var ErrNotFound = errors.New("slots: save not found")

// Save is one stored version of a slot.
type Save struct {
	ID         string    `json:"id"`
	Slot       string    `json:"slot"`
	Version    int       `json:"version"`
	Supersedes string    `json:"supersedes,omitempty"`
	Format     string    `json:"format"`
	Merchants  int       `json:"merchants"`
	Size       int       `json:"size_bytes"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	Payload    []byte    `json:"-"`
}

// PutParams holds parameters for writing a save.
type PutParams struct {
	Slot      string
	Format    string
	Payload   []byte
	Merchants int
	Note      string
}

// GetParams holds parameters for reading saves.
type GetParams struct {
	Slot    string
	History bool
	Version int // 0 means latest
}

// RmParams holds parameters for deleting saves.
type RmParams struct {
	Slot        string
	AllVersions bool
}

// SQLiteStore stores saves in a SQLite database.
type SQLiteStore struct {
	db      *sql.DB
	entropy *rand.Rand
}

// Open opens or creates a SQLite database at the given path.
func Open(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS saves (
		id          TEXT PRIMARY KEY,
		slot        TEXT NOT NULL,
		version     INTEGER NOT NULL DEFAULT 1,
		supersedes  TEXT,
		format      TEXT NOT NULL,
		merchants   INTEGER NOT NULL DEFAULT 0,
		payload     BLOB NOT NULL,
		note        TEXT,
		created_at  TEXT NOT NULL
	);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_saves_slot_version ON saves(slot, version);
	CREATE INDEX IF NOT EXISTS idx_saves_created ON saves(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Put writes payload as the next version of its slot.
func (s *SQLiteStore) Put(ctx context.Context, p PutParams) (*Save, error) {
	if p.Slot == "" {
		return nil, fmt.Errorf("slot is required")
	}
	now := time.Now().UTC()
	id := s.newID()

	var notePtr *string
	if p.Note != "" {
		notePtr = &p.Note
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var prevID string
	var prevVersion int
	err = tx.QueryRowContext(ctx,
		`SELECT id, version FROM saves WHERE slot = ?
		 ORDER BY version DESC LIMIT 1`, p.Slot).Scan(&prevID, &prevVersion)

	version := 1
	var supersedes *string
	switch {
	case err == nil:
		version = prevVersion + 1
		supersedes = &prevID
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("latest version: %w", err)
	}

	payload := p.Payload
	if payload == nil {
		payload = []byte{}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO saves (id, slot, version, supersedes, format, merchants, payload, note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, p.Slot, version, supersedes, p.Format, p.Merchants, payload, notePtr,
		now.Format(timeLayout))
	if err != nil {
		return nil, fmt.Errorf("insert save: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	sv := &Save{
		ID:        id,
		Slot:      p.Slot,
		Version:   version,
		Format:    p.Format,
		Merchants: p.Merchants,
		Size:      len(payload),
		Note:      p.Note,
		CreatedAt: now,
		Payload:   payload,
	}
	if supersedes != nil {
		sv.Supersedes = *supersedes
	}
	return sv, nil
}

const selectSave = `SELECT id, slot, version, supersedes, format, merchants, payload, note, created_at FROM saves`

// Get returns the latest save of a slot, a specific version, or with
// History every version newest first.
func (s *SQLiteStore) Get(ctx context.Context, p GetParams) ([]Save, error) {
	var query string
	var args []interface{}

	switch {
	case p.History:
		query = selectSave + ` WHERE slot = ? ORDER BY version DESC`
		args = []interface{}{p.Slot}
	case p.Version > 0:
		query = selectSave + ` WHERE slot = ? AND version = ? LIMIT 1`
		args = []interface{}{p.Slot, p.Version}
	default:
		query = selectSave + ` WHERE slot = ? ORDER BY version DESC LIMIT 1`
		args = []interface{}{p.Slot}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var saves []Save
	for rows.Next() {
		sv, err := scanSave(rows)
		if err != nil {
			return nil, err
		}
		saves = append(saves, sv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(saves) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, p.Slot)
	}
	return saves, nil
}

// Latest returns the newest save of slot.
func (s *SQLiteStore) Latest(ctx context.Context, slot string) (*Save, error) {
	saves, err := s.Get(ctx, GetParams{Slot: slot})
	if err != nil {
		return nil, err
	}
	return &saves[0], nil
}

// List returns the latest version of every slot, most recent first.
func (s *SQLiteStore) List(ctx context.Context) ([]Save, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sv.id, sv.slot, sv.version, sv.supersedes, sv.format, sv.merchants, sv.payload, sv.note, sv.created_at
		FROM saves sv
		INNER JOIN (
			SELECT slot, MAX(version) AS max_ver FROM saves GROUP BY slot
		) latest ON sv.slot = latest.slot AND sv.version = latest.max_ver
		ORDER BY sv.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var saves []Save
	for rows.Next() {
		sv, err := scanSave(rows)
		if err != nil {
			return nil, err
		}
		saves = append(saves, sv)
	}
	return saves, rows.Err()
}

// Rm deletes the latest version of a slot, or every version.
func (s *SQLiteStore) Rm(ctx context.Context, p RmParams) error {
	if p.AllVersions {
		res, err := s.db.ExecContext(ctx, `DELETE FROM saves WHERE slot = ?`, p.Slot)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("%w: %s", ErrNotFound, p.Slot)
		}
		return nil
	}

	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM saves WHERE slot = ? ORDER BY version DESC LIMIT 1`, p.Slot).Scan(&id)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, p.Slot)
	}
	_, err = s.db.ExecContext(ctx, `DELETE FROM saves WHERE id = ?`, id)
	return err
}

// Prune deletes all but the newest keep versions of slot. keep == 0 keeps
// everything. Returns the number of versions deleted.
func (s *SQLiteStore) Prune(ctx context.Context, slot string, keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM saves WHERE slot = ? AND version NOT IN (
			SELECT version FROM saves WHERE slot = ? ORDER BY version DESC LIMIT ?
		)`, slot, slot, keep)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSave(row scanner) (Save, error) {
	var sv Save
	var supersedes, note sql.NullString
	var createdAt string

	err := row.Scan(
		&sv.ID, &sv.Slot, &sv.Version, &supersedes, &sv.Format,
		&sv.Merchants, &sv.Payload, &note, &createdAt,
	)
	if err != nil {
		return sv, err
	}

	sv.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	sv.Size = len(sv.Payload)
	if supersedes.Valid {
		sv.Supersedes = supersedes.String
	}
	if note.Valid {
		sv.Note = note.String
	}
	return sv, nil
}
