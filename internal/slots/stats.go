package slots

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath      string      `json:"db_path"`
	DBSizeBytes int64       `json:"db_size_bytes"`
	TotalSaves  int         `json:"total_saves"`
	Slots       []SlotStats `json:"slots"`
}

// SlotStats holds per-slot counts.
type SlotStats struct {
	Slot     string `json:"slot"`
	Versions int    `json:"versions"`
	Bytes    int64  `json:"bytes"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM saves`).Scan(&st.TotalSaves)

	rows, err := s.db.QueryContext(ctx, `
		SELECT slot, COUNT(*) AS versions, COALESCE(SUM(LENGTH(payload)), 0) AS bytes
		FROM saves GROUP BY slot ORDER BY versions DESC, slot`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var ss SlotStats
		if err := rows.Scan(&ss.Slot, &ss.Versions, &ss.Bytes); err != nil {
			return st, err
		}
		st.Slots = append(st.Slots, ss)
	}

	return st, rows.Err()
}
