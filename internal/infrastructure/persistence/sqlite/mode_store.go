package sqlite

import (
	"context"
	"database/sql"

	"github.com/bnema/shade/internal/logging"
	"github.com/bnema/shade/pkg/colormode"
)

type modeStore struct {
	db  *sql.DB
	key string
}

// NewModeStore creates a SQLite-backed color mode store. The mode is
// kept as a single row in the preferences table under colormode.StorageKey.
func NewModeStore(db *sql.DB) colormode.Store {
	return &modeStore{db: db, key: colormode.StorageKey}
}

func (s *modeStore) Get(ctx context.Context) (colormode.Mode, bool) {
	log := logging.FromContext(ctx)

	const q = `SELECT value FROM preferences WHERE key = ?`
	var value string
	err := s.db.QueryRowContext(ctx, q, s.key).Scan(&value)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Debug().Err(err).Msg("failed to read stored color mode")
		}
		return "", false
	}

	mode, ok := colormode.ParseMode(value)
	if !ok {
		// A corrupt row reads as absent; it is rewritten on the next Set.
		log.Debug().Str("value", value).Msg("ignoring malformed stored color mode")
		return "", false
	}
	return mode, true
}

func (s *modeStore) Set(ctx context.Context, mode colormode.Mode) error {
	log := logging.FromContext(ctx)
	log.Debug().Str("mode", string(mode)).Msg("storing color mode")

	const q = `
		INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`
	_, err := s.db.ExecContext(ctx, q, s.key, string(mode))
	return err
}

func (s *modeStore) Kind() colormode.StoreKind {
	return colormode.StoreKindLocal
}
