package colormode

import "context"

//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks

// StoreKind identifies a persistence backend.
type StoreKind string

const (
	// StoreKindLocal is a persistent machine-local backend.
	StoreKindLocal StoreKind = "local"

	// StoreKindCookie is a per-request backend carried on HTTP
	// requests and responses.
	StoreKindCookie StoreKind = "cookie"
)

// Store persists the user's chosen mode under StorageKey.
//
// Get returns the stored mode, or false when nothing valid is stored.
// Backend failures and malformed values read as absent, never as
// errors. Set reports write failures so callers can log them;
// persistence stays best-effort either way.
type Store interface {
	Get(ctx context.Context) (Mode, bool)
	Set(ctx context.Context, mode Mode) error
	Kind() StoreKind
}
