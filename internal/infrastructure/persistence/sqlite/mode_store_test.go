package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/shade/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/shade/internal/logging"
	"github.com/bnema/shade/pkg/colormode"
)

func testCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := testCtx()
	dbPath := filepath.Join(t.TempDir(), "shade.db")

	db, err := sqlite.NewConnection(ctx, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestModeStore_GetAbsentOnFreshDatabase(t *testing.T) {
	ctx := testCtx()
	store := sqlite.NewModeStore(openTestDB(t))

	_, ok := store.Get(ctx)
	assert.False(t, ok)
}

func TestModeStore_SetThenGet(t *testing.T) {
	ctx := testCtx()
	store := sqlite.NewModeStore(openTestDB(t))

	require.NoError(t, store.Set(ctx, colormode.ModeDark))

	mode, ok := store.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, colormode.ModeDark, mode)
}

func TestModeStore_SetOverwrites(t *testing.T) {
	ctx := testCtx()
	store := sqlite.NewModeStore(openTestDB(t))

	require.NoError(t, store.Set(ctx, colormode.ModeDark))
	require.NoError(t, store.Set(ctx, colormode.ModeLight))

	mode, ok := store.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, colormode.ModeLight, mode)
}

func TestModeStore_MalformedValueReadsAsAbsent(t *testing.T) {
	ctx := testCtx()
	db := openTestDB(t)
	store := sqlite.NewModeStore(db)

	_, err := db.ExecContext(ctx,
		"INSERT INTO preferences (key, value) VALUES (?, ?)",
		colormode.StorageKey, "solarized")
	require.NoError(t, err)

	_, ok := store.Get(ctx)
	assert.False(t, ok)

	// The next explicit write replaces the corrupt row.
	require.NoError(t, store.Set(ctx, colormode.ModeDark))
	mode, ok := store.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, colormode.ModeDark, mode)
}

func TestModeStore_SurvivesReopen(t *testing.T) {
	ctx := testCtx()
	dbPath := filepath.Join(t.TempDir(), "shade.db")

	db, err := sqlite.NewConnection(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, sqlite.NewModeStore(db).Set(ctx, colormode.ModeDark))
	require.NoError(t, db.Close())

	db, err = sqlite.NewConnection(ctx, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mode, ok := sqlite.NewModeStore(db).Get(ctx)
	require.True(t, ok)
	assert.Equal(t, colormode.ModeDark, mode)
}

func TestModeStore_Kind(t *testing.T) {
	store := sqlite.NewModeStore(openTestDB(t))
	assert.Equal(t, colormode.StoreKindLocal, store.Kind())
}
