package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shelterops/shelter-console/internal/models"
	"github.com/shelterops/shelter-console/internal/storage"
)

func newStorage(t *testing.T) *Storage {
	t.Helper()

	st, err := New(filepath.Join(t.TempDir(), "nested", DefaultFileName))
	require.NoError(t, err)

	return st
}

func TestNew_EmptyPath(t *testing.T) {
	t.Parallel()

	_, err := New("")
	require.Error(t, err)
}

func TestLoad_NoEntry(t *testing.T) {
	t.Parallel()

	st := newStorage(t)

	_, err := st.Load(context.Background())
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	st := newStorage(t)
	ctx := context.Background()

	pair := &models.TokenPair{Access: "A1", Refresh: "R1"}
	require.NoError(t, st.Save(ctx, pair))

	got, err := st.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, pair, got)
}

func TestSave_OverwritesPrevious(t *testing.T) {
	t.Parallel()

	st := newStorage(t)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, &models.TokenPair{Access: "A1", Refresh: "R1"}))
	require.NoError(t, st.Save(ctx, &models.TokenPair{Access: "A2", Refresh: "R2"}))

	got, err := st.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "A2", got.Access)
	require.Equal(t, "R2", got.Refresh)
}

func TestLoad_CorruptedJSON(t *testing.T) {
	t.Parallel()

	st := newStorage(t)
	require.NoError(t, os.WriteFile(st.path, []byte("{not json"), 0o600))

	_, err := st.Load(context.Background())
	require.ErrorIs(t, err, storage.ErrCorrupted)
}

func TestLoad_HalfPairIsCorrupted(t *testing.T) {
	t.Parallel()

	st := newStorage(t)
	require.NoError(t, os.WriteFile(st.path, []byte(`{"access":"A1"}`), 0o600))

	_, err := st.Load(context.Background())
	require.ErrorIs(t, err, storage.ErrCorrupted)
}

func TestClear_Idempotent(t *testing.T) {
	t.Parallel()

	st := newStorage(t)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, &models.TokenPair{Access: "A1", Refresh: "R1"}))
	require.NoError(t, st.Clear(ctx))
	// Повторный Clear по отсутствующей записи — не ошибка.
	require.NoError(t, st.Clear(ctx))

	_, err := st.Load(ctx)
	require.ErrorIs(t, err, storage.ErrNotFound)
}
