package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Backend {
	t.Helper()

	file, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)

	return map[string]Backend{
		"file":   file,
		"memory": NewMemoryBackend(),
	}
}

func TestBackend_MissingKeyReturnsNil(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			value, err := b.Get(ctx, "absent")
			require.NoError(t, err)
			require.Nil(t, value)
		})
	}
}

func TestBackend_SetOverwritesWholeValue(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, b.Set(ctx, "users", []byte(`[{"id":1}]`)))
			require.NoError(t, b.Set(ctx, "users", []byte(`[]`)))

			value, err := b.Get(ctx, "users")
			require.NoError(t, err)
			require.Equal(t, []byte(`[]`), value)
		})
	}
}

func TestBackend_Delete(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, b.Set(ctx, "authUser", []byte(`{}`)))
			require.NoError(t, b.Delete(ctx, "authUser"))

			value, err := b.Get(ctx, "authUser")
			require.NoError(t, err)
			require.Nil(t, value)

			// deleting an absent key is not an error
			require.NoError(t, b.Delete(ctx, "authUser"))
		})
	}
}

func TestFileBackend_WritesOneFilePerKey(t *testing.T) {
	dir := t.TempDir()
	b, err := NewFileBackend(dir)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, b.Set(ctx, "cases", []byte(`[]`)))

	data, err := os.ReadFile(filepath.Join(dir, "cases.json"))
	require.NoError(t, err)
	require.Equal(t, []byte(`[]`), data)

	// no temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestFileBackend_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	b, err := NewFileBackend(dir)
	require.NoError(t, err)
	require.NoError(t, b.Set(ctx, "appointments", []byte(`[{"reason":"checkup"}]`)))

	reopened, err := NewFileBackend(dir)
	require.NoError(t, err)

	value, err := reopened.Get(ctx, "appointments")
	require.NoError(t, err)
	require.Equal(t, []byte(`[{"reason":"checkup"}]`), value)
}
