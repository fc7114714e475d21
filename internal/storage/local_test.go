package storage_test

import (
	"context"
	"io"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"members-lounge-backend/internal/storage"
)

func TestLocalStore_SaveOpenDelete(t *testing.T) {
	store, err := storage.NewLocalStore(storage.Config{Dir: t.TempDir(), BaseURL: "https://lounge.example.com/"})
	require.NoError(t, err)
	ctx := context.Background()

	n, err := store.Save(ctx, "avatars/u1/a.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, int64(9), n)

	f, err := store.Open(ctx, "avatars/u1/a.png")
	require.NoError(t, err)
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Delete(ctx, "avatars/u1/a.png"))
	require.NoError(t, store.Delete(ctx, "avatars/u1/a.png"))

	_, err = store.Open(ctx, "avatars/u1/a.png")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLocalStore_RejectsEscapingKeys(t *testing.T) {
	store, err := storage.NewLocalStore(storage.Config{Dir: t.TempDir()})
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"", "../secret", "/etc/passwd", "avatars/../../x", "a//b", `a\b`} {
		_, err := store.Save(ctx, key, strings.NewReader("x"))
		assert.ErrorIs(t, err, storage.ErrInvalidKey, key)
	}
}

func TestLocalStore_URL(t *testing.T) {
	store, err := storage.NewLocalStore(storage.Config{Dir: t.TempDir(), BaseURL: "https://lounge.example.com"})
	require.NoError(t, err)

	url := store.URL("avatars/u1/a.png")
	assert.Equal(t, "https://lounge.example.com/media/avatars/u1/a.png", url)

	key, ok := store.KeyFromURL(url)
	assert.True(t, ok)
	assert.Equal(t, "avatars/u1/a.png", key)

	_, ok = store.KeyFromURL("https://cdn.example.com/a.png")
	assert.False(t, ok)
	_, ok = store.KeyFromURL("https://lounge.example.com/media/../config.yaml")
	assert.False(t, ok)
}
