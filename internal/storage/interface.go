package storage

import (
	"context"
	"errors"
	"io"
)

var ErrInvalidKey = errors.New("invalid storage key")

// Store holds uploaded media under slash-separated keys such as
// "avatars/<user>/<file>.png".
type Store interface {
	// Save writes r under key and returns the number of bytes stored.
	Save(ctx context.Context, key string, r io.Reader) (int64, error)

	// Open returns the stored file. A missing key yields an error matching fs.ErrNotExist.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// URL is the public address the file is served from.
	URL(key string) string

	// KeyFromURL reverses URL. ok is false for addresses this store did not issue.
	KeyFromURL(url string) (key string, ok bool)
}
