package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/tweak"
)

// Sink saves documents to a file.
type Sink struct {
	path string
}

// Save writes data to the file, replacing its contents.
func (s Sink) Save(ctx context.Context, data []byte) error {
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		failed(s.path, err)
		return err
	}
	capitan.Emit(ctx, FileWritten, KeyPath.Field(s.path))
	return nil
}

// Store is a tweak.Store persisted to a file.
type Store struct {
	*tweak.Store
	path string
}

// Open loads the document at path. A missing file yields an empty document
// that is created on the first write.
func Open(path string, codec tweak.Codec) (*Store, error) {
	s := &Store{
		Store: tweak.NewStore(path, codec, Sink{path: path}),
		path:  path,
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return s, nil
	case err != nil:
		failed(path, err)
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := s.Load(data); err != nil {
		return nil, err
	}
	return s, nil
}

// ForPath picks the codec from the file extension.
func ForPath(path string) tweak.Codec {
	return tweak.CodecFor(path)
}

// Path returns the document path.
func (s *Store) Path() string {
	return s.path
}

// Follower returns a debounced follower that reloads the document on every
// edit of the file and refreshes bindings.
func (s *Store) Follower(bindings ...tweak.Refresher) *tweak.Follower {
	return tweak.NewFollower(New(s.path), s.Load, bindings...).Debounce(tweak.DefaultDebounce)
}

// Follow runs Follower until ctx is done.
func (s *Store) Follow(ctx context.Context, bindings ...tweak.Refresher) error {
	return s.Follower(bindings...).Run(ctx)
}

var _ tweak.Sink = Sink{}
