package nats

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/zoobzio/tweak"
)

// Sink puts documents into a key-value bucket.
type Sink struct {
	kv  jetstream.KeyValue
	key string
}

func (s Sink) Save(ctx context.Context, data []byte) error {
	_, err := s.kv.Put(ctx, s.key, data)
	return err
}

// Store is a tweak.Store kept under one key of a bucket.
type Store struct {
	*tweak.Store
	watcher *Watcher
}

// Open reads the document stored under key. A missing key yields an empty
// document.
func Open(ctx context.Context, kv jetstream.KeyValue, key string, codec tweak.Codec, opts ...Option) (*Store, error) {
	s := &Store{
		Store:   tweak.NewStore("nats:"+kv.Bucket()+"/"+key, codec, Sink{kv: kv, key: key}),
		watcher: New(kv, key, opts...),
	}
	entry, err := kv.Get(ctx, key)
	switch {
	case errors.Is(err, jetstream.ErrKeyNotFound):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	if err := s.Load(entry.Value()); err != nil {
		return nil, err
	}
	return s, nil
}

// Follower returns a follower applying every revision of the key.
func (s *Store) Follower(bindings ...tweak.Refresher) *tweak.Follower {
	return tweak.NewFollower(s.watcher, s.Load, bindings...)
}

var _ tweak.Sink = Sink{}
