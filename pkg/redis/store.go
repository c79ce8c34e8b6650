package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/zoobzio/tweak"
)

// Sink saves documents to a Redis key.
type Sink struct {
	client *redis.Client
	key    string
}

// Save sets the key to data without expiry.
func (s Sink) Save(ctx context.Context, data []byte) error {
	return s.client.Set(ctx, s.key, data, 0).Err()
}

// Store is a tweak.Store kept in a Redis key.
type Store struct {
	*tweak.Store
	watcher *Watcher
}

// Open reads the document stored under key. A missing key yields an empty
// document that is created on the first write.
func Open(ctx context.Context, client *redis.Client, key string, codec tweak.Codec, opts ...Option) (*Store, error) {
	s := &Store{
		Store:   tweak.NewStore("redis:"+key, codec, Sink{client: client, key: key}),
		watcher: New(client, key, opts...),
	}
	data, err := client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	if err := s.Load(data); err != nil {
		return nil, err
	}
	return s, nil
}

// Follower returns a follower that reloads the document whenever the key is
// written and refreshes bindings.
func (s *Store) Follower(bindings ...tweak.Refresher) *tweak.Follower {
	return tweak.NewFollower(s.watcher, s.Load, bindings...)
}

var _ tweak.Sink = Sink{}
