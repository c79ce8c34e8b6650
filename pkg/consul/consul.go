// Package consul keeps a tweak parameter document in a Consul KV entry,
// followed with blocking queries.
package consul

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/consul/api"
	"github.com/zoobzio/tweak"
)

// Watcher watches a Consul KV key using blocking queries.
type Watcher struct {
	client *api.Client
	key    string
	wait   time.Duration
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithWaitTime bounds each blocking query. Zero uses the agent default.
func WithWaitTime(d time.Duration) Option {
	return func(w *Watcher) {
		w.wait = d
	}
}

// New creates a Watcher for key.
func New(client *api.Client, key string, opts ...Option) *Watcher {
	w := &Watcher{
		client: client,
		key:    key,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch emits the key's current value, then its value whenever the entry's
// modify index advances. Deleting the key emits nothing.
func (w *Watcher) Watch(ctx context.Context) (<-chan []byte, error) {
	kv := w.client.KV()

	pair, meta, err := kv.Get(w.key, (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", w.key, err)
	}

	out := make(chan []byte)

	go func() {
		defer close(out)

		lastIndex := meta.LastIndex
		if pair != nil {
			select {
			case out <- pair.Value:
			case <-ctx.Done():
				return
			}
		}

		for ctx.Err() == nil {
			opts := (&api.QueryOptions{WaitIndex: lastIndex, WaitTime: w.wait}).WithContext(ctx)
			pair, meta, err := kv.Get(w.key, opts)
			if err != nil {
				continue
			}
			if meta.LastIndex <= lastIndex {
				continue
			}
			lastIndex = meta.LastIndex
			if pair == nil {
				continue
			}
			select {
			case out <- pair.Value:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// Sink puts documents into a Consul KV entry.
type Sink struct {
	client *api.Client
	key    string
}

func (s Sink) Save(ctx context.Context, data []byte) error {
	_, err := s.client.KV().Put(&api.KVPair{Key: s.key, Value: data}, (&api.WriteOptions{}).WithContext(ctx))
	return err
}

// Store is a tweak.Store kept in a Consul KV entry.
type Store struct {
	*tweak.Store
	watcher *Watcher
}

// Open reads the document stored under key. A missing key yields an empty
// document.
func Open(ctx context.Context, client *api.Client, key string, codec tweak.Codec, opts ...Option) (*Store, error) {
	s := &Store{
		Store:   tweak.NewStore("consul:"+key, codec, Sink{client: client, key: key}),
		watcher: New(client, key, opts...),
	}
	pair, _, err := client.KV().Get(key, (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	if pair == nil {
		return s, nil
	}
	if err := s.Load(pair.Value); err != nil {
		return nil, err
	}
	return s, nil
}

// Follower returns a follower applying every change to the entry.
func (s *Store) Follower(bindings ...tweak.Refresher) *tweak.Follower {
	return tweak.NewFollower(s.watcher, s.Load, bindings...)
}

var (
	_ tweak.Watcher = (*Watcher)(nil)
	_ tweak.Sink    = Sink{}
)
