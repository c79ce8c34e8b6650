// Package etcd keeps a tweak parameter document in an etcd key.
package etcd

import (
	"context"
	"fmt"

	"github.com/zoobzio/tweak"
	clientv3 "go.etcd.io/etcd/client/v3"
)

// Watcher watches an etcd key with the Watch API.
type Watcher struct {
	client *clientv3.Client
	key    string
}

// New creates a Watcher for key.
func New(client *clientv3.Client, key string) *Watcher {
	return &Watcher{client: client, key: key}
}

// Watch emits the key's current value, then the value of every later put.
// The watch starts at the revision after the initial read so no put is
// missed in between.
func (w *Watcher) Watch(ctx context.Context) (<-chan []byte, error) {
	resp, err := w.client.Get(ctx, w.key)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", w.key, err)
	}

	out := make(chan []byte)

	go func() {
		defer close(out)

		if len(resp.Kvs) > 0 {
			select {
			case out <- resp.Kvs[0].Value:
			case <-ctx.Done():
				return
			}
		}

		watchChan := w.client.Watch(ctx, w.key, clientv3.WithRev(resp.Header.Revision+1))
		for {
			select {
			case <-ctx.Done():
				return
			case watchResp, ok := <-watchChan:
				if !ok {
					return
				}
				if watchResp.Err() != nil {
					continue
				}
				for _, event := range watchResp.Events {
					if event.Type != clientv3.EventTypePut {
						continue
					}
					select {
					case out <- event.Kv.Value:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	return out, nil
}

// Sink puts documents into an etcd key.
type Sink struct {
	client *clientv3.Client
	key    string
}

func (s Sink) Save(ctx context.Context, data []byte) error {
	_, err := s.client.Put(ctx, s.key, string(data))
	return err
}

// Store is a tweak.Store kept in an etcd key.
type Store struct {
	*tweak.Store
	watcher *Watcher
}

// Open reads the document stored under key. A missing key yields an empty
// document.
func Open(ctx context.Context, client *clientv3.Client, key string, codec tweak.Codec) (*Store, error) {
	s := &Store{
		Store:   tweak.NewStore("etcd:"+key, codec, Sink{client: client, key: key}),
		watcher: New(client, key),
	}
	resp, err := client.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	if len(resp.Kvs) == 0 {
		return s, nil
	}
	if err := s.Load(resp.Kvs[0].Value); err != nil {
		return nil, err
	}
	return s, nil
}

// Follower returns a follower applying every put to the key.
func (s *Store) Follower(bindings ...tweak.Refresher) *tweak.Follower {
	return tweak.NewFollower(s.watcher, s.Load, bindings...)
}

var (
	_ tweak.Watcher = (*Watcher)(nil)
	_ tweak.Sink    = Sink{}
)
