// Package zookeeper keeps a tweak parameter document in a ZooKeeper node.
package zookeeper

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-zookeeper/zk"
	"github.com/zoobzio/tweak"
)

// Watcher watches a ZooKeeper node with one-shot data watches, re-arming the
// watch after every event.
type Watcher struct {
	conn *zk.Conn
	path string
}

// New creates a Watcher for path.
func New(conn *zk.Conn, path string) *Watcher {
	return &Watcher{conn: conn, path: path}
}

// Watch emits the node's data, then its data after every change. A missing
// node is waited for.
func (w *Watcher) Watch(ctx context.Context) (<-chan []byte, error) {
	out := make(chan []byte)

	go func() {
		defer close(out)

		for {
			data, _, events, err := w.conn.GetW(w.path)
			if err != nil {
				if ctx.Err() != nil || !errors.Is(err, zk.ErrNoNode) {
					return
				}
				exists, _, created, err := w.conn.ExistsW(w.path)
				if err != nil {
					return
				}
				if !exists {
					select {
					case <-ctx.Done():
						return
					case <-created:
					}
				}
				continue
			}

			select {
			case out <- data:
			case <-ctx.Done():
				return
			}

			select {
			case <-ctx.Done():
				return
			case <-events:
			}
		}
	}()

	return out, nil
}

// Sink writes documents to a node, creating it when missing. Parent nodes
// must exist.
type Sink struct {
	conn *zk.Conn
	path string
}

// Save ignores ctx; the ZooKeeper client bounds calls with its session
// timeout.
func (s Sink) Save(_ context.Context, data []byte) error {
	_, err := s.conn.Set(s.path, data, -1)
	if errors.Is(err, zk.ErrNoNode) {
		_, err = s.conn.Create(s.path, data, 0, zk.WorldACL(zk.PermAll))
	}
	return err
}

// Store is a tweak.Store kept in a ZooKeeper node.
type Store struct {
	*tweak.Store
	watcher *Watcher
}

// Open reads the document in the node at path. A missing node yields an
// empty document.
func Open(conn *zk.Conn, path string, codec tweak.Codec) (*Store, error) {
	s := &Store{
		Store:   tweak.NewStore("zookeeper:"+path, codec, Sink{conn: conn, path: path}),
		watcher: New(conn, path),
	}
	data, _, err := conn.Get(path)
	switch {
	case errors.Is(err, zk.ErrNoNode):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	if err := s.Load(data); err != nil {
		return nil, err
	}
	return s, nil
}

// Follower returns a follower applying every change to the node.
func (s *Store) Follower(bindings ...tweak.Refresher) *tweak.Follower {
	return tweak.NewFollower(s.watcher, s.Load, bindings...)
}

var (
	_ tweak.Watcher = (*Watcher)(nil)
	_ tweak.Sink    = Sink{}
)
