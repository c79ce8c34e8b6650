// Package redis keeps a tweak parameter document in a Redis key and follows
// it through keyspace notifications.
package redis

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/tweak"
)

// Watcher watches a Redis key using keyspace notifications. The server must
// have them enabled:
//
//	CONFIG SET notify-keyspace-events KEA
type Watcher struct {
	client *redis.Client
	key    string
	db     int
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDB sets the database index whose keyspace channel is subscribed.
// Defaults to 0.
func WithDB(db int) Option {
	return func(w *Watcher) {
		w.db = db
	}
}

// New creates a Watcher for key.
func New(client *redis.Client, key string, opts ...Option) *Watcher {
	w := &Watcher{
		client: client,
		key:    key,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch emits the key's current value, then the value after every write to
// the key. A write that leaves the document byte-identical is not emitted.
func (w *Watcher) Watch(ctx context.Context) (<-chan []byte, error) {
	channel := fmt.Sprintf("__keyspace@%d__:%s", w.db, w.key)
	pubsub := w.client.Subscribe(ctx, channel)

	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", channel, err)
	}

	out := make(chan []byte)
	go w.run(ctx, pubsub, out)
	return out, nil
}

func (w *Watcher) run(ctx context.Context, pubsub *redis.PubSub, out chan<- []byte) {
	defer close(out)
	defer pubsub.Close()

	f := forwarder{w: w, out: out}
	if !f.send(ctx) {
		return
	}

	events := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-events:
			if !ok {
				w.report(ctx, tweak.WatchStopped, "subscription closed")
				return
			}
			if !writeEvent(msg.Payload) {
				continue
			}
			if !f.send(ctx) {
				return
			}
		}
	}
}

// writeEvent reports whether a keyspace event leaves a new value behind.
func writeEvent(event string) bool {
	switch event {
	case "set", "mset", "setex", "psetex", "setnx", "setrange", "append":
		return true
	}
	return false
}

// forwarder reads the key and sends changed documents.
type forwarder struct {
	w    *Watcher
	out  chan<- []byte
	last []byte
	sent bool
}

// send reads the key and forwards it unless it matches the last document
// sent. It reports false once the watch should end.
func (f *forwarder) send(ctx context.Context) bool {
	val, err := f.w.client.Get(ctx, f.w.key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return true
	case err != nil:
		if ctx.Err() != nil {
			return false
		}
		f.w.report(ctx, tweak.WatchSkipped, err.Error())
		return true
	case f.sent && bytes.Equal(val, f.last):
		return true
	}
	select {
	case f.out <- val:
		f.last, f.sent = val, true
		return true
	case <-ctx.Done():
		return false
	}
}

func (w *Watcher) report(ctx context.Context, sig capitan.Signal, reason string) {
	capitan.Emit(ctx, sig,
		tweak.KeyStore.Field(fmt.Sprintf("redis:%d/%s", w.db, w.key)),
		tweak.KeyError.Field(reason),
	)
}

var _ tweak.Watcher = (*Watcher)(nil)
