// Package nats keeps a tweak parameter document in a NATS JetStream
// key-value bucket.
package nats

import (
	"bytes"
	"context"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/tweak"
)

// Watcher watches a key in a JetStream key-value bucket.
type Watcher struct {
	kv   jetstream.KeyValue
	key  string
	opts []jetstream.WatchOpt
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithWatchOptions passes options through to KeyValue.Watch.
func WithWatchOptions(opts ...jetstream.WatchOpt) Option {
	return func(w *Watcher) {
		w.opts = append(w.opts, opts...)
	}
}

// New creates a Watcher for key.
func New(kv jetstream.KeyValue, key string, opts ...Option) *Watcher {
	w := &Watcher{
		kv:  kv,
		key: key,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch emits the key's latest value, then every value put afterwards.
// Deletes and purges are skipped and reported through tweak.WatchSkipped;
// a put that repeats the last document is dropped.
func (w *Watcher) Watch(ctx context.Context) (<-chan []byte, error) {
	kw, err := w.kv.Watch(ctx, w.key, w.opts...)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", w.key, err)
	}

	out := make(chan []byte)
	go w.run(ctx, kw, out)
	return out, nil
}

func (w *Watcher) run(ctx context.Context, kw jetstream.KeyWatcher, out chan<- []byte) {
	defer close(out)
	defer kw.Stop() //nolint:errcheck // best effort on shutdown

	var last []byte
	sent := false
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-kw.Updates():
			if !ok {
				if ctx.Err() == nil {
					w.report(ctx, tweak.WatchStopped, "updates closed")
				}
				return
			}
			value, reason := document(entry)
			switch {
			case reason != "":
				w.report(ctx, tweak.WatchSkipped, reason)
				continue
			case value == nil:
				continue
			case sent && bytes.Equal(value, last):
				continue
			}
			select {
			case out <- value:
				last, sent = value, true
			case <-ctx.Done():
				return
			}
		}
	}
}

// document extracts the document carried by entry. A nil entry marks the
// end of the initial values and yields nothing; removals yield a reason.
func document(entry jetstream.KeyValueEntry) ([]byte, string) {
	if entry == nil {
		return nil, ""
	}
	switch entry.Operation() {
	case jetstream.KeyValueDelete:
		return nil, fmt.Sprintf("deleted at revision %d", entry.Revision())
	case jetstream.KeyValuePurge:
		return nil, fmt.Sprintf("purged at revision %d", entry.Revision())
	}
	return entry.Value(), ""
}

func (w *Watcher) report(ctx context.Context, sig capitan.Signal, reason string) {
	capitan.Emit(ctx, sig,
		tweak.KeyStore.Field("nats:"+w.kv.Bucket()+"/"+w.key),
		tweak.KeyError.Field(reason),
	)
}

var _ tweak.Watcher = (*Watcher)(nil)
