package tweak

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"sync"
	"time"
)

// DefaultSaveTimeout bounds a save triggered by a target write.
const DefaultSaveTimeout = 5 * time.Second

// Sink persists an encoded parameter document.
type Sink interface {
	Save(ctx context.Context, data []byte) error
}

// Store holds a flat document of named values shared by a set of targets.
// Writes through a target update the document and save it to the sink as a
// whole; Load replaces the document, typically with a version emitted by a
// Watcher on the same source.
type Store struct {
	name    string
	codec   Codec
	sink    Sink
	timeout time.Duration

	mu  sync.RWMutex
	doc map[string]any
}

// NewStore creates an empty Store named name. A nil sink keeps the document
// in memory.
func NewStore(name string, codec Codec, sink Sink) *Store {
	return &Store{
		name:    name,
		codec:   codec,
		sink:    sink,
		timeout: DefaultSaveTimeout,
		doc:     map[string]any{},
	}
}

// SaveTimeout bounds saves triggered by target writes. Default: 5s.
func (s *Store) SaveTimeout(d time.Duration) *Store {
	s.timeout = d
	return s
}

// Name returns the store name used in signals.
func (s *Store) Name() string {
	return s.name
}

// Codec returns the document codec.
func (s *Store) Codec() Codec {
	return s.codec
}

// Load replaces the document with data. Empty data yields an empty document.
func (s *Store) Load(data []byte) error {
	doc := map[string]any{}
	if len(data) > 0 {
		if err := s.codec.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("decode %s: %w", s.name, err)
		}
	}
	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()
	return nil
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.doc[key]
	return v, ok
}

// Keys returns the document keys in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	keys := make([]string, 0, len(s.doc))
	for k := range s.doc {
		keys = append(keys, k)
	}
	s.mu.RUnlock()
	slices.Sort(keys)
	return keys
}

// Set stores value under key and saves the document.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	s.mu.Lock()
	s.doc[key] = value
	data, err := s.codec.Marshal(s.doc)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.name, err)
	}
	if s.sink == nil {
		return nil
	}
	if err := s.sink.Save(ctx, data); err != nil {
		return fmt.Errorf("save %s: %w", s.name, err)
	}
	emit(StoreSaved, KeyStore.Field(s.name), KeyTarget.Field(key))
	return nil
}

// Target returns a target bound to key.
func (s *Store) Target(key string) *StoreTarget {
	return &StoreTarget{store: s, key: key}
}

// StoreTarget is one key of a Store.
type StoreTarget struct {
	store *Store
	key   string
}

// Read returns the stored value, or nil when the key is absent.
func (t *StoreTarget) Read() any {
	v, _ := t.store.Get(t.key)
	return v
}

// Write stores value and saves the document. A value equal to the stored
// one, such as an external edit echoed back by a refresh, is not saved.
// Failures are reported through StoreFailed.
func (t *StoreTarget) Write(value any) {
	if current, ok := t.store.Get(t.key); ok && sameStored(current, value) {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), t.store.timeout)
	defer cancel()
	if err := t.store.Set(ctx, t.key, value); err != nil {
		emit(StoreFailed,
			KeyStore.Field(t.store.name),
			KeyTarget.Field(t.key),
			KeyError.Field(err.Error()),
		)
	}
}

// Key returns the document key.
func (t *StoreTarget) Key() string {
	return t.key
}

// sameStored compares document values, treating every numeric kind as
// float64 since codecs decode numbers into different kinds.
func sameStored(a, b any) bool {
	fa, aok := storedFloat(a)
	fb, bok := storedFloat(b)
	if aok && bok {
		return fa == fb
	}
	return reflect.DeepEqual(a, b)
}

func storedFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch {
	case !rv.IsValid():
		return 0, false
	case rv.CanFloat():
		return rv.Float(), true
	case rv.CanInt():
		return float64(rv.Int()), true
	case rv.CanUint():
		return float64(rv.Uint()), true
	}
	return 0, false
}

var _ Target = (*StoreTarget)(nil)
