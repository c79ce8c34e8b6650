package tweak

import (
	"fmt"
	"sort"
	"sync"
)

// ValueMap is a fixed set of named Values of possibly different types.
// Controllers use it to group view properties such as a slider's bounds.
type ValueMap struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewValueMap creates an empty ValueMap.
func NewValueMap() *ValueMap {
	return &ValueMap{values: make(map[string]any)}
}

// Define adds value under key, replacing any previous definition.
func Define[T any](m *ValueMap, key string, value *Value[T]) *ValueMap {
	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()
	return m
}

// MapValue returns the Value stored under key. It fails with ErrUnknownKey
// when the key is missing or holds a Value of another type.
func MapValue[T any](m *ValueMap, key string) (*Value[T], error) {
	m.mu.RLock()
	raw, ok := m.values[key]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	v, ok := raw.(*Value[T])
	if !ok {
		return nil, fmt.Errorf("%w: %q holds %T", ErrUnknownKey, key, raw)
	}
	return v, nil
}

// Keys returns the defined keys in sorted order.
func (m *ValueMap) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
