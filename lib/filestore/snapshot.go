package filestore

import (
	"github.com/ValentinKolb/dEnv/lib/value"
)

// Snapshot is the decoded content of the backing file: a mapping from key to
// value that remembers the order in which keys were first seen.
type Snapshot struct {
	keys   []string
	values map[string]value.Value
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{values: make(map[string]value.Value)}
}

// Get returns the value for key and whether it is present.
func (s *Snapshot) Get(key string) (value.Value, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Set inserts or updates key. An existing key keeps its position.
func (s *Snapshot) Set(key string, v value.Value) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = v
}

// Delete removes key from the snapshot.
func (s *Snapshot) Delete(key string) {
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of entries.
func (s *Snapshot) Len() int { return len(s.keys) }

// Keys returns the keys in insertion order.
func (s *Snapshot) Keys() []string {
	keys := make([]string, len(s.keys))
	copy(keys, s.keys)
	return keys
}

// Range calls fn for every entry in insertion order until fn returns false.
func (s *Snapshot) Range(fn func(key string, v value.Value) bool) {
	for _, k := range s.keys {
		if !fn(k, s.values[k]) {
			return
		}
	}
}

// Equal reports whether both snapshots hold the same entries, ignoring order.
func (s *Snapshot) Equal(o *Snapshot) bool {
	if s.Len() != o.Len() {
		return false
	}
	for k, v := range s.values {
		ov, ok := o.values[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}
