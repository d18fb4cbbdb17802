package table

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// KeySet is a set of key-column values, used both for the sampled identifier
// set and for semi-join filtering of dependent tables
type KeySet struct {
	values map[string]struct{}
}

func NewKeySet(values ...string) *KeySet {
	s := &KeySet{values: make(map[string]struct{}, len(values))}
	for _, v := range values {
		s.Add(v)
	}
	return s
}

func (s *KeySet) Add(value string) {
	s.values[value] = struct{}{}
}

func (s *KeySet) Contains(value string) bool {
	_, ok := s.values[value]
	return ok
}

func (s *KeySet) Len() int {
	return len(s.values)
}

// Values returns the set contents in sorted order so downstream consumers are
// independent of map iteration order
func (s *KeySet) Values() []string {
	values := maps.Keys(s.values)
	slices.Sort(values)
	return values
}
