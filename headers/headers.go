// Package headers provides a case-insensitive header collection that
// preserves the insertion order of distinct header names.
//
// Values are always stored as an ordered sequence per name so that
// repeated fields such as Set-Cookie survive round-trips. Names are
// canonicalized to MIME header casing for display, lookups accept any
// casing.
package headers

import (
	"iter"
	"net/textproto"
	"slices"

	"github.com/samber/lo"
)

// Map is an insertion-ordered, case-insensitive header multimap.
// The zero value is not usable, create one with [New].
type Map struct {
	order []string            // canonical names, insertion order
	vals  map[string][]string // canonical name -> ordered values
}

// New inits an empty header map.
func New() *Map {
	return &Map{vals: make(map[string][]string)}
}

// FromPairs inits a header map from alternating key/value strings. It
// panics when given an odd number of arguments; it is meant for
// literal construction in tests and setup code.
func FromPairs(pairs ...string) *Map {
	if len(pairs)%2 != 0 {
		panic("headers: FromPairs requires an even number of arguments")
	}

	m := New()
	for i := 0; i < len(pairs); i += 2 {
		m.Set(pairs[i], pairs[i+1])
	}

	return m
}

// Len returns the number of distinct header names.
func (m *Map) Len() int {
	return len(m.order)
}

// Has reports whether any value is stored under the name.
func (m *Map) Has(name string) bool {
	_, ok := m.vals[canonical(name)]
	return ok
}

// Get returns the value stored under the name. When multiple values
// are stored it returns the first; absent names yield "".
func (m *Map) Get(name string) string {
	vals := m.vals[canonical(name)]
	if len(vals) == 0 {
		return ""
	}

	return vals[0]
}

// Values returns the ordered value sequence stored under the name. The
// returned slice is a copy, mutating it does not affect the map.
func (m *Map) Values(name string) []string {
	return slices.Clone(m.vals[canonical(name)])
}

// Set replaces all values stored under the name. Calling it without
// values removes the name entirely, like [Map.Del].
func (m *Map) Set(name string, values ...string) {
	if len(values) == 0 {
		m.Del(name)
		return
	}

	key := canonical(name)
	if _, exists := m.vals[key]; !exists {
		m.order = append(m.order, key)
	}

	m.vals[key] = slices.Clone(values)
}

// Add appends a value under the name, keeping existing values.
func (m *Map) Add(name, value string) {
	key := canonical(name)
	if _, exists := m.vals[key]; !exists {
		m.order = append(m.order, key)
	}

	m.vals[key] = append(m.vals[key], value)
}

// Del removes the name and all its values.
func (m *Map) Del(name string) {
	key := canonical(name)
	if _, exists := m.vals[key]; !exists {
		return
	}

	delete(m.vals, key)
	m.order = slices.DeleteFunc(m.order, func(k string) bool { return k == key })
}

// Names returns the canonical header names in insertion order.
func (m *Map) Names() []string {
	return slices.Clone(m.order)
}

// All iterates name/values pairs in insertion order.
func (m *Map) All() iter.Seq2[string, []string] {
	return func(yield func(string, []string) bool) {
		for _, key := range m.order {
			if !yield(key, m.vals[key]) {
				return
			}
		}
	}
}

// Clone returns a deep copy of the map.
func (m *Map) Clone() *Map {
	return &Map{
		order: slices.Clone(m.order),
		vals: lo.MapValues(m.vals, func(vals []string, _ string) []string {
			return slices.Clone(vals)
		}),
	}
}

func canonical(name string) string {
	return textproto.CanonicalMIMEHeaderKey(name)
}
