// Package orderedmap is a map that remembers first-insertion order of its
// keys. Iteration over Keys/Values is deterministic, which the extractor
// relies on both for the canonical type registry and for JSON key order.
package orderedmap

type OrderedMap[K comparable, V any] struct {
	underlying map[K]V
	order      []K
}

func New[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		underlying: make(map[K]V),
	}
}

// Set inserts or overwrites. Overwriting an existing key keeps its
// original position in the order.
func (m *OrderedMap[K, V]) Set(key K, value V) {
	if _, exists := m.underlying[key]; !exists {
		m.order = append(m.order, key)
	}
	m.underlying[key] = value
}

func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	value, ok := m.underlying[key]
	return value, ok
}

func (m *OrderedMap[K, V]) Has(key K) bool {
	_, ok := m.underlying[key]
	return ok
}

func (m *OrderedMap[K, V]) Delete(key K) {
	if _, exists := m.underlying[key]; !exists {
		return
	}
	delete(m.underlying, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in first-insertion order. The returned slice is
// the map's own backing array; callers must not modify it.
func (m *OrderedMap[K, V]) Keys() []K {
	return m.order
}

func (m *OrderedMap[K, V]) Values() []V {
	values := make([]V, len(m.order))
	for i, k := range m.order {
		values[i] = m.underlying[k]
	}
	return values
}

func (m *OrderedMap[K, V]) Len() int {
	return len(m.order)
}
