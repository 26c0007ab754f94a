package aggregate

import "iter"

// tally sums seconds per key and remembers first-seen key order.
type tally[K comparable] struct {
	sums  map[K]int64
	order []K
}

func newTally[K comparable]() *tally[K] {
	return &tally[K]{sums: make(map[K]int64)}
}

func (t *tally[K]) add(key K, seconds int64) {
	if _, ok := t.sums[key]; !ok {
		t.order = append(t.order, key)
	}
	t.sums[key] += seconds
}

func (t *tally[K]) all() iter.Seq2[K, int64] {
	return func(yield func(K, int64) bool) {
		for _, k := range t.order {
			if !yield(k, t.sums[k]) {
				return
			}
		}
	}
}
