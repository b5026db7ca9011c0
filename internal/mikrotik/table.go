package mikrotik

// table is an id-keyed list that is replaced, not edited, on every change.
// Callers hold Manager.mu.
type table[T any] struct {
	items []T
	id    func(T) string
}

func newTable[T any](items []T, id func(T) string) table[T] {
	return table[T]{items: append([]T(nil), items...), id: id}
}

func (t *table[T]) list() []T {
	return append([]T(nil), t.items...)
}

func (t *table[T]) get(id string) (T, bool) {
	for _, it := range t.items {
		if t.id(it) == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func (t *table[T]) add(it T) {
	t.items = append(t.list(), it)
}

func (t *table[T]) update(id string, fn func(T) T) (T, bool) {
	for i, it := range t.items {
		if t.id(it) != id {
			continue
		}
		next := t.list()
		next[i] = fn(it)
		t.items = next
		return next[i], true
	}
	var zero T
	return zero, false
}

func (t *table[T]) remove(id string) bool {
	next := make([]T, 0, len(t.items))
	for _, it := range t.items {
		if t.id(it) != id {
			next = append(next, it)
		}
	}
	if len(next) == len(t.items) {
		return false
	}
	t.items = next
	return true
}
