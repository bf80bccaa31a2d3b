package search

import (
	"sort"

	"github.com/krew-solutions/searchspec-go/searchspec/operators"
)

// byKey orders records by a pre-read sort key, comparing through the operator
// registry so caller-registered value types sort the same way they filter.
// Absent keys (nil pointers along the sort path) order first.
type byKey[T any] struct {
	items    []T
	keys     []any
	desc     bool
	searcher *Searcher[T]
	err      error
}

func (b *byKey[T]) Len() int {
	return len(b.items)
}

func (b *byKey[T]) Swap(i, j int) {
	b.items[i], b.items[j] = b.items[j], b.items[i]
	b.keys[i], b.keys[j] = b.keys[j], b.keys[i]
}

func (b *byKey[T]) Less(i, j int) bool {
	a, c := b.keys[i], b.keys[j]
	if b.desc {
		a, c = c, a
	}
	switch {
	case a == nil && c == nil:
		return false
	case a == nil:
		return true
	case c == nil:
		return false
	}
	less, err := b.searcher.compiler.Registry().Exec(a, operators.OperatorLt, c)
	if err != nil && b.err == nil {
		b.err = err
	}
	return less
}

func stableSort[T any](b *byKey[T]) {
	sort.Stable(b)
}
