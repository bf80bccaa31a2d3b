package search

import (
	"github.com/pkg/errors"

	"github.com/krew-solutions/searchspec-go/searchspec/criteria"
)

// DefaultPageCount caps how many pages' worth of records are counted exactly.
const DefaultPageCount = 100

// Result is one page of matching records plus a total-count estimate. Total
// is exact below the searcher's counting ceiling and capped at
// pageCount × pageSize above it.
type Result[T any] struct {
	Items []T
	Total int
}

// Searcher runs a search specification against a record slice: filter by the
// compiled criteria, sort, then skip/take. Every call is independent and
// deterministic given a stable sort key.
type Searcher[T any] struct {
	compiler  *criteria.Compiler[T]
	pageCount int
}

type Option[T any] func(*Searcher[T])

// WithPageCount sets the exact-counting ceiling, in pages.
func WithPageCount[T any](pages int) Option[T] {
	return func(s *Searcher[T]) {
		s.pageCount = pages
	}
}

// WithCompiler replaces the default criteria compiler, e.g. one carrying a
// custom operator registry.
func WithCompiler[T any](c *criteria.Compiler[T]) Option[T] {
	return func(s *Searcher[T]) {
		s.compiler = c
	}
}

func New[T any](opts ...Option[T]) *Searcher[T] {
	s := &Searcher[T]{
		compiler:  criteria.NewCompiler[T](),
		pageCount: DefaultPageCount,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate checks a specification against the record type without running a
// search. A specification failing validation must be fixed and re-validated,
// not retried.
func (s *Searcher[T]) Validate(spec criteria.Specification) error {
	return s.compiler.Validate(spec)
}

// Search filters records by the specification's meaningful criteria, sorts
// when both sort field and direction are set, and returns the requested page
// together with the total-count estimate.
func (s *Searcher[T]) Search(records []T, spec criteria.Specification) (Result[T], error) {
	pred, err := s.compiler.Compile(spec)
	if err != nil {
		return Result[T]{}, err
	}

	filtered := make([]T, 0, len(records))
	for _, record := range records {
		ok, err := pred(record)
		if err != nil {
			return Result[T]{}, err
		}
		if ok {
			filtered = append(filtered, record)
		}
	}

	if spec.SortField() != "" && spec.SortDirection() != criteria.DirectionNone {
		if err := s.sort(filtered, spec); err != nil {
			return Result[T]{}, err
		}
	}

	total := len(filtered)
	if ceiling := s.pageCount * spec.PageSize(); total > ceiling {
		total = ceiling
	}

	return Result[T]{Items: page(filtered, spec.Skip(), spec.Take()), Total: total}, nil
}

func page[T any](records []T, skip, take int) []T {
	if skip >= len(records) {
		return nil
	}
	records = records[skip:]
	if take < len(records) {
		records = records[:take]
	}
	return records
}

func (s *Searcher[T]) sort(records []T, spec criteria.Specification) error {
	path, err := s.compiler.Resolver().Resolve(spec.SortField())
	if err != nil {
		return errors.Wrapf(err, "sort field %q", spec.SortField())
	}

	keys := make([]any, len(records))
	for i := range records {
		if keys[i], err = path.Read(records[i]); err != nil {
			return errors.Wrapf(err, "sort field %q", spec.SortField())
		}
	}

	sorter := &byKey[T]{
		items:    records,
		keys:     keys,
		desc:     spec.SortDirection() == criteria.DirectionDesc,
		searcher: s,
	}
	stableSort(sorter)
	if sorter.err != nil {
		return errors.Wrapf(sorter.err, "sort field %q", spec.SortField())
	}
	return nil
}
