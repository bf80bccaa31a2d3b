package criteria

import "strings"

// DefaultPageSize is used when a specification does not set one.
const DefaultPageSize = 10

type Direction string

const (
	DirectionNone Direction = ""
	DirectionAsc  Direction = "asc"
	DirectionDesc Direction = "desc"
)

// Specification is the paging and sorting surface of a search specification.
// Callers embed Spec to get it.
type Specification interface {
	PageSize() int
	CurrentPage() int
	SortField() string
	SortDirection() Direction
	Skip() int
	Take() int
}

// Spec is the embeddable base of a search specification: page size, current
// page (1-based), sort field and sort direction. Its zero value is usable and
// yields the defaults.
type Spec struct {
	pageSize    int
	currentPage int
	sortField   string
	sortDir     Direction
}

func (s *Spec) PageSize() int {
	if s.pageSize <= 0 {
		return DefaultPageSize
	}
	return s.pageSize
}

func (s *Spec) SetPageSize(n int) {
	s.pageSize = n
}

func (s *Spec) CurrentPage() int {
	if s.currentPage < 1 {
		return 1
	}
	return s.currentPage
}

func (s *Spec) SetCurrentPage(n int) {
	s.currentPage = n
}

func (s *Spec) SortField() string {
	return s.sortField
}

func (s *Spec) SetSortField(name string) {
	s.sortField = name
}

func (s *Spec) SortDirection() Direction {
	return s.sortDir
}

// SetSortDir accepts "asc" or "desc", case-insensitively. Anything else is
// rejected and the previous direction is retained.
func (s *Spec) SetSortDir(dir string) {
	switch Direction(strings.ToLower(dir)) {
	case DirectionAsc:
		s.sortDir = DirectionAsc
	case DirectionDesc:
		s.sortDir = DirectionDesc
	}
}

// Skip is the number of records dropped before the page starts. Never
// negative, whatever the page and size are set to.
func (s *Spec) Skip() int {
	skip := (s.CurrentPage() - 1) * s.PageSize()
	if skip < 0 {
		return 0
	}
	return skip
}

// Take is the number of records retained after Skip.
func (s *Spec) Take() int {
	return s.PageSize()
}
