package schema

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrUnknownMember is returned when a path segment does not name a member
	// of the type reached so far.
	ErrUnknownMember = errors.New("unknown member")
	// ErrNestedCollection is returned when a path crosses more than one
	// collection level. See Resolver.
	ErrNestedCollection = errors.New("nested collections are not supported")
)

// Resolver resolves dotted member paths against a root record type.
//
// Member lookup is case-sensitive and exact. A path may be authored
// fully-qualified ("Order.Customer.Name" against root Order); the redundant
// leading segment is stripped. A path may cross at most one collection
// (slice or array) level; its remaining segments resolve against the
// collection's element type.
type Resolver struct {
	root reflect.Type
}

func NewResolver(root reflect.Type) *Resolver {
	return &Resolver{root: underlying(root)}
}

// For builds a Resolver for the record type T.
func For[T any]() *Resolver {
	return NewResolver(reflect.TypeOf((*T)(nil)).Elem())
}

// Root returns the root record type the resolver walks.
func (r *Resolver) Root() reflect.Type {
	return r.root
}

// Segment is one resolved step of a path: the member name and the member's
// declared type (pointers unwrapped).
type Segment struct {
	Name string
	Type reflect.Type
}

// Path is an ordered sequence of resolved segments from the record root to a
// final value.
type Path struct {
	raw          string
	segments     []Segment
	collectionAt int
	elemType     reflect.Type
}

// String returns the path as authored, minus any stripped root prefix.
func (p Path) String() string {
	return p.raw
}

func (p Path) Segments() []Segment {
	return p.segments
}

// ValueType is the type of the value the full path points at.
func (p Path) ValueType() reflect.Type {
	return p.segments[len(p.segments)-1].Type
}

// CrossesCollection reports whether some segment of the path is a collection
// with further segments resolved against its element type.
func (p Path) CrossesCollection() bool {
	return p.collectionAt >= 0
}

// CollectionAt returns the index of the collection-valued segment, or -1.
func (p Path) CollectionAt() int {
	return p.collectionAt
}

// ElemType returns the element type of the crossed collection, or nil when
// the path does not cross one.
func (p Path) ElemType() reflect.Type {
	return p.elemType
}

// Resolve walks the path level by level and returns the resolved segments.
// Every level must correspond to an existing member on the type reached so
// far; the first failing segment aborts the walk with ErrUnknownMember.
func (r *Resolver) Resolve(path string) (Path, error) {
	parts := strings.Split(path, ".")
	if parts[0] == r.root.Name() && len(parts) > 1 {
		if _, own := r.root.FieldByName(parts[0]); !own {
			parts = parts[1:]
		}
	}

	resolved := Path{raw: strings.Join(parts, "."), collectionAt: -1}
	current := r.root
	for i, name := range parts {
		if isCollection(current) {
			if resolved.collectionAt >= 0 {
				return Path{}, errors.Wrapf(ErrNestedCollection, "path %q crosses a second collection before %q", path, name)
			}
			resolved.collectionAt = i - 1
			resolved.elemType = underlying(current.Elem())
			current = resolved.elemType
		}
		if name == "" {
			return Path{}, errors.Wrapf(ErrUnknownMember, "path %q has an empty segment", path)
		}
		if current.Kind() != reflect.Struct {
			return Path{}, errors.Wrapf(ErrUnknownMember, "segment %q of path %q: %s has no members", name, path, current)
		}
		field, ok := current.FieldByName(name)
		if !ok {
			return Path{}, errors.Wrapf(ErrUnknownMember, "segment %q of path %q on type %s", name, path, current)
		}
		segType := underlying(field.Type)
		resolved.segments = append(resolved.segments, Segment{Name: name, Type: segType})
		current = segType
	}
	if len(resolved.segments) == 0 {
		return Path{}, errors.Wrapf(ErrUnknownMember, "empty path against %s", r.root)
	}
	return resolved, nil
}

// EffectiveType unwraps one level of collection-of-T into T when selectSingle
// is set; otherwise the type is returned unchanged.
func EffectiveType(t reflect.Type, selectSingle bool) reflect.Type {
	if selectSingle && isCollection(t) {
		return underlying(t.Elem())
	}
	return t
}

// Read reads the value at the path from a record instance. Nil pointers along
// the way yield a nil value, not an error. The path must not cross a
// collection; reading through one has no single value to return.
func (p Path) Read(record any) (any, error) {
	if p.CrossesCollection() {
		return nil, errors.Wrapf(ErrNestedCollection, "cannot read single value at %q through a collection", p.raw)
	}
	v := reflect.ValueOf(record)
	for _, seg := range p.segments {
		for v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return nil, nil
			}
			v = v.Elem()
		}
		v = v.FieldByName(seg.Name)
		if !v.IsValid() {
			return nil, errors.Wrapf(ErrUnknownMember, "member %q of %T", seg.Name, record)
		}
	}
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, nil
		}
		v = v.Elem()
	}
	return v.Interface(), nil
}

func isCollection(t reflect.Type) bool {
	return t.Kind() == reflect.Slice || t.Kind() == reflect.Array
}

func underlying(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
