package predicate

import (
	"reflect"

	"github.com/pkg/errors"

	"github.com/krew-solutions/searchspec-go/searchspec/operators"
	"github.com/krew-solutions/searchspec-go/searchspec/schema"
)

// Test is a compiled boolean test over one record instance. Stateless once
// built; safe to reuse across records.
type Test func(record any) (bool, error)

// Build compiles a resolved path, a comparison operator, a literal value and
// a declared quantifier into a single Test.
//
// A path with no collection crossing compiles to a chained member access
// followed by the comparison. A path crossing exactly one collection compiles
// to an inner single-segment test over the element type, lifted through the
// quantifier. The quantifier's negation marker negates the inner comparison
// and flips the quantified result.
func Build(path schema.Path, op operators.Operator, value any, quantifier string, registry *operators.Registry) (Test, error) {
	if !op.Valid() {
		return nil, errors.Errorf("unsupported comparison operator %q for path %q", op, path)
	}
	mode, negated, err := ParseQuantifier(quantifier)
	if err != nil {
		return nil, errors.Wrapf(err, "path %q", path)
	}
	if negated {
		if op, err = op.Negate(); err != nil {
			return nil, errors.Wrapf(err, "path %q", path)
		}
	}

	node, err := assemble(path, op, value, mode, negated)
	if err != nil {
		return nil, err
	}

	return func(record any) (bool, error) {
		ctx, err := NewStructContext(record)
		if err != nil {
			return false, err
		}
		visitor := NewEvaluateVisitor(ctx, registry)
		if err := node.Accept(visitor); err != nil {
			return false, err
		}
		return visitor.Result()
	}, nil
}

func assemble(path schema.Path, op operators.Operator, value any, mode Quantifier, negated bool) (Visitable, error) {
	segments := path.Segments()

	if !path.CrossesCollection() {
		leaf := segments[len(segments)-1]
		if isCollectionType(leaf.Type) {
			return nil, errors.Wrapf(schema.ErrNestedCollection, "path %q ends at a collection; add a member of its element type", path)
		}
		field := Field(scopeChain(segments[:len(segments)-1]), leaf.Name)
		return Compare(field, op, Value(value)), nil
	}

	at := path.CollectionAt()
	tail := segments[at+1:]
	if len(tail) != 1 {
		return nil, errors.Wrapf(schema.ErrNestedCollection, "path %q has %d members past the collection, want exactly one", path, len(tail))
	}
	if isCollectionType(tail[0].Type) {
		return nil, errors.Wrapf(schema.ErrNestedCollection, "path %q crosses a second collection at %q", path, tail[0].Name)
	}

	inner := Compare(Field(Item(), tail[0].Name), op, Value(value))
	var node Visitable = Quantified(scopeChain(segments[:at]), segments[at].Name, mode, inner)
	if negated {
		node = Not(node)
	}
	return node, nil
}

func scopeChain(segments []schema.Segment) Scope {
	var scope Scope = GlobalScope()
	for _, seg := range segments {
		scope = Object(scope, seg.Name)
	}
	return scope
}

func isCollectionType(t reflect.Type) bool {
	return t.Kind() == reflect.Slice || t.Kind() == reflect.Array
}
