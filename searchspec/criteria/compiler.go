package criteria

import (
	stderrors "errors"
	"fmt"
	"reflect"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/krew-solutions/searchspec-go/searchspec/operators"
	"github.com/krew-solutions/searchspec-go/searchspec/predicate"
	"github.com/krew-solutions/searchspec-go/searchspec/schema"
)

// Predicate is the conjunction of all currently-meaningful criteria of one
// specification, compiled against the record type T.
type Predicate[T any] func(record T) (bool, error)

// Compiler turns a search specification into a Predicate over T.
type Compiler[T any] struct {
	resolver *schema.Resolver
	registry *operators.Registry
}

type CompilerOption[T any] func(*Compiler[T])

// WithRegistry replaces the default operator registry, e.g. to register
// comparisons for caller-owned value types.
func WithRegistry[T any](registry *operators.Registry) CompilerOption[T] {
	return func(c *Compiler[T]) {
		c.registry = registry
	}
}

func NewCompiler[T any](opts ...CompilerOption[T]) *Compiler[T] {
	c := &Compiler[T]{
		resolver: schema.For[T](),
		registry: operators.NewDefaultRegistry(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Registry exposes the operator registry the compiled tests dispatch on.
func (c *Compiler[T]) Registry() *operators.Registry {
	return c.registry
}

// Resolver exposes the path resolver bound to T.
func (c *Compiler[T]) Resolver() *schema.Resolver {
	return c.resolver
}

// Compile enumerates the declared criteria of spec, skips those whose current
// value is not meaningful, builds one test per remaining criterion and ANDs
// them. Any individual build failure fails the whole compile; no partial
// filtering is ever applied.
func (c *Compiler[T]) Compile(spec Specification) (Predicate[T], error) {
	decls, specValue, err := c.declarations(spec)
	if err != nil {
		return nil, err
	}

	var tests []predicate.Test
	for el := decls.Front(); el != nil; el = el.Next() {
		decl := el.Value
		literal, meaningful, err := currentValue(specValue.FieldByName(decl.Field))
		if err != nil {
			return nil, &FieldError{Field: decl.Field, Err: err}
		}
		if !meaningful {
			continue
		}
		path, err := c.resolver.Resolve(decl.Path)
		if err != nil {
			return nil, &FieldError{Field: decl.Field, Err: err}
		}
		test, err := predicate.Build(path, decl.Operator, literal, decl.Quantifier, c.registry)
		if err != nil {
			return nil, &FieldError{Field: decl.Field, Err: err}
		}
		tests = append(tests, test)
	}

	return func(record T) (bool, error) {
		for _, test := range tests {
			ok, err := test(record)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	}, nil
}

// Validate checks every declared criterion path, the current sort field and
// every criterion field kind against the record type, independent of current
// values. A specification that fails validation is permanently unusable.
// All offending fields are reported; the first is available through
// FirstInvalidField.
func (c *Compiler[T]) Validate(spec Specification) error {
	decls, specValue, err := c.declarations(spec)
	if err != nil {
		return err
	}

	var result *multierror.Error
	for el := decls.Front(); el != nil; el = el.Next() {
		decl := el.Value
		if err := c.validateDeclaration(decl, specValue.Type()); err != nil {
			result = multierror.Append(result, &FieldError{Field: decl.Field, Err: err})
		}
	}

	if field := spec.SortField(); field != "" {
		if err := c.validateSortField(field); err != nil {
			result = multierror.Append(result, &FieldError{Field: field, Err: err})
		}
	}

	return result.ErrorOrNil()
}

func (c *Compiler[T]) validateDeclaration(decl Declaration, specType reflect.Type) error {
	field, _ := specType.FieldByName(decl.Field)
	if !supportedValueKind(field.Type) {
		return errors.Wrapf(ErrUnsupportedValueType, "%s", field.Type)
	}
	if _, _, err := predicate.ParseQuantifier(decl.Quantifier); err != nil {
		return err
	}
	path, err := c.resolver.Resolve(decl.Path)
	if err != nil {
		return err
	}
	if path.ValueType().Kind() == reflect.Slice || path.ValueType().Kind() == reflect.Array {
		return errors.Wrapf(schema.ErrNestedCollection, "path %q ends at a collection; add a member of its element type", decl.Path)
	}
	return nil
}

func (c *Compiler[T]) validateSortField(field string) error {
	path, err := c.resolver.Resolve(field)
	if err != nil {
		return err
	}
	if path.CrossesCollection() {
		return errors.Wrapf(schema.ErrNestedCollection, "sort field %q crosses a collection", field)
	}
	return nil
}

func (c *Compiler[T]) declarations(spec Specification) (*orderedDeclarations, reflect.Value, error) {
	specValue := reflect.ValueOf(spec)
	for specValue.Kind() == reflect.Pointer {
		if specValue.IsNil() {
			return nil, reflect.Value{}, errors.New("specification is nil")
		}
		specValue = specValue.Elem()
	}
	decls, err := declarationsOf(specValue.Type())
	if err != nil {
		return nil, reflect.Value{}, err
	}
	return decls, specValue, nil
}

// FieldError ties a validation or compilation failure to the specification
// field that caused it.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// FirstInvalidField returns the name of the first offending field of a
// Validate or Compile failure.
func FirstInvalidField(err error) (string, bool) {
	var merr *multierror.Error
	if stderrors.As(err, &merr) && len(merr.Errors) > 0 {
		err = merr.Errors[0]
	}
	var ferr *FieldError
	if stderrors.As(err, &ferr) {
		return ferr.Field, true
	}
	return "", false
}
