package predicate

import (
	"reflect"

	"github.com/pkg/errors"

	"github.com/krew-solutions/searchspec-go/searchspec/schema"
)

// Context is the evaluation-time view of one object: it resolves a member
// name to its current value.
type Context interface {
	Get(name string) (any, error)
}

// NewStructContext wraps a record struct (or pointer to one) as a Context.
// Member lookup is case-sensitive; nil pointers read as nil values.
func NewStructContext(record any) (Context, error) {
	v := reflect.ValueOf(record)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, errors.Errorf("cannot evaluate a nil %T", record)
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, errors.Errorf("record %T is not a struct", record)
	}
	return structContext{v: v}, nil
}

type structContext struct {
	v reflect.Value
}

func (c structContext) Get(name string) (any, error) {
	field := c.v.FieldByName(name)
	if !field.IsValid() {
		return nil, errors.Wrapf(schema.ErrUnknownMember, "member %q of %s", name, c.v.Type())
	}
	for field.Kind() == reflect.Pointer {
		if field.IsNil() {
			return nil, nil
		}
		field = field.Elem()
	}
	return field.Interface(), nil
}

// asContext adapts a member value to a Context for further descent. Values
// that already implement Context (map-backed test contexts) pass through.
// A nil value adapts to a context whose members all read as nil, so that
// comparisons against members of an absent object never match.
func asContext(value any) (Context, error) {
	if value == nil {
		return nullContext{}, nil
	}
	if ctx, ok := value.(Context); ok {
		return ctx, nil
	}
	return NewStructContext(value)
}

type nullContext struct{}

func (nullContext) Get(string) (any, error) {
	return nil, nil
}

// items adapts a collection-valued member to its elements. Each element is
// later adapted with asContext by the evaluation.
func items(value any) ([]any, error) {
	if value == nil {
		return nil, nil
	}
	if ctxs, ok := value.([]Context); ok {
		out := make([]any, len(ctxs))
		for i := range ctxs {
			out[i] = ctxs[i]
		}
		return out, nil
	}
	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, errors.Errorf("value %T is not a collection", value)
	}
	out := make([]any, v.Len())
	for i := 0; i < v.Len(); i++ {
		out[i] = v.Index(i).Interface()
	}
	return out, nil
}
