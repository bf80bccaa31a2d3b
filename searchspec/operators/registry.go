package operators

import (
	"fmt"
	"reflect"
)

type BinaryOp func(left, right any) (bool, error)

type binaryKey struct {
	left  reflect.Type
	op    Operator
	right reflect.Type
}

// Registry dispatches a comparison operator over the runtime types of its
// operands. Lookups fall back to the operand interfaces (EqualOperand etc.)
// so caller-owned value types participate without registration.
type Registry struct {
	binary map[binaryKey]BinaryOp
}

func NewRegistry() *Registry {
	return &Registry{
		binary: make(map[binaryKey]BinaryOp),
	}
}

func RegisterBinary[L, R any](reg *Registry, op Operator, fn func(L, R) (bool, error)) {
	var zeroL L
	var zeroR R
	key := binaryKey{
		left:  reflect.TypeOf(zeroL),
		op:    op,
		right: reflect.TypeOf(zeroR),
	}
	reg.binary[key] = func(left, right any) (bool, error) {
		return fn(left.(L), right.(R))
	}
}

// Exec applies op to left and right. A nil operand never matches: the result
// is false without consulting any registered function.
func (r *Registry) Exec(left any, op Operator, right any) (bool, error) {
	if left == nil || right == nil {
		return false, nil
	}

	fn, err := r.lookup(left, op, right)
	if err != nil {
		return false, err
	}
	return fn(left, right)
}

func (r *Registry) lookup(left any, op Operator, right any) (BinaryOp, error) {
	key := binaryKey{
		left:  reflect.TypeOf(left),
		op:    op,
		right: reflect.TypeOf(right),
	}
	fn, ok := r.binary[key]
	if ok {
		return fn, nil
	}

	if fallback := interfaceFallback(left, op); fallback != nil {
		return fallback, nil
	}

	return nil, fmt.Errorf("operator %q is not supported for %T and %T", op, left, right)
}

func interfaceFallback(left any, op Operator) BinaryOp {
	switch op {
	case OperatorEq:
		if _, ok := left.(EqualOperand); ok {
			return equalFallback(false)
		}
	case OperatorNe:
		if _, ok := left.(EqualOperand); ok {
			return equalFallback(true)
		}
	case OperatorGt:
		if _, ok := left.(GreaterThanOperand); ok {
			return func(left, right any) (bool, error) {
				l, r, err := operands[GreaterThanOperand](left, right)
				if err != nil {
					return false, err
				}
				return l.GreaterThan(r), nil
			}
		}
	case OperatorGte:
		if _, ok := left.(GreaterThanEqualOperand); ok {
			return func(left, right any) (bool, error) {
				l, r, err := operands[GreaterThanEqualOperand](left, right)
				if err != nil {
					return false, err
				}
				return l.GreaterThanEqual(r), nil
			}
		}
	case OperatorLt:
		if _, ok := left.(LessThanOperand); ok {
			return func(left, right any) (bool, error) {
				l, r, err := operands[LessThanOperand](left, right)
				if err != nil {
					return false, err
				}
				return l.LessThan(r), nil
			}
		}
	case OperatorLte:
		if _, ok := left.(LessThanEqualOperand); ok {
			return func(left, right any) (bool, error) {
				l, r, err := operands[LessThanEqualOperand](left, right)
				if err != nil {
					return false, err
				}
				return l.LessThanEqual(r), nil
			}
		}
	}
	return nil
}

func equalFallback(negate bool) BinaryOp {
	return func(left, right any) (bool, error) {
		l, r, err := operands[EqualOperand](left, right)
		if err != nil {
			return false, err
		}
		return l.Equal(r) != negate, nil
	}
}

func operands[T any](left, right any) (l, r T, err error) {
	l, ok := left.(T)
	if !ok {
		return l, r, fmt.Errorf("left operand %T does not implement %s", left, reflect.TypeOf((*T)(nil)).Elem().Name())
	}
	r, ok = right.(T)
	if !ok {
		return l, r, fmt.Errorf("right operand %T does not implement %s", right, reflect.TypeOf((*T)(nil)).Elem().Name())
	}
	return l, r, nil
}
