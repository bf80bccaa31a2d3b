package predicate

import (
	"github.com/pkg/errors"

	"github.com/krew-solutions/searchspec-go/searchspec/operators"
)

func NewEvaluateVisitor(ctx Context, registry *operators.Registry) *EvaluateVisitor {
	return &EvaluateVisitor{
		Context:  ctx,
		registry: registry,
	}
}

// EvaluateVisitor walks an expression tree against one record instance and
// produces a boolean. The Context stack tracks the object currently in scope
// while field chains and quantified collections are descended.
type EvaluateVisitor struct {
	currentValue any
	currentItem  Context
	stack        []Context
	registry     *operators.Registry
	Context
}

func (v *EvaluateVisitor) push(ctx Context) {
	v.stack = append(v.stack, v.Context)
	v.Context = ctx
}

func (v *EvaluateVisitor) pop() {
	v.Context = v.stack[len(v.stack)-1]
	v.stack = v.stack[:len(v.stack)-1]
}

func (v EvaluateVisitor) CurrentValue() any {
	return v.currentValue
}

func (v *EvaluateVisitor) SetCurrentValue(val any) {
	v.currentValue = val
}

func (v *EvaluateVisitor) VisitGlobalScope(n GlobalScopeNode) error {
	v.push(v.Context)
	return nil
}

func (v *EvaluateVisitor) VisitObject(n ObjectNode) error {
	err := n.Parent().Accept(v)
	if err != nil {
		return err
	}
	obj, err := v.Context.Get(n.Name())
	v.pop()
	if err != nil {
		return err
	}
	ctx, err := asContext(obj)
	if err != nil {
		return errors.Wrapf(err, "member %q is not an object", n.Name())
	}
	v.push(ctx)
	return nil
}

func (v *EvaluateVisitor) VisitCollection(n CollectionNode) error {
	err := n.Parent().Accept(v)
	if err != nil {
		return err
	}
	raw, err := v.Context.Get(n.Name())
	v.pop()
	if err != nil {
		return err
	}
	elems, err := items(raw)
	if err != nil {
		return errors.Wrapf(err, "member %q", n.Name())
	}

	switch n.Quantifier() {
	case QuantifierAny, QuantifierNone:
		matched := false
		for i := range elems {
			ok, err := v.evalItem(n.Predicate(), elems[i])
			if err != nil {
				return err
			}
			if ok {
				matched = true
				break
			}
		}
		v.SetCurrentValue(matched == (n.Quantifier() == QuantifierAny))
	case QuantifierFirst:
		// An empty collection has no first element to match: false, not an error.
		if len(elems) == 0 {
			v.SetCurrentValue(false)
			return nil
		}
		ok, err := v.evalItem(n.Predicate(), elems[0])
		if err != nil {
			return err
		}
		v.SetCurrentValue(ok)
	default:
		return errors.Wrapf(ErrMalformedQuantifier, "mode %q", n.Quantifier())
	}
	return nil
}

func (v *EvaluateVisitor) evalItem(pred Visitable, elem any) (bool, error) {
	ctx, err := asContext(elem)
	if err != nil {
		return false, err
	}
	v.currentItem = ctx
	if err := pred.Accept(v); err != nil {
		return false, err
	}
	return v.boolValue()
}

func (v *EvaluateVisitor) VisitItem(n ItemNode) error {
	v.push(v.currentItem)
	return nil
}

func (v *EvaluateVisitor) VisitField(n FieldNode) error {
	err := n.Scope().Accept(v)
	if err != nil {
		return err
	}
	value, err := v.Context.Get(n.Name())
	v.pop()
	if err != nil {
		return err
	}
	v.SetCurrentValue(value)
	return nil
}

func (v *EvaluateVisitor) VisitValue(n ValueNode) error {
	v.SetCurrentValue(n.Value())
	return nil
}

func (v *EvaluateVisitor) VisitComparison(n ComparisonNode) error {
	err := n.Left().Accept(v)
	if err != nil {
		return err
	}
	left := v.CurrentValue()
	err = n.Right().Accept(v)
	if err != nil {
		return err
	}
	right := v.CurrentValue()
	result, err := v.registry.Exec(left, n.Operator(), right)
	if err != nil {
		return err
	}
	v.SetCurrentValue(result)
	return nil
}

func (v *EvaluateVisitor) VisitNot(n NotNode) error {
	err := n.Operand().Accept(v)
	if err != nil {
		return err
	}
	val, err := v.boolValue()
	if err != nil {
		return err
	}
	v.SetCurrentValue(!val)
	return nil
}

func (v EvaluateVisitor) boolValue() (bool, error) {
	val, ok := v.CurrentValue().(bool)
	if !ok {
		return false, errors.Errorf("expected a bool, got %T", v.CurrentValue())
	}
	return val, nil
}

func (v EvaluateVisitor) Result() (bool, error) {
	return v.boolValue()
}
