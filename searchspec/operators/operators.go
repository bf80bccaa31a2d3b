package operators

import "fmt"

type Operator string

const (
	OperatorEq  Operator = "="
	OperatorNe  Operator = "!="
	OperatorGt  Operator = ">"
	OperatorGte Operator = ">="
	OperatorLt  Operator = "<"
	OperatorLte Operator = "<="
)

// Valid reports whether op is one of the supported comparison operators.
func (op Operator) Valid() bool {
	switch op {
	case OperatorEq, OperatorNe, OperatorGt, OperatorGte, OperatorLt, OperatorLte:
		return true
	}
	return false
}

// Negate returns the logical complement of the comparison, so that
// NOT(a op b) == (a op.Negate() b).
func (op Operator) Negate() (Operator, error) {
	switch op {
	case OperatorEq:
		return OperatorNe, nil
	case OperatorNe:
		return OperatorEq, nil
	case OperatorGt:
		return OperatorLte, nil
	case OperatorGte:
		return OperatorLt, nil
	case OperatorLt:
		return OperatorGte, nil
	case OperatorLte:
		return OperatorGt, nil
	}
	return op, fmt.Errorf("operator %q cannot be negated", op)
}
