package predicate

import "github.com/krew-solutions/searchspec-go/searchspec/operators"

type Visitable interface {
	Accept(Visitor) error
}

type Visitor interface {
	VisitGlobalScope(GlobalScopeNode) error
	VisitObject(ObjectNode) error
	VisitCollection(CollectionNode) error
	VisitItem(ItemNode) error
	VisitField(FieldNode) error
	VisitValue(ValueNode) error
	VisitComparison(ComparisonNode) error
	VisitNot(NotNode) error
}

func Value(value any) ValueNode {
	return ValueNode{
		value: value,
	}
}

type ValueNode struct {
	value any
}

func (n ValueNode) Value() any {
	return n.value
}

func (n ValueNode) Accept(v Visitor) error {
	return v.VisitValue(n)
}

func Not(operand Visitable) NotNode {
	return NotNode{
		operand: operand,
	}
}

type NotNode struct {
	operand Visitable
}

func (n NotNode) Operand() Visitable {
	return n.operand
}

func (n NotNode) Accept(v Visitor) error {
	return v.VisitNot(n)
}

func Compare(left Visitable, op operators.Operator, right Visitable) ComparisonNode {
	return ComparisonNode{
		left:     left,
		operator: op,
		right:    right,
	}
}

type ComparisonNode struct {
	left     Visitable
	operator operators.Operator
	right    Visitable
}

func (n ComparisonNode) Left() Visitable {
	return n.left
}

func (n ComparisonNode) Operator() operators.Operator {
	return n.operator
}

func (n ComparisonNode) Right() Visitable {
	return n.right
}

func (n ComparisonNode) Accept(v Visitor) error {
	return v.VisitComparison(n)
}

// Scope is a node that values can be looked up on: the record root, a nested
// object, or the current collection item.
type Scope interface {
	Visitable
	Parent() Scope
	Name() string
	IsRoot() bool
}

func GlobalScope() GlobalScopeNode {
	return GlobalScopeNode{}
}

type GlobalScopeNode struct{}

func (n GlobalScopeNode) Parent() Scope {
	return n
}

func (n GlobalScopeNode) Name() string {
	return "Empty"
}

func (n GlobalScopeNode) IsRoot() bool {
	return true
}

func (n GlobalScopeNode) Accept(v Visitor) error {
	return v.VisitGlobalScope(n)
}

func Object(parent Scope, name string) ObjectNode {
	return ObjectNode{
		parent: parent,
		name:   name,
	}
}

type ObjectNode struct {
	parent Scope
	name   string
}

func (n ObjectNode) Parent() Scope {
	return n.parent
}

func (n ObjectNode) Name() string {
	return n.name
}

func (n ObjectNode) IsRoot() bool {
	return false
}

func (n ObjectNode) Accept(v Visitor) error {
	return v.VisitObject(n)
}

// Quantified lifts a per-item predicate over a collection-valued member into
// a single boolean according to the quantifier mode.
func Quantified(parent Scope, name string, q Quantifier, pred Visitable) CollectionNode {
	return CollectionNode{
		parent:     parent,
		name:       name,
		quantifier: q,
		predicate:  pred,
	}
}

type CollectionNode struct {
	parent     Scope
	name       string
	quantifier Quantifier
	predicate  Visitable
}

func (n CollectionNode) Parent() Scope {
	return n.parent
}

func (n CollectionNode) Name() string {
	return n.name
}

func (n CollectionNode) IsRoot() bool {
	return false
}

func (n CollectionNode) Quantifier() Quantifier {
	return n.quantifier
}

func (n CollectionNode) Predicate() Visitable {
	return n.predicate
}

func (n CollectionNode) Accept(v Visitor) error {
	return v.VisitCollection(n)
}

// Item is the scope of the current collection element inside a quantified
// predicate.
func Item() ItemNode {
	return ItemNode{}
}

type ItemNode struct{}

func (n ItemNode) Parent() Scope {
	return GlobalScope()
}

func (n ItemNode) Name() string {
	return "@"
}

func (n ItemNode) IsRoot() bool {
	return true
}

func (n ItemNode) Accept(v Visitor) error {
	return v.VisitItem(n)
}

func Field(scope Scope, name string) FieldNode {
	return FieldNode{
		scope: scope,
		name:  name,
	}
}

type FieldNode struct {
	scope Scope
	name  string
}

func (n FieldNode) Name() string {
	return n.name
}

func (n FieldNode) Scope() Scope {
	return n.scope
}

func (n FieldNode) Accept(v Visitor) error {
	return v.VisitField(n)
}
