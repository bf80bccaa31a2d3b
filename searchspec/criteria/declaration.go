package criteria

import (
	"reflect"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/pkg/errors"

	"github.com/krew-solutions/searchspec-go/searchspec/operators"
)

// TagName is the struct tag carrying a criterion declaration:
//
//	type OrderSearch struct {
//		criteria.Spec
//		CustomerName option.Option[string]  `search:"Customer.Name"`
//		DateFrom     option.Option[time.Time] `search:"Date,op=gte"`
//		MaxItemPrice option.Option[float64] `search:"Items.Price,op=gte,quant=none"`
//	}
//
// The first element is the target path (default: the field's own name);
// op defaults to eq, quant to any. `search:"-"` excludes a field.
const TagName = "search"

// Declaration is the immutable metadata of one criterion field.
type Declaration struct {
	Field      string
	Path       string
	Operator   operators.Operator
	Quantifier string
}

type orderedDeclarations = orderedmap.OrderedMap[string, Declaration]

// declarationsOf enumerates the declared criteria of a specification type in
// declaration order. The embedded Spec base and untagged fields are skipped.
func declarationsOf(specType reflect.Type) (*orderedDeclarations, error) {
	for specType.Kind() == reflect.Pointer {
		specType = specType.Elem()
	}
	if specType.Kind() != reflect.Struct {
		return nil, errors.Errorf("specification %s is not a struct", specType)
	}

	decls := orderedmap.NewOrderedMap[string, Declaration]()
	for i := 0; i < specType.NumField(); i++ {
		field := specType.Field(i)
		if !field.IsExported() || field.Anonymous {
			continue
		}
		decl, ok, err := parseDeclaration(field)
		if err != nil {
			return nil, err
		}
		if ok {
			decls.Set(decl.Field, decl)
		}
	}
	return decls, nil
}

func parseDeclaration(field reflect.StructField) (Declaration, bool, error) {
	tag, ok := field.Tag.Lookup(TagName)
	if !ok || tag == "-" {
		return Declaration{}, false, nil
	}

	decl := Declaration{
		Field:    field.Name,
		Path:     field.Name,
		Operator: operators.OperatorEq,
	}

	parts := strings.Split(tag, ",")
	if parts[0] != "" && !strings.Contains(parts[0], "=") {
		decl.Path = parts[0]
		parts = parts[1:]
	}
	for _, part := range parts {
		if part == "" {
			continue
		}
		key, value, found := strings.Cut(part, "=")
		if !found {
			return Declaration{}, false, errors.Errorf("field %s: malformed tag option %q", field.Name, part)
		}
		switch key {
		case "op":
			op, err := operatorNamed(value)
			if err != nil {
				return Declaration{}, false, errors.Wrapf(err, "field %s", field.Name)
			}
			decl.Operator = op
		case "quant":
			decl.Quantifier = value
		default:
			return Declaration{}, false, errors.Errorf("field %s: unknown tag option %q", field.Name, key)
		}
	}
	return decl, true, nil
}

func operatorNamed(name string) (operators.Operator, error) {
	switch name {
	case "eq":
		return operators.OperatorEq, nil
	case "ne":
		return operators.OperatorNe, nil
	case "gt":
		return operators.OperatorGt, nil
	case "gte":
		return operators.OperatorGte, nil
	case "lt":
		return operators.OperatorLt, nil
	case "lte":
		return operators.OperatorLte, nil
	}
	return "", errors.Errorf("unknown comparison operator %q", name)
}
