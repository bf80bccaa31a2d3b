package criteria

import (
	"reflect"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/krew-solutions/searchspec-go/searchspec/option"
)

// ErrUnsupportedValueType is returned for criterion fields whose type is
// neither text nor an optional (pointer or option.Option) kind.
var ErrUnsupportedValueType = errors.New("unsupported criterion value type")

// currentValue decides whether a criterion field's current value is
// meaningful and should constrain the search, and returns the literal to
// compare against when it is.
//
// Text is meaningful when non-blank. Optional integers and decimals are
// meaningful when set and non-negative, optional date/times when set and not
// the zero time, any other optional kind when set.
func currentValue(field reflect.Value) (literal any, meaningful bool, err error) {
	if opt, ok := optionView(field); ok {
		val, set := opt.AnyValue()
		if !set {
			return nil, false, nil
		}
		return val, setValueMeaningful(val), nil
	}

	switch field.Kind() {
	case reflect.String:
		s := field.String()
		return s, strings.TrimSpace(s) != "", nil
	case reflect.Pointer:
		if field.IsNil() {
			return nil, false, nil
		}
		val := field.Elem().Interface()
		return val, setValueMeaningful(val), nil
	}
	return nil, false, errors.Wrapf(ErrUnsupportedValueType, "%s", field.Type())
}

// supportedValueKind mirrors currentValue for validation, without a value.
func supportedValueKind(t reflect.Type) bool {
	if t.Implements(anyOptionType) || reflect.PointerTo(t).Implements(anyOptionType) {
		return true
	}
	return t.Kind() == reflect.String || t.Kind() == reflect.Pointer
}

var anyOptionType = reflect.TypeOf((*option.AnyOption)(nil)).Elem()

func optionView(field reflect.Value) (option.AnyOption, bool) {
	if field.Type().Implements(anyOptionType) {
		return field.Interface().(option.AnyOption), true
	}
	if field.CanAddr() && reflect.PointerTo(field.Type()).Implements(anyOptionType) {
		return field.Addr().Interface().(option.AnyOption), true
	}
	return nil, false
}

func setValueMeaningful(val any) bool {
	switch v := val.(type) {
	case string:
		return strings.TrimSpace(v) != ""
	case time.Time:
		return !v.IsZero()
	}
	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() >= 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() >= 0
	}
	return true
}
