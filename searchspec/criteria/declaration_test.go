package criteria

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krew-solutions/searchspec-go/searchspec/operators"
	"github.com/krew-solutions/searchspec-go/searchspec/option"
)

func TestDeclarationsOf(t *testing.T) {
	type taggedSearch struct {
		Spec
		CustomerName option.Option[string]  `search:"Customer.Name"`
		DateFrom     option.Option[string]  `search:"Date,op=gte"`
		MaxItemPrice option.Option[float64] `search:"Items.Price,op=gte,quant=none"`
		Zip          option.Option[string]  `search:""`
		Ignored      string                 `search:"-"`
		Untagged     string
	}

	decls, err := declarationsOf(reflect.TypeOf(taggedSearch{}))
	require.NoError(t, err)
	require.Equal(t, 4, decls.Len())

	var order []string
	for el := decls.Front(); el != nil; el = el.Next() {
		order = append(order, el.Key)
	}
	assert.Equal(t, []string{"CustomerName", "DateFrom", "MaxItemPrice", "Zip"}, order)

	name, _ := decls.Get("CustomerName")
	assert.Equal(t, Declaration{
		Field:    "CustomerName",
		Path:     "Customer.Name",
		Operator: operators.OperatorEq,
	}, name)

	date, _ := decls.Get("DateFrom")
	assert.Equal(t, operators.OperatorGte, date.Operator)
	assert.Equal(t, "Date", date.Path)

	price, _ := decls.Get("MaxItemPrice")
	assert.Equal(t, "none", price.Quantifier)

	// Empty tag binds the field's own name.
	zip, _ := decls.Get("Zip")
	assert.Equal(t, "Zip", zip.Path)
	assert.Equal(t, operators.OperatorEq, zip.Operator)
}

func TestDeclarationsOfPointerType(t *testing.T) {
	type search struct {
		Spec
		Name option.Option[string] `search:"Name"`
	}

	decls, err := declarationsOf(reflect.TypeOf(&search{}))
	require.NoError(t, err)
	assert.Equal(t, 1, decls.Len())
}

func TestDeclarationsOfBadTags(t *testing.T) {
	t.Run("unknown operator", func(t *testing.T) {
		type search struct {
			Spec
			Name option.Option[string] `search:"Name,op=like"`
		}
		_, err := declarationsOf(reflect.TypeOf(search{}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "like")
	})

	t.Run("unknown option", func(t *testing.T) {
		type search struct {
			Spec
			Name option.Option[string] `search:"Name,mode=fuzzy"`
		}
		_, err := declarationsOf(reflect.TypeOf(search{}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mode")
	})

	t.Run("not a struct", func(t *testing.T) {
		_, err := declarationsOf(reflect.TypeOf(42))
		require.Error(t, err)
	})
}
