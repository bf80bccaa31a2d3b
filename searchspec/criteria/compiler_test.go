package criteria

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krew-solutions/searchspec-go/searchspec/option"
	"github.com/krew-solutions/searchspec-go/searchspec/schema"
)

type orderItem struct {
	Price float64
}

type orderCustomer struct {
	Name string
	Zip  int
}

type order struct {
	Tx       int
	Date     time.Time
	Customer orderCustomer
	Items    []orderItem
}

type orderSearch struct {
	Spec
	CustomerName     string                   `search:"Customer.Name"`
	CustomerZip      option.Option[int]       `search:"Customer.Zip"`
	DateFrom         option.Option[time.Time] `search:"Date,op=gte"`
	BigTicketItem    option.Option[float64]   `search:"Items.Price,op=gte,quant=none"`
	FirstItemAtLeast option.Option[float64]   `search:"Items.Price,op=gte,quant=first"`
}

func fixtureOrders() []order {
	return []order{
		{Tx: 1, Date: time.Date(2016, 2, 9, 0, 0, 0, 0, time.UTC), Customer: orderCustomer{Name: "Billy", Zip: 75432}},
		{Tx: 2, Date: time.Date(2016, 2, 2, 0, 0, 0, 0, time.UTC), Customer: orderCustomer{Name: "John", Zip: 56545}},
		{Tx: 3, Date: time.Date(2016, 1, 10, 0, 0, 0, 0, time.UTC), Customer: orderCustomer{Name: "Jacob", Zip: 90210}},
	}
}

func matching(t *testing.T, pred Predicate[order], records []order) []int {
	t.Helper()
	var txs []int
	for _, rec := range records {
		ok, err := pred(rec)
		require.NoError(t, err)
		if ok {
			txs = append(txs, rec.Tx)
		}
	}
	return txs
}

func TestCompileNoMeaningfulCriteria(t *testing.T) {
	compiler := NewCompiler[order]()

	pred, err := compiler.Compile(&orderSearch{})
	require.NoError(t, err)

	// Unset fields contribute no constraint: everything matches.
	assert.Equal(t, []int{1, 2, 3}, matching(t, pred, fixtureOrders()))
}

func TestCompileSingleCriterion(t *testing.T) {
	compiler := NewCompiler[order]()

	spec := &orderSearch{CustomerZip: option.Some(56545)}
	pred, err := compiler.Compile(spec)
	require.NoError(t, err)

	assert.Equal(t, []int{2}, matching(t, pred, fixtureOrders()))
}

func TestCompileConjunction(t *testing.T) {
	compiler := NewCompiler[order]()
	records := fixtureOrders()

	dateOnly := &orderSearch{DateFrom: option.Some(time.Date(2016, 2, 1, 0, 0, 0, 0, time.UTC))}
	nameOnly := &orderSearch{CustomerName: "John"}
	both := &orderSearch{
		DateFrom:     option.Some(time.Date(2016, 2, 1, 0, 0, 0, 0, time.UTC)),
		CustomerName: "John",
	}

	datePred, err := compiler.Compile(dateOnly)
	require.NoError(t, err)
	namePred, err := compiler.Compile(nameOnly)
	require.NoError(t, err)
	bothPred, err := compiler.Compile(both)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, matching(t, datePred, records))
	assert.Equal(t, []int{2}, matching(t, namePred, records))
	// The conjunction equals the intersection of the single-criterion results.
	assert.Equal(t, []int{2}, matching(t, bothPred, records))
}

func TestCompileBlankTextSkipped(t *testing.T) {
	compiler := NewCompiler[order]()

	pred, err := compiler.Compile(&orderSearch{CustomerName: "   "})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, matching(t, pred, fixtureOrders()))
}

func TestCompileCollectionCriterion(t *testing.T) {
	compiler := NewCompiler[order]()
	records := []order{
		{Tx: 1, Items: []orderItem{{Price: 100}, {Price: 200000}}},
		{Tx: 2, Items: []orderItem{{Price: 100}, {Price: 200}}},
		{Tx: 3},
	}

	spec := &orderSearch{BigTicketItem: option.Some(1000.0)}
	pred, err := compiler.Compile(spec)
	require.NoError(t, err)

	// none(Price >= 1000): the order holding a big-ticket item is excluded.
	assert.Equal(t, []int{2, 3}, matching(t, pred, records))
}

func TestCompileFirstMatchCriterion(t *testing.T) {
	compiler := NewCompiler[order]()
	records := []order{
		{Tx: 1, Items: []orderItem{{Price: 5000}, {Price: 10}}},
		{Tx: 2, Items: []orderItem{{Price: 10}, {Price: 5000}}},
		{Tx: 3},
	}

	spec := &orderSearch{FirstItemAtLeast: option.Some(1000.0)}
	pred, err := compiler.Compile(spec)
	require.NoError(t, err)

	assert.Equal(t, []int{1}, matching(t, pred, records))
}

func TestCompileUnknownMember(t *testing.T) {
	type badSearch struct {
		Spec
		Nickname option.Option[string] `search:"Customer.Nickname"`
	}
	compiler := NewCompiler[order]()

	_, err := compiler.Compile(&badSearch{Nickname: option.Some("Bill")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, schema.ErrUnknownMember))

	field, ok := FirstInvalidField(err)
	require.True(t, ok)
	assert.Equal(t, "Nickname", field)
}

func TestValidate(t *testing.T) {
	compiler := NewCompiler[order]()

	t.Run("valid specification", func(t *testing.T) {
		assert.NoError(t, compiler.Validate(&orderSearch{}))
	})

	t.Run("valid sort field", func(t *testing.T) {
		spec := &orderSearch{}
		spec.SetSortField("Customer.Name")
		assert.NoError(t, compiler.Validate(spec))
	})

	t.Run("unknown criterion path", func(t *testing.T) {
		type badSearch struct {
			Spec
			Missing option.Option[string] `search:"NoSuchMember"`
		}
		err := compiler.Validate(&badSearch{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, schema.ErrUnknownMember))

		field, ok := FirstInvalidField(err)
		require.True(t, ok)
		assert.Equal(t, "Missing", field)
	})

	t.Run("unknown sort field", func(t *testing.T) {
		spec := &orderSearch{}
		spec.SetSortField("Nope")
		err := compiler.Validate(spec)
		assert.True(t, errors.Is(err, schema.ErrUnknownMember))
	})

	t.Run("sort field crossing a collection", func(t *testing.T) {
		spec := &orderSearch{}
		spec.SetSortField("Items.Price")
		err := compiler.Validate(spec)
		assert.True(t, errors.Is(err, schema.ErrNestedCollection))
	})

	t.Run("unsupported criterion kind", func(t *testing.T) {
		type badSearch struct {
			Spec
			Count int `search:"Tx"`
		}
		err := compiler.Validate(&badSearch{})
		assert.True(t, errors.Is(err, ErrUnsupportedValueType))
	})

	t.Run("malformed quantifier", func(t *testing.T) {
		type badSearch struct {
			Spec
			Max option.Option[float64] `search:"Items.Price,quant=x"`
		}
		err := compiler.Validate(&badSearch{})
		require.Error(t, err)
	})

	t.Run("all offending fields reported", func(t *testing.T) {
		type badSearch struct {
			Spec
			First  option.Option[string] `search:"Bogus"`
			Second option.Option[string] `search:"AlsoBogus"`
		}
		err := compiler.Validate(&badSearch{})
		require.Error(t, err)

		field, ok := FirstInvalidField(err)
		require.True(t, ok)
		assert.Equal(t, "First", field)
		assert.Contains(t, err.Error(), "AlsoBogus")
	})
}
