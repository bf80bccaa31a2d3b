package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krew-solutions/searchspec-go/searchspec/criteria"
	"github.com/krew-solutions/searchspec-go/searchspec/option"
)

type lineItem struct {
	Sku   string
	Price float64
}

type customer struct {
	Name string
	Zip  int
}

type order struct {
	Tx       int
	Date     time.Time
	Customer customer
	Items    []lineItem
}

type orderSearch struct {
	criteria.Spec
	CustomerName string                   `search:"Customer.Name"`
	CustomerZip  option.Option[int]       `search:"Customer.Zip"`
	DateFrom     option.Option[time.Time] `search:"Date,op=gte"`
	BigTicket    option.Option[float64]   `search:"Items.Price,op=gte,quant=none"`
}

func date(day int) time.Time {
	return time.Date(2016, 2, day, 0, 0, 0, 0, time.UTC)
}

func fixtureOrders() []order {
	return []order{
		{Tx: 1, Date: date(9), Customer: customer{Name: "Billy", Zip: 75432},
			Items: []lineItem{{Sku: "ale-8", Price: 2.5}}},
		{Tx: 2, Date: date(2), Customer: customer{Name: "John", Zip: 56545},
			Items: []lineItem{{Sku: "tv", Price: 350}}},
		{Tx: 3, Date: date(14), Customer: customer{Name: "Jacob", Zip: 90210},
			Items: []lineItem{{Sku: "yacht", Price: 200000}, {Sku: "rope", Price: 12}}},
	}
}

func txs(items []order) []int {
	out := make([]int, len(items))
	for i, o := range items {
		out[i] = o.Tx
	}
	return out
}

func TestSearchUnconstrained(t *testing.T) {
	result, err := New[order]().Search(fixtureOrders(), &orderSearch{})
	require.NoError(t, err)

	// No meaningful criteria, no sort: the page is the source order.
	assert.Equal(t, []int{1, 2, 3}, txs(result.Items))
	assert.Equal(t, 3, result.Total)
}

func TestSearchFilterSortDesc(t *testing.T) {
	spec := &orderSearch{DateFrom: option.Some(date(1))}
	spec.SetSortField("Tx")
	spec.SetSortDir("desc")

	result, err := New[order]().Search(fixtureOrders(), spec)
	require.NoError(t, err)

	assert.Equal(t, []int{3, 2, 1}, txs(result.Items))
	assert.Equal(t, 3, result.Total)
}

func TestSearchEqualityCriterion(t *testing.T) {
	spec := &orderSearch{CustomerZip: option.Some(56545)}

	result, err := New[order]().Search(fixtureOrders(), spec)
	require.NoError(t, err)

	assert.Equal(t, []int{2}, txs(result.Items))
	assert.Equal(t, 1, result.Total)
}

func TestSearchExcludesBigTicketOrders(t *testing.T) {
	// none(Items.Price >= 1000): only orders with no big-ticket item remain.
	spec := &orderSearch{BigTicket: option.Some(1000.0)}

	result, err := New[order]().Search(fixtureOrders(), spec)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, txs(result.Items))
}

func TestSearchConjunctionIsIntersection(t *testing.T) {
	records := fixtureOrders()
	searcher := New[order]()

	dateOnly, err := searcher.Search(records, &orderSearch{DateFrom: option.Some(date(5))})
	require.NoError(t, err)
	nameOnly, err := searcher.Search(records, &orderSearch{CustomerName: "Jacob"})
	require.NoError(t, err)
	both, err := searcher.Search(records, &orderSearch{
		DateFrom:     option.Some(date(5)),
		CustomerName: "Jacob",
	})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 3}, txs(dateOnly.Items))
	assert.Equal(t, []int{3}, txs(nameOnly.Items))
	assert.Equal(t, []int{3}, txs(both.Items))
}

func TestSearchSortByNestedField(t *testing.T) {
	spec := &orderSearch{}
	spec.SetSortField("Customer.Name")
	spec.SetSortDir("asc")

	result, err := New[order]().Search(fixtureOrders(), spec)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 3, 2}, txs(result.Items))
}

func TestSearchSortIsStable(t *testing.T) {
	records := []order{
		{Tx: 1, Customer: customer{Zip: 2}},
		{Tx: 2, Customer: customer{Zip: 1}},
		{Tx: 3, Customer: customer{Zip: 2}},
		{Tx: 4, Customer: customer{Zip: 1}},
	}
	spec := &orderSearch{}
	spec.SetSortField("Customer.Zip")
	spec.SetSortDir("asc")

	result, err := New[order]().Search(records, spec)
	require.NoError(t, err)

	// Equal keys keep their source order.
	assert.Equal(t, []int{2, 4, 1, 3}, txs(result.Items))
}

func TestSearchIsDeterministic(t *testing.T) {
	records := fixtureOrders()
	spec := &orderSearch{DateFrom: option.Some(date(1))}
	spec.SetSortField("Date")
	spec.SetSortDir("desc")
	searcher := New[order]()

	first, err := searcher.Search(records, spec)
	require.NoError(t, err)
	second, err := searcher.Search(records, spec)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSearchPagination(t *testing.T) {
	var records []order
	for tx := 1; tx <= 25; tx++ {
		records = append(records, order{Tx: tx})
	}

	spec := &orderSearch{}
	spec.SetPageSize(10)
	spec.SetCurrentPage(3)

	result, err := New[order]().Search(records, spec)
	require.NoError(t, err)

	assert.Equal(t, []int{21, 22, 23, 24, 25}, txs(result.Items))
	assert.Equal(t, 25, result.Total)

	spec.SetCurrentPage(4)
	result, err = New[order]().Search(records, spec)
	require.NoError(t, err)
	assert.Empty(t, result.Items)
}

func TestSearchCappedTotal(t *testing.T) {
	var records []order
	for tx := 1; tx <= 50; tx++ {
		records = append(records, order{Tx: tx})
	}

	spec := &orderSearch{}
	spec.SetPageSize(5)

	result, err := New[order](WithPageCount[order](3)).Search(records, spec)
	require.NoError(t, err)

	// Counting stops at pageCount × pageSize; the page itself is unaffected.
	assert.Equal(t, 15, result.Total)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, txs(result.Items))
}

func TestSearchSortFieldWithoutDirection(t *testing.T) {
	spec := &orderSearch{}
	spec.SetSortField("Tx")

	result, err := New[order]().Search(fixtureOrders(), spec)
	require.NoError(t, err)

	// Direction unset: no sort is applied.
	assert.Equal(t, []int{1, 2, 3}, txs(result.Items))
}

func TestSearchInvalidSpecification(t *testing.T) {
	type badSearch struct {
		criteria.Spec
		Missing option.Option[string] `search:"NoSuchMember"`
	}
	searcher := New[order]()

	require.Error(t, searcher.Validate(&badSearch{}))

	_, err := searcher.Search(fixtureOrders(), &badSearch{Missing: option.Some("x")})
	require.Error(t, err)
}

func TestSearchCustomCompiler(t *testing.T) {
	compiler := criteria.NewCompiler[order]()
	searcher := New[order](WithCompiler[order](compiler))

	result, err := searcher.Search(fixtureOrders(), &orderSearch{CustomerName: "Billy"})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, txs(result.Items))
}
