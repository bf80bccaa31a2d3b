package cmd

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/icrowley/fake"
	"github.com/oklog/ulid/v2"

	"github.com/krew-solutions/searchspec-go/searchspec/criteria"
	"github.com/krew-solutions/searchspec-go/searchspec/option"
)

// Order is the demo record type searches run against.
type Order struct {
	ID       string
	Ref      string
	Tx       int
	Date     time.Time
	Customer Customer
	Items    []LineItem
}

type Customer struct {
	Name string
	City string
	Zip  int
}

type LineItem struct {
	Sku   string
	Price float64
}

// OrderSearch declares the criteria the query command exposes as flags.
type OrderSearch struct {
	criteria.Spec
	CustomerName string                   `search:"Customer.Name"`
	CustomerCity string                   `search:"Customer.City"`
	CustomerZip  option.Option[int]       `search:"Customer.Zip"`
	DateFrom     option.Option[time.Time] `search:"Date,op=gte"`
	DateTo       option.Option[time.Time] `search:"Date,op=lte"`
	MinTx        option.Option[int]       `search:"Tx,op=gte"`
	BigTicket    option.Option[float64]   `search:"Items.Price,op=gte,quant=none"`
	HasItemOver  option.Option[float64]   `search:"Items.Price,op=gt,quant=any"`
}

// seedOrders builds a reproducible fake dataset: same seed, same orders.
func seedOrders(n int, seed int64) []Order {
	rnd := rand.New(rand.NewSource(seed))
	entropy := ulid.Monotonic(rnd, 0)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	orders := make([]Order, n)
	for i := range orders {
		placed := base.AddDate(0, 0, rnd.Intn(240))
		items := make([]LineItem, 1+rnd.Intn(4))
		for j := range items {
			items[j] = LineItem{
				Sku:   fake.ProductName(),
				Price: float64(rnd.Intn(200000)) / 100,
			}
		}
		orders[i] = Order{
			ID:   uuid.NewString(),
			Ref:  ulid.MustNew(ulid.Timestamp(placed), entropy).String(),
			Tx:   i + 1,
			Date: placed,
			Customer: Customer{
				Name: fake.FullName(),
				City: fake.City(),
				Zip:  10000 + rnd.Intn(89999),
			},
			Items: items,
		}
	}
	return orders
}
