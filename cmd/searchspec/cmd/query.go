package cmd

import (
	"time"

	"github.com/gookit/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/krew-solutions/searchspec-go/searchspec/option"
	"github.com/krew-solutions/searchspec-go/searchspec/search"
)

var (
	queryCustomer  string
	queryCity      string
	queryZip       int
	queryDateFrom  string
	queryDateTo    string
	queryMinTx     int
	queryBigTicket float64
	queryItemOver  float64
	querySort      string
	queryDir       string
	queryPage      int
	queryPageSize  int
	querySeed      int64
	queryDataSize  int
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run a search against a generated order dataset",
	Long: `Query seeds a fake order dataset, builds a search specification from
the given flags and prints the matching page.

Flags left at their defaults contribute no constraint; the search is the
conjunction of the ones you set.

Example:
  searchspec query --date-from 2026-03-01 --sort Tx --dir desc
  searchspec query --zip 56545
  searchspec query --big-ticket 1000 --page-size 5`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().StringVar(&queryCustomer, "customer", "", "Customer name (exact match)")
	queryCmd.Flags().StringVar(&queryCity, "city", "", "Customer city (exact match)")
	queryCmd.Flags().IntVar(&queryZip, "zip", -1, "Customer zip code")
	queryCmd.Flags().StringVar(&queryDateFrom, "date-from", "", "Orders placed on or after (YYYY-MM-DD)")
	queryCmd.Flags().StringVar(&queryDateTo, "date-to", "", "Orders placed on or before (YYYY-MM-DD)")
	queryCmd.Flags().IntVar(&queryMinTx, "min-tx", -1, "Minimum transaction number")
	queryCmd.Flags().Float64Var(&queryBigTicket, "big-ticket", -1, "Exclude orders holding any item priced at or above")
	queryCmd.Flags().Float64Var(&queryItemOver, "item-over", -1, "Keep orders holding an item priced above")
	queryCmd.Flags().StringVar(&querySort, "sort", "", "Sort field, e.g. Tx or Customer.Name")
	queryCmd.Flags().StringVar(&queryDir, "dir", "asc", "Sort direction (asc, desc)")
	queryCmd.Flags().IntVar(&queryPage, "page", 1, "Page number (1-based)")
	queryCmd.Flags().IntVar(&queryPageSize, "page-size", 0, "Page size (default from config)")
	queryCmd.Flags().Int64Var(&querySeed, "seed", 1, "Dataset random seed")
	queryCmd.Flags().IntVar(&queryDataSize, "size", 0, "Dataset size (default from config)")
}

func runQuery(cmd *cobra.Command, args []string) error {
	spec, err := buildSpec()
	if err != nil {
		return err
	}

	size := queryDataSize
	if size <= 0 {
		size = viper.GetInt("dataset.size")
	}
	orders := seedOrders(size, querySeed)

	searcher := search.New[Order]()
	if err := searcher.Validate(spec); err != nil {
		return errors.Wrap(err, "invalid specification")
	}

	started := time.Now()
	result, err := searcher.Search(orders, spec)
	if err != nil {
		return err
	}
	logger.Info("search complete",
		zap.Int("dataset", len(orders)),
		zap.Int("total", result.Total),
		zap.Int("page_items", len(result.Items)),
		zap.Duration("elapsed", time.Since(started)),
	)

	printResult(result, spec)
	return nil
}

func buildSpec() (*OrderSearch, error) {
	spec := &OrderSearch{
		CustomerName: queryCustomer,
		CustomerCity: queryCity,
	}
	if queryZip >= 0 {
		spec.CustomerZip = option.Some(queryZip)
	}
	if queryMinTx >= 0 {
		spec.MinTx = option.Some(queryMinTx)
	}
	if queryBigTicket >= 0 {
		spec.BigTicket = option.Some(queryBigTicket)
	}
	if queryItemOver >= 0 {
		spec.HasItemOver = option.Some(queryItemOver)
	}
	if queryDateFrom != "" {
		from, err := time.Parse("2006-01-02", queryDateFrom)
		if err != nil {
			return nil, errors.Wrap(err, "--date-from")
		}
		spec.DateFrom = option.Some(from)
	}
	if queryDateTo != "" {
		to, err := time.Parse("2006-01-02", queryDateTo)
		if err != nil {
			return nil, errors.Wrap(err, "--date-to")
		}
		spec.DateTo = option.Some(to)
	}

	spec.SetSortField(querySort)
	spec.SetSortDir(queryDir)
	spec.SetCurrentPage(queryPage)
	if queryPageSize > 0 {
		spec.SetPageSize(queryPageSize)
	} else {
		spec.SetPageSize(viper.GetInt("page.size"))
	}
	return spec, nil
}

func printResult(result search.Result[Order], spec *OrderSearch) {
	color.Cyan.Printf("page %d (%d records), %d matching in total\n\n",
		spec.CurrentPage(), len(result.Items), result.Total)

	for _, order := range result.Items {
		color.Green.Printf("#%d", order.Tx)
		color.Gray.Printf("  %s  %s\n", order.Ref, order.Date.Format("2006-01-02"))
		color.Printf("    %s, %s %d\n", order.Customer.Name, order.Customer.City, order.Customer.Zip)
		for _, item := range order.Items {
			color.Printf("    - %-40s %10.2f\n", item.Sku, item.Price)
		}
	}
	if len(result.Items) == 0 {
		color.Yellow.Println("no matching orders")
	}
}
