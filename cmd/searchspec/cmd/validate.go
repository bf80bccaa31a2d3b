package cmd

import (
	"github.com/gookit/color"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/krew-solutions/searchspec-go/searchspec/criteria"
	"github.com/krew-solutions/searchspec-go/searchspec/search"
)

var validateSort string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the order search specification against the record type",
	Long: `Validate checks every declared criterion of the order search
specification (member paths, operator and quantifier encodings, field
kinds) against the Order record type, plus the sort field when given.

Example:
  searchspec validate
  searchspec validate --sort Customer.Name`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateSort, "sort", "", "Sort field to check along with the criteria")
}

func runValidate(cmd *cobra.Command, args []string) error {
	spec := &OrderSearch{}
	spec.SetSortField(validateSort)

	if err := search.New[Order]().Validate(spec); err != nil {
		var merr *multierror.Error
		if errors.As(err, &merr) {
			for _, failure := range merr.Errors {
				color.Red.Printf("  %v\n", failure)
			}
		}
		if field, ok := criteria.FirstInvalidField(err); ok {
			return errors.Errorf("specification rejected, first offending field: %s", field)
		}
		return err
	}

	color.Green.Println("specification is valid")
	return nil
}
