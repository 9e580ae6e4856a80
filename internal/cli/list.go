package cli

import (
	"fmt"
	"io"
	"reflect"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/project-kessel/filterkit/internal/config"
	"github.com/project-kessel/filterkit/internal/filters"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the configured filters in execution order",
		Long: `List the configured filters in execution order.

Every entry is resolved through the dependency container, so a filter
whose dependencies cannot be satisfied makes the command fail.

Configuration precedence (highest to lowest):
  1. Command-line flags
  2. Environment variables (FILTERKIT_*)
  3. Configuration file (if --config or FILTERKIT_CONFIG is set)
  4. Built-in defaults

Examples:
  # List filters from a config file
  filterkit list --config ./filterkit.yaml

  # Apply a default order to entries without one
  filterkit list --config ./filterkit.yaml --default-order 10`,
		RunE: runList,
	}

	config.RegisterFlags(cmd.Flags())

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	provider, err := loadProvider(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	filterProvider, err := provider.FilterProvider()
	if err != nil {
		return err
	}

	// Resolve everything up front so unsatisfied dependencies fail the command
	products, err := filterProvider.Filters()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	writeItems(out, filterProvider.Items())
	_, _ = fmt.Fprintf(out, "\n%d filter(s) resolved\n", len(products))
	return nil
}

func writeItems(out io.Writer, items []filters.Metadata) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ORDER\tKIND\tTYPE")
	for _, item := range items {
		kind, typ := describe(item)
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\n", filters.OrderOf(item), kind, typ)
	}
	_ = w.Flush()
}

func describe(item filters.Metadata) (string, string) {
	switch f := item.(type) {
	case *filters.TypeFilter:
		return "type", filters.TypeName(f.ImplementationType())
	case *filters.ServiceFilter:
		return "service", filters.TypeName(f.ServiceType())
	case *filters.TypeFilterFactory:
		return "factory", filters.TypeName(f.ImplementationType())
	case filters.Factory:
		return "instance", filters.TypeName(reflect.TypeOf(item))
	default:
		return "filter", filters.TypeName(reflect.TypeOf(item))
	}
}
