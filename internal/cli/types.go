package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/project-kessel/filterkit/internal/filters"
)

// NewTypesCmd creates the types command
func NewTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the filter type names usable in configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := loadProvider(cmd)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			types, err := provider.Types()
			if err != nil {
				return err
			}

			for _, name := range types.Names() {
				t, err := types.Lookup(name)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, filters.TypeName(t))
			}
			return nil
		},
	}
}
