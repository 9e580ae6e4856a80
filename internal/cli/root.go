package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/project-kessel/filterkit/internal/config"
)

var configFile string

// NewRootCmd creates the filterkit root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filterkit",
		Short: "Inspect configured request filters",
		Long: `filterkit builds the configured filter collection, resolves every
filter through the dependency container and reports the result.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (yaml, json or toml); defaults to $FILTERKIT_CONFIG")

	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewTypesCmd())

	return cmd
}

// loadProvider loads configuration from file, environment and flags
func loadProvider(cmd *cobra.Command) (*config.Provider, error) {
	configPath := configFile
	if configPath == "" {
		configPath = os.Getenv("FILTERKIT_CONFIG")
	}

	loader, err := config.NewLoaderWithFlags(configPath, cmd.Flags())
	if err != nil {
		return nil, err
	}

	cfg, err := loader.Get()
	if err != nil {
		return nil, err
	}

	provider := config.NewProvider(cfg)
	provider.SetLogger(config.NewLoggerWithWriter(cfg.Observability, cmd.ErrOrStderr()))
	return provider, nil
}
