package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jafarshop/sellingplans/internal/config"
	"github.com/jafarshop/sellingplans/internal/shopify"
)

var (
	cfg     *config.Config
	logger  *zap.Logger
	verbose bool
)

// Execute runs the root command
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sellingplanctl",
		Short:         "Manage subscription selling plans of a Shopify store",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.LoadOptional()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			cfg = loaded

			logger = zap.NewNop()
			if verbose {
				if logger, err = zap.NewDevelopment(); err != nil {
					return err
				}
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log requests to stderr")

	root.AddCommand(shopCmd(), groupsCmd(), groupCreateURLCmd(), actionCmd())
	return root
}

// adminClient builds an Admin API client; only the commands that call Shopify need credentials
func adminClient() (*shopify.Client, error) {
	if cfg.Shopify.ShopDomain == "" || cfg.Shopify.AccessToken == "" {
		return nil, fmt.Errorf("SHOPIFY_SHOP_DOMAIN and SHOPIFY_ACCESS_TOKEN are required")
	}
	return shopify.NewClient(cfg.Shopify, logger), nil
}
