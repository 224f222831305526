package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jafarshop/sellingplans/internal/service"
)

func groupsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "List selling plan groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := adminClient()
			if err != nil {
				return err
			}
			svc := service.NewSellingPlanService(client, nil, cfg.Shopify.ShopDomain, logger)
			groups, err := svc.ListGroups(cmd.Context(), limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tMERCHANT CODE")
			for _, g := range groups {
				fmt.Fprintf(w, "%s\t%s\t%s\n", g.ID, g.Name, g.MerchantCode)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of groups")
	return cmd
}

// group-create-url: create the default three-tier group and print its confirmation URL
func groupCreateURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "group-create-url",
		Short: "Create the default subscribe-and-save group and print the confirmation URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := adminClient()
			if err != nil {
				return err
			}
			url, err := service.NewBillingService(client, cfg.App, logger).GroupCreateURL(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}
}
