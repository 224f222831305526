package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jafarshop/sellingplans/internal/service"
	"github.com/jafarshop/sellingplans/internal/shopdata"
)

// shop: print the store name, or the raw error message when the query fails
func shopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shop",
		Short: "Print the shop name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := adminClient()
			if err != nil {
				return err
			}
			query := shopdata.NewQuery(func(ctx context.Context) (string, error) {
				return service.ShopName(ctx, client)
			})
			fmt.Fprintln(cmd.ErrOrStderr(), query.Text())

			err = query.Run(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), query.Text())
			return err
		},
	}
}
