package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jafarshop/sellingplans/internal/domain"
	"github.com/jafarshop/sellingplans/internal/extension"
	"github.com/jafarshop/sellingplans/internal/i18n"
	"github.com/jafarshop/sellingplans/internal/service"
)

type actionOptions struct {
	endpoint   string
	token      string
	locale     string
	productID  string
	variantID  string
	variantIDs []string
	groupID    string
	plans      []string
	title      string
	percentOff string
	frequency  string
	offered    []extension.Plan
}

// action <mode>: run one extension session against the app server and press its primary action
func actionCmd() *cobra.Command {
	opts := &actionOptions{}
	cmd := &cobra.Command{
		Use:       "action <add|create|remove|edit>",
		Short:     "Run an extension action against the app server",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"add", "create", "remove", "edit"},
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, ok := domain.ParseMode(args[0])
			if !ok {
				return fmt.Errorf("unknown mode %q", args[0])
			}
			if opts.endpoint == "" {
				opts.endpoint = cfg.Extension.Endpoint
			}
			if opts.token == "" {
				opts.token = cfg.Extension.SessionToken
			}
			if mode == domain.ModeAdd {
				opts.offered = loadOfferedPlans(cmd.Context())
			}
			res, err := runAction(cmd.Context(), mode, opts, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return res.Err
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.endpoint, "endpoint", "", "extension endpoint (default $EXTENSION_ENDPOINT)")
	f.StringVar(&opts.token, "token", "", "session token (default $EXTENSION_SESSION_TOKEN)")
	f.StringVar(&opts.locale, "locale", "en", "merchant locale")
	f.StringVar(&opts.productID, "product", "", "product GID")
	f.StringVar(&opts.variantID, "variant", "", "product variant GID")
	f.StringSliceVar(&opts.variantIDs, "variants", nil, "variant GIDs (remove)")
	f.StringVar(&opts.groupID, "group", "", "selling plan group GID (remove, edit)")
	f.StringSliceVar(&opts.plans, "plans", nil, "selling plan group GIDs to add the product to (add)")
	f.StringVar(&opts.title, "title", "", "plan title (create, edit)")
	f.StringVar(&opts.percentOff, "percent-off", "", "percentage off (create, edit)")
	f.StringVar(&opts.frequency, "frequency", "", "delivery frequency in weeks (create, edit)")
	_ = cmd.MarkFlagRequired("product")
	return cmd
}

func runAction(ctx context.Context, mode domain.Mode, opts *actionOptions, out io.Writer) (extension.Result, error) {
	table, err := i18n.Default()
	if err != nil {
		return extension.Result{}, err
	}

	container := newTerminalContainer(out)
	token := opts.token
	controller, err := extension.NewController(mode, extension.Session{
		Data: domain.ExtensionContext{
			ProductID:          opts.productID,
			VariantID:          opts.variantID,
			VariantIDs:         opts.variantIDs,
			SellingPlanGroupID: opts.groupID,
		},
		Locale:    opts.locale,
		Plans:     opts.offered,
		Container: container,
		Tokens: extension.SessionTokenFunc(func(context.Context) (string, error) {
			if token == "" {
				return "", fmt.Errorf("no session token: pass --token or set EXTENSION_SESSION_TOKEN")
			}
			return token, nil
		}),
	}, table, extension.NewClient(opts.endpoint, logger), logger)
	if err != nil {
		return extension.Result{}, err
	}

	controller.UpdateForm(func(f *extension.Form) {
		if opts.title != "" {
			f.PlanTitle = opts.title
		}
		if opts.percentOff != "" {
			f.PercentageOff = opts.percentOff
		}
		if opts.frequency != "" {
			f.DeliveryFrequency = opts.frequency
		}
		for _, id := range opts.plans {
			f.TogglePlan(strings.TrimSpace(id), true)
		}
	})
	controller.Mount()

	fmt.Fprintln(out, controller.Greeting())
	fmt.Fprintln(out, controller.Description())
	if mode == domain.ModeAdd {
		form := controller.Form()
		for _, p := range controller.Plans() {
			mark := " "
			if form.IsSelected(p.ID) {
				mark = "x"
			}
			fmt.Fprintf(out, "[%s] %s (%s)\n", mark, p.Name, p.ID)
		}
	}

	return container.Press(ctx), nil
}

// loadOfferedPlans lists the shop's groups for the Add picker; nil leaves the mock plans in place
func loadOfferedPlans(ctx context.Context) []extension.Plan {
	client, err := adminClient()
	if err != nil {
		logger.Debug("Offering mock plans", zap.Error(err))
		return nil
	}
	groups, err := service.NewSellingPlanService(client, nil, cfg.Shopify.ShopDomain, logger).ListGroups(ctx, 50)
	if err != nil {
		logger.Warn("Failed to list selling plan groups", zap.Error(err))
		return nil
	}
	plans := make([]extension.Plan, 0, len(groups))
	for _, g := range groups {
		plans = append(plans, extension.Plan{ID: g.ID, Name: g.Name})
	}
	return plans
}
