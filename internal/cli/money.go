package cli

import (
	"context"
	"fmt"
	"regexp"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"folio/internal/core"
)

// detailConcurrency bounds the parallel month fetches of "months --details".
const detailConcurrency = 4

var colorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

type monthFetcher interface {
	Month(ctx context.Context, id int64) (core.FinancialMonth, error)
}

// fetchMonths loads the full record of every item, keeping the input order.
// The first failure cancels the remaining fetches.
func fetchMonths(ctx context.Context, f monthFetcher, items []core.DashboardItem, limit int) ([]core.FinancialMonth, error) {
	months := make([]core.FinancialMonth, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, it := range items {
		g.Go(func() error {
			m, err := f.Month(ctx, it.ID)
			if err != nil {
				return fmt.Errorf("month %d: %w", it.ID, err)
			}
			months[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return months, nil
}

func newMonthsCmd(app *App) *cobra.Command {
	var details bool
	cmd := &cobra.Command{
		Use:   "months",
		Short: "List budget months grouped by year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			items, err := app.client.Dashboard(ctx)
			if err != nil {
				return err
			}
			groups := core.GroupDashboard(items)
			if !details {
				renderDashboard(cmd.OutOrStdout(), groups)
				return nil
			}

			months, err := fetchMonths(ctx, app.client, groups.Flatten(), detailConcurrency)
			if err != nil {
				return err
			}
			renderMonthSummaries(cmd.OutOrStdout(), months)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&details, "details", "d", false, "fetch expenses and balance of every month")
	return cmd
}

// monthFlags are shared by month create and month update.
type monthFlags struct {
	picker string
	income string
}

func (f *monthFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.picker, "month", "m", "", "month as YYYY-MM")
	cmd.Flags().StringVarP(&f.income, "income", "i", "", "total income")
}

func (f monthFlags) request() (core.CreateMonthRequest, error) {
	year, month, err := core.MonthFromPicker(f.picker)
	if err != nil {
		return core.CreateMonthRequest{}, err
	}
	income, err := core.ParseAmount(f.income)
	if err != nil {
		return core.CreateMonthRequest{}, err
	}
	req := core.CreateMonthRequest{Year: year, Month: month, TotalIncome: income}
	return req, core.ValidateMonth(req)
}

func newMonthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "month <id>",
		Short: "Show one month with its expense breakdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			m, err := app.client.Month(cmd.Context(), id)
			if err != nil {
				return err
			}
			renderMonth(cmd.OutOrStdout(), m, core.BuildBreakdown(m))
			return nil
		},
	}

	var create monthFlags
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := create.request()
			if err != nil {
				return err
			}
			if err := app.client.CreateMonth(cmd.Context(), req); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %d\n", req.Month, req.Year)
			return nil
		},
	}
	create.register(createCmd)

	var update monthFlags
	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the month and income of a month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			req, err := update.request()
			if err != nil {
				return err
			}
			if err := app.client.UpdateMonth(cmd.Context(), id, req); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated month %d\n", id)
			return nil
		},
	}
	update.register(updateCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a month and its bills",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := app.client.DeleteMonth(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted month %d\n", id)
			return nil
		},
	}

	cmd.AddCommand(createCmd, updateCmd, deleteCmd)
	return cmd
}

type billFlags struct {
	category    string
	amount      string
	description string
	color       string
}

func (f *billFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.category, "type", "t", "", "category, e.g. Food")
	cmd.Flags().StringVarP(&f.amount, "amount", "a", "", "amount")
	cmd.Flags().StringVar(&f.description, "description", "", "optional description")
	cmd.Flags().StringVar(&f.color, "color", "", "chart color as #rrggbb")
}

func (f billFlags) request(monthID int64) (core.CreateBillRequest, error) {
	if f.color != "" && !colorPattern.MatchString(f.color) {
		return core.CreateBillRequest{}, fmt.Errorf("invalid color %q: use #rgb or #rrggbb", f.color)
	}
	amount, err := core.ParseAmount(f.amount)
	if err != nil {
		return core.CreateBillRequest{}, err
	}
	req := core.CreateBillRequest{
		FinancialMonthID: monthID,
		Type:             f.category,
		Amount:           amount,
		Description:      f.description,
		Color:            f.color,
	}
	return req, core.ValidateBill(&req)
}

func newBillCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bill",
		Short: "Add, change or delete bills",
	}

	var add billFlags
	addCmd := &cobra.Command{
		Use:   "add <month-id>",
		Short: "Add a bill to a month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			monthID, err := parseID(args[0])
			if err != nil {
				return err
			}
			req, err := add.request(monthID)
			if err != nil {
				return err
			}
			if err := app.client.AddBill(cmd.Context(), req); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s to month %d\n", req.Type, core.FormatAmount(req.Amount), monthID)
			return nil
		},
	}
	add.register(addCmd)

	var update billFlags
	updateCmd := &cobra.Command{
		Use:   "update <month-id> <bill-id>",
		Short: "Replace a bill",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			monthID, err := parseID(args[0])
			if err != nil {
				return err
			}
			billID, err := parseID(args[1])
			if err != nil {
				return err
			}
			req, err := update.request(monthID)
			if err != nil {
				return err
			}
			if err := app.client.UpdateBill(cmd.Context(), billID, req); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated bill %d\n", billID)
			return nil
		},
	}
	update.register(updateCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete <bill-id>",
		Short: "Delete a bill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			billID, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := app.client.DeleteBill(cmd.Context(), billID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted bill %d\n", billID)
			return nil
		},
	}

	cmd.AddCommand(addCmd, updateCmd, deleteCmd)
	return cmd
}
