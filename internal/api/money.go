package api

import (
	"context"
	"fmt"
	"net/http"

	"folio/internal/core"
	"folio/internal/events"
)

const moneyBase = "/api/MoneyManager"

// Dashboard lists the summaries of every month the user created.
func (c *Client) Dashboard(ctx context.Context) ([]core.DashboardItem, error) {
	raw, err := c.do(ctx, call{
		endpoint: "money.dashboard",
		method:   http.MethodGet,
		path:     moneyBase + "/dashboard",
		auth:     authRequired,
	})
	if err != nil {
		return nil, err
	}
	return decodeList[wireDashboardItem, core.DashboardItem](raw, "dashboard")
}

func (c *Client) Month(ctx context.Context, id int64) (core.FinancialMonth, error) {
	raw, err := c.do(ctx, call{
		endpoint: "money.month",
		method:   http.MethodGet,
		path:     fmt.Sprintf("%s/month/%d", moneyBase, id),
		auth:     authRequired,
	})
	if err != nil {
		return core.FinancialMonth{}, err
	}
	return decodeOne[wireMonth, core.FinancialMonth](raw, "month")
}

func (c *Client) CreateMonth(ctx context.Context, req core.CreateMonthRequest) error {
	_, err := c.do(ctx, call{
		endpoint: "money.create_month",
		method:   http.MethodPost,
		path:     moneyBase + "/create-month",
		body:     monthRequest(req),
		auth:     authRequired,
	})
	if err != nil {
		return err
	}
	c.publish(ctx, events.MonthCreated, 0, fmt.Sprintf("%s %d", req.Month, req.Year))
	return nil
}

func (c *Client) UpdateMonth(ctx context.Context, id int64, req core.CreateMonthRequest) error {
	_, err := c.do(ctx, call{
		endpoint: "money.update_month",
		method:   http.MethodPut,
		path:     fmt.Sprintf("%s/%d", moneyBase, id),
		body:     monthRequest(req),
		auth:     authRequired,
	})
	if err != nil {
		return err
	}
	c.publish(ctx, events.MonthUpdated, id, fmt.Sprintf("%s %d", req.Month, req.Year))
	return nil
}

func (c *Client) DeleteMonth(ctx context.Context, id int64) error {
	_, err := c.do(ctx, call{
		endpoint: "money.delete_month",
		method:   http.MethodDelete,
		path:     fmt.Sprintf("%s/%d", moneyBase, id),
		auth:     authRequired,
	})
	if err != nil {
		return err
	}
	c.publish(ctx, events.MonthDeleted, id, "")
	return nil
}

func (c *Client) AddBill(ctx context.Context, req core.CreateBillRequest) error {
	_, err := c.do(ctx, call{
		endpoint: "money.add_bill",
		method:   http.MethodPost,
		path:     moneyBase + "/add-bill",
		body:     billRequest(req),
		auth:     authRequired,
	})
	if err != nil {
		return err
	}
	c.publish(ctx, events.BillCreated, req.FinancialMonthID, billSummary(req))
	return nil
}

func (c *Client) UpdateBill(ctx context.Context, id int64, req core.CreateBillRequest) error {
	_, err := c.do(ctx, call{
		endpoint: "money.update_bill",
		method:   http.MethodPut,
		path:     fmt.Sprintf("%s/bill/%d", moneyBase, id),
		body:     billRequest(req),
		auth:     authRequired,
	})
	if err != nil {
		return err
	}
	c.publish(ctx, events.BillUpdated, id, billSummary(req))
	return nil
}

func (c *Client) DeleteBill(ctx context.Context, id int64) error {
	_, err := c.do(ctx, call{
		endpoint: "money.delete_bill",
		method:   http.MethodDelete,
		path:     fmt.Sprintf("%s/bill/%d", moneyBase, id),
		auth:     authRequired,
	})
	if err != nil {
		return err
	}
	c.publish(ctx, events.BillDeleted, id, "")
	return nil
}

func billSummary(req core.CreateBillRequest) string {
	return fmt.Sprintf("%s %s", req.Type, core.FormatAmount(req.Amount))
}
