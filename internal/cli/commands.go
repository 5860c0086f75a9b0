package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/cheddargetter/client"
	"github.com/dmitrijs2005/cheddargetter/models"
)

var errUsage = errors.New("usage")

func usage(format string) error {
	return fmt.Errorf("%w: %s", errUsage, format)
}

func (a *App) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
}

// money renders a numeric field with two decimals, or "-" when unset.
func money(r *models.Record, name string) string {
	s := r.GetString(name)
	if s == "" {
		return "-"
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	return d.StringFixed(2)
}

func (a *App) Plans(ctx context.Context, _ []string) error {
	plans, err := models.Plans(ctx, a.api)
	if err != nil {
		return err
	}

	tw := a.table()
	fmt.Fprintln(tw, "CODE\tNAME\tSETUP\tRECURRING\tFREE")
	for _, p := range plans {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\n",
			p.Code(), p.GetString("name"),
			money(p.Record, "setup_charge_amount"), money(p.Record, "recurring_charge_amount"),
			p.IsFree())
	}
	return tw.Flush()
}

func (a *App) Plan(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("plan <code>")
	}
	p, err := models.GetPlan(ctx, a.api, args[0])
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("%w: plan %q", client.ErrNotFound, args[0])
	}

	fmt.Fprintf(a.out, "%s (%s)\n", p.GetString("name"), p.Code())
	fmt.Fprintf(a.out, "  setup: %s  recurring: %s  free: %t\n",
		money(p.Record, "setup_charge_amount"), money(p.Record, "recurring_charge_amount"), p.IsFree())

	tw := a.table()
	fmt.Fprintln(tw, "  ITEM\tNAME\tINCLUDED\tOVERAGE")
	for _, it := range p.Items() {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n",
			it.Code(), it.GetString("name"), it.GetString("quantity"), money(it.Record, "overage_amount"))
	}
	return tw.Flush()
}

func (a *App) Promotions(ctx context.Context, _ []string) error {
	promos, err := models.Promotions(ctx, a.api)
	if err != nil {
		return err
	}

	tw := a.table()
	fmt.Fprintln(tw, "NAME\tCOUPONS")
	for _, p := range promos {
		codes := make([]string, 0, len(p.Coupons()))
		for _, c := range p.Coupons() {
			codes = append(codes, c.Code())
		}
		fmt.Fprintf(tw, "%s\t%s\n", p.GetString("name"), strings.Join(codes, ","))
	}
	return tw.Flush()
}

func (a *App) Customers(ctx context.Context, _ []string) error {
	customers, err := models.Customers(ctx, a.api, nil)
	if err != nil {
		return err
	}

	tw := a.table()
	fmt.Fprintln(tw, "CODE\tNAME\tEMAIL\tPLAN")
	for _, c := range customers {
		fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\n",
			c.Code(), c.GetString("first_name"), c.GetString("last_name"),
			c.GetString("email"), c.Subscription().PlanCode())
	}
	return tw.Flush()
}

func (a *App) findCustomer(ctx context.Context, code string) (*models.Customer, error) {
	c, err := models.GetCustomer(ctx, a.api, code)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: customer %q", client.ErrNotFound, code)
	}
	return c, nil
}

func (a *App) Customer(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("customer <code>")
	}
	c, err := a.findCustomer(ctx, args[0])
	if err != nil {
		return err
	}

	sub := c.Subscription()
	fmt.Fprintf(a.out, "%s %s <%s> (%s)\n",
		c.GetString("first_name"), c.GetString("last_name"), c.GetString("email"), c.Code())
	fmt.Fprintf(a.out, "  plan: %s\n", sub.PlanCode())
	if canceled := sub.GetString("canceled_datetime"); canceled != "" {
		fmt.Fprintf(a.out, "  canceled: %s\n", canceled)
	}
	for _, m := range c.Metadata() {
		fmt.Fprintf(a.out, "  meta %s=%s\n", m.Name(), m.Value())
	}
	for _, it := range sub.Items() {
		fmt.Fprintf(a.out, "  item %s: %s\n", it.Code(), it.GetString("quantity"))
	}
	fmt.Fprintf(a.out, "  invoices: %d\n", len(c.Invoices()))
	return nil
}

func (a *App) Meta(ctx context.Context, args []string) error {
	if len(args) != 2 && len(args) != 3 {
		return usage("meta <customer> <name> [value]")
	}
	c, err := a.findCustomer(ctx, args[0])
	if err != nil {
		return err
	}

	if len(args) == 2 {
		fmt.Fprintln(a.out, c.GetMeta(args[1], ""))
		return nil
	}

	c.SetMeta(args[1], args[2])
	if err := c.Save(ctx); err != nil {
		return err
	}
	a.logger.Info(ctx, "metadata saved", "customer", c.Code(), "name", args[1])
	fmt.Fprintf(a.out, "%s=%s\n", args[1], c.GetMeta(args[1], ""))
	return nil
}

func (a *App) Charge(ctx context.Context, args []string) error {
	if len(args) < 4 {
		return usage("charge <customer> <charge> <item> <amount> [qty] [description...]")
	}
	amount, err := decimal.NewFromString(args[3])
	if err != nil {
		return fmt.Errorf("%w: amount %q is not a number", errUsage, args[3])
	}
	qty := 1
	if len(args) > 4 {
		if qty, err = strconv.Atoi(args[4]); err != nil {
			return fmt.Errorf("%w: quantity %q is not an integer", errUsage, args[4])
		}
	}
	var description string
	if len(args) > 5 {
		description = strings.Join(args[5:], " ")
	}

	c, err := a.findCustomer(ctx, args[0])
	if err != nil {
		return err
	}
	if err := c.AddCharge(ctx, args[1], args[2], amount, qty, description); err != nil {
		return err
	}
	a.logger.Info(ctx, "charge added", "customer", c.Code(), "charge", args[1])
	fmt.Fprintf(a.out, "charged %s x %d to %s\n", amount.StringFixed(2), qty, c.Code())
	return nil
}

func (a *App) customerItem(ctx context.Context, customer, item string) (*models.Item, error) {
	c, err := a.findCustomer(ctx, customer)
	if err != nil {
		return nil, err
	}
	return c.GetItem(item)
}

func (a *App) Quantity(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return usage("quantity <customer> <item> <qty>")
	}
	qty, err := decimal.NewFromString(args[2])
	if err != nil {
		return fmt.Errorf("%w: quantity %q is not a number", errUsage, args[2])
	}
	it, err := a.customerItem(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	if err := it.Set("quantity", qty); err != nil {
		return err
	}
	if err := it.Save(ctx); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s: %s\n", it.Code(), it.GetString("quantity"))
	return nil
}

func (a *App) AddQuantity(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return usage("add <customer> <item> <delta>")
	}
	delta, err := decimal.NewFromString(args[2])
	if err != nil {
		return fmt.Errorf("%w: delta %q is not a number", errUsage, args[2])
	}
	it, err := a.customerItem(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	if err := it.Add(ctx, delta); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s: %s\n", it.Code(), it.GetString("quantity"))
	return nil
}

func (a *App) Cancel(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("cancel <customer>")
	}
	c, err := a.findCustomer(ctx, args[0])
	if err != nil {
		return err
	}

	answer, err := GetSimpleText(a.reader, fmt.Sprintf("Type %s to cancel its subscription", c.Code()), a.out)
	if err != nil {
		return err
	}
	if answer != c.Code() {
		fmt.Fprintln(a.out, "Aborted")
		return nil
	}

	if err := c.Subscription().Cancel(ctx); err != nil {
		return err
	}
	a.logger.Info(ctx, "subscription canceled", "customer", c.Code())
	fmt.Fprintln(a.out, "Canceled")
	return nil
}
