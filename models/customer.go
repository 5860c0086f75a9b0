package models

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/cheddargetter/client"
)

var (
	customerRequired = []string{"first_name", "last_name", "email"}

	// Payment fields forwarded with a new customer when present.
	newSubscriptionFields = []string{
		"cc_first_name", "cc_last_name", "cc_number", "cc_expiration",
		"cc_card_code", "cc_zip", "cc_address",
	}
)

// Customer owns exactly one subscription and a list of metadata.
type Customer struct {
	*Record
}

func NewCustomer(api Requester) *Customer {
	return newCustomer(api, nil)
}

func newCustomer(api Requester, parent Resource) *Customer {
	c := &Customer{Record: newRecord(KindCustomer, api, parent)}
	c.self = c
	c.ones[string(KindSubscription)] = newSubscription(api, c)
	c.many["meta_data"] = []Resource{}
	return c
}

func (c *Customer) Subscription() *Subscription {
	s := oneOf[*Subscription](c.Record, string(KindSubscription))
	if s == nil {
		s = newSubscription(c.api, c)
		c.ones[string(KindSubscription)] = s
	}
	return s
}

func (c *Customer) Invoices() []*Invoice {
	return manyOf[*Invoice](c.Subscription().Record, "invoices")
}

func (c *Customer) Metadata() []*Metadatum {
	return manyOf[*Metadatum](c.Record, "meta_data")
}

// Validate checks what the API requires before a save. Payment details are
// only checked for a customer that is about to be created.
func (c *Customer) Validate() error {
	if c.code == "" {
		return fmt.Errorf("%w: customer code is not set", ErrValidation)
	}
	if c.IsNew() {
		if err := c.Subscription().Validate(); err != nil {
			return err
		}
	}
	for _, key := range customerRequired {
		if v, err := c.Get(key); err != nil || isBlank(v) {
			return fmt.Errorf("%w: missing required field %q", ErrValidation, key)
		}
	}
	return nil
}

// Save creates or edits the customer and reloads it from the reply.
func (c *Customer) Save(ctx context.Context) error {
	if err := c.Validate(); err != nil {
		return err
	}

	fields := c.BuildDiff()
	for _, m := range c.Metadata() {
		fields[fmt.Sprintf("meta_data[%s]", m.Name())] = m.Value()
	}

	sub := c.Subscription()
	path := "/customers/edit/"
	if c.IsNew() {
		path = "/customers/new/"
		planCode := sub.PlanCode()
		if planCode == "" {
			return fmt.Errorf("%w: a new customer needs a subscription plan", ErrValidation)
		}
		fields["subscription[plan_code]"] = planCode
		if sub.Has("coupon_code") {
			fields["subscription[coupon_code]"] = sub.fields["coupon_code"]
		}
		for _, key := range newSubscriptionFields {
			if sub.Has(key) {
				fields["subscription["+key+"]"] = sub.fields[key]
			}
		}
	} else {
		for k, v := range sub.BuildDiff() {
			fields["subscription["+k+"]"] = v
		}
	}

	root, err := c.api.Do(ctx, client.Request{Path: path, Code: c.code, Fields: fields})
	if err != nil {
		return err
	}
	c.commit()
	sub.commit()
	if el := findFirst(root, string(KindCustomer)); el != nil {
		c.loadFrom(el, true)
	}
	return nil
}

// Delete removes the customer, tolerating the malformed success reply.
func (c *Customer) Delete(ctx context.Context) error {
	_, err := c.api.Do(ctx, client.Request{Path: "/customers/delete/", Code: c.ref()})
	if errors.Is(err, client.ErrUnexpectedResponse) {
		return nil
	}
	return err
}

// GetItem returns a subscription item and attaches it to c so that its
// quantity can be changed.
func (c *Customer) GetItem(code string) (*Item, error) {
	for _, item := range c.Subscription().Items() {
		if item.code == code {
			item.customer = c
			return item, nil
		}
	}
	return nil, fmt.Errorf("%w: item %q for customer %q", client.ErrNotFound, code, c.code)
}

// AddCharge records a one-off charge (or credit, with a negative amount)
// against an item.
func (c *Customer) AddCharge(ctx context.Context, chargeCode, itemCode string, amount decimal.Decimal, quantity int, description string) error {
	fields := map[string]any{
		"charge_code": chargeCode,
		"each_amount": amount.StringFixed(2),
		"quantity":    quantity,
	}
	if description != "" {
		fields["description"] = description
	}
	_, err := c.api.Do(ctx, client.Request{
		Path:     "/customers/add-charge/",
		Code:     c.ref(),
		ItemCode: itemCode,
		Fields:   fields,
	})
	return err
}

// GetMeta returns the metadata value for name, or def.
func (c *Customer) GetMeta(name, def string) string {
	for _, m := range c.Metadata() {
		if m.Name() == name {
			return m.Value()
		}
	}
	return def
}

// SetMeta adds or updates a metadata entry locally; Save sends it. An empty
// value removes the entry on the server.
func (c *Customer) SetMeta(name, value string) {
	for _, m := range c.Metadata() {
		if m.Name() == name {
			m.fields["value"] = value
			return
		}
	}
	c.many["meta_data"] = append(c.many["meta_data"], NewMetadatum(c.api, name, value))
}

func isBlank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	default:
		return false
	}
}
