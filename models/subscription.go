package models

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/cheddargetter/client"
)

// Payment fields required for a subscription to a plan that is not free.
var paymentRequired = []string{
	"cc_first_name", "cc_last_name", "cc_number", "cc_expiration", "cc_card_code", "cc_zip",
}

// Subscription belongs to a customer and always holds a plan record.
// Assigning "plan" or "plan_code" a code looks the plan up.
type Subscription struct {
	*Record
}

func newSubscription(api Requester, parent Resource) *Subscription {
	s := &Subscription{Record: newRecord(KindSubscription, api, parent)}
	s.self = s
	plan := newPlan(api, nil)
	s.ones[string(KindPlan)] = plan
	s.cleanOnes[string(KindPlan)] = plan
	return s
}

func (s *Subscription) Plan() *Plan {
	return oneOf[*Plan](s.Record, string(KindPlan))
}

func (s *Subscription) PlanCode() string {
	if p := s.Plan(); p != nil {
		return p.code
	}
	return ""
}

func (s *Subscription) Items() []*Item {
	return manyOf[*Item](s.Record, "items")
}

func (s *Subscription) Invoices() []*Invoice {
	return manyOf[*Invoice](s.Record, "invoices")
}

// Customer returns the owning customer, or nil for a detached subscription.
func (s *Subscription) Customer() *Customer {
	c, _ := s.parent.(*Customer)
	return c
}

// Validate passes for a loaded free plan; otherwise card details must be set.
func (s *Subscription) Validate() error {
	if p := s.Plan(); p != nil && !p.IsNew() && p.IsFree() {
		return nil
	}
	for _, key := range paymentRequired {
		if v, err := s.Get(key); err != nil || isBlank(v) {
			return fmt.Errorf("%w: missing payment field %q", ErrValidation, key)
		}
	}
	return nil
}

// Save pushes changed fields. A subscription that was never saved is
// created through its customer.
func (s *Subscription) Save(ctx context.Context) error {
	c := s.Customer()
	if c == nil {
		return fmt.Errorf("%w: subscription is not attached to a customer", ErrValidation)
	}
	if s.IsNew() {
		return c.Save(ctx)
	}

	fields := s.BuildDiff()
	if len(fields) == 0 {
		return nil
	}

	root, err := s.api.Do(ctx, client.Request{
		Path:   "/customers/edit-subscription/",
		Code:   c.ref(),
		Fields: fields,
	})
	if err != nil {
		return err
	}
	s.commit()
	if el := findFirst(root, string(KindSubscription)); el != nil {
		s.loadFrom(el, true)
	}
	return nil
}

// Delete cancels the subscription.
func (s *Subscription) Delete(ctx context.Context) error {
	c := s.Customer()
	if c == nil {
		return fmt.Errorf("%w: subscription is not attached to a customer", ErrValidation)
	}
	_, err := s.api.Do(ctx, client.Request{Path: "/customers/cancel/", Code: c.ref()})
	if errors.Is(err, client.ErrUnexpectedResponse) {
		return nil
	}
	return err
}

// Cancel is Delete under the name the API uses.
func (s *Subscription) Cancel(ctx context.Context) error {
	return s.Delete(ctx)
}
