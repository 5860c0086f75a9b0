package models

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/cheddargetter/client"
)

// freeTolerance absorbs rounding in charge amounts that arrive as floats.
var freeTolerance = decimal.New(1, -6)

// Plan is a pricing plan.
type Plan struct {
	*Record
}

func NewPlan(api Requester) *Plan {
	return newPlan(api, nil)
}

func newPlan(api Requester, parent Resource) *Plan {
	p := &Plan{Record: newRecord(KindPlan, api, parent)}
	p.self = p
	return p
}

// Delete removes the plan. The API answers a successful delete with a body
// that is not XML, so ErrUnexpectedResponse counts as success.
func (p *Plan) Delete(ctx context.Context) error {
	_, err := p.api.Do(ctx, client.Request{Path: "/plans/delete/", Code: p.ref()})
	if errors.Is(err, client.ErrUnexpectedResponse) {
		return nil
	}
	return err
}

// IsFree reports whether setup plus recurring charges round to zero.
// Missing amounts count as zero.
func (p *Plan) IsFree() bool {
	setup, _ := toDecimal(p.fieldOrZero("setup_charge_amount"))
	recurring, _ := toDecimal(p.fieldOrZero("recurring_charge_amount"))
	return setup.Add(recurring).Abs().LessThan(freeTolerance)
}

func (p *Plan) fieldOrZero(name string) any {
	v, ok := p.fields[name]
	if !ok {
		return 0
	}
	if s, isText := v.(string); isText {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return 0
		}
		return d
	}
	return v
}

func (p *Plan) Items() []*Item {
	return manyOf[*Item](p.Record, "items")
}

// GetItem returns the plan item with the given code.
func (p *Plan) GetItem(code string) (*Item, error) {
	for _, item := range p.Items() {
		if item.code == code {
			return item, nil
		}
	}
	return nil, fmt.Errorf("%w: item %q in plan %q", client.ErrNotFound, code, p.code)
}
