package models

import (
	"context"
	"fmt"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/cheddargetter/client"
)

// Item is a metered or counted item. Under a plan, "quantity" reads and
// writes "quantity_included".
type Item struct {
	*Record
	customer *Customer
}

func newItem(api Requester, parent Resource) *Item {
	i := &Item{Record: newRecord(KindItem, api, parent)}
	i.self = i
	return i
}

// Customer is set once the item was obtained through Customer.GetItem.
func (i *Item) Customer() *Customer { return i.customer }

// Validate reports whether there is a quantity change to send. Only a
// customer's item can be changed, and only its quantity.
func (i *Item) Validate() (bool, error) {
	if i.customer == nil {
		return false, fmt.Errorf("%w: item quantities can only be changed on items attached to a customer", ErrValidation)
	}
	diff := i.BuildDiff()
	if len(diff) == 0 {
		return false, nil
	}
	if _, ok := diff["quantity"]; !ok || len(diff) > 1 {
		return false, fmt.Errorf("%w: only the quantity of an item can be changed", ErrValidation)
	}
	return true, nil
}

// Save sets the item quantity to its current value.
func (i *Item) Save(ctx context.Context) error {
	ok, err := i.Validate()
	if !ok {
		return err
	}
	return i.push(ctx, "/customers/set-item-quantity/", i.fields["quantity"])
}

// Add increments the quantity by delta on the server.
func (i *Item) Add(ctx context.Context, delta decimal.Decimal) error {
	previous, had := i.fields["quantity"]
	current, _ := toDecimal(previous)
	i.fields["quantity"] = numberValue(current.Add(delta))

	ok, err := i.Validate()
	if !ok {
		if had {
			i.fields["quantity"] = previous
		} else {
			delete(i.fields, "quantity")
		}
		return err
	}
	return i.push(ctx, "/customers/add-item-quantity/", delta)
}

func (i *Item) push(ctx context.Context, path string, quantity any) error {
	root, err := i.api.Do(ctx, client.Request{
		Path:     path,
		Code:     i.customer.ref(),
		ItemCode: i.code,
		Fields:   map[string]any{"quantity": quantity},
	})
	if err != nil {
		return err
	}
	if el := i.findSelf(root); el != nil {
		i.loadFrom(el, true)
	} else {
		i.commit()
	}
	return nil
}

func (i *Item) findSelf(root *etree.Element) *etree.Element {
	for _, el := range findAll(root, string(KindItem)) {
		if el.SelectAttrValue("code", "") == i.code {
			return el
		}
	}
	return nil
}
