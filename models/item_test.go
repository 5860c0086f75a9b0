package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/cheddargetter/client"
)

const seatsReplyXML = `<customers>
  <customer id="` + customerID + `" code="CUST_1">
    <subscriptions>
      <subscription id="` + subscriptionID + `">
        <items>
          <item id="i-cust-seats" code="SEATS">
            <name>Seats</name>
            <quantity>7</quantity>
          </item>
        </items>
      </subscription>
    </subscriptions>
  </customer>
</customers>`

func TestItem_ValidateRequiresCustomer(t *testing.T) {
	plans, err := Plans(t.Context(), newFakeAPI(t).on("/plans/get/", plansXML))
	require.NoError(t, err)
	item, err := plans[0].GetItem("SEATS")
	require.NoError(t, err)

	_, err = item.Validate()
	require.ErrorIs(t, err, ErrValidation)
	require.ErrorIs(t, item.Save(t.Context()), ErrValidation)
}

func TestItem_ValidateOnlyQuantity(t *testing.T) {
	c := loadCustomer(t, newFakeAPI(t))
	item, err := c.GetItem("SEATS")
	require.NoError(t, err)

	ok, err := item.Validate()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, item.Set("quantity", 4))
	ok, err = item.Validate()
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, item.Set("name", "Chairs"))
	_, err = item.Validate()
	require.ErrorIs(t, err, ErrValidation)
}

func TestItem_SaveWithoutChangesSendsNothing(t *testing.T) {
	api := newFakeAPI(t)
	c := loadCustomer(t, api)
	item, err := c.GetItem("SEATS")
	require.NoError(t, err)

	require.NoError(t, item.Save(t.Context()))
	assert.Empty(t, api.requests)
}

func TestItem_SaveSetsQuantity(t *testing.T) {
	api := newFakeAPI(t).on("/customers/set-item-quantity/", seatsReplyXML)
	c := loadCustomer(t, api)
	item, err := c.GetItem("SEATS")
	require.NoError(t, err)

	require.NoError(t, item.Set("quantity", 7))
	require.NoError(t, item.Save(t.Context()))

	req := api.last()
	assert.Equal(t, "CUST_1", req.Code)
	assert.Equal(t, "SEATS", req.ItemCode)
	assert.Equal(t, map[string]any{"quantity": 7}, req.Fields)
	assert.True(t, item.IsClean())
}

func TestItem_AddIncrements(t *testing.T) {
	api := newFakeAPI(t).on("/customers/add-item-quantity/", seatsReplyXML)
	c := loadCustomer(t, api)
	item, err := c.GetItem("SEATS")
	require.NoError(t, err)

	require.NoError(t, item.Add(t.Context(), decimal.NewFromInt(4)))

	req := api.last()
	assert.Equal(t, "/customers/add-item-quantity/", req.Path)
	assert.True(t, decimal.NewFromInt(4).Equal(req.Fields["quantity"].(decimal.Decimal)))
	v, err := item.Get("quantity")
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.True(t, item.IsClean())
}

func TestItem_AddWithoutReplyElementKeepsLocalValue(t *testing.T) {
	api := newFakeAPI(t).on("/customers/add-item-quantity/", `<customers/>`)
	c := loadCustomer(t, api)
	item, err := c.GetItem("SEATS")
	require.NoError(t, err)

	require.NoError(t, item.Add(t.Context(), decimal.RequireFromString("0.5")))

	v, err := item.Get("quantity")
	require.NoError(t, err)
	assert.Equal(t, 3.5, v)
	assert.True(t, item.IsClean())
}

func TestItem_AddRejectedRestoresQuantity(t *testing.T) {
	api := newFakeAPI(t)
	c := loadCustomer(t, api)
	item, err := c.GetItem("SEATS")
	require.NoError(t, err)
	require.NoError(t, item.Set("name", "Chairs"))

	require.ErrorIs(t, item.Add(t.Context(), decimal.NewFromInt(1)), ErrValidation)

	v, err := item.Get("quantity")
	require.NoError(t, err)
	assert.Equal(t, 3, v)
	assert.Empty(t, api.requests)
}

func TestItem_TransportErrorLeavesItemDirty(t *testing.T) {
	api := newFakeAPI(t).fail("/customers/set-item-quantity/", &client.Error{Kind: client.ErrBadRequest, StatusCode: 400})
	c := loadCustomer(t, api)
	item, err := c.GetItem("SEATS")
	require.NoError(t, err)

	require.NoError(t, item.Set("quantity", 99))
	require.ErrorIs(t, item.Save(t.Context()), client.ErrBadRequest)
	assert.False(t, item.IsClean())
}
