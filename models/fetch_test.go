package models

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/cheddargetter/client"
)

func TestPlans(t *testing.T) {
	api := newFakeAPI(t).on("/plans/get/", plansXML)

	plans, err := Plans(t.Context(), api)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "FREE", plans[0].Code())
	assert.Equal(t, "Pro", plans[1].GetString("name"))
	assert.Empty(t, api.last().Code)
}

func TestGetPlan_NotFoundIsNil(t *testing.T) {
	api := newFakeAPI(t).fail("/plans/get/", &client.Error{Kind: client.ErrNotFound, StatusCode: 404})

	p, err := GetPlan(t.Context(), api, "NOPE")
	require.NoError(t, err)
	assert.Nil(t, p)

	plans, err := Plans(t.Context(), api)
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestGetPlan_OtherErrorsSurface(t *testing.T) {
	api := newFakeAPI(t).fail("/plans/get/", &client.Error{Kind: client.ErrAuthorizationRequired, StatusCode: 401})

	_, err := GetPlan(t.Context(), api, "PRO")
	require.ErrorIs(t, err, client.ErrAuthorizationRequired)
}

func TestPromotions(t *testing.T) {
	api := newFakeAPI(t).on("/promotions/get/", `<promotions>
  <promotion id="pr-1" code="SPRING">
    <name>Spring sale</name>
    <incentives>
      <incentive id="in-1"><type>percentage</type><percentage>10</percentage></incentive>
    </incentives>
    <coupons>
      <coupon id="co-1" code="SPRING10"><maxUses>100</maxUses></coupon>
    </coupons>
  </promotion>
</promotions>`)

	promos, err := Promotions(t.Context(), api)
	require.NoError(t, err)
	require.Len(t, promos, 1)
	require.Len(t, promos[0].Coupons(), 1)
	assert.Equal(t, "SPRING10", promos[0].Coupons()[0].Code())
	require.Len(t, promos[0].Incentives(), 1)
	assert.Equal(t, 10, promos[0].Incentives()[0].fields["percentage"])

	p, err := GetPromotion(t.Context(), api, "SPRING")
	require.NoError(t, err)
	assert.Equal(t, "pr-1", p.ID())
}

func TestCustomers_SearchAndList(t *testing.T) {
	api := newFakeAPI(t).
		on("/customers/get/", customerXML).
		on("/customers/list/", customerXML)

	found, err := Customers(t.Context(), api, map[string]any{"subscription_status": "activeOnly"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, map[string]any{"subscription_status": "activeOnly"}, api.last().Fields)

	listed, err := ListCustomers(t.Context(), api, nil)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "/customers/list/", api.last().Path)

	c, err := GetCustomer(t.Context(), api, "CUST_1")
	require.NoError(t, err)
	assert.Equal(t, customerID, c.ID())
	assert.Equal(t, "CUST_1", api.last().Code)
}

func TestGetCustomer_RoutesUUIDAndCode(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	api, err := client.New(client.Config{BaseURL: srv.URL, Username: "u", Password: "p", ProductCode: "SHOP"})
	require.NoError(t, err)

	c, err := GetCustomer(t.Context(), api, "550e8400-e29b-41d4-a716-446655440000")
	require.NoError(t, err)
	assert.Nil(t, c)

	_, err = GetCustomer(t.Context(), api, "CUST_1")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{
		"/xml/customers/get/id/550e8400-e29b-41d4-a716-446655440000/productCode/SHOP/",
		"/xml/customers/get/code/CUST_1/productCode/SHOP/",
	}, paths)
}
