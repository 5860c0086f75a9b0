package models

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/cheddargetter/client"
)

// fetch calls /<kind>s/<method>/ and builds one record per matching
// element. A not-found reply is an empty result.
func fetch[T Resource](ctx context.Context, api Requester, kind Kind, method, code string, filters map[string]any) ([]T, error) {
	root, err := api.Do(ctx, client.Request{
		Path:   "/" + string(kind) + "s/" + method + "/",
		Code:   code,
		Fields: filters,
	})
	if errors.Is(err, client.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	_, build, _ := lookupKind(string(kind))
	var out []T
	for _, el := range findAll(root, string(kind)) {
		res := build(api, nil)
		res.Base().loadFrom(el, true)
		if v, ok := res.(T); ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func fetchOne[T Resource](ctx context.Context, api Requester, kind Kind, code string) (T, error) {
	var zero T
	found, err := fetch[T](ctx, api, kind, "get", code, nil)
	if err != nil || len(found) == 0 {
		return zero, err
	}
	return found[0], nil
}

// Plans returns every pricing plan of the product.
func Plans(ctx context.Context, api Requester) ([]*Plan, error) {
	return fetch[*Plan](ctx, api, KindPlan, "get", "", nil)
}

// GetPlan returns the plan with the given code or id, or nil when there is none.
func GetPlan(ctx context.Context, api Requester, code string) (*Plan, error) {
	return fetchOne[*Plan](ctx, api, KindPlan, code)
}

func Promotions(ctx context.Context, api Requester) ([]*Promotion, error) {
	return fetch[*Promotion](ctx, api, KindPromotion, "get", "", nil)
}

func GetPromotion(ctx context.Context, api Requester, code string) (*Promotion, error) {
	return fetchOne[*Promotion](ctx, api, KindPromotion, code)
}

// Customers searches customers; filters are sent as form fields
// (e.g. "subscription_status": "activeOnly"). Nil filters return everyone.
func Customers(ctx context.Context, api Requester, filters map[string]any) ([]*Customer, error) {
	return fetch[*Customer](ctx, api, KindCustomer, "get", "", filters)
}

// ListCustomers uses the lighter /customers/list/ call, which returns
// fewer fields per customer.
func ListCustomers(ctx context.Context, api Requester, filters map[string]any) ([]*Customer, error) {
	return fetch[*Customer](ctx, api, KindCustomer, "list", "", filters)
}

func GetCustomer(ctx context.Context, api Requester, code string) (*Customer, error) {
	return fetchOne[*Customer](ctx, api, KindCustomer, code)
}
