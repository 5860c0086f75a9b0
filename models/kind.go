package models

import "strings"

// Kind names a resource type. It matches the lowercased XML tag the API
// uses for a single element of that type.
type Kind string

const (
	KindPlan         Kind = "plan"
	KindPromotion    Kind = "promotion"
	KindCustomer     Kind = "customer"
	KindSubscription Kind = "subscription"
	KindItem         Kind = "item"
	KindInvoice      Kind = "invoice"
	KindCharge       Kind = "charge"
	KindTransaction  Kind = "transaction"
	KindCoupon       Kind = "coupon"
	KindIncentive    Kind = "incentive"
	KindMetadatum    Kind = "metadatum"
)

type factory func(api Requester, parent Resource) Resource

// registry maps an element tag to the constructor of its kind.
var registry map[Kind]factory

func init() {
	registry = map[Kind]factory{
		KindPlan:         func(api Requester, parent Resource) Resource { return newPlan(api, parent) },
		KindPromotion:    func(api Requester, parent Resource) Resource { return newPromotion(api, parent) },
		KindCustomer:     func(api Requester, parent Resource) Resource { return newCustomer(api, parent) },
		KindSubscription: func(api Requester, parent Resource) Resource { return newSubscription(api, parent) },
		KindItem:         func(api Requester, parent Resource) Resource { return newItem(api, parent) },
		KindInvoice:      func(api Requester, parent Resource) Resource { return newInvoice(api, parent) },
		KindCharge:       func(api Requester, parent Resource) Resource { return newCharge(api, parent) },
		KindTransaction:  func(api Requester, parent Resource) Resource { return newTransaction(api, parent) },
		KindCoupon:       func(api Requester, parent Resource) Resource { return newCoupon(api, parent) },
		KindIncentive:    func(api Requester, parent Resource) Resource { return newIncentive(api, parent) },
		KindMetadatum:    func(api Requester, parent Resource) Resource { return newMetadatum(api, parent) },
	}
}

// lookupKind resolves an element tag ("metaDatum", "plan") to a registered kind.
func lookupKind(tag string) (Kind, factory, bool) {
	k := Kind(strings.ToLower(tag))
	f, ok := registry[k]
	return k, f, ok
}

type relation struct {
	parent Kind
	child  string
}

// singles lists the parent/child pairs whose container element holds
// exactly one nested record. Every other container is a list.
var singles = map[relation]bool{
	{KindCustomer, "subscriptions"}: true,
	{KindSubscription, "plans"}:     true,
	{KindInvoice, "transactions"}:   true,
}

func isSingle(parent Kind, childTag string) bool {
	return singles[relation{parent, childTag}]
}
