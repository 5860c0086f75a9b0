// Package models maps CheddarGetter XML resources onto dirty-tracking records.
//
// # Overview
//
// Every kind (Plan, Promotion, Customer, Subscription, Item, Invoice, Charge,
// Transaction, Coupon, Incentive, Metadatum) embeds *Record, a field bag that
// remembers the values last synced with the server. BuildDiff returns only
// what changed, and that is what Save sends.
//
// Records are hydrated from XML by walking the element tree: leaf elements
// become fields (numeric text turns into int or float64), elements with
// children become nested records. A fixed relation table decides whether a
// container holds one nested record (a customer's subscription, a
// subscription's plan, an invoice's transaction) or a list. Element tags are
// resolved to kinds through a registry.
//
// Per-kind field behavior lives in a Schema: card numbers are reduced to
// digits, expirations are expanded to MM/YYYY, a subscription's plan code is
// resolved into a Plan record, and a plan item's "quantity" stands in for
// "quantity_included".
//
// # Error Handling
//
// Local failures are ErrValidation, ErrImmutableField, ErrMissingKey and
// ErrNotImplemented. Transport failures come from the client package and
// match its sentinels (client.ErrNotFound and friends). Fetch helpers turn a
// not-found reply into an empty result.
//
// Records are not safe for concurrent mutation.
package models
