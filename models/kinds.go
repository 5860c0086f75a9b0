package models

// Promotion is a top-level kind carrying coupons and incentives.
type Promotion struct{ *Record }

func newPromotion(api Requester, parent Resource) *Promotion {
	p := &Promotion{Record: newRecord(KindPromotion, api, parent)}
	p.self = p
	return p
}

func (p *Promotion) Coupons() []*Coupon       { return manyOf[*Coupon](p.Record, "coupons") }
func (p *Promotion) Incentives() []*Incentive { return manyOf[*Incentive](p.Record, "incentives") }

type Invoice struct{ *Record }

func newInvoice(api Requester, parent Resource) *Invoice {
	v := &Invoice{Record: newRecord(KindInvoice, api, parent)}
	v.self = v
	return v
}

func (v *Invoice) Charges() []*Charge { return manyOf[*Charge](v.Record, "charges") }

// Transaction is the single payment attempt recorded for the invoice.
func (v *Invoice) Transaction() *Transaction {
	return oneOf[*Transaction](v.Record, string(KindTransaction))
}

type Charge struct{ *Record }

func newCharge(api Requester, parent Resource) *Charge {
	c := &Charge{Record: newRecord(KindCharge, api, parent)}
	c.self = c
	return c
}

type Transaction struct{ *Record }

func newTransaction(api Requester, parent Resource) *Transaction {
	t := &Transaction{Record: newRecord(KindTransaction, api, parent)}
	t.self = t
	return t
}

type Coupon struct{ *Record }

func newCoupon(api Requester, parent Resource) *Coupon {
	c := &Coupon{Record: newRecord(KindCoupon, api, parent)}
	c.self = c
	return c
}

type Incentive struct{ *Record }

func newIncentive(api Requester, parent Resource) *Incentive {
	i := &Incentive{Record: newRecord(KindIncentive, api, parent)}
	i.self = i
	return i
}

// Metadatum is one name/value pair attached to a customer.
type Metadatum struct{ *Record }

func NewMetadatum(api Requester, name, value string) *Metadatum {
	m := newMetadatum(api, nil)
	m.fields["name"] = name
	m.fields["value"] = value
	return m
}

func newMetadatum(api Requester, parent Resource) *Metadatum {
	m := &Metadatum{Record: newRecord(KindMetadatum, api, parent)}
	m.self = m
	return m
}

func (m *Metadatum) Name() string  { return m.GetString("name") }
func (m *Metadatum) Value() string { return m.GetString("value") }
