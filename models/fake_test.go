package models

import (
	"context"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/cheddargetter/client"
)

/*************
 * Fake requester
 *************/

type reply struct {
	body string
	err  error
}

type fakeAPI struct {
	t        *testing.T
	requests []client.Request
	replies  map[string]reply
}

func newFakeAPI(t *testing.T) *fakeAPI {
	return &fakeAPI{t: t, replies: map[string]reply{}}
}

func (f *fakeAPI) on(path, body string) *fakeAPI {
	f.replies[path] = reply{body: body}
	return f
}

func (f *fakeAPI) fail(path string, err error) *fakeAPI {
	f.replies[path] = reply{err: err}
	return f
}

func (f *fakeAPI) Do(_ context.Context, req client.Request) (*etree.Element, error) {
	f.requests = append(f.requests, req)
	r, ok := f.replies[req.Path]
	if !ok {
		f.t.Fatalf("unexpected request to %s", req.Path)
	}
	if r.err != nil {
		return nil, r.err
	}
	return parseRoot(f.t, r.body), nil
}

func (f *fakeAPI) last() client.Request {
	require.NotEmpty(f.t, f.requests)
	return f.requests[len(f.requests)-1]
}

func parseRoot(t *testing.T, body string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(body))
	require.NotNil(t, doc.Root())
	return doc.Root()
}

func withClock(t *testing.T, now time.Time) {
	t.Helper()
	prev := clock
	clock = func() time.Time { return now }
	t.Cleanup(func() { clock = prev })
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(time.DateOnly, s)
	require.NoError(t, err)
	return d
}

/*************
 * Sample replies
 *************/

const (
	customerID     = "a1b2c3d4-0000-4000-8000-000000000001"
	subscriptionID = "a1b2c3d4-0000-4000-8000-000000000002"
	proPlanID      = "a1b2c3d4-0000-4000-8000-000000000003"
	freePlanID     = "a1b2c3d4-0000-4000-8000-000000000004"
)

const plansXML = `<?xml version="1.0" encoding="UTF-8"?>
<plans>
  <plan id="` + freePlanID + `" code="FREE">
    <name>Free</name>
    <isActive>1</isActive>
    <setupChargeAmount>0.00</setupChargeAmount>
    <recurringChargeAmount>0.00</recurringChargeAmount>
    <items>
      <item id="i-free-seats" code="SEATS">
        <name>Seats</name>
        <quantityIncluded>1</quantityIncluded>
      </item>
    </items>
  </plan>
  <plan id="` + proPlanID + `" code="PRO">
    <name>Pro</name>
    <isActive>1</isActive>
    <setupChargeAmount>0.00</setupChargeAmount>
    <recurringChargeAmount>20.00</recurringChargeAmount>
    <items>
      <item id="i-pro-seats" code="SEATS">
        <name>Seats</name>
        <quantityIncluded>5</quantityIncluded>
        <overageAmount>2.50</overageAmount>
      </item>
    </items>
  </plan>
</plans>`

const proPlanXML = `<plans>
  <plan id="` + proPlanID + `" code="PRO">
    <name>Pro</name>
    <setupChargeAmount>0.00</setupChargeAmount>
    <recurringChargeAmount>20.00</recurringChargeAmount>
  </plan>
</plans>`

const freePlanXML = `<plans>
  <plan id="` + freePlanID + `" code="FREE">
    <name>Free</name>
    <setupChargeAmount>0.00</setupChargeAmount>
    <recurringChargeAmount>0.00</recurringChargeAmount>
  </plan>
</plans>`

const customerXML = `<?xml version="1.0" encoding="UTF-8"?>
<customers>
  <customer id="` + customerID + `" code="CUST_1">
    <firstName>Jane</firstName>
    <lastName>Doe</lastName>
    <company></company>
    <email>jane@example.com</email>
    <isVatExempt>0</isVatExempt>
    <createdDatetime>2011-01-01T00:00:00+00:00</createdDatetime>
    <metaData>
      <metaDatum id="m-1">
        <name>color</name>
        <value>blue</value>
      </metaDatum>
    </metaData>
    <subscriptions>
      <subscription id="` + subscriptionID + `">
        <plans>
          <plan id="` + proPlanID + `" code="PRO">
            <name>Pro</name>
            <setupChargeAmount>0.00</setupChargeAmount>
            <recurringChargeAmount>20.00</recurringChargeAmount>
            <items>
              <item id="i-pro-seats" code="SEATS">
                <name>Seats</name>
                <quantityIncluded>5</quantityIncluded>
              </item>
            </items>
          </plan>
        </plans>
        <ccFirstName>Jane</ccFirstName>
        <ccLastName>Doe</ccLastName>
        <ccLastFour>1111</ccLastFour>
        <ccType>visa</ccType>
        <canceledDatetime></canceledDatetime>
        <items>
          <item id="i-cust-seats" code="SEATS">
            <name>Seats</name>
            <quantity>3</quantity>
          </item>
        </items>
        <invoices>
          <invoice id="inv-1">
            <number>17</number>
            <type>subscription</type>
            <transactions>
              <transaction id="tx-1">
                <amount>20.00</amount>
                <response>approved</response>
              </transaction>
            </transactions>
            <charges>
              <charge id="ch-1" code="PRO_RECURRING">
                <type>recurring</type>
                <quantity>1</quantity>
                <eachAmount>20.00</eachAmount>
              </charge>
            </charges>
          </invoice>
        </invoices>
      </subscription>
    </subscriptions>
  </customer>
</customers>`

// loadCustomer hydrates a customer from customerXML backed by api.
func loadCustomer(t *testing.T, api Requester) *Customer {
	t.Helper()
	c := newCustomer(api, nil)
	c.loadFrom(findFirst(parseRoot(t, customerXML), "customer"), true)
	return c
}
