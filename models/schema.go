package models

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/cheddargetter/client"
)

// FieldSpec is the per-field access rule consulted by Get, Set and BuildDiff.
// Fields without a FieldSpec are plain serializable values.
type FieldSpec struct {
	// Transient fields are stored but never sent.
	Transient bool
	// ImmutableAfterSave fields can only be assigned while the record is new.
	ImmutableAfterSave bool

	// AliasOf redirects reads and writes to another field. When AliasParent
	// is set the alias only applies to records loaded under that kind.
	AliasOf     string
	AliasParent Kind

	// Normalize rewrites an assigned value before it is stored.
	Normalize func(ctx context.Context, r *Record, v any) (any, error)
	// Assign replaces storage entirely, e.g. to resolve a code into a record.
	Assign func(ctx context.Context, r *Record, v any) error
	// Read computes the value instead of looking it up.
	Read func(r *Record) (any, bool)

	// DiffKey marks an association: when it differs from its clean
	// snapshot, BuildDiff emits DiffKey with the associated record's code.
	DiffKey string
}

type Schema map[string]FieldSpec

var schemas map[Kind]Schema

var serverStamps = Schema{
	"created_datetime":  {Transient: true, ImmutableAfterSave: true},
	"modified_datetime": {Transient: true, ImmutableAfterSave: true},
}

func init() {
	schemas = map[Kind]Schema{
		KindSubscription: merge(serverStamps, Schema{
			"cc_number":         {Normalize: normalizeCardNumber},
			"cc_expiration":     {Normalize: normalizeExpiration},
			"plan_code":         {Assign: assignPlan, Read: readPlanCode},
			"plan":              {Assign: assignPlan, DiffKey: "plan_code"},
			"canceled_datetime": {Transient: true, ImmutableAfterSave: true},
		}),
		KindItem: merge(serverStamps, Schema{
			"quantity": {AliasOf: "quantity_included", AliasParent: KindPlan},
		}),
		KindCustomer: serverStamps,
		KindPlan:     serverStamps,
		KindInvoice:  serverStamps,
	}
}

func merge(parts ...Schema) Schema {
	out := Schema{}
	for _, s := range parts {
		for k, v := range s {
			out[k] = v
		}
	}
	return out
}

// resolve applies any alias and returns the effective name and its spec.
func (r *Record) resolve(name string) (string, FieldSpec) {
	spec := r.schema[name]
	if spec.AliasOf == "" {
		return name, spec
	}
	if spec.AliasParent != "" && (r.parent == nil || r.parent.Base().kind != spec.AliasParent) {
		return name, spec
	}
	return spec.AliasOf, r.schema[spec.AliasOf]
}

var nonDigits = regexp.MustCompile(`\D`)

func normalizeCardNumber(_ context.Context, _ *Record, v any) (any, error) {
	return nonDigits.ReplaceAllString(client.FormatValue(v), ""), nil
}

// clock is swapped in tests.
var clock = time.Now

// normalizeExpiration turns "0312" or "03/12" into "03/2012".
func normalizeExpiration(_ context.Context, _ *Record, v any) (any, error) {
	s := strings.TrimSpace(client.FormatValue(v))
	if len(s) < 3 {
		return nil, fmt.Errorf("%w: card expiration %q must look like MM/YY or MM/YYYY", ErrValidation, s)
	}
	if s[2] != '/' {
		s = s[:2] + "/" + s[2:]
	}
	if len(s) == 5 {
		yy, err := strconv.Atoi(s[3:])
		if err != nil {
			return nil, fmt.Errorf("%w: card expiration %q has a non-numeric year", ErrValidation, s)
		}
		s = fmt.Sprintf("%s%04d", s[:3], expandYear(yy, clock()))
	}
	return s, nil
}

// expandYear places a two-digit year within [now-50, now+49].
func expandYear(yy int, now time.Time) int {
	current := now.Year()
	year := current - current%100 + yy
	switch {
	case year > current+49:
		year -= 100
	case year < current-50:
		year += 100
	}
	return year
}

func assignPlan(ctx context.Context, r *Record, v any) error {
	if p, ok := v.(*Plan); ok {
		r.ones["plan"] = p
		return nil
	}
	code := client.FormatValue(v)
	if r.api == nil {
		return fmt.Errorf("%w: cannot resolve plan %q without a client", client.ErrConfiguration, code)
	}
	plan, err := GetPlan(ctx, r.api, code)
	if err != nil {
		return err
	}
	if plan == nil {
		return fmt.Errorf("%w: plan %q", client.ErrNotFound, code)
	}
	r.ones["plan"] = plan
	return nil
}

func readPlanCode(r *Record) (any, bool) {
	p, ok := r.ones["plan"]
	if !ok || p == nil {
		return nil, false
	}
	return p.Base().code, true
}
