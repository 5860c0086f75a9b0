package models

import (
	"context"
	"fmt"
	"maps"
	"reflect"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/cheddargetter/client"
)

// Requester sends one API call. *client.Client implements it.
type Requester interface {
	Do(ctx context.Context, req client.Request) (*etree.Element, error)
}

// Resource is any API-backed record kind.
type Resource interface {
	Base() *Record
	Save(ctx context.Context) error
	Delete(ctx context.Context) error
}

// Record is the attribute bag shared by every kind. It keeps the values last
// synced with the server next to the current ones so that only changed
// fields are sent on save.
type Record struct {
	kind   Kind
	schema Schema
	api    Requester
	parent Resource
	self   Resource

	id   string
	code string

	fields   map[string]any
	clean    map[string]any
	internal map[string]any

	ones      map[string]Resource
	cleanOnes map[string]Resource
	many      map[string][]Resource
}

func newRecord(kind Kind, api Requester, parent Resource) *Record {
	return &Record{
		kind:      kind,
		schema:    schemas[kind],
		api:       api,
		parent:    parent,
		fields:    map[string]any{},
		clean:     map[string]any{},
		internal:  map[string]any{},
		ones:      map[string]Resource{},
		cleanOnes: map[string]Resource{},
		many:      map[string][]Resource{},
	}
}

func (r *Record) Base() *Record { return r }

func (r *Record) Save(context.Context) error {
	return fmt.Errorf("%w: save %s", ErrNotImplemented, r.kind)
}

func (r *Record) Delete(context.Context) error {
	return fmt.Errorf("%w: delete %s", ErrNotImplemented, r.kind)
}

func (r *Record) Kind() Kind       { return r.kind }
func (r *Record) ID() string       { return r.id }
func (r *Record) Code() string     { return r.code }
func (r *Record) Parent() Resource { return r.parent }
func (r *Record) IsNew() bool      { return r.id == "" }

// ref is what identifies the record in a request path.
func (r *Record) ref() string {
	if r.code != "" {
		return r.code
	}
	return r.id
}

// Equal reports whether both records carry the same non-empty id.
func (r *Record) Equal(other *Record) bool {
	return other != nil && r.id != "" && r.id == other.id
}

// Has reports whether name is set. For id and code that means non-empty.
func (r *Record) Has(name string) bool {
	switch name {
	case "id", "_id":
		return r.id != ""
	case "code", "_code":
		return r.code != ""
	}
	name, _ = r.resolve(client.ToSnakeCase(name))
	if _, ok := r.fields[name]; ok {
		return true
	}
	if _, ok := r.ones[name]; ok {
		return true
	}
	_, ok := r.many[name]
	return ok
}

// Get returns a field, association or internal value.
func (r *Record) Get(name string) (any, error) {
	if strings.HasPrefix(name, "_") {
		if v, ok := r.internal[name]; ok {
			return v, nil
		}
		return nil, fmt.Errorf("%w: %s.%s", ErrMissingKey, r.kind, name)
	}

	switch name {
	case "id":
		return r.id, nil
	case "code":
		return r.code, nil
	}

	key, spec := r.resolve(client.ToSnakeCase(name))
	if spec.Read != nil {
		if v, ok := spec.Read(r); ok {
			return v, nil
		}
	}
	if v, ok := r.ones[key]; ok {
		return v, nil
	}
	if v, ok := r.many[key]; ok {
		return v, nil
	}
	if v, ok := r.fields[key]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w: %s.%s", ErrMissingKey, r.kind, key)
}

// GetString returns the field rendered as form text, or "" when unset.
func (r *Record) GetString(name string) string {
	v, err := r.Get(name)
	if err != nil {
		return ""
	}
	if res, ok := v.(Resource); ok {
		return res.Base().code
	}
	return client.FormatValue(v)
}

// Set assigns a value without a request deadline of its own. Use SetContext
// when the assignment may need a lookup (a subscription's plan).
func (r *Record) Set(name string, value any) error {
	return r.SetContext(context.Background(), name, value)
}

// SetContext assigns name = value. Rules are checked in order: internal
// names, code, id, associations, then schema-aware fields.
func (r *Record) SetContext(ctx context.Context, name string, value any) error {
	if strings.HasPrefix(name, "_") {
		r.internal[name] = value
		return nil
	}

	switch name {
	case "code":
		if r.id != "" {
			return fmt.Errorf("%w: code of saved %s %s", ErrImmutableField, r.kind, r.id)
		}
		r.code = client.FormatValue(value)
		return nil
	case "id":
		return fmt.Errorf("%w: id is assigned by the server", ErrImmutableField)
	}

	if v, ok := value.(Resource); ok {
		r.ones[client.ToSnakeCase(name)] = v
		return nil
	}
	if list, ok, err := resourceList(value); ok {
		if err != nil {
			return fmt.Errorf("%w: %s.%s", err, r.kind, name)
		}
		r.many[client.ToSnakeCase(name)] = list
		return nil
	}

	key, spec := r.resolve(client.ToSnakeCase(name))
	if spec.Assign != nil {
		return spec.Assign(ctx, r, value)
	}
	if spec.ImmutableAfterSave && r.id != "" {
		return fmt.Errorf("%w: %s of saved %s", ErrImmutableField, key, r.kind)
	}
	if spec.Normalize != nil {
		v, err := spec.Normalize(ctx, r, value)
		if err != nil {
			return err
		}
		value = v
	}
	r.fields[key] = value
	return nil
}

// Fields returns a copy of the current field values.
func (r *Record) Fields() map[string]any {
	return maps.Clone(r.fields)
}

// BuildDiff returns every field whose value differs from the last synced
// one. Associations are left to the owning kind's save, except those with
// a DiffKey in the schema.
func (r *Record) BuildDiff() map[string]any {
	diff := map[string]any{}
	for k, v := range r.fields {
		if r.schema[k].Transient {
			continue
		}
		if old, ok := r.clean[k]; ok && sameValue(old, v) {
			continue
		}
		diff[k] = v
	}

	for name, spec := range r.schema {
		if spec.DiffKey == "" {
			continue
		}
		cur, ok := r.ones[name]
		if !ok || cur == nil {
			continue
		}
		old := r.cleanOnes[name]
		if old == cur || (old != nil && cur.Base().Equal(old.Base())) {
			continue
		}
		diff[spec.DiffKey] = cur.Base().code
	}
	return diff
}

func (r *Record) IsClean() bool {
	return len(r.BuildDiff()) == 0
}

// commit marks the current state as synced.
func (r *Record) commit() {
	r.clean = maps.Clone(r.fields)
	r.cleanOnes = maps.Clone(r.ones)
}

var resourceType = reflect.TypeFor[Resource]()

// resourceList reports whether v is a slice and, if so, converts it to a
// list association. Slices of anything but records are rejected; they
// have no form encoding.
func resourceList(v any) ([]Resource, bool, error) {
	if list, ok := v.([]Resource); ok {
		return list, true, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil, false, nil
	}
	if !rv.Type().Elem().Implements(resourceType) {
		return nil, true, fmt.Errorf("%w: list of %s is not a record list", client.ErrInvalidArgument, rv.Type().Elem())
	}
	list := make([]Resource, 0, rv.Len())
	for i := range rv.Len() {
		el := rv.Index(i)
		if (el.Kind() == reflect.Pointer || el.Kind() == reflect.Interface) && el.IsNil() {
			continue
		}
		list = append(list, el.Interface().(Resource))
	}
	return list, true, nil
}

// sameValue compares loaded and assigned values, treating numbers of
// different Go types as equal when they are numerically equal.
func sameValue(a, b any) bool {
	da, aNum := toDecimal(a)
	db, bNum := toDecimal(b)
	if aNum && bNum {
		return da.Equal(db)
	}
	return reflect.DeepEqual(a, b)
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int64:
		return decimal.NewFromInt(x), true
	case float64:
		return decimal.NewFromFloat(x), true
	case decimal.Decimal:
		return x, true
	default:
		return decimal.Zero, false
	}
}

// numberValue stores d the way the loader would have.
func numberValue(d decimal.Decimal) any {
	if d.IsInteger() {
		return int(d.IntPart())
	}
	f, _ := d.Float64()
	return f
}

// oneOf returns the association name as T, or the zero T.
func oneOf[T Resource](r *Record, name string) T {
	v, _ := r.ones[name].(T)
	return v
}

// manyOf returns the members of the list association name that are T.
func manyOf[T Resource](r *Record, name string) []T {
	list := r.many[name]
	out := make([]T, 0, len(list))
	for _, res := range list {
		if v, ok := res.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
