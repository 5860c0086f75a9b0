package models

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/dmitrijs2005/cheddargetter/client"
)

var (
	intText   = regexp.MustCompile(`^\d+$`)
	floatText = regexp.MustCompile(`^[\d.]+$`)
)

// loadFrom copies id, code, fields and nested records from el. With
// markClean the loaded values also become the synced snapshot.
func (r *Record) loadFrom(el *etree.Element, markClean bool) {
	r.id = el.SelectAttrValue("id", "")
	r.code = el.SelectAttrValue("code", "")

	for _, child := range el.ChildElements() {
		key := client.ToSnakeCase(child.Tag)
		single := isSingle(r.kind, child.Tag)

		if grandchildren := child.ChildElements(); len(grandchildren) > 0 {
			if single {
				r.loadOne(grandchildren[0])
			} else {
				r.loadMany(key, grandchildren)
			}
			continue
		}

		text := child.Text()
		if strings.TrimSpace(text) == "" {
			text = ""
		}

		if single && text == "" {
			// An empty container still yields an empty record of its kind.
			if kind, build, ok := lookupKind(strings.TrimSuffix(child.Tag, "s")); ok {
				nested := build(r.api, r.self)
				r.ones[string(kind)] = nested
				r.cleanOnes[string(kind)] = nested
				continue
			}
		}

		value := parseScalar(text)
		r.fields[key] = value
		if markClean {
			r.clean[key] = value
		}
	}
}

func (r *Record) loadOne(el *etree.Element) {
	kind, build, ok := lookupKind(el.Tag)
	if !ok {
		return
	}
	nested := build(r.api, r.self)
	nested.Base().loadFrom(el, true)
	r.ones[string(kind)] = nested
	r.cleanOnes[string(kind)] = nested
}

// loadMany stops at the first element of an unknown kind.
func (r *Record) loadMany(key string, elems []*etree.Element) {
	list := make([]Resource, 0, len(elems))
	for _, el := range elems {
		_, build, ok := lookupKind(el.Tag)
		if !ok {
			break
		}
		nested := build(r.api, r.self)
		nested.Base().loadFrom(el, true)
		list = append(list, nested)
	}
	r.many[key] = list
}

// parseScalar converts digit-only text to int and digits-with-dots to
// float64. Anything else, including values that overflow, stays text.
func parseScalar(text string) any {
	switch {
	case intText.MatchString(text):
		if n, err := strconv.Atoi(text); err == nil {
			return n
		}
	case floatText.MatchString(text):
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return f
		}
	}
	return text
}

// findAll returns el and its descendants tagged tag, in document order.
func findAll(el *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	if el.Tag == tag {
		out = append(out, el)
	}
	for _, child := range el.ChildElements() {
		out = append(out, findAll(child, tag)...)
	}
	return out
}

func findFirst(el *etree.Element, tag string) *etree.Element {
	if found := findAll(el, tag); len(found) > 0 {
		return found[0]
	}
	return nil
}
