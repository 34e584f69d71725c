package testkit

import (
	"fmt"
	"reflect"

	"portast/internal/portable"
	"portast/internal/source"
)

var spanType = reflect.TypeOf(source.Span{})

// CheckSpanInvariants runs a minimal set of span invariants on an exported crate:
// 1) every exported span is valid and listed once
// 2) every span attached to a node is valid
// 3) every such span is in the exported list, except the dummy span of
// folded items, which carries no location
func CheckSpanInvariants(c *portable.Crate) error {
	if c == nil {
		return fmt.Errorf("nil crate")
	}

	// 1) exported list sanity
	exported := make(map[source.Span]int, len(c.ExportedSpans))
	for i, sp := range c.ExportedSpans {
		if !sp.Valid() {
			return fmt.Errorf("exported span %d is invalid: %s", i, sp)
		}
		if j, dup := exported[sp]; dup {
			return fmt.Errorf("span %s exported twice (at %d and %d)", sp, j, i)
		}
		exported[sp] = i
	}

	// 2) + 3) walk every node
	var firstErr error
	walkSpans(reflect.ValueOf(c.Items), func(sp source.Span) {
		if firstErr != nil {
			return
		}
		if !sp.Valid() {
			firstErr = fmt.Errorf("invalid node span: %s", sp)
			return
		}
		if _, ok := exported[sp]; !ok && !isDummy(sp) {
			firstErr = fmt.Errorf("node span %s is not exported", sp)
		}
	})
	return firstErr
}

func isDummy(sp source.Span) bool {
	return sp.Filename.Kind == source.FileNameAnon && sp.Lo == (source.Loc{}) && sp.Hi == (source.Loc{})
}

// walkSpans calls fn for every source.Span reachable from v.
func walkSpans(v reflect.Value, fn func(source.Span)) {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if !v.IsNil() {
			walkSpans(v.Elem(), fn)
		}
	case reflect.Slice, reflect.Array:
		for i := range v.Len() {
			walkSpans(v.Index(i), fn)
		}
	case reflect.Struct:
		if v.Type() == spanType {
			fn(v.Interface().(source.Span))
			return
		}
		for i := range v.NumField() {
			if v.Type().Field(i).IsExported() {
				walkSpans(v.Field(i), fn)
			}
		}
	}
}

// CollectSpans lists every span attached to a node of items, in walk order.
func CollectSpans(items []portable.Item) []source.Span {
	var out []source.Span
	walkSpans(reflect.ValueOf(items), func(sp source.Span) { out = append(out, sp) })
	return out
}
