package gen

import (
	"maps"
	"slices"

	"github.com/syssam/classgen/schema"
)

// ForwardDecls returns the classes c refers to only through a reference,
// found by stripping List, Func and pointer decorations (and the key of a
// Dict) from every attribute and method signature. Enums are never
// forward declared, and a submodule never forward declares itself.
func ForwardDecls(c *Class) []string {
	set := make(map[string]struct{})
	visit := func(t *schema.TypeRef) {
		if h := head(t); h.IsObject() {
			set[h.Name] = struct{}{}
		}
	}
	signatures(c, visit)
	if c.IsSubmodule() {
		delete(set, c.Name)
	}
	return slices.Sorted(maps.Keys(set))
}

// Includes returns every class and enum referenced anywhere in the types
// of c, Dict keys included, except c itself.
func Includes(c *Class) []string {
	set := make(map[string]struct{})
	visit := func(t *schema.TypeRef) {
		t.Walk(func(n *schema.TypeRef) {
			if n.IsObject() || n.IsEnum() {
				set[n.Name] = struct{}{}
			}
		})
	}
	signatures(c, visit)
	delete(set, c.Name)
	return slices.Sorted(maps.Keys(set))
}

// head strips the container decorations of t.
func head(t *schema.TypeRef) *schema.TypeRef {
	for t != nil {
		switch t.Kind {
		case schema.KindList, schema.KindFunc, schema.KindDict:
			t = t.Elem
		default:
			return t
		}
	}
	return nil
}

// signatures calls fn with every type used by the members of c.
func signatures(c *Class, fn func(*schema.TypeRef)) {
	for _, a := range c.Attributes {
		fn(a.Type)
	}
	for _, m := range c.Exposed {
		for _, p := range m.Params {
			fn(p.Type)
		}
		if m.Return != nil {
			fn(m.Return)
		}
	}
}
