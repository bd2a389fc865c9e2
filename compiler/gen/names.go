package gen

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Name kinds recorded in the identifier table.
const (
	NameClass     = "class"
	NameAttribute = "attribute"
	NameMethod    = "method"
	NameParam     = "parameter"
	NameEnum      = "enum"
	NameEnumValue = "enum value"
	NameConstant  = "constant"
)

// NameEntry is one identifier table entry.
type NameEntry struct {
	// Ident is the Go constant name.
	Ident string
	// Name is the raw schema name.
	Name string
	// Kinds lists what the name is used for, sorted.
	Kinds []string
}

// NameTable is the global identifier table. It is built once and is
// read-only afterwards.
type NameTable struct {
	prefix  string
	entries []*NameEntry
	byName  map[string]*NameEntry
}

// BuildNameTable collects every class, attribute, method, parameter,
// enum, enum value and constant name of the graph into one table.
func BuildNameTable(g *Graph) *NameTable {
	t := &NameTable{prefix: g.IdentPrefix, byName: make(map[string]*NameEntry)}
	for _, c := range g.Classes {
		t.add(c.Name, NameClass)
		for _, a := range c.Attributes {
			t.add(a.Name, NameAttribute)
		}
		for _, m := range c.Exposed {
			t.add(m.Name, NameMethod)
			for _, p := range m.Params {
				t.add(p.Name, NameParam)
			}
		}
	}
	for _, e := range g.Enums {
		t.add(e.Name, NameEnum)
		for _, v := range e.Values {
			t.add(v.Name, NameEnumValue)
		}
	}
	for _, k := range g.Constants {
		t.add(k.Name, NameConstant)
	}
	slices.SortFunc(t.entries, func(a, b *NameEntry) int { return cmp.Compare(a.Ident, b.Ident) })
	return t
}

func (t *NameTable) add(name, kind string) {
	e, ok := t.byName[name]
	if !ok {
		e = &NameEntry{Ident: t.prefix + "_" + name, Name: name}
		t.byName[name] = e
		t.entries = append(t.entries, e)
	}
	if i, found := slices.BinarySearch(e.Kinds, kind); !found {
		e.Kinds = slices.Insert(e.Kinds, i, kind)
	}
}

// Ident returns the table identifier of a raw name. It panics on names
// that were never collected.
func (t *NameTable) Ident(name string) string {
	e, ok := t.byName[name]
	if !ok {
		panic(fmt.Sprintf("classgen: name %q missing from identifier table", name))
	}
	return e.Ident
}

// Entries returns the table entries sorted by identifier.
func (t *NameTable) Entries() []*NameEntry {
	return t.entries
}

// Len returns the number of entries.
func (t *NameTable) Len() int { return len(t.entries) }

// claims records which owner generated each identifier of one scope.
type claims map[string]string

func (c claims) claim(ident, owner string) error {
	if prev, ok := c[ident]; ok && prev != owner {
		return NewNamingCollision(ident, prev, owner)
	}
	c[ident] = owner
	return nil
}

// checkCollisions verifies that no generated package-level identifier is
// claimed twice, in particular by a table entry, that no two artifacts
// share a path, and that no class has two members with the same Go name.
func checkCollisions(g *Graph) error {
	top := make(claims)
	for _, e := range g.Names.Entries() {
		if err := top.claim(e.Ident, "identifier table entry for "+strings.Join(e.Kinds, "/")+" "+e.Name); err != nil {
			return err
		}
	}
	for _, name := range []string{"Register", "NewRegistry", "registerConstants", "registerContainers"} {
		if err := top.claim(name, "package function "+name); err != nil {
			return err
		}
	}
	for _, k := range g.Containers {
		if err := top.claim(k.Name, "container "+k.Type.String()); err != nil {
			return err
		}
	}
	for _, e := range g.Enums {
		if err := top.claim(e.Name, "enum "+e.Name); err != nil {
			return err
		}
		for i, v := range e.Values {
			if err := top.claim(e.Consts[i], "enum value "+e.Name+"."+v.Name); err != nil {
				return err
			}
		}
	}
	for _, k := range g.Constants {
		if err := top.claim(k.GoName, "constant "+k.Name); err != nil {
			return err
		}
	}
	files := make(claims)
	for _, a := range globalArtifacts {
		if err := files.claim(a.path, "package file "+a.path); err != nil {
			return err
		}
	}
	if err := files.claim(docPath(docIndex), "documentation index"); err != nil {
		return err
	}
	for _, c := range g.Classes {
		owner := "class " + c.Name
		for _, id := range []string{c.Name, c.BaseName(), c.MethodsName(), c.CtorName(), c.DefaultCtorName(), c.RegisterName()} {
			if err := top.claim(id, owner); err != nil {
				return err
			}
		}
		for _, suffix := range []string{".go", "_base.go", "_bind.go"} {
			if err := files.claim(c.FileName()+suffix, owner); err != nil {
				return err
			}
		}
		if err := files.claim(docPath(c.FileName()), owner); err != nil {
			return err
		}
		if err := checkMembers(c); err != nil {
			return err
		}
	}
	return nil
}

// generatedMethods are the methods the emitter declares on every class.
var generatedMethods = []string{
	"ClassName", "String", "StringIndent", "Equal", "EqualNonArray",
	"Copy", "DeepCopy", "ExportTo", "Name", "SetName", "resetUnset", "applyDefaults",
}

func checkMembers(c *Class) error {
	members := make(claims)
	for _, m := range generatedMethods {
		if err := members.claim(m, "generated method "+m); err != nil {
			return err
		}
	}
	if err := members.claim(c.BaseName(), "embedded "+c.BaseName()); err != nil {
		return err
	}
	if c.IsDerived() {
		if err := members.claim(c.Super, "embedded superclass "+c.Super); err != nil {
			return prefixCollision(c, err)
		}
	} else if err := members.claim("Object", "embedded classgen.Object"); err != nil {
		return prefixCollision(c, err)
	}
	for _, a := range c.Own() {
		if a.Identity() {
			continue
		}
		if err := members.claim(a.Field(), "field of attribute "+a.Name); err != nil {
			return prefixCollision(c, err)
		}
		owner := "accessor of attribute " + a.Name
		if err := members.claim(a.Getter(), owner); err != nil {
			return prefixCollision(c, err)
		}
		if err := members.claim(a.Setter(), owner); err != nil {
			return prefixCollision(c, err)
		}
	}
	for _, a := range c.CtorAttributes() {
		if a.IsObjectList() {
			if err := members.claim(a.ExportHelper(), "export helper of attribute "+a.Name); err != nil {
				return prefixCollision(c, err)
			}
		}
	}
	for _, m := range c.Exposed {
		if err := members.claim(m.GoName(), "method "+m.Owner+"."+m.Name); err != nil {
			return prefixCollision(c, err)
		}
	}
	return nil
}

func prefixCollision(c *Class, err error) error {
	if e, ok := err.(*NamingCollisionError); ok {
		e.Ident = c.Name + "." + e.Ident
	}
	return err
}
