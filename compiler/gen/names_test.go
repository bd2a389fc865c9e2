package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/classgen/schema"
)

func TestBuildNameTable(t *testing.T) {
	g := newTestGraph(t, shapesModel())

	names := make(map[string]*NameEntry)
	for _, e := range g.Names.Entries() {
		names[e.Name] = e
	}
	for _, name := range []string{
		"Circle", "Drawable", "Shape", "Sprite",
		"radius", "visible", "name", "tint", "pos", "frames", "next",
		"scale", "area", "draw", "factor", "layer",
		"Color", "RED", "GREEN", "PI", "ORIGIN",
	} {
		require.Contains(t, names, name)
		assert.Equal(t, "Ident_"+name, names[name].Ident)
	}
	assert.Equal(t, []string{NameAttribute}, names["visible"].Kinds)
	assert.Equal(t, "Ident_scale", g.Names.Ident("scale"))
	assert.Panics(t, func() { g.Names.Ident("missing") })

	entries := g.Names.Entries()
	for i := 1; i < len(entries); i++ {
		assert.Less(t, entries[i-1].Ident, entries[i].Ident)
	}
}

func TestNameTableMergesKinds(t *testing.T) {
	m := schema.NewModel(&schema.ClassDef{
		Name:       "Light",
		Attributes: []*schema.AttributeDef{attr("color", "Color")},
		Methods:    []*schema.MethodDef{{Name: "color"}},
	})
	m.Enums = []*schema.EnumDef{colorEnum()}
	_, err := NewGraph(MustNewConfig(testOptions(t)...), m)
	require.Error(t, err, "the getter and the method share a Go name")
	assert.True(t, IsNamingCollision(err))

	m.Classes["Light"].Methods = []*schema.MethodDef{{Name: "dim", Params: []*schema.ParamDef{{Name: "color", Type: typ("Color")}}}}
	g := newTestGraph(t, m)
	var entry *NameEntry
	for _, e := range g.Names.Entries() {
		if e.Name == "color" {
			entry = e
		}
	}
	require.NotNil(t, entry)
	assert.Equal(t, []string{NameAttribute, NameParam}, entry.Kinds)
}

func TestIdentPrefix(t *testing.T) {
	g := newTestGraph(t, scenarioA(), WithIdentPrefix("Sym"))
	assert.Equal(t, "Sym_x", g.Names.Ident("x"))
	assert.Contains(t, file(t, renderModel(t, scenarioA(), WithIdentPrefix("Sym")), "idents.go"), `Sym_Dot`)
}

func TestNamingCollisions(t *testing.T) {
	tests := []struct {
		name  string
		model func() *schema.Model
		ident string
	}{
		{
			name: "class named like a table entry",
			model: func() *schema.Model {
				m := scenarioA()
				m.Classes["Ident_x"] = &schema.ClassDef{Name: "Ident_x"}
				return m
			},
			ident: "Ident_x",
		},
		{
			name: "class named like a package function",
			model: func() *schema.Model {
				return schema.NewModel(&schema.ClassDef{Name: "Register"})
			},
			ident: "Register",
		},
		{
			name: "class named like a container",
			model: func() *schema.Model {
				m := scenarioB()
				m.Classes["VectorThing"] = &schema.ClassDef{Name: "VectorThing"}
				return m
			},
			ident: "VectorThing",
		},
		{
			name: "enum constant and constant",
			model: func() *schema.Model {
				m := scenarioA()
				m.Constants = []*schema.ConstantDef{{Name: "COLOR_RED", Type: typ("Int"), Literal: "1"}}
				return m
			},
			ident: "ColorRed",
		},
		{
			name: "generated constructor",
			model: func() *schema.Model {
				return schema.NewModel(&schema.ClassDef{Name: "Dot"}, &schema.ClassDef{Name: "NewDot"})
			},
			ident: "NewDot",
		},
		{
			name: "attribute shadowing a generated method",
			model: func() *schema.Model {
				return schema.NewModel(&schema.ClassDef{Name: "Dot", Attributes: []*schema.AttributeDef{attr("copy", "Int")}})
			},
			ident: "Dot.Copy",
		},
		{
			name: "file of another class",
			model: func() *schema.Model {
				return schema.NewModel(&schema.ClassDef{Name: "Dot"}, &schema.ClassDef{Name: "DotBind"})
			},
			ident: "dot_bind.go",
		},
		{
			name: "method shadowing the embedded object",
			model: func() *schema.Model {
				return schema.NewModel(&schema.ClassDef{Name: "Dot", Methods: []*schema.MethodDef{{Name: "object"}}})
			},
			ident: "Dot.Object",
		},
		{
			name: "containers of different types with one name",
			model: func() *schema.Model {
				return schema.NewModel(&schema.ClassDef{
					Name:       "DictIntStr",
					Attributes: []*schema.AttributeDef{attr("peers", "List<DictIntStr*>"), attr("tables", "List<Dict<Int, Str>>")},
				})
			},
			ident: "VectorDictIntStr",
		},
		{
			name: "class named like a package file",
			model: func() *schema.Model {
				return schema.NewModel(&schema.ClassDef{Name: "Idents"})
			},
			ident: "idents.go",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGraph(MustNewConfig(testOptions(t)...), tt.model())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrNamingCollision)
			var nc *NamingCollisionError
			require.ErrorAs(t, err, &nc)
			assert.Equal(t, tt.ident, nc.Ident)
			assert.Len(t, nc.Owners, 2)
		})
	}
}
