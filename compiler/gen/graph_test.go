package gen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/classgen/schema"
)

func TestNewGraph(t *testing.T) {
	g := newTestGraph(t, shapesModel())

	names := make([]string, len(g.Classes))
	for i, c := range g.Classes {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"Circle", "Drawable", "Shape", "Sprite"}, names)

	c, ok := g.Class("Circle")
	require.True(t, ok)
	assert.Equal(t, "Shape", c.Super)
	e, ok := g.Enum("Color")
	require.True(t, ok)
	assert.Equal(t, []string{"ColorRed", "ColorGreen"}, e.Consts)
	require.Len(t, g.Constants, 2)
	assert.Equal(t, "Pi", g.Constants[0].GoName)
}

func TestNewGraphNilInputs(t *testing.T) {
	_, err := NewGraph(nil, shapesModel())
	assert.True(t, IsConfigError(err))
	_, err = NewGraph(MustNewConfig(testOptions(t)...), nil)
	assert.True(t, IsConfigError(err))
}

func TestSchemaViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*schema.Model)
		rule   string
	}{
		{
			name: "bool without default",
			mutate: func(m *schema.Model) {
				m.Classes["Shape"].Attributes = append(m.Classes["Shape"].Attributes, attr("solid", "Bool"))
			},
			rule: "Bool attribute requires a default",
		},
		{
			name:   "zero-value enum",
			mutate: func(m *schema.Model) { m.Enums = append(m.Enums, &schema.EnumDef{Name: "Empty"}) },
			rule:   "enum has no values",
		},
		{
			name: "superclass of a superclass",
			mutate: func(m *schema.Model) {
				m.Classes["Ring"] = &schema.ClassDef{Name: "Ring", Parent: schema.SingleParent{Name: "Circle"}}
			},
			rule: "only one inheritance level",
		},
		{
			name: "superclass with capabilities",
			mutate: func(m *schema.Model) {
				m.Classes["Ghost"] = &schema.ClassDef{Name: "Ghost", Parent: schema.SingleParent{Name: "Sprite"}}
			},
			rule: "superclass Sprite has superclasses of its own",
		},
		{
			name: "nil class",
			mutate: func(m *schema.Model) { m.Classes["Ring"] = nil },
			rule:   "missing class definition",
		},
		{
			name: "nil attribute",
			mutate: func(m *schema.Model) {
				m.Classes["Circle"].Attributes = append(m.Classes["Circle"].Attributes, nil)
			},
			rule: "missing attribute definition",
		},
		{
			name: "nil method",
			mutate: func(m *schema.Model) {
				m.Classes["Circle"].Methods = append(m.Classes["Circle"].Methods, nil)
			},
			rule: "missing method definition",
		},
		{
			name: "nil parameter",
			mutate: func(m *schema.Model) {
				m.Classes["Shape"].Methods[0].Params = append(m.Classes["Shape"].Methods[0].Params, nil)
			},
			rule: "missing parameter definition",
		},
		{
			name:   "nil enum",
			mutate: func(m *schema.Model) { m.Enums = append(m.Enums, nil) },
			rule:   "missing enum definition",
		},
		{
			name:   "nil constant",
			mutate: func(m *schema.Model) { m.Constants = append(m.Constants, nil) },
			rule:   "missing constant definition",
		},
		{
			name: "unknown superclass",
			mutate: func(m *schema.Model) {
				m.Classes["Ring"] = &schema.ClassDef{Name: "Ring", Parent: schema.SingleParent{Name: "Torus"}}
			},
			rule: "unknown superclass Torus",
		},
		{
			name: "own superclass",
			mutate: func(m *schema.Model) {
				m.Classes["Ring"] = &schema.ClassDef{Name: "Ring", Parent: schema.SingleParent{Name: "Ring"}}
			},
			rule: "its own superclass",
		},
		{
			name: "unknown capability",
			mutate: func(m *schema.Model) {
				m.Classes["Sprite"].Parent = schema.Capabilities{Names: []string{"Missing"}}
			},
			rule: "invalid capability Missing",
		},
		{
			name:   "enum shadows class",
			mutate: func(m *schema.Model) { m.Enums = append(m.Enums, &schema.EnumDef{Name: "Shape", Values: colorEnum().Values}) },
			rule:   "enum name is also a class name",
		},
		{
			name: "duplicate attribute",
			mutate: func(m *schema.Model) {
				m.Classes["Circle"].Attributes = append(m.Classes["Circle"].Attributes, attr("radius", "Int"))
			},
			rule: "duplicate attribute",
		},
		{
			name: "unresolved type name",
			mutate: func(m *schema.Model) {
				m.Classes["Circle"].Attributes = append(m.Classes["Circle"].Attributes, attr("hole", "Void"))
			},
			rule: "attribute type",
		},
		{
			name: "unhashable dict key",
			mutate: func(m *schema.Model) {
				m.Classes["Circle"].Attributes = append(m.Classes["Circle"].Attributes, attr("index", "Dict<Shape*, Int>"))
			},
			rule: "attribute type",
		},
		{
			name: "default of the wrong type",
			mutate: func(m *schema.Model) {
				m.Classes["Circle"].Attributes[0].Default = schema.Lit(`"large"`)
			},
			rule: "invalid default",
		},
		{
			name: "identity is not Str",
			mutate: func(m *schema.Model) {
				m.Classes["Sprite"].Attributes = append(m.Classes["Sprite"].Attributes, attr("name", "Int"))
			},
			rule: "identity attribute must be Str",
		},
		{
			name: "object constant",
			mutate: func(m *schema.Model) {
				m.Constants = append(m.Constants, &schema.ConstantDef{Name: "UNIT", Type: typ("Shape*"), Literal: "None"})
			},
			rule: "constants cannot hold",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := shapesModel()
			tt.mutate(m)
			_, err := NewGraph(MustNewConfig(testOptions(t)...), m)
			require.Error(t, err)
			assert.True(t, IsSchemaViolation(err), err.Error())
			assert.ErrorIs(t, err, ErrSchemaViolation)
			assert.Contains(t, err.Error(), tt.rule)
		})
	}
}

func TestResolveViolationIsLocated(t *testing.T) {
	m := shapesModel()
	m.Classes["Circle"].Attributes = append(m.Classes["Circle"].Attributes, attr("hole", "Void"))
	_, err := NewGraph(MustNewConfig(testOptions(t)...), m)
	require.Error(t, err)
	assert.Equal(t, 1, strings.Count(err.Error(), "schema violation"), err.Error())

	var sv *SchemaViolationError
	require.ErrorAs(t, err, &sv)
	assert.Equal(t, "Circle", sv.Class)
	assert.Equal(t, "hole", sv.Attribute)
	assert.Equal(t, "attribute type: unresolvable type", sv.Rule)
	assert.NotErrorAs(t, sv.Cause, new(*SchemaViolationError))
}

func TestSubmodule(t *testing.T) {
	m := schema.NewModel(&schema.ClassDef{
		Name:       "Scene",
		Kind:       schema.ClassSubmodule,
		Attributes: []*schema.AttributeDef{attr("root", "Scene*")},
	})
	g := newTestGraph(t, m)
	c, _ := g.Class("Scene")
	assert.Empty(t, c.Forward, "a submodule never forward declares itself")

	out := renderModel(t, m)
	assert.Contains(t, file(t, out, "scene_bind.go"), "classgen.KindSubmodule")
}
