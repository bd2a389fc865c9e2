package gen

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/classgen/schema"
)

// typ parses a textual TypeRef.
func typ(s string) *schema.TypeRef { return schema.MustParseType(s) }

func attr(name, t string, def ...string) *schema.AttributeDef {
	a := &schema.AttributeDef{Name: name, Type: typ(t)}
	if len(def) > 0 {
		a.Default = schema.Lit(def[0])
	}
	return a
}

func colorEnum() *schema.EnumDef {
	return &schema.EnumDef{Name: "Color", Values: []schema.EnumValue{{Name: "RED", Value: 0}, {Name: "GREEN", Value: 1}}}
}

// scenarioA is the Dot model: an enum attribute without default next to
// a defaulted Float.
func scenarioA() *schema.Model {
	m := schema.NewModel(&schema.ClassDef{
		Name:       "Dot",
		Attributes: []*schema.AttributeDef{attr("x", "Float", "0"), attr("color", "Color")},
	})
	m.Enums = []*schema.EnumDef{colorEnum()}
	return m
}

// scenarioB is the Box model: two classes holding a list of objects.
func scenarioB() *schema.Model {
	return schema.NewModel(
		&schema.ClassDef{Name: "Thing", Attributes: []*schema.AttributeDef{attr("name", "Str"), attr("size", "Float", "1.5")}},
		&schema.ClassDef{Name: "Box", Attributes: []*schema.AttributeDef{attr("items", "List<Thing*>"), attr("label", "Str", `"box"`)}},
		&schema.ClassDef{Name: "Crate", Attributes: []*schema.AttributeDef{attr("items", "List<Thing*>")}},
	)
}

// shapesModel covers inheritance, shadowing, capabilities, methods and
// constants.
func shapesModel() *schema.Model {
	m := schema.NewModel(
		&schema.ClassDef{
			Name:     "Shape",
			Category: "geometry",
			Doc:      "Shape is the root of the drawable geometry.",
			Attributes: []*schema.AttributeDef{
				attr("name", "Str"),
				attr("visible", "Bool", "True"),
				attr("tint", "Color", "Color.GREEN"),
			},
			Methods: []*schema.MethodDef{{
				Name:   "scale",
				Params: []*schema.ParamDef{{Name: "factor", Type: typ("Float"), Default: schema.Lit("2")}},
				Return: typ("Float"),
			}},
		},
		&schema.ClassDef{
			Name:     "Circle",
			Category: "geometry",
			Parent:   schema.SingleParent{Name: "Shape"},
			Attributes: []*schema.AttributeDef{
				attr("radius", "Float", "1"),
				attr("visible", "Bool", "False"),
			},
			Methods: []*schema.MethodDef{{Name: "area", Return: typ("Float"), Const: true}},
		},
		&schema.ClassDef{
			Name:    "Drawable",
			Methods: []*schema.MethodDef{{Name: "draw", Params: []*schema.ParamDef{{Name: "layer", Type: typ("Int")}}}},
		},
		&schema.ClassDef{
			Name:       "Sprite",
			Parent:     schema.Capabilities{Names: []string{"Drawable"}},
			Attributes: []*schema.AttributeDef{attr("pos", "Vec2", "(0, 0)"), attr("frames", "List<Int>"), attr("next", "Sprite*")},
		},
	)
	m.Enums = []*schema.EnumDef{colorEnum()}
	m.Constants = []*schema.ConstantDef{
		{Name: "PI", Type: typ("Float"), Literal: "3.14159"},
		{Name: "ORIGIN", Type: typ("Vec2"), Literal: "(0, 0)"},
	}
	return m
}

func testOptions(t *testing.T, opts ...Option) []Option {
	t.Helper()
	return append([]Option{
		WithTarget(t.TempDir()),
		WithPackage("shapes"),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}, opts...)
}

func newTestGraph(t *testing.T, m *schema.Model, opts ...Option) *Graph {
	t.Helper()
	g, err := NewGraph(MustNewConfig(testOptions(t, opts...)...), m)
	require.NoError(t, err)
	return g
}

func renderModel(t *testing.T, m *schema.Model, opts ...Option) *Artifacts {
	t.Helper()
	out, err := newTestGraph(t, m, opts...).Gen(context.Background())
	require.NoError(t, err)
	return out
}

// file returns the content of the artifact at path.
func file(t *testing.T, out *Artifacts, path string) string {
	t.Helper()
	a, ok := out.Find(path)
	require.True(t, ok, "missing artifact %s", path)
	return string(a.Data)
}
