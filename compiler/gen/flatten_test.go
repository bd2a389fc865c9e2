package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/classgen/schema"
)

func attrNames(attrs []*Attribute) []string {
	names := make([]string, len(attrs))
	for i, a := range attrs {
		names[i] = a.Name
	}
	return names
}

func methodNames(methods []*Method) []string {
	names := make([]string, len(methods))
	for i, m := range methods {
		names[i] = m.Name
	}
	return names
}

func TestFlattenSingleParent(t *testing.T) {
	m := shapesModel()
	m.Defaults()
	c, err := Flatten(m, m.Classes["Circle"])
	require.NoError(t, err)

	assert.Equal(t, "Shape", c.Super)
	assert.Equal(t, []string{"radius", "visible", "name", "visible", "tint"}, attrNames(c.Attributes))

	t.Run("every own member of the superclass appears once, tagged", func(t *testing.T) {
		super := m.Classes["Shape"]
		for _, sa := range super.Attributes {
			n := 0
			for _, a := range c.Attributes {
				if a.Inherited && a.Name == sa.Name {
					n++
					assert.Equal(t, "Shape", a.Owner)
				}
			}
			assert.Equal(t, 1, n, sa.Name)
		}
		assert.Equal(t, []string{"area", "scale"}, methodNames(c.Methods))
		assert.True(t, c.Methods[1].Inherited)
	})
	t.Run("shadowed attribute is kept but excluded from the constructor", func(t *testing.T) {
		shadow := c.Attributes[3]
		assert.True(t, shadow.Inherited)
		assert.True(t, shadow.ExcludedFromCtor)
		assert.Equal(t, []string{"radius", "visible", "name", "tint"}, attrNames(c.CtorAttributes()))
		assert.Equal(t, []string{"radius", "visible"}, attrNames(c.Own()))
	})
	t.Run("model is not modified", func(t *testing.T) {
		for _, a := range m.Classes["Shape"].Attributes {
			assert.False(t, a.Inherited)
			assert.False(t, a.ExcludedFromCtor)
		}
	})
}

func TestFlattenCapabilities(t *testing.T) {
	m := shapesModel()
	m.Defaults()
	c, err := Flatten(m, m.Classes["Sprite"])
	require.NoError(t, err)

	assert.Empty(t, c.Super)
	assert.Equal(t, []string{"Drawable"}, c.Capabilities)
	assert.Equal(t, []string{"pos", "frames", "next"}, attrNames(c.Attributes), "attributes are not flattened")
	assert.Empty(t, c.Methods)
	assert.Equal(t, []string{"draw"}, methodNames(c.Exposed))
	assert.Equal(t, []string{"draw"}, methodNames(c.OwnMethods()))
}

func TestFlattenExposedDedup(t *testing.T) {
	m := schema.NewModel(
		&schema.ClassDef{Name: "Walker", Methods: []*schema.MethodDef{{Name: "move"}, {Name: "stop"}}},
		&schema.ClassDef{Name: "Swimmer", Methods: []*schema.MethodDef{{Name: "move"}, {Name: "dive"}}},
		&schema.ClassDef{
			Name:    "Duck",
			Parent:  schema.Capabilities{Names: []string{"Walker", "Swimmer"}},
			Methods: []*schema.MethodDef{{Name: "quack"}},
		},
	)
	m.Defaults()
	c, err := Flatten(m, m.Classes["Duck"])
	require.NoError(t, err)
	assert.Equal(t, []string{"quack", "move", "stop", "dive"}, methodNames(c.Exposed))
	assert.Equal(t, "Walker", c.Exposed[1].Owner)
}

func TestFlattenRejectsTwoLevels(t *testing.T) {
	m := shapesModel()
	m.Classes["Ring"] = &schema.ClassDef{Name: "Ring", Parent: schema.SingleParent{Name: "Circle"}}
	m.Defaults()
	_, err := Flatten(m, m.Classes["Ring"])
	require.Error(t, err)
	assert.True(t, IsSchemaViolation(err))
}

func TestFlattenRejectsCapableSuperclass(t *testing.T) {
	m := shapesModel()
	m.Classes["Ghost"] = &schema.ClassDef{Name: "Ghost", Parent: schema.SingleParent{Name: "Sprite"}}
	m.Defaults()
	_, err := Flatten(m, m.Classes["Ghost"])
	require.Error(t, err)
	assert.True(t, IsSchemaViolation(err))
	assert.Contains(t, err.Error(), "superclass Sprite has superclasses of its own")
}

func TestFlattenFoldsDocs(t *testing.T) {
	def := &schema.ClassDef{
		Name:       "Note",
		Doc:        "first line\n\tsecond   line",
		Parent:     schema.NoParent{},
		Attributes: []*schema.AttributeDef{{Name: "text", Type: schema.Str(), Doc: "a\nb"}},
	}
	c, err := Flatten(schema.NewModel(def), def)
	require.NoError(t, err)
	assert.Equal(t, "first line second line", c.Doc)
	assert.Equal(t, "a b", c.Attributes[0].Doc)
}

func TestDependencies(t *testing.T) {
	m := schema.NewModel(
		&schema.ClassDef{Name: "Leaf"},
		&schema.ClassDef{Name: "Key"},
		&schema.ClassDef{
			Name: "Node",
			Attributes: []*schema.AttributeDef{
				attr("parent", "Node*"),
				attr("children", "List<Node*>"),
				attr("leaves", "Dict<Color, List<Leaf*>>"),
				attr("tint", "Color"),
				attr("size", "Vec3"),
			},
			Methods: []*schema.MethodDef{{
				Name:   "visit",
				Params: []*schema.ParamDef{{Name: "fn", Type: typ("Func<Key&>")}},
			}},
		},
	)
	m.Enums = []*schema.EnumDef{colorEnum()}
	g := newTestGraph(t, m)
	c, _ := g.Class("Node")

	assert.Equal(t, []string{"Key", "Leaf", "Node"}, ForwardDecls(c))
	assert.Equal(t, []string{"Color", "Key", "Leaf"}, Includes(c))
	assert.Equal(t, c.Forward, ForwardDecls(c))
	assert.Equal(t, c.Includes, Includes(c))

	pyi := file(t, renderModel(t, m), "stubs/shapes/node.pyi")
	assert.Contains(t, pyi, "from . import Color, VectorLeaf, VectorNode")
	assert.Contains(t, pyi, "from .key import Key")
	assert.Contains(t, pyi, `children: VectorNode = ...`)
	assert.Contains(t, pyi, `parent: Optional["Node"] = ...`)
}
