package hostexpr_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/classgen"
	"github.com/syssam/classgen/hostexpr"
)

type node struct {
	classgen.Object
	weight float64
	label  string
	child  *node
}

func (n *node) ClassName() string { return "Node" }

func (n *node) StringIndent(int) string { return "Node" }

func (n *node) ExportTo(ctx *classgen.ExportContext) string {
	var kw []string
	if n.weight != classgen.UnsetFloat {
		kw = append(kw, "weight="+classgen.FormatFloat(n.weight))
	}
	if n.label != classgen.UnsetStr {
		kw = append(kw, "label="+classgen.FormatStr(n.label))
	}
	if n.child != nil {
		kw = append(kw, "child="+ctx.Ref(n.child))
	}
	return classgen.ExportCall("Node", kw)
}

type shade int

func newRegistry(t *testing.T) *classgen.Registry {
	t.Helper()
	r := classgen.NewRegistry()
	require.NoError(t, r.RegisterClass(&classgen.ClassBinding{
		Name:   "Node",
		GoType: reflect.TypeFor[*node](),
		Params: []classgen.Param{
			{Name: "weight", Mode: classgen.ByValue},
			{Name: "label", Mode: classgen.ByReference},
			{Name: "child", Mode: classgen.ByValue, Nullable: true},
		},
		New: func(a *classgen.Args) (any, error) {
			n := &node{weight: classgen.UnsetFloat, label: classgen.UnsetStr}
			var err error
			if n.weight, err = classgen.ArgAs(a, "weight", n.weight); err != nil {
				return nil, err
			}
			if n.label, err = classgen.ArgAs(a, "label", n.label); err != nil {
				return nil, err
			}
			if n.child, err = classgen.ArgAs(a, "child", n.child); err != nil {
				return nil, err
			}
			return n, nil
		},
		Methods: []classgen.Method{{
			Name:  "depth",
			Const: true,
			Call: func(self any, _ *classgen.Args) (any, error) {
				d := int64(0)
				for n := self.(*node); n != nil; n = n.child {
					d++
				}
				return d, nil
			},
		}},
	}))
	require.NoError(t, r.RegisterEnum(classgen.NewEnum("Shade",
		classgen.EnumMember{Name: "DARK", Value: shade(0)},
		classgen.EnumMember{Name: "LIGHT", Value: shade(1)},
	)))
	require.NoError(t, r.RegisterConstant("GOLDEN", 1.618))
	return r
}

func TestLiteral(t *testing.T) {
	tests := []struct {
		src  string
		want any
	}{
		{"1", int64(1)},
		{"-3", int64(-3)},
		{"18446744073709551615", uint64(18446744073709551615)},
		{"1.5", 1.5},
		{"1e+21", 1e21},
		{"-1.7976931348623157e+308", classgen.UnsetFloat},
		{`"a\"b"`, `a"b`},
		{"'x'", "x"},
		{"True", true},
		{"False", false},
		{"None", nil},
		{"[1, 2.5,]", classgen.List{int64(1), 2.5}},
		{"(1, 2)", classgen.Tuple{int64(1), int64(2)}},
		{"(1,)", classgen.Tuple{int64(1)}},
		{"(1)", int64(1)},
		{"()", classgen.Tuple{}},
		{`{"a": 1, 2: [3]}`, classgen.Dict{{Key: "a", Value: int64(1)}, {Key: int64(2), Value: classgen.List{int64(3)}}}},
		{"array('d', [1, 2.5])", &classgen.NumericArray{Typecode: "d", Values: classgen.List{int64(1), 2.5}}},
		{"array('i')", &classgen.NumericArray{Typecode: "i", Values: classgen.List{}}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := hostexpr.Literal(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLiteralErrors(t *testing.T) {
	for _, src := range []string{"Color.RED", "Node()", "array(1)", "array('z', [])", "[1,", "x = ", "'it''"} {
		t.Run(src, func(t *testing.T) {
			_, err := hostexpr.Literal(src)
			assert.Error(t, err)
		})
	}
	_, err := hostexpr.Literal("missing")
	assert.True(t, errors.Is(err, hostexpr.ErrUnknownName))
}

func TestInterpreter(t *testing.T) {
	in := hostexpr.NewInterpreter(newRegistry(t))

	v, err := in.Exec(`
# leaf first
leaf = Node(weight=2, label='leaf')
Node(0.5, "root", leaf)
`)
	require.NoError(t, err)
	root := v.(*node)
	assert.Equal(t, 0.5, root.weight)
	assert.Equal(t, "root", root.label)
	leaf, ok := in.Var("leaf")
	require.True(t, ok)
	assert.Same(t, leaf, root.child)
	assert.Equal(t, 2.0, leaf.(*node).weight)

	v, err = in.Exec("leaf.depth()")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	v, err = in.Exec("Shade.LIGHT")
	require.NoError(t, err)
	assert.Equal(t, shade(1), v)

	v, err = in.Exec("GOLDEN")
	require.NoError(t, err)
	assert.Equal(t, 1.618, v)

	t.Run("Errors", func(t *testing.T) {
		_, err := in.Exec("Node(label=None)")
		assert.True(t, classgen.IsArgumentError(err), "label is passed by reference")
		_, err = in.Exec("Node(weight=1, 2)")
		assert.Error(t, err)
		_, err = in.Exec("Shade.BLUE")
		assert.True(t, errors.Is(err, hostexpr.ErrUnknownName))
		_, err = in.Exec("nobody.depth()")
		assert.True(t, errors.Is(err, hostexpr.ErrUnknownName))
		_, err = in.Exec("Missing()")
		assert.True(t, classgen.IsNotRegistered(err))
	})
}

func TestExportRoundTrip(t *testing.T) {
	shared := &node{weight: 1, label: classgen.UnsetStr}
	root := &node{
		weight: classgen.UnsetFloat,
		label:  "top",
		child:  &node{weight: 3, label: "mid", child: shared},
	}
	script := classgen.Export(root)
	assert.Equal(t, "node_1 = Node(weight=1)\nnode_2 = Node(weight=3, label=\"mid\", child=node_1)\nNode(label=\"top\", child=node_2)\n", script)

	v, err := hostexpr.NewInterpreter(newRegistry(t)).Exec(script)
	require.NoError(t, err)
	got := v.(*node)
	assert.Equal(t, classgen.UnsetFloat, got.weight)
	assert.Equal(t, "top", got.label)
	assert.Equal(t, 3.0, got.child.weight)
	assert.Equal(t, shared.weight, got.child.child.weight)
	assert.Equal(t, classgen.UnsetStr, got.child.child.label)
	assert.Equal(t, script, classgen.Export(got))
}
