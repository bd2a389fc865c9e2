package load

import (
	"bytes"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/classgen/compiler/gen"
	"github.com/syssam/classgen/schema"
)

func TestLoadFileYAML(t *testing.T) {
	m, err := LoadFile("testdata/shapes.yaml")
	require.NoError(t, err)

	assert.Equal(t, []string{"Circle", "Drawable", "Scene", "Shape", "Sprite"}, m.ClassNames())

	shape := m.Classes["Shape"]
	assert.Equal(t, "geometry", shape.Category)
	assert.Equal(t, schema.NoParent{}, shape.Parent)
	require.Len(t, shape.Attributes, 3)
	assert.Nil(t, shape.Attributes[0].Default)
	assert.Equal(t, "True", *shape.Attributes[1].Default)
	assert.Equal(t, "Color.GREEN", *shape.Attributes[2].Default)
	require.Len(t, shape.Methods, 1)
	assert.Equal(t, "2", *shape.Methods[0].Params[0].Default)
	assert.Equal(t, "Float", shape.Methods[0].Return.String())

	circle := m.Classes["Circle"]
	assert.Equal(t, schema.SingleParent{Name: "Shape"}, circle.Parent)
	assert.Equal(t, "False", *circle.Attributes[1].Default)
	assert.True(t, circle.Methods[0].Const)

	sprite := m.Classes["Sprite"]
	assert.Equal(t, schema.Capabilities{Names: []string{"Drawable"}}, sprite.Parent)
	assert.Equal(t, "(0, 0)", *sprite.Attributes[0].Default)
	assert.Equal(t, "Sprite*", sprite.Attributes[2].Type.String())
	assert.Equal(t, `"sprite"`, *sprite.Attributes[3].Default)
	assert.True(t, m.Classes["Scene"].IsSubmodule())

	require.Len(t, m.Enums, 1)
	assert.Equal(t, []schema.EnumValue{{Name: "RED", Value: 0}, {Name: "GREEN", Value: 1}, {Name: "BLUE", Value: 10}}, m.Enums[0].Values)
	require.Len(t, m.Constants, 2)
	assert.Equal(t, "3.14159", m.Constants[0].Literal)
	assert.Equal(t, "(0, 0)", m.Constants[1].Literal)
}

func TestLoadedModelGenerates(t *testing.T) {
	m, err := LoadFile("testdata/shapes.yaml")
	require.NoError(t, err)
	cfg, err := gen.NewConfig(
		gen.WithTarget(filepath.Join(t.TempDir(), "shapes")),
		gen.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)
	g, err := gen.NewGraph(cfg, m)
	require.NoError(t, err)
	_, err = g.Gen(t.Context())
	require.NoError(t, err)
}

func TestLoadJSONKeepsIntegers(t *testing.T) {
	m, err := LoadFile("testdata/shapes.json")
	require.NoError(t, err)
	dot := m.Classes["Dot"]
	assert.Equal(t, "0.5", *dot.Attributes[0].Default)
	assert.Equal(t, "9007199254740993", *dot.Attributes[2].Default)
	assert.Equal(t, "18446744073709551615", m.Constants[0].Literal)
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]string{
		"testdata/unknown_field.yaml":          "field fields not found",
		"testdata/bad_type.yaml":               `attribute "x"`,
		"testdata/super_and_capabilities.yaml": "super and capabilities cannot be combined",
		"testdata/missing.yaml":                "no such file",
		"testdata/shapes.toml":                 "unknown schema format",
	}
	for path, want := range tests {
		t.Run(filepath.Base(path), func(t *testing.T) {
			_, err := LoadFile(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), want)
		})
	}
}

func TestLoadDocumentErrors(t *testing.T) {
	tests := []struct {
		name, doc, want string
	}{
		{"duplicate class", `{"classes": [{"name": "Dot"}, {"name": "Dot"}]}`, `duplicate class "Dot"`},
		{"unnamed class", `{"classes": [{}]}`, "class without a name"},
		{"unknown kind", `{"classes": [{"name": "Dot", "kind": "struct"}]}`, `unknown kind "struct"`},
		{"constant without value", `{"constants": [{"name": "PI", "type": "Float"}]}`, `constant "PI" has no value`},
		{"unsupported literal", `{"constants": [{"name": "PI", "type": "Float", "value": [1]}]}`, "unsupported literal"},
		{"bad return type", `{"classes": [{"name": "Dot", "methods": [{"name": "f", "returns": "Dict<Int>"}]}]}`, `method "f"`},
		{"unknown field", `{"classes": [{"name": "Dot", "parent": "Base"}]}`, "unknown field"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc), JSON)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
	_, err := Load(strings.NewReader("{}"), Format("toml"))
	assert.Error(t, err)
}

func TestLoadEmptyYAML(t *testing.T) {
	m, err := Load(strings.NewReader(""), YAML)
	require.NoError(t, err)
	assert.Empty(t, m.Classes)
}

func TestMarshalRoundTrip(t *testing.T) {
	m, err := LoadFile("testdata/shapes.yaml")
	require.NoError(t, err)
	for _, format := range []Format{YAML, JSON, Msgpack} {
		t.Run(string(format), func(t *testing.T) {
			b, err := Marshal(m, format)
			require.NoError(t, err)
			got, err := Load(bytes.NewReader(b), format)
			require.NoError(t, err)
			assert.Equal(t, m, got)
		})
	}
}

func TestFormatOf(t *testing.T) {
	for path, want := range map[string]Format{
		"a.yaml":    YAML,
		"a.YML":     YAML,
		"a.json":    JSON,
		"a.msgpack": Msgpack,
		"a.mpk":     Msgpack,
	} {
		got, err := FormatOf(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
	_, err := FormatOf("schema")
	assert.Error(t, err)
}
