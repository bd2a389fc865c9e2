package classgen_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/classgen"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1.5, "1.5"},
		{-2, "-2"},
		{1e21, "1e+21"},
		{0.1, "0.1"},
		{classgen.UnsetFloat, "-1.7976931348623157e+308"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, classgen.FormatFloat(tt.in))
		})
	}
}

func TestFormatScalars(t *testing.T) {
	assert.Equal(t, "True", classgen.FormatBool(true))
	assert.Equal(t, "False", classgen.FormatBool(false))
	assert.Equal(t, `"a\"b"`, classgen.FormatStr(`a"b`))
	assert.Equal(t, "-3", classgen.FormatInt(-3))
	assert.Equal(t, "4294967295", classgen.FormatUint(uint32(classgen.UnsetUInt32)))
	assert.Equal(t, "(1, 2.5)", classgen.Vec2{1, 2.5}.String())
	assert.Equal(t, "(0, 0, 1)", classgen.Vec3{0, 0, 1}.String())
	assert.Equal(t, "(1, -2, 3)", classgen.IVec3{1, -2, 3}.String())
	assert.Equal(t, "    ", classgen.Indent(2))
}

func TestFormatList(t *testing.T) {
	assert.Equal(t, "[]", classgen.FormatList([]float64(nil), classgen.FormatFloat))
	assert.Equal(t, "[1, 2.5]", classgen.FormatList([]float64{1, 2.5}, classgen.FormatFloat))
}

func TestExportListWraps(t *testing.T) {
	s := make([]int, 18)
	for i := range s {
		s[i] = i
	}
	want := "[0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,\n    16, 17]"
	assert.Equal(t, want, classgen.ExportList(s, strconv.Itoa))
	assert.Equal(t, "[0, 1]", classgen.ExportList(s[:2], strconv.Itoa))
}

func TestFormatMapSorted(t *testing.T) {
	m := map[string]float64{"b": 2, "a": 1, "c": 0.5}
	assert.Equal(t, `{"a": 1, "b": 2, "c": 0.5}`, classgen.FormatMap(m, classgen.FormatStr, classgen.FormatFloat))
}

func TestRefEqual(t *testing.T) {
	eq := func(a, b *point) bool { return a.x == b.x }
	p, q := &point{x: 1}, &point{x: 1}
	assert.True(t, classgen.RefEqual[*point](nil, nil, eq))
	assert.True(t, classgen.RefEqual(p, q, eq))
	assert.False(t, classgen.RefEqual(p, nil, eq))
	assert.False(t, classgen.RefEqual(nil, q, eq))
	assert.False(t, classgen.RefEqual(p, &point{x: 2}, eq))
}
