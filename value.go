package classgen

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"
)

type (
	// Vec2 is a two-component float vector.
	Vec2 [2]float64
	// Vec3 is a three-component float vector.
	Vec3 [3]float64
	// IVec3 is a three-component integer vector.
	IVec3 [3]int
)

// Unset sentinels. An attribute holding its type's sentinel has never been
// assigned. Bool and enum types have no sentinel.
const (
	UnsetFloat  = -math.MaxFloat64
	UnsetStr    = "__unset__"
	UnsetInt    = math.MinInt
	UnsetUInt32 = math.MaxUint32
	UnsetUInt64 = math.MaxUint64
)

// Vector sentinels.
var (
	UnsetVec2  = Vec2{UnsetFloat, UnsetFloat}
	UnsetVec3  = Vec3{UnsetFloat, UnsetFloat, UnsetFloat}
	UnsetIVec3 = IVec3{UnsetInt, UnsetInt, UnsetInt}
)

// ExportWrap is the number of list elements written per line on export.
const ExportWrap = 16

// FormatFloat is the canonical float formatter. Every float rendered by
// generated code goes through it, so output is reproducible.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// FormatInt formats a signed integer.
func FormatInt[T ~int | ~int64](v T) string {
	return strconv.FormatInt(int64(v), 10)
}

// FormatUint formats an unsigned integer.
func FormatUint[T ~uint32 | ~uint64](v T) string {
	return strconv.FormatUint(uint64(v), 10)
}

// FormatStr quotes a string.
func FormatStr(s string) string {
	return strconv.Quote(s)
}

// FormatBool formats a boolean with host-language spelling.
func FormatBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

// String implements the fmt.Stringer interface.
func (v Vec2) String() string {
	return "(" + FormatFloat(v[0]) + ", " + FormatFloat(v[1]) + ")"
}

// String implements the fmt.Stringer interface.
func (v Vec3) String() string {
	return "(" + FormatFloat(v[0]) + ", " + FormatFloat(v[1]) + ", " + FormatFloat(v[2]) + ")"
}

// String implements the fmt.Stringer interface.
func (v IVec3) String() string {
	return "(" + strconv.Itoa(v[0]) + ", " + strconv.Itoa(v[1]) + ", " + strconv.Itoa(v[2]) + ")"
}

// FormatList renders s inline as "[a, b, c]".
func FormatList[S ~[]E, E any](s S, format func(E) string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range s {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(format(e))
	}
	b.WriteByte(']')
	return b.String()
}

// ExportList renders s as a host list literal, starting a new line every
// ExportWrap elements.
func ExportList[S ~[]E, E any](s S, format func(E) string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range s {
		switch {
		case i > 0 && i%ExportWrap == 0:
			b.WriteString(",\n    ")
		case i > 0:
			b.WriteString(", ")
		}
		b.WriteString(format(e))
	}
	b.WriteByte(']')
	return b.String()
}

// FormatMap renders m as "{k: v, ...}" with entries sorted by their
// rendered key.
func FormatMap[M ~map[K]V, K comparable, V any](m M, key func(K) string, value func(V) string) string {
	type entry struct{ k, v string }
	entries := make([]entry, 0, len(m))
	for k, v := range m {
		entries = append(entries, entry{key(k), value(v)})
	}
	slices.SortFunc(entries, func(a, b entry) int { return cmp.Compare(a.k, b.k) })
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.k)
		b.WriteString(": ")
		b.WriteString(e.v)
	}
	b.WriteByte('}')
	return b.String()
}

// Indent returns the indentation prefix for the given depth.
func Indent(depth int) string {
	return strings.Repeat("  ", depth)
}

// RefEqual compares two object references: both unset, or both set and
// equal under eq.
func RefEqual[P comparable](a, b P, eq func(P, P) bool) bool {
	var unset P
	if a == unset || b == unset {
		return a == b
	}
	return a == b || eq(a, b)
}

// Ref is satisfied by pointers to generated classes.
type Ref interface {
	comparable
	StringIndent(indent int) string
}

// FormatRef renders an object reference: "null" when unset, else the
// object on a new line at indent+1.
func FormatRef[P Ref](v P, indent int) string {
	var unset P
	if v == unset {
		return "null"
	}
	return "\n" + Indent(indent+1) + v.StringIndent(indent+1)
}

// FormatCallable renders a callback attribute, which has no textual form.
func FormatCallable(set bool) string {
	if set {
		return "<callable>"
	}
	return "null"
}

// CloneList returns a copy of s with every element passed through clone.
// A nil s stays nil.
func CloneList[S ~[]E, E any](s S, clone func(E) E) S {
	if s == nil {
		return nil
	}
	out := make(S, len(s))
	for i, e := range s {
		out[i] = clone(e)
	}
	return out
}

// CloneMap returns a copy of m with every value passed through clone.
// A nil m stays nil.
func CloneMap[M ~map[K]V, K comparable, V any](m M, clone func(V) V) M {
	if m == nil {
		return nil
	}
	out := make(M, len(m))
	for k, v := range m {
		out[k] = clone(v)
	}
	return out
}
