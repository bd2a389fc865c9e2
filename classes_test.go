package classgen_test

import (
	"reflect"
	"strings"

	"github.com/syssam/classgen"
)

// point is a hand-written class shaped like generated code.
type point struct {
	classgen.Object
	x    float64
	next *point
}

func newPointDefault() *point {
	return &point{x: classgen.UnsetFloat}
}

func (p *point) ClassName() string { return "Point" }

func (p *point) String() string { return p.StringIndent(0) }

func (p *point) StringIndent(indent int) string {
	var b strings.Builder
	b.WriteString("Point: x=")
	b.WriteString(classgen.FormatFloat(p.x))
	b.WriteString(", next=")
	if p.next == nil {
		b.WriteString("null")
	} else {
		b.WriteString("\n")
		b.WriteString(classgen.Indent(indent + 1))
		b.WriteString(p.next.StringIndent(indent + 1))
	}
	return b.String()
}

func (p *point) ExportTo(ctx *classgen.ExportContext) string {
	var kw []string
	if p.x != classgen.UnsetFloat {
		kw = append(kw, "x="+classgen.FormatFloat(p.x))
	}
	if p.next != nil {
		kw = append(kw, "next="+ctx.Ref(p.next))
	}
	return classgen.ExportCall("Point", kw)
}

// pair references two points, possibly the same one.
type pair struct {
	classgen.Object
	a, b *point
}

func (p *pair) ClassName() string { return "Pair" }

func (p *pair) StringIndent(int) string { return "Pair" }

func (p *pair) ExportTo(ctx *classgen.ExportContext) string {
	var kw []string
	if p.a != nil {
		kw = append(kw, "a="+ctx.Ref(p.a))
	}
	if p.b != nil {
		kw = append(kw, "b="+ctx.Ref(p.b))
	}
	return classgen.ExportCall("Pair", kw)
}

func registerPoint(r *classgen.Registry) error {
	return r.RegisterClass(&classgen.ClassBinding{
		Name:   "Point",
		Kind:   classgen.KindClass,
		GoType: reflect.TypeFor[*point](),
		Params: []classgen.Param{
			{Name: "x", Type: "float", Mode: classgen.ByValue},
			{Name: "next", Type: "Point", Mode: classgen.ByValue, Nullable: true},
		},
		New: func(a *classgen.Args) (any, error) {
			if a.Empty() {
				return newPointDefault(), nil
			}
			x, err := classgen.ArgAs(a, "x", float64(classgen.UnsetFloat))
			if err != nil {
				return nil, err
			}
			next, err := classgen.ArgAs[*point](a, "next", nil)
			if err != nil {
				return nil, err
			}
			return &point{x: x, next: next}, nil
		},
		Methods: []classgen.Method{
			{
				Name:   "scale",
				Params: []classgen.Param{{Name: "factor", Type: "float", Required: true}},
				Call: func(self any, a *classgen.Args) (any, error) {
					f, err := classgen.ArgAs(a, "factor", 1.0)
					if err != nil {
						return nil, err
					}
					p := self.(*point)
					p.x *= f
					return nil, nil
				},
			},
		},
	})
}
