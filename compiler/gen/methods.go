package gen

import (
	"errors"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/classgen/schema"
)

// valueComparable reports if values of t compare with ==.
func valueComparable(t *schema.TypeRef) bool {
	return t.Kind.Scalar() || t.Kind == schema.KindEnum
}

// equalExpr returns the expression comparing a and b of type t. Object
// references are equal when both are unset, or both set and equal.
func equalExpr(t *schema.TypeRef, a, b jen.Code) *jen.Statement {
	switch t.Kind {
	case schema.KindObject:
		return jen.Qual(RuntimePkg, "RefEqual").Call(a, b, jen.Parens(jen.Op("*").Id(t.Name)).Dot("Equal"))
	case schema.KindFunc:
		return jen.Parens(jen.Add(a).Op("==").Nil()).Op("==").Parens(jen.Add(b).Op("==").Nil())
	case schema.KindList:
		if valueComparable(t.Elem) {
			return jen.Qual("slices", "Equal").Call(a, b)
		}
		return jen.Qual("slices", "EqualFunc").Call(a, b, equalFunc(t.Elem))
	case schema.KindDict:
		if valueComparable(t.Elem) {
			return jen.Qual("maps", "Equal").Call(a, b)
		}
		return jen.Qual("maps", "EqualFunc").Call(a, b, equalFunc(t.Elem))
	}
	return jen.Add(a).Op("==").Add(b)
}

func equalFunc(t *schema.TypeRef) jen.Code {
	return jen.Func().Params(jen.Id("x"), jen.Id("y").Add(goType(t))).Bool().Block(
		jen.Return(equalExpr(t, jen.Id("x"), jen.Id("y"))),
	)
}

// differ returns the statement returning false when a differs between
// the receiver and other.
func differ(a *Attribute) jen.Code {
	x, y := field(recv, a), field("other", a)
	cond := jen.Add(x).Op("!=").Add(y)
	if !valueComparable(a.Type) {
		cond = jen.Op("!").Add(equalExpr(a.Type, x, y))
	}
	return jen.If(cond).Block(jen.Return(jen.False()))
}

// equality emits Equal and EqualNonArray.
func (e *classEmitter) equality(f *jen.File) {
	c := e.c
	nilCheck := jen.If(jen.Id(recv).Op("==").Nil().Op("||").Id("other").Op("==").Nil()).Block(
		jen.Return(jen.Id(recv).Op("==").Id("other")),
	)
	full := []jen.Code{nilCheck}
	partial := []jen.Code{jen.Add(nilCheck.Clone())}
	identity := false
	for _, a := range c.Attributes {
		if a.Identity() {
			if identity {
				continue
			}
			identity = true
			full = append(full, differ(a))
			partial = append(partial, jen.If(
				jen.Op("!").Id("ignoreName").Op("&&").Add(field(recv, a)).Op("!=").Add(field("other", a)),
			).Block(jen.Return(jen.False())))
			continue
		}
		full = append(full, differ(a))
		if !a.IsList() {
			partial = append(partial, differ(a))
		}
	}
	full = append(full, jen.Return(jen.True()))
	partial = append(partial, jen.Return(jen.True()))
	self := jen.Id(recv).Op("*").Id(c.Name)
	f.Comment("Equal reports if o and other hold equal attributes.")
	f.Func().Params(self.Clone()).Id("Equal").Params(jen.Id("other").Op("*").Id(c.Name)).Bool().Block(full...)
	f.Comment("EqualNonArray is like Equal, but list attributes always compare equal and")
	f.Comment("the identity attribute is skipped when ignoreName is set.")
	f.Func().Params(self.Clone()).Id("EqualNonArray").Params(
		jen.Id("other").Op("*").Id(c.Name),
		jen.Id("ignoreName").Bool(),
	).Bool().Block(partial...)
}

// formatFunc returns a function value rendering one value of type t.
func formatFunc(t *schema.TypeRef) jen.Code {
	switch t.Kind {
	case schema.KindFloat:
		return jen.Qual(RuntimePkg, "FormatFloat")
	case schema.KindStr:
		return jen.Qual(RuntimePkg, "FormatStr")
	case schema.KindInt:
		return jen.Qual(RuntimePkg, "FormatInt").Types(jen.Int())
	case schema.KindUInt32:
		return jen.Qual(RuntimePkg, "FormatUint").Types(jen.Uint32())
	case schema.KindUInt64:
		return jen.Qual(RuntimePkg, "FormatUint").Types(jen.Uint64())
	case schema.KindBool:
		return jen.Qual(RuntimePkg, "FormatBool")
	case schema.KindVec2, schema.KindVec3, schema.KindIVec3:
		return jen.Qual(RuntimePkg, t.Kind.String()).Dot("String")
	case schema.KindEnum:
		return jen.Id(t.Name).Dot("String")
	}
	return jen.Func().Params(jen.Id("e").Add(goType(t))).String().Block(
		jen.Return(formatExpr(t, jen.Id("e"))),
	)
}

// formatExpr returns the expression rendering v of type t at the depth
// held by the local indent.
func formatExpr(t *schema.TypeRef, v jen.Code) *jen.Statement {
	switch t.Kind {
	case schema.KindVec2, schema.KindVec3, schema.KindIVec3, schema.KindEnum:
		return jen.Add(v).Dot("String").Call()
	case schema.KindList:
		return jen.Qual(RuntimePkg, "FormatList").Call(v, formatFunc(t.Elem))
	case schema.KindDict:
		return jen.Qual(RuntimePkg, "FormatMap").Call(v, formatFunc(t.Key), formatFunc(t.Elem))
	case schema.KindObject:
		return jen.Qual(RuntimePkg, "FormatRef").Call(v, jen.Id("indent"))
	case schema.KindFunc:
		return jen.Qual(RuntimePkg, "FormatCallable").Call(jen.Add(v).Op("!=").Nil())
	}
	return jen.Add(formatFunc(t)).Call(v)
}

// stringer emits String and StringIndent over the constructor attributes.
func (e *classEmitter) stringer(f *jen.File) {
	c := e.c
	body := []jen.Code{jen.Var().Id("b").Qual("strings", "Builder")}
	sep := " "
	head := c.Name + ":"
	for _, a := range c.CtorAttributes() {
		body = append(body,
			jen.Id("b").Dot("WriteString").Call(jen.Lit(head+sep+a.Name+"=")),
			jen.Id("b").Dot("WriteString").Call(formatExpr(a.Type, field(recv, a))),
		)
		head, sep = "", ", "
	}
	if head != "" {
		body = append(body, jen.Id("b").Dot("WriteString").Call(jen.Lit(head)))
	}
	body = append(body, jen.Return(jen.Id("b").Dot("String").Call()))
	f.Comment("String implements the fmt.Stringer interface.")
	f.Func().Params(jen.Id(recv).Op("*").Id(c.Name)).Id("String").Params().String().Block(
		jen.Return(jen.Id(recv).Dot("StringIndent").Call(jen.Lit(0))),
	)
	f.Comment("StringIndent renders o with nested objects at the given depth.")
	f.Func().Params(jen.Id(recv).Op("*").Id(c.Name)).Id("StringIndent").Params(jen.Id("indent").Int()).String().Block(body...)
}

// cloneFunc returns a function value deep copying one value of type t, or
// nil when assignment copies it.
func cloneFunc(t *schema.TypeRef) (jen.Code, error) {
	switch t.Kind {
	case schema.KindObject:
		return jen.Parens(jen.Op("*").Id(t.Name)).Dot("DeepCopy"), nil
	case schema.KindList, schema.KindDict:
		body, err := cloneExpr(t, jen.Id("e"))
		if err != nil {
			return nil, err
		}
		return jen.Func().Params(jen.Id("e").Add(goType(t))).Add(goType(t)).Block(jen.Return(body)), nil
	}
	return nil, nil
}

// cloneExpr returns the expression deep copying v of type t, or nil when
// assignment copies it. A list of lists of objects has no copy rule.
func cloneExpr(t *schema.TypeRef, v jen.Code) (*jen.Statement, error) {
	switch t.Kind {
	case schema.KindObject:
		return jen.Add(v).Dot("DeepCopy").Call(), nil
	case schema.KindList:
		if t.Elem.IsList() && t.Elem.Innermost().IsObject() {
			return nil, errNoCopyRule
		}
		inner, err := cloneFunc(t.Elem)
		if err != nil {
			return nil, err
		}
		if inner == nil {
			return jen.Qual("slices", "Clone").Call(v), nil
		}
		return jen.Qual(RuntimePkg, "CloneList").Call(v, inner), nil
	case schema.KindDict:
		inner, err := cloneFunc(t.Elem)
		if err != nil {
			return nil, err
		}
		if inner == nil {
			return jen.Qual("maps", "Clone").Call(v), nil
		}
		return jen.Qual(RuntimePkg, "CloneMap").Call(v, inner), nil
	}
	return nil, nil
}

var errNoCopyRule = errors.New("no deep-copy rule")

// copiers emits Copy and DeepCopy.
func (e *classEmitter) copiers(f *jen.File) error {
	c := e.c
	body := []jen.Code{
		jen.If(jen.Id(recv).Op("==").Nil()).Block(jen.Return(jen.Nil())),
		jen.Id("c").Op(":=").Id(recv).Dot("Copy").Call(),
	}
	for _, a := range c.Attributes {
		if a.Identity() {
			continue
		}
		x, err := cloneExpr(a.Type, field("c", a))
		if err != nil {
			return NewUnsupportedShape(c.Name, a.Name, a.Type.String(), "deep-copy")
		}
		if x != nil {
			body = append(body, assign("c", a, x))
		}
	}
	body = append(body, jen.Return(jen.Id("c")))
	f.Comment("Copy returns a shallow copy of o.")
	f.Func().Params(jen.Id(recv).Op("*").Id(c.Name)).Id("Copy").Params().Op("*").Id(c.Name).Block(
		jen.If(jen.Id(recv).Op("==").Nil()).Block(jen.Return(jen.Nil())),
		jen.Id("c").Op(":=").Op("*").Id(recv),
		jen.Return(jen.Op("&").Id("c")),
	)
	f.Comment("DeepCopy returns a copy of o that shares no object or container with it.")
	f.Func().Params(jen.Id(recv).Op("*").Id(c.Name)).Id("DeepCopy").Params().Op("*").Id(c.Name).Block(body...)
	return nil
}

// exportFunc returns a function value exporting one list or dict element
// of type t.
func exportFunc(t *schema.TypeRef) jen.Code {
	switch t.Kind {
	case schema.KindObject:
		return jen.Func().Params(jen.Id("e").Add(goType(t))).String().Block(
			jen.Return(jen.Qual(RuntimePkg, "ExportRef").Call(jen.Id("ctx"), jen.Id("e"))),
		)
	case schema.KindFunc:
		return jen.Func().Params(jen.Id("_").Add(goType(t))).String().Block(jen.Return(jen.Lit("None")))
	case schema.KindList, schema.KindDict:
		return jen.Func().Params(jen.Id("e").Add(goType(t))).String().Block(
			jen.Return(exportExpr(t, jen.Id("e"))),
		)
	}
	return formatFunc(t)
}

// exportExpr returns the expression exporting v of type t as a host
// literal.
func exportExpr(t *schema.TypeRef, v jen.Code) *jen.Statement {
	switch t.Kind {
	case schema.KindObject:
		return jen.Id("ctx").Dot("Ref").Call(v)
	case schema.KindList:
		return jen.Qual(RuntimePkg, "ExportList").Call(v, exportFunc(t.Elem))
	case schema.KindDict:
		return jen.Qual(RuntimePkg, "FormatMap").Call(v, exportFunc(t.Key), exportFunc(t.Elem))
	}
	return formatExpr(t, v)
}

// exporter emits ExportTo and one helper per list-of-objects attribute.
// Attributes holding their sentinel and callbacks are omitted.
func (e *classEmitter) exporter(f *jen.File) {
	c := e.c
	body := []jen.Code{jen.Var().Id("kw").Index().String()}
	for _, a := range c.CtorAttributes() {
		if a.Type.Kind == schema.KindFunc {
			continue
		}
		value := exportExpr(a.Type, field(recv, a))
		if a.IsObjectList() {
			value = jen.Id(recv).Dot(a.ExportHelper()).Call(jen.Id("ctx"))
		}
		add := jen.Id("kw").Op("=").Append(jen.Id("kw"), jen.Lit(a.Name+"=").Op("+").Add(value))
		if cond := isSet(a.Type, field(recv, a)); cond != nil {
			body = append(body, jen.If(cond).Block(add))
		} else {
			body = append(body, add)
		}
	}
	body = append(body, jen.Return(jen.Qual(RuntimePkg, "ExportCall").Call(jen.Lit(c.Name), jen.Id("kw"))))
	ctx := jen.Id("ctx").Op("*").Qual(RuntimePkg, "ExportContext")
	f.Comment("ExportTo renders o as a host constructor call. Sub-objects are bound")
	f.Comment("through ctx, so an object shared by several parents is built once.")
	f.Func().Params(jen.Id(recv).Op("*").Id(c.Name)).Id("ExportTo").Params(ctx.Clone()).String().Block(body...)

	for _, a := range c.CtorAttributes() {
		if !a.IsObjectList() {
			continue
		}
		f.Commentf("%s binds the %s list to a generated name and returns the name.", a.ExportHelper(), a.Name)
		f.Func().Params(jen.Id(recv).Op("*").Id(c.Name)).Id(a.ExportHelper()).Params(ctx.Clone()).String().Block(
			jen.Return(jen.Id("ctx").Dot("BindList").Call(
				jen.Lit(c.FileName()+"_"+a.Name),
				jen.Qual(RuntimePkg, "ExportList").Call(field(recv, a), exportFunc(a.Type.Elem)),
			)),
		)
	}
}
