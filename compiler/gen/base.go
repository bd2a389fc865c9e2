package gen

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/classgen/schema"
)

// recv is the receiver name of every generated method.
const recv = "o"

// field returns the storage expression of a on the receiver named r.
// Inherited attributes live in the embedded superclass, so a shadowed
// attribute keeps its own storage.
func field(r string, a *Attribute) *jen.Statement {
	switch {
	case a.Identity():
		return jen.Id(r).Dot("Name").Call()
	case a.Inherited:
		return jen.Id(r).Dot(a.Owner).Dot(a.Field())
	default:
		return jen.Id(r).Dot(a.Field())
	}
}

// assign returns the statement storing v into a on the receiver named r.
func assign(r string, a *Attribute, v jen.Code) *jen.Statement {
	if a.Identity() {
		return jen.Id(r).Dot("SetName").Call(v)
	}
	return field(r, a).Op("=").Add(v)
}

// declareBase declares the storage struct and the method interface.
func (e *classEmitter) declareBase(f *jen.File) {
	c := e.c
	fields := make([]jen.Code, 0, len(c.Attributes)+1)
	if c.IsDerived() {
		fields = append(fields, jen.Id(c.Super))
	} else {
		fields = append(fields, jen.Qual(RuntimePkg, "Object"))
	}
	for _, a := range c.Own() {
		if a.Identity() {
			continue
		}
		s := jen.Id(a.Field()).Add(goType(a.Type))
		if a.Doc != "" {
			s.Comment(a.Doc)
		}
		fields = append(fields, s)
	}
	f.Commentf("%s holds the generated attributes of %s. It is embedded by the editable type %s.", c.BaseName(), c.Name, c.Name)
	f.Type().Id(c.BaseName()).Struct(fields...)

	methods := make([]jen.Code, 0, len(c.Exposed))
	for _, m := range c.Exposed {
		s := jen.Id(m.GoName()).Params(params(m)...).Add(result(m))
		if m.Doc != "" {
			methods = append(methods, jen.Comment(m.Doc))
		}
		methods = append(methods, s)
	}
	f.Commentf("%s lists the methods %s implements by hand.", c.MethodsName(), c.Name)
	f.Type().Id(c.MethodsName()).Interface(methods...)
	f.Var().Defs(
		jen.Id("_").Id(c.MethodsName()).Op("=").Parens(jen.Op("*").Id(c.Name)).Parens(jen.Nil()),
		jen.Id("_").Qual(RuntimePkg, "Class").Op("=").Parens(jen.Op("*").Id(c.Name)).Parens(jen.Nil()),
	)
}

func params(m *Method) []jen.Code {
	ps := make([]jen.Code, len(m.Params))
	for i, p := range m.Params {
		ps[i] = jen.Id(p.ArgName()).Add(goType(p.Type))
	}
	return ps
}

func result(m *Method) jen.Code {
	if m.Result == nil {
		return jen.Null()
	}
	return goType(m.Result.Type)
}

// defineMethods adds every generated method of the class to f.
func (e *classEmitter) defineMethods(f *jen.File) error {
	c := e.c
	f.Comment("ClassName returns the host name of the class.")
	f.Func().Params(jen.Id(recv).Op("*").Id(c.Name)).Id("ClassName").Params().String().Block(
		jen.Return(jen.Lit(c.Name)),
	)
	e.constructors(f)
	e.accessors(f)
	e.equality(f)
	e.stringer(f)
	if err := e.copiers(f); err != nil {
		return err
	}
	e.exporter(f)
	return nil
}

// constructors emits NewC, NewCDefault and the two reset steps.
func (e *classEmitter) constructors(f *jen.File) {
	c := e.c
	var (
		args  []jen.Code
		body  = []jen.Code{jen.Id(recv).Op(":=").Op("&").Id(c.Name).Values(), jen.Id(recv).Dot("resetUnset").Call()}
		attrs = c.CtorAttributes()
	)
	for _, a := range attrs {
		args = append(args, jen.Id(a.ArgName()).Add(goType(a.Type)))
		body = append(body, assign(recv, a, jen.Id(a.ArgName())))
	}
	// Shadowed inherited copies take no argument; they hold their
	// declared default as they do after NewCDefault.
	for _, a := range c.Attributes {
		if a.ExcludedFromCtor && a.Value != nil && unset(a.Type) != nil {
			body = append(body, assign(recv, a, a.Value.Clone()))
		}
	}
	body = append(body, jen.Return(jen.Id(recv)))
	f.Commentf("%s returns a %s holding the given attributes.", c.CtorName(), c.Name)
	f.Func().Id(c.CtorName()).Params(args...).Op("*").Id(c.Name).Block(body...)

	f.Commentf("%s returns a %s with every attribute unset, then set to its declared default.", c.DefaultCtorName(), c.Name)
	f.Func().Id(c.DefaultCtorName()).Params().Op("*").Id(c.Name).Block(
		jen.Id(recv).Op(":=").Op("&").Id(c.Name).Values(),
		jen.Id(recv).Dot("resetUnset").Call(),
		jen.Id(recv).Dot("applyDefaults").Call(),
		jen.Return(jen.Id(recv)),
	)

	var reset, defaults []jen.Code
	for _, a := range c.Attributes {
		if v := unset(a.Type); v != nil {
			reset = append(reset, assign(recv, a, v))
		} else {
			reset = append(reset, assign(recv, a, e.g.initial(a)))
		}
		if a.Value != nil {
			defaults = append(defaults, assign(recv, a, a.Value.Clone()))
		}
	}
	f.Func().Params(jen.Id(recv).Op("*").Id(c.Name)).Id("resetUnset").Params().Block(reset...)
	f.Func().Params(jen.Id(recv).Op("*").Id(c.Name)).Id("applyDefaults").Params().Block(defaults...)
}

// initial returns the reset value of an attribute without a sentinel: its
// declared default, or the first enum member.
func (g *Graph) initial(a *Attribute) jen.Code {
	if a.Value != nil {
		return a.Value.Clone()
	}
	if a.Type.Kind == schema.KindEnum {
		en := g.enums[a.Type.Name]
		return jen.Id(en.Consts[0])
	}
	return jen.Op("*").New(goType(a.Type))
}

// accessors emits a getter and a setter per own attribute.
func (e *classEmitter) accessors(f *jen.File) {
	c := e.c
	for _, a := range c.Own() {
		if a.Identity() {
			continue
		}
		f.Commentf("%s returns the %s attribute.", a.Getter(), a.Name)
		f.Func().Params(jen.Id(recv).Op("*").Id(c.Name)).Id(a.Getter()).Params().Add(goType(a.Type)).Block(
			jen.Return(field(recv, a)),
		)
		f.Commentf("%s sets the %s attribute.", a.Setter(), a.Name)
		f.Func().Params(jen.Id(recv).Op("*").Id(c.Name)).Id(a.Setter()).Params(jen.Id("v").Add(goType(a.Type))).Block(
			assign(recv, a, jen.Id("v")),
		)
	}
}
