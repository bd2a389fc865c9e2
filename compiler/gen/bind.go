package gen

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/classgen"
)

// declareBinding emits the registration function of c.
func (g *Graph) declareBinding(f *jen.File, c *Class) {
	kind := "KindClass"
	if c.IsSubmodule() {
		kind = "KindSubmodule"
	}
	ctor := make([]classgen.Param, 0, len(c.Attributes))
	for _, a := range c.CtorAttributes() {
		ctor = append(ctor, a.Binding())
	}
	fields := jen.Dict{
		jen.Id("Name"):   jen.Lit(c.Name),
		jen.Id("Kind"):   jen.Qual(RuntimePkg, kind),
		jen.Id("GoType"): jen.Qual("reflect", "TypeFor").Types(jen.Op("*").Id(c.Name)).Call(),
		jen.Id("New"):    g.newFunc(c),
	}
	if len(ctor) > 0 {
		fields[jen.Id("Params")] = g.paramList(ctor)
	}
	if len(c.Exposed) > 0 {
		methods := make([]jen.Code, len(c.Exposed))
		for i, m := range c.Exposed {
			methods[i] = g.methodBinding(c, m)
		}
		fields[jen.Id("Methods")] = jen.Index().Qual(RuntimePkg, "Method").ValuesFunc(func(gr *jen.Group) {
			for _, m := range methods {
				gr.Add(m)
			}
		})
	}
	f.Commentf("%s adds the binding of %s to r.", c.RegisterName(), c.Name)
	f.Func().Id(c.RegisterName()).Params(jen.Id("r").Op("*").Qual(RuntimePkg, "Registry")).Error().Block(
		jen.Return(jen.Id("r").Dot("RegisterClass").Call(
			jen.Op("&").Qual(RuntimePkg, "ClassBinding").Values(fields),
		)),
	)
}

// paramList renders binding parameters. Names refer to the identifier
// table.
func (g *Graph) paramList(ps []classgen.Param) jen.Code {
	return jen.Index().Qual(RuntimePkg, "Param").ValuesFunc(func(gr *jen.Group) {
		for _, p := range ps {
			d := jen.Dict{
				jen.Id("Name"): jen.Id(g.Names.Ident(p.Name)),
				jen.Id("Type"): jen.Lit(p.Type),
			}
			if p.Mode == classgen.ByReference {
				d[jen.Id("Mode")] = jen.Qual(RuntimePkg, "ByReference")
			}
			if p.Nullable {
				d[jen.Id("Nullable")] = jen.True()
			}
			if p.Required {
				d[jen.Id("Required")] = jen.True()
			}
			gr.Values(d)
		}
	})
}

// argument returns the statements converting one host argument into the
// local name, returning early on error.
func (g *Graph) argument(local, name string, t *TargetType, fallback jen.Code) []jen.Code {
	return []jen.Code{
		jen.List(jen.Id(local), jen.Err()).Op(":=").Qual(RuntimePkg, "ArgAs").Types(goType(t.Type)).Call(
			jen.Id("a"), jen.Id(g.Names.Ident(name)), fallback,
		),
		jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Nil(), jen.Err())),
	}
}

// newFunc renders the host constructor. Without arguments it takes the
// zero-argument path; otherwise an omitted argument falls back to its
// sentinel, or to its declared default for types without one.
func (g *Graph) newFunc(c *Class) jen.Code {
	body := []jen.Code{
		jen.If(jen.Id("a").Dot("Empty").Call()).Block(jen.Return(jen.Id(c.DefaultCtorName()).Call(), jen.Nil())),
	}
	var args []jen.Code
	for _, a := range c.CtorAttributes() {
		fallback := unset(a.Type)
		switch {
		case fallback != nil:
		case a.Value != nil:
			fallback = a.Value.Clone()
		default:
			fallback = jen.Op("*").New(goType(a.Type))
		}
		body = append(body, g.argument(a.ArgName(), a.Name, a.Target, fallback)...)
		args = append(args, jen.Id(a.ArgName()))
	}
	body = append(body, jen.Return(jen.Id(c.CtorName()).Call(args...), jen.Nil()))
	return jen.Func().Params(jen.Id("a").Op("*").Qual(RuntimePkg, "Args")).Params(jen.Any(), jen.Error()).Block(body...)
}

// methodBinding renders one exposed method.
func (g *Graph) methodBinding(c *Class, m *Method) jen.Code {
	var (
		body []jen.Code
		args []jen.Code
		ps   = make([]classgen.Param, len(m.Params))
	)
	for i, p := range m.Params {
		ps[i] = p.Binding()
		fallback := jen.Op("*").New(goType(p.Type))
		if p.Value != nil {
			fallback = p.Value.Clone()
		}
		body = append(body, g.argument(p.ArgName(), p.Name, p.Target, fallback)...)
		args = append(args, jen.Id(p.ArgName()))
	}
	call := jen.Id("self").Assert(jen.Op("*").Id(c.Name)).Dot(m.GoName()).Call(args...)
	if m.Result != nil {
		body = append(body, jen.Return(call, jen.Nil()))
	} else {
		body = append(body, call, jen.Return(jen.Nil(), jen.Nil()))
	}
	d := jen.Dict{
		jen.Id("Name"): jen.Id(g.Names.Ident(m.Name)),
		jen.Id("Call"): jen.Func().Params(jen.Id("self").Any(), jen.Id("a").Op("*").Qual(RuntimePkg, "Args")).Params(jen.Any(), jen.Error()).Block(body...),
	}
	if len(ps) > 0 {
		d[jen.Id("Params")] = g.paramList(ps)
	}
	if m.Const {
		d[jen.Id("Const")] = jen.True()
	}
	return jen.Values(d)
}
