package gen

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/classgen/schema"
)

// globalArtifact renders one package-wide Go file.
type globalArtifact struct {
	path string
	gen  func(*Graph, *jen.File)
}

var globalArtifacts = []globalArtifact{
	{"constants.go", (*Graph).declareConstants},
	{"constants_bind.go", (*Graph).declareConstantsBinding},
	{"containers.go", (*Graph).declareContainers},
	{"containers_bind.go", (*Graph).declareContainersBinding},
	{"idents.go", (*Graph).declareIdents},
	{"register.go", (*Graph).declareRegister},
}

// declareConstants emits the enum types and the schema constants.
func (g *Graph) declareConstants(f *jen.File) {
	for _, e := range g.Enums {
		if e.Doc != "" {
			f.Comment(oneLine(e.Doc))
		} else {
			f.Commentf("%s is a generated enum.", e.Name)
		}
		f.Type().Id(e.Name).Int()
		f.Const().DefsFunc(func(gr *jen.Group) {
			for i, v := range e.Values {
				gr.Id(e.Consts[i]).Id(e.Name).Op("=").Lit(v.Value)
			}
		})
		seen := make(map[int]bool, len(e.Values))
		f.Comment("String returns the host spelling of the value.")
		f.Func().Params(jen.Id("v").Id(e.Name)).Id("String").Params().String().Block(
			jen.Switch(jen.Id("v")).BlockFunc(func(gr *jen.Group) {
				for i, v := range e.Values {
					if seen[v.Value] {
						continue
					}
					seen[v.Value] = true
					gr.Case(jen.Id(e.Consts[i])).Block(jen.Return(jen.Lit(e.Name + "." + v.Name)))
				}
			}),
			jen.Return(jen.Lit(e.Name+"(").Op("+").Qual("strconv", "Itoa").Call(jen.Int().Call(jen.Id("v"))).Op("+").Lit(")")),
		)
	}
	for _, k := range g.Constants {
		if k.Doc != "" {
			f.Comment(oneLine(k.Doc))
		}
		if isConst(k.Type) {
			f.Const().Id(k.GoName).Add(goType(k.Type)).Op("=").Add(k.Value)
		} else {
			f.Var().Id(k.GoName).Add(goType(k.Type)).Op("=").Add(k.Value)
		}
	}
}

// isConst reports if values of t can be Go constants.
func isConst(t *schema.TypeRef) bool {
	switch t.Kind {
	case schema.KindFloat, schema.KindStr, schema.KindInt, schema.KindUInt32, schema.KindUInt64, schema.KindBool, schema.KindEnum:
		return true
	}
	return false
}

// hostConstant converts a constant to the value the host evaluator
// produces for the same literal: integers as int64 or uint64.
func hostConstant(k *Constant) jen.Code {
	switch k.Type.Kind {
	case schema.KindInt:
		return jen.Int64().Call(jen.Id(k.GoName))
	case schema.KindUInt32, schema.KindUInt64:
		return jen.Uint64().Call(jen.Id(k.GoName))
	}
	return jen.Id(k.GoName)
}

func (g *Graph) declareConstantsBinding(f *jen.File) {
	body := []jen.Code{}
	if len(g.Enums) > 0 {
		body = append(body, jen.For(jen.List(jen.Id("_"), jen.Id("e")).Op(":=").Range().Index().Op("*").Qual(RuntimePkg, "EnumBinding").ValuesFunc(func(gr *jen.Group) {
			for _, e := range g.Enums {
				gr.Qual(RuntimePkg, "NewEnum").CallFunc(func(args *jen.Group) {
					args.Lit(e.Name)
					for i, v := range e.Values {
						args.Qual(RuntimePkg, "EnumMember").Values(jen.Dict{
							jen.Id("Name"):  jen.Lit(v.Name),
							jen.Id("Value"): jen.Id(e.Consts[i]),
						})
					}
				})
			}
		})).Block(
			jen.If(jen.Err().Op(":=").Id("r").Dot("RegisterEnum").Call(jen.Id("e")), jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Err())),
		))
	}
	for _, k := range g.Constants {
		body = append(body, jen.If(
			jen.Err().Op(":=").Id("r").Dot("RegisterConstant").Call(jen.Id(g.Names.Ident(k.Name)), hostConstant(k)),
			jen.Err().Op("!=").Nil(),
		).Block(jen.Return(jen.Err())))
	}
	body = append(body, jen.Return(jen.Nil()))
	f.Comment("registerConstants adds the enums and constants to r.")
	f.Func().Id("registerConstants").Params(jen.Id("r").Op("*").Qual(RuntimePkg, "Registry")).Error().Block(body...)
}

// declareContainers emits one opaque slice type per distinct List.
func (g *Graph) declareContainers(f *jen.File) {
	for _, k := range g.Containers {
		f.Commentf("%s is the opaque container of %s.", k.Name, k.Type)
		f.Type().Id(k.Name).Index().Add(goType(k.Elem()))
	}
}

func (g *Graph) declareContainersBinding(f *jen.File) {
	body := []jen.Code{}
	if len(g.Containers) > 0 {
		body = append(body, jen.For(jen.List(jen.Id("_"), jen.Id("c")).Op(":=").Range().Index().Op("*").Qual(RuntimePkg, "ContainerBinding").ValuesFunc(func(gr *jen.Group) {
			for _, k := range g.Containers {
				numeric := "NumericNone"
				switch k.Elem().Kind {
				case schema.KindFloat:
					numeric = "NumericFloat"
				case schema.KindInt:
					numeric = "NumericInt"
				}
				gr.Qual(RuntimePkg, "NewContainer").Types(jen.Id(k.Name)).Call(jen.Lit(k.Name), jen.Qual(RuntimePkg, numeric))
			}
		})).Block(
			jen.If(jen.Err().Op(":=").Id("r").Dot("RegisterContainer").Call(jen.Id("c")), jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Err())),
		))
	}
	body = append(body, jen.Return(jen.Nil()))
	f.Comment("registerContainers adds the opaque containers to r. Host lists and tuples")
	f.Comment("convert to every container; numeric arrays convert to Float and Int ones.")
	f.Func().Id("registerContainers").Params(jen.Id("r").Op("*").Qual(RuntimePkg, "Registry")).Error().Block(body...)
}

// declareIdents emits the identifier table.
func (g *Graph) declareIdents(f *jen.File) {
	if g.Names.Len() == 0 {
		return
	}
	f.Comment("Identifier table of every class, attribute, method, parameter, enum,")
	f.Comment("enum value and constant name.")
	f.Const().DefsFunc(func(gr *jen.Group) {
		for _, e := range g.Names.Entries() {
			gr.Id(e.Ident).Op("=").Lit(e.Name)
		}
	})
}

func (g *Graph) declareRegister(f *jen.File) {
	f.Comment("Register adds every binding of the package to r.")
	f.Func().Id("Register").Params(jen.Id("r").Op("*").Qual(RuntimePkg, "Registry")).Error().Block(
		jen.For(jen.List(jen.Id("_"), jen.Id("fn")).Op(":=").Range().Index().Func().Params(jen.Op("*").Qual(RuntimePkg, "Registry")).Error().ValuesFunc(func(gr *jen.Group) {
			gr.Id("registerConstants")
			gr.Id("registerContainers")
			for _, c := range g.Classes {
				gr.Id(c.RegisterName())
			}
		})).Block(
			jen.If(jen.Err().Op(":=").Id("fn").Call(jen.Id("r")), jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Err())),
		),
		jen.Return(jen.Nil()),
	)
	f.Comment("NewRegistry returns a registry holding every binding of the package.")
	f.Func().Id("NewRegistry").Params().Params(jen.Op("*").Qual(RuntimePkg, "Registry"), jen.Error()).Block(
		jen.Id("r").Op(":=").Qual(RuntimePkg, "NewRegistry").Call(),
		jen.If(jen.Err().Op(":=").Id("Register").Call(jen.Id("r")), jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Nil(), jen.Err())),
		jen.Return(jen.Id("r"), jen.Nil()),
	)
}
