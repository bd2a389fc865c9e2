package gen

import (
	"bytes"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/syssam/classgen/schema"
)

// stubTemplate renders the editable type of a class. The file is written
// once and owned by the user afterwards.
var stubTemplate = template.Must(template.New("stub").Parse(`package {{ .Package }}

import "{{ .Runtime }}"

// {{ .Class.Name }} {{ with .Class.Doc }}{{ . }}{{ else }}is the editable type of the {{ .Class.Name }} class.{{ end }}
// Generated storage and methods live in {{ .Class.BaseName }}.
type {{ .Class.Name }} struct {
	{{ .Class.BaseName }}
}

{{ range .Methods }}
// {{ .Name }} {{ with .Doc }}{{ . }}{{ else }}implements the {{ .Host }} method.{{ end }}
func (o *{{ $.Class.Name }}) {{ .Name }}({{ .Params }}){{ with .Result }} {{ . }}{{ end }} {
	panic("not implemented")
}
{{ end }}`))

type stubMethod struct {
	Name, Host, Doc, Params, Result string
}

// renderStub renders and formats the editable stub of c.
func (g *Graph) renderStub(c *Class) ([]byte, error) {
	data := struct {
		Package string
		Runtime string
		Class   *Class
		Methods []stubMethod
	}{Package: g.Package, Runtime: RuntimePkg, Class: c}
	for _, m := range c.OwnMethods() {
		sm := stubMethod{Name: m.GoName(), Host: m.Name, Doc: m.Doc}
		ps := make([]string, len(m.Params))
		for i, p := range m.Params {
			ps[i] = p.ArgName() + " " + typeText(p.Type)
		}
		sm.Params = strings.Join(ps, ", ")
		if m.Result != nil {
			sm.Result = typeText(m.Result.Type)
		}
		data.Methods = append(data.Methods, sm)
	}
	var buf bytes.Buffer
	if err := stubTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	// The runtime import is dropped again when no signature uses it.
	return imports.Process(c.FileName()+".go", buf.Bytes(), &imports.Options{Comments: true, TabIndent: true, TabWidth: 8})
}

// typeText returns the Go source text of t.
func typeText(t *schema.TypeRef) string {
	switch t.Kind {
	case schema.KindFloat:
		return "float64"
	case schema.KindStr:
		return "string"
	case schema.KindInt:
		return "int"
	case schema.KindUInt32:
		return "uint32"
	case schema.KindUInt64:
		return "uint64"
	case schema.KindBool:
		return "bool"
	case schema.KindVec2, schema.KindVec3, schema.KindIVec3:
		return "classgen." + t.Kind.String()
	case schema.KindList:
		return ContainerName(t)
	case schema.KindDict:
		return "map[" + typeText(t.Key) + "]" + typeText(t.Elem)
	case schema.KindFunc:
		return "func(" + typeText(t.Elem) + ")"
	case schema.KindObject:
		return "*" + t.Name
	default:
		return t.Name
	}
}
