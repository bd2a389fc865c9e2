package gen

import (
	"bytes"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"github.com/syssam/classgen/schema"
)

var (
	pyiFuncs = template.FuncMap{"join": strings.Join}

	classPyi = template.Must(template.New("class.pyi").Funcs(pyiFuncs).Parse(`# {{ .Header }}
from __future__ import annotations

from typing import Callable, Optional
{{ with .Root }}
from . import {{ join . ", " }}
{{- end }}
{{- range .Classes }}
from .{{ .Module }} import {{ .Name }}
{{- end }}


class {{ .Name }}{{ with .Super }}({{ . }}){{ end }}:
{{- with .Doc }}
    """{{ . }}"""
{{- end }}

    def __init__(self{{ if .Init }}, *{{ range .Init }}, {{ . }}{{ end }}{{ end }}) -> None: ...
{{- range .Attrs }}
    {{ . }}
{{- end }}
{{- range .Methods }}
    def {{ . }}: ...
{{- end }}
`))

	initPyi = template.Must(template.New("__init__.pyi").Funcs(pyiFuncs).Parse(`# {{ .Header }}
from __future__ import annotations

from enum import IntEnum
from typing import Callable, Iterable, Optional
{{ range .Classes }}
from .{{ .Module }} import {{ .Name }} as {{ .Name }}
{{- end }}
{{- range .Enums }}


class {{ .Name }}(IntEnum):
{{- range .Values }}
    {{ .Name }} = {{ .Value }}
{{- end }}
{{- end }}
{{- range .Containers }}


class {{ .Name }}:
    def __init__(self, items: Iterable[{{ .Elem }}] = ...) -> None: ...
    def __len__(self) -> int: ...
    def __getitem__(self, index: int) -> {{ .Elem }}: ...
    def __setitem__(self, index: int, value: {{ .Elem }}) -> None: ...
    def append(self, value: {{ .Elem }}) -> None: ...
{{- end }}
{{ range .Constants }}
{{ . }}
{{- end }}
`))
)

type pyiImport struct {
	Module, Name string
}

// pyiPath returns the type stub path of a module.
func (g *Graph) pyiPath(module string) string {
	return filepath.Join(StubsDir, g.StubPackage, module+".pyi")
}

// renderPyi renders the type stub of c. Included classes are imported
// from their modules; forward declared ones are written as quoted
// references.
func (g *Graph) renderPyi(c *Class) ([]byte, error) {
	forward := func(name string) bool {
		_, ok := slices.BinarySearch(c.Forward, name)
		return ok
	}
	data := struct {
		Header, Name, Super, Doc string
		Root                     []string
		Classes                  []pyiImport
		Init, Attrs, Methods     []string
	}{Header: g.Header, Name: c.Name, Super: c.Super, Doc: c.Doc}

	root := make(map[string]struct{})
	for _, name := range c.Includes {
		if _, ok := g.enums[name]; ok {
			root[name] = struct{}{}
			continue
		}
		data.Classes = append(data.Classes, pyiImport{Module: rules.Underscore(name), Name: name})
	}
	signatures(c, func(t *schema.TypeRef) {
		t.Walk(func(n *schema.TypeRef) {
			if n.IsList() {
				root[ContainerName(n)] = struct{}{}
			}
		})
	})
	for name := range root {
		data.Root = append(data.Root, name)
	}
	slices.Sort(data.Root)

	for _, a := range c.CtorAttributes() {
		typ := hostType(a.Type, forward)
		arg := a.Name + ": " + typ
		if !a.Binding().Required {
			arg += " = ..."
		}
		data.Init = append(data.Init, arg)
		data.Attrs = append(data.Attrs, a.Name+": "+typ)
	}
	for _, m := range c.Exposed {
		ps := []string{"self"}
		for _, p := range m.Params {
			arg := p.Name + ": " + hostType(p.Type, forward)
			if !p.Required() {
				arg += " = ..."
			}
			ps = append(ps, arg)
		}
		ret := "None"
		if m.Result != nil {
			ret = hostType(m.Result.Type, forward)
		}
		data.Methods = append(data.Methods, m.Name+"("+strings.Join(ps, ", ")+") -> "+ret)
	}
	var buf bytes.Buffer
	if err := classPyi.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderInitPyi renders the aggregate type stub: class re-exports, enums,
// containers and constants.
func (g *Graph) renderInitPyi() ([]byte, error) {
	type container struct{ Name, Elem string }
	data := struct {
		Header     string
		Classes    []pyiImport
		Enums      []*Enum
		Containers []container
		Constants  []string
	}{Header: g.Header, Enums: g.Enums}
	for _, c := range g.Classes {
		data.Classes = append(data.Classes, pyiImport{Module: c.FileName(), Name: c.Name})
	}
	for _, k := range g.Containers {
		data.Containers = append(data.Containers, container{Name: k.Name, Elem: hostType(k.Elem(), nil)})
	}
	for _, k := range g.Constants {
		data.Constants = append(data.Constants, k.Name+": "+hostType(k.Type, nil))
	}
	var buf bytes.Buffer
	if err := initPyi.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
