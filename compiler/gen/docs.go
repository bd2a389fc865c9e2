package gen

import (
	"cmp"
	"path/filepath"
	"slices"
	"strings"

	"github.com/flosch/pongo2/v6"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	classDoc = pongo2.Must(pongo2.FromString(`{% autoescape off %}<!-- {{ header }} -->

# {{ class.Name }}
{% if category %}
*{{ category }}*
{% endif %}{% if class.Doc %}
{{ class.Doc }}
{% endif %}
{% if submodule %}Submodule{% else %}Class{% endif %}{% if class.Super %}, inherits from [{{ class.Super }}]({{ super }}){% endif %}{% if capabilities %}, capabilities: {{ capabilities }}{% endif %}.
{% if attrs %}
## Attributes

| Name | Type | Default | Description |
|---|---|---|---|
{% for a in attrs %}| ` + "`{{ a.Name }}`" + ` | ` + "`{{ a.Type }}`" + ` | {{ a.Default }} | {{ a.Doc }} |
{% endfor %}{% endif %}{% if methods %}
## Methods

{% for m in methods %}- ` + "`{{ m.Signature }}`" + `{% if m.Doc %}: {{ m.Doc }}{% endif %}
{% endfor %}{% endif %}{% if related %}
## Related types

{% for r in related %}- {{ r }}
{% endfor %}{% endif %}{% endautoescape %}`))

	indexDoc = pongo2.Must(pongo2.FromString(`{% autoescape off %}<!-- {{ header }} -->

# {{ package }}
{% for s in sections %}
## {{ s.Title }}

{% for c in s.Classes %}- [{{ c.Name }}]({{ c.Link }}){% if c.Doc %}: {{ c.Doc }}{% endif %}
{% endfor %}{% endfor %}{% if enums %}
## Enums

{% for e in enums %}- ` + "`{{ e }}`" + `
{% endfor %}{% endif %}{% if constants %}
## Constants

{% for k in constants %}- ` + "`{{ k }}`" + `
{% endfor %}{% endif %}{% endautoescape %}`))

	titleCase = cases.Title(language.English)
)

const (
	uncategorized = "Other"
	docIndex      = "index"
)

type (
	docAttr struct {
		Name, Type, Default, Doc string
	}
	docMethod struct {
		Signature, Doc string
	}
	docLink struct {
		Name, Link, Doc string
	}
	docSection struct {
		Title   string
		Classes []docLink
	}
)

// category returns the documentation title of the class category.
func category(c *Class) string {
	if c.Category == "" {
		return uncategorized
	}
	return titleCase.String(strings.ReplaceAll(c.Category, "_", " "))
}

// renderDoc renders the documentation entry of c.
func (g *Graph) renderDoc(c *Class) ([]byte, error) {
	var attrs []docAttr
	for _, a := range c.Attributes {
		d := docAttr{Name: a.Name, Type: a.Type.String(), Default: literalText(a.Default), Doc: a.Doc}
		switch {
		case a.ExcludedFromCtor:
			d.Doc = strings.TrimSpace("(shadowed) " + d.Doc)
		case a.Inherited:
			d.Doc = strings.TrimSpace("(from " + a.Owner + ") " + d.Doc)
		}
		attrs = append(attrs, d)
	}
	var methods []docMethod
	for _, m := range c.Exposed {
		ps := make([]string, len(m.Params))
		for i, p := range m.Params {
			ps[i] = p.Name + ": " + p.Type.String()
			if p.Default != nil {
				ps[i] += " = " + literalText(p.Default)
			}
		}
		sig := m.Name + "(" + strings.Join(ps, ", ") + ")"
		if m.Return != nil {
			sig += " -> " + m.Return.String()
		}
		if m.Const {
			sig += " const"
		}
		methods = append(methods, docMethod{Signature: sig, Doc: m.Doc})
	}
	var related []string
	for _, name := range c.Includes {
		if rc, ok := g.classes[name]; ok {
			related = append(related, "["+name+"]("+rc.FileName()+".md)")
		} else {
			related = append(related, "`"+name+"`")
		}
	}
	super := ""
	if sc, ok := g.classes[c.Super]; ok {
		super = sc.FileName() + ".md"
	}
	title := ""
	if c.Category != "" {
		title = category(c)
	}
	return classDoc.ExecuteBytes(pongo2.Context{
		"header":       g.Header,
		"class":        c,
		"category":     title,
		"submodule":    c.IsSubmodule(),
		"capabilities": strings.Join(c.Capabilities, ", "),
		"super":        super,
		"attrs":        attrs,
		"methods":      methods,
		"related":      related,
	})
}

// renderDocIndex renders the documentation index, one section per class
// category.
func (g *Graph) renderDocIndex() ([]byte, error) {
	bycat := make(map[string][]docLink)
	for _, c := range g.Classes {
		t := category(c)
		bycat[t] = append(bycat[t], docLink{Name: c.Name, Link: c.FileName() + ".md", Doc: c.Doc})
	}
	var sections []docSection
	for t, links := range bycat {
		sections = append(sections, docSection{Title: t, Classes: links})
	}
	slices.SortFunc(sections, func(a, b docSection) int {
		// Uncategorized classes come last.
		if (a.Title == uncategorized) != (b.Title == uncategorized) {
			if a.Title == uncategorized {
				return 1
			}
			return -1
		}
		return cmp.Compare(a.Title, b.Title)
	})
	enums := make([]string, len(g.Enums))
	for i, e := range g.Enums {
		names := make([]string, len(e.Values))
		for j, v := range e.Values {
			names[j] = v.Name
		}
		enums[i] = e.Name + "{" + strings.Join(names, ", ") + "}"
	}
	constants := make([]string, len(g.Constants))
	for i, k := range g.Constants {
		constants[i] = k.Name + ": " + k.Type.String() + " = " + k.Literal
	}
	return indexDoc.ExecuteBytes(pongo2.Context{
		"header":    g.Header,
		"package":   g.Package,
		"sections":  sections,
		"enums":     enums,
		"constants": constants,
	})
}

// docPath returns the documentation path of a class file or the index.
func docPath(name string) string {
	return filepath.Join(DocsDir, name+".md")
}
