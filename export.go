package classgen

import (
	"strconv"
	"strings"

	"github.com/go-openapi/inflect"
)

// ExportContext carries the state of one export pass. It maps every
// exported sub-object to the symbol it was bound to, so an object shared
// by several parents is constructed once and referenced by name after
// that. A context must not be shared between concurrent passes.
type ExportContext struct {
	symbols map[Class]string
	counts  map[string]int
	stmts   []string
}

// NewExportContext returns an empty export context.
func NewExportContext() *ExportContext {
	return &ExportContext{
		symbols: make(map[Class]string),
		counts:  make(map[string]int),
	}
}

// Ref returns the symbol bound to obj. On first use the object is exported
// and bound to a fresh symbol.
func (c *ExportContext) Ref(obj Class) string {
	if name, ok := c.symbols[obj]; ok {
		return name
	}
	expr := obj.ExportTo(c)
	name := c.symbol(inflect.Underscore(obj.ClassName()))
	c.symbols[obj] = name
	c.stmts = append(c.stmts, name+" = "+expr)
	return name
}

// BindList binds a rendered list literal to a fresh symbol derived from
// prefix and returns the symbol.
func (c *ExportContext) BindList(prefix, literal string) string {
	name := c.symbol(prefix)
	c.stmts = append(c.stmts, name+" = "+literal)
	return name
}

// Bound reports if obj was already exported in this pass.
func (c *ExportContext) Bound(obj Class) bool {
	_, ok := c.symbols[obj]
	return ok
}

// Statements returns the binding statements emitted so far.
func (c *ExportContext) Statements() []string {
	return c.stmts
}

// Script exports root and returns the complete reconstruction script: the
// binding statements of its sub-objects followed by the root call.
func (c *ExportContext) Script(root Class) string {
	expr := root.ExportTo(c)
	var b strings.Builder
	for _, s := range c.stmts {
		b.WriteString(s)
		b.WriteByte('\n')
	}
	b.WriteString(expr)
	b.WriteByte('\n')
	return b.String()
}

func (c *ExportContext) symbol(prefix string) string {
	c.counts[prefix]++
	return prefix + "_" + strconv.Itoa(c.counts[prefix])
}

// ExportRef renders a reference to obj within a list or dict literal:
// None when unset, else the symbol bound by ctx.Ref.
func ExportRef[P interface {
	comparable
	Class
}](ctx *ExportContext, obj P) string {
	var unset P
	if obj == unset {
		return "None"
	}
	return ctx.Ref(obj)
}

// Export runs a fresh export pass over root.
func Export(root Class) string {
	return NewExportContext().Script(root)
}

// ExportCall renders a host constructor call from already rendered keyword
// arguments, in order.
func ExportCall(class string, kwargs []string) string {
	return class + "(" + strings.Join(kwargs, ", ") + ")"
}
