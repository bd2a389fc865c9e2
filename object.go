package classgen

// Class is implemented by every generated class.
type Class interface {
	// ClassName returns the schema name of the class.
	ClassName() string
	// StringIndent renders the object at the given indentation depth.
	StringIndent(indent int) string
	// ExportTo renders the object as a host-language constructor call.
	ExportTo(ctx *ExportContext) string
}

// Object is embedded by every generated root class. It carries the
// identity attribute "name", which generated classes never declare
// accessors for.
type Object struct {
	name string
}

// Name returns the identity name of the object.
func (o *Object) Name() string {
	return o.name
}

// SetName sets the identity name of the object.
func (o *Object) SetName(name string) {
	o.name = name
}
