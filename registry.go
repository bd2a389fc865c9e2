package classgen

import (
	"maps"
	"reflect"
	"slices"
	"sync"
)

// PassMode is how a binding parameter is passed.
type PassMode uint8

// Pass modes.
const (
	// ByValue parameters accept None for nullable references and widen
	// host integers to floats.
	ByValue PassMode = iota
	// ByReference parameters never accept None and never convert between
	// numeric kinds.
	ByReference
)

// String implements the fmt.Stringer interface.
func (m PassMode) String() string {
	if m == ByReference {
		return "ref"
	}
	return "value"
}

// ClassKind tells how a class is exposed to the host.
type ClassKind uint8

// Class kinds.
const (
	KindClass ClassKind = iota
	KindSubmodule
)

type (
	// Param describes one constructor or method parameter.
	Param struct {
		Name     string
		Type     string // host type, for messages
		Mode     PassMode
		Nullable bool
		Required bool
	}

	// Method is a method exposed to the host.
	Method struct {
		Name   string
		Params []Param
		Const  bool
		Call   func(self any, args *Args) (any, error)
	}

	// ClassBinding registers a generated class.
	ClassBinding struct {
		Name    string
		Kind    ClassKind
		GoType  reflect.Type
		Params  []Param
		New     func(args *Args) (any, error)
		Methods []Method
	}

	// EnumBinding registers a generated enum.
	EnumBinding struct {
		Name    string
		Members []EnumMember
	}

	// EnumMember is one enum value; Value holds the typed Go constant.
	EnumMember struct {
		Name  string
		Value any
	}

	// ContainerBinding registers an opaque list container, so the host
	// sees a distinct mutable type instead of a converted builtin list.
	ContainerBinding struct {
		Name    string
		Type    reflect.Type
		Elem    reflect.Type
		Numeric NumericKind
	}
)

// NewEnum returns an enum binding.
func NewEnum(name string, members ...EnumMember) *EnumBinding {
	return &EnumBinding{Name: name, Members: members}
}

// Member returns the enum member named name.
func (e *EnumBinding) Member(name string) (EnumMember, bool) {
	for _, m := range e.Members {
		if m.Name == name {
			return m, true
		}
	}
	return EnumMember{}, false
}

// NewContainer returns the binding of the container type S. Host lists
// and tuples always convert; numeric arrays convert when numeric is not
// NumericNone.
func NewContainer[S ~[]E, E any](name string, numeric NumericKind) *ContainerBinding {
	return &ContainerBinding{
		Name:    name,
		Type:    reflect.TypeFor[S](),
		Elem:    reflect.TypeFor[E](),
		Numeric: numeric,
	}
}

// Method returns the exposed method named name.
func (b *ClassBinding) Method(name string) (*Method, bool) {
	for i := range b.Methods {
		if b.Methods[i].Name == name {
			return &b.Methods[i], true
		}
	}
	return nil, false
}

// Registry holds every binding of a generated package. Generated code
// fills it through the package's Register function.
type Registry struct {
	mu         sync.RWMutex
	classes    map[string]*ClassBinding
	byType     map[reflect.Type]*ClassBinding
	enums      map[string]*EnumBinding
	containers map[string]*ContainerBinding
	byElem     map[reflect.Type]*ContainerBinding
	constants  map[string]any
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		classes:    make(map[string]*ClassBinding),
		byType:     make(map[reflect.Type]*ClassBinding),
		enums:      make(map[string]*EnumBinding),
		containers: make(map[string]*ContainerBinding),
		byElem:     make(map[reflect.Type]*ContainerBinding),
		constants:  make(map[string]any),
	}
}

// RegisterClass adds a class binding.
func (r *Registry) RegisterClass(b *ClassBinding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.classes[b.Name]; ok {
		return &AlreadyRegisteredError{kind: "class", name: b.Name}
	}
	r.classes[b.Name] = b
	if b.GoType != nil {
		r.byType[b.GoType] = b
	}
	return nil
}

// RegisterEnum adds an enum binding.
func (r *Registry) RegisterEnum(e *EnumBinding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.enums[e.Name]; ok {
		return &AlreadyRegisteredError{kind: "enum", name: e.Name}
	}
	r.enums[e.Name] = e
	return nil
}

// RegisterContainer adds a container binding.
func (r *Registry) RegisterContainer(c *ContainerBinding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.containers[c.Name]; ok {
		return &AlreadyRegisteredError{kind: "container", name: c.Name}
	}
	r.containers[c.Name] = c
	r.byElem[c.Type] = c
	return nil
}

// RegisterConstant adds a named constant.
func (r *Registry) RegisterConstant(name string, v any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.constants[name]; ok {
		return &AlreadyRegisteredError{kind: "constant", name: name}
	}
	r.constants[name] = v
	return nil
}

// Class returns the class binding named name.
func (r *Registry) Class(name string) (*ClassBinding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if b, ok := r.classes[name]; ok {
		return b, nil
	}
	return nil, NewNotRegisteredError("class", name)
}

// Enum returns the enum binding named name.
func (r *Registry) Enum(name string) (*EnumBinding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.enums[name]; ok {
		return e, nil
	}
	return nil, NewNotRegisteredError("enum", name)
}

// Container returns the container binding named name.
func (r *Registry) Container(name string) (*ContainerBinding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.containers[name]; ok {
		return c, nil
	}
	return nil, NewNotRegisteredError("container", name)
}

// Constant returns the constant named name.
func (r *Registry) Constant(name string) (any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if v, ok := r.constants[name]; ok {
		return v, nil
	}
	return nil, NewNotRegisteredError("constant", name)
}

// ClassNames returns the registered class names, sorted.
func (r *Registry) ClassNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.classes))
}

// ContainerNames returns the registered container names, sorted.
func (r *Registry) ContainerNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.containers))
}

func (r *Registry) containerFor(t reflect.Type) *ContainerBinding {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byElem[t]
}

func (r *Registry) classFor(t reflect.Type) *ClassBinding {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byType[t]
}

// New constructs an instance of the named class from host arguments.
func (r *Registry) New(class string, pos []any, kw map[string]any) (any, error) {
	b, err := r.Class(class)
	if err != nil {
		return nil, err
	}
	if b.New == nil {
		return nil, NewArgumentError(class, "", "class has no constructor", nil)
	}
	args, err := NewArgs(r, class, b.Params, pos, kw)
	if err != nil {
		return nil, err
	}
	return b.New(args)
}

// Invoke calls an exposed method on self.
func (r *Registry) Invoke(self any, method string, pos []any, kw map[string]any) (any, error) {
	b := r.classFor(reflect.TypeOf(self))
	if b == nil {
		return nil, NewNotRegisteredError("class", hostTypeName(self))
	}
	m, ok := b.Method(method)
	if !ok {
		return nil, NewNotRegisteredError("method", b.Name+"."+method)
	}
	args, err := NewArgs(r, b.Name+"."+method, m.Params, pos, kw)
	if err != nil {
		return nil, err
	}
	return m.Call(self, args)
}
