package gen

import (
	"bytes"

	"github.com/dave/jennifer/jen"
)

// classEmitter renders the artifacts of one class. It walks the phases
// Header, Implementation and Binding in order; the first failing phase
// aborts the class and none of its artifacts is returned.
type classEmitter struct {
	g     *Graph
	c     *Class
	phase Phase
	file  string
	base  *jen.File
	files []*Artifact
}

func newClassEmitter(g *Graph, c *Class) *classEmitter {
	return &classEmitter{g: g, c: c}
}

// run emits every artifact of the class.
func (e *classEmitter) run() ([]*Artifact, error) {
	for e.phase = PhaseHeader; e.phase != PhaseDone; e.phase = e.phase.next() {
		e.g.Logger.Debug("emit class", "class", e.c.Name, "phase", e.phase)
		var err error
		switch e.phase {
		case PhaseHeader:
			err = e.header()
		case PhaseImplementation:
			err = e.implementation()
		case PhaseBinding:
			err = e.binding()
		}
		if err != nil {
			return nil, NewGenerationError(e.phase, e.c.Name, e.file, err)
		}
	}
	return e.files, nil
}

// header declares the storage struct, the method interface, the editable
// stub, the type stub and the documentation entry.
func (e *classEmitter) header() error {
	e.file = e.c.FileName() + "_base.go"
	e.base = e.g.newFile()
	e.declareBase(e.base)
	e.file = e.c.FileName() + ".go"
	stub, err := e.g.renderStub(e.c)
	if err != nil {
		return err
	}
	e.add(e.file, stub, CreateOnly)
	if e.g.enabled(FeatureStubs) {
		e.file = e.g.pyiPath(e.c.FileName())
		data, err := e.g.renderPyi(e.c)
		if err != nil {
			return err
		}
		e.add(e.file, data, Overwrite)
	}
	if e.g.enabled(FeatureDocs) {
		e.file = docPath(e.c.FileName())
		data, err := e.g.renderDoc(e.c)
		if err != nil {
			return err
		}
		e.add(e.file, data, Overwrite)
	}
	return nil
}

// implementation adds the generated methods to the base unit and renders
// it.
func (e *classEmitter) implementation() error {
	e.file = e.c.FileName() + "_base.go"
	if err := e.defineMethods(e.base); err != nil {
		return err
	}
	data, err := render(e.base)
	if err != nil {
		return err
	}
	e.add(e.file, data, Overwrite)
	return nil
}

// binding renders the registration entry.
func (e *classEmitter) binding() error {
	e.file = e.c.FileName() + "_bind.go"
	f := e.g.newFile()
	e.g.declareBinding(f, e.c)
	data, err := render(f)
	if err != nil {
		return err
	}
	e.add(e.file, data, Overwrite)
	return nil
}

func (e *classEmitter) add(path string, data []byte, mode WriteMode) {
	e.files = append(e.files, &Artifact{Path: path, Data: data, Mode: mode})
}

// newFile returns a generated Go file with the configured header.
func (g *Graph) newFile() *jen.File {
	f := jen.NewFile(g.Package)
	f.HeaderComment(g.Header)
	f.ImportName(RuntimePkg, "classgen")
	return f
}

func render(f *jen.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
