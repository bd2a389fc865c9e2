package gen

import (
	"context"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/classgen/schema"
)

// WriteMode tells the sink how to treat an existing file.
type WriteMode uint8

const (
	// Overwrite replaces the file on every run.
	Overwrite WriteMode = iota
	// CreateOnly writes the file only if it does not exist yet. Editable
	// stubs use it, so hand-written code is never lost.
	CreateOnly
)

// String implements fmt.Stringer.
func (m WriteMode) String() string {
	if m == CreateOnly {
		return "create-only"
	}
	return "overwrite"
}

// Artifact is one rendered output file.
type Artifact struct {
	// Path is relative to the target directory.
	Path string
	Data []byte
	Mode WriteMode
}

// Artifacts holds the output of one run: the per-class artifacts in class
// order, then the global ones.
type Artifacts struct {
	Files []*Artifact
}

// Find returns the artifact with the given slash-separated path.
func (a *Artifacts) Find(path string) (*Artifact, bool) {
	path = filepath.FromSlash(path)
	for _, f := range a.Files {
		if f.Path == path {
			return f, true
		}
	}
	return nil, false
}

// Paths returns the artifact paths in output order.
func (a *Artifacts) Paths() []string {
	paths := make([]string, len(a.Files))
	for i, f := range a.Files {
		paths[i] = f.Path
	}
	return paths
}

// Gen renders every artifact of the graph in memory. Classes are emitted
// in parallel, bounded by Config.Workers; each one fills its own slot so
// the output order does not depend on scheduling. The first failing class
// cancels the remaining ones and no artifact is returned.
func (g *Graph) Gen(ctx context.Context) (*Artifacts, error) {
	slots := make([][]*Artifact, len(g.Classes))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.Workers)
	for i, c := range g.Classes {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			files, err := newClassEmitter(g, c).run()
			if err != nil {
				return err
			}
			slots[i] = files
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	out := &Artifacts{}
	for _, files := range slots {
		out.Files = append(out.Files, files...)
	}
	files, err := g.globals()
	if err != nil {
		return nil, err
	}
	out.Files = append(out.Files, files...)
	g.Logger.Info("generated artifacts",
		"package", g.Package,
		"classes", len(g.Classes),
		"enums", len(g.Enums),
		"constants", len(g.Constants),
		"containers", len(g.Containers),
		"files", len(out.Files),
	)
	return out, nil
}

// globals renders the package-wide artifacts.
func (g *Graph) globals() ([]*Artifact, error) {
	var files []*Artifact
	for _, a := range globalArtifacts {
		f := g.newFile()
		a.gen(g, f)
		data, err := render(f)
		if err != nil {
			return nil, NewGenerationError(PhaseImplementation, "", a.path, err)
		}
		files = append(files, &Artifact{Path: a.path, Data: data})
	}
	if g.enabled(FeatureStubs) {
		path := g.pyiPath("__init__")
		data, err := g.renderInitPyi()
		if err != nil {
			return nil, NewGenerationError(PhaseHeader, "", path, err)
		}
		files = append(files, &Artifact{Path: path, Data: data})
	}
	if g.enabled(FeatureDocs) {
		path := docPath(docIndex)
		data, err := g.renderDocIndex()
		if err != nil {
			return nil, NewGenerationError(PhaseHeader, "", path, err)
		}
		files = append(files, &Artifact{Path: path, Data: data})
	}
	return files, nil
}

// Render validates the model and renders its artifacts without writing
// them.
func Render(ctx context.Context, m *schema.Model, opts ...Option) (*Artifacts, error) {
	c, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	g, err := NewGraph(c, m)
	if err != nil {
		return nil, err
	}
	return g.Gen(ctx)
}

// Generate renders the artifacts of the model and writes them to the
// configured target. Nothing is written when rendering fails.
func Generate(ctx context.Context, m *schema.Model, opts ...Option) (*FlushStats, error) {
	c, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	g, err := NewGraph(c, m)
	if err != nil {
		return nil, err
	}
	out, err := g.Gen(ctx)
	if err != nil {
		return nil, err
	}
	return NewSink(c).Flush(ctx, out)
}
