package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/syssam/classgen/compiler/gen"
	"github.com/syssam/classgen/compiler/load"
)

var cmdGenerate = &cli.Command{
	Name:      "generate",
	Usage:     "generate the package of a schema",
	ArgsUsage: "<schema-file>",
	Flags:     genFlags,
	Action:    runGenerate,
}

var cmdCheck = &cli.Command{
	Name:      "check",
	Usage:     "validate a schema and render it without writing files",
	ArgsUsage: "<schema-file>",
	Flags:     genFlags,
	Action:    runCheck,
}

var cmdIdents = &cli.Command{
	Name:      "idents",
	Usage:     "print the identifier table of a schema",
	ArgsUsage: "<schema-file>",
	Flags:     genFlags,
	Action:    runIdents,
}

func runGenerate(cctx *cli.Context) error {
	logger := configLogger(cctx, cctx.App.ErrWriter)
	s, err := loadSettings(cctx, logger)
	if err != nil {
		return err
	}
	if !s.hasTarget {
		return gen.NewConfigError("Target", nil, "missing target directory; use --target or the config file")
	}
	m, err := load.LoadFile(s.schema)
	if err != nil {
		return err
	}
	stats, err := gen.Generate(cctx.Context, m, s.opts...)
	if err != nil {
		return err
	}
	fmt.Fprintf(cctx.App.Writer, "%d written, %d unchanged, %d skipped\n", stats.Written, stats.Unchanged, stats.Skipped)
	return nil
}

// graph loads the schema and builds its graph. Without a target the
// graph is built for a scratch directory that is never written.
func graph(cctx *cli.Context) (*gen.Graph, error) {
	logger := configLogger(cctx, cctx.App.ErrWriter)
	s, err := loadSettings(cctx, logger)
	if err != nil {
		return nil, err
	}
	opts := s.opts
	if !s.hasTarget {
		opts = append([]gen.Option{gen.WithTarget(filepath.Join(os.TempDir(), "classgen_check"))}, opts...)
	}
	cfg, err := gen.NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	m, err := load.LoadFile(s.schema)
	if err != nil {
		return nil, err
	}
	return gen.NewGraph(cfg, m)
}

func runCheck(cctx *cli.Context) error {
	g, err := graph(cctx)
	if err != nil {
		return err
	}
	out, err := g.Gen(cctx.Context)
	if err != nil {
		return err
	}
	fmt.Fprintf(cctx.App.Writer, "ok: %d classes, %d enums, %d constants, %d files\n",
		len(g.Classes), len(g.Enums), len(g.Constants), len(out.Files))
	return nil
}

func runIdents(cctx *cli.Context) error {
	g, err := graph(cctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cctx.App.Writer, 0, 4, 2, ' ', 0)
	for _, e := range g.Names.Entries() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.Ident, e.Name, strings.Join(e.Kinds, ","))
	}
	return w.Flush()
}
