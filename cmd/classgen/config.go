package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/syssam/classgen/compiler/gen"
)

const defaultConfigFile = "classgen.yaml"

// fileConfig is the content of classgen.yaml. Relative paths are taken
// from the directory of the file.
type fileConfig struct {
	Schema      string   `yaml:"schema"`
	Target      string   `yaml:"target"`
	Package     string   `yaml:"package"`
	Header      string   `yaml:"header"`
	Workers     int      `yaml:"workers"`
	StubPackage string   `yaml:"stub_package"`
	IdentPrefix string   `yaml:"ident_prefix"`
	Disable     []string `yaml:"disable"`
}

// readConfig reads the config file at path. An empty path, or a missing
// file at the default path, is an empty config.
func readConfig(path string, explicit bool) (*fileConfig, error) {
	cfg := &fileConfig{}
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		return cfg, nil
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	for _, p := range []*string{&cfg.Schema, &cfg.Target} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
	return cfg, nil
}

var genFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "target",
		Usage: "output directory of the generated package",
	},
	&cli.StringFlag{
		Name:  "package",
		Usage: "Go package name; defaults to the target base name",
	},
	&cli.StringFlag{
		Name:  "header",
		Usage: "header comment of generated Go files",
	},
	&cli.IntFlag{
		Name:  "workers",
		Usage: "number of classes emitted in parallel",
	},
	&cli.StringFlag{
		Name:  "stub-package",
		Usage: "host package name of the type stubs",
	},
	&cli.StringFlag{
		Name:  "ident-prefix",
		Usage: "prefix of the identifier table constants",
	},
	&cli.StringSliceFlag{
		Name:  "disable",
		Usage: "features to turn off (stubs, docs)",
	},
}

// settings is the merged configuration of one command run.
type settings struct {
	schema    string
	hasTarget bool
	opts      []gen.Option
}

// loadSettings merges the config file and the command flags. The schema
// path is the first argument, or the config's schema entry.
func loadSettings(cctx *cli.Context, logger *slog.Logger) (*settings, error) {
	fc, err := readConfig(cctx.String("config"), cctx.IsSet("config"))
	if err != nil {
		return nil, err
	}
	str := func(flag, file string) string {
		if cctx.IsSet(flag) {
			return cctx.String(flag)
		}
		return file
	}
	s := &settings{schema: fc.Schema}
	if cctx.Args().Present() {
		s.schema = cctx.Args().First()
	}
	if s.schema == "" {
		return nil, fmt.Errorf("missing schema file")
	}
	var opts []gen.Option
	if v := str("target", fc.Target); v != "" {
		opts = append(opts, gen.WithTarget(v))
		s.hasTarget = true
	}
	if v := str("package", fc.Package); v != "" {
		opts = append(opts, gen.WithPackage(v))
	}
	if v := str("header", fc.Header); v != "" {
		opts = append(opts, gen.WithHeader(v))
	}
	workers := fc.Workers
	if cctx.IsSet("workers") {
		workers = cctx.Int("workers")
	}
	if workers != 0 {
		opts = append(opts, gen.WithWorkers(workers))
	}
	if v := str("stub-package", fc.StubPackage); v != "" {
		opts = append(opts, gen.WithStubPackage(v))
	}
	if v := str("ident-prefix", fc.IdentPrefix); v != "" {
		opts = append(opts, gen.WithIdentPrefix(v))
	}
	disabled := fc.Disable
	if cctx.IsSet("disable") {
		disabled = cctx.StringSlice("disable")
	}
	features := make([]gen.Feature, 0, len(disabled))
	for _, name := range disabled {
		f, ok := lookupFeature(name)
		if !ok {
			return nil, gen.NewConfigError("Feature", name, "unknown feature")
		}
		features = append(features, f)
	}
	if len(features) > 0 {
		opts = append(opts, gen.WithoutFeatures(features...))
	}
	s.opts = append(opts, gen.WithLogger(logger))
	return s, nil
}

func lookupFeature(name string) (gen.Feature, bool) {
	for _, f := range gen.AllFeatures {
		if f.Name == name {
			return f, true
		}
	}
	return gen.Feature{}, false
}
