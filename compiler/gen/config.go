package gen

import (
	"log/slog"
	"slices"
)

// RuntimePkg is the import path of the runtime package used by generated
// code.
const RuntimePkg = "github.com/syssam/classgen"

// Defaults of the generator configuration.
const (
	DefaultHeader      = "Code generated by classgen. DO NOT EDIT."
	DefaultIdentPrefix = "Ident"
)

// Output subdirectories of the target.
const (
	StubsDir = "stubs"
	DocsDir  = "docs"
)

// Config holds the global configuration of one generation run.
type Config struct {
	// Target is the output directory.
	Target string
	// Package is the Go package name of the generated code.
	Package string
	// Header is the comment written at the top of generated Go files.
	Header string
	// Workers bounds the number of classes emitted in parallel.
	Workers int
	// StubPackage is the host package name of the type stubs.
	StubPackage string
	// IdentPrefix is the reserved prefix of identifier table entries.
	IdentPrefix string
	// Features are the explicitly enabled features.
	Features []Feature
	// Disabled names default features turned off.
	Disabled []string
	// Logger reports progress; defaults to slog.Default().
	Logger *slog.Logger
}

// FeatureEnabled reports if the given feature name is enabled, either
// explicitly or by default.
func (c *Config) FeatureEnabled(name string) (bool, error) {
	f, ok := featureByName(name)
	if !ok {
		return false, NewConfigError("Feature", name, "unknown feature")
	}
	if slices.Contains(c.Disabled, name) {
		return false, nil
	}
	if f.Default {
		return true, nil
	}
	return slices.ContainsFunc(c.Features, func(e Feature) bool { return e.Name == name }), nil
}

func (c *Config) enabled(f Feature) bool {
	ok, _ := c.FeatureEnabled(f.Name)
	return ok
}
