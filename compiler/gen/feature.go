package gen

import (
	"os"
	"path/filepath"
)

var (
	// FeatureStubs provides a feature-flag for the host type stubs.
	FeatureStubs = Feature{
		Name:        "stubs",
		Stage:       Stable,
		Default:     true,
		Description: "Stubs emits one .pyi type stub per class and an aggregate __init__.pyi",
		cleanup: func(c *Config) error {
			return os.RemoveAll(filepath.Join(c.Target, StubsDir))
		},
	}

	// FeatureDocs provides a feature-flag for the documentation entries.
	FeatureDocs = Feature{
		Name:        "docs",
		Stage:       Stable,
		Default:     true,
		Description: "Docs emits one Markdown entry per class and a documentation index",
		cleanup: func(c *Config) error {
			return os.RemoveAll(filepath.Join(c.Target, DocsDir))
		},
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureStubs,
		FeatureDocs,
	}
)

// FeatureStage describes the stage of the codegen feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development.
	Experimental

	// Alpha features are complete, but their output may still change.
	Alpha

	// Beta features are documented and their output is not expected to
	// change.
	Beta

	// Stable features are Beta features that were running for a while.
	Stable
)

// A Feature of the classgen codegen.
type Feature struct {
	// Name of the feature.
	Name string

	// Stage of the feature.
	Stage FeatureStage

	// Default values indicates if this feature is enabled by default.
	Default bool

	// A Description of this feature.
	Description string

	// cleanup removes the output of a disabled feature left by previous
	// runs.
	cleanup func(*Config) error
}

// featureByName returns the feature with the given name.
func featureByName(name string) (Feature, bool) {
	for _, f := range AllFeatures {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}

// cleanupFeatures removes the output of every disabled feature.
func cleanupFeatures(c *Config) error {
	for _, f := range AllFeatures {
		if f.cleanup == nil || c.enabled(f) {
			continue
		}
		if err := f.cleanup(c); err != nil {
			return err
		}
	}
	return nil
}
