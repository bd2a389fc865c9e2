// Package gen generates Go classes, host bindings, type stubs and
// documentation from a schema.Model.
//
// # Architecture
//
// The pipeline runs in two stages. The first one is sequential and ends
// with a frozen Graph:
//
//	schema.Model
//	        ↓
//	   Defaults, Bind, validation
//	        ↓
//	   Resolve (TargetType per TypeRef) and Flatten (per class)
//	        ↓
//	   ForwardDecls, Includes
//	        ↓
//	   ScanContainers, BuildNameTable, collision checks
//
// The second one emits every class in parallel over the frozen graph,
// then the package-wide artifacts:
//
//	Graph.Gen → Artifacts → Sink.Flush
//
// # Artifacts
//
// For a class Thing the emitter renders:
//
//   - thing_base.go: ThingBase storage, ThingMethods, constructors,
//     accessors, equality, rendering, copies and export
//   - thing.go: the editable stub, written only when absent
//   - thing_bind.go: registerThing, the host binding
//   - stubs/<pkg>/thing.pyi: the host type stub
//   - docs/thing.md: the documentation entry
//
// Package-wide it renders constants.go, constants_bind.go, containers.go,
// containers_bind.go, idents.go, register.go, the aggregate __init__.pyi
// and docs/index.md.
//
// # Error Handling
//
// The package uses structured error types:
//
//   - SchemaViolationError: a model that breaks a schema rule
//   - UnsupportedShapeError: a type shape with no emission rule
//   - NamingCollisionError: a generated identifier or path claimed twice
//   - ConfigError: invalid options
//   - GenerationError: a failed class or artifact, with phase context
//
// Example error handling:
//
//	if _, err := gen.Generate(ctx, model, gen.WithTarget("./out")); err != nil {
//	    if gen.IsSchemaViolation(err) {
//	        // Fix the schema
//	    }
//	    if gen.IsNamingCollision(err) {
//	        // Rename a class, member or constant
//	    }
//	}
//
// # Configuration
//
// Use functional options to configure generation:
//
//	cfg, err := gen.NewConfig(
//	    gen.WithTarget("./shapes"),
//	    gen.WithPackage("shapes"),
//	    gen.WithStubPackage("shapes"),
//	    gen.WithWorkers(4),
//	    gen.WithoutFeatures(gen.FeatureDocs),
//	)
package gen
