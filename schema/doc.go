// Package schema holds the declarative model consumed by the class
// generator: classes with typed attributes and methods, enums and global
// constants, plus the closed TypeRef algebra that types them.
//
// A model is usually produced by the compiler/load package from a schema
// file, but can be declared in code:
//
//	m := schema.NewModel(
//	    &schema.ClassDef{
//	        Name: "Dot",
//	        Attributes: []*schema.AttributeDef{
//	            {Name: "x", Type: schema.Float(), Default: schema.Lit("0")},
//	            {Name: "color", Type: schema.Enum("Color")},
//	        },
//	    },
//	)
//	m.Enums = []*schema.EnumDef{
//	    {Name: "Color", Values: []schema.EnumValue{{"RED", 0}, {"GREEN", 1}}},
//	}
//
// # Type references
//
// Types are written in a small textual grammar understood by ParseType:
//
//	Float, Str, Int, UInt32, UInt64, Bool, Vec2, Vec3, IVec3
//	List<T>, Dict<K, V>, Func<T>
//	Thing*   nullable object reference
//	Thing&   non-null object reference
//	Color    enum (or class) name, bound by Model.Bind
//
// # Inheritance
//
// A class inherits in one of two distinct ways, modelled by Parentage:
// SingleParent flattens one root superclass's attributes and methods into
// the class, Capabilities only unions the listed classes' methods for
// binding exposure.
package schema
