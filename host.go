package classgen

import "fmt"

// Host values produced by the expression evaluator. Scalars are carried
// as int64, uint64 (integers above the int64 range), float64, string,
// bool and nil.
type (
	// List is a host list literal.
	List []any

	// Tuple is a host tuple literal.
	Tuple []any

	// Dict is a host dict literal, in source order.
	Dict []DictEntry

	// DictEntry is one key/value pair of a Dict.
	DictEntry struct {
		Key, Value any
	}

	// NumericArray is a typed numeric array, written array('d', [...]) in
	// the host language.
	NumericArray struct {
		Typecode string
		Values   List
	}
)

// NumericKind tells which numeric arrays a container accepts.
type NumericKind uint8

// Numeric kinds.
const (
	NumericNone NumericKind = iota
	NumericFloat
	NumericInt
)

// Kind returns the numeric kind of the array's typecode.
func (a *NumericArray) Kind() NumericKind {
	switch a.Typecode {
	case "d", "f":
		return NumericFloat
	case "q", "l", "i", "h", "b":
		return NumericInt
	default:
		return NumericNone
	}
}

// hostTypeName names the host type of v for error messages.
func hostTypeName(v any) string {
	switch v := v.(type) {
	case nil:
		return "None"
	case int64, uint64:
		return "int"
	case float64:
		return "float"
	case string:
		return "str"
	case bool:
		return "bool"
	case List:
		return "list"
	case Tuple:
		return "tuple"
	case Dict:
		return "dict"
	case *NumericArray:
		return "array('" + v.Typecode + "')"
	case Class:
		return v.ClassName()
	default:
		return fmt.Sprintf("%T", v)
	}
}
