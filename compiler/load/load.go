// Package load reads schema files into a schema.Model.
//
// A schema file is a YAML, JSON or msgpack encoding of Schema:
//
//	enums:
//	  - name: Color
//	    values: [{name: RED}, {name: GREEN}]
//	classes:
//	  - name: Dot
//	    attributes:
//	      - {name: x, type: Float, default: 0}
//	      - {name: color, type: Color}
//	      - {name: next, type: "Dot*"}
//	constants:
//	  - {name: PI, type: Float, value: 3.14159}
//
// Types use the textual form of schema.ParseType. Defaults and constant
// values are host expressions; strings need their own quotes, as in
// default: '"box"'.
package load

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/syssam/classgen/schema"
)

// Format is the encoding of a schema file.
type Format string

// Supported formats.
const (
	YAML    Format = "yaml"
	JSON    Format = "json"
	Msgpack Format = "msgpack"
)

// FormatOf returns the format implied by the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	case ".msgpack", ".mpk":
		return Msgpack, nil
	}
	return "", fmt.Errorf("load: unknown schema format for %q", path)
}

// LoadFile reads the schema file at path, with the format implied by its
// extension.
func LoadFile(path string) (*schema.Model, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	defer f.Close()
	m, err := Load(f, format)
	if err != nil {
		return nil, fmt.Errorf("%w (file: %s)", err, path)
	}
	return m, nil
}

// Load decodes a schema document. Unknown fields are rejected.
func Load(r io.Reader, format Format) (*schema.Model, error) {
	s, err := Decode(r, format)
	if err != nil {
		return nil, err
	}
	m, err := s.Model()
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	return m, nil
}

// Decode decodes a schema document without converting it.
func Decode(r io.Reader, format Format) (*Schema, error) {
	s := &Schema{}
	var err error
	switch format {
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(s)
		if err == io.EOF {
			err = nil
		}
	case JSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		dec.UseNumber()
		err = dec.Decode(s)
	case Msgpack:
		dec := msgpack.NewDecoder(r)
		dec.DisallowUnknownFields(true)
		dec.UseLooseInterfaceDecoding(true)
		err = dec.Decode(s)
	default:
		return nil, fmt.Errorf("load: unknown schema format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("load: decode %s: %w", format, err)
	}
	return s, nil
}

// Marshal encodes m in the given format.
func Marshal(m *schema.Model, format Format) ([]byte, error) {
	s := NewSchema(m)
	switch format {
	case YAML:
		var b bytes.Buffer
		enc := yaml.NewEncoder(&b)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return nil, fmt.Errorf("load: encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("load: encode yaml: %w", err)
		}
		return b.Bytes(), nil
	case JSON:
		return json.MarshalIndent(s, "", "  ")
	case Msgpack:
		var b bytes.Buffer
		enc := msgpack.NewEncoder(&b)
		enc.SetOmitEmpty(true)
		if err := enc.Encode(s); err != nil {
			return nil, fmt.Errorf("load: encode msgpack: %w", err)
		}
		return b.Bytes(), nil
	}
	return nil, fmt.Errorf("load: unknown schema format %q", format)
}
