// Package classgen is the runtime imported by code generated from a
// classgen schema.
//
// Generated classes embed Object (root classes) or their superclass,
// render floats through FormatFloat, mark unassigned attributes with the
// Unset sentinels, and export themselves as host-language calls through an
// ExportContext. Each generated package exposes a Register function that
// fills a Registry with class, enum, constant and container bindings; the
// hostexpr package evaluates exported scripts against such a registry.
package classgen
