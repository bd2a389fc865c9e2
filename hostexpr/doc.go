// Package hostexpr parses and evaluates the host-language subset written by
// generated export code: assignments, constructor calls with keyword
// arguments, dotted enum members, and list, tuple, dict and number
// literals. Evaluating an exported script against the registry filled by
// the generated package reconstructs the exported object graph.
package hostexpr
