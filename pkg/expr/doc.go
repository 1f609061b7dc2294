// Package expr evaluates label text expressions.
//
// An expression concatenates feature attributes and literals with '+':
//
//	[name]
//	[name] + " (" + [ref] + ")"
//	'Route ' + [ref]
//
// Attributes are written in square brackets and resolved against a feature's
// properties at evaluation time. Missing attributes evaluate to the empty
// string. Numbers print in their shortest exact form, so a property of 12.0
// renders as "12".
package expr
