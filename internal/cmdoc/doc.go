// Package cmdoc loads bulk CM configuration exports into an in-memory element tree.
//
// The loader is lenient: unclosed tags, undeclared vendor prefixes, undefined
// entities and invalid byte sequences are repaired or skipped, and a document that
// breaks off after its root element was opened still yields the part decoded so far.
// Only input without any recoverable root element is reported as a ParseError.
//
// Field access goes through Read, which returns the leading text of the first
// descendant with a namespace-scoped name, or reports absence.
package cmdoc
