// Package pipeline runs one export: load the bulk CM file, extract cells and
// neighbor relations, write both tables, then record the manifest and audit entry.
package pipeline
