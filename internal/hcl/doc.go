// Package hcl implements the HCL loader for template documents. Loading
// is a pure transformation: the same input bytes always produce a
// structurally identical config.Document. Any malformation (bad syntax,
// unknown top-level blocks, duplicate identities, nested blocks inside a
// property bag) is a fatal planerr.ParseError.
package hcl
