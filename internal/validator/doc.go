// Package validator checks a document against the resource-type schema
// catalog. It runs twice per plan: a structural pass before resolution
// (types known, required fields present) and a semantic pass after
// (literal values conform to type, enum and range constraints; referenced
// attributes exist on their targets).
//
// Both passes run to completion and return every finding, never stopping
// at the first, so a user gets one actionable batch per run.
package validator
