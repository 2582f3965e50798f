// Package domain defines the core entities of the edital parsing pipeline.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Classification: coarse triage of raw extracted text
//   - Prevalidation: structural-risk flags computed before any repair
//   - Discipline: one subject with its extracted syllabus topics
//   - WeightTable: per-subject exam weights from the weighting table
//   - Diagnostic: the consolidated flag snapshot across all stages
//   - Decision: the UX decision derived from a Diagnostic
//   - Report: the full pipeline output for one document
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
