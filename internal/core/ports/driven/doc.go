// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - TextExtractor: Produces raw document text from a source location
//   - ReportStore: Report persistence (SQLite)
//   - ConfigStore: Application configuration (TOML file)
//
// The pipeline itself is pure and needs none of these; the ports exist for
// the surrounding application (extraction, persistence, configuration).
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
