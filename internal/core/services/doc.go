// Package services contains the core application services.
//
// Services implement the driving ports and orchestrate the pure pipeline
// stages (classifier, prevalidate, preprocess, parser, diagnose, policy)
// plus the driven ports for extraction and persistence.
//
// # Import Rules
//
//   - Can Import: domain, ports, the stage packages, logger
//   - Cannot Import: Any adapter package
package services
