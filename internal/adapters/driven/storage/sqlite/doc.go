// Package sqlite implements report persistence on SQLite.
//
// One database file holds every processed report: the report row carries the
// status, the diagnostic snapshot and the aggregate statistics, while the
// extracted syllabus is relational (disciplines, topics, weights) so callers
// can query it directly with SQL.
package sqlite
