// Package api defines the core domain types for the vorlesung course
// discovery server.
//
// This package provides the canonical course record, the tool search
// query, the response envelope returned to the chat host, and the
// structured error taxonomy shared by the catalog pipeline and the
// transport layer.
//
// The package has zero external dependencies (Go standard library only)
// and performs no I/O. All types produce JSON in the camelCase wire
// format the lecture-video widget consumes.
//
// Core types:
//   - [Course]: fully-populated canonical course record, independent of
//     data source
//   - [SearchQuery]: validated arguments of the play_lecture_video tool
//   - [QueryEnvelope]: per-request response wrapper (courses, totals,
//     mock-data flag)
//   - [APIError]: structured error with type, code, param, and message
package api
