// Package internal contains the core implementation packages for dtags.
//
// This package follows Go's internal package convention, making these
// packages unavailable for import by external modules while providing
// all the core functionality for the dtags CLI tool.
//
// # Package Organization
//
// The internal packages are organized by functional domain:
//
//   - scanner: delimiter recognition and region extraction from documents
//   - tagtable: the per-invocation index of tags, identities, and references
//   - identity: content hashing for normalized region bodies
//   - query: table construction, topic resolution, and canonical selection
//   - replicate: in-place rewriting of divergent occurrences and tag renames
//   - discover: document enumeration across the configured tree roots
//   - config: configuration loading from files, environment, and flags
//   - logging: structured logging shared by every command
//   - watcher: file system monitoring with debouncing for the watch command
//   - errors: the shared error taxonomy and batch collector
//   - types: regions, references, and selectors passed between the above
//
// # Data Flow
//
// A command discovers documents, scans them into regions, indexes the
// regions into a tag table, and then reports on the table or rewrites
// files from it. Tables live for one invocation and are never persisted;
// the documents themselves are the only source of truth.
package internal
