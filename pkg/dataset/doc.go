// Package dataset loads a JSON array of records from disk and serves it from
// a single-slot, path-keyed in-memory cache.
//
// # Components
//
//   - ValidatePath: resolves a candidate path and rejects traversal, missing
//     paths and non-regular files with distinct error codes
//   - Loader: reads and parses a validated file into a Dataset; the top-level
//     value must be a JSON array
//   - Cache: memoizes the most recently loaded Dataset keyed by the exact
//     path string that produced it
//   - Find: first-match lookup of a record by its "guid" field
//
// # Errors
//
// Every failure is a *errors.StructuredError with one of the data source
// codes (PATH_TRAVERSAL, FILE_NOT_FOUND, NOT_A_FILE, IO_ERROR, PARSE_ERROR,
// SCHEMA_ERROR). Raw os or encoding/json errors never escape; they are kept
// as the Cause.
//
// # Concurrency
//
// Cache is safe for concurrent use. The cached entry is swapped with a
// single atomic pointer store, so readers observe either the previous or the
// new (path, Dataset) pair, never a mix. Concurrent misses for the same path
// share one load. A failed load leaves the previous entry in place.
//
// Datasets and Records are immutable after loading and may be shared freely.
package dataset
