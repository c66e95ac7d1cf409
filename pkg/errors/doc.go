// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Dataset failures carry one of the data source codes (PATH_TRAVERSAL,
// FILE_NOT_FOUND, NOT_A_FILE, IO_ERROR, PARSE_ERROR, SCHEMA_ERROR) so
// callers can tell them apart for diagnostics while still treating them
// as one "data unavailable" class via IsDataUnavailable.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeParse,
//	    "Invalid JSON in data file: data.json",
//	    syntaxErr,
//	    map[string]any{
//	        "offset": syntaxErr.Offset,
//	    },
//	)
package errors
