// Package serializer provides utilities for serializing data to JSON and YAML.
//
// For HTTP responses:
//
//	serializer.RespondJSON(w, http.StatusOK, data)
//
// or, honoring the request's Accept header:
//
//	serializer.Respond(w, r, http.StatusOK, data)
//
// For command output:
//
//	writer := serializer.NewWriter(serializer.FormatYAML, os.Stdout)
//	if err := writer.Serialize(data); err != nil {
//		log.Fatal(err)
//	}
//
// Responses are fully encoded into a buffer before headers are written, so an
// encoding failure produces a clean 500 instead of a partial body.
package serializer
