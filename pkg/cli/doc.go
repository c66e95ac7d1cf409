// Package cli implements the dsapi command-line interface.
//
// # Commands
//
// serve - Run the HTTP API:
//
//	dsapi serve [--data-file data.json] [--host 0.0.0.0] [--port 3000] [--admin-reload]
//
// Serves the dataset over HTTP until interrupted. Flags override the
// corresponding environment variables (DATA_FILE_PATH, HOST, PORT, ...).
//
// validate - Check a data file:
//
//	dsapi validate --data-file data.json [--format json|yaml] [--output FILE]
//
// Runs the file through the same path checks and loader the server uses and
// reports the item count, or the failure code and message. The command
// exits non-zero when the file is not servable.
//
// # Environment
//
// A .env file in the working directory (or the file named by --env-file) is
// loaded before flags are parsed. Variables already set in the environment
// win over the file.
package cli
