/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/dataset-api/pkg/config"
	"github.com/NVIDIA/dataset-api/pkg/dataset"
	dserrors "github.com/NVIDIA/dataset-api/pkg/errors"
	"github.com/NVIDIA/dataset-api/pkg/serializer"
)

// ValidationResult is the report printed by the validate command.
type ValidationResult struct {
	Path     string `json:"path" yaml:"path"`
	Resolved string `json:"resolved,omitempty" yaml:"resolved,omitempty"`
	Valid    bool   `json:"valid" yaml:"valid"`
	Items    int    `json:"items" yaml:"items"`
	ETag     string `json:"etag,omitempty" yaml:"etag,omitempty"`
	Code     string `json:"code,omitempty" yaml:"code,omitempty"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
}

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Check that a data file can be served",
		Description: `Run a data file through the same path checks and loader the server uses.

The report lists the item count on success, or the failure code
(PATH_TRAVERSAL, FILE_NOT_FOUND, NOT_A_FILE, IO_ERROR, PARSE_ERROR,
SCHEMA_ERROR) and message. The command exits non-zero on failure.

# Examples

  dsapi validate --data-file data.json
  dsapi validate -d /srv/items.json --format yaml -o report.yaml`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "data-file",
				Aliases: []string{"d"},
				Usage:   "Path to the JSON data file (default: DATA_FILE_PATH or data.json)",
			},
			&cli.Int64Flag{
				Name:  "max-size",
				Usage: "Maximum file size in bytes (default: MAX_DATA_FILE_BYTES)",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			settings := config.NewEnvProvider().Settings()
			path := settings.DataFilePath
			if cmd.IsSet("data-file") {
				path = cmd.String("data-file")
			}
			maxSize := settings.MaxDataFileBytes
			if cmd.IsSet("max-size") && cmd.Int64("max-size") > 0 {
				maxSize = cmd.Int64("max-size")
			}

			result := validateFile(path, dataset.NewLoader(dataset.WithMaxSize(maxSize)))
			slog.DebugContext(ctx, "validation complete", "path", path, "valid", result.Valid)

			out, closeOut, err := openOutput(cmd.String("output"), cmd.Root().Writer)
			if err != nil {
				return err
			}
			defer closeOut()

			if err := serializer.NewWriter(outFormat, out).Serialize(result); err != nil {
				return fmt.Errorf("failed to write result: %w", err)
			}

			if !result.Valid {
				return fmt.Errorf("data file %q is not valid: %s", path, result.Error)
			}
			return nil
		},
	}
}

func validateFile(path string, loader *dataset.Loader) ValidationResult {
	result := ValidationResult{Path: path}

	resolved, err := dataset.ValidatePath(path)
	if err == nil {
		result.Resolved = resolved
		var ds *dataset.Dataset
		if ds, err = loader.Load(resolved); err == nil {
			result.Valid = true
			result.Items = ds.Len()
			result.ETag = ds.ETag()
			return result
		}
	}

	result.Code = string(dserrors.CodeOf(err))
	result.Error = dserrors.MessageOf(err)
	return result
}

// openOutput returns the file at path, or fallback when path is empty.
func openOutput(path string, fallback io.Writer) (io.Writer, func(), error) {
	if path == "" {
		return fallback, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	return f, func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close output file", "path", path, "error", err)
		}
	}, nil
}
