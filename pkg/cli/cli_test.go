// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/dataset-api/pkg/config"
	"github.com/NVIDIA/dataset-api/pkg/serializer"
)

func hasName(flag cli.Flag, name string) bool {
	for _, n := range flag.Names() {
		if n == name {
			return true
		}
	}
	return false
}

func writeData(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

// runRoot runs the root command with args and returns stdout.
func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.Writer = &out
	root.ErrWriter = &out
	err := root.Run(context.Background(), append([]string{name, "--env-file", filepath.Join(t.TempDir(), "none.env")}, args...))
	return out.String(), err
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		format     string
		wantFormat serializer.Format
		wantErr    bool
	}{
		{"valid yaml format", "yaml", serializer.FormatYAML, false},
		{"valid json format", "json", serializer.FormatJSON, false},
		{"invalid format table", "table", "", true},
		{"invalid format xml", "xml", "", true},
		{"empty format", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cli.Command{
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Value: tt.format,
					},
				},
				Action: func(_ context.Context, c *cli.Command) error {
					got, err := parseOutputFormat(c)
					if tt.wantErr {
						assert.Error(t, err)
						return nil
					}
					assert.NoError(t, err)
					assert.Equal(t, tt.wantFormat, got)
					return nil
				},
			}

			require.NoError(t, cmd.Run(context.Background(), []string{"test"}))
		})
	}
}

func TestRootCmd_CommandStructure(t *testing.T) {
	root := newRootCmd()

	assert.Equal(t, "dsapi", root.Name)
	assert.NotNil(t, root.Before)

	var names []string
	for _, c := range root.Commands {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"serve", "validate"}, names)
}

func TestServeCmd_CommandStructure(t *testing.T) {
	cmd := serveCmd()

	assert.Equal(t, "serve", cmd.Name)
	assert.NotEmpty(t, cmd.Usage)
	assert.NotEmpty(t, cmd.Description)
	assert.NotNil(t, cmd.Action)

	for _, flagName := range []string{"data-file", "host", "port", "rate-limit", "rate-limit-burst", "admin-reload"} {
		found := false
		for _, flag := range cmd.Flags {
			if hasName(flag, flagName) {
				found = true
				break
			}
		}
		assert.True(t, found, "flag %q not found", flagName)
	}
}

func TestValidateCmd_CommandStructure(t *testing.T) {
	cmd := validateCmd()

	assert.Equal(t, "validate", cmd.Name)
	assert.NotEmpty(t, cmd.Description)

	for _, flagName := range []string{"data-file", "max-size", "output", "format"} {
		found := false
		for _, flag := range cmd.Flags {
			if hasName(flag, flagName) {
				found = true
				break
			}
		}
		assert.True(t, found, "flag %q not found", flagName)
	}
}

func TestValidate_ValidFile(t *testing.T) {
	path := writeData(t, `[{"guid":"a"},{"guid":"b"}]`)

	out, err := runRoot(t, "validate", "--data-file", path)
	require.NoError(t, err)

	var result ValidationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Valid)
	assert.Equal(t, 2, result.Items)
	assert.Equal(t, path, result.Path)
	assert.NotEmpty(t, result.ETag)
	assert.Empty(t, result.Code)
}

func TestValidate_InvalidFiles(t *testing.T) {
	tests := []struct {
		name     string
		path     func(t *testing.T) string
		wantCode string
	}{
		{"missing", func(t *testing.T) string { return filepath.Join(t.TempDir(), "x.json") }, "FILE_NOT_FOUND"},
		{"directory", func(t *testing.T) string { return t.TempDir() }, "NOT_A_FILE"},
		{"malformed", func(t *testing.T) string { return writeData(t, `[1,`) }, "PARSE_ERROR"},
		{"object", func(t *testing.T) string { return writeData(t, `{}`) }, "SCHEMA_ERROR"},
		{"traversal", func(t *testing.T) string { return "/tmp/a..b/data.json" }, "PATH_TRAVERSAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runRoot(t, "validate", "--data-file", tt.path(t))
			require.Error(t, err)

			var result ValidationResult
			require.NoError(t, json.Unmarshal([]byte(out), &result))
			assert.False(t, result.Valid)
			assert.Equal(t, tt.wantCode, result.Code)
			assert.NotEmpty(t, result.Error)
		})
	}
}

func TestValidate_MaxSize(t *testing.T) {
	path := writeData(t, `[{"guid":"abcdefghij"}]`)

	out, err := runRoot(t, "validate", "--data-file", path, "--max-size", "4")
	require.Error(t, err)

	var result ValidationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "IO_ERROR", result.Code)
}

func TestValidate_YAMLToFile(t *testing.T) {
	path := writeData(t, `[]`)
	report := filepath.Join(t.TempDir(), "report.yaml")

	_, err := runRoot(t, "validate", "-d", path, "--format", "yaml", "-o", report)
	require.NoError(t, err)

	b, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Contains(t, string(b), "valid: true")
	assert.Contains(t, string(b), "items: 0")
}

func TestValidate_UnknownFormat(t *testing.T) {
	_, err := runRoot(t, "validate", "-d", writeData(t, `[]`), "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestValidate_DataFileFromEnv(t *testing.T) {
	t.Setenv("DATA_FILE_PATH", writeData(t, `[{"guid":"e"}]`))

	out, err := runRoot(t, "validate")
	require.NoError(t, err)

	var result ValidationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 1, result.Items)
}

func TestProviderFromCmd(t *testing.T) {
	var got *config.Settings
	cmd := serveCmd()
	cmd.Action = func(_ context.Context, c *cli.Command) error {
		got = providerFromCmd(c).Settings()
		return nil
	}

	err := cmd.Run(context.Background(), []string{"serve",
		"--data-file", "/srv/items.json",
		"--host", "127.0.0.1",
		"--port", "9091",
		"--rate-limit", "7.5",
		"--rate-limit-burst", "15",
		"--admin-reload",
	})
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "/srv/items.json", got.DataFilePath)
	assert.Equal(t, "127.0.0.1", got.Host)
	assert.Equal(t, 9091, got.Port)
	assert.InDelta(t, 7.5, got.RateLimit, 0)
	assert.Equal(t, 15, got.RateLimitBurst)
	assert.True(t, got.AdminReload)
}
