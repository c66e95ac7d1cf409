package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dserrors "github.com/NVIDIA/dataset-api/pkg/errors"
)

func TestValidatePath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(file, []byte("[]"), 0o600))
	dotted := filepath.Join(dir, "items..json")
	require.NoError(t, os.WriteFile(dotted, []byte("[]"), 0o600))

	tests := []struct {
		name     string
		path     string
		wantCode dserrors.ErrorCode
	}{
		{name: "regular file", path: file},
		{name: "missing file", path: filepath.Join(dir, "absent.json"), wantCode: dserrors.ErrCodeFileNotFound},
		{name: "directory", path: dir, wantCode: dserrors.ErrCodeNotAFile},
		{name: "double dot in resolved name", path: dotted, wantCode: dserrors.ErrCodePathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidatePath(tt.path)
			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.True(t, filepath.IsAbs(got))
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, dserrors.CodeOf(err))
			assert.True(t, dserrors.IsDataUnavailable(err))
			assert.Empty(t, got)
		})
	}
}

func TestValidatePath_CleansRelativeSegments(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	file := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(file, []byte("[]"), 0o600))

	// filepath.Abs cleans "sub/.." away before the textual check
	got, err := ValidatePath(filepath.Join(sub, "..", "data.json"))
	require.NoError(t, err)
	assert.NotContains(t, got, "..")
}

func TestValidatePath_ResolvesSymlinks(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.json")
	require.NoError(t, os.WriteFile(target, []byte("[]"), 0o600))
	link := filepath.Join(dir, "link.json")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	got, err := ValidatePath(link)
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(target)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestValidatePath_MessageNamesRequestedPath(t *testing.T) {
	_, err := ValidatePath("/nonexistent/file.json")
	require.Error(t, err)
	assert.Equal(t, "Data file not found: /nonexistent/file.json", dserrors.MessageOf(err))
}
