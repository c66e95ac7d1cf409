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

package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	dserrors "github.com/NVIDIA/dataset-api/pkg/errors"
)

// ValidatePath resolves path to an absolute, symlink-free form and verifies
// that it names an existing regular file. The resolved path is returned.
//
// The traversal check is textual: any ".." left in the resolved string is
// rejected.
func ValidatePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", dserrors.WrapWithContext(dserrors.ErrCodeIO,
			fmt.Sprintf("Invalid file path: %s", path), err,
			map[string]any{"path": path})
	}

	resolved := abs
	if r, evalErr := filepath.EvalSymlinks(abs); evalErr == nil {
		resolved = r
	}

	if strings.Contains(resolved, "..") {
		return "", dserrors.NewWithContext(dserrors.ErrCodePathTraversal,
			fmt.Sprintf("Invalid file path: %s contains directory traversal", path),
			map[string]any{"path": path, "resolved": resolved})
	}

	info, err := os.Stat(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", dserrors.WrapWithContext(dserrors.ErrCodeFileNotFound,
				fmt.Sprintf("Data file not found: %s", path), err,
				map[string]any{"path": path, "resolved": resolved})
		}
		return "", dserrors.WrapWithContext(dserrors.ErrCodeIO,
			fmt.Sprintf("Failed to access data file: %s", path), err,
			map[string]any{"path": path, "resolved": resolved})
	}

	if !info.Mode().IsRegular() {
		return "", dserrors.NewWithContext(dserrors.ErrCodeNotAFile,
			fmt.Sprintf("Path is not a file: %s", path),
			map[string]any{"path": path, "resolved": resolved, "mode": info.Mode().String()})
	}

	return resolved, nil
}
