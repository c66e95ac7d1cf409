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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"

	"github.com/NVIDIA/dataset-api/pkg/defaults"
	dserrors "github.com/NVIDIA/dataset-api/pkg/errors"
)

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithMaxSize sets the maximum size (in bytes) of a data file.
// Default is defaults.MaxDataFileBytes. Non-positive values are ignored.
func WithMaxSize(size int64) LoaderOption {
	return func(l *Loader) {
		if size > 0 {
			l.maxSize = size
		}
	}
}

// WithClock sets the function used to stamp LoadedAt. Default is time.Now.
func WithClock(now func() time.Time) LoaderOption {
	return func(l *Loader) {
		if now != nil {
			l.now = now
		}
	}
}

// Loader reads and parses data files.
type Loader struct {
	maxSize int64
	now     func() time.Time
}

// NewLoader creates a Loader with the provided options.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		maxSize: defaults.MaxDataFileBytes,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the file at path, which should already have passed
// ValidatePath, and parses it into a Dataset.
//
// Open and read failures return IO_ERROR, malformed JSON or invalid UTF-8
// returns PARSE_ERROR, and a top-level value other than an array returns
// SCHEMA_ERROR naming the observed type. An empty array is not an error.
func (l *Loader) Load(path string) (*Dataset, error) {
	b, err := l.read(path)
	if err != nil {
		return nil, err
	}

	if !utf8.Valid(b) {
		return nil, dserrors.NewWithContext(dserrors.ErrCodeParse,
			fmt.Sprintf("Invalid JSON in data file: %s", path),
			map[string]any{"path": path, "reason": "content is not valid UTF-8"})
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(b, &elems); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, schemaError(path, typeErr.Value)
		}
		ctx := map[string]any{"path": path}
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			ctx["offset"] = syntaxErr.Offset
		}
		return nil, dserrors.WrapWithContext(dserrors.ErrCodeParse,
			fmt.Sprintf("Invalid JSON in data file: %s", path), err, ctx)
	}

	// null decodes into a nil slice without error
	if elems == nil {
		return nil, schemaError(path, "null")
	}

	records := make([]Record, 0, len(elems))
	for i, raw := range elems {
		r, err := newRecord(raw)
		if err != nil {
			return nil, dserrors.WrapWithContext(dserrors.ErrCodeParse,
				fmt.Sprintf("Invalid JSON in data file: %s", path), err,
				map[string]any{"path": path, "index": i})
		}
		records = append(records, r)
	}

	return &Dataset{
		path:     path,
		records:  records,
		checksum: xxhash.Sum64(b),
		loadedAt: l.now(),
	}, nil
}

// read returns the full file content, enforcing the size limit.
func (l *Loader) read(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, dserrors.WrapWithContext(dserrors.ErrCodeIO,
			fmt.Sprintf("Failed to read data file: %s", path), err,
			map[string]any{"path": path})
	}
	defer f.Close()

	b, err := io.ReadAll(io.LimitReader(f, l.maxSize+1))
	if err != nil {
		return nil, dserrors.WrapWithContext(dserrors.ErrCodeIO,
			fmt.Sprintf("Failed to read data file: %s", path), err,
			map[string]any{"path": path})
	}

	if int64(len(b)) > l.maxSize {
		return nil, dserrors.NewWithContext(dserrors.ErrCodeIO,
			fmt.Sprintf("Data file %s exceeds maximum size of %d bytes", path, l.maxSize),
			map[string]any{"path": path, "maxSize": l.maxSize})
	}

	return b, nil
}

func schemaError(path, observed string) error {
	if observed == "bool" {
		observed = "boolean"
	}
	return dserrors.NewWithContext(dserrors.ErrCodeSchema,
		fmt.Sprintf("Expected list, got %s", observed),
		map[string]any{"path": path, "observed": observed})
}
