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
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// GUIDField is the record field used as the identifier.
const GUIDField = "guid"

// Record is one element of the source array. It keeps the element's
// original encoding so it can be written back verbatim.
type Record struct {
	raw   json.RawMessage
	value any
}

// newRecord builds a Record from one raw array element. Numbers are kept
// as json.Number so integers beyond 2^53 survive intact.
func newRecord(raw json.RawMessage) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return Record{}, err
	}
	return Record{raw: raw, value: v}, nil
}

// Fields returns the record's fields, or nil when the element is not a
// JSON object. The map must not be modified.
func (r Record) Fields() map[string]any {
	m, _ := r.value.(map[string]any)
	return m
}

// Get returns the value of a top-level field.
func (r Record) Get(field string) (any, bool) {
	v, ok := r.Fields()[field]
	return v, ok
}

// GUID returns the record identifier. ok is false when the record has no
// string "guid" field.
func (r Record) GUID() (string, bool) {
	v, ok := r.Get(GUIDField)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// MarshalJSON returns the original element encoding.
func (r Record) MarshalJSON() ([]byte, error) {
	if len(r.raw) == 0 {
		return []byte("null"), nil
	}
	return r.raw, nil
}

// MarshalYAML returns the decoded element with numbers in their source
// spelling.
func (r Record) MarshalYAML() (any, error) {
	return yamlValue(r.value), nil
}

// yamlValue replaces json.Number values with scalar nodes so the encoder
// writes the literal digits instead of a rounded float.
func yamlValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		tag := "!!int"
		if strings.ContainsAny(t.String(), ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: t.String()}
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = yamlValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = yamlValue(e)
		}
		return out
	default:
		return v
	}
}

// Dataset is an immutable, ordered collection of records loaded from one file.
type Dataset struct {
	path     string
	records  []Record
	checksum uint64
	loadedAt time.Time
}

// Path returns the resolved file path the dataset was loaded from.
func (d *Dataset) Path() string {
	return d.path
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Empty reports whether the source array had no elements.
func (d *Dataset) Empty() bool {
	return d.Len() == 0
}

// Records returns the records in source order. The slice is shared and
// must not be modified.
func (d *Dataset) Records() []Record {
	if d == nil {
		return nil
	}
	return d.records
}

// Checksum returns the xxhash64 digest of the source bytes.
func (d *Dataset) Checksum() uint64 {
	return d.checksum
}

// ETag returns a strong entity tag derived from the checksum.
func (d *Dataset) ETag() string {
	return fmt.Sprintf("%q", fmt.Sprintf("%016x", d.checksum))
}

// LoadedAt returns when the dataset was read from disk.
func (d *Dataset) LoadedAt() time.Time {
	return d.loadedAt
}

// Find returns the first record whose guid equals guid.
func (d *Dataset) Find(guid string) (Record, bool) {
	return Find(guid, d)
}

// MarshalJSON encodes the dataset as a JSON array of the original elements.
func (d *Dataset) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, r := range d.Records() {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := r.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the dataset as a YAML sequence.
func (d *Dataset) MarshalYAML() (any, error) {
	out := make([]any, 0, d.Len())
	for _, r := range d.Records() {
		out = append(out, yamlValue(r.value))
	}
	return out, nil
}

// Find scans ds in order and returns the first record whose "guid" field is
// a string equal to guid. Records without a string guid never match.
func Find(guid string, ds *Dataset) (Record, bool) {
	for _, r := range ds.Records() {
		if id, ok := r.GUID(); ok && id == guid {
			return r, true
		}
	}
	return Record{}, false
}
