package dataset

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func loadString(t *testing.T, content string) *Dataset {
	t.Helper()
	ds, err := NewLoader().Load(writeFile(t, "data.json", content))
	require.NoError(t, err)
	return ds
}

func TestFind(t *testing.T) {
	ds := loadString(t, `[
		{"name":"no guid"},
		{"guid":7,"name":"numeric guid"},
		"scalar",
		{"guid":"a","n":1},
		{"guid":"b","n":2},
		{"guid":"a","n":3}
	]`)

	tests := []struct {
		name    string
		guid    string
		wantOK  bool
		wantNum json.Number
	}{
		{name: "first match wins on duplicates", guid: "a", wantOK: true, wantNum: "1"},
		{name: "single match", guid: "b", wantOK: true, wantNum: "2"},
		{name: "absent", guid: "missing", wantOK: false},
		{name: "numeric guid is not a string match", guid: "7", wantOK: false},
		{name: "case sensitive", guid: "A", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := Find(tt.guid, ds)
			assert.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			n, _ := r.Get("n")
			assert.Equal(t, tt.wantNum, n)

			viaMethod, ok := ds.Find(tt.guid)
			require.True(t, ok)
			assert.Equal(t, r, viaMethod)
		})
	}
}

func TestFind_NilDataset(t *testing.T) {
	_, ok := Find("a", nil)
	assert.False(t, ok)
}

func TestRecord_Accessors(t *testing.T) {
	ds := loadString(t, `[{"guid":"a","x":1},42]`)

	obj := ds.Records()[0]
	id, ok := obj.GUID()
	assert.True(t, ok)
	assert.Equal(t, "a", id)
	assert.Len(t, obj.Fields(), 2)

	scalar := ds.Records()[1]
	assert.Nil(t, scalar.Fields())
	_, ok = scalar.GUID()
	assert.False(t, ok)

	var zero Record
	b, err := zero.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}

func TestRecord_MarshalJSONIsVerbatim(t *testing.T) {
	ds := loadString(t, `[{"guid":"a","x":1},{"guid":"b","x":2}]`)

	r, ok := ds.Find("a")
	require.True(t, ok)

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"guid":"a","x":1}`, string(b))
	assert.Equal(t, `{"guid":"a","x":1}`, string(b))
}

func TestDataset_MarshalEmpty(t *testing.T) {
	ds := loadString(t, `[]`)

	b, err := json.Marshal(ds)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(b))
}

func TestDataset_MarshalYAML(t *testing.T) {
	ds := loadString(t, `[{"guid":"a","x":1}]`)

	b, err := yaml.Marshal(ds)
	require.NoError(t, err)

	var out []map[string]any
	require.NoError(t, yaml.Unmarshal(b, &out))
	require.Len(t, out, 1)
	assert.Equal(t, "a", out[0]["guid"])
	assert.Equal(t, 1, out[0]["x"])
}

func TestRecord_LargeNumbersKeepPrecision(t *testing.T) {
	ds := loadString(t, `[{"guid":"a","big":12345678901234567890,"neg":-9007199254740993,"f":1.5,"nested":{"ids":[9007199254740993]}}]`)

	r, ok := ds.Find("a")
	require.True(t, ok)
	big, _ := r.Get("big")
	assert.Equal(t, json.Number("12345678901234567890"), big)

	tests := []struct {
		name  string
		value any
	}{
		{name: "record", value: r},
		{name: "dataset", value: ds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := yaml.Marshal(tt.value)
			require.NoError(t, err)
			out := string(b)

			assert.Contains(t, out, "big: 12345678901234567890")
			assert.Contains(t, out, "neg: -9007199254740993")
			assert.Contains(t, out, "f: 1.5")
			assert.Contains(t, out, "9007199254740993")
			assert.NotContains(t, out, "e+19")
		})
	}
}
