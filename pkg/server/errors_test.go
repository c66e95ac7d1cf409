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

package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	dserrors "github.com/NVIDIA/dataset-api/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestWriteError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	rec := httptest.NewRecorder()

	WriteError(rec, req, http.StatusNotFound, dserrors.ErrCodeNotFound, "Item with GUID 'x' not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "NOT_FOUND", rec.Header().Get(HeaderErrorCode))
	assert.JSONEq(t, `{"detail":"Item with GUID 'x' not found"}`, rec.Body.String())
}

func TestWriteErrorFromErr(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantDetail string
	}{
		{
			name:       "invalid identifier",
			err:        dserrors.New(dserrors.ErrCodeInvalidIdentifier, "GUID cannot be empty"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_IDENTIFIER",
			wantDetail: "GUID cannot be empty",
		},
		{
			name:       "wrapped not found",
			err:        fmt.Errorf("lookup: %w", dserrors.New(dserrors.ErrCodeNotFound, "missing")),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
			wantDetail: "missing",
		},
		{
			name:       "data unavailable",
			err:        dserrors.Wrap(dserrors.ErrCodeParse, "Invalid JSON in data file: d.json", errors.New("eof")),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "PARSE_ERROR",
			wantDetail: "Invalid JSON in data file: d.json",
		},
		{
			name:       "plain error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL",
			wantDetail: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteErrorFromErr(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, rec.Header().Get(HeaderErrorCode))
			assert.JSONEq(t, fmt.Sprintf(`{"detail":%q}`, tt.wantDetail), rec.Body.String())
		})
	}
}

func TestStatusFromCode(t *testing.T) {
	tests := map[dserrors.ErrorCode]int{
		dserrors.ErrCodeInvalidIdentifier: http.StatusBadRequest,
		dserrors.ErrCodeInvalidRequest:    http.StatusBadRequest,
		dserrors.ErrCodeNotFound:          http.StatusNotFound,
		dserrors.ErrCodeMethodNotAllowed:  http.StatusMethodNotAllowed,
		dserrors.ErrCodeRateLimitExceeded: http.StatusTooManyRequests,
		dserrors.ErrCodeUnavailable:       http.StatusServiceUnavailable,
		dserrors.ErrCodeFileNotFound:      http.StatusInternalServerError,
		dserrors.ErrCodeSchema:            http.StatusInternalServerError,
		dserrors.ErrCodeInternal:          http.StatusInternalServerError,
	}

	for code, want := range tests {
		assert.Equal(t, want, StatusFromCode(code), "code %s", code)
	}
}
