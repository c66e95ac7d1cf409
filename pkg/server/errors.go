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
	"net/http"

	dserrors "github.com/NVIDIA/dataset-api/pkg/errors"
	"github.com/NVIDIA/dataset-api/pkg/serializer"
)

// Response headers set by the server.
const (
	HeaderRequestID = "X-Request-Id"
	HeaderErrorCode = "X-Error-Code"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Detail string `json:"detail" yaml:"detail"`
}

// WriteError writes an error response. The body carries only the
// human-readable detail; the code goes into the X-Error-Code header.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code dserrors.ErrorCode, message string) {

	if code != "" {
		w.Header().Set(HeaderErrorCode, string(code))
	}
	if id := RequestIDFromContext(r.Context()); id != "" {
		w.Header().Set(HeaderRequestID, id)
	}

	serializer.RespondJSON(w, statusCode, ErrorResponse{Detail: message})
}

// WriteErrorFromErr writes an error response for err, deriving the status
// from its code and the detail from its message.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error) {
	code := dserrors.CodeOf(err)
	WriteError(w, r, StatusFromCode(code), code, dserrors.MessageOf(err))
}

// StatusFromCode maps an error code to an HTTP status.
// Data source failures, like every unmapped code, are 500.
func StatusFromCode(code dserrors.ErrorCode) int {
	switch code {
	case dserrors.ErrCodeInvalidIdentifier, dserrors.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case dserrors.ErrCodeNotFound:
		return http.StatusNotFound
	case dserrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case dserrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case dserrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
