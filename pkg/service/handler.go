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

package service

import (
	"net/http"
	"strconv"
	"strings"

	dserrors "github.com/NVIDIA/dataset-api/pkg/errors"
	"github.com/NVIDIA/dataset-api/pkg/serializer"
	"github.com/NVIDIA/dataset-api/pkg/server"
)

// PathValueGUID is the route wildcard holding the record identifier.
const PathValueGUID = "guid"

// HandleList serves GET /. Listings carry an ETag and honor If-None-Match.
func (s *Service) HandleList(w http.ResponseWriter, r *http.Request) {
	ds, err := s.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	format := serializer.FormatFromAccept(r.Header.Get("Accept"))
	etag := listETag(ds.ETag(), format)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Vary", "Accept")

	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	serializer.RespondAs(w, format, http.StatusOK, ds)
}

// HandleGet serves GET /{guid}.
func (s *Service) HandleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.GetByGUID(r.Context(), r.PathValue(PathValueGUID))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	serializer.Respond(w, r, http.StatusOK, rec)
}

// HandleHealth serves GET /health. It always answers 200.
func (s *Service) HandleHealth(w http.ResponseWriter, r *http.Request) {
	serializer.Respond(w, r, http.StatusOK, s.Health(r.Context()))
}

// HandleReload serves POST /admin/reload.
func (s *Service) HandleReload(w http.ResponseWriter, r *http.Request) {
	n, err := s.Reload(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	serializer.Respond(w, r, http.StatusOK, ReloadResponse{
		Status:    StatusReloaded,
		DataItems: strconv.Itoa(n),
	})
}

// writeServiceError reports data source failures as load errors and
// everything else by its own code.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if !dserrors.IsDataUnavailable(err) {
		server.WriteErrorFromErr(w, r, err)
		return
	}
	server.WriteError(w, r, http.StatusInternalServerError, dserrors.CodeOf(err),
		"Failed to load data: "+dserrors.MessageOf(err))
}

// listETag derives the validator for one representation of the listing.
// JSON keeps the dataset checksum; other formats get a suffix so a cache
// never revalidates a YAML body against a JSON validator.
func listETag(etag string, format serializer.Format) string {
	if format == serializer.FormatJSON {
		return etag
	}
	return strings.TrimSuffix(etag, `"`) + "-" + string(format) + `"`
}

// etagMatches implements the weak comparison used for If-None-Match.
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	want := strings.TrimPrefix(etag, "W/")
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == want {
			return true
		}
	}
	return false
}
