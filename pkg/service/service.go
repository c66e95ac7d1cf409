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
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/NVIDIA/dataset-api/pkg/dataset"
	dserrors "github.com/NVIDIA/dataset-api/pkg/errors"
)

// Health states reported by Health.
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusReloaded  = "reloaded"

	// unhealthyReason is deliberately opaque; details go to the log.
	unhealthyReason = "Data file cannot be loaded"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string `json:"status" yaml:"status"`
	DataItems string `json:"data_items,omitempty" yaml:"data_items,omitempty"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
}

// ReloadResponse is the body of a successful reload.
type ReloadResponse struct {
	Status    string `json:"status" yaml:"status"`
	DataItems string `json:"data_items" yaml:"data_items"`
}

// Service answers dataset queries from a cache.
type Service struct {
	cache *dataset.Cache
}

// New returns a Service reading through cache.
func New(cache *dataset.Cache) *Service {
	return &Service{cache: cache}
}

// List returns the full dataset for the configured path.
func (s *Service) List(ctx context.Context) (*dataset.Dataset, error) {
	return s.cache.GetDefault(ctx)
}

// GetByGUID returns the first record whose guid equals id.
// An empty or whitespace-only id is rejected before the data is touched.
func (s *Service) GetByGUID(ctx context.Context, id string) (dataset.Record, error) {
	if strings.TrimSpace(id) == "" {
		return dataset.Record{}, dserrors.New(dserrors.ErrCodeInvalidIdentifier, "GUID cannot be empty")
	}

	ds, err := s.cache.GetDefault(ctx)
	if err != nil {
		return dataset.Record{}, err
	}

	rec, ok := dataset.Find(id, ds)
	if !ok {
		return dataset.Record{}, dserrors.NewWithContext(dserrors.ErrCodeNotFound,
			fmt.Sprintf("Item with GUID '%s' not found", id),
			map[string]any{"guid": id, "items": ds.Len()})
	}
	return rec, nil
}

// Health reports whether the dataset can currently be produced.
// It never fails; load errors become an unhealthy status.
func (s *Service) Health(ctx context.Context) HealthResponse {
	ds, err := s.List(ctx)
	if err != nil {
		slog.WarnContext(ctx, "health check failed",
			"code", dserrors.CodeOf(err),
			"error", err,
		)
		return HealthResponse{
			Status: StatusUnhealthy,
			Error:  unhealthyReason,
		}
	}
	return HealthResponse{
		Status:    StatusHealthy,
		DataItems: strconv.Itoa(ds.Len()),
	}
}

// Reload drops the cached dataset and loads it again, returning the new
// item count. On failure the cache stays empty.
func (s *Service) Reload(ctx context.Context) (int, error) {
	s.cache.Clear()
	ds, err := s.cache.GetDefault(ctx)
	if err != nil {
		return 0, err
	}
	return ds.Len(), nil
}
