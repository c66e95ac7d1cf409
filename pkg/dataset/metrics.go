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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Dataset cache metrics
	datasetCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dsapi_dataset_cache_hits_total",
			Help: "Total number of dataset requests served from the cache",
		},
	)
	datasetCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dsapi_dataset_cache_misses_total",
			Help: "Total number of dataset requests that required a load",
		},
	)
	datasetCacheClears = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dsapi_dataset_cache_clears_total",
			Help: "Total number of explicit dataset cache invalidations",
		},
	)

	// Dataset load metrics
	datasetLoadFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dsapi_dataset_load_failures_total",
			Help: "Total number of failed dataset loads by error code",
		},
		[]string{"code"},
	)
	datasetLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dsapi_dataset_load_duration_seconds",
			Help:    "Duration of dataset validation, read and parse in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		},
	)
	datasetItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dsapi_dataset_items",
			Help: "Number of records in the most recently installed dataset",
		},
	)
)
