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

package defaults

import "time"

// Dataset defaults.
const (
	// DataFilePath is the data file used when no path is configured.
	DataFilePath = "data.json"

	// MaxDataFileBytes caps the size of a data file read into memory.
	MaxDataFileBytes int64 = 64 << 20
)

// Server defaults.
const (
	// ServerHost is the default listen host.
	ServerHost = "0.0.0.0"

	// ServerPort is the default listen port.
	ServerPort = 3000

	// ServerRateLimit is the default sustained request rate (req/s).
	ServerRateLimit = 100

	// ServerRateLimitBurst is the default token bucket size.
	ServerRateLimitBurst = 200
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)
