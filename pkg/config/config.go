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

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/NVIDIA/dataset-api/pkg/defaults"
)

// Setting keys. Each maps to the upper-cased environment variable.
const (
	KeyDataFilePath     = "data_file_path"
	KeyHost             = "host"
	KeyPort             = "port"
	KeyLogLevel         = "log_level"
	KeyRateLimit        = "rate_limit"
	KeyRateLimitBurst   = "rate_limit_burst"
	KeyShutdownTimeout  = "shutdown_timeout_seconds"
	KeyAdminReload      = "admin_reload"
	KeyMaxDataFileBytes = "max_data_file_bytes"
	KeyAPITitle         = "api_title"
	KeyAPIVersion       = "api_version"
)

// DefaultEnvFile is the dotenv file loaded by LoadDotEnv when no path is given.
const DefaultEnvFile = ".env"

// Provider resolves the data file path. Implementations must be safe for
// concurrent use; the path may change between calls.
type Provider interface {
	DataFilePath() string
}

// StaticProvider always returns the same path.
type StaticProvider string

// DataFilePath implements Provider.
func (p StaticProvider) DataFilePath() string {
	return string(p)
}

// Settings is a resolved snapshot of all service settings.
type Settings struct {
	DataFilePath     string
	Host             string
	Port             int
	LogLevel         string
	RateLimit        float64
	RateLimitBurst   int
	ShutdownTimeout  time.Duration
	AdminReload      bool
	MaxDataFileBytes int64
	APITitle         string
	APIVersion       string
}

// Address returns the host:port listen address.
func (s *Settings) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// EnvProvider reads settings from the environment on every call.
type EnvProvider struct {
	v *viper.Viper
}

// NewEnvProvider returns a Provider backed by the process environment.
func NewEnvProvider() *EnvProvider {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault(KeyDataFilePath, defaults.DataFilePath)
	v.SetDefault(KeyHost, defaults.ServerHost)
	v.SetDefault(KeyPort, defaults.ServerPort)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyRateLimit, defaults.ServerRateLimit)
	v.SetDefault(KeyRateLimitBurst, defaults.ServerRateLimitBurst)
	v.SetDefault(KeyShutdownTimeout, int(defaults.ServerShutdownTimeout/time.Second))
	v.SetDefault(KeyAdminReload, false)
	v.SetDefault(KeyMaxDataFileBytes, defaults.MaxDataFileBytes)
	v.SetDefault(KeyAPITitle, "Dataset API")
	v.SetDefault(KeyAPIVersion, "1.0.0")

	return &EnvProvider{v: v}
}

// Override pins key to value, taking precedence over the environment.
// Used for command line flags.
func (p *EnvProvider) Override(key string, value any) {
	p.v.Set(key, value)
}

// DataFilePath implements Provider. The environment is consulted on each
// call so a changed DATA_FILE_PATH takes effect without a restart.
func (p *EnvProvider) DataFilePath() string {
	return p.v.GetString(KeyDataFilePath)
}

// Settings resolves a full snapshot of the current settings.
// Invalid numeric values fall back to defaults.
func (p *EnvProvider) Settings() *Settings {
	s := &Settings{
		DataFilePath:     p.DataFilePath(),
		Host:             p.v.GetString(KeyHost),
		Port:             p.v.GetInt(KeyPort),
		LogLevel:         p.v.GetString(KeyLogLevel),
		RateLimit:        p.v.GetFloat64(KeyRateLimit),
		RateLimitBurst:   p.v.GetInt(KeyRateLimitBurst),
		ShutdownTimeout:  time.Duration(p.v.GetInt(KeyShutdownTimeout)) * time.Second,
		AdminReload:      p.v.GetBool(KeyAdminReload),
		MaxDataFileBytes: p.v.GetInt64(KeyMaxDataFileBytes),
		APITitle:         p.v.GetString(KeyAPITitle),
		APIVersion:       p.v.GetString(KeyAPIVersion),
	}

	if s.Port <= 0 || s.Port > 65535 {
		s.Port = defaults.ServerPort
	}
	if s.RateLimit <= 0 {
		s.RateLimit = defaults.ServerRateLimit
	}
	if s.RateLimitBurst <= 0 {
		s.RateLimitBurst = defaults.ServerRateLimitBurst
	}
	if s.ShutdownTimeout <= 0 {
		s.ShutdownTimeout = defaults.ServerShutdownTimeout
	}
	if s.MaxDataFileBytes <= 0 {
		s.MaxDataFileBytes = defaults.MaxDataFileBytes
	}
	if s.DataFilePath == "" {
		s.DataFilePath = defaults.DataFilePath
	}

	return s
}

// LoadDotEnv loads variables from the given dotenv files (DefaultEnvFile
// when none are given) without overriding variables already set.
// Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{DefaultEnvFile}
	}

	existing := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				slog.Debug("dotenv file not found, skipping", "path", p)
				continue
			}
			return fmt.Errorf("failed to stat %s: %w", p, err)
		}
		existing = append(existing, p)
	}

	if len(existing) == 0 {
		return nil
	}

	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("failed to load dotenv: %w", err)
	}
	return nil
}
