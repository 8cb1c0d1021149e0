/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package config loads faultx settings from a YAML file and FAULTX_*
// environment variables and assembles the chain, mapper and logger they
// describe.
//
// A complete file:
//
//	log:
//	  level: debug
//	metrics:
//	  namespace: orders
//	rules_file: rules.yaml
//	rules:
//	  - name: legacy-missing
//	    contains: "record not found"
//	    code: empty_result
//	translators:
//	  builtin: [postgres, sql, context]
//	mapper:
//	  http_overrides:
//	    - code: data_integrity
//	      status: 422
//	    - code: empty_result
//	      prefix: storage.redis
//	      status: 204
//	  grpc_overrides:
//	    - code: cannot_acquire_lock
//	      status: UNAVAILABLE
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"dirpx.dev/faultx/rules"
	"dirpx.dev/faultx/translators"
)

// EnvPrefix prefixes every environment variable read by Load. Nested keys
// use '_' in place of '.', e.g. FAULTX_LOG_LEVEL.
const EnvPrefix = "FAULTX"

// NameGRPC selects grpcx.StatusTranslator in translators.builtin.
const NameGRPC = "grpc"

// ErrUnknownLevel is returned for an unparsable log level.
var ErrUnknownLevel = errors.New("config: unknown log level")

// Config is the decoded configuration.
type Config struct {
	Log         LogConfig         `mapstructure:"log"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
	RulesFile   string            `mapstructure:"rules_file"`
	Rules       []rules.Rule      `mapstructure:"rules"`
	Translators TranslatorsConfig `mapstructure:"translators"`
	Mapper      MapperConfig      `mapstructure:"mapper"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type MetricsConfig struct {
	// Namespace prefixes the faultx metric names. Empty means none.
	Namespace string `mapstructure:"namespace"`
}

type TranslatorsConfig struct {
	// Builtin lists built-in translators by name, in priority order. They
	// run after any rules.
	Builtin []string `mapstructure:"builtin"`
}

type MapperConfig struct {
	HTTPOverrides []HTTPOverride `mapstructure:"http_overrides"`
	GRPCOverrides []GRPCOverride `mapstructure:"grpc_overrides"`
}

// HTTPOverride replaces the HTTP status of Code, or only of faults whose
// reason falls under Prefix when it is set.
type HTTPOverride struct {
	Code   string `mapstructure:"code"`
	Prefix string `mapstructure:"prefix"`
	Status int    `mapstructure:"status"`
}

// GRPCOverride is the gRPC counterpart of HTTPOverride. Status is a code
// name in either NOT_FOUND or NotFound form.
type GRPCOverride struct {
	Code   string `mapstructure:"code"`
	Prefix string `mapstructure:"prefix"`
	Status string `mapstructure:"status"`
}

// DefaultBuiltin is the built-in translator list used when none is
// configured.
func DefaultBuiltin() []string {
	return append(translators.Names(), NameGRPC)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("metrics.namespace", "")
	v.SetDefault("rules_file", "")
	v.SetDefault("translators.builtin", DefaultBuiltin())
}

// Load reads path, when non-empty, and overlays FAULTX_* variables. A
// relative rules_file is resolved against the directory of path.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if c.RulesFile != "" && path != "" && !filepath.IsAbs(c.RulesFile) {
		c.RulesFile = filepath.Join(filepath.Dir(path), c.RulesFile)
	}
	return c, nil
}
