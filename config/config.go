/*
   Copyright 2025 The DIRPX Authors.

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

package config

import (
	"reflect"

	"dirpx.dev/afx/apis"
)

const (
	// DefaultProxySuffix represents the default for ProxySuffix.
	// Generated proxy artifacts are expected to carry this name suffix.
	DefaultProxySuffix = "_Proxy"
	// DefaultMaxEmbedDepth represents the default for MaxEmbedDepth.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxEmbedDepth = 8
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxEmbedDepth is valid.
	if cfg.MaxEmbedDepth <= 0 {
		cfg.MaxEmbedDepth = DefaultMaxEmbedDepth
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		ProxySuffix:   DefaultProxySuffix,
		MaxEmbedDepth: DefaultMaxEmbedDepth,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithProxySuffix sets the ProxySuffix option.
// An empty suffix disables proxy artifact unwrapping.
func WithProxySuffix(suffix string) Option {
	return func(c *apis.Config) {
		c.ProxySuffix = suffix
	}
}

// WithMaxEmbedDepth sets the MaxEmbedDepth option.
// A non-positive value resets to the default.
func WithMaxEmbedDepth(depth int) Option {
	return func(c *apis.Config) {
		if depth <= 0 {
			c.MaxEmbedDepth = DefaultMaxEmbedDepth
			return
		}
		c.MaxEmbedDepth = depth
	}
}

// WithUniversalBase sets the UniversalBase option.
func WithUniversalBase(t reflect.Type) Option {
	return func(c *apis.Config) {
		c.UniversalBase = t
	}
}
