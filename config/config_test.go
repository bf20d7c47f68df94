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

package config_test

import (
	"reflect"
	"testing"

	"dirpx.dev/afx/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	if cfg.ProxySuffix != config.DefaultProxySuffix {
		t.Errorf("ProxySuffix = %q, want %q", cfg.ProxySuffix, config.DefaultProxySuffix)
	}
	if cfg.MaxEmbedDepth != config.DefaultMaxEmbedDepth {
		t.Errorf("MaxEmbedDepth = %d, want %d", cfg.MaxEmbedDepth, config.DefaultMaxEmbedDepth)
	}
	if cfg.UniversalBase != nil {
		t.Errorf("UniversalBase = %v, want nil", cfg.UniversalBase)
	}
}

func TestNewConfig_Options(t *testing.T) {
	base := reflect.TypeOf(struct{}{})
	cfg := config.NewConfig(
		config.WithProxySuffix("$$Gen"),
		config.WithMaxEmbedDepth(3),
		config.WithUniversalBase(base),
	)
	if cfg.ProxySuffix != "$$Gen" {
		t.Errorf("ProxySuffix = %q, want %q", cfg.ProxySuffix, "$$Gen")
	}
	if cfg.MaxEmbedDepth != 3 {
		t.Errorf("MaxEmbedDepth = %d, want 3", cfg.MaxEmbedDepth)
	}
	if cfg.UniversalBase != base {
		t.Errorf("UniversalBase = %v, want %v", cfg.UniversalBase, base)
	}
}

func TestNewConfig_EmptySuffixDisablesUnwrapping(t *testing.T) {
	cfg := config.NewConfig(config.WithProxySuffix(""))
	if cfg.ProxySuffix != "" {
		t.Errorf("ProxySuffix = %q, want empty", cfg.ProxySuffix)
	}
}

func TestNewConfig_InvalidDepthResets(t *testing.T) {
	for _, depth := range []int{0, -1} {
		cfg := config.NewConfig(config.WithMaxEmbedDepth(depth))
		if cfg.MaxEmbedDepth != config.DefaultMaxEmbedDepth {
			t.Errorf("MaxEmbedDepth(%d) = %d, want default %d",
				depth, cfg.MaxEmbedDepth, config.DefaultMaxEmbedDepth)
		}
	}
}
