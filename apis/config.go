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

package apis

import "reflect"

// Config carries read-only introspection knobs that influence method and
// type resolution. It is passed by value and should be treated as immutable
// by implementations.
type Config struct {
	// ProxySuffix marks generated proxy artifact types by name. A struct
	// type whose name carries this suffix and which embeds its target is
	// unwrapped to that target before lookup sites are searched, so
	// generated wrappers never mask real declarations.
	ProxySuffix string

	// MaxEmbedDepth limits embedded-field walks when searching for the
	// declaring type of a promoted method or unwrapping proxy artifacts.
	// Acts as a safety guard against pathological nesting.
	MaxEmbedDepth int

	// UniversalBase optionally names a base type that domain objects embed
	// for plumbing (lifecycle hooks, identity helpers). Methods declared on
	// it are never attribute-bearing and are excluded from resolution and
	// from the attribute cache. Nil disables the exclusion.
	UniversalBase reflect.Type
}
