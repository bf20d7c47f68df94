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

// Probe inspects declarative metadata attached to a single lookup site.
// How a site carries metadata (struct tags, registration tables, generated
// descriptors, external config) is the implementation's concern; the
// attribute resolver only defines in which order sites are consulted.
//
// Implementations must be safe for concurrent use and should be cheap:
// results are cached by the resolver, but a cold resolution may probe
// several sites in a row.
type Probe[T any] interface {
	// ProbeMethod returns the attribute attached to m, if any.
	ProbeMethod(m Method) (T, bool)

	// ProbeType returns the attribute attached to t, if any.
	ProbeType(t reflect.Type) (T, bool)
}
