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

import "math"

const (
	// HighestPrecedence is the order value of highest priority. Lower order
	// values sort first; infrastructure registrations use this value so they
	// run before user-supplied interceptors.
	HighestPrecedence = math.MinInt32

	// LowestPrecedence is the order value of lowest priority.
	LowestPrecedence = math.MaxInt32
)

// Ordered is implemented by objects whose relative position in a chain
// matters, e.g. interceptors around the same join point. Lower values have
// higher priority.
type Ordered interface {
	// Order returns the order value of this object.
	Order() int
}
