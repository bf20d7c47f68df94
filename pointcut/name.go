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

package pointcut

import (
	"reflect"
	"strings"

	"dirpx.dev/afx/apis"
)

// Names returns a static matcher accepting methods whose name equals one of
// the given patterns. A pattern may carry a single leading and/or trailing
// "*" wildcard ("Get*", "*Tx", "*Account*"); anything else is an exact match.
func Names(patterns ...string) apis.MethodMatcher {
	ps := append([]string(nil), patterns...)
	return Static(func(m apis.Method, _ reflect.Type) bool {
		for _, p := range ps {
			if simpleMatch(p, m.Name) {
				return true
			}
		}
		return false
	})
}

// NameMatch is a convenience pointcut over Names with no type restriction.
func NameMatch(patterns ...string) apis.Pointcut {
	return New(nil, Names(patterns...))
}

// simpleMatch implements the "xxx*", "*xxx", "*xxx*" pattern forms.
func simpleMatch(pattern, name string) bool {
	switch {
	case pattern == "*":
		return true
	case strings.HasPrefix(pattern, "*") && strings.HasSuffix(pattern, "*") && len(pattern) >= 2:
		return strings.Contains(name, pattern[1:len(pattern)-1])
	case strings.HasPrefix(pattern, "*"):
		return strings.HasSuffix(name, pattern[1:])
	case strings.HasSuffix(pattern, "*"):
		return strings.HasPrefix(name, pattern[:len(pattern)-1])
	default:
		return pattern == name
	}
}
