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

import (
	"reflect"
)

// ClassFilter decides whether advice applies to instances of a type at all.
// Implementations must be pure functions of the type and safe for concurrent
// use; callers may cache the result per type indefinitely.
type ClassFilter interface {
	// Matches reports whether the filter accepts t.
	Matches(t reflect.Type) bool
}

// MethodMatcher is the two-phase method predicate of a Pointcut.
//
// The static phase (Matches) is an argument-independent pure function of
// (method, target type); its result may be cached per pair indefinitely. If
// Matches returns false, MatchesArgs must never be invoked for that pair. If
// Matches returns true and IsRuntime reports false, the decision is final and
// MatchesArgs must never be invoked either.
//
// When IsRuntime reports true, MatchesArgs must be evaluated immediately
// before each candidate advice execution, after all earlier advice in the
// chain has run, so that it can observe their side effects (mutated arguments
// or goroutine-local state). That call must never be skipped, memoized across
// invocations, or reordered relative to earlier advice.
//
// A nil target type means the method's own declaring type is the effective
// target type for matching purposes.
type MethodMatcher interface {
	// Matches performs the static, argument-independent check.
	Matches(m Method, target reflect.Type) bool

	// IsRuntime reports whether a per-invocation MatchesArgs check is
	// required after static matching passed. The value is fixed for the
	// lifetime of the matcher.
	IsRuntime() bool

	// MatchesArgs performs the dynamic, per-invocation check. It is only
	// called when Matches returned true and IsRuntime reports true.
	MatchesArgs(m Method, target reflect.Type, args []any) bool
}

// Pointcut pairs a ClassFilter with a MethodMatcher and represents where
// advice applies. Implementations are immutable after construction and safe
// to share across concurrent call interceptions.
type Pointcut interface {
	// ClassFilter returns the type-level filter (never nil).
	ClassFilter() ClassFilter
	// MethodMatcher returns the method-level matcher (never nil).
	MethodMatcher() MethodMatcher
}
