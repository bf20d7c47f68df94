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
	"errors"
	"reflect"

	"dirpx.dev/afx/apis"
)

var (
	// ErrStaticDynamicCall is the panic value raised when MatchesArgs is
	// invoked on a matcher that declared IsRuntime false. Callers honoring
	// the two-phase contract never trigger it.
	ErrStaticDynamicCall = errors.New("afx(pointcut): dynamic match invoked on a static matcher")
	// ErrNilDynamicFunc is the panic value raised when Dynamic is given a
	// nil dynamic predicate.
	ErrNilDynamicFunc = errors.New("afx(pointcut): nil dynamic predicate provided")
)

// New pairs a class filter with a method matcher. Nil arguments default to
// the canonical always-true variants. The returned pointcut is immutable and
// safe to share across concurrent call interceptions.
func New(cf apis.ClassFilter, mm apis.MethodMatcher) apis.Pointcut {
	if cf == nil {
		cf = TrueClassFilter()
	}
	if mm == nil {
		mm = TrueMethodMatcher()
	}
	return pointcut{cf: cf, mm: mm}
}

// pointcut is an immutable (ClassFilter, MethodMatcher) pair.
type pointcut struct {
	cf apis.ClassFilter
	mm apis.MethodMatcher
}

func (p pointcut) ClassFilter() apis.ClassFilter     { return p.cf }
func (p pointcut) MethodMatcher() apis.MethodMatcher { return p.mm }

// True returns the canonical pointcut that matches every join point: class
// filter always true, static matcher always true, never runtime. It is a
// shared singleton.
func True() apis.Pointcut { return truePC }

// TrueClassFilter returns the shared class filter that accepts every type.
func TrueClassFilter() apis.ClassFilter { return trueCF }

// TrueMethodMatcher returns the shared non-runtime matcher that statically
// accepts every method.
func TrueMethodMatcher() apis.MethodMatcher { return trueMM }

var (
	truePC apis.Pointcut     = pointcut{cf: trueClassFilter{}, mm: trueMethodMatcher{}}
	trueCF apis.ClassFilter  = trueClassFilter{}
	trueMM apis.MethodMatcher = trueMethodMatcher{}
)

type trueClassFilter struct{}

func (trueClassFilter) Matches(reflect.Type) bool { return true }

type trueMethodMatcher struct{}

func (trueMethodMatcher) Matches(apis.Method, reflect.Type) bool { return true }
func (trueMethodMatcher) IsRuntime() bool                        { return false }
func (trueMethodMatcher) MatchesArgs(apis.Method, reflect.Type, []any) bool {
	panic(ErrStaticDynamicCall)
}

// ClassFilterFunc adapts an ordinary predicate to apis.ClassFilter.
type ClassFilterFunc func(t reflect.Type) bool

// Matches reports whether the predicate accepts t.
func (f ClassFilterFunc) Matches(t reflect.Type) bool { return f(t) }

// StaticFunc is an argument-independent method predicate.
type StaticFunc func(m apis.Method, target reflect.Type) bool

// DynamicFunc is a per-invocation method predicate.
type DynamicFunc func(m apis.Method, target reflect.Type, args []any) bool

// Static wraps fn into a non-runtime matcher. A nil fn yields the canonical
// always-true matcher.
func Static(fn StaticFunc) apis.MethodMatcher {
	if fn == nil {
		return TrueMethodMatcher()
	}
	return staticMatcher{fn: fn}
}

// staticMatcher is a non-runtime matcher; its dynamic entry point must never
// be reached and panics if it is.
type staticMatcher struct {
	fn StaticFunc
}

func (s staticMatcher) Matches(m apis.Method, target reflect.Type) bool { return s.fn(m, target) }
func (staticMatcher) IsRuntime() bool                                   { return false }
func (staticMatcher) MatchesArgs(apis.Method, reflect.Type, []any) bool {
	panic(ErrStaticDynamicCall)
}

// Dynamic builds a runtime matcher from a static and a dynamic predicate.
// A nil static predicate statically accepts every method; a nil dynamic
// predicate is a programming error and panics immediately.
func Dynamic(static StaticFunc, dynamic DynamicFunc) apis.MethodMatcher {
	if dynamic == nil {
		panic(ErrNilDynamicFunc)
	}
	return dynamicMatcher{static: static, dynamic: dynamic}
}

// dynamicMatcher requires a per-invocation check after static matching.
type dynamicMatcher struct {
	static  StaticFunc
	dynamic DynamicFunc
}

func (d dynamicMatcher) Matches(m apis.Method, target reflect.Type) bool {
	if d.static == nil {
		return true
	}
	return d.static(m, target)
}

func (dynamicMatcher) IsRuntime() bool { return true }

func (d dynamicMatcher) MatchesArgs(m apis.Method, target reflect.Type, args []any) bool {
	return d.dynamic(m, target, args)
}
