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

package afx

import (
	"reflect"

	"dirpx.dev/afx/apis"
	"dirpx.dev/afx/pointcut"
	uref "dirpx.dev/afx/utils/reflect"
)

// CanApply reports whether pc could apply to any method of target: the class
// filter accepts the (proxy-unwrapped) type and at least one method matches
// statically. A runtime matcher's static yes counts; whether individual
// invocations match is then a per-call question.
//
// This is a configuration-time check; callers use it to decide whether to
// install an advisor on a proxied type at all.
func CanApply(pc apis.Pointcut, target reflect.Type, cfg apis.Config) bool {
	if pc == nil || target == nil {
		return false
	}
	user := uref.UserType(target, cfg)
	if user == nil || !pc.ClassFilter().Matches(user) {
		return false
	}
	mm := pc.MethodMatcher()
	if mm == pointcut.TrueMethodMatcher() {
		return true
	}
	for _, m := range methodsOf(user) {
		if mm.Matches(m, user) {
			return true
		}
	}
	return false
}

// methodsOf enumerates the method set of t as join point descriptors. For
// non-interface types the pointer method set is used, which subsumes the
// value method set.
func methodsOf(t reflect.Type) []apis.Method {
	set := t
	if t.Kind() != reflect.Interface && t.Kind() != reflect.Ptr {
		set = reflect.PtrTo(t)
	}
	out := make([]apis.Method, 0, set.NumMethod())
	for i := 0; i < set.NumMethod(); i++ {
		m := set.Method(i)
		out = append(out, apis.Method{Name: m.Name, Declaring: t, Func: m.Type})
	}
	return out
}

// NewEvaluator builds an Evaluator over pc. A nil pointcut means the
// canonical match-everything pointcut.
func NewEvaluator(pc apis.Pointcut, cfg apis.Config) *Evaluator {
	if pc == nil {
		pc = pointcut.True()
	}
	return &Evaluator{pc: pc, cfg: cfg}
}

// Evaluator runs the two-phase matching protocol for one pointcut. It is
// immutable and safe for concurrent use; callers are expected to cache
// StaticMatch results per (method, type) and to call RuntimeMatch on the
// invoking goroutine, per invocation, in advice-chain order.
type Evaluator struct {
	pc  apis.Pointcut
	cfg apis.Config
}

// Pointcut returns the evaluated pointcut.
func (e *Evaluator) Pointcut() apis.Pointcut { return e.pc }

// MatchesType runs the class-filter phase against the proxy-unwrapped
// target type. Cacheable per type indefinitely.
func (e *Evaluator) MatchesType(target reflect.Type) bool {
	user := uref.UserType(target, e.cfg)
	if user == nil {
		return false
	}
	return e.pc.ClassFilter().Matches(user)
}

// StaticMatch runs the class-filter and static method phases. Cacheable per
// (method, target) indefinitely; static matching is a pure,
// argument-independent function.
func (e *Evaluator) StaticMatch(m apis.Method, target reflect.Type) bool {
	if m.IsZero() {
		return false
	}
	eff := apis.EffectiveTarget(m, target)
	if !e.MatchesType(eff) {
		return false
	}
	return e.pc.MethodMatcher().Matches(m, target)
}

// RequiresRuntime reports whether a statically matched join point still
// needs a per-invocation RuntimeMatch.
func (e *Evaluator) RequiresRuntime() bool {
	return e.pc.MethodMatcher().IsRuntime()
}

// RuntimeMatch runs the dynamic phase for a join point whose StaticMatch
// already returned true. For non-runtime matchers the static decision is
// final and RuntimeMatch reports true without consulting the matcher.
func (e *Evaluator) RuntimeMatch(m apis.Method, target reflect.Type, args []any) bool {
	mm := e.pc.MethodMatcher()
	if !mm.IsRuntime() {
		return true
	}
	return mm.MatchesArgs(m, target, args)
}

// Match runs the full protocol for one invocation: class filter, static
// phase, then, only when required, the dynamic phase. Callers holding a
// cached static result should prefer StaticMatch + RuntimeMatch so the
// dynamic check runs at the right point in the advice chain.
func (e *Evaluator) Match(m apis.Method, target reflect.Type, args []any) bool {
	if !e.StaticMatch(m, target) {
		return false
	}
	return e.RuntimeMatch(m, target, args)
}
