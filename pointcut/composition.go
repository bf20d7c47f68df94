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

	"dirpx.dev/afx/apis"
)

// Composition preserves the two-phase contract of apis.MethodMatcher: a
// composed matcher reports IsRuntime true as soon as any branch is runtime,
// and during dynamic evaluation it never invokes MatchesArgs on a non-runtime
// branch, and never skips it for a runtime branch whose static phase passed.

// IntersectFilters returns a filter accepting the types accepted by all of
// the given filters. Nil entries are ignored; with no filters every type is
// accepted.
func IntersectFilters(fs ...apis.ClassFilter) apis.ClassFilter {
	return intersectFilter{fs: compactFilters(fs)}
}

// UnionFilters returns a filter accepting the types accepted by any of the
// given filters. Nil entries are ignored; with no filters no type is
// accepted.
func UnionFilters(fs ...apis.ClassFilter) apis.ClassFilter {
	return unionFilter{fs: compactFilters(fs)}
}

type intersectFilter struct {
	fs []apis.ClassFilter
}

func (f intersectFilter) Matches(t reflect.Type) bool {
	for _, cf := range f.fs {
		if !cf.Matches(t) {
			return false
		}
	}
	return true
}

type unionFilter struct {
	fs []apis.ClassFilter
}

func (f unionFilter) Matches(t reflect.Type) bool {
	for _, cf := range f.fs {
		if cf.Matches(t) {
			return true
		}
	}
	return false
}

// IntersectMatchers returns a matcher that matches when all of the given
// matchers match. Nil entries are ignored; with no matchers every method
// matches statically and no runtime phase exists.
func IntersectMatchers(ms ...apis.MethodMatcher) apis.MethodMatcher {
	return intersectMatcher{ms: compactMatchers(ms)}
}

type intersectMatcher struct {
	ms []apis.MethodMatcher
}

func (im intersectMatcher) Matches(m apis.Method, target reflect.Type) bool {
	for _, mm := range im.ms {
		if !mm.Matches(m, target) {
			return false
		}
	}
	return true
}

func (im intersectMatcher) IsRuntime() bool {
	for _, mm := range im.ms {
		if mm.IsRuntime() {
			return true
		}
	}
	return false
}

// MatchesArgs is only reached when every branch matched statically, so each
// non-runtime branch is already a final yes; every runtime branch must still
// be consulted.
func (im intersectMatcher) MatchesArgs(m apis.Method, target reflect.Type, args []any) bool {
	for _, mm := range im.ms {
		if mm.IsRuntime() && !mm.MatchesArgs(m, target, args) {
			return false
		}
	}
	return true
}

// UnionMatchers returns a matcher that matches when any of the given
// matchers matches. Nil entries are ignored; with no matchers no method
// matches.
func UnionMatchers(ms ...apis.MethodMatcher) apis.MethodMatcher {
	bs := make([]unionBranch, 0, len(ms))
	for _, mm := range ms {
		if mm != nil {
			bs = append(bs, unionBranch{mm: mm})
		}
	}
	return unionMatcher{branches: bs}
}

// unionBranch is one arm of a union matcher. A non-nil cf scopes the arm to
// the types its originating pointcut accepts, so a union of pointcuts never
// lets one arm's matcher fire for another arm's types.
type unionBranch struct {
	cf apis.ClassFilter
	mm apis.MethodMatcher
}

func (b unionBranch) staticMatch(m apis.Method, target reflect.Type) bool {
	if b.cf != nil && !b.cf.Matches(apis.EffectiveTarget(m, target)) {
		return false
	}
	return b.mm.Matches(m, target)
}

type unionMatcher struct {
	branches []unionBranch
}

func (um unionMatcher) Matches(m apis.Method, target reflect.Type) bool {
	for _, b := range um.branches {
		if b.staticMatch(m, target) {
			return true
		}
	}
	return false
}

func (um unionMatcher) IsRuntime() bool {
	for _, b := range um.branches {
		if b.mm.IsRuntime() {
			return true
		}
	}
	return false
}

// MatchesArgs re-checks each branch statically to know which arms are live
// for this join point: a live non-runtime arm is a final yes, a live runtime
// arm gets its dynamic check. Static checks are pure, so the re-evaluation
// is observationally free.
func (um unionMatcher) MatchesArgs(m apis.Method, target reflect.Type, args []any) bool {
	for _, b := range um.branches {
		if !b.staticMatch(m, target) {
			continue
		}
		if !b.mm.IsRuntime() {
			return true
		}
		if b.mm.MatchesArgs(m, target, args) {
			return true
		}
	}
	return false
}

// Intersection composes pointcuts so a join point matches only when every
// pointcut matches it. Nil entries are ignored; with no pointcuts the result
// matches everything.
func Intersection(pcs ...apis.Pointcut) apis.Pointcut {
	live := compactPointcuts(pcs)
	cfs := make([]apis.ClassFilter, len(live))
	mms := make([]apis.MethodMatcher, len(live))
	for i, pc := range live {
		cfs[i] = pc.ClassFilter()
		mms[i] = pc.MethodMatcher()
	}
	return pointcut{cf: IntersectFilters(cfs...), mm: IntersectMatchers(mms...)}
}

// Union composes pointcuts so a join point matches when any pointcut matches
// it. Each arm's matcher stays scoped to its own class filter. Nil entries
// are ignored; with no pointcuts the result matches nothing.
func Union(pcs ...apis.Pointcut) apis.Pointcut {
	live := compactPointcuts(pcs)
	cfs := make([]apis.ClassFilter, len(live))
	bs := make([]unionBranch, len(live))
	for i, pc := range live {
		cfs[i] = pc.ClassFilter()
		bs[i] = unionBranch{cf: pc.ClassFilter(), mm: pc.MethodMatcher()}
	}
	return pointcut{cf: UnionFilters(cfs...), mm: unionMatcher{branches: bs}}
}

func compactFilters(fs []apis.ClassFilter) []apis.ClassFilter {
	out := make([]apis.ClassFilter, 0, len(fs))
	for _, f := range fs {
		if f != nil {
			out = append(out, f)
		}
	}
	return out
}

func compactMatchers(ms []apis.MethodMatcher) []apis.MethodMatcher {
	out := make([]apis.MethodMatcher, 0, len(ms))
	for _, m := range ms {
		if m != nil {
			out = append(out, m)
		}
	}
	return out
}

func compactPointcuts(pcs []apis.Pointcut) []apis.Pointcut {
	out := make([]apis.Pointcut, 0, len(pcs))
	for _, pc := range pcs {
		if pc != nil {
			out = append(out, pc)
		}
	}
	return out
}
