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

// Package attribute resolves a single piece of declarative metadata for a
// (method, target type) pair by probing lookup sites from most specific to
// least specific, and memoizes the result, positive or negative, per
// method identity.
//
// The fallback order is: 1. the most specific method implementation for the
// target; 2. that method's declaring type; 3. the original method as passed
// in; 4. the original method's declaring type. Type-level sites apply only
// to genuine user-level methods, so promoted wrappers and generated proxy
// methods never pick up type attributes. Sites 3 and 4 are probed only when
// most-specific resolution actually substituted a different method.
//
// Reads are lock-free on the steady-state hot path; cache misses are
// coalesced so a thundering herd on a cold key computes once.
package attribute

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"dirpx.dev/afx/apis"
	uref "dirpx.dev/afx/utils/reflect"
)

var (
	// ErrNilProbe is the panic value raised when New is given a nil probe.
	ErrNilProbe = errors.New("afx(attribute): nil probe provided")
	// ErrZeroMethod is the panic value raised when Resolve is given the zero
	// method descriptor.
	ErrZeroMethod = errors.New("afx(attribute): zero method descriptor provided")
)

// New constructs a Resolver over the given probe. The probe supplies the
// leaf lookups (how a single method or type carries metadata); the resolver
// owns only the fallback order and the cache. A nil probe is a programming
// error and panics immediately.
func New[T any](probe apis.Probe[T], cfg apis.Config, opts ...Option) *Resolver[T] {
	if probe == nil {
		panic(ErrNilProbe)
	}
	s := settings{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&s)
	}
	return &Resolver[T]{probe: probe, cfg: cfg, log: s.log}
}

// Option is a functional option applied during Resolver construction.
type Option func(*settings)

type settings struct {
	log *zap.Logger
}

// WithLogger sets the logger used for cache-fill diagnostics.
// A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.log = l
		}
	}
}

// Resolver computes attributes of type T for join points, with fallback and
// memoization. One resolver is typically owned by one configured
// interceptor, not shared process-wide.
type Resolver[T any] struct {
	probe apis.Probe[T]
	cfg   apis.Config
	log   *zap.Logger

	// cache maps apis.MethodKey to entry[T]. Populated once per key; the
	// tagged entry distinguishes "resolved as absent" from "not yet
	// computed" without a sentinel attribute value ever escaping.
	cache sync.Map
	// group coalesces concurrent computations of the same cold key.
	group singleflight.Group
}

// entry is the tagged optional stored in the cache.
type entry[T any] struct {
	attr T
	ok   bool
}

// Resolve returns the attribute for m invoked through target, or false when
// the fallback chain yields nothing. A nil target means m's own declaring
// type. The first resolution per (method, target) pair runs the probes; all
// later calls are served from cache, including negative results. A zero
// method descriptor is a programming error and panics.
func (r *Resolver[T]) Resolve(m apis.Method, target reflect.Type) (T, bool) {
	var zero T
	if m.IsZero() {
		panic(ErrZeroMethod)
	}
	// Universal-base plumbing methods are never attribute-bearing; they are
	// cheap to re-check and excluded from the cache to keep it from filling
	// with irrelevant entries.
	if r.isUniversal(m) {
		return zero, false
	}

	key := m.Key(target)
	if v, ok := r.cache.Load(key); ok {
		e := v.(entry[T])
		return e.attr, e.ok
	}

	v, _, _ := r.group.Do(flightKey(key), func() (any, error) {
		if v, ok := r.cache.Load(key); ok {
			return v.(entry[T]), nil
		}
		attr, ok := r.compute(m, target)
		e := entry[T]{attr: attr, ok: ok}
		r.cache.Store(key, e)
		if ok {
			r.log.Debug("caching resolved attribute", zap.String("method", m.String()))
		}
		return e, nil
	})
	e := v.(entry[T])
	return e.attr, e.ok
}

// compute walks the fallback chain without touching the cache. Resolve is
// effectively a caching decorator around it.
func (r *Resolver[T]) compute(m apis.Method, target reflect.Type) (T, bool) {
	var zero T

	// The method may be visible through an interface or a generated proxy,
	// but the attribute we want lives on the target's implementation.
	specific := uref.MostSpecificMethod(m, target, r.cfg)

	// First try is the most specific method itself.
	if a, ok := r.probe.ProbeMethod(specific); ok {
		return a, true
	}
	// Second try is the most specific method's declaring type.
	if specific.Declaring != nil {
		if a, ok := r.probe.ProbeType(specific.Declaring); ok && uref.IsUserLevel(m, r.cfg) {
			return a, true
		}
	}

	if specific != m {
		// Fallback is to look at the original method.
		if a, ok := r.probe.ProbeMethod(m); ok {
			return a, true
		}
		// Last fallback is the original method's declaring type.
		if m.Declaring != nil {
			if a, ok := r.probe.ProbeType(m.Declaring); ok && uref.IsUserLevel(m, r.cfg) {
				return a, true
			}
		}
	}

	return zero, false
}

// isUniversal reports whether m resolves to the configured universal base
// type's method set.
func (r *Resolver[T]) isUniversal(m apis.Method) bool {
	base := r.cfg.UniversalBase
	if base == nil || m.Declaring == nil {
		return false
	}
	if m.Declaring == base {
		return true
	}
	return uref.DeclaringType(m.Declaring, m.Name, r.cfg) == base
}

// Count returns the number of cached entries (positive and negative).
// Intended for diagnostics and tests.
func (r *Resolver[T]) Count() int {
	n := 0
	r.cache.Range(func(any, any) bool {
		n++
		return true
	})
	return n
}

// Reset clears the cache. Matching configuration does not change at runtime,
// so this exists for scope teardown and tests.
func (r *Resolver[T]) Reset() {
	r.cache = sync.Map{}
}

// flightKey renders a MethodKey as a string for miss coalescing. Types are
// identified by their runtime type descriptor pointers, which are unique and
// stable for the process lifetime.
func flightKey(k apis.MethodKey) string {
	var b strings.Builder
	b.WriteString(strconv.FormatUint(uint64(typePtr(k.Target)), 16))
	b.WriteByte('/')
	b.WriteString(strconv.FormatUint(uint64(typePtr(k.Declaring)), 16))
	b.WriteByte('/')
	b.WriteString(strconv.FormatUint(uint64(typePtr(k.Sig)), 16))
	b.WriteByte('/')
	b.WriteString(k.Name)
	return b.String()
}

func typePtr(t reflect.Type) uintptr {
	if t == nil {
		return 0
	}
	return reflect.ValueOf(t).Pointer()
}
