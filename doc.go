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

// Package afx is a cross-cutting concern resolution engine.
//
// afx decides, for a given join point (a method on a type) and an optional
// runtime invocation, whether cross-cutting behavior (advice) applies; and
// it converges competing infrastructure strategy registrations onto a single
// most-capable implementation per scope. It does not build proxies or invoke
// advice: a call-interception layer asks afx for match decisions and
// per-call metadata, and wires the results however it likes.
//
// # Design
//
// The engine is split into small packages around the apis contracts:
//
//   - apis: the capability-set interfaces. A Pointcut pairs a ClassFilter
//     (does this advice apply to instances of this type at all?) with a
//     MethodMatcher (a two-phase method predicate). A Method value is an
//     immutable join point descriptor; a Probe is the leaf lookup for
//     declarative metadata.
//
//   - pointcut: the canonical always-true singleton, adapters for plain
//     predicates, and union/intersection composition that preserves the
//     two-phase contract.
//
//   - escalation: a scope-owned registry that installs at most one
//     infrastructure strategy per named slot, upgrading to the most capable
//     variant any configuration source requests and never downgrading.
//
//   - attribute: a fallback-chained, negatively-cached resolver that
//     computes per-method metadata (e.g. transactional semantics) by
//     probing lookup sites from most specific to least specific.
//
//   - conf: a YAML loader for interception elements that drives the
//     escalation registry.
//
// This root package carries the glue the interception layer calls:
// CanApply for configuration-time applicability and Evaluator for the
// per-call matching protocol.
//
// # Matching protocol
//
// Whether advice applies to a concrete call is decided in phases, each
// cacheable by the caller at the granularity stated:
//
//  1. ClassFilter(targetType). False means the pointcut never intercepts
//     this type; cacheable per type indefinitely.
//
//  2. The static method predicate. False means the method never matches on
//     this type, regardless of arguments; cacheable per (method, type).
//
//  3. IsRuntime. False makes a static yes final: the advice applies to
//     every invocation and no dynamic check ever runs.
//
//  4. Otherwise the dynamic predicate runs immediately before each
//     candidate advice execution, after earlier advice in the chain, so it
//     can observe their side effects. It is never skipped, memoized, or
//     reordered.
//
// # Concurrency model
//
// Pointcuts, filters and matchers are immutable after configuration
// assembly; any number of goroutines may evaluate them without
// coordination. Dynamic matching runs synchronously on the invoking
// goroutine. The escalation registry serializes its read-decide-write
// sequence behind one mutex per scope (registration is a startup concern,
// not a hot path). The attribute cache is lock-free on the read path and
// coalesces concurrent misses for the same key.
//
// Nothing in afx spawns goroutines, blocks on I/O, or retries: matching and
// resolution are bounded, deterministic, in-memory computations. Failures
// raised by user-supplied dynamic predicates or probes propagate to the
// caller untouched.
//
// # Usage pattern
//
// A typical interception layer does:
//
//  1. During assembly, build pointcuts (pointcut.New, pointcut.Union, ...)
//     and keep one Evaluator per advisor.
//
//  2. Per proxied type, call CanApply once to decide whether to install the
//     advisor at all.
//
//  3. Per intercepted call, run Evaluator.StaticMatch once per (method,
//     type), caching the result, and Evaluator.RuntimeMatch per
//     invocation only when RequiresRuntime reports true.
//
//  4. For attribute-driven advice, hold one attribute.Resolver per
//     interceptor and call Resolve on every invocation; after warm-up every
//     call is a cache hit.
//
// Configuration sources converge on infrastructure strategies separately,
// via conf.Apply or escalation.Registry directly.
package afx
