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

package escalation

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"

	"dirpx.dev/afx/apis"
)

var (
	// ErrEmptyOrder is returned when no capability order is provided.
	ErrEmptyOrder = errors.New("afx(escalation): empty capability order provided")
	// ErrNilCapability is returned when a nil capability type is provided.
	ErrNilCapability = errors.New("afx(escalation): nil capability type provided")
	// ErrDuplicateCapability is returned when the capability order lists the
	// same strategy type twice: the order must be total.
	ErrDuplicateCapability = errors.New("afx(escalation): duplicate capability in order")
	// ErrEmptySlot is returned when an empty slot name is provided.
	ErrEmptySlot = errors.New("afx(escalation): empty slot name provided")
	// ErrUnknownCapability indicates a request for a strategy type that is
	// not in the fixed capability order. This is a configuration error and
	// must abort startup rather than register the wrong strategy.
	ErrUnknownCapability = errors.New("afx(escalation): unknown capability type")
)

// New constructs a Registry over a fixed capability order, least to most
// capable. The order is total: every candidate strategy type appears exactly
// once. The registry is owned by the scope (container) that created it;
// there is no ambient process-wide instance.
func New(order []reflect.Type, opts ...Option) (*Registry, error) {
	if len(order) == 0 {
		return nil, ErrEmptyOrder
	}
	index := make(map[reflect.Type]int, len(order))
	for i, t := range order {
		if t == nil {
			return nil, ErrNilCapability
		}
		if _, dup := index[t]; dup {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateCapability, t)
		}
		index[t] = i
	}
	r := &Registry{
		order: append([]reflect.Type(nil), order...),
		index: index,
		log:   zap.NewNop(),
		slots: make(map[string]*slot),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Option is a functional option applied during Registry construction.
type Option func(*Registry)

// WithLogger sets the logger used for registration decisions.
// A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// Registry ensures at most one infrastructure strategy is registered per
// named slot, escalating an existing registration to a more capable variant
// when requested and never downgrading. Registration happens at
// configuration time, not on the call hot path, so all mutations share one
// mutex.
type Registry struct {
	// order lists capability strategy types, least to most capable.
	order []reflect.Type
	// index maps each capability type to its priority in order.
	index map[reflect.Type]int
	// log records registration decisions.
	log *zap.Logger

	// mu serializes the read-decide-write sequence on slots.
	mu sync.Mutex
	// slots maps slot name to its registration record.
	slots map[string]*slot
}

// slot is a mutable registration record. Escalation mutates level in place:
// the record's identity, source and flags survive an upgrade.
type slot struct {
	name             string
	level            reflect.Type
	source           any
	order            int
	proxyTargetClass bool
	exposeProxy      bool
}

// SlotInfo is an immutable snapshot of a slot's registration state.
type SlotInfo struct {
	// Name is the slot name.
	Name string
	// Level is the currently registered capability strategy type.
	Level reflect.Type
	// Source describes the configuration element that first created the
	// registration; escalation preserves it.
	Source any
	// Order is the precedence value of the registration.
	Order int
	// ProxyTargetClass reports the "prefer class-based proxying" flag.
	ProxyTargetClass bool
	// ExposeProxy reports the "expose active proxy for retrieval" flag.
	ExposeProxy bool
}

// Request registers candidate in the named slot, or escalates an existing
// registration when candidate is more capable. It never downgrades: a
// request at or below the current level leaves the slot untouched.
//
// source describes the requesting configuration element and is retained only
// by the request that creates the slot.
func (r *Registry) Request(slotName string, candidate reflect.Type, source any) (Outcome, error) {
	if slotName == "" {
		return Retained, ErrEmptySlot
	}
	if candidate == nil {
		return Retained, ErrNilCapability
	}
	required, ok := r.index[candidate]
	if !ok {
		return Retained, fmt.Errorf("%w: %v", ErrUnknownCapability, candidate)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, exists := r.slots[slotName]
	if !exists {
		r.slots[slotName] = &slot{
			name:   slotName,
			level:  candidate,
			source: source,
			order:  apis.HighestPrecedence,
		}
		r.log.Info("registered infrastructure strategy",
			zap.String("slot", slotName),
			zap.Stringer("level", candidate))
		return Created, nil
	}

	current, ok := r.index[s.level]
	if !ok {
		// A level can only get here through the total order, so a miss means
		// the order itself was broken after construction.
		return Retained, fmt.Errorf("%w: registered level %v", ErrUnknownCapability, s.level)
	}
	switch {
	case s.level == candidate:
		return AlreadyPresent, nil
	case current < required:
		r.log.Info("escalated infrastructure strategy",
			zap.String("slot", slotName),
			zap.Stringer("from", s.level),
			zap.Stringer("to", candidate))
		s.level = candidate
		return Escalated, nil
	default:
		return Retained, nil
	}
}

// Priority returns the position of level in the capability order. An unknown
// level is a configuration error.
func (r *Registry) Priority(level reflect.Type) (int, error) {
	if level == nil {
		return 0, ErrNilCapability
	}
	i, ok := r.index[level]
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrUnknownCapability, level)
	}
	return i, nil
}

// ForceClassProxying sets the "prefer class-based proxying" flag on the
// named slot. It is idempotent and independent of escalation; when the slot
// does not exist yet there is nothing to flag and the call reports false.
func (r *Registry) ForceClassProxying(slotName string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[slotName]
	if !ok {
		return false
	}
	s.proxyTargetClass = true
	return true
}

// ForceExposeProxy sets the "expose active proxy for retrieval" flag on the
// named slot, with the same idempotence rules as ForceClassProxying.
func (r *Registry) ForceExposeProxy(slotName string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[slotName]
	if !ok {
		return false
	}
	s.exposeProxy = true
	return true
}

// Active returns a snapshot of the named slot's registration, if present.
func (r *Registry) Active(slotName string) (SlotInfo, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[slotName]
	if !ok {
		return SlotInfo{}, false
	}
	return s.info(), true
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *Registry) Entries() []SlotInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries := make([]SlotInfo, 0, len(r.slots))
	for _, s := range r.slots {
		entries = append(entries, s.info())
	}
	return entries
}

// Count returns the number of registered slots.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.slots)
}

// Reset clears all registrations. Intended for scope teardown and tests.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots = make(map[string]*slot)
}

// Capabilities returns a copy of the capability order, least to most capable.
func (r *Registry) Capabilities() []reflect.Type {
	return append([]reflect.Type(nil), r.order...)
}

func (s *slot) info() SlotInfo {
	return SlotInfo{
		Name:             s.name,
		Level:            s.level,
		Source:           s.source,
		Order:            s.order,
		ProxyTargetClass: s.proxyTargetClass,
		ExposeProxy:      s.exposeProxy,
	}
}
