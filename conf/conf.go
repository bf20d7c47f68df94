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

// Package conf loads declarative interception elements from YAML and applies
// them to an escalation registry.
//
// Multiple configuration elements may each wish to install a different
// interceptor-installer variant; only a single one should be active per
// scope. Each element therefore requests a capability level on the shared
// InterceptorSlot and the registry's escalation protocol converges on the
// most capable variant requested by any element, regardless of document
// order. The proxy flags merge idempotently into the slot.
//
// A document looks like:
//
//	interception:
//	  - element: tx
//	    mode: annotation
//	    proxy-target-class: true
//	    expose-proxy: false
package conf

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"gopkg.in/yaml.v3"

	"dirpx.dev/afx/escalation"
)

// InterceptorSlot is the well-known slot name of the internally managed
// interceptor installer.
const InterceptorSlot = "afx.conf.internalInterceptorInstaller"

var (
	// ErrNilRegistry is returned when Apply is given a nil registry:
	// applying configuration against a missing scope is a precondition
	// violation, never an invitation to create global state.
	ErrNilRegistry = errors.New("afx(conf): nil escalation registry provided")
	// ErrUnknownMode is returned for a mode token outside the known set.
	ErrUnknownMode = errors.New("afx(conf): unknown interception mode")
	// ErrIncompleteLevels is returned when the Levels mapping leaves a
	// requested mode without a strategy type.
	ErrIncompleteLevels = errors.New("afx(conf): no strategy type mapped for mode")
)

// Mode selects which interceptor-installer variant a configuration element
// requests, least to most capable.
type Mode string

const (
	// ModeInfrastructure installs the minimal variant that only honors
	// infrastructure-role advisors.
	ModeInfrastructure Mode = "infrastructure"
	// ModeAdvisor installs the variant that honors all declared advisors.
	ModeAdvisor Mode = "advisor"
	// ModeAnnotation installs the most capable variant, which additionally
	// discovers annotated aspects.
	ModeAnnotation Mode = "annotation"
)

// ParseMode converts a textual mode token. The empty string defaults to
// ModeInfrastructure, mirroring elements that omit the attribute.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "":
		return ModeInfrastructure, nil
	case ModeInfrastructure, ModeAdvisor, ModeAnnotation:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// UnmarshalYAML decodes and validates a mode token in place.
func (m *Mode) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Element is one interception configuration element.
type Element struct {
	// Element names the configuration source (e.g. "tx", "aspect"); it is
	// retained as the slot's source metadata when the element creates the
	// registration.
	Element string `yaml:"element"`
	// Mode selects the requested capability level.
	Mode Mode `yaml:"mode"`
	// ProxyTargetClass requests class-based proxying on the slot.
	ProxyTargetClass bool `yaml:"proxy-target-class"`
	// ExposeProxy requests exposing the active proxy for retrieval.
	ExposeProxy bool `yaml:"expose-proxy"`
}

// Document is a full interception configuration document.
type Document struct {
	Interception []Element `yaml:"interception"`
}

// Load reads a YAML document from r. Unknown fields are rejected so typos in
// configuration fail at load time instead of silently dropping behavior.
func Load(r io.Reader) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, nil
		}
		return Document{}, fmt.Errorf("afx(conf): decoding document: %w", err)
	}
	return doc, nil
}

// Levels maps each mode to the strategy type registered for it. The caller
// owns the concrete installer implementations; conf only carries their
// identities into the escalation protocol.
type Levels struct {
	Infrastructure reflect.Type
	Advisor        reflect.Type
	Annotation     reflect.Type
}

// Order returns the capability order implied by the mapping, least to most
// capable, suitable for escalation.New.
func (l Levels) Order() []reflect.Type {
	return []reflect.Type{l.Infrastructure, l.Advisor, l.Annotation}
}

func (l Levels) forMode(m Mode) (reflect.Type, error) {
	var t reflect.Type
	switch m {
	case "", ModeInfrastructure:
		t = l.Infrastructure
	case ModeAdvisor:
		t = l.Advisor
	case ModeAnnotation:
		t = l.Annotation
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, m)
	}
	if t == nil {
		return nil, fmt.Errorf("%w: %q", ErrIncompleteLevels, m)
	}
	return t, nil
}

// Apply walks the document's elements in order, requesting each element's
// capability level on InterceptorSlot and merging its proxy flags. The first
// error aborts: configuration must fail fast rather than register the wrong
// strategy.
func Apply(doc Document, reg *escalation.Registry, levels Levels) error {
	if reg == nil {
		return ErrNilRegistry
	}
	for _, el := range doc.Interception {
		lvl, err := levels.forMode(el.Mode)
		if err != nil {
			return fmt.Errorf("element %q: %w", el.Element, err)
		}
		if _, err := reg.Request(InterceptorSlot, lvl, el.Element); err != nil {
			return fmt.Errorf("element %q: %w", el.Element, err)
		}
		if el.ProxyTargetClass {
			reg.ForceClassProxying(InterceptorSlot)
		}
		if el.ExposeProxy {
			reg.ForceExposeProxy(InterceptorSlot)
		}
	}
	return nil
}
