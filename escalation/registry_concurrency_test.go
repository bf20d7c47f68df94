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

package escalation_test

import (
	"reflect"
	"testing"

	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"
)

// Concurrent requests at mixed levels must converge on the most capable
// level requested, regardless of arrival order.
func TestRegistry_ConcurrentRequestsConverge(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := newRegistry(t)
	levels := []reflect.Type{basic, advisor, annotation}

	var g errgroup.Group
	for i := 0; i < 64; i++ {
		level := levels[i%len(levels)]
		g.Go(func() error {
			_, err := r.Request(slotName, level, nil)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent Request error = %v", err)
	}

	info, ok := r.Active(slotName)
	if !ok {
		t.Fatalf("slot missing after concurrent registration")
	}
	if info.Level != annotation {
		t.Fatalf("Level = %v, want %v", info.Level, annotation)
	}
	if r.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", r.Count())
	}
}

// Flag setters racing with escalation must never lose a set flag.
func TestRegistry_ConcurrentFlagsAndEscalation(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := newRegistry(t)
	if _, err := r.Request(slotName, basic, nil); err != nil {
		t.Fatalf("seed Request error = %v", err)
	}

	var g errgroup.Group
	for i := 0; i < 32; i++ {
		g.Go(func() error {
			_, err := r.Request(slotName, annotation, nil)
			return err
		})
		g.Go(func() error {
			r.ForceClassProxying(slotName)
			return nil
		})
		g.Go(func() error {
			r.ForceExposeProxy(slotName)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent mutation error = %v", err)
	}

	info, _ := r.Active(slotName)
	if info.Level != annotation {
		t.Fatalf("Level = %v, want %v", info.Level, annotation)
	}
	if !info.ProxyTargetClass || !info.ExposeProxy {
		t.Fatalf("flags = (%v, %v), want both true",
			info.ProxyTargetClass, info.ExposeProxy)
	}
}
