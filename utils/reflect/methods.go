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

package reflect

import (
	"reflect"
	"strings"

	"dirpx.dev/afx/apis"
	"dirpx.dev/afx/config"
)

// UserType returns the nearest user-visible type for t.
//
// Generated proxy artifacts are struct types whose name carries
// cfg.ProxySuffix and which embed their target; UserType unwraps such
// wrappers (and pointers) until an ordinary type is reached, so proxy
// classes never mask real lookup sites. The walk is bounded by
// cfg.MaxEmbedDepth.
func UserType(t reflect.Type, cfg apis.Config) reflect.Type {
	if t == nil {
		return nil
	}
	maxDepth := cfg.MaxEmbedDepth
	if maxDepth <= 0 {
		maxDepth = config.DefaultMaxEmbedDepth
	}

	for i := 0; t != nil && i < maxDepth; i++ {
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
			continue
		}
		if cfg.ProxySuffix == "" || t.Kind() != reflect.Struct ||
			!strings.HasSuffix(t.Name(), cfg.ProxySuffix) {
			return t
		}
		// Proxy artifact: substitute the embedded target.
		next := embeddedTarget(t)
		if next == nil {
			return t
		}
		t = next
	}
	return t
}

// embeddedTarget returns the first embedded field's type, unwrapping a
// pointer field, or nil when t embeds nothing.
func embeddedTarget(t reflect.Type) reflect.Type {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		ft := f.Type
		if ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		return ft
	}
	return nil
}

// MostSpecificMethod returns the implementation of m that would execute when
// invoked through target.
//
// Resolution proceeds in two steps: if target (after proxy unwrapping via
// UserType) carries a signature-equivalent method of the same name, that
// override is taken; the result is then resolved through promoted-method
// indirection to the deepest embedded type actually declaring it, so wrapper
// forwarders report their original declaration site.
//
// A nil target leaves m unchanged. Promotion is indistinguishable from
// shadowing through reflection, so a struct that both embeds a provider of
// the method and declares its own resolves to the embedded declaration.
func MostSpecificMethod(m apis.Method, target reflect.Type, cfg apis.Config) apis.Method {
	if m.IsZero() || target == nil {
		return m
	}

	out := m
	if user := UserType(target, cfg); user != nil {
		if cand, ok := apis.MethodOf(user, m.Name); ok && SameSignature(m, cand) {
			out = cand
		}
	}

	// Resolve through promoted wrappers to the original declaration.
	if d := DeclaringType(out.Declaring, out.Name, cfg); d != nil && d != derefType(out.Declaring) {
		if cand, ok := apis.MethodOf(d, out.Name); ok {
			out = cand
		}
	}
	return out
}

// DeclaringType returns the deepest type in t's embedding chain that
// provides the method named name, or t itself (dereferenced) when the method
// is declared directly. Returns nil when t does not have the method at all.
// The walk is bounded by cfg.MaxEmbedDepth.
func DeclaringType(t reflect.Type, name string, cfg apis.Config) reflect.Type {
	maxDepth := cfg.MaxEmbedDepth
	if maxDepth <= 0 {
		maxDepth = config.DefaultMaxEmbedDepth
	}
	return declaringType(t, name, maxDepth)
}

func declaringType(t reflect.Type, name string, depth int) reflect.Type {
	if t == nil || name == "" {
		return nil
	}
	base := derefType(t)
	if !hasMethod(base, name) {
		return nil
	}
	if base.Kind() != reflect.Struct || depth <= 0 {
		return base
	}
	for i := 0; i < base.NumField(); i++ {
		f := base.Field(i)
		if !f.Anonymous {
			continue
		}
		if inner := declaringType(f.Type, name, depth-1); inner != nil {
			return inner
		}
	}
	return base
}

// IsUserLevel reports whether m is a genuine user-level method: declared
// directly on its (non-proxy) declaring type rather than promoted from an
// embedded field or generated into a proxy artifact. Interface methods are
// always user-level.
func IsUserLevel(m apis.Method, cfg apis.Config) bool {
	if m.IsZero() || m.Declaring == nil {
		return false
	}
	base := derefType(m.Declaring)
	if base.Kind() == reflect.Interface {
		return true
	}
	if cfg.ProxySuffix != "" && strings.HasSuffix(base.Name(), cfg.ProxySuffix) {
		return false
	}
	return DeclaringType(base, m.Name, cfg) == base
}

// SameSignature reports whether a and b describe equivalent method
// signatures, ignoring the leading receiver parameter that concrete method
// types carry and interface method types do not.
func SameSignature(a, b apis.Method) bool {
	af, bf := a.Func, b.Func
	if af == nil || bf == nil {
		return false
	}
	ao, bo := recvOffset(a), recvOffset(b)
	if af.NumIn()-ao != bf.NumIn()-bo || af.NumOut() != bf.NumOut() {
		return false
	}
	for i := 0; i < af.NumIn()-ao; i++ {
		if af.In(i+ao) != bf.In(i+bo) {
			return false
		}
	}
	for i := 0; i < af.NumOut(); i++ {
		if af.Out(i) != bf.Out(i) {
			return false
		}
	}
	return true
}

// recvOffset is 1 for concrete methods (index 0 is the receiver), 0 for
// interface methods.
func recvOffset(m apis.Method) int {
	if m.Declaring != nil && derefType(m.Declaring).Kind() == reflect.Interface {
		return 0
	}
	return 1
}

func derefType(t reflect.Type) reflect.Type {
	if t != nil && t.Kind() == reflect.Ptr {
		return t.Elem()
	}
	return t
}

// hasMethod checks t's method set, including the pointer method set for
// non-interface types.
func hasMethod(t reflect.Type, name string) bool {
	if t == nil {
		return false
	}
	if _, ok := t.MethodByName(name); ok {
		return true
	}
	if t.Kind() != reflect.Interface && t.Kind() != reflect.Ptr {
		if _, ok := reflect.PtrTo(t).MethodByName(name); ok {
			return true
		}
	}
	return false
}
