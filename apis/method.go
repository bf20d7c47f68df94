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
	"path"
	"reflect"
)

// Method is an immutable join point descriptor: a method identified by its
// name, the type it was looked up on, and its signature.
//
// Declaring is the type through which the method is visible, which may be an
// interface or a struct; it is not necessarily the deepest type that declares
// the method (embedded/promoted methods keep the outer type here, resolution
// to the real declaration site is a utils/reflect concern).
//
// Method is a comparable value type: two descriptors built from the same
// (type, name) always compare equal, and descriptors for distinct methods on
// the same type never do, since the signature participates in the value.
type Method struct {
	// Name is the method name.
	Name string
	// Declaring is the type the method was resolved on.
	Declaring reflect.Type
	// Func is the method's signature (a reflect.Func type).
	Func reflect.Type
}

// MethodOf looks up the method named name on t and returns its descriptor.
// For struct types the pointer method set is consulted as well, so methods
// with pointer receivers are found through their value type.
func MethodOf(t reflect.Type, name string) (Method, bool) {
	if t == nil || name == "" {
		return Method{}, false
	}
	if m, ok := t.MethodByName(name); ok {
		return Method{Name: name, Declaring: t, Func: m.Type}, true
	}
	// Pointer method set covers pointer receivers on value types.
	if t.Kind() != reflect.Interface && t.Kind() != reflect.Ptr {
		if m, ok := reflect.PtrTo(t).MethodByName(name); ok {
			return Method{Name: name, Declaring: t, Func: m.Type}, true
		}
	}
	return Method{}, false
}

// IsZero reports whether m is the zero descriptor.
func (m Method) IsZero() bool {
	return m.Name == "" && m.Declaring == nil && m.Func == nil
}

// String returns a stable "pkg.Type.Name" identification for logs and
// diagnostics.
func (m Method) String() string {
	if m.IsZero() {
		return "<zero method>"
	}
	name := m.Name
	if m.Declaring != nil {
		tn := m.Declaring.Name()
		if p := m.Declaring.PkgPath(); p != "" {
			tn = path.Base(p) + "." + tn
		}
		name = tn + "." + name
	}
	return name
}

// Key derives the cache key identifying m as invoked through target.
// A nil target means the method's own declaring type is the effective target.
func (m Method) Key(target reflect.Type) MethodKey {
	if target == nil {
		target = m.Declaring
	}
	return MethodKey{Target: target, Declaring: m.Declaring, Name: m.Name, Sig: m.Func}
}

// EffectiveTarget returns target, or m's declaring type when target is nil:
// absent an explicit target type, the method's own declaring type is the
// effective target for matching and resolution purposes.
func EffectiveTarget(m Method, target reflect.Type) reflect.Type {
	if target != nil {
		return target
	}
	return m.Declaring
}

// MethodKey identifies a (method, target type) pair. It is a plain comparable
// struct so it can key maps directly; distinct methods on the same type never
// collide because name and signature both participate.
type MethodKey struct {
	// Target is the effective target type of the invocation.
	Target reflect.Type
	// Declaring is the type the method was resolved on.
	Declaring reflect.Type
	// Name is the method name.
	Name string
	// Sig is the method signature.
	Sig reflect.Type
}
