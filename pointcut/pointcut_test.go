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

package pointcut_test

import (
	"errors"
	"reflect"
	"testing"

	"dirpx.dev/afx/apis"
	"dirpx.dev/afx/pointcut"
)

type Account struct{}

func (*Account) Withdraw(amount int) error { return nil }
func (*Account) Deposit(amount int) error  { return nil }

func accountType() reflect.Type { return reflect.TypeOf(Account{}) }

func methodOn(t *testing.T, typ reflect.Type, name string) apis.Method {
	t.Helper()
	m, ok := apis.MethodOf(typ, name)
	if !ok {
		t.Fatalf("method %s not found on %v", name, typ)
	}
	return m
}

func TestTrue_SharedSingleton(t *testing.T) {
	if pointcut.True() != pointcut.True() {
		t.Fatalf("True() should return a shared singleton")
	}

	pc := pointcut.True()
	if !pc.ClassFilter().Matches(accountType()) {
		t.Fatalf("true class filter rejected a type")
	}
	mm := pc.MethodMatcher()
	if mm.IsRuntime() {
		t.Fatalf("true matcher must not be runtime")
	}
	if !mm.Matches(methodOn(t, accountType(), "Withdraw"), accountType()) {
		t.Fatalf("true matcher rejected a method")
	}
}

func TestStaticMatcher_DynamicCallPanics(t *testing.T) {
	mm := pointcut.Static(func(apis.Method, reflect.Type) bool { return true })

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, pointcut.ErrStaticDynamicCall) {
			t.Fatalf("recover() = %v, want ErrStaticDynamicCall", r)
		}
	}()
	mm.MatchesArgs(methodOn(t, accountType(), "Withdraw"), accountType(), nil)
}

func TestStatic_NilFuncIsTrueMatcher(t *testing.T) {
	if pointcut.Static(nil) != pointcut.TrueMethodMatcher() {
		t.Fatalf("Static(nil) should be the canonical true matcher")
	}
}

func TestDynamic_NilDynamicPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("Dynamic(nil dynamic) should panic")
		}
	}()
	pointcut.Dynamic(nil, nil)
}

func TestDynamic_NilStaticMatchesAll(t *testing.T) {
	mm := pointcut.Dynamic(nil, func(_ apis.Method, _ reflect.Type, args []any) bool {
		return len(args) > 0
	})
	m := methodOn(t, accountType(), "Withdraw")

	if !mm.IsRuntime() {
		t.Fatalf("dynamic matcher must report IsRuntime")
	}
	if !mm.Matches(m, accountType()) {
		t.Fatalf("nil static should statically match everything")
	}
	if mm.MatchesArgs(m, accountType(), nil) {
		t.Fatalf("dynamic predicate should have rejected empty args")
	}
	if !mm.MatchesArgs(m, accountType(), []any{1}) {
		t.Fatalf("dynamic predicate should have accepted args")
	}
}

func TestNew_NilDefaults(t *testing.T) {
	pc := pointcut.New(nil, nil)
	if pc.ClassFilter() != pointcut.TrueClassFilter() {
		t.Fatalf("nil class filter should default to the true filter")
	}
	if pc.MethodMatcher() != pointcut.TrueMethodMatcher() {
		t.Fatalf("nil matcher should default to the true matcher")
	}
}

func TestNames_Patterns(t *testing.T) {
	withdraw := methodOn(t, accountType(), "Withdraw")
	deposit := methodOn(t, accountType(), "Deposit")

	cases := []struct {
		name     string
		patterns []string
		method   apis.Method
		want     bool
	}{
		{"exact hit", []string{"Withdraw"}, withdraw, true},
		{"exact miss", []string{"Withdraw"}, deposit, false},
		{"prefix", []string{"With*"}, withdraw, true},
		{"suffix", []string{"*draw"}, withdraw, true},
		{"contains", []string{"*thdr*"}, withdraw, true},
		{"star", []string{"*"}, deposit, true},
		{"multi", []string{"Deposit", "Withdraw"}, deposit, true},
		{"none", nil, withdraw, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mm := pointcut.Names(tc.patterns...)
			if mm.IsRuntime() {
				t.Fatalf("Names matcher must be static")
			}
			if got := mm.Matches(tc.method, accountType()); got != tc.want {
				t.Fatalf("Matches(%s) = %v, want %v", tc.method.Name, got, tc.want)
			}
		})
	}
}

func TestNameMatch_Pointcut(t *testing.T) {
	pc := pointcut.NameMatch("Withdraw")
	if !pc.ClassFilter().Matches(accountType()) {
		t.Fatalf("NameMatch should not restrict types")
	}
	if !pc.MethodMatcher().Matches(methodOn(t, accountType(), "Withdraw"), accountType()) {
		t.Fatalf("NameMatch should match Withdraw")
	}
}
