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

package afx_test

import (
	"reflect"
	"testing"

	"dirpx.dev/afx"
	"dirpx.dev/afx/apis"
	"dirpx.dev/afx/config"
	"dirpx.dev/afx/pointcut"
)

type Account struct{}

func (*Account) Withdraw(amount int) error { return nil }
func (*Account) Deposit(amount int) error  { return nil }

type Auditor struct{}

func (*Auditor) Record(entry string) {}

type Account_Proxy struct {
	Account
}

var (
	accountType = reflect.TypeOf(Account{})
	auditorType = reflect.TypeOf(Auditor{})
	proxyType   = reflect.TypeOf(Account_Proxy{})
)

func methodOn(t *testing.T, typ reflect.Type, name string) apis.Method {
	t.Helper()
	m, ok := apis.MethodOf(typ, name)
	if !ok {
		t.Fatalf("method %s not found on %v", name, typ)
	}
	return m
}

// accountOnly scopes a pointcut to the Account type.
func accountOnly() pointcut.ClassFilterFunc {
	return func(t reflect.Type) bool { return t == accountType }
}

// withdrawPositive statically narrows to Withdraw and dynamically requires a
// positive amount, counting dynamic evaluations through calls.
func withdrawPositive(calls *int) apis.MethodMatcher {
	return pointcut.Dynamic(
		func(m apis.Method, _ reflect.Type) bool { return m.Name == "Withdraw" },
		func(_ apis.Method, _ reflect.Type, args []any) bool {
			*calls++
			if len(args) == 0 {
				return false
			}
			amount, ok := args[0].(int)
			return ok && amount > 0
		},
	)
}

func TestCanApply(t *testing.T) {
	cfg := config.DefaultConfig()

	var calls int
	pc := pointcut.New(accountOnly(), withdrawPositive(&calls))

	if !afx.CanApply(pc, accountType, cfg) {
		t.Fatalf("pointcut should apply to Account")
	}
	if afx.CanApply(pc, auditorType, cfg) {
		t.Fatalf("pointcut must not apply to Auditor")
	}
	if calls != 0 {
		t.Fatalf("applicability screening invoked the dynamic phase %d times", calls)
	}
}

func TestCanApply_UnwrapsProxyArtifacts(t *testing.T) {
	pc := pointcut.New(accountOnly(), nil)
	if !afx.CanApply(pc, proxyType, config.DefaultConfig()) {
		t.Fatalf("class filter should see through the generated proxy type")
	}
}

func TestCanApply_TrueMatcherFastPath(t *testing.T) {
	pc := pointcut.New(accountOnly(), pointcut.TrueMethodMatcher())
	if !afx.CanApply(pc, accountType, config.DefaultConfig()) {
		t.Fatalf("true matcher should short-circuit to the class filter")
	}
}

func TestCanApply_NoMethodMatches(t *testing.T) {
	pc := pointcut.New(nil, pointcut.Names("Transfer"))
	if afx.CanApply(pc, accountType, config.DefaultConfig()) {
		t.Fatalf("no Account method is named Transfer")
	}
}

func TestCanApply_NilInputs(t *testing.T) {
	cfg := config.DefaultConfig()
	if afx.CanApply(nil, accountType, cfg) {
		t.Fatalf("nil pointcut never applies")
	}
	if afx.CanApply(pointcut.True(), nil, cfg) {
		t.Fatalf("nil target never applies")
	}
}

func TestEvaluator_TwoPhaseMatch(t *testing.T) {
	var calls int
	pc := pointcut.New(accountOnly(), withdrawPositive(&calls))
	ev := afx.NewEvaluator(pc, config.DefaultConfig())

	withdraw := methodOn(t, accountType, "Withdraw")
	deposit := methodOn(t, accountType, "Deposit")

	if !ev.RequiresRuntime() {
		t.Fatalf("evaluator should report a runtime phase")
	}

	// Deposit fails statically; its dynamic phase must never run.
	if ev.StaticMatch(deposit, accountType) {
		t.Fatalf("Deposit should fail the static phase")
	}
	if ev.Match(deposit, accountType, []any{100}) {
		t.Fatalf("Deposit must not match")
	}
	if calls != 0 {
		t.Fatalf("statically rejected method reached the dynamic phase %d times", calls)
	}

	// Withdraw passes statically; the dynamic phase decides per invocation.
	if !ev.StaticMatch(withdraw, accountType) {
		t.Fatalf("Withdraw should pass the static phase")
	}
	if ev.Match(withdraw, accountType, []any{-5}) {
		t.Fatalf("Withdraw(-5) must not match")
	}
	if !ev.Match(withdraw, accountType, []any{5}) {
		t.Fatalf("Withdraw(5) should match")
	}
	if calls != 2 {
		t.Fatalf("dynamic phase ran %d times, want 2", calls)
	}
}

func TestEvaluator_MatchesType(t *testing.T) {
	ev := afx.NewEvaluator(pointcut.New(accountOnly(), nil), config.DefaultConfig())

	if !ev.MatchesType(accountType) {
		t.Fatalf("Account should pass the type phase")
	}
	if !ev.MatchesType(proxyType) {
		t.Fatalf("the proxy artifact should pass via its unwrapped target")
	}
	if ev.MatchesType(auditorType) {
		t.Fatalf("Auditor should fail the type phase")
	}
	if ev.MatchesType(nil) {
		t.Fatalf("nil type never matches")
	}
}

func TestEvaluator_StaticMatchUsesDeclaringTypeWhenTargetNil(t *testing.T) {
	ev := afx.NewEvaluator(pointcut.New(accountOnly(), nil), config.DefaultConfig())
	withdraw := methodOn(t, accountType, "Withdraw")

	if !ev.StaticMatch(withdraw, nil) {
		t.Fatalf("nil target should default to the declaring type")
	}
	if ev.StaticMatch(apis.Method{}, accountType) {
		t.Fatalf("the zero method never matches")
	}
}

func TestEvaluator_NonRuntimeRuntimeMatchIsTrue(t *testing.T) {
	ev := afx.NewEvaluator(pointcut.NameMatch("Withdraw"), config.DefaultConfig())
	withdraw := methodOn(t, accountType, "Withdraw")

	if ev.RequiresRuntime() {
		t.Fatalf("name matching is static")
	}
	if !ev.RuntimeMatch(withdraw, accountType, nil) {
		t.Fatalf("a static pointcut's runtime phase is vacuously true")
	}
}

func TestNewEvaluator_NilPointcutMatchesAll(t *testing.T) {
	ev := afx.NewEvaluator(nil, config.DefaultConfig())
	if ev.Pointcut() != pointcut.True() {
		t.Fatalf("nil pointcut should default to the canonical true pointcut")
	}
	if !ev.Match(methodOn(t, accountType, "Deposit"), accountType, nil) {
		t.Fatalf("the true pointcut matches every join point")
	}
}
