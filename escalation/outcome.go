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
	"fmt"
	"strings"
)

// Outcome describes what a Request call did to a slot.
//
// # Values
//
//   - Created        — no record existed; one was created at the candidate level.
//   - AlreadyPresent — a record existed at exactly the candidate level; no-op.
//   - Escalated      — a record existed at a lower level and was upgraded in place.
//   - Retained       — a record existed at a higher level (or the request was
//     rejected); the existing registration stands untouched.
//
// # Contract
//
//   - Outcome values are plain integers and safe to share across goroutines.
//   - The mapping from known Outcome values to strings is stable; changing a
//     token's spelling or casing is a breaking change for systems that
//     persist or parse these strings.
type Outcome int

const (
	// Created indicates the slot did not exist and was registered at the
	// candidate level, taking ownership as first writer.
	Created Outcome = iota

	// AlreadyPresent indicates the slot was already registered at exactly
	// the candidate level.
	AlreadyPresent

	// Escalated indicates the existing registration was upgraded in place
	// to the more capable candidate level. The record's identity, source and
	// flags survive the upgrade.
	Escalated

	// Retained indicates the existing registration was at least as capable
	// as the candidate and stands untouched: escalation never downgrades.
	Retained
)

// String returns a short, stable token for the Outcome, suitable for logs,
// metrics labels and configuration dumps. Unknown values yield a diagnostic
// "Unknown(<n>)" form rather than panicking, so corrupted values can still be
// surfaced safely.
func (o Outcome) String() string {
	switch o {
	case Created:
		return "Created"
	case AlreadyPresent:
		return "AlreadyPresent"
	case Escalated:
		return "Escalated"
	case Retained:
		return "Retained"
	default:
		return fmt.Sprintf("Unknown(%d)", o)
	}
}

// Parse converts a textual token into an Outcome. Matching is
// case-insensitive and surrounding whitespace is trimmed. On failure the
// returned Outcome is not meaningful and the error is non-nil.
func Parse(s string) (Outcome, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Retained, fmt.Errorf("escalation: empty outcome")
	}
	switch strings.ToLower(trimmed) {
	case "created":
		return Created, nil
	case "alreadypresent":
		return AlreadyPresent, nil
	case "escalated":
		return Escalated, nil
	case "retained":
		return Retained, nil
	default:
		return Retained, fmt.Errorf("escalation: unknown outcome %q", s)
	}
}

// MustParse is like Parse but panics on invalid input. Intended for
// hard-coded values in code and tests, never for untrusted data.
func MustParse(s string) Outcome {
	o, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return o
}

// MarshalText encodes the Outcome as its canonical token. Unknown values
// return an error rather than silently serializing a diagnostic form.
func (o Outcome) MarshalText() ([]byte, error) {
	switch o {
	case Created, AlreadyPresent, Escalated, Retained:
		return []byte(o.String()), nil
	default:
		return nil, fmt.Errorf("escalation: cannot marshal unknown outcome %d", o)
	}
}

// UnmarshalText decodes an Outcome from its textual token, accepting the
// same inputs as Parse. On failure the receiver is left unchanged.
func (o *Outcome) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}
