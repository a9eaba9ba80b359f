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

package callable

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCallable reports a syntactically or structurally malformed
	// callable, or a method that a loaded class provably does not have.
	ErrInvalidCallable = errors.New("callid: invalid callable")
	// ErrNotInvokableObject reports an object or loaded class that is well
	// formed but provably lacks the capability to be called.
	ErrNotInvokableObject = errors.New("callid: object is not invokable as callback")
)

// Error is returned by every failed canonicalization.
// errors.Is(err, ErrInvalidCallable) or errors.Is(err, ErrNotInvokableObject)
// tells the two failure kinds apart.
type Error struct {
	// Kind is ErrInvalidCallable or ErrNotInvokableObject.
	Kind error
	// Raw is the diagnostic rendering of the offending input.
	Raw string
	// Reason says what was wrong with it.
	Reason string
	// Err is the underlying cause, if any.
	Err error
}

// Error implements error.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%v %s: %s", e.Kind, e.Raw, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

func invalid(raw string, reason string, cause error) error {
	return &Error{Kind: ErrInvalidCallable, Raw: raw, Reason: reason, Err: cause}
}

func notInvokable(raw string, reason string) error {
	return &Error{Kind: ErrNotInvokableObject, Raw: raw, Reason: reason}
}
