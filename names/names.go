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

// Package names validates and fully-qualifies the class, method and
// function names that appear in callable identities.
//
// A qualified name is a sequence of identifiers joined by ".". A single
// leading "." denotes the global namespace and is dropped when the name is
// fully-qualified, so ".billing.Invoice" and "billing.Invoice" are the same
// class.
package names

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"dirpx.dev/callid/apis"
)

// Separator joins the segments of a qualified name.
const Separator = "."

// ErrInvalidName is wrapped by every validation failure.
var ErrInvalidName = errors.New("callid(names): invalid name")

// ClassValidator implements apis.ClassNameValidator.
type ClassValidator struct {
	unicode bool
}

// NewClassValidator returns a class-name validator configured by cfg.
func NewClassValidator(cfg apis.Config) *ClassValidator {
	return &ClassValidator{unicode: cfg.AllowUnicode}
}

// FullyQualify validates raw as a class name and returns its canonical form.
func (v *ClassValidator) FullyQualify(raw string) (string, error) {
	return qualify(raw, "class", v.unicode)
}

// FunctionValidator implements apis.FunctionNameValidator.
type FunctionValidator struct {
	unicode bool
}

// NewFunctionValidator returns a function-name validator configured by cfg.
func NewFunctionValidator(cfg apis.Config) *FunctionValidator {
	return &FunctionValidator{unicode: cfg.AllowUnicode}
}

// FullyQualify validates raw as a function name and returns its canonical form.
func (v *FunctionValidator) FullyQualify(raw string) (string, error) {
	return qualify(raw, "function", v.unicode)
}

// MethodValidator implements apis.MethodNameValidator.
type MethodValidator struct {
	unicode bool
}

// NewMethodValidator returns a method-name validator configured by cfg.
func NewMethodValidator(cfg apis.Config) *MethodValidator {
	return &MethodValidator{unicode: cfg.AllowUnicode}
}

// Validate checks that raw is a single identifier.
func (v *MethodValidator) Validate(raw string) (string, error) {
	name := norm.NFC.String(strings.TrimSpace(raw))
	if !IsIdentifier(name, v.unicode) {
		return "", fmt.Errorf("%w: method %q", ErrInvalidName, raw)
	}
	return name, nil
}

// Ensure the validators implement their apis contracts.
var (
	_ apis.ClassNameValidator    = (*ClassValidator)(nil)
	_ apis.FunctionNameValidator = (*FunctionValidator)(nil)
	_ apis.MethodNameValidator   = (*MethodValidator)(nil)
)

func qualify(raw, kind string, allowUnicode bool) (string, error) {
	name := norm.NFC.String(strings.TrimSpace(raw))
	name = strings.TrimPrefix(name, Separator)
	if name == "" {
		return "", fmt.Errorf("%w: empty %s name", ErrInvalidName, kind)
	}
	for _, seg := range strings.Split(name, Separator) {
		if !IsIdentifier(seg, allowUnicode) {
			return "", fmt.Errorf("%w: %s %q", ErrInvalidName, kind, raw)
		}
	}
	return name, nil
}

// IsIdentifier reports whether s is a letter or underscore followed by
// letters, digits or underscores. Without allowUnicode only ASCII counts.
func IsIdentifier(s string, allowUnicode bool) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_':
		case r < 0x80 && ('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'):
		case r < 0x80 && '0' <= r && r <= '9':
			if i == 0 {
				return false
			}
		case r >= 0x80 && allowUnicode && unicode.IsLetter(r):
		case r >= 0x80 && allowUnicode && unicode.IsDigit(r):
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
