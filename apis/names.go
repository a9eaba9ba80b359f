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

// ClassNameValidator checks the syntax of a namespaced class name and
// normalizes its leading-separator convention.
type ClassNameValidator interface {
	FullyQualify(raw string) (string, error)
}

// MethodNameValidator checks identifier syntax of a method name.
type MethodNameValidator interface {
	Validate(raw string) (string, error)
}

// FunctionNameValidator checks the syntax of a namespaced function name.
type FunctionNameValidator interface {
	FullyQualify(raw string) (string, error)
}

// ClosureNormalizer produces stable identities for closures.
type ClosureNormalizer interface {
	// NameFor returns the canonical identity of a closure value.
	NameFor(fn any) (string, error)
	// NormalizeString returns the canonical identity of closure literal text,
	// or "" if text is not a closure literal.
	NormalizeString(text string) string
}
