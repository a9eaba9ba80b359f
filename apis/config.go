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

// Config carries read-only canonicalization knobs.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// InvokeMethod is the method name that makes an object invokable when
	// passed as a bare callback (for example "Invoke").
	InvokeMethod string

	// MaxUnwrap limits pointer unwrapping depth when resolving the class name
	// of an object. Acts as a safety guard against pathological nesting.
	MaxUnwrap int

	// AllowUnicode permits non-ASCII letters and digits in class, method and
	// function names. Names are NFC-normalized before validation.
	AllowUnicode bool
}
