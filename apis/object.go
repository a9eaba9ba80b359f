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

// ClassNamer lets an object choose the class name used in its canonical
// identity, bypassing registry and reflection lookups.
type ClassNamer interface {
	ClassName() string
}

// MagicCaller marks objects that dispatch calls to methods they do not
// declare. Any method name is considered callable on such an object.
type MagicCaller interface {
	CallMethod(method string, args ...any) (any, error)
}
