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

package strategy

import (
	"path"
	"reflect"
	"strings"
	"sync"

	"dirpx.dev/callid/apis"
	uref "dirpx.dev/callid/utils/reflect"
)

// NewReflectStrategy creates an apis.Strategy that derives class names via
// reflection using utils/reflect.Normalize and memoization.
func NewReflectStrategy() apis.Strategy {
	return reflectStrategy{}
}

// reflectStrategy is the universal fallback that computes "pkg.Type".
// It unwraps pointers via Normalize and strips generic instantiation
// parameters. Types without a package (builtins, unnamed) are not handled.
type reflectStrategy struct{}

// Ensure reflectStrategy implements apis.Strategy.
var _ apis.Strategy = (*reflectStrategy)(nil)

// cacheKey ensures memoization respects the config knobs that affect resolution.
type cacheKey struct {
	t         reflect.Type
	maxUnwrap int
}

// classNameCache caches resolved class names by (type, config knobs).
var classNameCache sync.Map // key: cacheKey, val: string

// TryResolve computes the class name for v's type.
func (reflectStrategy) TryResolve(v any, cfg apis.Config) (string, bool) {
	if v == nil {
		return "", false
	}
	return byType(reflect.TypeOf(v), cfg)
}

// TryResolveType computes the class name for t.
func (reflectStrategy) TryResolveType(t reflect.Type, cfg apis.Config) (string, bool) {
	if t == nil {
		return "", false
	}
	return byType(t, cfg)
}

// byType resolves the class name for t with memoization.
func byType(t reflect.Type, cfg apis.Config) (string, bool) {
	key := cacheKey{t: t, maxUnwrap: cfg.MaxUnwrap}
	if v, ok := classNameCache.Load(key); ok {
		name := v.(string)
		return name, name != ""
	}

	name := ""
	if base, err := uref.Normalize(t, cfg); err == nil && base.PkgPath() != "" {
		name = packageName(base.PkgPath()) + "." + stripTypeParams(base.Name())
	}

	classNameCache.Store(key, name)
	return name, name != ""
}

// packageName turns the last import path element into an identifier:
// "github.com/acme/go-billing" -> "go_billing", "gopkg.in/yaml.v3" -> "yaml_v3".
func packageName(pkgPath string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r == '_', 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9':
			return r
		default:
			return '_'
		}
	}, path.Base(pkgPath))
	if name != "" && '0' <= name[0] && name[0] <= '9' {
		name = "_" + name
	}
	return name
}

// stripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
