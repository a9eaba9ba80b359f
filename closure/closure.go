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

// Package closure builds canonical identities for closures.
//
// A closure's identity is its parameter list: "function (int, ...string)".
// Go func values are described through reflection, closure literal text
// through go/parser, and both render parameter types the same way so that
// a func value and its textual description compare equal.
package closure

import (
	"errors"
	"go/ast"
	"go/parser"
	"go/types"
	"reflect"
	"strings"
	"unicode"

	"dirpx.dev/callid/apis"
)

// Keyword opens every closure literal.
const Keyword = "function"

var (
	// ErrNotClosure is returned when NameFor receives something other than a func value.
	ErrNotClosure = errors.New("callid(closure): value is not a func")
	// ErrNilClosure is returned when NameFor receives a nil func value.
	ErrNilClosure = errors.New("callid(closure): nil func")
)

// Normalizer implements apis.ClosureNormalizer.
type Normalizer struct{}

// New returns a closure normalizer.
func New() *Normalizer {
	return &Normalizer{}
}

// Ensure Normalizer implements apis.ClosureNormalizer.
var _ apis.ClosureNormalizer = (*Normalizer)(nil)

// NameFor returns the canonical identity of the func value fn.
func (*Normalizer) NameFor(fn any) (string, error) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return "", ErrNotClosure
	}
	if v.IsNil() {
		return "", ErrNilClosure
	}

	t := v.Type()
	params := make([]string, 0, t.NumIn())
	for i := 0; i < t.NumIn(); i++ {
		in := t.In(i)
		if t.IsVariadic() && i == t.NumIn()-1 {
			params = append(params, "..."+typeString(in.Elem().String()))
			continue
		}
		params = append(params, typeString(in.String()))
	}
	return render(params), nil
}

// NormalizeString returns the canonical identity of closure literal text, or
// "" when text is not a well-formed closure literal. Parameter names are
// dropped; only their types are kept.
func (*Normalizer) NormalizeString(text string) string {
	s := strings.TrimSpace(text)
	if !IsLiteral(s) {
		return ""
	}
	sig := strings.TrimSpace(s[len(Keyword):])
	if !strings.HasPrefix(sig, "(") {
		return ""
	}

	expr, err := parser.ParseExpr("func" + sig + " {}")
	if err != nil {
		return ""
	}
	lit, ok := expr.(*ast.FuncLit)
	if !ok || lit.Type.Results != nil || len(lit.Body.List) != 0 {
		return ""
	}

	var params []string
	for _, field := range lit.Type.Params.List {
		var typ string
		if ell, ok := field.Type.(*ast.Ellipsis); ok {
			typ = "..." + exprString(ell.Elt)
		} else {
			typ = exprString(field.Type)
		}
		n := len(field.Names)
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			params = append(params, typ)
		}
	}
	return render(params)
}

// IsLiteral reports whether s has the shape of closure literal text: the
// keyword as a whole token at the start and a closing parenthesis at the end.
func IsLiteral(s string) bool {
	if !strings.HasPrefix(s, Keyword) || !strings.HasSuffix(s, ")") {
		return false
	}
	next := rune(s[len(Keyword)])
	return next == '(' || unicode.IsSpace(next)
}

func render(params []string) string {
	return Keyword + " (" + strings.Join(params, ", ") + ")"
}

// typeString prints a reflect type string the way exprString prints parsed
// literal text. Strings the parser rejects are kept as they are.
func typeString(s string) string {
	expr, err := parser.ParseExpr(s)
	if err != nil {
		return emptyInterfaceAsAny(s)
	}
	return exprString(expr)
}

// exprString prints a type expression with struct fields declared one per
// line and func signatures without parameter names, which is how reflect
// spells types.
func exprString(expr ast.Expr) string {
	ast.Inspect(expr, func(n ast.Node) bool {
		switch x := n.(type) {
		case *ast.StructType:
			x.Fields.List = ungroup(x.Fields.List, true)
		case *ast.FuncType:
			if x.Params != nil {
				x.Params.List = ungroup(x.Params.List, false)
			}
			if x.Results != nil {
				x.Results.List = ungroup(x.Results.List, false)
			}
		}
		return true
	})
	return emptyInterfaceAsAny(types.ExprString(expr))
}

// ungroup gives every field its own entry. Names are kept only when
// keepNames is set.
func ungroup(fields []*ast.Field, keepNames bool) []*ast.Field {
	out := make([]*ast.Field, 0, len(fields))
	for _, f := range fields {
		if len(f.Names) == 0 {
			out = append(out, &ast.Field{Type: f.Type})
			continue
		}
		for _, name := range f.Names {
			field := &ast.Field{Type: f.Type}
			if keepNames {
				field.Names = []*ast.Ident{name}
			}
			out = append(out, field)
		}
	}
	return out
}

func emptyInterfaceAsAny(s string) string {
	s = strings.ReplaceAll(s, "interface {}", "any")
	return strings.ReplaceAll(s, "interface{}", "any")
}
