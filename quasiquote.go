// Copyright 2024 The lumen authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lumen

// quasiquoteExpand implements the quasiquote expansion algorithm of
// spec.md §4.9. It produces a new, unevaluated form built from the
// symbols cons/concat/quote, which the caller then hands back to Eval.
//
//  1. (unquote y)            -> y
//  2. (splice-unquote y) ...  is only meaningful as a list element; see
//     the list case below.
//  3. a list: fold its elements right to left. An element of the shape
//     (splice-unquote y) contributes (concat y rest); anything else
//     contributes (cons (quasi-quote-expand elt) rest).
//  4. a hash or symbol: (quote x), since those would otherwise be
//     treated as forms to evaluate (hash values) or as variable
//     references.
//  5. anything else (numbers, strings, booleans, nil, keywords):
//     passed through unchanged, since they evaluate to themselves.
func quasiquoteExpand(x Value) Value {
	if lst, ok := x.(*List); ok {
		if sym, ok := headSymbol(lst, "unquote"); ok {
			return sym
		}
		return expandListElements(lst.Items)
	}
	switch x.(type) {
	case *Hash, *Symbol:
		return quoteForm(x)
	default:
		return x
	}
}

// headSymbol returns the single argument of a one-argument special
// form named name at the head of lst, e.g. (unquote y) -> y.
func headSymbol(lst *List, name string) (Value, bool) {
	if len(lst.Items) != 2 {
		return nil, false
	}
	sym, ok := lst.Items[0].(*Symbol)
	if !ok || sym.Name != name {
		return nil, false
	}
	return lst.Items[1], true
}

func expandListElements(items []Value) Value {
	if len(items) == 0 {
		return NewList(nil)
	}
	head, rest := items[0], items[1:]
	restForm := expandListElements(rest)

	if headList, ok := head.(*List); ok {
		if spliced, ok := headSymbol(headList, "splice-unquote"); ok {
			return NewList([]Value{NewSymbol("concat"), spliced, restForm})
		}
	}
	return NewList([]Value{NewSymbol("cons"), quasiquoteExpand(head), restForm})
}

func quoteForm(x Value) Value {
	return NewList([]Value{NewSymbol("quote"), x})
}
