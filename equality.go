// Copyright 2024 The lumen authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lumen

// Equal implements the structural equality of spec.md §4.10: equal
// variant and payload, list/hash comparisons are structural, Function
// and Lambda values are never equal (native/closure identity is not
// observable), and Error values compare by kind tag only.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case *Nil:
		_, ok := b.(*Nil)
		return ok
	case *Bool:
		y, ok := b.(*Bool)
		return ok && x.Val == y.Val
	case *Number:
		y, ok := b.(*Number)
		return ok && x.Val == y.Val
	case *Symbol:
		y, ok := b.(*Symbol)
		return ok && x.Name == y.Name
	case *Keyword:
		y, ok := b.(*Keyword)
		return ok && x.Name == y.Name
	case *String:
		y, ok := b.(*String)
		return ok && x.Val == y.Val
	case *List:
		y, ok := b.(*List)
		if !ok || len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !Equal(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true
	case *Hash:
		y, ok := b.(*Hash)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for k, e := range x.entries {
			other, ok := y.entries[k]
			if !ok || !Equal(e.val, other.val) {
				return false
			}
		}
		return true
	case *Error:
		y, ok := b.(*Error)
		return ok && x.ErrKind == y.ErrKind
	case *Function, *Lambda:
		return false
	default:
		return false
	}
}

// Less implements the Number-only total order of spec.md §4.10: NaN
// comparisons yield false, which Go's native float64 comparison already
// does.
func Less(a, b Value) (bool, bool) {
	x, ok1 := a.(*Number)
	y, ok2 := b.(*Number)
	if !ok1 || !ok2 {
		return false, false
	}
	return x.Val < y.Val, true
}

func LessEqual(a, b Value) (bool, bool) {
	x, ok1 := a.(*Number)
	y, ok2 := b.(*Number)
	if !ok1 || !ok2 {
		return false, false
	}
	return x.Val <= y.Val, true
}
