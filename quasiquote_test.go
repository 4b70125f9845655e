// Copyright 2024 The lumen authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lumen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuasiquoteExpandUnquote(t *testing.T) {
	form := mustRead(t, "(unquote x)")
	got := quasiquoteExpand(form)
	assert.True(t, Equal(NewSymbol("x"), got))
}

func TestQuasiquoteExpandAtomPassthrough(t *testing.T) {
	assert.True(t, Equal(NewNumber(5), quasiquoteExpand(NewNumber(5))))
	assert.True(t, Equal(NewString("hi"), quasiquoteExpand(NewString("hi"))))
}

func TestQuasiquoteExpandSymbolAndHashAreQuoted(t *testing.T) {
	got := quasiquoteExpand(NewSymbol("x"))
	assert.Equal(t, "(quote x)", got.String())

	h, err := NewHash([]Value{NewKeyword("a"), NewNumber(1)})
	assert.NoError(t, err)
	got = quasiquoteExpand(h)
	gotList := got.(*List)
	assert.Equal(t, "quote", gotList.Items[0].(*Symbol).Name)
}

func TestQuasiquoteExpandList(t *testing.T) {
	// `(1 2) expands to (cons 1 (cons 2 ()))
	form := mustRead(t, "(1 2)")
	got := quasiquoteExpand(form)
	assert.Equal(t, "(cons 1 (cons 2 ()))", got.String())
}

func TestQuasiquoteExpandSpliceUnquote(t *testing.T) {
	// `(~@xs 1) expands to (concat xs (cons 1 ()))
	form := NewList([]Value{
		NewList([]Value{NewSymbol("splice-unquote"), NewSymbol("xs")}),
		NewNumber(1),
	})
	got := quasiquoteExpand(form)
	assert.Equal(t, "(concat xs (cons 1 ()))", got.String())
}

// TestQuasiquoteEvaluates exercises the `unless` macro scenario of
// spec.md §8: (defmacro! unless (fn* (c a b) `(if ~c ~b ~a))) then
// (unless false 1 2) must evaluate to 1.
func TestQuasiquoteEvaluates(t *testing.T) {
	m := NewWithoutPrelude()
	_, err := m.EvalString("(defmacro! unless (fn* (c a b) (quasi-quote (if (unquote c) (unquote b) (unquote a)))))")
	assert.NoError(t, err)
	result, err := m.EvalString("(unless false 1 2)")
	assert.NoError(t, err)
	assert.True(t, Equal(NewNumber(1), result))
}
