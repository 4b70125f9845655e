// Copyright 2024 The lumen authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lumen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRead(t *testing.T, src string) Value {
	t.Helper()
	v, err := Read(src)
	require.NoError(t, err)
	return v
}

func TestReadAtoms(t *testing.T) {
	assert.Equal(t, NewNil(), mustRead(t, "nil"))
	assert.Equal(t, NewBool(true), mustRead(t, "true"))
	assert.Equal(t, NewNumber(42), mustRead(t, "42"))
	assert.Equal(t, NewNumber(-1.5), mustRead(t, "-1.5"))
	assert.Equal(t, NewString(`say "hi"`), mustRead(t, `"say \"hi\""`))
	assert.Equal(t, NewKeyword("foo"), mustRead(t, ":foo"))
	assert.Equal(t, NewSymbol("foo"), mustRead(t, "foo"))
}

func TestReadListAndHash(t *testing.T) {
	lst := mustRead(t, "(1 2 3)").(*List)
	assert.Len(t, lst.Items, 3)
	assert.True(t, Equal(NewNumber(2), lst.Items[1]))

	h := mustRead(t, "{:a 1 :b 2}").(*Hash)
	assert.Equal(t, 2, h.Len())
	v, ok := h.Get(NewKeyword("a"))
	require.True(t, ok)
	assert.True(t, Equal(NewNumber(1), v))
}

func TestReadErrors(t *testing.T) {
	cases := []string{
		"(1 2",
		"1 2",
		"{:a}",
		"'x",
		"`x",
		"~x",
		"~@x",
		")",
	}
	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			_, err := Read(src)
			require.Error(t, err)
			sig, ok := asSignal(err)
			require.True(t, ok)
			errVal, ok := sig.Value.(*Error)
			require.True(t, ok)
			assert.Equal(t, ErrReadError, errVal.ErrKind)
		})
	}
}

// TestReaderRoundTrip exercises spec.md §8 universal property 1: for any
// tokenizable source, re-serializing via display and re-reading yields
// a structurally equal form.
func TestReaderRoundTrip(t *testing.T) {
	sources := []string{
		"(+ 1 (* 2 3))",
		`(list "a" "b" nil true false :kw)`,
		"(1 (2 3) (4 (5 6)))",
	}
	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			v := mustRead(t, src)
			roundTripped := mustRead(t, v.String())
			assert.True(t, Equal(v, roundTripped))
			assert.Equal(t, v.String(), roundTripped.String())
		})
	}
}
