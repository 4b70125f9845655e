// Copyright 2024 The lumen authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lumen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvLookupChain(t *testing.T) {
	root := NewEnv(nil)
	root.Define("x", NewNumber(1))
	child := NewEnv(root)
	child.Define("y", NewNumber(2))

	v, ok := child.Get("x")
	require.True(t, ok)
	assert.True(t, Equal(NewNumber(1), v))

	_, ok = root.Get("y")
	assert.False(t, ok, "a parent frame must not see child bindings")
}

func TestEnvDefineClonesValue(t *testing.T) {
	env := NewEnv(nil)
	lst := NewList([]Value{NewNumber(1)})
	env.Define("xs", lst)
	lst.Items[0] = NewNumber(99)

	bound, _ := env.Get("xs")
	assert.True(t, Equal(NewNumber(1), bound.(*List).Items[0]),
		"Define must deep-copy so later mutation of the source value is not observed")
}

func TestEnvSuggest(t *testing.T) {
	env := NewEnv(nil)
	env.Define("println", NewBool(true))
	assert.Equal(t, "println", env.Suggest("printl"))
	assert.Equal(t, "", env.Suggest("completely-unrelated-zzz"))
}
