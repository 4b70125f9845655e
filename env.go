// Copyright 2024 The lumen authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lumen

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Env is a chained lexical environment: a frame of bindings plus an
// optional parent to fall back on (spec.md §3.2). Lookup recurses to
// the parent on miss; Define always writes to the current frame.
type Env struct {
	vars   map[string]Value
	parent *Env
}

// NewEnv creates a child environment of parent. Pass a nil parent to
// create a root environment.
func NewEnv(parent *Env) *Env {
	return &Env{vars: make(map[string]Value), parent: parent}
}

// Get looks up name, recursing to outer frames on miss.
func (e *Env) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Define binds name to v in this frame only. The value is cloned so
// that later mutation of whatever produced v cannot reach back through
// this binding (§5: "values are deep-copied on binding into an
// environment").
func (e *Env) Define(name string, v Value) {
	e.vars[name] = v.Clone()
}

// Find returns the innermost frame in which name is bound, or nil.
func (e *Env) Find(name string) *Env {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.vars[name]; ok {
			return env
		}
	}
	return nil
}

// Names returns every name bound anywhere in the chain, innermost
// frames first, used for NOT_DEFINED "did you mean" suggestions.
func (e *Env) Names() []string {
	var out []string
	seen := make(map[string]bool)
	for env := e; env != nil; env = env.parent {
		for name := range env.vars {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}

// Suggest returns the closest bound name to a misspelled lookup, or ""
// if nothing is close enough to be worth suggesting. Only bound names
// that contain every character of name in order are candidates, so a
// lookup with a dropped character ("printl") finds its match, while one
// with an extra or swapped character ("countt") gets no suggestion.
func (e *Env) Suggest(name string) string {
	candidates := e.Names()
	if len(candidates) == 0 {
		return ""
	}
	best := fuzzy.RankFind(name, candidates)
	if len(best) == 0 {
		return ""
	}
	sort.Sort(best)
	// reject matches too far from the original to be a plausible typo.
	top := best[0]
	if top.Distance > len(name)+2 {
		return ""
	}
	return top.Target
}
