// Copyright 2024 The lumen authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lumen

import (
	"fmt"
	"os"
)

// Machine is lumen's public surface (spec.md §6.1): a root environment
// preloaded with built-ins and the standard prelude, plus the handful
// of operations a host embeds the interpreter through.
type Machine struct {
	root *Env
}

// New constructs a Machine: a fresh root environment, the built-in
// namespace, and the prelude evaluated into that root. A failure while
// evaluating the prelude is a programming error in lumen itself, not in
// user code, so New panics rather than returning an error — mirroring
// the teacher's NewInterpreter, which cannot itself fail.
func New() *Machine {
	root := NewEnv(nil)
	InstallBuiltins(root)
	m := &Machine{root: root}
	if err := m.loadPrelude(); err != nil {
		panic(fmt.Sprintf("lumen: prelude failed to evaluate: %v", err))
	}
	return m
}

// NewWithoutPrelude builds a Machine with only the built-in namespace
// installed, skipping the prelude. Used by --no-prelude and by tests
// that want a minimal environment.
func NewWithoutPrelude() *Machine {
	root := NewEnv(nil)
	InstallBuiltins(root)
	return &Machine{root: root}
}

func (m *Machine) loadPrelude() error {
	forms, err := ReadProgram(Lex(preludeSource))
	if err != nil {
		return err
	}
	for _, f := range forms {
		if _, err := Eval(f, m.root); err != nil {
			return err
		}
	}
	return nil
}

// Root returns the machine's root environment.
func (m *Machine) Root() *Env { return m.root }

// Get reads a binding from the root environment.
func (m *Machine) Get(name string) (Value, bool) { return m.root.Get(name) }

// Set installs a binding in the root environment.
func (m *Machine) Set(name string, v Value) { m.root.Define(name, v) }

// EvalString reads and evaluates every top-level form in src against
// the root environment, returning the value of the last form.
func (m *Machine) EvalString(src string) (Value, error) {
	forms, err := ReadProgram(Lex(src))
	if err != nil {
		return nil, err
	}
	var result Value = NewNil()
	for _, f := range forms {
		result, err = Eval(f, m.root)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// EvalFile reads and evaluates the named file's contents.
func (m *Machine) EvalFile(path string) (Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, raiseKind(ErrSystemError, err.Error())
	}
	return m.EvalString(string(data))
}

// ReportFatal writes an unhandled raised error to stderr and
// terminates the process with a non-zero status, per spec.md §6.1.
func ReportFatal(err error) {
	if sig, ok := asSignal(err); ok {
		if e, ok := sig.Value.(*Error); ok {
			fmt.Fprintf(os.Stderr, "lumen: %s: %s\n", e.ErrKind, e.Message)
		} else {
			fmt.Fprintf(os.Stderr, "lumen: uncaught throw: %s\n", sig.Value.String())
		}
	} else {
		fmt.Fprintf(os.Stderr, "lumen: %v\n", err)
	}
	os.Exit(1)
}
