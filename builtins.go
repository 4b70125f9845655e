// Copyright 2024 The lumen authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lumen

import (
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cast"
)

// InstallBuiltins populates env with the built-in namespace of
// spec.md §6.2. It is called once per root environment, the way the
// teacher's interpreter installs its commandTable into a fresh
// Interpreter (swatcl/interpreter.go).
func InstallBuiltins(env *Env) {
	for name, fn := range builtinTable {
		env.Define(name, fn)
	}
}

var builtinTable map[string]*Function

func init() {
	builtinTable = map[string]*Function{
		"+": NewFunction("+", 2, arith("+", func(a, b float64) float64 { return a + b })),
		"-": NewFunction("-", 2, arith("-", func(a, b float64) float64 { return a - b })),
		"*": NewFunction("*", 2, arith("*", func(a, b float64) float64 { return a * b })),
		"/": NewFunction("/", 2, arith("/", func(a, b float64) float64 { return a / b })),

		"=":  NewFunction("=", 2, builtinEq),
		"<":  NewFunction("<", 2, compareFn("<", func(a, b float64) bool { return a < b })),
		"<=": NewFunction("<=", 2, compareFn("<=", func(a, b float64) bool { return a <= b })),
		">":  NewFunction(">", 2, compareFn(">", func(a, b float64) bool { return a > b })),
		">=": NewFunction(">=", 2, compareFn(">=", func(a, b float64) bool { return a >= b })),

		"println": NewFunction("println", -1, builtinPrintln),
		"print":   NewFunction("print", -1, builtinPrint),

		"list":   NewFunction("list", -1, builtinList),
		"count":  NewFunction("count", 1, builtinCount),
		"cons":   NewFunction("cons", -1, builtinCons),
		"concat": NewFunction("concat", -1, builtinConcat),
		"first":  NewFunction("first", 1, builtinFirst),
		"rest":   NewFunction("rest", 1, builtinRest),
		"nth":    NewFunction("nth", 2, builtinNth),

		"nil?":      NewFunction("nil?", 1, typePredicate(func(v Value) bool { _, ok := v.(*Nil); return ok })),
		"bool?":     NewFunction("bool?", 1, typePredicate(func(v Value) bool { _, ok := v.(*Bool); return ok })),
		"symbol?":   NewFunction("symbol?", 1, typePredicate(func(v Value) bool { _, ok := v.(*Symbol); return ok })),
		"number?":   NewFunction("number?", 1, typePredicate(func(v Value) bool { _, ok := v.(*Number); return ok })),
		"string?":   NewFunction("string?", 1, typePredicate(func(v Value) bool { _, ok := v.(*String); return ok })),
		"list?":     NewFunction("list?", 1, typePredicate(func(v Value) bool { _, ok := v.(*List); return ok })),
		"hash?":     NewFunction("hash?", 1, typePredicate(func(v Value) bool { _, ok := v.(*Hash); return ok })),
		"function?": NewFunction("function?", 1, typePredicate(isCallable)),
		"macro?":    NewFunction("macro?", 1, typePredicate(func(v Value) bool { l, ok := v.(*Lambda); return ok && l.IsMacro })),

		"compile-string": NewFunction("compile-string", 1, builtinCompileString),
		"slurp":          NewFunction("slurp", 1, builtinSlurp),
	}
}

func isCallable(v Value) bool {
	switch v.(type) {
	case *Function, *Lambda:
		return true
	default:
		return false
	}
}

// arith wraps a two-Number float64 operation per spec.md §4.10: on a
// type mismatch it returns an INCORRECT_TYPE Error *value*, not a
// raised error — the one deliberate carve-out from lumen's otherwise
// raise-on-failure built-in convention.
func arith(name string, op func(a, b float64) float64) BuiltinFunc {
	return func(args []Value) (Value, error) {
		a, aok := args[0].(*Number)
		b, bok := args[1].(*Number)
		if !aok || !bok {
			return NewError(ErrIncorrectType, name+" requires two numbers"), nil
		}
		return NewNumber(op(a.Val, b.Val)), nil
	}
}

func compareFn(name string, op func(a, b float64) bool) BuiltinFunc {
	return func(args []Value) (Value, error) {
		lt, ok := numPair(args[0], args[1])
		if !ok {
			return nil, raiseKind(ErrIncorrectType, name+" requires two numbers")
		}
		return NewBool(op(lt[0], lt[1])), nil
	}
}

func numPair(a, b Value) ([2]float64, bool) {
	x, ok1 := a.(*Number)
	y, ok2 := b.(*Number)
	if !ok1 || !ok2 {
		return [2]float64{}, false
	}
	return [2]float64{x.Val, y.Val}, true
}

func builtinEq(args []Value) (Value, error) {
	return NewBool(Equal(args[0], args[1])), nil
}

// displayString is the "display form" used by println/print: unlike
// String() it does not re-quote string values, matching the teacher's
// distinction between a value's debug form and its printed form.
func displayString(v Value) string {
	if s, ok := v.(*String); ok {
		return s.Val
	}
	return v.String()
}

func builtinPrintln(args []Value) (Value, error) {
	parts := lo.Map(args, func(v Value, _ int) string { return displayString(v) })
	fmt.Println(strings.Join(parts, ""))
	return NewNil(), nil
}

func builtinPrint(args []Value) (Value, error) {
	parts := lo.Map(args, func(v Value, _ int) string { return displayString(v) })
	fmt.Print(strings.Join(parts, ""))
	return NewNil(), nil
}

func builtinList(args []Value) (Value, error) {
	return NewList(args), nil
}

func builtinCount(args []Value) (Value, error) {
	switch v := args[0].(type) {
	case *String:
		return NewNumber(float64(len(v.Val))), nil
	case *List:
		return NewNumber(float64(len(v.Items))), nil
	case *Hash:
		return NewNumber(float64(v.Len())), nil
	default:
		return nil, raiseKind(ErrIncorrectType, "count requires a string, list or hash")
	}
}

func builtinCons(args []Value) (Value, error) {
	if len(args) == 0 {
		return nil, raiseKind(ErrIncorrectArity, "cons requires at least one argument")
	}
	tail, ok := args[len(args)-1].(*List)
	if !ok {
		return nil, raiseKind(ErrIncorrectType, "cons requires its last argument to be a list")
	}
	items := make([]Value, 0, len(args)-1+len(tail.Items))
	items = append(items, args[:len(args)-1]...)
	items = append(items, tail.Items...)
	return NewList(items), nil
}

func builtinConcat(args []Value) (Value, error) {
	lists := make([][]Value, len(args))
	for i, a := range args {
		l, ok := a.(*List)
		if !ok {
			return nil, raiseKind(ErrIncorrectType, "concat requires every argument to be a list")
		}
		lists[i] = l.Items
	}
	return NewList(lo.Flatten(lists)), nil
}

func builtinFirst(args []Value) (Value, error) {
	l, ok := args[0].(*List)
	if !ok {
		return nil, raiseKind(ErrIncorrectType, "first requires a list")
	}
	if len(l.Items) == 0 {
		return NewNil(), nil
	}
	return l.Items[0], nil
}

func builtinRest(args []Value) (Value, error) {
	l, ok := args[0].(*List)
	if !ok {
		return nil, raiseKind(ErrIncorrectType, "rest requires a list")
	}
	if len(l.Items) == 0 {
		return EmptyList(), nil
	}
	return NewList(l.Items[1:]), nil
}

func builtinNth(args []Value) (Value, error) {
	l, ok := args[0].(*List)
	if !ok {
		return nil, raiseKind(ErrIncorrectType, "nth requires a list as its first argument")
	}
	n, ok := args[1].(*Number)
	if !ok {
		return nil, raiseKind(ErrIncorrectType, "nth requires a number as its second argument")
	}
	idx, err := cast.ToIntE(n.Val)
	if err != nil || idx < 0 || idx >= len(l.Items) {
		return nil, raiseKind(ErrIncorrectType, "nth index out of range")
	}
	return l.Items[idx], nil
}

func typePredicate(pred func(Value) bool) BuiltinFunc {
	return func(args []Value) (Value, error) {
		return NewBool(pred(args[0])), nil
	}
}

// builtinCompileString lexes and reads its string argument, wrapping the
// resulting top-level forms in a (do ...) so compile-string always
// yields a single evaluable form (spec.md §6.2).
func builtinCompileString(args []Value) (Value, error) {
	s, ok := args[0].(*String)
	if !ok {
		return nil, raiseKind(ErrIncorrectType, "compile-string requires a string")
	}
	forms, err := ReadProgram(Lex(s.Val))
	if err != nil {
		return nil, err
	}
	return NewList(append([]Value{NewSymbol("do")}, forms...)), nil
}

func builtinSlurp(args []Value) (Value, error) {
	s, ok := args[0].(*String)
	if !ok {
		return nil, raiseKind(ErrIncorrectType, "slurp requires a string")
	}
	data, err := os.ReadFile(s.Val)
	if err != nil {
		return nil, raiseKind(ErrSystemError, err.Error())
	}
	return NewString(string(data)), nil
}
