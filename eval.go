// Copyright 2024 The lumen authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lumen

import "strconv"

// step is what a special form hands back to the Eval trampoline: either
// a final value (done) or a rewritten (expr, env) pair to continue
// looping on, which is how let*/do/if/eval/try*/lambda application all
// run in constant stack (spec.md §4.3, §5).
type step struct {
	value Value
	expr  Value
	env   *Env
	done  bool
}

func finish(v Value) step                { return step{value: v, done: true} }
func rewrite(expr Value, env *Env) step  { return step{expr: expr, env: env} }

type specialForm func(args []Value, env *Env) (step, error)

var specialForms map[string]specialForm

func init() {
	specialForms = map[string]specialForm{
		"def!":               evalDefBang,
		"defmacro!":          evalDefMacroBang,
		"deferror!":          evalDefErrorBang,
		"let*":               evalLetStar,
		"do":                 evalDo,
		"if":                 evalIf,
		"fn*":                evalFnStar,
		"eval":               evalEvalForm,
		"quote":              evalQuoteForm,
		"quasi-quote":        evalQuasiQuoteForm,
		"quasi-quote-expand": evalQuasiQuoteExpandForm,
		"macro-expand":       evalMacroExpandForm,
		"throw":              evalThrowForm,
		"try*":               evalTryStarForm,
	}
}

// Eval is the trampoline of spec.md §4.3. It rewrites (expr, env)
// in place for every tail position (let*, do, if, eval, lambda
// application, quasi-quote, try* catch bodies) instead of recursing, so
// a self-tail-recursive lambda runs in constant Go stack.
func Eval(expr Value, env *Env) (Value, error) {
	for {
		lst, ok := expr.(*List)
		if !ok {
			return evalAtom(expr, env)
		}
		if len(lst.Items) == 0 {
			return lst, nil
		}

		expanded, err := macroExpand(expr, env)
		if err != nil {
			return nil, err
		}
		lst, ok = expanded.(*List)
		if !ok {
			return evalAtom(expanded, env)
		}
		expr = lst

		if sym, ok := lst.Items[0].(*Symbol); ok {
			if handler, ok := specialForms[sym.Name]; ok {
				st, err := handler(lst.Items[1:], env)
				if err != nil {
					return nil, err
				}
				if st.done {
					return st.value, nil
				}
				expr, env = st.expr, st.env
				continue
			}
		}

		values, err := evalList(lst.Items, env)
		if err != nil {
			return nil, err
		}
		head, args := values[0], values[1:]

		switch fn := head.(type) {
		case *Function:
			if fn.Arity != nil && len(args) != *fn.Arity {
				return nil, raiseKind(ErrIncorrectArity, fn.Name+": expected "+itoa(*fn.Arity)+" argument(s)")
			}
			return fn.Fn(args)
		case *Lambda:
			childEnv, err := bindLambdaArgs(fn, args)
			if err != nil {
				return nil, err
			}
			expr, env = fn.Body, childEnv
			continue
		default:
			return nil, raiseKind(ErrNotAFunction, head.String()+" is not a function")
		}
	}
}

// evalAtom evaluates a non-special-form, non-application expression
// (spec.md §4.4).
func evalAtom(v Value, env *Env) (Value, error) {
	switch t := v.(type) {
	case *Symbol:
		val, ok := env.Get(t.Name)
		if !ok {
			msg := "symbol " + t.Name + " is not defined"
			if suggestion := env.Suggest(t.Name); suggestion != "" {
				msg += "; did you mean " + suggestion + "?"
			}
			return nil, raiseKind(ErrNotDefined, msg)
		}
		return val, nil
	case *List:
		items, err := evalList(t.Items, env)
		if err != nil {
			return nil, err
		}
		return NewList(items), nil
	case *Hash:
		pairs := t.Pairs()
		out := make([]Value, len(pairs))
		for i := 0; i < len(pairs); i += 2 {
			out[i] = pairs[i]
			v, err := Eval(pairs[i+1], env)
			if err != nil {
				return nil, err
			}
			out[i+1] = v
		}
		h, err := NewHash(out)
		if err != nil {
			return nil, raiseKind(ErrIncorrectType, err.Error())
		}
		return h, nil
	default:
		return v, nil
	}
}

// evalList evaluates each element of items in order, short-circuiting
// on the first error.
func evalList(items []Value, env *Env) ([]Value, error) {
	out := make([]Value, len(items))
	for i, it := range items {
		v, err := Eval(it, env)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// isMacroCall holds iff expr is a non-empty list whose head symbol
// resolves to a macro-flagged Lambda (spec.md §4.5).
func isMacroCall(expr Value, env *Env) (*Lambda, bool) {
	lst, ok := expr.(*List)
	if !ok || len(lst.Items) == 0 {
		return nil, false
	}
	sym, ok := lst.Items[0].(*Symbol)
	if !ok {
		return nil, false
	}
	val, ok := env.Get(sym.Name)
	if !ok {
		return nil, false
	}
	lam, ok := val.(*Lambda)
	if !ok || !lam.IsMacro {
		return nil, false
	}
	return lam, true
}

// macroExpand repeatedly applies the macro lambda at expr's head to the
// unevaluated tail until the head is no longer a macro call, per
// spec.md §4.5.
func macroExpand(expr Value, env *Env) (Value, error) {
	for {
		lam, ok := isMacroCall(expr, env)
		if !ok {
			return expr, nil
		}
		lst := expr.(*List)
		expanded, err := applyLambdaFull(lam, lst.Items[1:])
		if err != nil {
			return nil, err
		}
		expr = expanded
	}
}

// bindLambdaArgs builds the child environment for a lambda application
// (spec.md §4.7): positional params, with a trailing "& rest" symbol
// gathering any remaining arguments into a list.
func bindLambdaArgs(lam *Lambda, args []Value) (*Env, error) {
	childEnv := NewEnv(lam.Env)
	n := len(lam.Params)
	if lam.Rest != nil {
		if len(args) < n {
			return nil, raiseKind(ErrIncorrectArity, "expected at least "+itoa(n)+" argument(s)")
		}
		for i, p := range lam.Params {
			childEnv.Define(p.Name, args[i])
		}
		childEnv.Define(lam.Rest.Name, NewList(args[n:]))
		return childEnv, nil
	}
	if len(args) != n {
		return nil, raiseKind(ErrIncorrectArity, "expected "+itoa(n)+" argument(s), got "+itoa(len(args)))
	}
	for i, p := range lam.Params {
		childEnv.Define(p.Name, args[i])
	}
	return childEnv, nil
}

// applyLambdaFull binds args and fully evaluates the lambda body. It is
// used by macro expansion, which needs a concrete resulting form rather
// than a further trampoline step.
func applyLambdaFull(lam *Lambda, args []Value) (Value, error) {
	childEnv, err := bindLambdaArgs(lam, args)
	if err != nil {
		return nil, err
	}
	return Eval(lam.Body, childEnv)
}

// Apply applies any callable Value (Function or Lambda) to args,
// fully evaluating lambda bodies. Built-ins that accept user callables
// (none in the core namespace today, but kept for symmetry with
// apply-style built-ins a prelude may add) go through this.
func Apply(fn Value, args []Value) (Value, error) {
	switch f := fn.(type) {
	case *Function:
		if f.Arity != nil && len(args) != *f.Arity {
			return nil, raiseKind(ErrIncorrectArity, f.Name+": expected "+itoa(*f.Arity)+" argument(s)")
		}
		return f.Fn(args)
	case *Lambda:
		return applyLambdaFull(f, args)
	default:
		return nil, raiseKind(ErrNotAFunction, fn.String()+" is not a function")
	}
}

// ---- special forms ----

func evalDefBang(args []Value, env *Env) (step, error) {
	if len(args) != 2 {
		return step{}, raiseKind(ErrIncorrectType, "def! expects (def! symbol form)")
	}
	sym, ok := args[0].(*Symbol)
	if !ok {
		return step{}, raiseKind(ErrIncorrectType, "def! first argument must be a symbol")
	}
	val, err := Eval(args[1], env)
	if err != nil {
		return step{}, err
	}
	env.Define(sym.Name, val)
	return finish(val), nil
}

func evalDefMacroBang(args []Value, env *Env) (step, error) {
	if len(args) != 2 {
		return step{}, raiseKind(ErrIncorrectType, "defmacro! expects (defmacro! symbol form)")
	}
	sym, ok := args[0].(*Symbol)
	if !ok {
		return step{}, raiseKind(ErrIncorrectType, "defmacro! first argument must be a symbol")
	}
	val, err := Eval(args[1], env)
	if err != nil {
		return step{}, err
	}
	lam, ok := val.(*Lambda)
	if !ok {
		return step{}, raiseKind(ErrIncorrectType, "defmacro! second argument must evaluate to a lambda")
	}
	macro := lam.AsMacro()
	env.Define(sym.Name, macro)
	return finish(macro), nil
}

func evalDefErrorBang(args []Value, env *Env) (step, error) {
	if len(args) != 2 {
		return step{}, raiseKind(ErrIncorrectType, "deferror! expects (deferror! symbol kind-string)")
	}
	sym, ok := args[0].(*Symbol)
	if !ok {
		return step{}, raiseKind(ErrIncorrectType, "deferror! first argument must be a symbol")
	}
	kindVal, err := Eval(args[1], env)
	if err != nil {
		return step{}, err
	}
	kindStr, ok := kindVal.(*String)
	if !ok {
		return step{}, raiseKind(ErrIncorrectType, "deferror! second argument must be a string")
	}
	env.Define(sym.Name, NewError(kindStr.Val, sym.Name))
	return finish(NewNil()), nil
}

func evalLetStar(args []Value, env *Env) (step, error) {
	if len(args) != 2 {
		return step{}, raiseKind(ErrIncorrectType, "let* expects (let* (bindings...) body)")
	}
	bindings, ok := args[0].(*List)
	if !ok || len(bindings.Items)%2 != 0 {
		return step{}, raiseKind(ErrIncorrectType, "let* bindings must be an even-length list")
	}
	child := NewEnv(env)
	for i := 0; i < len(bindings.Items); i += 2 {
		key, ok := bindings.Items[i].(*Symbol)
		if !ok {
			return step{}, raiseKind(ErrIncorrectType, "let* binding keys must be symbols")
		}
		val, err := Eval(bindings.Items[i+1], child)
		if err != nil {
			return step{}, err
		}
		child.Define(key.Name, val)
	}
	return rewrite(args[1], child), nil
}

func evalDo(args []Value, env *Env) (step, error) {
	if len(args) == 0 {
		return finish(NewNil()), nil
	}
	for _, e := range args[:len(args)-1] {
		if _, err := Eval(e, env); err != nil {
			return step{}, err
		}
	}
	return rewrite(args[len(args)-1], env), nil
}

func evalIf(args []Value, env *Env) (step, error) {
	if len(args) < 2 || len(args) > 3 {
		return step{}, raiseKind(ErrIncorrectType, "if expects (if cond then [else])")
	}
	cond, err := Eval(args[0], env)
	if err != nil {
		return step{}, err
	}
	if cond.Truthy() {
		return rewrite(args[1], env), nil
	}
	if len(args) == 3 {
		return rewrite(args[2], env), nil
	}
	return finish(NewNil()), nil
}

func evalFnStar(args []Value, env *Env) (step, error) {
	if len(args) != 2 {
		return step{}, raiseKind(ErrIncorrectType, "fn* expects (fn* (params...) body)")
	}
	paramsList, ok := args[0].(*List)
	if !ok {
		return step{}, raiseKind(ErrIncorrectType, "fn* parameter list must be a list")
	}
	params, rest, err := parseParamList(paramsList.Items)
	if err != nil {
		return step{}, err
	}
	return finish(&Lambda{Params: params, Rest: rest, Body: args[1], Env: env}), nil
}

func parseParamList(items []Value) ([]*Symbol, *Symbol, error) {
	var params []*Symbol
	for i := 0; i < len(items); i++ {
		sym, ok := items[i].(*Symbol)
		if !ok {
			return nil, nil, raiseKind(ErrIncorrectType, "fn* parameters must be symbols")
		}
		if sym.Name == "&" {
			if i != len(items)-2 {
				return nil, nil, raiseKind(ErrIncorrectType, "fn* expects exactly one symbol after &")
			}
			restSym, ok := items[i+1].(*Symbol)
			if !ok {
				return nil, nil, raiseKind(ErrIncorrectType, "fn* rest parameter must be a symbol")
			}
			return params, restSym, nil
		}
		params = append(params, sym)
	}
	return params, nil, nil
}

func evalEvalForm(args []Value, env *Env) (step, error) {
	if len(args) != 1 {
		return step{}, raiseKind(ErrIncorrectType, "eval expects (eval form)")
	}
	form, err := Eval(args[0], env)
	if err != nil {
		return step{}, err
	}
	return rewrite(form, env), nil
}

func evalQuoteForm(args []Value, env *Env) (step, error) {
	if len(args) != 1 {
		return step{}, raiseKind(ErrIncorrectType, "quote expects exactly one form")
	}
	return finish(args[0]), nil
}

func evalQuasiQuoteForm(args []Value, env *Env) (step, error) {
	if len(args) != 1 {
		return step{}, raiseKind(ErrIncorrectType, "quasi-quote expects exactly one form")
	}
	return rewrite(quasiquoteExpand(args[0]), env), nil
}

func evalQuasiQuoteExpandForm(args []Value, env *Env) (step, error) {
	if len(args) != 1 {
		return step{}, raiseKind(ErrIncorrectType, "quasi-quote-expand expects exactly one form")
	}
	return finish(quasiquoteExpand(args[0])), nil
}

func evalMacroExpandForm(args []Value, env *Env) (step, error) {
	if len(args) != 1 {
		return step{}, raiseKind(ErrIncorrectType, "macro-expand expects exactly one form")
	}
	expanded, err := macroExpand(args[0], env)
	if err != nil {
		return step{}, err
	}
	return finish(expanded), nil
}

func evalThrowForm(args []Value, env *Env) (step, error) {
	if len(args) != 1 {
		return step{}, raiseKind(ErrIncorrectType, "throw expects exactly one form")
	}
	val, err := Eval(args[0], env)
	if err != nil {
		return step{}, err
	}
	return step{}, raise(val)
}

// evalTryStarForm implements try*/catch* per spec.md §4.6, resolved per
// the Open Question decision recorded in SPEC_FULL.md: a catch clause
// whose binding-sym is unbound matches unconditionally; one whose
// binding-sym resolves to an Error value (typically installed by
// deferror!) matches only a raised Error of the same kind.
func evalTryStarForm(args []Value, env *Env) (step, error) {
	if len(args) == 0 {
		return step{}, raiseKind(ErrIncorrectType, "try* expects a body")
	}
	body := args[0]
	clauses := args[1:]

	result, err := Eval(body, env)
	if err == nil {
		return finish(result), nil
	}
	sig, ok := asSignal(err)
	if !ok {
		return step{}, err
	}

	for _, clause := range clauses {
		clauseList, ok := clause.(*List)
		if !ok || len(clauseList.Items) != 3 {
			return step{}, raiseKind(ErrIncorrectType, "try* clauses must be (catch* binding-sym handler)")
		}
		headSym, ok := clauseList.Items[0].(*Symbol)
		if !ok || headSym.Name != "catch*" {
			return step{}, raiseKind(ErrIncorrectType, "try* clauses must start with catch*")
		}
		bindingSym, ok := clauseList.Items[1].(*Symbol)
		if !ok {
			return step{}, raiseKind(ErrIncorrectType, "catch* binding must be a symbol")
		}
		handler := clauseList.Items[2]

		matches := true
		if template, ok := env.Get(bindingSym.Name); ok {
			if templateErr, isErr := template.(*Error); isErr {
				raisedErr, raisedIsErr := sig.Value.(*Error)
				matches = raisedIsErr && raisedErr.ErrKind == templateErr.ErrKind
			}
		}
		if !matches {
			continue
		}

		catchEnv := NewEnv(env)
		catchEnv.Define(bindingSym.Name, sig.Value)
		return rewrite(handler, catchEnv), nil
	}
	return step{}, err
}

func itoa(n int) string { return strconv.Itoa(n) }
