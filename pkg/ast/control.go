package ast

import "github.com/mython-lang/mython/pkg/runtime"

// Compound runs a sequence of statements in order, stopping at the
// first error (including a live *runtime.ReturnSignal, which it does
// not catch - only MethodBody does). Its value is whatever the last
// statement produced, or None for an empty body.
type Compound struct{ Statements []Node }

func (comp Compound) Execute(c runtime.Closure, ctx *runtime.Context) (runtime.Value, error) {
	var result runtime.Value
	for _, stmt := range comp.Statements {
		v, err := stmt.Execute(c, ctx)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

// IfElse evaluates Cond and runs Then or Else accordingly. Else may
// be nil, in which case a false condition produces None.
type IfElse struct {
	Cond, Then, Else Node
}

func (ie IfElse) Execute(c runtime.Closure, ctx *runtime.Context) (runtime.Value, error) {
	cond, err := ie.Cond.Execute(c, ctx)
	if err != nil {
		return nil, err
	}
	truth, err := runtime.IsTrue(cond, ctx)
	if err != nil {
		return nil, err
	}
	if truth {
		return ie.Then.Execute(c, ctx)
	}
	if ie.Else != nil {
		return ie.Else.Execute(c, ctx)
	}
	return nil, nil
}

// Return evaluates Val (nil means an implicit None) and unwinds via
// runtime.ReturnSignal, spec.md §5's dedicated unwind channel. It
// never itself decides whether that unwind is legal - a Return inside
// a method body is caught by the enclosing MethodBody; one that
// escapes every MethodBody (used outside any method) propagates all
// the way to the caller of the top-level program, where the driver
// reports it as an error rather than crashing.
type Return struct{ Val Node }

func (r Return) Execute(c runtime.Closure, ctx *runtime.Context) (runtime.Value, error) {
	if r.Val == nil {
		return nil, &runtime.ReturnSignal{Val: nil}
	}
	v, err := r.Val.Execute(c, ctx)
	if err != nil {
		return nil, err
	}
	return nil, &runtime.ReturnSignal{Val: v}
}

// MethodBody wraps a method's statement sequence and is the only node
// that consumes a ReturnSignal, unwrapping it into an ordinary return
// value - matching the original's MethodBody::Execute catching the
// thrown value, but via a typed error return instead of an exception.
// Falling off the end without a Return implicitly returns None.
type MethodBody struct{ Body Node }

func (mb MethodBody) Execute(c runtime.Closure, ctx *runtime.Context) (runtime.Value, error) {
	_, err := mb.Body.Execute(c, ctx)
	if err != nil {
		if ret, ok := err.(*runtime.ReturnSignal); ok {
			return ret.Val, nil
		}
		return nil, err
	}
	return nil, nil
}
