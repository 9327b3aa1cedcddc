package ast

import (
	"fmt"

	"github.com/mython-lang/mython/pkg/runtime"
)

// asBool requires v to already be a runtime.Bool, per spec.md §4.3:
// "Evaluate l; it must be Bool (if not, error)" - and §7's "non-Bool
// condition in and/or/not" Type error. This matches the original
// statement.cpp's Or/And/Not, which throw on a non-Bool operand rather
// than coercing one; IfElse is the only construct that coerces via
// IsTrue (spec.md S5 mandates that override).
func asBool(v runtime.Value, op string) (bool, error) {
	b, ok := v.(runtime.Bool)
	if !ok {
		return false, fmt.Errorf("%s requires a Bool operand, got %T", op, v)
	}
	return b.Val, nil
}

// Or evaluates Lhs, which must be Bool; a true Lhs short-circuits and
// is returned as-is, otherwise Rhs is evaluated and returned
// unmodified - matching spec.md §4.3's "return l if true, else
// evaluate and return r" and the original's Or::Execute, which checks
// only its left operand and passes the right one through raw.
type Or struct{ Lhs, Rhs Node }

func (o Or) Execute(c runtime.Closure, ctx *runtime.Context) (runtime.Value, error) {
	l, err := o.Lhs.Execute(c, ctx)
	if err != nil {
		return nil, err
	}
	truth, err := asBool(l, "or")
	if err != nil {
		return nil, err
	}
	if truth {
		return l, nil
	}
	return o.Rhs.Execute(c, ctx)
}

// And evaluates Lhs, which must be Bool; a false Lhs short-circuits
// and is returned as-is, otherwise Rhs is evaluated and returned
// unmodified - mirrors Or, matching the original's And::Execute.
type And struct{ Lhs, Rhs Node }

func (a And) Execute(c runtime.Closure, ctx *runtime.Context) (runtime.Value, error) {
	l, err := a.Lhs.Execute(c, ctx)
	if err != nil {
		return nil, err
	}
	truth, err := asBool(l, "and")
	if err != nil {
		return nil, err
	}
	if !truth {
		return l, nil
	}
	return a.Rhs.Execute(c, ctx)
}

type Not struct{ Val Node }

func (n Not) Execute(c runtime.Closure, ctx *runtime.Context) (runtime.Value, error) {
	v, err := n.Val.Execute(c, ctx)
	if err != nil {
		return nil, err
	}
	truth, err := asBool(v, "not")
	if err != nil {
		return nil, err
	}
	return runtime.Bool{Val: !truth}, nil
}

// CompareOp names one of the six comparison operators. Kept as this
// package's own enum (rather than reusing tokens.Type) so the
// evaluator does not need to know which lexical spelling produced a
// given comparison.
type CompareOp uint8

const (
	CmpEq CompareOp = iota
	CmpNotEq
	CmpLess
	CmpLessOrEq
	CmpGreater
	CmpGreaterOrEq
)

// Comparison delegates to the six-operator protocol in pkg/runtime,
// which itself derives NotEqual/Greater/LessOrEqual/GreaterOrEqual
// from Equal and Less, per the original's comparison chain.
type Comparison struct {
	Op       CompareOp
	Lhs, Rhs Node
}

func (cmp Comparison) Execute(c runtime.Closure, ctx *runtime.Context) (runtime.Value, error) {
	l, err := cmp.Lhs.Execute(c, ctx)
	if err != nil {
		return nil, err
	}
	r, err := cmp.Rhs.Execute(c, ctx)
	if err != nil {
		return nil, err
	}
	var result bool
	switch cmp.Op {
	case CmpEq:
		result, err = runtime.Equal(l, r, ctx)
	case CmpNotEq:
		result, err = runtime.NotEqual(l, r, ctx)
	case CmpLess:
		result, err = runtime.Less(l, r, ctx)
	case CmpLessOrEq:
		result, err = runtime.LessOrEqual(l, r, ctx)
	case CmpGreater:
		result, err = runtime.Greater(l, r, ctx)
	case CmpGreaterOrEq:
		result, err = runtime.GreaterOrEqual(l, r, ctx)
	}
	if err != nil {
		return nil, err
	}
	return runtime.Bool{Val: result}, nil
}
