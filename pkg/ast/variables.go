package ast

import (
	"fmt"

	"github.com/mython-lang/mython/pkg/runtime"
)

// VariableValue reads a name from the closure, falling back to the
// program's outermost closure (ctx.Globals) when the name isn't bound
// locally - method-call closures are flat and seeded only with self
// and formals (spec.md §3's Closure section), so this fallback is the
// only way a method body can reach a class bound by a top-level class
// statement (spec.md's Lifecycle section; exercised by S4's nested
// A/B/C instantiation inside a constructor). As with a field lookup
// (see Get), a name absent from both is a NameError, not an implicit
// None.
type VariableValue struct {
	Name string
}

func (v VariableValue) Execute(c runtime.Closure, ctx *runtime.Context) (runtime.Value, error) {
	if val, ok := c.Get(v.Name); ok {
		return val, nil
	}
	if val, ok := ctx.Globals.Get(v.Name); ok {
		return val, nil
	}
	return nil, fmt.Errorf("name '%s' is not defined", v.Name)
}

// Assignment evaluates Val and binds it to Name in the closure,
// creating the binding if this is its first use - Mython has no
// separate declaration statement, matching the original's Assignment
// statement.
type Assignment struct {
	Name string
	Val  Node
}

func (a Assignment) Execute(c runtime.Closure, ctx *runtime.Context) (runtime.Value, error) {
	val, err := a.Val.Execute(c, ctx)
	if err != nil {
		return nil, err
	}
	c.Set(a.Name, val)
	return val, nil
}

// Get reads a field off an instance, supporting chained access
// (a.b.c parses as Get{Get{VariableValue{a}, "b"}, "c"}). Reading a
// field the receiver never set is a runtime error, not an implicit
// None - the original's TestClass scenario ("a.b.c" with no such
// field raising an error) depends on this.
type Get struct {
	Receiver Node
	Field    string
}

func (g Get) Execute(c runtime.Closure, ctx *runtime.Context) (runtime.Value, error) {
	recv, err := g.Receiver.Execute(c, ctx)
	if err != nil {
		return nil, err
	}
	inst, ok := recv.(*runtime.Instance)
	if !ok {
		return nil, fmt.Errorf("cannot read field '%s' of a non-instance value", g.Field)
	}
	val, ok := inst.GetField(g.Field)
	if !ok {
		return nil, fmt.Errorf("%s has no field '%s'", inst.Class.Name, g.Field)
	}
	return val, nil
}

// FieldAssignment evaluates Receiver, requires it to be an instance,
// and sets Field to the evaluated Val - creating the field on first
// assignment, matching the original's FieldAssignment statement.
type FieldAssignment struct {
	Receiver Node
	Field    string
	Val      Node
}

func (fa FieldAssignment) Execute(c runtime.Closure, ctx *runtime.Context) (runtime.Value, error) {
	recv, err := fa.Receiver.Execute(c, ctx)
	if err != nil {
		return nil, err
	}
	inst, ok := recv.(*runtime.Instance)
	if !ok {
		return nil, fmt.Errorf("cannot assign field '%s' on a non-instance value", fa.Field)
	}
	val, err := fa.Val.Execute(c, ctx)
	if err != nil {
		return nil, err
	}
	inst.SetField(fa.Field, val)
	return val, nil
}
