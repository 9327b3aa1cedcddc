package ast

import (
	"fmt"

	"github.com/mython-lang/mython/pkg/runtime"
)

// MethodDecl is one method entry inside a ClassDefinition, ahead of
// being turned into a runtime.Method: a name, its formal parameters
// (excluding the implicit "self"), and a body - normally a
// MethodBody wrapping a Compound of statements.
type MethodDecl struct {
	Name   string
	Params []string
	Body   Node
}

// ClassDefinition builds a runtime.Class from its parent (looked up by
// name, if any) and its method declarations, then binds the class
// itself to Name in ctx.Globals, the program's outermost closure -
// spec.md's Lifecycle section says class objects "are bound into the
// outermost closure by their class statement", which must hold
// regardless of which closure happens to be passed to Execute (a
// Compound run from inside a method body, however unusual, should
// still publish the class program-wide rather than into that method's
// throwaway closure). Classes are ordinary values otherwise -
// assignable and passable like any other (spec.md §3).
type ClassDefinition struct {
	Name    string
	Parent  string // empty for no base class
	Methods []MethodDecl
}

func (cd ClassDefinition) Execute(c runtime.Closure, ctx *runtime.Context) (runtime.Value, error) {
	var parent *runtime.Class
	if cd.Parent != "" {
		pv, ok := ctx.Globals.Get(cd.Parent)
		if !ok {
			return nil, fmt.Errorf("base class '%s' is not defined", cd.Parent)
		}
		pc, ok := pv.(*runtime.Class)
		if !ok {
			return nil, fmt.Errorf("'%s' is not a class", cd.Parent)
		}
		parent = pc
	}
	methods := make([]runtime.Method, len(cd.Methods))
	for i, m := range cd.Methods {
		methods[i] = runtime.Method{Name: m.Name, Params: m.Params, Body: m.Body}
	}
	class, err := runtime.NewClass(cd.Name, parent, methods)
	if err != nil {
		return nil, err
	}
	ctx.Globals.Set(cd.Name, class)
	return class, nil
}
