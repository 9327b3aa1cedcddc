package ast

import (
	"fmt"

	"github.com/mython-lang/mython/pkg/runtime"
)

// Stringify converts Val's runtime value to its String display form,
// the explicit str()-style conversion spec.md's node table names.
type Stringify struct{ Val Node }

func (s Stringify) Execute(c runtime.Closure, ctx *runtime.Context) (runtime.Value, error) {
	v, err := s.Val.Execute(c, ctx)
	if err != nil {
		return nil, err
	}
	str, err := runtime.Stringify(v, ctx)
	if err != nil {
		return nil, err
	}
	return runtime.String{Val: str}, nil
}

// Print stringifies each argument, joins them with a single space,
// and writes a trailing newline to the context's output stream -
// resolving spec.md §9's open question on separator behaviour by
// matching ordinary Python print() output.
type Print struct{ Args []Node }

func (p Print) Execute(c runtime.Closure, ctx *runtime.Context) (runtime.Value, error) {
	for i, arg := range p.Args {
		v, err := arg.Execute(c, ctx)
		if err != nil {
			return nil, err
		}
		str, err := runtime.Stringify(v, ctx)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			fmt.Fprint(ctx.Out, " ")
		}
		fmt.Fprint(ctx.Out, str)
	}
	fmt.Fprint(ctx.Out, "\n")
	return nil, nil
}
