// Package runtime implements Mython's object model: value handles,
// flat closures, classes and instances, and the comparison/print/
// truthiness protocols the evaluator (pkg/ast) drives.
package runtime

import (
	"fmt"
	"io"
	"strconv"
)

// Value is the interface every Mython runtime value satisfies. A nil
// Value is the None handle (spec.md §3 invariant 4): there is no
// separate "None" struct, since None carries no payload and Go's
// nil-interface already is the natural "no value" representation.
type Value interface {
	mythonValue()
}

type Number struct{ Val int64 }

func (Number) mythonValue() {}

type String struct{ Val string }

func (String) mythonValue() {}

type Bool struct{ Val bool }

func (Bool) mythonValue() {}

// Executable is implemented by every AST node in pkg/ast. It is
// declared here, not there, so that runtime (Class/Method) can hold a
// method body without runtime importing ast — only ast imports
// runtime, never the other way around.
type Executable interface {
	Execute(Closure, *Context) (Value, error)
}

// Context carries the program's output sink, matching the original's
// SimpleContext/GetOutputStream, plus the outermost closure that class
// statements bind into (spec.md's Lifecycle section: "Class objects
// live for the program's duration; they are bound into the outermost
// closure by their class statement"). A method call's own closure is
// flat and seeded only with self and its formals, so a constructor
// that instantiates another top-level class (spec.md S4's nested
// A/B/C classes) can only resolve that class name through Globals,
// never through the method's own closure.
type Context struct {
	Out     io.Writer
	Globals Closure
}

func NewContext(w io.Writer) *Context {
	return &Context{Out: w, Globals: Closure{}}
}

// IsTrue implements Mython's truthiness rule. None is false; Bool is
// itself; Number is false only for zero; String is false only when
// empty. A ClassInstance is unconditionally false, with no protocol
// override - Mython's dunder set is fixed (__init__/__str__/__eq__/
// __lt__/__add__) and does not include a __bool__ hook. Any other
// value, such as a Class, is false as well.
func IsTrue(v Value, ctx *Context) (bool, error) {
	switch t := v.(type) {
	case nil:
		return false, nil
	case Bool:
		return t.Val, nil
	case Number:
		return t.Val != 0, nil
	case String:
		return t.Val != "", nil
	case *Instance:
		return false, nil
	default:
		return false, nil
	}
}

// Stringify converts any value to its display text, per spec.md's
// Stringify node and the Print statement's formatting. Instances
// delegate to __str__ if they define it, matching the original's
// ClassInstance::Print falling back to a bare representation
// otherwise.
func Stringify(v Value, ctx *Context) (string, error) {
	switch t := v.(type) {
	case nil:
		return "None", nil
	case Bool:
		if t.Val {
			return "True", nil
		}
		return "False", nil
	case Number:
		return strconv.FormatInt(t.Val, 10), nil
	case String:
		return t.Val, nil
	case *Instance:
		if m, ok := t.Class.GetMethod("__str__"); ok && len(m.Params) == 0 {
			res, err := t.CallMethod("__str__", nil, ctx)
			if err != nil {
				return "", err
			}
			s, ok := res.(String)
			if !ok {
				return "", fmt.Errorf("__str__ must return a string")
			}
			return s.Val, nil
		}
		return fmt.Sprintf("<%s instance>", t.Class.Name), nil
	case *Class:
		return fmt.Sprintf("Class %s", t.Name), nil
	default:
		return "", fmt.Errorf("cannot stringify value of type %T", v)
	}
}
