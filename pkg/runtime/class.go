package runtime

import "fmt"

// Method is one entry in a class's method table: a name, its formal
// parameter list (not counting the implicit "self"), and an
// executable body - an ast.MethodBody value, reached only through the
// Executable interface so this package never imports pkg/ast.
type Method struct {
	Name   string
	Params []string
	Body   Executable
}

// Class is itself a runtime Value (a class can be assigned to a
// variable, passed around, and instantiated via NewInstance), mirroring
// the teacher's Class/Callable pattern in pkg/eval/ast.go generalized
// from a single constructor arity check to a full method table.
type Class struct {
	Name    string
	Parent  *Class
	Methods []Method
}

func (*Class) mythonValue() {}

// NewClass builds a class, rejecting two methods that share an
// identical (name, arity) pair - spec.md §3 invariant 2. Two methods
// with the same name but different arity are both kept, in the order
// given; GetMethod returns the first by name regardless of arity,
// preserving the original's overload-shadowing behaviour (spec.md §9,
// DESIGN.md Open Question 2) rather than picking the best-arity match.
func NewClass(name string, parent *Class, methods []Method) (*Class, error) {
	seen := make(map[string]map[int]bool)
	for _, m := range methods {
		arities, ok := seen[m.Name]
		if !ok {
			arities = make(map[int]bool)
			seen[m.Name] = arities
		}
		arity := len(m.Params)
		if arities[arity] {
			return nil, fmt.Errorf("class %s: method %s already defined with %d parameter(s)", name, m.Name, arity)
		}
		arities[arity] = true
	}
	return &Class{Name: name, Parent: parent, Methods: methods}, nil
}

// GetMethod searches this class's own method table first, then walks
// up the single-inheritance chain. It returns the first entry whose
// name matches, independent of arity.
func (c *Class) GetMethod(name string) (*Method, bool) {
	for i := range c.Methods {
		if c.Methods[i].Name == name {
			return &c.Methods[i], true
		}
	}
	if c.Parent != nil {
		return c.Parent.GetMethod(name)
	}
	return nil, false
}

// HasMethod reports whether a method of the given name is reachable
// and its parameter count matches arity.
func (c *Class) HasMethod(name string, arity int) bool {
	m, ok := c.GetMethod(name)
	if !ok {
		return false
	}
	return len(m.Params) == arity
}

// NewInstance allocates an Instance of c and, if c (or an ancestor)
// defines __init__, invokes it with args. The constructor's own
// return value is discarded, matching the convention that __init__
// returns None.
func (c *Class) NewInstance(args []Value, ctx *Context) (*Instance, error) {
	inst := &Instance{Class: c, Fields: make(map[string]Value)}
	if m, ok := c.GetMethod("__init__"); ok {
		if len(m.Params) != len(args) {
			return nil, fmt.Errorf("%s.__init__ expects %d argument(s), got %d", c.Name, len(m.Params), len(args))
		}
		if _, err := inst.CallMethod("__init__", args, ctx); err != nil {
			return nil, err
		}
	} else if len(args) != 0 {
		return nil, fmt.Errorf("%s takes no arguments", c.Name)
	}
	return inst, nil
}
