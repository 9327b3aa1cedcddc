package runtime

import "fmt"

// Equal and Less are the two primitive comparisons; every other
// comparison operator is defined in terms of them, matching the
// delegation chain the original runtime.cpp uses (Equal/Less are
// implemented per-type or via a dunder method; NotEqual/Greater/
// LessOrEqual/GreaterOrEqual are derived).
func Equal(a, b Value, ctx *Context) (bool, error) {
	switch x := a.(type) {
	case nil:
		return b == nil, nil
	case Number:
		y, ok := b.(Number)
		if !ok {
			return false, typeMismatch("==", a, b)
		}
		return x.Val == y.Val, nil
	case String:
		y, ok := b.(String)
		if !ok {
			return false, typeMismatch("==", a, b)
		}
		return x.Val == y.Val, nil
	case Bool:
		y, ok := b.(Bool)
		if !ok {
			return false, typeMismatch("==", a, b)
		}
		return x.Val == y.Val, nil
	case *Instance:
		return dunderCompare(x, b, "__eq__", "==", ctx)
	default:
		return false, typeMismatch("==", a, b)
	}
}

func Less(a, b Value, ctx *Context) (bool, error) {
	switch x := a.(type) {
	case Number:
		y, ok := b.(Number)
		if !ok {
			return false, typeMismatch("<", a, b)
		}
		return x.Val < y.Val, nil
	case String:
		y, ok := b.(String)
		if !ok {
			return false, typeMismatch("<", a, b)
		}
		return x.Val < y.Val, nil
	case Bool:
		y, ok := b.(Bool)
		if !ok {
			return false, typeMismatch("<", a, b)
		}
		return !x.Val && y.Val, nil
	case *Instance:
		return dunderCompare(x, b, "__lt__", "<", ctx)
	default:
		return false, typeMismatch("<", a, b)
	}
}

func NotEqual(a, b Value, ctx *Context) (bool, error) {
	eq, err := Equal(a, b, ctx)
	if err != nil {
		return false, err
	}
	return !eq, nil
}

func Greater(a, b Value, ctx *Context) (bool, error) {
	lt, err := Less(a, b, ctx)
	if err != nil {
		return false, err
	}
	eq, err := Equal(a, b, ctx)
	if err != nil {
		return false, err
	}
	return !lt && !eq, nil
}

func LessOrEqual(a, b Value, ctx *Context) (bool, error) {
	lt, err := Less(a, b, ctx)
	if err != nil {
		return false, err
	}
	if lt {
		return true, nil
	}
	return Equal(a, b, ctx)
}

func GreaterOrEqual(a, b Value, ctx *Context) (bool, error) {
	lt, err := Less(a, b, ctx)
	if err != nil {
		return false, err
	}
	return !lt, nil
}

func dunderCompare(inst *Instance, other Value, method, op string, ctx *Context) (bool, error) {
	if !inst.HasMethod(method, 1) {
		return false, fmt.Errorf("%s has no %s method, cannot apply %s", inst.Class.Name, method, op)
	}
	res, err := inst.CallMethod(method, []Value{other}, ctx)
	if err != nil {
		return false, err
	}
	b, ok := res.(Bool)
	if !ok {
		return false, fmt.Errorf("%s.%s must return a bool", inst.Class.Name, method)
	}
	return b.Val, nil
}

func typeMismatch(op string, a, b Value) error {
	return fmt.Errorf("cannot apply %s to %T and %T", op, a, b)
}
