package runtime

// ReturnSignal is the unwind channel a return statement uses to leave
// a method body early (spec.md §5, §7). It is a distinct error type,
// not a plain one, so that exactly one place - ast.MethodBody.Execute -
// can recognize and consume it with a type assertion; everywhere else
// it propagates like any other error, which is the Go-idiomatic
// encoding of "a dedicated unwind signal distinguishable from error
// signals."
type ReturnSignal struct {
	Val Value
}

func (r *ReturnSignal) Error() string {
	return "return used outside of a method body"
}
