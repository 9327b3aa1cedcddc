// End-to-end tests driving the full lexer -> parser -> evaluator
// pipeline against example Mython programs, mirroring the scenarios
// and universal properties this interpreter is built against.
package mython_test

import (
	"bytes"
	"testing"

	"github.com/mython-lang/mython/pkg/lexer"
	"github.com/mython-lang/mython/pkg/parser"
	"github.com/mython-lang/mython/pkg/runtime"
)

func run(t *testing.T, src string) string {
	t.Helper()
	lx, err := lexer.New(src)
	if err != nil {
		t.Fatalf("lexer.New: %v", err)
	}
	program, err := parser.Parse(lx)
	if err != nil {
		t.Fatalf("parser.Parse: %v", err)
	}
	var out bytes.Buffer
	ctx := runtime.NewContext(&out)
	if _, err := program.Execute(runtime.Closure{}, ctx); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	return out.String()
}

func runExpectError(t *testing.T, src string) {
	t.Helper()
	lx, err := lexer.New(src)
	if err != nil {
		return
	}
	program, err := parser.Parse(lx)
	if err != nil {
		return
	}
	var out bytes.Buffer
	ctx := runtime.NewContext(&out)
	if _, err := program.Execute(runtime.Closure{}, ctx); err == nil {
		t.Fatalf("expected a runtime error, program ran to completion producing %q", out.String())
	}
}

func TestSimplePrints(t *testing.T) {
	src := "print 57\n" +
		"print 10, 24, -8\n" +
		"print 'hello'\n" +
		"print \"world\"\n" +
		"print True, False\n" +
		"print\n" +
		"print None\n"
	want := "57\n10 24 -8\nhello\nworld\nTrue False\n\nNone\n"
	got := run(t, src)
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestArithmetic(t *testing.T) {
	src := "print 1+2+3+4+5, 1*2*3*4*5, 1-2-3-4-5, 36/4/3, 2*5+10/2\n"
	want := "15 120 -13 3 15\n"
	got := run(t, src)
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestAssignmentAliasing(t *testing.T) {
	src := "class Counter:\n" +
		"  def __init__():\n" +
		"    self.value = 0\n" +
		"  def add():\n" +
		"    self.value = self.value + 1\n" +
		"x = Counter()\n" +
		"y = x\n" +
		"x.add()\n" +
		"y.add()\n" +
		"print x.value\n"
	want := "2\n"
	got := run(t, src)
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNestedFieldAccess(t *testing.T) {
	src := "class A:\n" +
		"  def __init__():\n" +
		"    self.n = 0\n" +
		"class B:\n" +
		"  def __init__():\n" +
		"    self.a = A()\n" +
		"class C:\n" +
		"  def __init__():\n" +
		"    self.b = B()\n" +
		"c = C()\n" +
		"print c.b.a.n\n"
	want := "0\n"
	got := run(t, src)
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNestedFieldAccessThroughMissingFieldIsAnError(t *testing.T) {
	src := "class A:\n" +
		"  def __init__():\n" +
		"    self.n = 0\n" +
		"class B:\n" +
		"  def __init__():\n" +
		"    self.x = 0\n" +
		"class C:\n" +
		"  def __init__():\n" +
		"    self.b = B()\n" +
		"c = C()\n" +
		"print c.b.a.n\n"
	runExpectError(t, src)
}

func TestStringTruthiness(t *testing.T) {
	got := run(t, "if \"123\":\n  print \"truthy\"\nelse:\n  print \"falsey\"\n")
	if got != "truthy\n" {
		t.Fatalf("got %q, want truthy", got)
	}
}

func TestNoneIsFalsy(t *testing.T) {
	got := run(t, "if None:\n  print \"truthy\"\nelse:\n  print \"falsey\"\n")
	if got != "falsey\n" {
		t.Fatalf("got %q, want falsey", got)
	}
}

func TestClassInstanceIsAlwaysFalsy(t *testing.T) {
	src := "class A:\n" +
		"  def __init__():\n" +
		"    self.n = 0\n" +
		"if A():\n" +
		"  print \"truthy\"\n" +
		"else:\n" +
		"  print \"falsey\"\n"
	got := run(t, src)
	if got != "falsey\n" {
		t.Fatalf("got %q, want falsey", got)
	}
}

func TestDivisionByZeroIsARuntimeError(t *testing.T) {
	runExpectError(t, "print 1/0\n")
}

func TestOrShortCircuitsAndNeverEvaluatesItsRightOperand(t *testing.T) {
	src := "class Exploder:\n" +
		"  def detonate():\n" +
		"    print \"evaluated\"\n" +
		"    return True\n" +
		"if True or Exploder().detonate():\n" +
		"  print \"done\"\n"
	got := run(t, src)
	if got != "done\n" {
		t.Fatalf("got %q, want %q (Exploder().detonate() should never print)", got, "done\n")
	}
}

func TestAndShortCircuitsAndNeverEvaluatesItsRightOperand(t *testing.T) {
	src := "class Exploder:\n" +
		"  def detonate():\n" +
		"    print \"evaluated\"\n" +
		"    return True\n" +
		"if False and Exploder().detonate():\n" +
		"  print \"unreachable\"\n" +
		"else:\n" +
		"  print \"done\"\n"
	got := run(t, src)
	if got != "done\n" {
		t.Fatalf("got %q, want %q (Exploder().detonate() should never print)", got, "done\n")
	}
}

// TestMethodOverloadingSymmetry grounds the original source's
// TestMethodOverloading scenario: two independently constructed
// instances compare as equal under a user-defined __eq__.
func TestMethodOverloadingSymmetry(t *testing.T) {
	src := "class Pair:\n" +
		"  def __init__(a, b):\n" +
		"    self.a = a\n" +
		"    self.b = b\n" +
		"  def __eq__(other):\n" +
		"    return self.a == other.a and self.b == other.b\n" +
		"e1 = Pair(1, 2)\n" +
		"e2 = Pair(1, 2)\n" +
		"print e1 == e2, e2 == e1\n"
	got := run(t, src)
	if got != "True True\n" {
		t.Fatalf("got %q, want True True\\n", got)
	}
}

func TestMethodResolutionPrefersChildOverParent(t *testing.T) {
	src := "class Animal:\n" +
		"  def speak():\n" +
		"    return \"...\"\n" +
		"class Dog(Animal):\n" +
		"  def speak():\n" +
		"    return \"Woof\"\n" +
		"d = Dog()\n" +
		"print d.speak()\n"
	got := run(t, src)
	if got != "Woof\n" {
		t.Fatalf("got %q, want Woof\\n", got)
	}
}

func TestMethodResolutionFallsBackToParent(t *testing.T) {
	src := "class Animal:\n" +
		"  def speak():\n" +
		"    return \"...\"\n" +
		"class Dog(Animal):\n" +
		"  def bark():\n" +
		"    return \"Woof\"\n" +
		"d = Dog()\n" +
		"print d.speak()\n"
	got := run(t, src)
	if got != "...\n" {
		t.Fatalf("got %q, want ...\\n", got)
	}
}
