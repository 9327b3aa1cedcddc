package parser_test

import (
	"testing"

	"github.com/mython-lang/mython/pkg/ast"
	"github.com/mython-lang/mython/pkg/lexer"
	"github.com/mython-lang/mython/pkg/parser"
)

func mustParse(t *testing.T, src string) ast.Node {
	t.Helper()
	lx, err := lexer.New(src)
	if err != nil {
		t.Fatalf("lexer.New(%q): %v", src, err)
	}
	node, err := parser.Parse(lx)
	if err != nil {
		t.Fatalf("parser.Parse(%q): %v", src, err)
	}
	return node
}

func mustFailParse(t *testing.T, src string) {
	t.Helper()
	lx, err := lexer.New(src)
	if err != nil {
		// a lex error also counts as "this source doesn't parse"
		return
	}
	if _, err := parser.Parse(lx); err == nil {
		t.Fatalf("expected a parse error for %q", src)
	}
}

func TestParseAssignmentStatement(t *testing.T) {
	node := mustParse(t, "x = 1\n")
	compound := node.(ast.Compound)
	if len(compound.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(compound.Statements))
	}
	assign, ok := compound.Statements[0].(ast.Assignment)
	if !ok {
		t.Fatalf("expected ast.Assignment, got %T", compound.Statements[0])
	}
	if assign.Name != "x" {
		t.Fatalf("got name %q, want x", assign.Name)
	}
	if _, ok := assign.Val.(ast.NumberLiteral); !ok {
		t.Fatalf("expected a number literal, got %T", assign.Val)
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	node := mustParse(t, "x = 1 + 2 * 3\n")
	assign := node.(ast.Compound).Statements[0].(ast.Assignment)
	add, ok := assign.Val.(ast.Add)
	if !ok {
		t.Fatalf("expected top-level Add (lowest precedence wins last), got %T", assign.Val)
	}
	if _, ok := add.Lhs.(ast.NumberLiteral); !ok {
		t.Fatalf("expected lhs to be the literal 1, got %T", add.Lhs)
	}
	if _, ok := add.Rhs.(ast.Mult); !ok {
		t.Fatalf("expected rhs to be a nested Mult (2 * 3), got %T", add.Rhs)
	}
}

func TestParseComparisonAndLogic(t *testing.T) {
	node := mustParse(t, "x = a < b and not c\n")
	assign := node.(ast.Compound).Statements[0].(ast.Assignment)
	and, ok := assign.Val.(ast.And)
	if !ok {
		t.Fatalf("expected ast.And, got %T", assign.Val)
	}
	if _, ok := and.Lhs.(ast.Comparison); !ok {
		t.Fatalf("expected lhs to be a Comparison, got %T", and.Lhs)
	}
	if _, ok := and.Rhs.(ast.Not); !ok {
		t.Fatalf("expected rhs to be a Not, got %T", and.Rhs)
	}
}

func TestParsePrintWithMultipleArgs(t *testing.T) {
	node := mustParse(t, "print 1, \"two\"\n")
	print, ok := node.(ast.Compound).Statements[0].(ast.Print)
	if !ok {
		t.Fatalf("expected ast.Print, got %T", node.(ast.Compound).Statements[0])
	}
	if len(print.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(print.Args))
	}
}

func TestParseIfElse(t *testing.T) {
	src := "if x:\n  print 1\nelse:\n  print 2\n"
	node := mustParse(t, src)
	ifElse, ok := node.(ast.Compound).Statements[0].(ast.IfElse)
	if !ok {
		t.Fatalf("expected ast.IfElse, got %T", node.(ast.Compound).Statements[0])
	}
	if ifElse.Else == nil {
		t.Fatalf("expected a non-nil Else block")
	}
}

func TestParseIfWithoutElse(t *testing.T) {
	src := "if x:\n  print 1\n"
	node := mustParse(t, src)
	ifElse := node.(ast.Compound).Statements[0].(ast.IfElse)
	if ifElse.Else != nil {
		t.Fatalf("expected a nil Else block, got %v", ifElse.Else)
	}
}

func TestParseClassDefWithInheritance(t *testing.T) {
	src := "class Dog(Animal):\n  def speak():\n    return \"Woof\"\n"
	node := mustParse(t, src)
	def, ok := node.(ast.Compound).Statements[0].(ast.ClassDefinition)
	if !ok {
		t.Fatalf("expected ast.ClassDefinition, got %T", node.(ast.Compound).Statements[0])
	}
	if def.Name != "Dog" || def.Parent != "Animal" {
		t.Fatalf("got Name=%q Parent=%q, want Dog/Animal", def.Name, def.Parent)
	}
	if len(def.Methods) != 1 || def.Methods[0].Name != "speak" {
		t.Fatalf("expected a single 'speak' method, got %v", def.Methods)
	}
}

func TestParseClassDefWithoutParent(t *testing.T) {
	src := "class Animal:\n  def speak():\n    return \"...\"\n"
	node := mustParse(t, src)
	def := node.(ast.Compound).Statements[0].(ast.ClassDefinition)
	if def.Parent != "" {
		t.Fatalf("expected no parent, got %q", def.Parent)
	}
}

func TestMethodParamsDoNotDeclareSelf(t *testing.T) {
	// self is bound implicitly into every method-call closure, never
	// written as a declared parameter (see spec.md S3's def __init__():).
	src := "class C:\n  def bump(by):\n    return by\n"
	node := mustParse(t, src)
	def := node.(ast.Compound).Statements[0].(ast.ClassDefinition)
	m := def.Methods[0]
	if len(m.Params) != 1 || m.Params[0] != "by" {
		t.Fatalf("got params %v, want [by]", m.Params)
	}
}

func TestParseMethodWithNoParams(t *testing.T) {
	src := "class Counter:\n  def __init__():\n    self.value = 0\n"
	node := mustParse(t, src)
	def := node.(ast.Compound).Statements[0].(ast.ClassDefinition)
	if len(def.Methods[0].Params) != 0 {
		t.Fatalf("expected no declared params, got %v", def.Methods[0].Params)
	}
}

func TestParseFieldAssignment(t *testing.T) {
	src := "self.n = 0\n"
	node := mustParse(t, src)
	fa, ok := node.(ast.Compound).Statements[0].(ast.FieldAssignment)
	if !ok {
		t.Fatalf("expected ast.FieldAssignment, got %T", node.(ast.Compound).Statements[0])
	}
	if fa.Field != "n" {
		t.Fatalf("got field %q, want n", fa.Field)
	}
}

func TestParseMethodCallChain(t *testing.T) {
	node := mustParse(t, "a.bump(1)\n")
	call, ok := node.(ast.Compound).Statements[0].(ast.MethodCall)
	if !ok {
		t.Fatalf("expected ast.MethodCall, got %T", node.(ast.Compound).Statements[0])
	}
	if call.Method != "bump" || len(call.Args) != 1 {
		t.Fatalf("got method %q with %d args, want bump/1", call.Method, len(call.Args))
	}
}

func TestParseStrCallProducesStringify(t *testing.T) {
	node := mustParse(t, "print str(1)\n")
	print := node.(ast.Compound).Statements[0].(ast.Print)
	if _, ok := print.Args[0].(ast.Stringify); !ok {
		t.Fatalf("expected str(1) to parse as ast.Stringify, got %T", print.Args[0])
	}
}

func TestParseBareCallProducesNewInstance(t *testing.T) {
	node := mustParse(t, "x = Counter()\n")
	assign := node.(ast.Compound).Statements[0].(ast.Assignment)
	if _, ok := assign.Val.(ast.NewInstance); !ok {
		t.Fatalf("expected Counter() to parse as ast.NewInstance, got %T", assign.Val)
	}
}

func TestParseReturnWithNoValue(t *testing.T) {
	src := "class C:\n  def m():\n    return\n"
	node := mustParse(t, src)
	def := node.(ast.Compound).Statements[0].(ast.ClassDefinition)
	body := def.Methods[0].Body.(ast.MethodBody).Body.(ast.Compound)
	ret, ok := body.Statements[0].(ast.Return)
	if !ok {
		t.Fatalf("expected ast.Return, got %T", body.Statements[0])
	}
	if ret.Val != nil {
		t.Fatalf("expected a nil Val for bare return, got %v", ret.Val)
	}
}

func TestInvalidAssignmentTargetIsAnError(t *testing.T) {
	mustFailParse(t, "1 = 2\n")
}

func TestIncompleteExpressionIsAnError(t *testing.T) {
	mustFailParse(t, "print 1 +\n")
}

func TestParenthesizedGrouping(t *testing.T) {
	node := mustParse(t, "x = (1 + 2) * 3\n")
	assign := node.(ast.Compound).Statements[0].(ast.Assignment)
	mult, ok := assign.Val.(ast.Mult)
	if !ok {
		t.Fatalf("expected top-level Mult, got %T", assign.Val)
	}
	if _, ok := mult.Lhs.(ast.Add); !ok {
		t.Fatalf("expected lhs to be the parenthesized Add, got %T", mult.Lhs)
	}
}
