// Package parser is a recursive-descent parser from pkg/lexer's token
// stream to pkg/ast nodes. spec.md leaves the grammar to an external
// parser; this one exists so the pipeline can be driven end to end in
// tests and by cmd/mython. Grounded on pkg/parser/parser.go's
// precedence-chain style (parseEquality/parseComparison/parseTerm/
// parseFactor/parseUnary/parsePrimary), extended with statement-level
// productions driven off Indent/Dedent/Newline instead of Lox's
// braces and semicolons.
package parser

import (
	"fmt"

	"github.com/mython-lang/mython/pkg/ast"
	"github.com/mython-lang/mython/pkg/lexer"
	"github.com/mython-lang/mython/pkg/tokens"
)

type ParseError struct {
	Line, Col int
	Msg       string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, col %d: %s", e.Line, e.Col, e.Msg)
}

type Parser struct {
	lx *lexer.Lexer
}

// Parse consumes lx's entire token stream and returns the program as
// a single Compound node.
func Parse(lx *lexer.Lexer) (ast.Node, error) {
	p := &Parser{lx: lx}
	var stmts []ast.Node
	for !p.check(tokens.Eof) {
		for p.check(tokens.Newline) {
			p.advance()
		}
		if p.check(tokens.Eof) {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return ast.Compound{Statements: stmts}, nil
}

func (p *Parser) cur() tokens.Token {
	return p.lx.Current()
}

func (p *Parser) check(t tokens.Type) bool {
	return p.cur().Type == t
}

func (p *Parser) advance() tokens.Token {
	t := p.cur()
	p.lx.Next()
	return t
}

func (p *Parser) match(t tokens.Type) bool {
	if !p.check(t) {
		return false
	}
	p.advance()
	return true
}

func (p *Parser) expect(t tokens.Type) (tokens.Token, error) {
	cur := p.cur()
	if cur.Type != t {
		return cur, &ParseError{cur.Line, cur.Col, fmt.Sprintf("expected %s, got %s", t, cur.Type)}
	}
	p.advance()
	return cur, nil
}

// parseBlock consumes ':' 's trailing NEWLINE, the following INDENT,
// a sequence of statements, and the closing DEDENT.
func (p *Parser) parseBlock() (ast.Node, error) {
	if _, err := p.expect(tokens.Newline); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokens.Indent); err != nil {
		return nil, err
	}
	var stmts []ast.Node
	for !p.check(tokens.Dedent) && !p.check(tokens.Eof) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.expect(tokens.Dedent); err != nil {
		return nil, err
	}
	return ast.Compound{Statements: stmts}, nil
}

func (p *Parser) parseStatement() (ast.Node, error) {
	switch {
	case p.check(tokens.Class):
		return p.parseClassDef()
	case p.check(tokens.If):
		return p.parseIfElse()
	default:
		return p.parseSimpleStatement()
	}
}

func (p *Parser) parseClassDef() (ast.Node, error) {
	p.advance()
	nameTok, err := p.expect(tokens.Id)
	if err != nil {
		return nil, err
	}
	parent := ""
	if p.match(tokens.LeftParen) {
		parentTok, err := p.expect(tokens.Id)
		if err != nil {
			return nil, err
		}
		parent = parentTok.Text
		if _, err := p.expect(tokens.RightParen); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(tokens.Colon); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokens.Newline); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokens.Indent); err != nil {
		return nil, err
	}
	var methods []ast.MethodDecl
	for !p.check(tokens.Dedent) && !p.check(tokens.Eof) {
		m, err := p.parseMethodDef()
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	if _, err := p.expect(tokens.Dedent); err != nil {
		return nil, err
	}
	return ast.ClassDefinition{Name: nameTok.Text, Parent: parent, Methods: methods}, nil
}

func (p *Parser) parseMethodDef() (ast.MethodDecl, error) {
	if _, err := p.expect(tokens.Def); err != nil {
		return ast.MethodDecl{}, err
	}
	nameTok, err := p.expect(tokens.Id)
	if err != nil {
		return ast.MethodDecl{}, err
	}
	if _, err := p.expect(tokens.LeftParen); err != nil {
		return ast.MethodDecl{}, err
	}
	var params []string
	if !p.check(tokens.RightParen) {
		pTok, err := p.expect(tokens.Id)
		if err != nil {
			return ast.MethodDecl{}, err
		}
		params = append(params, pTok.Text)
		for p.match(tokens.Comma) {
			pTok, err := p.expect(tokens.Id)
			if err != nil {
				return ast.MethodDecl{}, err
			}
			params = append(params, pTok.Text)
		}
	}
	if _, err := p.expect(tokens.RightParen); err != nil {
		return ast.MethodDecl{}, err
	}
	if _, err := p.expect(tokens.Colon); err != nil {
		return ast.MethodDecl{}, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return ast.MethodDecl{}, err
	}
	return ast.MethodDecl{Name: nameTok.Text, Params: params, Body: ast.MethodBody{Body: body}}, nil
}

func (p *Parser) parseIfElse() (ast.Node, error) {
	p.advance()
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokens.Colon); err != nil {
		return nil, err
	}
	thenBlock, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var elseBlock ast.Node
	if p.match(tokens.Else) {
		if _, err := p.expect(tokens.Colon); err != nil {
			return nil, err
		}
		elseBlock, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}
	return ast.IfElse{Cond: cond, Then: thenBlock, Else: elseBlock}, nil
}

func (p *Parser) parseSimpleStatement() (ast.Node, error) {
	var result ast.Node
	switch {
	case p.check(tokens.Print):
		p.advance()
		var args []ast.Node
		if !p.check(tokens.Newline) {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			for p.match(tokens.Comma) {
				arg, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
			}
		}
		result = ast.Print{Args: args}

	case p.check(tokens.Return):
		p.advance()
		var val ast.Node
		if !p.check(tokens.Newline) {
			v, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			val = v
		}
		result = ast.Return{Val: val}

	default:
		left, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.match(tokens.Assign) {
			val, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			switch target := left.(type) {
			case ast.VariableValue:
				result = ast.Assignment{Name: target.Name, Val: val}
			case ast.Get:
				result = ast.FieldAssignment{Receiver: target.Receiver, Field: target.Field, Val: val}
			default:
				cur := p.cur()
				return nil, &ParseError{cur.Line, cur.Col, "invalid assignment target"}
			}
		} else {
			result = left
		}
	}
	if _, err := p.expect(tokens.Newline); err != nil {
		return nil, err
	}
	return result, nil
}

func (p *Parser) parseExpr() (ast.Node, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.Node, error) {
	lhs, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.match(tokens.Or) {
		rhs, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		lhs = ast.Or{Lhs: lhs, Rhs: rhs}
	}
	return lhs, nil
}

func (p *Parser) parseAnd() (ast.Node, error) {
	lhs, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.match(tokens.And) {
		rhs, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		lhs = ast.And{Lhs: lhs, Rhs: rhs}
	}
	return lhs, nil
}

func (p *Parser) parseNot() (ast.Node, error) {
	if p.match(tokens.Not) {
		val, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return ast.Not{Val: val}, nil
	}
	return p.parseComparison()
}

var compareOps = map[tokens.Type]ast.CompareOp{
	tokens.Eq:          ast.CmpEq,
	tokens.NotEq:       ast.CmpNotEq,
	tokens.Less:        ast.CmpLess,
	tokens.LessOrEq:    ast.CmpLessOrEq,
	tokens.Greater:     ast.CmpGreater,
	tokens.GreaterOrEq: ast.CmpGreaterOrEq,
}

func (p *Parser) parseComparison() (ast.Node, error) {
	lhs, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if op, ok := compareOps[p.cur().Type]; ok {
		p.advance()
		rhs, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		return ast.Comparison{Op: op, Lhs: lhs, Rhs: rhs}, nil
	}
	return lhs, nil
}

func (p *Parser) parseTerm() (ast.Node, error) {
	lhs, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.check(tokens.Plus) || p.check(tokens.Minus) {
		isPlus := p.check(tokens.Plus)
		p.advance()
		rhs, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		if isPlus {
			lhs = ast.Add{Lhs: lhs, Rhs: rhs}
		} else {
			lhs = ast.Sub{Lhs: lhs, Rhs: rhs}
		}
	}
	return lhs, nil
}

func (p *Parser) parseFactor() (ast.Node, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.check(tokens.Star) || p.check(tokens.Slash) {
		isMul := p.check(tokens.Star)
		p.advance()
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if isMul {
			lhs = ast.Mult{Lhs: lhs, Rhs: rhs}
		} else {
			lhs = ast.Div{Lhs: lhs, Rhs: rhs}
		}
	}
	return lhs, nil
}

func (p *Parser) parseUnary() (ast.Node, error) {
	if p.match(tokens.Minus) {
		val, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.Sub{Lhs: ast.NumberLiteral{Val: 0}, Rhs: val}, nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.Node, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if id, ok := expr.(ast.VariableValue); ok && p.check(tokens.LeftParen) {
		open := p.cur()
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		if id.Name == "str" {
			if len(args) != 1 {
				return nil, &ParseError{open.Line, open.Col, "str() takes exactly one argument"}
			}
			expr = ast.Stringify{Val: args[0]}
		} else {
			expr = ast.NewInstance{ClassExpr: expr, Args: args}
		}
	}
	for p.match(tokens.Dot) {
		nameTok, err := p.expect(tokens.Id)
		if err != nil {
			return nil, err
		}
		if p.check(tokens.LeftParen) {
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			expr = ast.MethodCall{Receiver: expr, Method: nameTok.Text, Args: args}
		} else {
			expr = ast.Get{Receiver: expr, Field: nameTok.Text}
		}
	}
	return expr, nil
}

// parseArgs consumes the '(' args ')' around a call; the caller has
// already confirmed a LeftParen is current.
func (p *Parser) parseArgs() ([]ast.Node, error) {
	if _, err := p.expect(tokens.LeftParen); err != nil {
		return nil, err
	}
	var args []ast.Node
	if !p.check(tokens.RightParen) {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		for p.match(tokens.Comma) {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
	}
	if _, err := p.expect(tokens.RightParen); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parsePrimary() (ast.Node, error) {
	tok := p.cur()
	switch tok.Type {
	case tokens.Number_:
		p.advance()
		return ast.NumberLiteral{Val: tok.Number}, nil
	case tokens.String:
		p.advance()
		return ast.StringLiteral{Val: tok.Text}, nil
	case tokens.True:
		p.advance()
		return ast.BoolLiteral{Val: true}, nil
	case tokens.False:
		p.advance()
		return ast.BoolLiteral{Val: false}, nil
	case tokens.None:
		p.advance()
		return ast.NoneLiteral{}, nil
	case tokens.Id:
		p.advance()
		return ast.VariableValue{Name: tok.Text}, nil
	case tokens.LeftParen:
		p.advance()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokens.RightParen); err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, &ParseError{tok.Line, tok.Col, fmt.Sprintf("unexpected token %s", tok.Type)}
	}
}
