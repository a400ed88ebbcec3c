package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/smohebbi/daisy-go/ast"
	"github.com/smohebbi/daisy-go/interval"
	"github.com/smohebbi/daisy-go/rational"
)

// parseExprSpec turns a single --expr string and a JSON preconditions file
// into one FunctionSpec's Expr and InputRanges. It is a toy stand-in for
// the out-of-scope Frontend/SpecsProcessor: enough infix arithmetic
// (+ - * / ^ sqrt(), parentheses, identifiers, decimal literals) to drive
// the analyzer from the command line without a real source language.
func parseExprSpec(exprSrc, preconditionsPath string) (ast.Expr, map[*ast.Ident]interval.Interval, error) {
	preconditions, err := readPreconditions(preconditionsPath)
	if err != nil {
		return nil, nil, err
	}

	idents := make(map[string]*ast.Ident, len(preconditions))
	inputRanges := make(map[*ast.Ident]interval.Interval, len(preconditions))
	for name, rng := range preconditions {
		id := ast.NewIdent(name)
		idents[name] = id
		inputRanges[id] = rng
	}

	p := &exprParser{toks: tokenize(exprSrc), idents: idents}
	e, err := p.parseExpr()
	if err != nil {
		return nil, nil, err
	}
	if !p.atEnd() {
		return nil, nil, fmt.Errorf("unexpected trailing input at %q", p.rest())
	}
	return e, inputRanges, nil
}

// readPreconditions parses a JSON object mapping variable names to
// [lo, hi] pairs, e.g. {"x": [-1.5, 1.5], "y": [0, 10]}.
func readPreconditions(path string) (map[string]interval.Interval, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading preconditions: %w", err)
	}
	var raw map[string][2]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing preconditions %s: %w", path, err)
	}
	out := make(map[string]interval.Interval, len(raw))
	for name, bounds := range raw {
		out[name] = interval.New(rational.FromFloat64(bounds[0]), rational.FromFloat64(bounds[1]))
	}
	return out, nil
}

// tokenKind enumerates the flat token set the toy tokenizer produces.
type tokenKind int

const (
	tokNumber tokenKind = iota
	tokIdent
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
}

// tokenize splits src into numbers, identifiers, parens, and the five
// operator characters, skipping whitespace. It is deliberately forgiving
// about number syntax: a number is any run of digits and dots, optionally
// followed by 'e' or 'E', one optional sign and a run of digits, with
// validation left to rational.FromString.
func tokenize(src string) []token {
	var toks []token
	runes := []rune(src)
	for i := 0; i < len(runes); {
		c := runes[i]
		switch {
		case unicode.IsSpace(c):
			i++
		case c == '(':
			toks = append(toks, token{tokLParen, "("})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")"})
			i++
		case strings.ContainsRune("+-*/^", c):
			toks = append(toks, token{tokOp, string(c)})
			i++
		case unicode.IsDigit(c) || c == '.':
			j := i
			for j < len(runes) && (unicode.IsDigit(runes[j]) || runes[j] == '.') {
				j++
			}
			if j < len(runes) && (runes[j] == 'e' || runes[j] == 'E') {
				j++
				if j < len(runes) && (runes[j] == '+' || runes[j] == '-') {
					j++
				}
				for j < len(runes) && unicode.IsDigit(runes[j]) {
					j++
				}
			}
			toks = append(toks, token{tokNumber, string(runes[i:j])})
			i = j
		case unicode.IsLetter(c) || c == '_':
			j := i
			for j < len(runes) && (unicode.IsLetter(runes[j]) || unicode.IsDigit(runes[j]) || runes[j] == '_') {
				j++
			}
			toks = append(toks, token{tokIdent, string(runes[i:j])})
			i = j
		default:
			i++
		}
	}
	return toks
}

// exprParser is a small precedence-climbing parser:
//
//	expr  := term (('+'|'-') term)*
//	term  := pow (('*'|'/') pow)*
//	pow   := unary ('^' INT)?
//	unary := '-' unary | primary
//	primary := NUMBER | IDENT | 'sqrt' '(' expr ')' | '(' expr ')'
type exprParser struct {
	toks   []token
	pos    int
	idents map[string]*ast.Ident
}

func (p *exprParser) atEnd() bool { return p.pos >= len(p.toks) }

func (p *exprParser) rest() string {
	var parts []string
	for _, t := range p.toks[p.pos:] {
		parts = append(parts, t.text)
	}
	return strings.Join(parts, " ")
}

func (p *exprParser) peek() (token, bool) {
	if p.atEnd() {
		return token{}, false
	}
	return p.toks[p.pos], true
}

func (p *exprParser) parseExpr() (ast.Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != tokOp || (t.text != "+" && t.text != "-") {
			return left, nil
		}
		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if t.text == "+" {
			left = ast.NewBinOp(ast.OpPlus, left, right)
		} else {
			left = ast.NewBinOp(ast.OpMinus, left, right)
		}
	}
}

func (p *exprParser) parseTerm() (ast.Expr, error) {
	left, err := p.parsePow()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != tokOp || (t.text != "*" && t.text != "/") {
			return left, nil
		}
		p.pos++
		right, err := p.parsePow()
		if err != nil {
			return nil, err
		}
		if t.text == "*" {
			left = ast.NewBinOp(ast.OpTimes, left, right)
		} else {
			left = ast.NewBinOp(ast.OpDivide, left, right)
		}
	}
}

func (p *exprParser) parsePow() (ast.Expr, error) {
	base, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	t, ok := p.peek()
	if !ok || t.kind != tokOp || t.text != "^" {
		return base, nil
	}
	p.pos++
	exp, ok := p.peek()
	if !ok || exp.kind != tokNumber {
		return nil, fmt.Errorf("expected integer exponent after '^', got %q", p.rest())
	}
	p.pos++
	n, err := parseIntExponent(exp.text)
	if err != nil {
		return nil, err
	}
	return ast.NewPow(base, n), nil
}

func (p *exprParser) parseUnary() (ast.Expr, error) {
	t, ok := p.peek()
	if ok && t.kind == tokOp && t.text == "-" {
		p.pos++
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewUMinus(x), nil
	}
	return p.parsePrimary()
}

func (p *exprParser) parsePrimary() (ast.Expr, error) {
	t, ok := p.peek()
	if !ok {
		return nil, fmt.Errorf("unexpected end of expression")
	}
	switch t.kind {
	case tokNumber:
		p.pos++
		v, err := rational.FromString(t.text)
		if err != nil {
			return nil, err
		}
		return ast.NewLit(v), nil

	case tokIdent:
		p.pos++
		if t.text == "sqrt" {
			if err := p.expectLParen(); err != nil {
				return nil, err
			}
			x, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expectRParen(); err != nil {
				return nil, err
			}
			return ast.NewSqrt(x), nil
		}
		id, ok := p.idents[t.text]
		if !ok {
			return nil, fmt.Errorf("%q has no precondition entry", t.text)
		}
		return ast.NewVar(id), nil

	case tokLParen:
		p.pos++
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectRParen(); err != nil {
			return nil, err
		}
		return e, nil

	default:
		return nil, fmt.Errorf("unexpected token %q", t.text)
	}
}

func (p *exprParser) expectLParen() error {
	t, ok := p.peek()
	if !ok || t.kind != tokLParen {
		return fmt.Errorf("expected '(' at %q", p.rest())
	}
	p.pos++
	return nil
}

func (p *exprParser) expectRParen() error {
	t, ok := p.peek()
	if !ok || t.kind != tokRParen {
		return fmt.Errorf("expected ')' at %q", p.rest())
	}
	p.pos++
	return nil
}

func parseIntExponent(s string) (int, error) {
	n := 0
	for _, c := range s {
		if !unicode.IsDigit(c) {
			return 0, fmt.Errorf("exponent %q must be a non-negative integer", s)
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}
