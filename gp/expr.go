package gp

import (
	"fmt"
	"strconv"

	"github.com/scviz/singlecell-plotting/common"
)

// A dedicated parser for kernel expressions over the closed grammar
//
//	expr  := term  { "+" term }
//	term  := unary { "*" unary }
//	unary := "-" unary | power
//	power := atom [ "**" unary ]
//	atom  := number | identifier | "(" expr ")"
//
// "**" binds tightest and is right-associative, "+" and "*" are
// left-associative. Anything else in the source is rejected.

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenNumber
	tokenIdent
	tokenPlus
	tokenMinus
	tokenStar
	tokenPow
	tokenLParen
	tokenRParen
)

type token struct {
	kind  tokenKind
	text  string
	value float64
	at    int
}

type exprNode interface {
	pos() int
}

type literalNode struct {
	value float64
	at    int
}

type identNode struct {
	name string
	at   int
}

type binaryOp int

const (
	opAdd binaryOp = iota
	opMul
	opPow
)

func (op binaryOp) String() string {
	switch op {
	case opAdd:
		return "+"
	case opMul:
		return "*"
	default:
		return "**"
	}
}

type binaryNode struct {
	op          binaryOp
	left, right exprNode
	at          int
}

// unaryNode is negation, the only unary operator in the grammar.
type unaryNode struct {
	operand exprNode
	at      int
}

func (n *literalNode) pos() int { return n.at }
func (n *identNode) pos() int   { return n.at }
func (n *binaryNode) pos() int  { return n.at }
func (n *unaryNode) pos() int   { return n.at }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }

func lex(src string) ([]token, error) {
	var tokens []token
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '+':
			tokens = append(tokens, token{kind: tokenPlus, text: "+", at: i})
			i++
		case c == '-':
			tokens = append(tokens, token{kind: tokenMinus, text: "-", at: i})
			i++
		case c == '*':
			if i+1 < len(src) && src[i+1] == '*' {
				tokens = append(tokens, token{kind: tokenPow, text: "**", at: i})
				i += 2
			} else {
				tokens = append(tokens, token{kind: tokenStar, text: "*", at: i})
				i++
			}
		case c == '(':
			tokens = append(tokens, token{kind: tokenLParen, text: "(", at: i})
			i++
		case c == ')':
			tokens = append(tokens, token{kind: tokenRParen, text: ")", at: i})
			i++
		case isDigit(c) || c == '.':
			start := i
			for i < len(src) && (isDigit(src[i]) || src[i] == '.') {
				i++
			}
			if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
				j := i + 1
				if j < len(src) && (src[j] == '+' || src[j] == '-') {
					j++
				}
				if j < len(src) && isDigit(src[j]) {
					for i = j; i < len(src) && isDigit(src[i]); {
						i++
					}
				}
			}
			text := src[start:i]
			value, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad numeric literal %q at position %v in %q",
					common.ErrorUnsupportedExpression, text, start, src)
			}
			tokens = append(tokens, token{kind: tokenNumber, text: text, value: value, at: start})
		case isIdentStart(c):
			start := i
			for i < len(src) && isIdentPart(src[i]) {
				i++
			}
			tokens = append(tokens, token{kind: tokenIdent, text: src[start:i], at: start})
		default:
			return nil, fmt.Errorf("%w: unexpected character %q at position %v in %q",
				common.ErrorUnsupportedExpression, string(c), i, src)
		}
	}
	tokens = append(tokens, token{kind: tokenEOF, text: "end of expression", at: len(src)})
	return tokens, nil
}

type parser struct {
	src    string
	tokens []token
	i      int
}

func parseExpr(src string) (exprNode, error) {
	tokens, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, tokens: tokens}
	node, err := p.sum()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokenEOF {
		return nil, p.unsupported(tok)
	}
	return node, nil
}

func (p *parser) peek() token { return p.tokens[p.i] }

func (p *parser) next() token {
	tok := p.tokens[p.i]
	if tok.kind != tokenEOF {
		p.i++
	}
	return tok
}

func (p *parser) unsupported(tok token) error {
	return fmt.Errorf("%w: unexpected %q at position %v in %q",
		common.ErrorUnsupportedExpression, tok.text, tok.at, p.src)
}

func (p *parser) sum() (exprNode, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokenPlus {
		tok := p.next()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: opAdd, left: left, right: right, at: tok.at}
	}
	return left, nil
}

func (p *parser) term() (exprNode, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokenStar {
		tok := p.next()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: opMul, left: left, right: right, at: tok.at}
	}
	return left, nil
}

func (p *parser) unary() (exprNode, error) {
	if p.peek().kind == tokenMinus {
		tok := p.next()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &unaryNode{operand: operand, at: tok.at}, nil
	}
	return p.power()
}

func (p *parser) power() (exprNode, error) {
	base, err := p.atom()
	if err != nil {
		return nil, err
	}
	if p.peek().kind == tokenPow {
		tok := p.next()
		// right-associative, and the exponent may carry its own sign
		exponent, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &binaryNode{op: opPow, left: base, right: exponent, at: tok.at}, nil
	}
	return base, nil
}

func (p *parser) atom() (exprNode, error) {
	tok := p.next()
	switch tok.kind {
	case tokenNumber:
		return &literalNode{value: tok.value, at: tok.at}, nil
	case tokenIdent:
		return &identNode{name: tok.text, at: tok.at}, nil
	case tokenLParen:
		node, err := p.sum()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokenRParen {
			return nil, p.unsupported(closing)
		}
		return node, nil
	default:
		return nil, p.unsupported(tok)
	}
}
