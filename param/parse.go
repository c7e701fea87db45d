package param

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var errSyntax = errors.New("param: invalid expression")

// Parse evaluates text as an arithmetic expression and returns alt when it
// is not one. Supported are decimal numbers, + - * / ^, unary signs and
// parentheses.
func Parse(text string, alt float64) float64 {
	v, err := Eval(text)
	if err != nil {
		return alt
	}
	return v
}

// Eval evaluates an arithmetic expression.
func Eval(text string) (float64, error) {
	p := parser{src: strings.TrimSpace(text)}
	if p.src == "" {
		return 0, errSyntax
	}
	v, err := p.expr()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return 0, errSyntax
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errSyntax
	}
	return v, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

// expr = term { ("+" | "-") term }
func (p *parser) expr() (float64, error) {
	v, err := p.term()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '+':
			p.pos++
			r, err := p.term()
			if err != nil {
				return 0, err
			}
			v += r
		case '-':
			p.pos++
			r, err := p.term()
			if err != nil {
				return 0, err
			}
			v -= r
		default:
			return v, nil
		}
	}
}

// term = power { ("*" | "/") power }
func (p *parser) term() (float64, error) {
	v, err := p.power()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '*':
			p.pos++
			r, err := p.power()
			if err != nil {
				return 0, err
			}
			v *= r
		case '/':
			p.pos++
			r, err := p.power()
			if err != nil {
				return 0, err
			}
			if r == 0 {
				return 0, errSyntax
			}
			v /= r
		default:
			return v, nil
		}
	}
}

// power = unary [ "^" power ]
func (p *parser) power() (float64, error) {
	v, err := p.unary()
	if err != nil {
		return 0, err
	}
	if p.peek() == '^' {
		p.pos++
		e, err := p.power()
		if err != nil {
			return 0, err
		}
		v = math.Pow(v, e)
	}
	return v, nil
}

// unary = ("-" | "+") unary | primary
func (p *parser) unary() (float64, error) {
	switch p.peek() {
	case '-':
		p.pos++
		v, err := p.unary()
		return -v, err
	case '+':
		p.pos++
		return p.unary()
	}
	return p.primary()
}

// primary = number | "(" expr ")"
func (p *parser) primary() (float64, error) {
	if p.peek() == '(' {
		p.pos++
		v, err := p.expr()
		if err != nil {
			return 0, err
		}
		if p.peek() != ')' {
			return 0, errSyntax
		}
		p.pos++
		return v, nil
	}

	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if (c >= '0' && c <= '9') || c == '.' {
			p.pos++
			continue
		}
		break
	}
	if start == p.pos {
		return 0, errSyntax
	}
	v, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return 0, errSyntax
	}
	return v, nil
}
