package parse

import "mage/internal/syntax"

// Parse turns source text into a syntax.Tree over lang's node-kind
// vocabulary. It supports the textual surface the worked scenarios in
// SPEC_FULL.md §8 exercise: semicolon-separated statements, assignment
// (":"), the usual arithmetic/comparison/logical operators, unary minus,
// "."-chained member access, single-argument call syntax, and "[...]"
// bracket grouping for precedence. Member/Call trees flatten cleanly but
// remain CompileErrors at code-gen time, unchanged from SPEC_FULL.md §4.3.
func Parse(lang *syntax.Language, src []byte) (syntax.Tree, error) {
	toks, err := newScanner(src).scanAll()
	if err != nil {
		return nil, err
	}
	p := &parser{lang: lang, src: src, toks: toks}

	var children []syntax.Node
	for !p.check(tokEOF) {
		expr, err := p.assign()
		if err != nil {
			return nil, err
		}
		children = append(children, expr)

		if p.check(tokSemicolon) {
			p.advance()
			continue
		}
		if !p.check(tokEOF) {
			return nil, p.errHere("expected ';' between statements")
		}
	}

	root := &node{kind: lang.SourceFile, start: 0, end: len(src), children: children}
	return &tree{root: root}, nil
}

type parser struct {
	lang *syntax.Language
	src  []byte
	toks []token
	pos  int
}

func (p *parser) cur() token             { return p.toks[p.pos] }
func (p *parser) check(t tokenType) bool { return p.cur().typ == t }

func (p *parser) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) errHere(format string, args ...any) error {
	t := p.cur()
	return errAt(t.start, t.end, format, args...)
}

// assign is the lowest-precedence level: IDENT ":" assign, right-
// associative. A bare logical expression with no ":" falls through
// unchanged (scenario 6's top-level expressions need not all be
// assignments).
func (p *parser) assign() (syntax.Node, error) {
	left, err := p.logical()
	if err != nil {
		return nil, err
	}
	if !p.check(tokColon) {
		return left, nil
	}
	if left.Kind() != p.lang.Identifier {
		return nil, errAt(left.StartByte(), left.EndByte(), "left-hand side of ':' must be an identifier")
	}
	colon := p.advance()
	right, err := p.assign()
	if err != nil {
		return nil, err
	}
	opLeaf := &node{kind: p.lang.Constant, start: colon.start, end: colon.end}
	return &node{
		kind:     p.lang.Assign,
		start:    left.StartByte(),
		end:      right.EndByte(),
		children: []syntax.Node{left, opLeaf, right},
	}, nil
}

func (p *parser) logical() (syntax.Node, error) {
	left, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for {
		var opKind syntax.Kind
		switch p.cur().typ {
		case tokAndAnd:
			opKind = p.lang.And
		case tokOrOr:
			opKind = p.lang.Or
		default:
			return left, nil
		}
		tok := p.advance()
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		left = &node{
			kind:  p.lang.Logical,
			start: left.StartByte(), end: right.EndByte(),
			children: []syntax.Node{left, &node{kind: opKind, start: tok.start, end: tok.end}, right},
		}
	}
}

func (p *parser) comparison() (syntax.Node, error) {
	left, err := p.additive()
	if err != nil {
		return nil, err
	}
	for {
		var opKind syntax.Kind
		switch p.cur().typ {
		case tokEqEq:
			opKind = p.lang.Equal
		case tokNotEq:
			opKind = p.lang.NotEqual
		case tokLess:
			opKind = p.lang.LessThan
		case tokGreater:
			opKind = p.lang.GreaterThan
		case tokLessEq:
			opKind = p.lang.LessEqual
		case tokGreaterEq:
			opKind = p.lang.GreaterEqual
		default:
			return left, nil
		}
		tok := p.advance()
		right, err := p.additive()
		if err != nil {
			return nil, err
		}
		left = &node{
			kind:  p.lang.Comparison,
			start: left.StartByte(), end: right.EndByte(),
			children: []syntax.Node{left, &node{kind: opKind, start: tok.start, end: tok.end}, right},
		}
	}
}

func (p *parser) additive() (syntax.Node, error) {
	left, err := p.multiplicative()
	if err != nil {
		return nil, err
	}
	for {
		var opKind syntax.Kind
		switch p.cur().typ {
		case tokPlus:
			opKind = p.lang.Add
		case tokMinus:
			opKind = p.lang.Subtract
		default:
			return left, nil
		}
		tok := p.advance()
		right, err := p.multiplicative()
		if err != nil {
			return nil, err
		}
		left = &node{
			kind:  p.lang.Additive,
			start: left.StartByte(), end: right.EndByte(),
			children: []syntax.Node{left, &node{kind: opKind, start: tok.start, end: tok.end}, right},
		}
	}
}

func (p *parser) multiplicative() (syntax.Node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		var opKind syntax.Kind
		switch p.cur().typ {
		case tokStar:
			opKind = p.lang.Multiply
		case tokSlash:
			opKind = p.lang.Divide
		case tokPercent:
			opKind = p.lang.Modulo
		default:
			return left, nil
		}
		tok := p.advance()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = &node{
			kind:  p.lang.Multiplicative,
			start: left.StartByte(), end: right.EndByte(),
			children: []syntax.Node{left, &node{kind: opKind, start: tok.start, end: tok.end}, right},
		}
	}
}

// unary handles the one prefix form the scenarios name: "- expr", encoded
// per SPEC_FULL.md §8 scenario 4 as an Additive binary with one absent —
// the operator leaf arrives before any operand, so the binary builder
// files it straight into two (SPEC_FULL.md §4.2's send/take policy).
func (p *parser) unary() (syntax.Node, error) {
	if p.check(tokMinus) {
		tok := p.advance()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &node{
			kind:  p.lang.Additive,
			start: tok.start, end: operand.EndByte(),
			children: []syntax.Node{
				&node{kind: p.lang.Subtract, start: tok.start, end: tok.end},
				operand,
			},
		}, nil
	}
	return p.postfix()
}

// postfix handles "." member access and "(...)" single-argument call
// chains, per SPEC_FULL.md §8 scenario 5 ("a.b(c)" is a Call whose one is
// a Member).
func (p *parser) postfix() (syntax.Node, error) {
	left, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.check(tokDot):
			dot := p.advance()
			if !p.check(tokIdent) {
				return nil, p.errHere("expected identifier after '.'")
			}
			name := p.advance()
			member := &node{kind: p.lang.Identifier, start: name.start, end: name.end}
			left = &node{
				kind:  p.lang.Member,
				start: left.StartByte(), end: name.end,
				children: []syntax.Node{left, &node{kind: p.lang.Extract, start: dot.start, end: dot.end}, member},
			}
		case p.check(tokLParen):
			lparen := p.advance()
			arg, err := p.assign()
			if err != nil {
				return nil, err
			}
			if !p.check(tokRParen) {
				return nil, p.errHere("expected ')' to close call")
			}
			rparen := p.advance()
			left = &node{
				kind:  p.lang.Call,
				start: left.StartByte(), end: rparen.end,
				children: []syntax.Node{left, &node{kind: p.lang.Pipe, start: lparen.start, end: lparen.end}, arg},
			}
		default:
			return left, nil
		}
	}
}

func (p *parser) primary() (syntax.Node, error) {
	t := p.cur()
	switch t.typ {
	case tokNumber:
		p.advance()
		return &node{kind: numberKind(p.lang, p.src[t.start:t.end]), start: t.start, end: t.end}, nil
	case tokString:
		p.advance()
		return &node{kind: stringKind(p.lang, p.src[t.start:t.end]), start: t.start, end: t.end}, nil
	case tokIdent:
		p.advance()
		return &node{kind: p.lang.Identifier, start: t.start, end: t.end}, nil
	case tokLBracket:
		p.advance()
		inner, err := p.assign()
		if err != nil {
			return nil, err
		}
		if !p.check(tokRBracket) {
			return nil, p.errHere("expected ']' to close bracketed expression")
		}
		closeBracket := p.advance()
		return &node{
			kind:     p.lang.Paren,
			start:    t.start, end: closeBracket.end,
			children: []syntax.Node{inner},
		}, nil
	default:
		return nil, p.errHere("expected an expression")
	}
}

// numberKind picks among the four number-literal kinds by the radix
// prefix letter (SPEC_FULL.md §4.3's decoding rule: 0b/0o/0d/0x,
// case-insensitive, or a bare "0"). Any other shape is passed through as
// decimal and left for code generation to reject, matching the "any other
// number token is a hard error" rule being a compile-time concern, not a
// parse-time one.
func numberKind(lang *syntax.Language, text []byte) syntax.Kind {
	if len(text) >= 2 && text[0] == '0' {
		switch text[1] {
		case 'b', 'B':
			return lang.BinaryNumber
		case 'o', 'O':
			return lang.OctalNumber
		case 'd', 'D':
			return lang.DecimalNumber
		case 'x', 'X':
			return lang.HexNumber
		}
	}
	return lang.DecimalNumber
}

func stringKind(lang *syntax.Language, text []byte) syntax.Kind {
	if len(text) > 0 && text[0] == '\'' {
		return lang.SingleQuoted
	}
	return lang.DoubleQuoted
}
