package parser

import (
	"unicode"

	"github.com/lambdac/lambdac/internal/ast"
	"github.com/lambdac/lambdac/internal/lexer"
)

// parseTerm parses a full term: either one of the "extends as far right
// as possible" forms (if/lambda/let) or an application chain.
func (p *Parser) parseTerm() (ast.Term, error) {
	switch p.cur().Type {
	case lexer.IF:
		return p.parseIf()
	case lexer.LAMBDA:
		return p.parseLambda()
	case lexer.LET:
		return p.parseLet()
	default:
		return p.parseAppTerm()
	}
}

func (p *Parser) parseIf() (ast.Term, error) {
	tok := p.advance() // 'if'
	cond, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.THEN); err != nil {
		return nil, err
	}
	then, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.ELSE); err != nil {
		return nil, err
	}
	els, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	return &ast.If{Pos: p.pos2ast(tok), Cond: cond, Then: then, Else: els}, nil
}

// parseLambda distinguishes term abstraction ("lambda x[:T]. e") from
// System F type abstraction ("lambda X. e") by the convention that a
// capitalized, unannotated binder is a type variable.
func (p *Parser) parseLambda() (ast.Term, error) {
	tok := p.advance() // 'lambda'
	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}

	if p.at(lexer.COLON) {
		p.advance()
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.DOT); err != nil {
			return nil, err
		}
		body, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		return &ast.Abs{Pos: p.pos2ast(tok), Name: nameTok.Literal, Ty: ty, Body: body}, nil
	}

	if _, err := p.expect(lexer.DOT); err != nil {
		return nil, err
	}
	body, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if isUpper(nameTok.Literal) {
		return &ast.TypeAbs{Pos: p.pos2ast(tok), Name: nameTok.Literal, Body: body}, nil
	}
	return &ast.Abs{Pos: p.pos2ast(tok), Name: nameTok.Literal, Ty: nil, Body: body}, nil
}

func isUpper(s string) bool {
	if s == "" {
		return false
	}
	r := []rune(s)[0]
	return unicode.IsUpper(r)
}

// parseLet parses "let x = e1 in e2" or the existential-unpack form
// "let {X,x} = e1 in e2".
func (p *Parser) parseLet() (ast.Term, error) {
	tok := p.advance() // 'let'
	if p.at(lexer.LBRACE) {
		return p.parseUnpack(tok)
	}
	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.ASSIGN); err != nil {
		return nil, err
	}
	init, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.IN); err != nil {
		return nil, err
	}
	body, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	return &ast.Let{Pos: p.pos2ast(tok), Name: nameTok.Literal, Init: init, Body: body}, nil
}

func (p *Parser) parseUnpack(letTok lexer.Token) (ast.Term, error) {
	p.advance() // '{'
	tyNameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.COMMA); err != nil {
		return nil, err
	}
	varNameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.ASSIGN); err != nil {
		return nil, err
	}
	init, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.IN); err != nil {
		return nil, err
	}
	body, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	return &ast.Unpack{
		Pos:     p.pos2ast(letTok),
		TyName:  tyNameTok.Literal,
		VarName: varNameTok.Literal,
		Init:    init,
		Body:    body,
	}, nil
}

// parseAppTerm parses a left-associative chain of juxtaposed path
// terms: "f x y" reads as App(App(f, x), y).
func (p *Parser) parseAppTerm() (ast.Term, error) {
	t, err := p.parsePathTerm()
	if err != nil {
		return nil, err
	}
	for startsATerm(p.cur().Type) {
		arg, err := p.parsePathTerm()
		if err != nil {
			return nil, err
		}
		t = &ast.App{Pos: t.Position(), Fn: t, Arg: arg}
	}
	return t, nil
}

func startsATerm(tt lexer.TokenType) bool {
	switch tt {
	case lexer.IDENT, lexer.INT, lexer.TRUE, lexer.FALSE,
		lexer.SUCC, lexer.PRED, lexer.ISZERO, lexer.LPAREN, lexer.LBRACE:
		return true
	default:
		return false
	}
}

// parsePathTerm parses an atomic term followed by any chain of postfix
// projections (".l") and type applications ("[T]").
func (p *Parser) parsePathTerm() (ast.Term, error) {
	t, err := p.parseATerm()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().Type {
		case lexer.DOT:
			p.advance()
			labelTok, err := p.expect(lexer.IDENT)
			if err != nil {
				return nil, err
			}
			t = &ast.Proj{Pos: t.Position(), Rec: t, Label: labelTok.Literal}
		case lexer.LBRACKET:
			p.advance()
			ty, err := p.parseType()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.RBRACKET); err != nil {
				return nil, err
			}
			t = &ast.TypeApp{Pos: t.Position(), Term: t, Ty: ty}
		default:
			return t, nil
		}
	}
}

func (p *Parser) parseATerm() (ast.Term, error) {
	tok := p.cur()
	switch tok.Type {
	case lexer.TRUE:
		p.advance()
		return &ast.True{Pos: p.pos2ast(tok)}, nil
	case lexer.FALSE:
		p.advance()
		return &ast.False{Pos: p.pos2ast(tok)}, nil
	case lexer.INT:
		p.advance()
		n, err := parseDecimal(tok.Literal)
		if err != nil {
			return nil, p.errorf("invalid numeral %q", tok.Literal)
		}
		return &ast.IntLit{Pos: p.pos2ast(tok), Value: n}, nil
	case lexer.IDENT:
		p.advance()
		return &ast.Var{Pos: p.pos2ast(tok), Name: tok.Literal}, nil
	case lexer.SUCC:
		p.advance()
		arg, err := p.parsePathTerm()
		if err != nil {
			return nil, err
		}
		return &ast.Succ{Pos: p.pos2ast(tok), Arg: arg}, nil
	case lexer.PRED:
		p.advance()
		arg, err := p.parsePathTerm()
		if err != nil {
			return nil, err
		}
		return &ast.Pred{Pos: p.pos2ast(tok), Arg: arg}, nil
	case lexer.ISZERO:
		p.advance()
		arg, err := p.parsePathTerm()
		if err != nil {
			return nil, err
		}
		return &ast.IsZero{Pos: p.pos2ast(tok), Arg: arg}, nil
	case lexer.LPAREN:
		return p.parseParenTerm()
	case lexer.LBRACE:
		return p.parseBraceTerm()
	default:
		return nil, p.errorf("unexpected token %s %q", tok.Type, tok.Literal)
	}
}

func parseDecimal(s string) (int, error) {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, &Error{Message: "not a decimal digit"}
		}
		n = n*10 + int(r-'0')
	}
	return n, nil
}

// parseParenTerm parses "(e)" or a tuple literal "(e1, e2, ...)".
func (p *Parser) parseParenTerm() (ast.Term, error) {
	open := p.advance() // '('
	first, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if p.at(lexer.COMMA) {
		fields := []ast.Term{first}
		for p.at(lexer.COMMA) {
			p.advance()
			next, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			fields = append(fields, next)
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return &ast.TupleLit{Pos: p.pos2ast(open), Fields: fields}, nil
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return first, nil
}

// parseBraceTerm parses a record literal "{l1=e1, ...}" or an
// existential package "{*HiddenTy, Body} as AsTy".
func (p *Parser) parseBraceTerm() (ast.Term, error) {
	open := p.advance() // '{'
	if p.at(lexer.STAR) {
		p.advance()
		hidden, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.COMMA); err != nil {
			return nil, err
		}
		body, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RBRACE); err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.AS); err != nil {
			return nil, err
		}
		asTy, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &ast.Pack{Pos: p.pos2ast(open), HiddenTy: hidden, Body: body, AsTy: asTy}, nil
	}

	var fields []ast.RecordField
	for !p.at(lexer.RBRACE) {
		labelTok, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.ASSIGN); err != nil {
			return nil, err
		}
		val, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.RecordField{Label: labelTok.Literal, Value: val})
		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return &ast.RecordLit{Pos: p.pos2ast(open), Fields: fields}, nil
}
