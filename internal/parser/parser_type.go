package parser

import (
	"github.com/lambdac/lambdac/internal/ast"
	"github.com/lambdac/lambdac/internal/lexer"
)

// parseType parses an arrow type, right-associative: T1 -> T2 -> T3
// reads as T1 -> (T2 -> T3).
func (p *Parser) parseType() (ast.Ty, error) {
	lhs, err := p.parseAtomicType()
	if err != nil {
		return nil, err
	}
	if p.at(lexer.ARROW) {
		arrowTok := p.advance()
		rhs, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &ast.ArrowTy{Pos: p.pos2ast(arrowTok), T1: lhs, T2: rhs}, nil
	}
	return lhs, nil
}

func (p *Parser) parseAtomicType() (ast.Ty, error) {
	tok := p.cur()
	switch tok.Type {
	case lexer.BOOL:
		p.advance()
		return &ast.BoolTy{Pos: p.pos2ast(tok)}, nil
	case lexer.NAT:
		p.advance()
		return &ast.NatTy{Pos: p.pos2ast(tok)}, nil
	case lexer.TOP:
		p.advance()
		return &ast.TopTy{Pos: p.pos2ast(tok)}, nil
	case lexer.BOT:
		p.advance()
		return &ast.BotTy{Pos: p.pos2ast(tok)}, nil
	case lexer.IDENT:
		p.advance()
		return &ast.IdentTy{Pos: p.pos2ast(tok), Name: tok.Literal}, nil
	case lexer.ALL:
		p.advance()
		nameTok, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.DOT); err != nil {
			return nil, err
		}
		body, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &ast.UnivTy{Pos: p.pos2ast(tok), Name: nameTok.Literal, Body: body}, nil
	case lexer.SOME:
		p.advance()
		nameTok, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.DOT); err != nil {
			return nil, err
		}
		body, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &ast.ExisTy{Pos: p.pos2ast(tok), Name: nameTok.Literal, Body: body}, nil
	case lexer.LBRACE:
		return p.parseRecordType()
	case lexer.LPAREN:
		return p.parseParenType()
	default:
		return nil, p.errorf("expected a type, got %s %q", tok.Type, tok.Literal)
	}
}

func (p *Parser) parseRecordType() (ast.Ty, error) {
	open := p.advance() // '{'
	var fields []ast.TyField
	for !p.at(lexer.RBRACE) {
		labelTok, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.COLON); err != nil {
			return nil, err
		}
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.TyField{Label: labelTok.Literal, Ty: ty})
		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return &ast.RecordTy{Pos: p.pos2ast(open), Fields: fields}, nil
}

// parseParenType parses "(T)" (a parenthesized type) or "(T1, T2, ...)"
// (a tuple type).
func (p *Parser) parseParenType() (ast.Ty, error) {
	open := p.advance() // '('
	first, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.at(lexer.COMMA) {
		elems := []ast.Ty{first}
		for p.at(lexer.COMMA) {
			p.advance()
			next, err := p.parseType()
			if err != nil {
				return nil, err
			}
			elems = append(elems, next)
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return &ast.TupleTy{Pos: p.pos2ast(open), Elements: elems}, nil
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return first, nil
}
