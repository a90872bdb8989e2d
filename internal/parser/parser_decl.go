package parser

import "github.com/lambdac/lambdac/internal/ast"
import "github.com/lambdac/lambdac/internal/lexer"

// parseCommand parses one top-level command: "name : Type" or a term.
// The two forms share a first token (IDENT), so a declaration is
// distinguished by lookahead for ':'.
func (p *Parser) parseCommand() (ast.Command, error) {
	if p.at(lexer.IDENT) && p.peek().Type == lexer.COLON {
		nameTok := p.advance()
		p.advance() // ':'
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &ast.BindCmd{Pos: p.pos2ast(nameTok), Name: nameTok.Literal, Ty: ty}, nil
	}
	t, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	return &ast.EvalCmd{Pos: t.Position(), Term: t}, nil
}
