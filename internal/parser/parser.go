// Package parser turns a lambdac token stream into the concrete syntax
// of package ast. Parsing itself carries no typing or scoping
// invariants; it exists to drive the pipeline end to end from source
// text.
package parser

import (
	"github.com/lambdac/lambdac/internal/ast"
	"github.com/lambdac/lambdac/internal/lexer"
)

// Parser is a simple recursive-descent parser over a fully tokenized
// input, looking at most one token past the current one, with no
// parser-generator dependency.
type Parser struct {
	toks []lexer.Token
	pos  int
	file string
}

// New normalizes src (see lexer.Normalize), tokenizes it, and returns a
// Parser over the resulting tokens.
func New(src, filename string) *Parser {
	l := lexer.New(string(lexer.Normalize([]byte(src))), filename)
	return &Parser{toks: l.AllTokens(), file: filename}
}

func (p *Parser) cur() lexer.Token  { return p.toks[p.pos] }
func (p *Parser) peek() lexer.Token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) advance() lexer.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) at(tt lexer.TokenType) bool { return p.cur().Type == tt }

func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, error) {
	if !p.at(tt) {
		return lexer.Token{}, p.errorf("expected %s, got %s %q", tt, p.cur().Type, p.cur().Literal)
	}
	return p.advance(), nil
}

func (p *Parser) pos2ast(t lexer.Token) ast.Pos {
	return ast.Pos{File: t.File, Line: t.Line, Column: t.Column}
}

// ParseProgram parses a full ';'-terminated command sequence.
func ParseProgram(src, filename string) ([]ast.Command, error) {
	p := New(src, filename)
	var cmds []ast.Command
	for !p.at(lexer.EOF) {
		cmd, err := p.parseCommand()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.SEMI); err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}
