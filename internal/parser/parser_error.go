package parser

import "fmt"

// Error is a parse-time failure with source position, distinct from the
// structured Report the rest of the pipeline raises once the message
// reaches the driver.
type Error struct {
	File    string
	Line    int
	Column  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	t := p.cur()
	return &Error{File: t.File, Line: t.Line, Column: t.Column, Message: fmt.Sprintf(format, args...)}
}
