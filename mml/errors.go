package mml

import "fmt"

// ParseError is the error type for everything wrong with an MML score, from
// unknown characters to out-of-range values. It carries the 1-based
// position of the offending input so the user can find it.
type ParseError struct {
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %v, column %v: %v", e.Line, e.Column, e.Message)
}

func errorAt(line, column int, format string, args ...interface{}) error {
	return &ParseError{Line: line, Column: column, Message: fmt.Sprintf(format, args...)}
}
