package mapper

import (
	"errors"
	"fmt"
)

// SyntaxError reports input that is not well-formed JSON.
type SyntaxError struct {
	Offset int64
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Offset, e.Msg)
}

// SchemaError reports well-formed input that does not match the target
// type. Path uses dotted wire names with [i] indexes, e.g.
// data.flightOffers[0].segments[1].legs[0].totalTime.
type SchemaError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *SchemaError) Error() string {
	path := e.Path
	if path == "" {
		path = "(root)"
	}
	return fmt.Sprintf("schema error at %s: expected %s, got %s", path, e.Expected, e.Actual)
}

func IsSyntax(err error) bool {
	var target *SyntaxError
	return errors.As(err, &target)
}

func IsSchema(err error) bool {
	var target *SchemaError
	return errors.As(err, &target)
}
