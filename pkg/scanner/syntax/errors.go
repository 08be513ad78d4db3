package syntax

import (
	"errors"
	"fmt"
)

var errMissingGroup = errors.New("missing named group \"" + PatternGroup + "\"")

// PatternError reports a pattern that failed to compile
type PatternError struct {
	Index  int
	Source string
	Err    error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("syntax: pattern %d %q: %v", e.Index, e.Source, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}
