package lower

import (
	"errors"
	"fmt"

	"portast/internal/diag"
	"portast/internal/source"
)

// FatalError aborts the lowering of the current item. It travels up as an
// ordinary error and is turned into a diagnostic at the item boundary.
type FatalError struct {
	Span source.Span
	Code diag.Code
	Msg  string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Span, e.Code.ID(), e.Msg)
}

// AsFatal unwraps err to a *FatalError if it carries one.
func AsFatal(err error) (*FatalError, bool) {
	var fe *FatalError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// fatalf builds a FatalError located at the node being lowered.
func (l *lowerer) fatalf(code diag.Code, format string, args ...any) error {
	return &FatalError{Span: l.at, Code: code, Msg: fmt.Sprintf(format, args...)}
}

// hostErr wraps a failed host query.
func (l *lowerer) hostErr(what string, err error) error {
	return &FatalError{Span: l.at, Code: diag.ExpFatalHostQuery, Msg: fmt.Sprintf("%s: %v", what, err)}
}
