package marionette

import (
	"errors"
	"fmt"
)

// ErrUnknownParam is matched by errors.Is for every *UnknownParamError.
var ErrUnknownParam = errors.New("marionette: unknown parameter")

// ErrInvalidParam wraps every error returned by [Param.Validate].
var ErrInvalidParam = errors.New("marionette: invalid parameter")

// UnknownParamError reports a parameter name the puppet does not define.
type UnknownParamError struct {
	Name string
}

func (e *UnknownParamError) Error() string {
	return fmt.Sprintf("marionette: unknown parameter %q", e.Name)
}

func (e *UnknownParamError) Unwrap() error {
	return ErrUnknownParam
}

func invalidParam(p *Param, format string, args ...any) error {
	return fmt.Errorf("%w %q: %s", ErrInvalidParam, p.Name, fmt.Sprintf(format, args...))
}
