package errors

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

type ExitCodeError struct {
	code ExitCode
	error
}

func NewError(err error, exitCode ExitCode) *ExitCodeError {
	if err == nil {
		return nil
	}
	return &ExitCodeError{exitCode, err}
}

func Errorf(exitCode ExitCode, format string, args ...interface{}) *ExitCodeError {
	return &ExitCodeError{exitCode, fmt.Errorf(format, args...)}
}

func (e *ExitCodeError) GetExitCode() ExitCode {
	if e == nil {
		return 0
	}
	return e.code
}

// ExitCodeOf returns the code carried by err or its cause, or fallback when
// neither carries one. A nil error maps to 0.
func ExitCodeOf(err error, fallback ExitCode) ExitCode {
	if err == nil {
		return 0
	}
	if e, ok := pkgerrors.Cause(err).(*ExitCodeError); ok {
		return e.GetExitCode()
	}
	return fallback
}
