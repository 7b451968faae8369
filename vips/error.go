package vips

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds returned by Call. Test with errors.Is.
var (
	ErrUnknownOperation = errors.New("unknown operation")
	ErrArityMismatch    = errors.New("wrong number of arguments")
	ErrUnknownOption    = errors.New("unknown option")
	ErrBind             = errors.New("unable to set argument")
	ErrBuild            = errors.New("unable to build operation")
	ErrUnknownEnumValue = errors.New("unknown enum value")
)

// Error describes a failed call. Detail holds the libvips error buffer text
// when libvips reported one.
type Error struct {
	Kind      error
	Operation string
	Argument  string
	Detail    string
}

func newError(kind error, operation, argument, detail string) *Error {
	return &Error{
		Kind:      kind,
		Operation: operation,
		Argument:  argument,
		Detail:    strings.TrimSpace(detail),
	}
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("vips: ")
	if e.Operation != "" {
		fmt.Fprintf(&b, "unable to call %s: ", e.Operation)
	}
	b.WriteString(e.Kind.Error())
	if e.Argument != "" {
		fmt.Fprintf(&b, " %q", e.Argument)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// withContext fills in the operation and argument of err if it is an *Error
// that lacks them, otherwise wraps err as kind.
func withContext(err error, kind error, operation, argument string) *Error {
	var verr *Error
	if errors.As(err, &verr) {
		if verr.Operation == "" {
			verr.Operation = operation
		}
		if verr.Argument == "" {
			verr.Argument = argument
		}
		return verr
	}
	return newError(kind, operation, argument, err.Error())
}
