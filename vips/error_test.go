package vips

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		err      *Error
		expected string
	}{
		{
			newError(ErrBuild, "add", "", "  images must match\n"),
			"vips: unable to call add: unable to build operation: images must match",
		},
		{
			newError(ErrUnknownOption, "invert", "bogus", ""),
			`vips: unable to call invert: unknown option "bogus"`,
		},
		{
			newError(ErrBind, "", "width", "expected integer"),
			`vips: unable to set argument "width": expected integer`,
		},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.err.Error())
	}
}

func TestErrorIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", newError(ErrArityMismatch, "embed", "", "2 arguments given"))
	assert.ErrorIs(t, err, ErrArityMismatch)
	assert.False(t, errors.Is(err, ErrBuild))
}

func TestWithContext(t *testing.T) {
	inner := newError(ErrUnknownEnumValue, "", "", "no such nick")
	err := withContext(inner, ErrBind, "cast", "format")
	assert.Same(t, inner, err)
	assert.Equal(t, "cast", err.Operation)
	assert.Equal(t, "format", err.Argument)
	assert.ErrorIs(t, err, ErrUnknownEnumValue)

	// plain errors are wrapped as kind
	err = withContext(errors.New("boom"), ErrBind, "cast", "format")
	assert.ErrorIs(t, err, ErrBind)
	assert.Equal(t, "boom", err.Detail)
}
