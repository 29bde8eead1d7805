package panchang

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	tests := []struct {
		err  error
		want Code
	}{
		{nil, CodeOK},
		{fmt.Errorf("load: %w", ErrEphemerisUnavailable), CodeEphemerisUnavailable},
		{fmt.Errorf("%w: Pluto", ErrInvalidNakshatra), CodeInvalidNakshatra},
		{fmt.Errorf("%w: day 40", ErrInvalidInput), CodeInvalidInput},
		{fmt.Errorf("%w: window", ErrNotFound), CodeNotFound},
		{fmt.Errorf("%w: NaN", ErrInternal), CodeInternal},
		{errors.New("anything else"), CodeInternal},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CodeOf(tt.err), "%v", tt.err)
	}
}

func TestIsRecoverable(t *testing.T) {
	assert.True(t, IsRecoverable(ErrInvalidNakshatra))
	assert.True(t, IsRecoverable(fmt.Errorf("x: %w", ErrNotFound)))
	assert.True(t, IsRecoverable(ErrInvalidInput))
	assert.False(t, IsRecoverable(ErrInternal))
	assert.False(t, IsRecoverable(ErrEphemerisUnavailable))
	assert.False(t, IsRecoverable(nil))
}
