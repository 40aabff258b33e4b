package apperror

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFound(t *testing.T) {
	err := NotFound("Medic")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrBadRequest))
	assert.Equal(t, "Medic not found", err.Error())
	assert.Equal(t, "Medic not found", Message(err, "fallback"))
}

func TestKindsWrapCause(t *testing.T) {
	cause := errors.New("duplicate key value")

	tests := []struct {
		name string
		err  error
		kind error
	}{
		{name: "bad request", err: BadRequest("invalid order", cause), kind: ErrBadRequest},
		{name: "conflict", err: Conflict("already registered", cause), kind: ErrConflict},
		{name: "passthrough", err: Passthrough("unsupported sort", cause), kind: ErrPassthrough},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, tt.kind))
			assert.True(t, errors.Is(tt.err, cause))
			assert.Contains(t, tt.err.Error(), cause.Error())
		})
	}
}

func TestMessage_Fallback(t *testing.T) {
	assert.Equal(t, "fallback", Message(errors.New("plain"), "fallback"))
	assert.Equal(t, "fallback", Message(nil, "fallback"))
}
