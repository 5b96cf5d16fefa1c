package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, AuthRequired, KindOf(New(AuthRequired, "nope")))
	assert.Equal(t, BadRequest, KindOf(Newf(BadRequest, "bad %s", "input")))
	assert.Equal(t, ServerError, KindOf(errors.New("plain error")))
	assert.Equal(t, ServerError, KindOf(fmt.Errorf("wrapped: %w", errors.New("x"))))
}

func TestSentinelMatching(t *testing.T) {
	sentinel := New(AuthRequired, "No credentials sent!")

	assert.ErrorIs(t, sentinel, sentinel)
	assert.ErrorIs(t, fmt.Errorf("context: %w", sentinel), sentinel)

	// Same kind, different message: not the same failure.
	other := New(AuthRequired, "Incorrect email or password")
	assert.NotErrorIs(t, other, sentinel)
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("token contains an invalid number of segments")
	err := Wrap(BadRequest, cause.Error(), cause)

	assert.Equal(t, BadRequest, KindOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause.Error(), err.Error())
}
