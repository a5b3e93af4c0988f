package reconciler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raiseFault() error {
	return NewFault("boom")
}

func TestFault_CapturesStackWhereRaised(t *testing.T) {
	err := raiseFault()

	assert.Equal(t, "boom", err.Error())
	assert.Contains(t, string(stackOf(err)), "raiseFault")
}

func TestStackOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("handler: %w", NewFault("inner"))
	assert.NotEmpty(t, stackOf(err))

	assert.Nil(t, stackOf(errors.New("plain")))
}

func TestSafeCall_RecoversPanic(t *testing.T) {
	err := safeCall(func() error {
		panic("kaboom")
	})

	require.Error(t, err)
	var pe *PanicError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "kaboom", pe.Value)
	assert.Contains(t, err.Error(), "kaboom")
	assert.NotEmpty(t, pe.Stack())
}

func TestSafeCall_PassesErrorThrough(t *testing.T) {
	want := errors.New("failed")
	assert.Same(t, want, safeCall(func() error { return want }))
	assert.NoError(t, safeCall(func() error { return nil }))
}
