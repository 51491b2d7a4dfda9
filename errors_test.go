package p3s

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigErrorMessage(t *testing.T) {
	err := &ConfigError{Component: "TaskA", Reason: "no initial location set"}
	assert.Equal(t, "p3s: config error in TaskA: no initial location set", err.Error())
}

func TestModelErrorMessageWithoutCause(t *testing.T) {
	err := &ModelError{Component: "TaskA", Reason: "get_delay returned negative value"}
	assert.Equal(t, "p3s: model error in TaskA: get_delay returned negative value", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestModelErrorMessageWithCause(t *testing.T) {
	cause := errors.New("underlying failure")
	err := &ModelError{Component: "TaskA", Reason: "restart failed", Cause: cause}
	assert.Contains(t, err.Error(), "underlying failure")
	assert.Same(t, cause, err.Unwrap())
}

func TestModelErrorUnwrapsViaErrorsIs(t *testing.T) {
	cause := errors.New("sentinel")
	err := &ModelError{Component: "TaskA", Reason: "wrapped", Cause: cause}
	assert.True(t, errors.Is(err, cause))
}

func TestModelErrorUnwrapsViaErrorsAs(t *testing.T) {
	var wrapped error = &ModelError{Component: "TaskA", Reason: "bad", Cause: &ConfigError{Component: "X", Reason: "y"}}
	var target *ConfigError
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "X", target.Component)
}

func TestAssertionErrorMessage(t *testing.T) {
	err := &AssertionError{Invariant: "two tasks RUNNING on one CPU"}
	assert.Equal(t, "p3s: assertion failed: two tasks RUNNING on one CPU", err.Error())
}
