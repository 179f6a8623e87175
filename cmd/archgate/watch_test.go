package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchExitCancelIsClean(t *testing.T) {
	// Ctrl-C must surface the last verdict, not an error status.
	code, err := watchExit(context.Canceled, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, code)

	code, err = watchExit(fmt.Errorf("run loop: %w", context.Canceled), 0)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}

func TestWatchExitRealErrorPropagates(t *testing.T) {
	boom := errors.New("inotify limit reached")
	code, err := watchExit(boom, 0)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, exitFatal, code)
}
