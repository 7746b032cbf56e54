package output

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Tests run without a terminal, so the action runs inline.
func TestRunWithSpinner_NoTTYRunsAction(t *testing.T) {
	called := false
	err := RunWithSpinner(context.Background(), func() error {
		called = true
		return nil
	}, WithTitle("Copying"))

	assert.NoError(t, err)
	assert.True(t, called)
}

func TestRunWithSpinner_ReturnsActionError(t *testing.T) {
	boom := errors.New("boom")
	err := RunWithSpinner(context.Background(), func() error { return boom })

	assert.ErrorIs(t, err, boom)
}

func TestRunWithIndicator_WaitsForActionAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	release := make(chan struct{})
	finished := false

	err := runWithIndicator(ctx, func() error {
		<-release
		finished = true
		return nil
	}, func(ctx context.Context) error {
		// Interrupt arrives while the action is still running.
		cancel()
		<-ctx.Done()
		close(release)
		return ctx.Err()
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, finished)
}

func TestRunWithIndicator_StopsIndicatorWhenActionReturns(t *testing.T) {
	boom := errors.New("boom")
	stopped := false

	err := runWithIndicator(context.Background(), func() error {
		return boom
	}, func(ctx context.Context) error {
		<-ctx.Done()
		stopped = true
		return nil
	})

	assert.ErrorIs(t, err, boom)
	assert.True(t, stopped)
}
