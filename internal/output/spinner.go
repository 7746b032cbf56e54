package output

import (
	"context"
	"errors"

	"github.com/charmbracelet/huh/spinner"
)

// SpinnerOption configures a spinner.
type SpinnerOption func(*spinnerConfig)

type spinnerConfig struct {
	title string
}

// WithTitle sets the spinner title.
func WithTitle(title string) SpinnerOption {
	return func(c *spinnerConfig) {
		c.title = title
	}
}

// RunWithSpinner executes action while showing a spinner on the terminal.
// When stdout is not a TTY the action runs directly. It always returns after
// action has finished, with the action's error, or the context error when
// ctx was cancelled meanwhile.
func RunWithSpinner(ctx context.Context, action func() error, opts ...SpinnerOption) error {
	cfg := &spinnerConfig{title: "Working..."}
	for _, opt := range opts {
		opt(cfg)
	}

	if !IsTTY() {
		return action()
	}

	return runWithIndicator(ctx, action, func(ctx context.Context) error {
		return spinner.New().Context(ctx).Title(cfg.title).Run()
	})
}

// runWithIndicator runs action in a goroutine and shows indicator until the
// action finishes or ctx is cancelled. The indicator's context is cancelled
// once the action returns.
func runWithIndicator(ctx context.Context, action func() error, indicator func(context.Context) error) error {
	indicatorCtx, stop := context.WithCancel(ctx)
	defer stop()

	done := make(chan struct{})
	var actionErr error
	go func() {
		defer close(done)
		defer stop()
		actionErr = action()
	}()

	indicatorErr := indicator(indicatorCtx)
	<-done

	if actionErr != nil {
		return actionErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if indicatorErr != nil && !errors.Is(indicatorErr, context.Canceled) {
		Debug("spinner failed", "error", indicatorErr)
	}
	return nil
}
