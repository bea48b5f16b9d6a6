package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/23skdu/wateval/internal/scoring"
)

// newRunner builds the scoring backend; tests swap it for a fake.
var newRunner = func(binary string, stdout, stderr io.Writer) scoring.Runner {
	r := scoring.NewMakeRunner(binary)
	r.Stdout, r.Stderr = stdout, stderr
	return r
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the CLI and returns the process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr, getenv: os.Getenv}
	cmd := a.command()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	if !a.started {
		// flag parsing or required-flag failure, reported before RunE
		err = &configError{err: err}
	}
	fmt.Fprintf(stderr, "wateval: %v\n", err)
	return exitCode(err)
}

const (
	exitFailure = 1
	exitConfig  = 2
)

type configError struct{ err error }

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

// exitCode maps an error to the process status. A failed scoring procedure
// passes its own status through.
func exitCode(err error) int {
	var ce *configError
	if errors.As(err, &ce) {
		return exitConfig
	}
	var ee *scoring.ExitError
	if errors.As(err, &ee) && ee.Code > 0 {
		return ee.Code
	}
	return exitFailure
}
