package scoring

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/23skdu/wateval/internal/logger"
)

// MakeRunner runs the procedure with GNU make. Stdout is streamed to Stdout
// and captured for score parsing; stderr goes straight to Stderr.
type MakeRunner struct {
	Binary string
	Stdout io.Writer
	Stderr io.Writer
}

func NewMakeRunner(binary string) *MakeRunner {
	if binary == "" {
		binary = "make"
	}
	return &MakeRunner{Binary: binary, Stdout: os.Stdout, Stderr: os.Stderr}
}

func (r *MakeRunner) Run(ctx context.Context, req Request) (Result, error) {
	var captured bytes.Buffer
	stdout := io.Writer(&captured)
	if r.Stdout != nil {
		stdout = io.MultiWriter(r.Stdout, &captured)
	}

	cmd := exec.CommandContext(ctx, r.Binary, Args(req)...)
	cmd.Stdout = stdout
	cmd.Stderr = r.Stderr
	cmd.WaitDelay = 5 * time.Second

	logger.Log.Debug("Running scoring procedure", "command", CommandLine(r.Binary, req))

	start := time.Now()
	err := cmd.Run()
	res := Result{Output: captured.String(), Duration: time.Since(start)}

	if err != nil {
		var ee *exec.ExitError
		if !errors.As(err, &ee) {
			return res, fmt.Errorf("run %s: %w", r.Binary, err)
		}
		res.ExitCode = ee.ExitCode()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, ctxErr
		}
		return res, &ExitError{Code: res.ExitCode, Err: ee}
	}

	if score, ok := ParseScore(res.Output); ok {
		res.Score = &score
	}
	return res, nil
}
