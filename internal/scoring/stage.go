package scoring

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/23skdu/wateval/internal/corpus"
	"github.com/23skdu/wateval/internal/logger"
)

const sysoutName = "sysout"

// Staging is a private temp directory holding a copy of the system output.
type Staging struct {
	Dir  string
	Path string
}

// Stage copies r into <fresh temp dir>/sysout.
func Stage(r io.Reader) (*Staging, error) {
	dir, err := os.MkdirTemp("", "wateval-")
	if err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}
	s := &Staging{Dir: dir, Path: filepath.Join(dir, sysoutName)}

	f, err := os.Create(s.Path)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("create staged sysout: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		s.Close()
		return nil, fmt.Errorf("stage sysout: %w", err)
	}
	if err := f.Close(); err != nil {
		s.Close()
		return nil, fmt.Errorf("stage sysout: %w", err)
	}
	return s, nil
}

// Close removes the staging directory and everything in it.
func (s *Staging) Close() error {
	return os.RemoveAll(s.Dir)
}

// Evaluate stages inputPath (decoded from encoding), points req.SysoutPath
// at the staged copy and runs it. The staging directory is removed before
// Evaluate returns, whatever the runner's outcome.
func Evaluate(ctx context.Context, runner Runner, inputPath, encoding string, req Request) (Result, error) {
	if encoding == "" {
		encoding = "utf-8"
	}
	in, err := corpus.Open(inputPath, encoding)
	if err != nil {
		return Result{}, fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	staged, err := Stage(in)
	if err != nil {
		return Result{}, err
	}
	defer func() {
		if err := staged.Close(); err != nil {
			logger.Log.Warn("Failed to remove staging dir", "dir", staged.Dir, "error", err)
		}
	}()

	req.SysoutPath = staged.Path
	return runner.Run(ctx, req)
}
