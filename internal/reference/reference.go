// Package reference materialises the reference side of a test corpus under
// the cache directory.
//
// Files live at <cache>/<dataset>/orig/<split>.<lang> and are rewritten on
// every Build. There is no locking: two runs building the same file at once
// can interleave their writes.
package reference

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/23skdu/wateval/internal/config"
	"github.com/23skdu/wateval/internal/corpus"
	"github.com/23skdu/wateval/internal/dataset"
	"github.com/23skdu/wateval/internal/logger"
	"github.com/23skdu/wateval/internal/metrics"
)

const origDir = "orig"

type Options struct {
	CacheDir string
	Dataset  string
	Lang     string
	TestPath string
	Encoding string // charset label of TestPath; empty means utf-8
}

type Result struct {
	Path  string
	Lines int
}

// Path returns <cacheDir>/<dataset>/orig/<split>.<lang>, where split is the
// base name of testPath without its extension.
func Path(cacheDir, datasetName, testPath, lang string) string {
	name := config.SplitName(testPath) + "." + lang
	return filepath.Join(cacheDir, datasetName, origDir, name)
}

// Build extracts the reference column of opts.TestPath and writes it to the
// cache, replacing any previous content. An unsupported dataset/language
// pair fails before anything is read or written.
func Build(ctx context.Context, opts Options) (Result, error) {
	if _, err := dataset.FieldIndex(opts.Dataset, opts.Lang); err != nil {
		return Result{}, err
	}
	start := time.Now()

	enc := opts.Encoding
	if enc == "" {
		enc = "utf-8"
	}
	lines, err := corpus.ReadFile(opts.TestPath, enc)
	if err != nil {
		return Result{}, fmt.Errorf("read test file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	refs, err := dataset.ExtractReference(lines, opts.Lang, opts.Dataset)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", opts.TestPath, err)
	}

	path := Path(opts.CacheDir, opts.Dataset, opts.TestPath, opts.Lang)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Result{}, fmt.Errorf("create reference dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(strings.Join(refs, "")), 0o644); err != nil {
		return Result{}, fmt.Errorf("write reference file: %w", err)
	}

	elapsed := time.Since(start)
	metrics.RecordExtraction(opts.Dataset, opts.Lang, len(refs), elapsed)
	logger.Log.Debug("Reference written", "path", path, "lines", len(refs), "duration", elapsed)

	return Result{Path: path, Lines: len(refs)}, nil
}
