package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/23skdu/wateval/internal/config"
	"github.com/23skdu/wateval/internal/logger"
	"github.com/23skdu/wateval/internal/metrics"
	"github.com/23skdu/wateval/internal/reference"
	"github.com/23skdu/wateval/internal/scoring"
)

type app struct {
	cfg     config.Config
	stdout  io.Writer
	stderr  io.Writer
	getenv  func(string) string
	started bool
}

func (a *app) command() *cobra.Command {
	a.cfg = config.Default()
	metric := string(a.cfg.Metric)

	cmd := &cobra.Command{
		Use:   "wateval",
		Short: "Score translation output against WAT reference data",
		Long: `Extract the reference column of a WAT test corpus and score a system's
output against it with BLEU or RIBES.

References are cached under <cache-dir>/<dataset>/orig/<split>.<lang> and
rebuilt on every run. Scoring is delegated to make with the per-language
procedure file <procedures-dir>/<lang>.mk (target "evaluate").

Example:
  wateval -l en -d aspec_ja_en -t ASPEC/ASPEC-JE/test/test.txt -i hyp.en -m ribes`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.started = true
			a.cfg.Metric = config.Metric(metric)
			return a.evaluate(cmd)
		},
	}

	f := cmd.Flags()
	f.SortFlags = false
	f.StringVarP(&a.cfg.Lang, "lang", "l", "", "Language code (ISO 639-1) (required)")
	f.StringVarP(&a.cfg.Dataset, "dataset-name", "d", "",
		fmt.Sprintf("Dataset name, one of: %s (required)", strings.Join(config.DatasetChoices, ", ")))
	f.StringVarP(&a.cfg.TestPath, "test-path", "t", "",
		fmt.Sprintf("Test file (default $%s)", config.TestPathEnv))
	f.StringVarP(&a.cfg.Input, "input", "i", "", "System output file (required)")
	f.StringVarP(&metric, "metric", "m", metric, "Metric, one of: bleu, ribes")
	f.StringVar(&a.cfg.CacheDir, "cache-dir", "", "Cache directory (default: per-user cache dir)")
	f.StringVar(&a.cfg.ProceduresDir, "procedures-dir", "", "Directory holding <lang>.mk procedures (default: next to the executable)")
	f.StringVar(&a.cfg.Make, "make", a.cfg.Make, "make binary used to run procedures")
	f.StringVar(&a.cfg.Encoding, "encoding", a.cfg.Encoding, "Character encoding of the test and input files")
	f.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "Log level (debug, info, warn, error)")
	f.StringVar(&a.cfg.LogFormat, "log-format", a.cfg.LogFormat, "Log format (console or json)")
	f.StringVar(&a.cfg.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit")

	for _, name := range []string{"lang", "dataset-name", "input"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}
	return cmd
}

// resolve fills the values that default from the environment or platform.
func (a *app) resolve() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Log.Warn("Ignoring unreadable .env", "error", err)
	}

	if a.cfg.TestPath == "" {
		a.cfg.TestPath = a.getenv(config.TestPathEnv)
	}

	if a.cfg.CacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve cache dir: %w", err)
		}
		dir, err := config.UserCacheDir(runtime.GOOS, a.getenv, home, config.CacheName)
		if err != nil {
			return err
		}
		a.cfg.CacheDir = dir
	}
	abs, err := filepath.Abs(a.cfg.CacheDir)
	if err != nil {
		return fmt.Errorf("resolve cache dir: %w", err)
	}
	a.cfg.CacheDir = abs

	if a.cfg.ProceduresDir == "" {
		dir, err := config.DefaultProceduresDir()
		if err != nil {
			return err
		}
		a.cfg.ProceduresDir = dir
	}
	return nil
}

func (a *app) evaluate(cmd *cobra.Command) (err error) {
	logger.Setup(a.cfg.LogLevel, a.cfg.LogFormat)
	defer func() {
		recordOutcome(err)
		var ce *configError
		if errors.As(err, &ce) {
			// configuration errors abort before anything is written
			return
		}
		if werr := metrics.WriteTextfile(a.cfg.MetricsFile); werr != nil {
			logger.Log.Warn("Metrics not written", "path", a.cfg.MetricsFile, "error", werr)
		}
	}()

	if err := a.resolve(); err != nil {
		return &configError{err: err}
	}
	if err := a.cfg.Validate(); err != nil {
		return &configError{err: err}
	}

	log := logger.Log.With("dataset", a.cfg.Dataset, "lang", a.cfg.Lang, "metric", string(a.cfg.Metric))
	ctx := cmd.Context()

	ref, err := reference.Build(ctx, reference.Options{
		CacheDir: a.cfg.CacheDir,
		Dataset:  a.cfg.Dataset,
		Lang:     a.cfg.Lang,
		TestPath: a.cfg.TestPath,
		Encoding: a.cfg.Encoding,
	})
	if err != nil {
		return fmt.Errorf("build reference: %w", err)
	}
	log.Info("Reference ready", "path", ref.Path, "lines", ref.Lines)

	procedure := a.cfg.ProcedurePath()
	if _, err := os.Stat(procedure); err != nil {
		log.Warn("Procedure file not accessible", "path", procedure, "error", err)
	}

	runner := newRunner(a.cfg.Make, a.stdout, a.stderr)
	res, err := scoring.Evaluate(ctx, runner, a.cfg.Input, a.cfg.Encoding, scoring.Request{
		RefPath:       ref.Path,
		Metric:        string(a.cfg.Metric),
		WorkDir:       a.cfg.CacheDir,
		ProcedurePath: procedure,
	})
	metrics.RecordScoring(string(a.cfg.Metric), a.cfg.Lang, res.ExitCode, res.Duration)
	if err != nil {
		log.Error("Scoring failed", "exit_code", res.ExitCode, "error", err)
		return err
	}

	if res.Score != nil {
		metrics.RecordScore(a.cfg.Dataset, string(a.cfg.Metric), a.cfg.Lang, *res.Score)
		log.Info("Scoring complete", "score", *res.Score, "duration", res.Duration)
	} else {
		log.Info("Scoring complete", "duration", res.Duration)
	}
	return nil
}

func recordOutcome(err error) {
	var ce *configError
	var ee *scoring.ExitError
	switch {
	case err == nil:
		metrics.RecordRun(metrics.OutcomeSuccess)
	case errors.As(err, &ce):
		metrics.RecordRun(metrics.OutcomeConfigError)
	case errors.As(err, &ee):
		metrics.RecordRun(metrics.OutcomeScoreFailed)
	default:
		metrics.RecordRun(metrics.OutcomeError)
	}
}
