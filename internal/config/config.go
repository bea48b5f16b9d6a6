package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const (
	// TestPathEnv supplies the test corpus path when --test-path is omitted.
	TestPathEnv = "WAT_EVAL_TEST"

	// CacheName is the directory created under the user cache location.
	CacheName = "wat_evalator"
)

type Metric string

const (
	MetricBLEU  Metric = "bleu"
	MetricRIBES Metric = "ribes"
)

// Metrics lists the accepted --metric values.
var Metrics = []Metric{MetricBLEU, MetricRIBES}

// DatasetChoices is the closed set of dataset names accepted on the command line.
var DatasetChoices = []string{"aspec_ja_en"}

var (
	ErrMissingTestPath  = errors.New("test path is not set")
	ErrTestFileNotFound = errors.New("test file not found")
)

type Config struct {
	Lang          string
	Dataset       string
	TestPath      string
	Input         string
	Metric        Metric
	CacheDir      string
	ProceduresDir string
	Make          string
	Encoding      string

	LogLevel    string
	LogFormat   string
	MetricsFile string
}

func Default() Config {
	return Config{
		Metric:    MetricBLEU,
		Make:      "make",
		Encoding:  "utf-8",
		LogLevel:  "info",
		LogFormat: "console",
	}
}

// Validate checks the resolved configuration. The only filesystem access is
// a stat of the test path.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.TestPath) == "" {
		return fmt.Errorf("%w: please specify the test file path via --test-path or the %s environment variable",
			ErrMissingTestPath, TestPathEnv)
	}
	if c.Lang == "" {
		return errors.New("invalid lang: empty (must be a language code)")
	}
	if !slices.Contains(DatasetChoices, c.Dataset) {
		return fmt.Errorf("invalid dataset_name: %q (choose from %s)", c.Dataset, strings.Join(DatasetChoices, ", "))
	}
	if c.Input == "" {
		return errors.New("invalid input: empty (must be a path to the system output)")
	}
	if !slices.Contains(Metrics, c.Metric) {
		return fmt.Errorf("invalid metric: %q (choose from bleu, ribes)", c.Metric)
	}
	if c.CacheDir == "" {
		return errors.New("invalid cache_dir: empty")
	}
	if c.Make == "" {
		return errors.New("invalid make: empty (must name the make binary)")
	}
	info, err := os.Stat(c.TestPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrTestFileNotFound, c.TestPath)
		}
		return fmt.Errorf("stat test file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrTestFileNotFound, c.TestPath)
	}
	return nil
}

// TestSplit is the test file base name without its extension, e.g. "test"
// for "/data/aspec/test.txt".
func (c *Config) TestSplit() string {
	return SplitName(c.TestPath)
}

// ProcedurePath is the per-language make procedure, <ProceduresDir>/<lang>.mk.
func (c *Config) ProcedurePath() string {
	return filepath.Join(c.ProceduresDir, c.Lang+".mk")
}

// SplitName strips the directory and the last extension from path.
func SplitName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
