// Package scoring hands a reference/system-output pair to an external make
// procedure that prints a BLEU or RIBES score.
package scoring

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"mvdan.cc/sh/v3/syntax"
)

// Target is the make goal every procedure file must define.
const Target = "evaluate"

type Request struct {
	RefPath       string
	SysoutPath    string
	Metric        string
	WorkDir       string // passed to make as -C
	ProcedurePath string // passed to make as -f
}

type Result struct {
	ExitCode int
	Score    *float64 // nil when no number was found in Output
	Output   string   // captured stdout of the procedure
	Duration time.Duration
}

// Runner executes one scoring request.
type Runner interface {
	Run(ctx context.Context, req Request) (Result, error)
}

// ExitError is returned when the procedure exits with a non-zero status.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("scoring procedure exited with status %d: %v", e.Code, e.Err)
}

func (e *ExitError) Unwrap() error { return e.Err }

// Args builds the make arguments for req, without the binary itself.
func Args(req Request) []string {
	return []string{
		"-s",
		"-f", req.ProcedurePath,
		"-C", req.WorkDir,
		"REF=" + req.RefPath,
		"SYSOUT=" + req.SysoutPath,
		"METRIC=" + req.Metric,
		Target,
	}
}

// CommandLine renders binary and Args(req) as a shell-quoted string for logs.
func CommandLine(binary string, req Request) string {
	words := append([]string{binary}, Args(req)...)
	quoted := make([]string, len(words))
	for i, w := range words {
		q, err := syntax.Quote(w, syntax.LangBash)
		if err != nil {
			q = strconv.Quote(w)
		}
		quoted[i] = q
	}
	return strings.Join(quoted, " ")
}

var numberRE = regexp.MustCompile(`[-+]?\d+(?:\.\d+)?`)

// ParseScore extracts the score from the last non-empty line of out. When
// the line has a spaced " = " (multi-bleu, sacrebleu signatures) the first
// number after it is taken, e.g. 25.31 for "BLEU-4 = 25.31, 58.2/31.0 ...".
// Otherwise the first number on the line is used, as in RIBES output
// "0.742155 alpha=0.25 beta=0.10".
func ParseScore(out string) (float64, bool) {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	if _, after, ok := strings.Cut(last, " = "); ok {
		last = after
	}
	m := numberRE.FindString(last)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
