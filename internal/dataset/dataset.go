// Package dataset holds the column layout of the supported parallel corpora
// and pulls reference sentences out of pipe-delimited test lines.
package dataset

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Delimiter separates fields in a corpus line.
const Delimiter = " ||| "

// fields maps dataset name -> language code -> 0-based field index.
var fields = map[string]map[string]int{
	"aspec_ja_en": {
		"ja": 2,
		"en": 3,
	},
	"aspec_ja_zh": {
		"ja": 1,
		"zh": 2,
	},
}

var (
	ErrLookup              = errors.New("unsupported dataset/language")
	ErrUnknownDataset      = fmt.Errorf("%w: unknown dataset", ErrLookup)
	ErrUnsupportedLanguage = fmt.Errorf("%w: language not in dataset", ErrLookup)
)

// FieldError reports a line that has fewer fields than the selected column.
type FieldError struct {
	Line int // 1-based
	Want int // required field count
	Got  int
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("line %d: expected at least %d fields separated by %q, got %d", e.Line, e.Want, Delimiter, e.Got)
}

// FieldIndex returns the column holding the reference text for lang.
func FieldIndex(dataset, lang string) (int, error) {
	langs, ok := fields[dataset]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownDataset, dataset)
	}
	idx, ok := langs[lang]
	if !ok {
		return 0, fmt.Errorf("%w: %q has no %q column", ErrUnsupportedLanguage, dataset, lang)
	}
	return idx, nil
}

// Datasets lists the known dataset names in sorted order.
func Datasets() []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExtractReference returns one newline-terminated reference per input line.
// The (dataset, lang) pair is resolved before any line is inspected.
func ExtractReference(lines []string, lang, dataset string) ([]string, error) {
	idx, err := FieldIndex(dataset, lang)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		field, err := extractField(line, idx)
		if err != nil {
			var fe *FieldError
			if errors.As(err, &fe) {
				fe.Line = i + 1
			}
			return nil, err
		}
		out = append(out, field+"\n")
	}
	return out, nil
}

func extractField(line string, idx int) (string, error) {
	parts := strings.Split(strings.TrimSpace(line), Delimiter)
	if idx >= len(parts) {
		return "", &FieldError{Want: idx + 1, Got: len(parts)}
	}
	return parts[idx], nil
}
