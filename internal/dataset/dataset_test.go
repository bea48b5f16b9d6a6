package dataset

import (
	"errors"
	"reflect"
	"testing"
)

const sample = "src ||| mt ||| 参照文 ||| reference sentence\n"

func TestFieldIndex(t *testing.T) {
	tests := []struct {
		dataset string
		lang    string
		want    int
		wantErr error
	}{
		{"aspec_ja_en", "ja", 2, nil},
		{"aspec_ja_en", "en", 3, nil},
		{"aspec_ja_zh", "ja", 1, nil},
		{"aspec_ja_zh", "zh", 2, nil},
		{"aspec_ja_en", "zh", 0, ErrUnsupportedLanguage},
		{"wmt14", "en", 0, ErrUnknownDataset},
	}

	for _, tt := range tests {
		t.Run(tt.dataset+"/"+tt.lang, func(t *testing.T) {
			got, err := FieldIndex(tt.dataset, tt.lang)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if !errors.Is(err, ErrLookup) {
					t.Errorf("expected error to wrap ErrLookup, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("FieldIndex(%q, %q) = %d, want %d", tt.dataset, tt.lang, got, tt.want)
			}
		})
	}
}

func TestExtractReference(t *testing.T) {
	tests := []struct {
		name string
		lang string
		want []string
	}{
		{"english", "en", []string{"reference sentence\n"}},
		{"japanese", "ja", []string{"参照文\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractReference([]string{sample}, tt.lang, "aspec_ja_en")
			if err != nil {
				t.Fatalf("ExtractReference: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractReferenceLineCount(t *testing.T) {
	lines := []string{
		"1 ||| a ||| 一 ||| one\n",
		"2 ||| b ||| 二 ||| two  \r\n",
		"3 ||| c ||| 三 ||| three ||| extra",
		"  4 ||| d ||| 四 ||| four\n",
	}
	got, err := ExtractReference(lines, "en", "aspec_ja_en")
	if err != nil {
		t.Fatalf("ExtractReference: %v", err)
	}
	want := []string{"one\n", "two\n", "three\n", "four\n"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtractReferenceEmptyInput(t *testing.T) {
	got, err := ExtractReference(nil, "ja", "aspec_ja_en")
	if err != nil {
		t.Fatalf("ExtractReference: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no lines, got %q", got)
	}
}

func TestExtractReferenceLookupBeforeLines(t *testing.T) {
	// malformed lines must not matter when the pair itself is unsupported
	_, err := ExtractReference([]string{"no delimiter"}, "fr", "aspec_ja_en")
	if !errors.Is(err, ErrUnsupportedLanguage) {
		t.Fatalf("expected ErrUnsupportedLanguage, got %v", err)
	}
}

func TestExtractReferenceShortLine(t *testing.T) {
	lines := []string{sample, "src ||| mt ||| 参照文\n"}
	_, err := ExtractReference(lines, "en", "aspec_ja_en")

	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FieldError, got %v", err)
	}
	if fe.Line != 2 || fe.Want != 4 || fe.Got != 3 {
		t.Errorf("unexpected FieldError %+v", fe)
	}
}

func TestDatasets(t *testing.T) {
	want := []string{"aspec_ja_en", "aspec_ja_zh"}
	if got := Datasets(); !reflect.DeepEqual(got, want) {
		t.Errorf("Datasets() = %v, want %v", got, want)
	}
}
