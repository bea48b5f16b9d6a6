// Package corpus reads text corpora in an arbitrary WHATWG-labelled charset
// and hands them out as UTF-8 lines with "\n" terminators.
//
// UTF-8 input is validated rather than decoded: invalid bytes fail the read
// with encoding.ErrInvalidUTF8 instead of turning into U+FFFD. "\r\n" and
// lone "\r" are normalised to "\n".
package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

var ErrUnknownEncoding = errors.New("unknown encoding")

// Lookup resolves an encoding label such as "utf-8", "shift_jis" or "gb18030".
func Lookup(label string) (encoding.Encoding, error) {
	e, _, err := lookup(label)
	return e, err
}

func lookup(label string) (encoding.Encoding, string, error) {
	e, name := charset.Lookup(label)
	if e == nil {
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
	}
	return e, name, nil
}

// decoder returns the transformer producing normalised UTF-8 for label.
func decoder(label string) (transform.Transformer, error) {
	e, name, err := lookup(label)
	if err != nil {
		return nil, err
	}
	if name == "utf-8" {
		return transform.Chain(encoding.UTF8Validator, newlines{}), nil
	}
	return transform.Chain(e.NewDecoder(), newlines{}), nil
}

// newlines rewrites "\r\n" and lone "\r" to "\n".
type newlines struct{ transform.NopResetter }

func (newlines) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		c := src[nSrc]
		if c == '\r' && nSrc+1 == len(src) && !atEOF {
			// a following '\n' may be in the next chunk
			return nDst, nSrc, transform.ErrShortSrc
		}
		if nDst >= len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nSrc++
		if c == '\r' {
			c = '\n'
			if nSrc < len(src) && src[nSrc] == '\n' {
				nSrc++
			}
		}
		dst[nDst] = c
		nDst++
	}
	return nDst, nSrc, nil
}

type file struct {
	io.Reader
	f *os.File
}

func (f *file) Close() error { return f.f.Close() }

// Open opens path for decoding with the given charset label.
func Open(path, label string) (io.ReadCloser, error) {
	t, err := decoder(label)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &file{Reader: transform.NewReader(f, t), f: f}, nil
}

// ReadLines returns every line of r with its terminator kept. A final line
// without a newline is returned as-is.
func ReadLines(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)
	var lines []string
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lines = append(lines, line)
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// ReadFile opens path with the given charset and returns its lines.
func ReadFile(path, label string) ([]string, error) {
	rc, err := Open(path, label)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ReadLines(rc)
}
