package interp

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// InputSource feeds the refrigerator: each Take consumes exactly one
// numeric token in program order.
type InputSource interface {
	Next() (int, error)
}

type sliceInput struct {
	vals []int
	pos  int
}

// Inputs returns a source over a fixed token list, used by tests and
// by preloaded configuration.
func Inputs(vals ...int) InputSource {
	return &sliceInput{vals: vals}
}

func (s *sliceInput) Next() (int, error) {
	if s.pos >= len(s.vals) {
		return 0, io.EOF
	}
	v := s.vals[s.pos]
	s.pos++
	return v, nil
}

type scannerInput struct {
	sc *bufio.Scanner
}

// NewScannerInput reads whitespace-separated decimal tokens from r.
func NewScannerInput(r io.Reader) InputSource {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return &scannerInput{sc: sc}
}

func (s *scannerInput) Next() (int, error) {
	if !s.sc.Scan() {
		if err := s.sc.Err(); err != nil {
			return 0, err
		}
		return 0, io.EOF
	}
	n, err := strconv.Atoi(s.sc.Text())
	if err != nil {
		return 0, fmt.Errorf("input token %q is not a number", s.sc.Text())
	}
	return n, nil
}
