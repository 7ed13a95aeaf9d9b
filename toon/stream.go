package toon

import (
	"bufio"
	"context"
	"io"
)

// lineSource feeds the decoder one line at a time. The decoder never
// looks more than one line ahead, so a source backed by a channel or
// reader keeps memory bounded by nesting depth rather than document
// size.
type lineSource interface {
	// nextLine returns the next line without its terminator. ok is false
	// at end of input.
	nextLine() (line string, ok bool, err error)
}

type sliceSource struct {
	lines []string
	pos   int
}

func (s *sliceSource) nextLine() (string, bool, error) {
	if s.pos >= len(s.lines) {
		return "", false, nil
	}
	line := s.lines[s.pos]
	s.pos++
	return line, true, nil
}

type scannerSource struct {
	sc *bufio.Scanner
}

func (s *scannerSource) nextLine() (string, bool, error) {
	if s.sc.Scan() {
		return s.sc.Text(), true, nil
	}
	if err := s.sc.Err(); err != nil {
		return "", false, err
	}
	return "", false, nil
}

type chanSource struct {
	ctx context.Context
	ch  <-chan string
}

func (s *chanSource) nextLine() (string, bool, error) {
	select {
	case line, ok := <-s.ch:
		if !ok {
			return "", false, nil
		}
		return line, true, nil
	case <-s.ctx.Done():
		return "", false, s.ctx.Err()
	}
}

// Lines longer than this abort a reader-backed decode.
const maxLineBytes = 16 * 1024 * 1024

// DecodeReader parses TOON text from r line by line with default
// options.
func DecodeReader(r io.Reader) (*Value, error) {
	return DecodeReaderWithOptions(r, DefaultDecodeOptions())
}

// DecodeReaderWithOptions parses TOON text from r line by line.
func DecodeReaderWithOptions(r io.Reader, opts DecodeOptions) (*Value, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return decodeFrom(&scannerSource{sc: sc}, opts)
}

// DecodeStream parses lines arriving on a channel with default options.
// The decode suspends at each receive and resumes when the producer
// sends the next line; closing the channel ends the document.
func DecodeStream(ctx context.Context, lines <-chan string) (*Value, error) {
	return DecodeStreamWithOptions(ctx, lines, DefaultDecodeOptions())
}

// DecodeStreamWithOptions parses lines arriving on a channel. A
// cancelled context aborts the decode with the context's error.
func DecodeStreamWithOptions(ctx context.Context, lines <-chan string, opts DecodeOptions) (*Value, error) {
	return decodeFrom(&chanSource{ctx: ctx, ch: lines}, opts)
}
