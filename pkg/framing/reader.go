package framing

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// DefaultMaxFrameLength bounds a single change feed document.
const DefaultMaxFrameLength = 4 * 1024 * 1024

var ErrFrameTooLarge = errors.New("frame exceeds max content length")

// Reader splits a byte stream into newline-delimited frames. Blank lines are
// skipped, so both single and repeated newlines work as separators. A frame
// longer than the limit is discarded up to its terminating newline and
// reported as ErrFrameTooLarge; the stream stays usable afterwards.
type Reader struct {
	r              *bufio.Reader
	maxFrameLength int
}

// NewReader wraps r. maxFrameLength must be positive.
func NewReader(r io.Reader, maxFrameLength int) (*Reader, error) {
	if maxFrameLength <= 0 {
		return nil, fmt.Errorf("max frame length must be a positive integer: %d", maxFrameLength)
	}
	return &Reader{
		r:              bufio.NewReaderSize(r, maxFrameLength),
		maxFrameLength: maxFrameLength,
	}, nil
}

// Next returns the next non-empty frame with surrounding whitespace trimmed.
// It returns io.EOF once the stream is exhausted.
func (fr *Reader) Next() ([]byte, error) {
	for {
		line, err := fr.r.ReadSlice('\n')
		if errors.Is(err, bufio.ErrBufferFull) {
			return nil, fr.discardFrame()
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}

		frame := bytes.TrimSpace(line)
		if len(frame) > 0 {
			// ReadSlice reuses its buffer on the next call.
			out := make([]byte, len(frame))
			copy(out, frame)
			return out, nil
		}

		if err != nil {
			return nil, io.EOF
		}
	}
}

func (fr *Reader) discardFrame() error {
	for {
		_, err := fr.r.ReadSlice('\n')
		switch {
		case err == nil:
			return ErrFrameTooLarge
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			return ErrFrameTooLarge
		default:
			return err
		}
	}
}
