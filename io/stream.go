// package io reads and writes streams of int16 samples and runs Tickers over
// them, from files or the default audio input.
package io

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pfcm/shifty"
	"github.com/pfcm/shifty/fix"
	"github.com/pfcm/shifty/internal/buffer"
)

// Format is an encoding of interleaved sample frames.
type Format byte

const (
	// Text is one frame per line, with channels separated by whitespace.
	// Blank lines and lines starting with # are skipped. Values outside
	// the int16 range saturate.
	Text Format = iota
	// PCM16 is raw interleaved little-endian int16s.
	PCM16
)

func (f Format) String() string {
	switch f {
	case Text:
		return "text"
	case PCM16:
		return "s16le"
	}
	return fmt.Sprintf("Format(%d)", byte(f))
}

// ParseFormat parses the names returned by Format.String.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text", "txt":
		return Text, nil
	case "s16le", "pcm16", "pcm":
		return PCM16, nil
	}
	return 0, fmt.Errorf("unknown sample format %q", s)
}

// Reader decodes frames into de-interleaved blocks.
type Reader struct {
	format   Format
	channels int
	r        *bufio.Reader
	line     int
	frame    []byte
}

func NewReader(r io.Reader, format Format, channels int) (*Reader, error) {
	if channels < 1 {
		return nil, fmt.Errorf("reader with %d channels: need at least one", channels)
	}
	if format != Text && format != PCM16 {
		return nil, fmt.Errorf("reader: unknown format %v", format)
	}
	return &Reader{
		format:   format,
		channels: channels,
		r:        bufio.NewReader(r),
		frame:    make([]byte, 2*channels),
	}, nil
}

// Channels returns the number of channels in each frame.
func (r *Reader) Channels() int { return r.channels }

// ReadBlock reads up to len(block[0]) frames, returning how many it read. It
// returns io.EOF only when there are no frames left; a short block is not an
// error.
func (r *Reader) ReadBlock(block [][]int16) (int, error) {
	if len(block) != r.channels {
		return 0, fmt.Errorf("block has %d channels, stream has %d", len(block), r.channels)
	}
	size := len(block[0])
	for n := 0; n < size; n++ {
		var err error
		switch r.format {
		case Text:
			err = r.readLine(block, n)
		case PCM16:
			err = r.readFrame(block, n)
		}
		if errors.Is(err, io.EOF) {
			if n == 0 {
				return 0, io.EOF
			}
			return n, nil
		}
		if err != nil {
			return n, err
		}
	}
	return size, nil
}

func (r *Reader) readFrame(block [][]int16, n int) error {
	if _, err := io.ReadFull(r.r, r.frame); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("truncated frame: %w", err)
		}
		return err
	}
	for c := range block {
		block[c][n] = int16(binary.LittleEndian.Uint16(r.frame[2*c:]))
	}
	return nil
}

func (r *Reader) readLine(block [][]int16, n int) error {
	for {
		line, err := r.r.ReadString('\n')
		if line == "" && err != nil {
			return err
		}
		r.line++
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			if err != nil {
				return err
			}
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != r.channels {
			return fmt.Errorf("line %d: got %d samples, want %d", r.line, len(fields), r.channels)
		}
		for c, f := range fields {
			v, perr := strconv.ParseInt(f, 0, 64)
			if perr != nil {
				return fmt.Errorf("line %d: %w", r.line, perr)
			}
			block[c][n] = fix.Sat16Wide(v)
		}
		// A final line without a newline still counts; the EOF will
		// come around again on the next call.
		return nil
	}
}

// Writer encodes de-interleaved blocks as frames. Call Flush when done.
type Writer struct {
	format   Format
	channels int
	w        *bufio.Writer
	scratch  []byte
}

func NewWriter(w io.Writer, format Format, channels int) (*Writer, error) {
	if channels < 1 {
		return nil, fmt.Errorf("writer with %d channels: need at least one", channels)
	}
	if format != Text && format != PCM16 {
		return nil, fmt.Errorf("writer: unknown format %v", format)
	}
	return &Writer{
		format:   format,
		channels: channels,
		w:        bufio.NewWriter(w),
	}, nil
}

// Channels returns the number of channels in each frame.
func (w *Writer) Channels() int { return w.channels }

// WriteBlock writes the first n frames of block.
func (w *Writer) WriteBlock(block [][]int16, n int) error {
	if len(block) != w.channels {
		return fmt.Errorf("block has %d channels, stream has %d", len(block), w.channels)
	}
	for i := 0; i < n; i++ {
		b := w.scratch[:0]
		for c := range block {
			switch w.format {
			case Text:
				if c > 0 {
					b = append(b, ' ')
				}
				b = strconv.AppendInt(b, int64(block[c][i]), 10)
			case PCM16:
				b = binary.LittleEndian.AppendUint16(b, uint16(block[c][i]))
			}
		}
		if w.format == Text {
			b = append(b, '\n')
		}
		if _, err := w.w.Write(b); err != nil {
			return err
		}
		w.scratch = b
	}
	return nil
}

func (w *Writer) Flush() error { return w.w.Flush() }

// Stats counts what Stream processed.
type Stats struct {
	Frames int
	Blocks int
}

// Stream runs t over every frame from src, writing the result to dst, until
// src is exhausted or ctx is cancelled. Blocks hold at most blockSize frames.
// dst is flushed before returning.
func Stream(ctx context.Context, src *Reader, dst *Writer, t shifty.Ticker, blockSize int) (Stats, error) {
	var st Stats
	if src.Channels() != t.Inputs() {
		return st, fmt.Errorf("%v wants %d inputs: stream has %d channels", t, t.Inputs(), src.Channels())
	}
	if dst.Channels() != t.Outputs() {
		return st, fmt.Errorf("%v has %d outputs: stream wants %d channels", t, t.Outputs(), dst.Channels())
	}
	if blockSize < 1 {
		blockSize = shifty.BlockSize
	}

	inputs := make([][]int16, t.Inputs())
	for i := range inputs {
		inputs[i] = buffer.Get(blockSize)
		defer buffer.Put(inputs[i])
	}
	outputs := make([][]int16, t.Outputs())
	for i := range outputs {
		outputs[i] = buffer.Get(blockSize)
		defer buffer.Put(outputs[i])
	}
	in := make([][]int16, len(inputs))
	out := make([][]int16, len(outputs))

	for {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		n, err := src.ReadBlock(inputs)
		if n > 0 {
			for i := range in {
				in[i] = inputs[i][:n]
			}
			for i := range out {
				out[i] = outputs[i][:n]
			}
			t.Tick(in, out)
			if werr := dst.WriteBlock(out, n); werr != nil {
				return st, fmt.Errorf("writing block %d: %w", st.Blocks, werr)
			}
			st.Frames += n
			st.Blocks++
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return st, fmt.Errorf("reading block %d: %w", st.Blocks, err)
		}
	}
	return st, dst.Flush()
}
