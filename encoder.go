package bitvideo

import (
	"bytes"
	"fmt"
	"io"

	"github.com/wmarlow/bitvideo/bitgrid"
)

// Encoder accumulates frames and serializes them into one stream.
//
// The first pushed frame fixes the stream's dimensions. Encoding drains the
// queue, so one Encoder can be reused for several streams.
type Encoder struct {
	frames []*bitgrid.Grid
	width  int
	height int
}

// NewEncoder returns an empty encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// FrameCount returns the number of frames queued for encoding.
func (e *Encoder) FrameCount() int {
	return len(e.frames)
}

// Push appends a frame to the encode queue. Every frame after the first
// must share the first frame's dimensions.
func (e *Encoder) Push(frame *bitgrid.Grid) error {
	if len(e.frames) == 0 {
		e.width = frame.Width()
		e.height = frame.Height()
	} else if frame.Width() != e.width || frame.Height() != e.height {
		return fmt.Errorf("%w: stream is %dx%d, frame is %dx%d",
			ErrDimensionMismatch, e.width, e.height, frame.Width(), frame.Height())
	}

	e.frames = append(e.frames, frame)

	return nil
}

// EncodeTo writes the header and one chunk per queued frame to w. The queue
// is drained only after every write succeeds. With no frames queued the
// header declares zero frames and zero dimensions.
func (e *Encoder) EncodeTo(w io.Writer) error {
	width, err := u16FromInt(e.width)
	if err != nil {
		return err
	}
	height, err := u16FromInt(e.height)
	if err != nil {
		return err
	}

	header := NewHeader(len(e.frames), width, height)
	if _, err := w.Write(header.appendTo(nil)); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteHeader, err)
	}

	var scratch []byte
	for i, frame := range e.frames {
		scratch, err = appendChunk(scratch[:0], frame)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		if _, err := w.Write(scratch); err != nil {
			return fmt.Errorf("%w: frame %d: %v", ErrWriteChunk, i, err)
		}
	}

	e.frames = e.frames[:0]
	e.width = 0
	e.height = 0

	return nil
}

// EncodeToBytes encodes the queued frames into a fresh byte slice.
func (e *Encoder) EncodeToBytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := e.EncodeTo(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// appendChunk appends one encoded chunk for frame, picking whichever of the
// two encodings is smaller in total bytes. Ties go to uncompressed, which
// decodes as a single bulk copy.
func appendChunk(dst []byte, frame *bitgrid.Grid) ([]byte, error) {
	payload := frame.Bytes()
	compression := CompressionNone

	rle := appendRunLengths(nil, frame)
	if len(rle) < len(payload) {
		payload = rle
		compression = CompressionRunLength
	}

	size, err := u16FromInt(len(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %d payload bytes", ErrFrameTooLarge, len(payload))
	}

	chunk := ChunkHeader{
		Kind:        ChunkKindFrame,
		PayloadSize: size,
		Compression: compression,
	}
	dst = chunk.appendTo(dst)

	return append(dst, payload...), nil
}
