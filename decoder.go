package bitvideo

import (
	"fmt"
	"io"

	"github.com/wmarlow/bitvideo/bitgrid"
)

// Frame is a view of one decoded frame. Bitmap points at the decoder's
// persistent framebuffer and is only valid until the next call to NextFrame
// or Reset, which overwrite it in place.
type Frame struct {
	// ID is the 1-based position of the frame in the stream.
	ID int

	Bitmap *bitgrid.Grid

	// BackgroundSet carries the chunk's background byte: when true, set
	// pixels are the background color for display purposes.
	BackgroundSet bool
}

// Decoder streams frames out of an encoded buffer.
//
// The whole input must be resident: the decoder keeps a cursor into it and
// decodes one chunk per NextFrame call into a single framebuffer allocated
// at construction. Reset rewinds for another full replay without
// allocating.
//
// A Decoder is not safe for concurrent use.
type Decoder struct {
	stream   []byte
	cursor   int
	header   Header
	bitmap   *bitgrid.Grid
	frameNum int
}

// NewDecoder parses and validates the stream header and allocates the
// decoder's framebuffer. Header validation failures are fatal: a stream
// with the wrong magic or version is a mismatched build artifact, not
// something to retry.
func NewDecoder(stream []byte) (*Decoder, error) {
	header, ok := ParseHeader(stream)
	if !ok {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", ErrShortHeader, len(stream), HeaderSize)
	}
	if !header.validMagic() {
		return nil, ErrBadMagic
	}
	if header.Version != Version {
		return nil, fmt.Errorf("%w: stream has %d, decoder supports %d",
			ErrUnsupportedVersion, header.Version, Version)
	}
	if int(header.Width) > bitgrid.MaxDimension || int(header.Height) > bitgrid.MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrDimensionsTooLarge, header.Width, header.Height)
	}

	return &Decoder{
		stream: stream,
		cursor: HeaderSize,
		header: header,
		bitmap: bitgrid.New(int(header.Width), int(header.Height)),
	}, nil
}

// Header returns the stream header. FrameCount is informational; the
// decoder does not enforce it against the actual chunk count.
func (d *Decoder) Header() Header {
	return d.header
}

// IsFinished reports whether the cursor sits at the end of the stream.
func (d *Decoder) IsFinished() bool {
	return d.cursor == len(d.stream)
}

// Reset rewinds the cursor to the first chunk, clears the framebuffer, and
// restarts frame numbering, enabling looped playback with no allocation.
func (d *Decoder) Reset() {
	d.cursor = HeaderSize
	d.bitmap.Clear()
	d.frameNum = 0
}

// next slices off the next n bytes and advances the cursor. When fewer than
// n bytes remain it pins the cursor at the end and returns nil.
func (d *Decoder) next(n int) []byte {
	if n > len(d.stream)-d.cursor {
		d.cursor = len(d.stream)
		return nil
	}

	b := d.stream[d.cursor : d.cursor+n]
	d.cursor += n

	return b
}

// NextFrame decodes the next chunk into the persistent framebuffer and
// returns a view of it. It returns io.EOF once the stream is exhausted,
// including when the remaining bytes are too short to hold the chunk a
// header declares; every later call keeps returning io.EOF until Reset.
// Other errors mean the stream is corrupt or incompatible and decoding
// should not continue.
func (d *Decoder) NextFrame() (Frame, error) {
	raw := d.next(ChunkHeaderSize)
	if raw == nil {
		return Frame{}, io.EOF
	}

	chunk, _ := ParseChunkHeader(raw)
	if chunk.Kind != ChunkKindFrame {
		return Frame{}, fmt.Errorf("%w: %d", ErrUnknownChunkKind, chunk.Kind)
	}

	payload := d.next(int(chunk.PayloadSize))
	if payload == nil {
		return Frame{}, io.EOF
	}

	switch chunk.Compression {
	case CompressionNone:
		if len(payload) != len(d.bitmap.Bytes()) {
			return Frame{}, fmt.Errorf("%w: payload is %d bytes, frame needs %d",
				ErrPayloadSizeMismatch, len(payload), len(d.bitmap.Bytes()))
		}
		copy(d.bitmap.Bytes(), payload)
	case CompressionRunLength:
		d.bitmap.Clear()
		if err := decodeRunLengths(payload, d.bitmap); err != nil {
			return Frame{}, err
		}
	default:
		return Frame{}, fmt.Errorf("%w: %d", ErrUnknownCompression, chunk.Compression)
	}

	d.frameNum++

	return Frame{
		ID:            d.frameNum,
		Bitmap:        d.bitmap,
		BackgroundSet: chunk.BackgroundSet,
	}, nil
}
