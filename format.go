package bitvideo

import (
	"encoding/binary"
)

// Magic is the 12-byte stream marker: "BITVIDEO" followed by a UTF-8 apple.
const Magic = "BITVIDEO\xf0\x9f\x8d\x8e"

// Version is the single stream version this package reads and writes.
const Version uint32 = 1

const (
	// HeaderSize is the fixed encoded size of a stream header.
	HeaderSize = 128
	// ChunkHeaderSize is the fixed encoded size of a chunk header.
	ChunkHeaderSize = 6

	// MaxPayloadSize is the largest chunk payload the 16-bit size field can
	// describe.
	MaxPayloadSize = int(^uint16(0))
)

// CompressionKind tags how a chunk payload encodes its frame.
type CompressionKind uint8

const (
	// CompressionNone stores the frame's packed bytes verbatim.
	CompressionNone CompressionKind = 0
	// CompressionRunLength stores alternating run lengths of unset and set
	// pixels, scanned row-major, always starting with an unset run.
	CompressionRunLength CompressionKind = 1
)

// ChunkKind tags what a chunk carries.
type ChunkKind uint16

// ChunkKindFrame is the only chunk kind currently defined: one encoded
// frame.
const ChunkKindFrame ChunkKind = 1

// Header is a decoded stream header. The 104 reserved bytes after the fixed
// fields are zero on write and ignored on read.
type Header struct {
	Magic      [12]byte
	Version    uint32
	FrameCount uint32
	Width      uint16
	Height     uint16
}

// NewHeader returns a header for the current version with the reserved
// region implied zero.
func NewHeader(frameCount int, width, height uint16) Header {
	h := Header{
		Version:    Version,
		FrameCount: uint32(frameCount), // #nosec G115 -- frame counts are bounded by callers
		Width:      width,
		Height:     height,
	}
	copy(h.Magic[:], Magic)

	return h
}

// ParseHeader decodes a header from the front of b. It returns false when
// fewer than HeaderSize bytes are available and performs no semantic
// validation; callers check magic and version separately.
func ParseHeader(b []byte) (Header, bool) {
	if len(b) < HeaderSize {
		return Header{}, false
	}

	var h Header
	copy(h.Magic[:], b[:12])
	h.Version = binary.LittleEndian.Uint32(b[12:16])
	h.FrameCount = binary.LittleEndian.Uint32(b[16:20])
	h.Width = binary.LittleEndian.Uint16(b[20:22])
	h.Height = binary.LittleEndian.Uint16(b[22:24])

	return h, true
}

// appendTo appends the 128-byte encoding of h, reserved region zeroed.
func (h Header) appendTo(dst []byte) []byte {
	var buf [HeaderSize]byte
	copy(buf[:12], h.Magic[:])
	binary.LittleEndian.PutUint32(buf[12:16], h.Version)
	binary.LittleEndian.PutUint32(buf[16:20], h.FrameCount)
	binary.LittleEndian.PutUint16(buf[20:22], h.Width)
	binary.LittleEndian.PutUint16(buf[22:24], h.Height)

	return append(dst, buf[:]...)
}

// validMagic reports whether the header carries the expected magic.
func (h Header) validMagic() bool {
	return string(h.Magic[:]) == Magic
}

// ChunkHeader is the decoded common prefix of one chunk. PayloadSize counts
// the bytes following the full chunk header.
type ChunkHeader struct {
	Kind          ChunkKind
	PayloadSize   uint16
	Compression   CompressionKind
	BackgroundSet bool
}

// ParseChunkHeader decodes a chunk header from the front of b. It returns
// false when fewer than ChunkHeaderSize bytes are available.
func ParseChunkHeader(b []byte) (ChunkHeader, bool) {
	if len(b) < ChunkHeaderSize {
		return ChunkHeader{}, false
	}

	return ChunkHeader{
		Kind:          ChunkKind(binary.LittleEndian.Uint16(b[0:2])),
		PayloadSize:   binary.LittleEndian.Uint16(b[2:4]),
		Compression:   CompressionKind(b[4]),
		BackgroundSet: b[5] != 0,
	}, true
}

// appendTo appends the 6-byte encoding of c.
func (c ChunkHeader) appendTo(dst []byte) []byte {
	var buf [ChunkHeaderSize]byte
	binary.LittleEndian.PutUint16(buf[0:2], uint16(c.Kind))
	binary.LittleEndian.PutUint16(buf[2:4], c.PayloadSize)
	buf[4] = byte(c.Compression)
	if c.BackgroundSet {
		buf[5] = 1
	}

	return append(dst, buf[:]...)
}

// packedLength is the byte length of a grid's packed buffer for the given
// dimensions.
func packedLength(width, height int) int {
	return ((width + 7) / 8) * height
}
