package bitvideo

import "errors"

var (
	// ErrShortHeader indicates the stream is shorter than a header.
	ErrShortHeader = errors.New("stream shorter than header")
	// ErrBadMagic indicates the stream does not start with the magic.
	ErrBadMagic = errors.New("bad stream magic")
	// ErrUnsupportedVersion indicates a stream version this decoder cannot read.
	ErrUnsupportedVersion = errors.New("unsupported stream version")
	// ErrDimensionsTooLarge indicates header dimensions exceed the grid range.
	ErrDimensionsTooLarge = errors.New("frame dimensions too large")
	// ErrUnknownChunkKind indicates an unrecognized chunk kind tag.
	ErrUnknownChunkKind = errors.New("unknown chunk kind")
	// ErrUnknownCompression indicates an unrecognized compression tag.
	ErrUnknownCompression = errors.New("unknown compression kind")
	// ErrPayloadSizeMismatch indicates an uncompressed payload that does not
	// match the frame's packed byte length.
	ErrPayloadSizeMismatch = errors.New("payload size mismatch")
	// ErrRunOverflow indicates run-length data describing more cells than the
	// frame holds.
	ErrRunOverflow = errors.New("run-length data overruns frame")
	// ErrFrameTooLarge indicates a frame whose encoding exceeds the 16-bit
	// payload size field.
	ErrFrameTooLarge = errors.New("frame too large to encode")
	// ErrDimensionMismatch indicates a pushed frame whose dimensions differ
	// from the stream's.
	ErrDimensionMismatch = errors.New("frame dimension mismatch")
	// ErrWriteHeader indicates the stream header write failed.
	ErrWriteHeader = errors.New("writing stream header failed")
	// ErrWriteChunk indicates a chunk write failed.
	ErrWriteChunk = errors.New("writing chunk failed")
	// ErrOpenFile indicates a stream file open failed.
	ErrOpenFile = errors.New("open file failed")
	// ErrCreateFile indicates a stream file creation failed.
	ErrCreateFile = errors.New("create file failed")
	// ErrCompressStream indicates LZ4 wrapping of a stream file failed.
	ErrCompressStream = errors.New("compressing stream failed")
	// ErrDecompressStream indicates LZ4 unwrapping of a stream file failed.
	ErrDecompressStream = errors.New("decompressing stream failed")
)
