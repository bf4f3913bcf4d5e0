package bitvideo

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pierrec/lz4/v4"

	"github.com/wmarlow/bitvideo/bitgrid"
)

// lz4FrameMagic prefixes LZ4-wrapped stream files. A bare stream can never
// collide with it since streams start with "BITV".
var lz4FrameMagic = []byte{0x04, 0x22, 0x4d, 0x18}

// WriteOptions configures WriteFile.
type WriteOptions struct {
	// Compress wraps the encoded stream in an LZ4 frame on disk. The stream
	// format itself is unchanged; ReadFile unwraps transparently.
	Compress bool
}

// WriteFile encodes frames and writes the stream to path. Nil opts writes
// the bare stream.
func WriteFile(path string, frames []*bitgrid.Grid, opts *WriteOptions) error {
	enc := NewEncoder()
	for _, frame := range frames {
		if err := enc.Push(frame); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrCreateFile, path, err)
	}
	defer func() { _ = f.Close() }()

	if opts == nil || !opts.Compress {
		return enc.EncodeTo(f)
	}

	zw := lz4.NewWriter(f)
	if err := enc.EncodeTo(zw); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrCompressStream, path, err)
	}

	return nil
}

// ReadStream loads the raw stream bytes from path, unwrapping an LZ4 frame
// when present.
func ReadStream(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}

	if bytes.HasPrefix(data, lz4FrameMagic) {
		data, err = io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrDecompressStream, path, err)
		}
	}

	return data, nil
}

// ReadFile loads a stream file, unwrapping an LZ4 frame when present, and
// returns a decoder over it.
func ReadFile(path string) (*Decoder, error) {
	data, err := ReadStream(path)
	if err != nil {
		return nil, err
	}

	return NewDecoder(data)
}
