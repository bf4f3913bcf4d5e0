package bitvideo

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/wmarlow/bitvideo/bitgrid"
	"github.com/wmarlow/bitvideo/life"
)

func testAnimation(t *testing.T, frames int) []*bitgrid.Grid {
	t.Helper()

	sim := life.New(32, 16)
	sim.WriteRightGlider(2, 2)
	sim.WriteLeftGlider(20, 8)

	out := make([]*bitgrid.Grid, 0, frames)
	for i := 0; i < frames; i++ {
		out = append(out, sim.Grid().Clone())
		sim.Step()
	}
	return out
}

func TestFileRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts *WriteOptions
	}{
		{name: "plain", opts: nil},
		{name: "lz4", opts: &WriteOptions{Compress: true}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			frames := testAnimation(t, 12)
			path := filepath.Join(t.TempDir(), "anim.bin")

			if err := WriteFile(path, frames, tc.opts); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}

			raw, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			wantPrefix := []byte(Magic[:4])
			if tc.opts != nil && tc.opts.Compress {
				wantPrefix = lz4FrameMagic
			}
			if !bytes.HasPrefix(raw, wantPrefix) {
				t.Fatalf("file starts with % x, want % x", raw[:4], wantPrefix)
			}

			dec, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			for i, want := range frames {
				requireFrame(t, dec, i+1, want)
			}
			requireNoMoreFrames(t, dec)
		})
	}
}

func TestReadFileMissing(t *testing.T) {
	t.Parallel()

	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.bin"))
	if !errors.Is(err, ErrOpenFile) {
		t.Fatalf("expected ErrOpenFile, got %v", err)
	}
}

func TestWriteFilePropagatesEncodeErrors(t *testing.T) {
	t.Parallel()

	frames := []*bitgrid.Grid{bitgrid.New(8, 8), bitgrid.New(9, 8)}
	err := WriteFile(filepath.Join(t.TempDir(), "bad.bin"), frames, nil)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

// failWriter errors after n bytes to exercise write-error propagation.
type failWriter struct {
	n int
}

func (w *failWriter) Write(p []byte) (int, error) {
	if len(p) > w.n {
		n := w.n
		w.n = 0
		return n, io.ErrShortWrite
	}
	w.n -= len(p)
	return len(p), nil
}

func TestEncodeToPropagatesWriteErrors(t *testing.T) {
	t.Parallel()

	enc := NewEncoder()
	if err := enc.Push(bitgrid.New(16, 16)); err != nil {
		t.Fatalf("Push: %v", err)
	}

	if err := enc.EncodeTo(&failWriter{n: 64}); !errors.Is(err, ErrWriteHeader) {
		t.Fatalf("expected ErrWriteHeader, got %v", err)
	}

	// The queue survives a failed encode.
	if enc.FrameCount() != 1 {
		t.Fatalf("FrameCount after failed encode = %d, want 1", enc.FrameCount())
	}

	if err := enc.EncodeTo(&failWriter{n: HeaderSize}); !errors.Is(err, ErrWriteChunk) {
		t.Fatalf("expected ErrWriteChunk, got %v", err)
	}
}
