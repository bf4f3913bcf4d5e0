package bitvideo

import (
	"fmt"

	"github.com/wmarlow/bitvideo/bitgrid"
)

// appendRunLengths appends the run-length encoding of g to dst.
//
// The frame is scanned row-major. Each byte is one run length, runs
// alternate color starting with unset, and the leading unset run may be
// zero. A run longer than 255 cells is split into full runs joined by
// zero-length runs of the opposite color, so alternation survives: 300
// unset cells encode as [255, 0, 45].
func appendRunLengths(dst []byte, g *bitgrid.Grid) []byte {
	cur := false
	run := 0

	flush := func(final bool) {
		for run > 255 {
			dst = append(dst, 255, 0)
			run -= 255
		}
		if run > 0 || !final {
			dst = append(dst, byte(run))
		}
		run = 0
	}

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if g.Get(x, y) != cur {
				flush(false)
				cur = !cur
				run = 1
			} else {
				run++
			}
		}
	}
	flush(true)

	return dst
}

// decodeRunLengths replays run-length data into g, which must already be
// cleared. Payload bytes pair up as [unset, set]; a missing trailing set
// count reads as zero.
func decodeRunLengths(payload []byte, g *bitgrid.Grid) error {
	width := g.Width()
	total := width * g.Height()
	pos := 0

	for i := 0; i < len(payload); i += 2 {
		unset := int(payload[i])
		set := 0
		if i+1 < len(payload) {
			set = int(payload[i+1])
		}

		pos += unset
		if pos+set > total {
			return fmt.Errorf("%w: %d cells described, frame holds %d", ErrRunOverflow, pos+set, total)
		}

		for j := 0; j < set; j++ {
			g.Set(pos%width, pos/width, true)
			pos++
		}
	}

	return nil
}
