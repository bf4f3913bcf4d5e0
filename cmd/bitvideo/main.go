package main

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/urfave/cli/v2"

	"github.com/wmarlow/bitvideo"
	"github.com/wmarlow/bitvideo/bitgrid"
)

func main() {
	app := &cli.App{
		Name:  "bitvideo",
		Usage: "encode, inspect, and play 1-bit bitmap animations",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "increase verbosity",
			},
		},
		Commands: []*cli.Command{
			encodeCommand(),
			infoCommand(),
			playCommand(),
			exportCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func encodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "encode",
		Usage:     "Encode a directory of numbered image frames into a stream",
		ArgsUsage: "DIR",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "out.bin",
				Usage:   "output stream path",
			},
			&cli.IntFlag{
				Name:  "width",
				Usage: "resize frames; aspect ratio is kept when --height is omitted",
			},
			&cli.IntFlag{
				Name:  "height",
				Usage: "resize frames; aspect ratio is kept when --width is omitted",
			},
			&cli.IntFlag{
				Name:  "skip-first",
				Usage: "skip the first N frames",
			},
			&cli.IntFlag{
				Name:  "frames",
				Usage: "only take N frames",
			},
			&cli.IntFlag{
				Name:  "rate-div",
				Value: 1,
				Usage: "keep one frame in N to reduce the frame rate",
			},
			&cli.IntFlag{
				Name:  "threshold",
				Value: 128,
				Usage: "luma cutoff above which a pixel is set",
			},
			&cli.BoolFlag{
				Name:    "compress",
				Aliases: []string{"z"},
				Usage:   "wrap the output stream in an LZ4 frame",
			},
		},
		Action: runEncode,
	}
}

func runEncode(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.ShowSubcommandHelp(c)
	}
	logger := newLogger(c)
	dir := c.Args().First()

	paths, err := findFrameFiles(dir, logger)
	if err != nil {
		return cli.Exit(err, 1)
	}
	logger.Printf("found %d frames in %s", len(paths), dir)

	if skip := c.Int("skip-first"); skip > 0 {
		if skip > len(paths) {
			skip = len(paths)
		}
		paths = paths[skip:]
		logger.Printf("skipped first %d frames, %d remain", skip, len(paths))
	}

	if div := c.Int("rate-div"); div > 1 {
		kept := paths[:0]
		for i, p := range paths {
			if i%div == 0 {
				kept = append(kept, p)
			}
		}
		paths = kept
		logger.Printf("dropped to 1 in %d frames, %d remain", div, len(paths))
	}

	if take := c.Int("frames"); take > 0 && take < len(paths) {
		paths = paths[:take]
		logger.Printf("truncated to %d frames", len(paths))
	}

	if len(paths) == 0 {
		return cli.Exit(fmt.Errorf("no frames to encode in %q", dir), 1)
	}

	frames, err := loadFrames(paths, c.Int("width"), c.Int("height"), c.Int("threshold"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	logger.Printf("frames are %dx%d (%d packed bytes each)",
		frames[0].Width(), frames[0].Height(), len(frames[0].Bytes()))

	opts := &bitvideo.WriteOptions{Compress: c.Bool("compress")}
	output := c.String("output")
	if err := bitvideo.WriteFile(output, frames, opts); err != nil {
		return cli.Exit(err, 1)
	}

	st, err := os.Stat(output)
	if err != nil {
		return cli.Exit(err, 1)
	}
	logger.Printf("wrote %d frames to %s (%d bytes)", len(frames), output, st.Size())

	return nil
}

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "Print stream header and chunk breakdown",
		ArgsUsage: "FILE",
		Action:    runInfo,
	}
}

func runInfo(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.ShowSubcommandHelp(c)
	}
	path := c.Args().First()

	stream, err := bitvideo.ReadStream(path)
	if err != nil {
		return cli.Exit(err, 1)
	}
	// Validates magic, version, and dimensions up front.
	dec, err := bitvideo.NewDecoder(stream)
	if err != nil {
		return cli.Exit(err, 1)
	}

	header := dec.Header()
	fmt.Printf("version:     %d\n", header.Version)
	fmt.Printf("frames:      %d\n", header.FrameCount)
	fmt.Printf("dimensions:  %dx%d\n", header.Width, header.Height)
	fmt.Printf("stream size: %d bytes\n", len(stream))

	var raw, rle, other, payload int
	for off := bitvideo.HeaderSize; off < len(stream); {
		chunk, ok := bitvideo.ParseChunkHeader(stream[off:])
		if !ok {
			fmt.Printf("truncated chunk header at offset %d\n", off)
			break
		}
		switch chunk.Compression {
		case bitvideo.CompressionNone:
			raw++
		case bitvideo.CompressionRunLength:
			rle++
		default:
			other++
		}
		payload += int(chunk.PayloadSize)
		off += bitvideo.ChunkHeaderSize + int(chunk.PayloadSize)
	}

	fmt.Printf("chunks:      %d uncompressed, %d run-length", raw, rle)
	if other > 0 {
		fmt.Printf(", %d unknown", other)
	}
	fmt.Printf("\npayload:     %d bytes\n", payload)

	return nil
}

func playCommand() *cli.Command {
	return &cli.Command{
		Name:      "play",
		Usage:     "Play a stream as ASCII art in the terminal",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "fps",
				Value: 15,
				Usage: "playback frame rate",
			},
			&cli.BoolFlag{
				Name:  "loop",
				Usage: "restart from the first frame at end of stream",
			},
		},
		Action: runPlay,
	}
}

func runPlay(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.ShowSubcommandHelp(c)
	}

	dec, err := bitvideo.ReadFile(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}

	fps := c.Int("fps")
	if fps < 1 {
		fps = 1
	}
	delay := time.Second / time.Duration(fps)

	fmt.Print("\x1b[2J")
	for {
		frame, err := dec.NextFrame()
		if err == io.EOF {
			if !c.Bool("loop") {
				return nil
			}
			dec.Reset()
			continue
		}
		if err != nil {
			return cli.Exit(err, 1)
		}

		fmt.Print("\x1b[H")
		fmt.Print(renderASCII(frame.Bitmap, frame.BackgroundSet))
		time.Sleep(delay)
	}
}

// renderASCII draws set cells as '#' blocks, or inverted when the chunk
// marks set pixels as the background.
func renderASCII(g *bitgrid.Grid, backgroundSet bool) string {
	var sb strings.Builder
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if g.Get(x, y) != backgroundSet {
				sb.WriteString("##")
			} else {
				sb.WriteString("..")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export decoded frames as PNG files",
		ArgsUsage: "FILE DIR",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "scale",
				Value: 1,
				Usage: "integer upscale factor for the written images",
			},
		},
		Action: runExport,
	}
}

func runExport(c *cli.Context) error {
	if c.NArg() < 2 {
		return cli.ShowSubcommandHelp(c)
	}
	logger := newLogger(c)

	dec, err := bitvideo.ReadFile(c.Args().Get(0))
	if err != nil {
		return cli.Exit(err, 1)
	}

	dir := c.Args().Get(1)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return cli.Exit(err, 1)
	}

	scale := c.Int("scale")
	if scale < 1 {
		scale = 1
	}

	count := 0
	for {
		frame, err := dec.NextFrame()
		if err == io.EOF {
			break
		}
		if err != nil {
			return cli.Exit(err, 1)
		}

		path := filepath.Join(dir, fmt.Sprintf("frame_%04d.png", frame.ID))
		if err := writePNG(path, renderGray(frame.Bitmap, scale)); err != nil {
			return cli.Exit(err, 1)
		}
		count++
	}
	logger.Printf("exported %d frames to %s", count, dir)

	return nil
}

func writePNG(path string, img *image.Gray) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return png.Encode(f, img)
}
