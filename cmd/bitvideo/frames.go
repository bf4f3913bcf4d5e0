package main

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/wmarlow/bitvideo/bitgrid"
)

// framePattern matches numbered frame files like "bad_apple_1234.png".
var framePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]*?([0-9]+)\.(png|gif|jpg|jpeg)$`)

type frameFile struct {
	id   int
	path string
}

// findFrameFiles lists numbered image files in dir, ordered by frame index.
// Duplicate indices are an error; gaps only warrant a warning.
func findFrameFiles(dir string, logger *log.Logger) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []frameFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := framePattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		id, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		files = append(files, frameFile{id: id, path: filepath.Join(dir, e.Name())})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].id < files[j].id })

	paths := make([]string, 0, len(files))
	for i, f := range files {
		if i > 0 && f.id == files[i-1].id {
			return nil, fmt.Errorf("duplicate frame index %d: %s and %s", f.id, files[i-1].path, f.path)
		}
		if i > 0 && f.id != files[i-1].id+1 {
			logger.Printf("[WARNING] missing frames between %d and %d", files[i-1].id, f.id)
		}
		paths = append(paths, f.path)
	}

	return paths, nil
}

// resolveDimensions picks output dimensions from the flags and the first
// frame's size, preserving aspect ratio when only one flag is given.
func resolveDimensions(optWidth, optHeight, imgWidth, imgHeight int) (int, int) {
	switch {
	case optWidth <= 0 && optHeight <= 0:
		return imgWidth, imgHeight
	case optWidth > 0 && optHeight > 0:
		return optWidth, optHeight
	case optWidth > 0:
		ratio := float64(imgWidth) / float64(imgHeight)
		return optWidth, int(float64(optWidth) / ratio)
	default:
		ratio := float64(imgWidth) / float64(imgHeight)
		return int(float64(optHeight) * ratio), optHeight
	}
}

// loadFrames decodes every image, resizes with nearest-neighbor sampling,
// and thresholds luma into packed grids. All frames must share the first
// frame's dimensions.
func loadFrames(paths []string, optWidth, optHeight, threshold int) ([]*bitgrid.Grid, error) {
	var frames []*bitgrid.Grid
	var width, height int
	var srcW, srcH int

	for i, path := range paths {
		img, err := loadImage(path)
		if err != nil {
			return nil, err
		}

		bounds := img.Bounds()
		if i == 0 {
			srcW, srcH = bounds.Dx(), bounds.Dy()
			width, height = resolveDimensions(optWidth, optHeight, srcW, srcH)
		} else if bounds.Dx() != srcW || bounds.Dy() != srcH {
			return nil, fmt.Errorf("frame %s is %dx%d, first frame was %dx%d",
				path, bounds.Dx(), bounds.Dy(), srcW, srcH)
		}

		frames = append(frames, rasterize(img, width, height, threshold))
	}

	return frames, nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// rasterize samples img at width x height (nearest neighbor) and sets every
// cell whose luma clears the threshold.
func rasterize(img image.Image, width, height, threshold int) *bitgrid.Grid {
	bounds := img.Bounds()
	grid := bitgrid.New(width, height)

	for y := 0; y < height; y++ {
		srcY := bounds.Min.Y + y*bounds.Dy()/height
		for x := 0; x < width; x++ {
			srcX := bounds.Min.X + x*bounds.Dx()/width
			luma := color.GrayModel.Convert(img.At(srcX, srcY)).(color.Gray).Y
			if int(luma) > threshold {
				grid.Set(x, y, true)
			}
		}
	}

	return grid
}

// renderGray draws a grid into an 8-bit grayscale image, set cells white,
// upscaled by an integer factor.
func renderGray(g *bitgrid.Grid, scale int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.Width()*scale, g.Height()*scale))

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if !g.Get(x, y) {
				continue
			}
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.SetGray(x*scale+dx, y*scale+dy, color.Gray{Y: 0xff})
				}
			}
		}
	}

	return img
}
