// Package rasterizer renders the browser extension icon set: a solid
// accent-colored circle with an inset white square, written as PNG
// files named icon{size}.png.
package rasterizer

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

var (
	ErrInvalidSize = errors.New("icon size must be positive")
	ErrNoSizes     = errors.New("no icon sizes configured")
)

// Config holds generation settings.
type Config struct {
	// OutputDir is the directory icon files are written into.
	OutputDir string
	// Sizes are the icon sizes to generate, in order.
	Sizes []int
	// WriteICO additionally bundles the generated set into icon.ico.
	WriteICO bool
	// OnCreated is called after each icon file has been written.
	OnCreated func(IconInfo)
}

// DefaultConfig returns the default generation settings: the standard
// size set, written into the current directory.
func DefaultConfig() *Config {
	return &Config{
		OutputDir: ".",
		Sizes:     append([]int(nil), DefaultSizes...),
	}
}

// Generator renders and writes icon sets.
type Generator struct {
	config *Config
}

// NewGenerator creates a generator with default settings.
func NewGenerator() *Generator {
	return &Generator{config: DefaultConfig()}
}

// SetOutputDir sets the directory icon files are written into.
func (g *Generator) SetOutputDir(dir string) {
	if dir != "" {
		g.config.OutputDir = dir
	}
}

// SetSizes replaces the icon sizes to generate.
func (g *Generator) SetSizes(sizes []int) {
	g.config.Sizes = append([]int(nil), sizes...)
}

// SetWriteICO toggles bundling the generated set into icon.ico.
func (g *Generator) SetWriteICO(enabled bool) {
	g.config.WriteICO = enabled
}

// SetOnCreated sets the callback invoked after each written icon.
func (g *Generator) SetOnCreated(callback func(IconInfo)) {
	g.config.OnCreated = callback
}

// Render draws a single icon: a fully transparent square canvas, the
// circle inscribed in the full canvas bounding box filled with
// BackgroundFill, and an axis-aligned InsetFill square whose corner
// pixels sit at (margin, margin) and (size-margin, size-margin), both
// inclusive, where margin is a quarter of the size rounded down. The
// square paints over the circle without blending.
func Render(size int) (*image.NRGBA, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	fillEllipse(img, img.Bounds(), BackgroundFill)

	margin := size / 4
	fillRect(img, image.Rect(margin, margin, size-margin+1, size-margin+1), InsetFill)

	return img, nil
}

// RenderIcon is Render wrapped into an Icon value.
func RenderIcon(size int) (*Icon, error) {
	img, err := Render(size)
	if err != nil {
		return nil, err
	}
	return &Icon{Size: size, Image: img}, nil
}

// WriteIcon renders one icon and writes it to the configured output
// directory, silently overwriting any existing file.
func (g *Generator) WriteIcon(size int) (IconInfo, error) {
	img, err := Render(size)
	if err != nil {
		return IconInfo{}, err
	}

	path := filepath.Join(g.config.OutputDir, FileName(size))
	f, err := os.Create(path)
	if err != nil {
		return IconInfo{}, fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return IconInfo{}, fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return IconInfo{}, fmt.Errorf("failed to close %s: %w", path, err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return IconInfo{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return IconInfo{Size: size, Path: path, Bytes: stat.Size()}, nil
}

// Generate writes the configured icon set sequentially, in the
// configured order, aborting on the first error. Files already written
// before a failure are left on disk.
func (g *Generator) Generate() (*Result, error) {
	if len(g.config.Sizes) == 0 {
		return nil, ErrNoSizes
	}

	result := &Result{StartTime: time.Now()}
	for _, size := range g.config.Sizes {
		info, err := g.WriteIcon(size)
		if err != nil {
			return nil, err
		}
		result.Icons = append(result.Icons, info)
		result.TotalBytes += info.Bytes

		if g.config.OnCreated != nil {
			g.config.OnCreated(info)
		}
	}

	if g.config.WriteICO {
		paths := make([]string, 0, len(result.Icons))
		for _, info := range result.Icons {
			paths = append(paths, info.Path)
		}
		icoPath := filepath.Join(g.config.OutputDir, ICOFileName)
		if err := WriteICO(icoPath, paths); err != nil {
			return nil, err
		}
		result.ICOPath = icoPath
	}

	result.EndTime = time.Now()
	return result, nil
}
