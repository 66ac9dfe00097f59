package rasterizer

import (
	"fmt"
	"image"
	"image/color"
	"time"
)

// DefaultSizes lists the icon sizes the extension manifest references,
// in generation order.
var DefaultSizes = []int{16, 48, 128}

// Fill colors of the icon artwork. The circle uses the product accent
// color, the inset square is plain white.
var (
	BackgroundFill = color.NRGBA{R: 0x00, G: 0x7a, B: 0xcc, A: 0xff}
	InsetFill      = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// FileName returns the conventional file name for an icon of the given
// size, e.g. "icon48.png".
func FileName(size int) string {
	return fmt.Sprintf("icon%d.png", size)
}

// Icon is a rendered icon ready for encoding.
type Icon struct {
	Size  int
	Image *image.NRGBA
}

// IconInfo describes one written icon file.
type IconInfo struct {
	Size  int    `json:"size"`
	Path  string `json:"path"`
	Bytes int64  `json:"bytes"`
}

// Result holds the outcome of a generation run.
type Result struct {
	Icons      []IconInfo `json:"icons"`
	ICOPath    string     `json:"ico_path,omitempty"`
	TotalBytes int64      `json:"total_bytes"`
	StartTime  time.Time  `json:"start_time"`
	EndTime    time.Time  `json:"end_time"`
}

// Count returns the number of icon files written.
func (r *Result) Count() int {
	return len(r.Icons)
}

// Duration returns the elapsed generation time.
func (r *Result) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}
