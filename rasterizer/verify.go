package rasterizer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// CheckStatus is the outcome of a single verification check
type CheckStatus string

const (
	StatusPass CheckStatus = "pass"
	StatusFail CheckStatus = "fail"
	StatusSkip CheckStatus = "skip"
)

// Severity ranks how badly a failing check breaks the icon contract
type Severity string

const (
	SeverityCritical Severity = "CRITICAL" // file unreadable or wrong dimensions
	SeverityHigh     Severity = "HIGH"     // corner or center pixels wrong
	SeverityMedium   Severity = "MEDIUM"   // margin band off by a pixel
)

// Score returns a numeric severity value for sorting
func (s Severity) Score() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityHigh:
		return 2
	case SeverityMedium:
		return 1
	default:
		return 0
	}
}

// Check is one verification check performed on an icon file
type Check struct {
	Name     string      `json:"name"`
	Status   CheckStatus `json:"status"`
	Severity Severity    `json:"severity"`
	Detail   string      `json:"detail,omitempty"`
}

// IconReport collects the checks for a single icon file
type IconReport struct {
	Path   string  `json:"path"`
	Size   int     `json:"size"`   // expected edge length
	Width  int     `json:"width"`  // decoded width, 0 if undecodable
	Height int     `json:"height"` // decoded height, 0 if undecodable
	Checks []Check `json:"checks"`
}

// Passed reports whether every check on this icon passed or was skipped
func (r *IconReport) Passed() bool {
	for _, c := range r.Checks {
		if c.Status == StatusFail {
			return false
		}
	}
	return true
}

// Failures returns the failing checks, most severe first
func (r *IconReport) Failures() []Check {
	var failed []Check
	for _, c := range r.Checks {
		if c.Status == StatusFail {
			failed = append(failed, c)
		}
	}
	sort.SliceStable(failed, func(i, j int) bool {
		return failed[i].Severity.Score() > failed[j].Severity.Score()
	})
	return failed
}

// SetReport is the verification outcome for a whole icon set
type SetReport struct {
	Dir          string        `json:"dir"`
	Icons        []*IconReport `json:"icons"`
	ChecksRun    int           `json:"checks_run"`
	ChecksFailed int           `json:"checks_failed"`
	StartTime    time.Time     `json:"start_time"`
	EndTime      time.Time     `json:"end_time"`
}

// Passed reports whether the whole set passed verification
func (r *SetReport) Passed() bool {
	return r.ChecksFailed == 0
}

// Duration returns the elapsed verification time
func (r *SetReport) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// Verifier checks written icon files against the pixel contract: exact
// dimensions, transparent corners, a white center and the quarter-size
// margin of the inset square.
type Verifier struct {
	dir   string
	sizes []int
}

// NewVerifier creates a verifier for the standard icon set in the
// current directory.
func NewVerifier() *Verifier {
	return &Verifier{
		dir:   ".",
		sizes: append([]int(nil), DefaultSizes...),
	}
}

// SetDir sets the directory holding the icon files.
func (v *Verifier) SetDir(dir string) {
	if dir != "" {
		v.dir = dir
	}
}

// SetSizes replaces the icon sizes to verify.
func (v *Verifier) SetSizes(sizes []int) {
	v.sizes = append([]int(nil), sizes...)
}

// VerifySet verifies icon{size}.png for every configured size. Missing
// or broken files produce failing reports rather than errors.
func (v *Verifier) VerifySet() (*SetReport, error) {
	if len(v.sizes) == 0 {
		return nil, ErrNoSizes
	}

	report := &SetReport{Dir: v.dir, StartTime: time.Now()}
	for _, size := range v.sizes {
		ir := v.VerifyFile(filepath.Join(v.dir, FileName(size)), size)
		report.Icons = append(report.Icons, ir)
		for _, c := range ir.Checks {
			if c.Status != StatusSkip {
				report.ChecksRun++
			}
			if c.Status == StatusFail {
				report.ChecksFailed++
			}
		}
	}
	report.EndTime = time.Now()
	return report, nil
}

// VerifyFile checks a single icon file against the contract for the
// given edge length.
func (v *Verifier) VerifyFile(path string, size int) *IconReport {
	report := &IconReport{Path: path, Size: size}

	data, err := os.ReadFile(path)
	if err != nil {
		report.Checks = append(report.Checks, Check{
			Name:     "readable",
			Status:   StatusFail,
			Severity: SeverityCritical,
			Detail:   fmt.Sprintf("cannot read file: %v", err),
		})
		report.skipRemaining("dimensions", "corners_transparent", "center_white", "inset_margin", "background_ring")
		return report
	}
	report.Checks = append(report.Checks, Check{Name: "readable", Status: StatusPass, Severity: SeverityCritical})

	img, err := decodePNG(data)
	if err != nil {
		report.Checks = append(report.Checks, Check{
			Name:     "png_decodes",
			Status:   StatusFail,
			Severity: SeverityCritical,
			Detail:   err.Error(),
		})
		report.skipRemaining("dimensions", "corners_transparent", "center_white", "inset_margin", "background_ring")
		return report
	}
	report.Checks = append(report.Checks, Check{Name: "png_decodes", Status: StatusPass, Severity: SeverityCritical})

	bounds := img.Bounds()
	report.Width = bounds.Dx()
	report.Height = bounds.Dy()

	if report.Width != size || report.Height != size {
		report.Checks = append(report.Checks, Check{
			Name:     "dimensions",
			Status:   StatusFail,
			Severity: SeverityCritical,
			Detail:   fmt.Sprintf("expected %dx%d, got %dx%d", size, size, report.Width, report.Height),
		})
		report.skipRemaining("corners_transparent", "center_white", "inset_margin", "background_ring")
		return report
	}
	report.Checks = append(report.Checks, Check{Name: "dimensions", Status: StatusPass, Severity: SeverityCritical})

	report.Checks = append(report.Checks, checkCorners(img, size))
	report.Checks = append(report.Checks, checkCenter(img, size))
	report.Checks = append(report.Checks, checkInsetMargin(img, size))
	report.Checks = append(report.Checks, checkBackgroundRing(img, size))
	return report
}

// skipRemaining marks downstream checks as skipped after a critical
// failure.
func (r *IconReport) skipRemaining(names ...string) {
	for _, name := range names {
		r.Checks = append(r.Checks, Check{Name: name, Status: StatusSkip, Severity: SeverityMedium})
	}
}

// decodePNG decodes raw PNG bytes into an image.
func decodePNG(data []byte) (image.Image, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("not a valid PNG: %w", err)
	}
	return img, nil
}

// checkCorners verifies that all four corner pixels are fully
// transparent. The circle never reaches the canvas corners.
func checkCorners(img image.Image, size int) Check {
	corners := []image.Point{
		{0, 0},
		{size - 1, 0},
		{0, size - 1},
		{size - 1, size - 1},
	}
	for _, p := range corners {
		if a := pixelAt(img, p.X, p.Y).A; a != 0 {
			return Check{
				Name:     "corners_transparent",
				Status:   StatusFail,
				Severity: SeverityHigh,
				Detail:   fmt.Sprintf("corner (%d,%d) has alpha %d, expected 0", p.X, p.Y, a),
			}
		}
	}
	return Check{Name: "corners_transparent", Status: StatusPass, Severity: SeverityHigh}
}

// checkCenter verifies that the canvas center pixel is opaque white.
func checkCenter(img image.Image, size int) Check {
	c := pixelAt(img, size/2, size/2)
	if c != InsetFill {
		return Check{
			Name:     "center_white",
			Status:   StatusFail,
			Severity: SeverityHigh,
			Detail:   fmt.Sprintf("center pixel is %v, expected opaque white", c),
		}
	}
	return Check{Name: "center_white", Status: StatusPass, Severity: SeverityHigh}
}

// checkInsetMargin verifies the extent of the white square: its corner
// pixels at (margin, margin) and (size-margin, size-margin) must be
// white, and the diagonal neighbours just outside must still be the
// circle fill.
func checkInsetMargin(img image.Image, size int) Check {
	margin := size / 4
	if margin < 1 || size-margin+1 >= size {
		return Check{Name: "inset_margin", Status: StatusSkip, Severity: SeverityMedium}
	}

	inside := []image.Point{
		{margin, margin},
		{size - margin, size - margin},
	}
	for _, p := range inside {
		if c := pixelAt(img, p.X, p.Y); c != InsetFill {
			return Check{
				Name:     "inset_margin",
				Status:   StatusFail,
				Severity: SeverityMedium,
				Detail:   fmt.Sprintf("square corner (%d,%d) is %v, expected white", p.X, p.Y, c),
			}
		}
	}

	// Outside the square the pixel may be circle fill or, near the
	// edge, transparent. It must never be white.
	outside := []image.Point{
		{margin - 1, margin - 1},
		{size - margin + 1, size - margin + 1},
	}
	for _, p := range outside {
		if c := pixelAt(img, p.X, p.Y); c == InsetFill {
			return Check{
				Name:     "inset_margin",
				Status:   StatusFail,
				Severity: SeverityMedium,
				Detail:   fmt.Sprintf("square extends beyond its margin at (%d,%d)", p.X, p.Y),
			}
		}
	}
	return Check{Name: "inset_margin", Status: StatusPass, Severity: SeverityMedium}
}

// checkBackgroundRing verifies that the band between the square and the
// circle edge keeps the circle fill, probing above the square on the
// vertical center line.
func checkBackgroundRing(img image.Image, size int) Check {
	margin := size / 4
	y := margin / 2
	if margin < 2 {
		return Check{Name: "background_ring", Status: StatusSkip, Severity: SeverityMedium}
	}
	if c := pixelAt(img, size/2, y); c != BackgroundFill {
		return Check{
			Name:     "background_ring",
			Status:   StatusFail,
			Severity: SeverityMedium,
			Detail:   fmt.Sprintf("pixel (%d,%d) is %v, expected circle fill", size/2, y, c),
		}
	}
	return Check{Name: "background_ring", Status: StatusPass, Severity: SeverityMedium}
}

// pixelAt returns the straight-alpha color of a pixel.
func pixelAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}
