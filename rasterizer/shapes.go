package rasterizer

import (
	"image"
	"image/color"
	"image/draw"
)

// fillEllipse paints the ellipse inscribed in rect onto img. Pixels are
// tested at their centers against the ellipse equation, so the edge is
// hard with no anti-aliasing and pixels outside stay untouched.
func fillEllipse(img *image.NRGBA, rect image.Rectangle, fill color.NRGBA) {
	rx := float64(rect.Dx()) / 2
	ry := float64(rect.Dy()) / 2
	if rx <= 0 || ry <= 0 {
		return
	}
	cx := float64(rect.Min.X+rect.Max.X) / 2
	cy := float64(rect.Min.Y+rect.Max.Y) / 2

	clip := rect.Intersect(img.Bounds())
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		dy := (float64(y) + 0.5 - cy) / ry
		for x := clip.Min.X; x < clip.Max.X; x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			if dx*dx+dy*dy <= 1 {
				img.SetNRGBA(x, y, fill)
			}
		}
	}
}

// fillRect paints rect onto img, clipped to the image bounds.
func fillRect(img *image.NRGBA, rect image.Rectangle, fill color.NRGBA) {
	draw.Draw(img, rect.Intersect(img.Bounds()), image.NewUniform(fill), image.Point{}, draw.Src)
}
