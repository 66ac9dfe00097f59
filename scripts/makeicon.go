// +build ignore

package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		os.Args = append(os.Args, "Icon.png")
	}

	// Create a 512x512 app icon: the product motif at desktop size
	img := image.NewRGBA(image.Rect(0, 0, 512, 512))

	circleColor := color.RGBA{0, 122, 204, 255}
	squareColor := color.RGBA{255, 255, 255, 255}
	rimColor := color.RGBA{0, 90, 158, 255}

	// Blue disc with a darker rim, transparent outside
	cx, cy := 256, 256
	radius := 256
	rim := 14

	for y := 0; y < 512; y++ {
		for x := 0; x < 512; x++ {
			dx := x - cx
			dy := y - cy
			dist := dx*dx + dy*dy

			inner := (radius - rim) * (radius - rim)
			outer := radius * radius

			if dist <= inner {
				img.Set(x, y, circleColor)
			} else if dist <= outer {
				img.Set(x, y, rimColor)
			}
		}
	}

	// Centered white square, quarter margin like the extension icons
	margin := 512 / 4
	for y := margin; y <= 512-margin; y++ {
		for x := margin; x <= 512-margin; x++ {
			img.Set(x, y, squareColor)
		}
	}

	f, err := os.Create(os.Args[1])
	if err != nil {
		panic(err)
	}
	defer f.Close()

	png.Encode(f, img)
}
