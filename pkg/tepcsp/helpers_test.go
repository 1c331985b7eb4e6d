package tepcsp

import (
	"errors"
	"image"
	"math/rand"

	"github.com/abworrall/tep-csp/pkg/tcolor"
)

// stackOf builds an in-memory stack; each frame is w*h colors, row-major.
func stackOf(w, h int, frames ...[]tcolor.RGB) ImageStack {
	is := NewImageStack()
	for i, colors := range frames {
		img := image.NewNRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := colors[y*w+x]
				o := img.PixOffset(x, y)
				img.Pix[o+0], img.Pix[o+1], img.Pix[o+2], img.Pix[o+3] = c.R, c.G, c.B, 0xff
			}
		}
		is.AddFrame(Frame{LoadFilename: string(rune('a' + i)), NRGBA: img})
	}
	return is
}

func filled(n int, c tcolor.RGB) []tcolor.RGB {
	colors := make([]tcolor.RGB, n)
	for i := range colors {
		colors[i] = c
	}
	return colors
}

// randomStack uses a small palette, so colors repeat within and across frames.
func randomStack(seed int64, w, h, nFrames int) ImageStack {
	rng := rand.New(rand.NewSource(seed))
	palette := make([]tcolor.RGB, 64)
	for i := range palette {
		palette[i] = tcolor.RGB{R: uint8(rng.Intn(256)), G: uint8(rng.Intn(256)), B: uint8(rng.Intn(256))}
	}

	frames := [][]tcolor.RGB{}
	for f := 0; f < nFrames; f++ {
		colors := make([]tcolor.RGB, w*h)
		for i := range colors {
			colors[i] = palette[rng.Intn(len(palette))]
		}
		frames = append(frames, colors)
	}
	return stackOf(w, h, frames...)
}

var errBrokenReader = errors.New("broken reader")

// brokenSource fails on one particular pixel.
type brokenSource struct {
	Source
	failFrame, failX, failY int
}

func (bs brokenSource) Channel(frame, x, y int, ch Channel) (uint8, error) {
	if frame == bs.failFrame && x == bs.failX && y == bs.failY {
		return 0, errBrokenReader
	}
	return bs.Source.Channel(frame, x, y, ch)
}

// lyingSource claims to be bigger than it is.
type lyingSource struct {
	Source
	dims Dims
}

func (ls lyingSource) Dims() Dims { return ls.dims }

var (
	black = tcolor.RGB{R: 0, G: 0, B: 0}
	red   = tcolor.RGB{R: 255, G: 0, B: 0}
	green = tcolor.RGB{R: 0, G: 255, B: 0}
	blue  = tcolor.RGB{R: 0, G: 0, B: 255}
	teal  = tcolor.RGB{R: 50, G: 150, B: 200} // hue 200, in the TEP band
)
