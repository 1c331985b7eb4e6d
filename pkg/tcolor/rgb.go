package tcolor

import(
	"fmt"
	"image/color"

	"github.com/mdouchement/hdr/hdrcolor"
)

// An RGB is one 8-bit color, as read from a source pixel. It is
// comparable, and is used as a map key; two pixels with the same
// channel values are the same RGB wherever they are in the stack.
type RGB struct {
	R, G, B uint8
}

// FromColor narrows any golang color down to 8 bits per channel. The
// alpha channel is dropped; we take the non-premultiplied values, so a
// semi-transparent pixel keeps the channel values that were stored.
func FromColor(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{n.R, n.G, n.B}
}

func (c RGB)String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Implement color.Color
func (c RGB)RGBA() (r, g, b, a uint32) {
	return color.RGBA{c.R, c.G, c.B, 0xff}.RGBA()
}

// Normalized maps each channel onto [0.0, 1.0]. The division is done
// in single precision and then widened. Doing it in float64 moves a
// handful of hues by a few ULPs, enough to flip a pixel that sits
// right on a band boundary.
func (c RGB)Normalized() hdrcolor.RGB {
	return hdrcolor.RGB{
		R: norm(c.R),
		G: norm(c.G),
		B: norm(c.B),
	}
}

func norm(v uint8) float64 { return float64(float32(v) / float32(255)) }
