package tepcsp

import(
	"image"
	"image/color"

	"github.com/fogleman/gg"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"

	"github.com/abworrall/tep-csp/pkg/emath"
)

// TintHue is the hue a target is drawn in: the middle of its band.
func (t Target)TintHue() float64 {
	for _, b := range Bands {
		if b.Target == t {
			return (b.Min + b.Max) / 2
		}
	}
	return 0
}

// RenderPreview draws one frame of a raster for humans: intensity
// becomes brightness (gamma expanded, so faint particles are visible)
// in the target's own hue, it is scaled down to fit maxWidth, and the
// title is written in the corner.
func RenderPreview(r *Raster, frame int, maxWidth int) image.Image {
	gray := r.Frame(frame)
	hue := r.Target.TintHue()

	// Only 256 possible intensities, so build a palette first
	var lut [256]color.NRGBA
	for i:=0; i<256; i++ {
		v := emath.GammaExpand_F64(float64(i) / 255.0)
		cr, cg, cb := colorful.Hsv(hue, 1.0, v).Clamped().RGB255()
		lut[i] = color.NRGBA{cr, cg, cb, 0xff}
	}

	img := image.NewNRGBA(gray.Bounds())
	for y:=0; y<r.Height; y++ {
		for x:=0; x<r.Width; x++ {
			img.SetNRGBA(x, y, lut[gray.GrayAt(x, y).Y])
		}
	}

	var out image.Image = img
	if maxWidth > 0 && r.Width > maxWidth {
		h := r.Height * maxWidth / r.Width
		if h < 1 {
			h = 1
		}
		scaled := image.NewNRGBA(image.Rect(0, 0, maxWidth, h))
		draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)
		out = scaled
	}

	dc := gg.NewContextForImage(out)
	dc.SetRGB(1, 1, 1)
	dc.DrawString(r.Title(), 5, 15)
	return dc.Image()
}
