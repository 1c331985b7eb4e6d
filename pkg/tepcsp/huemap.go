package tepcsp

import(
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mdouchement/hdr/hdrcolor"

	"github.com/abworrall/tep-csp/pkg/tcolor"
)

// A HueMap is one source frame redrawn in hue/chroma/diff terms, as an
// HDR image: R is hue/360, G is chroma, B is (diff+1)/2. Load it into
// an HDR viewer and poke at pixels to see why something was (or wasn't)
// classified. Implements hdr.Image.
type HueMap struct {
	Rect image.Rectangle
	Pix  []hdrcolor.RGB // row-major
}

// Implement image.Image
func (hm *HueMap)ColorModel() color.Model { return hdrcolor.RGBModel }
func (hm *HueMap)Bounds() image.Rectangle { return hm.Rect }
func (hm *HueMap)At(x, y int) color.Color { return hm.HDRAt(x, y) }

// Implement hdr.Image
func (hm *HueMap)HDRAt(x, y int) hdrcolor.Color { return hm.Pix[y * hm.Rect.Dx() + x] }
func (hm *HueMap)Size() int                     { return hm.Rect.Dx() * hm.Rect.Dy() }

// NewHueMap reads one frame. Colors missing from the table are
// converted on the spot.
func NewHueMap(src Source, frame int, colors ColorTable) (*HueMap, error) {
	d := src.Dims()
	hm := &HueMap{
		Rect: image.Rect(0, 0, d.Width, d.Height),
		Pix:  make([]hdrcolor.RGB, d.Width * d.Height),
	}

	var rgb [3]uint8
	for y:=0; y<d.Height; y++ {
		for x:=0; x<d.Width; x++ {
			for ch:=Red; ch<=Blue; ch++ {
				v, err := src.Channel(frame, x, y, ch)
				if err != nil {
					return nil, wrapMalformed(err)
				}
				rgb[ch] = v
			}
			c := tcolor.RGB{R: rgb[0], G: rgb[1], B: rgb[2]}

			hc := colors[c].HueChroma
			if _, exists := colors[c]; !exists {
				hc = tcolor.Convert(c)
			}
			hm.Pix[y * d.Width + x] = hdrcolor.RGB{
				R: hc.Hue / 360.0,
				G: hc.Chroma,
				B: (hc.Diff + 1.0) / 2.0,
			}
		}
	}

	return hm, nil
}

// WriteHueMaps writes huemap-NNN.hdr for every frame.
func WriteHueMaps(src Source, colors ColorTable, dir string) ([]string, error) {
	written := []string{}
	for frame:=0; frame<src.Dims().Frames; frame++ {
		hm, err := NewHueMap(src, frame, colors)
		if err != nil {
			return written, err
		}

		filename := filepath.Join(dir, fmt.Sprintf("huemap-%03d.hdr", frame))
		if err := writeHDR(hm, filename); err != nil {
			return written, err
		}
		written = append(written, filename)
	}
	return written, nil
}

func writeHDR(hm *HueMap, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return rgbe.Encode(writer, hm)
	}
}
