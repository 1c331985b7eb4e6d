package tepcsp

import(
	"fmt"
	"image"
	"image/draw"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// A Frame is one RGB image of the stack, as loaded from a file.
type Frame struct {
	LoadFilename string
	CaptureTime  time.Time // From EXIF, if the file had it

	*image.NRGBA           // Always 8 bits per channel; we convert at load time
}

// NewFrame converts any image into an 8-bit NRGBA frame.
func NewFrame(filename string, img image.Image) Frame {
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		b := img.Bounds()
		nrgba = image.NewNRGBA(image.Rectangle{Max: image.Point{b.Dx(), b.Dy()}})
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	}
	return Frame{LoadFilename: filename, NRGBA: nrgba}
}

func (f Frame)Filename() string { return filepath.Base(f.LoadFilename) }

func (f Frame)String() string {
	str := fmt.Sprintf("%s: %dx%d", f.Filename(), f.Bounds().Dx(), f.Bounds().Dy())
	if !f.CaptureTime.IsZero() {
		str += ", captured " + f.CaptureTime.Format(time.RFC3339)
	}
	return str
}

// An ImageStack is a Source backed by a list of in-memory frames.
type ImageStack struct {
	Frames []Frame
	Config
}

func NewImageStack() ImageStack {
	return ImageStack{
		Frames: []Frame{},
		Config: NewConfig(),
	}
}

func (is ImageStack)String() string {
	str := fmt.Sprintf("ImageStack %s [\n", is.Dims())
	for _, f := range is.Frames {
		str += fmt.Sprintf("  %s\n", f)
	}
	return str + "]\n"
}

func (is *ImageStack)AddFrame(f Frame) {
	is.Frames = append(is.Frames, f)
}

// SortFrames puts the frames into their final order. "exif" sorts by
// capture time, with frames lacking EXIF times going last; anything
// else sorts by filename.
func (is *ImageStack)SortFrames(order string) {
	byName := func(i, j int) bool { return is.Frames[i].LoadFilename < is.Frames[j].LoadFilename }

	switch strings.ToLower(order) {
	case "exif":
		sort.SliceStable(is.Frames, func(i, j int) bool {
			ti, tj := is.Frames[i].CaptureTime, is.Frames[j].CaptureTime
			switch {
			case ti.IsZero() && tj.IsZero(): return byName(i, j)
			case ti.IsZero():                return false
			case tj.IsZero():                return true
			case ti.Equal(tj):               return byName(i, j)
			}
			return ti.Before(tj)
		})
	default:
		sort.SliceStable(is.Frames, byName)
	}
}

// Validate checks there is at least one frame, and they're all the same size.
func (is ImageStack)Validate() error {
	if len(is.Frames) == 0 {
		return fmt.Errorf("%w: no frames in stack", ErrMalformedInput)
	}
	b0 := is.Frames[0].Bounds()
	for _, f := range is.Frames[1:] {
		if b := f.Bounds(); b.Dx() != b0.Dx() || b.Dy() != b0.Dy() {
			return fmt.Errorf("%w: frame %s is %dx%d, wanted %dx%d", ErrMalformedInput,
				f.Filename(), b.Dx(), b.Dy(), b0.Dx(), b0.Dy())
		}
	}
	return is.Dims().Validate()
}

// Implement Source
func (is ImageStack)Dims() Dims {
	if len(is.Frames) == 0 {
		return Dims{}
	}
	b := is.Frames[0].Bounds()
	return Dims{Width: b.Dx(), Height: b.Dy(), Frames: len(is.Frames)}
}

func (is ImageStack)Channel(frame, x, y int, ch Channel) (uint8, error) {
	if frame < 0 || frame >= len(is.Frames) {
		return 0, fmt.Errorf("%w: frame %d of %d", ErrMalformedInput, frame, len(is.Frames))
	}
	img := is.Frames[frame].NRGBA
	b := img.Bounds()
	if x < 0 || x >= b.Dx() || y < 0 || y >= b.Dy() || ch < Red || ch > Blue {
		return 0, fmt.Errorf("%w: pixel (%d,%d,%s) outside frame %d (%dx%d)", ErrMalformedInput,
			x, y, ch, frame, b.Dx(), b.Dy())
	}
	return img.Pix[img.PixOffset(b.Min.X + x, b.Min.Y + y) + int(ch)], nil
}
