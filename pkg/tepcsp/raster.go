package tepcsp

import(
	"fmt"
	"image"
)

// A Raster is the output for one Target: an 8-bit intensity for every
// pixel of every frame. Pixels that were not sorted into this target
// are zero.
type Raster struct {
	Target
	Dims
	Pix    []uint8 // frame-major, then row-major
}

func NewRaster(t Target, d Dims) *Raster {
	return &Raster{
		Target: t,
		Dims:   d,
		Pix:    make([]uint8, d.NumPixels()),
	}
}

func (r *Raster)String() string {
	return fmt.Sprintf("Raster[%s %s, %d set]", r.Title(), r.Dims, r.NumSet())
}

func (r *Raster)offset(frame, x, y int) int   { return (frame * r.Height + y) * r.Width + x }
func (r *Raster)At(frame, x, y int) uint8     { return r.Pix[r.offset(frame, x, y)] }
func (r *Raster)Set(frame, x, y int, v uint8) { r.Pix[r.offset(frame, x, y)] = v }

// NumSet counts the non-zero cells. (A pixel can be classified with
// an intensity of zero, so this is a lower bound on the pixels that
// were sorted into this raster.)
func (r *Raster)NumSet() int {
	n := 0
	for _, v := range r.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}

// Frame returns a view of one frame as a grayscale image. It shares
// memory with the raster.
func (r *Raster)Frame(frame int) *image.Gray {
	n := r.Width * r.Height
	return &image.Gray{
		Pix:    r.Pix[frame*n : (frame+1)*n : (frame+1)*n],
		Stride: r.Width,
		Rect:   image.Rect(0, 0, r.Width, r.Height),
	}
}

// Equal compares targets, dimensions and every cell.
func (r *Raster)Equal(r2 *Raster) bool {
	if r.Target != r2.Target || r.Dims != r2.Dims || len(r.Pix) != len(r2.Pix) {
		return false
	}
	for i := range r.Pix {
		if r.Pix[i] != r2.Pix[i] {
			return false
		}
	}
	return true
}
