package tepcsp

import(
	"errors"
	"fmt"
)

var(
	// ErrMalformedInput aborts a run; no rasters are returned with it.
	ErrMalformedInput = errors.New("malformed input")

	// ErrArithmeticDegenerate is a hue that came out NaN/Inf/out of
	// range. It is reported as malformed input too.
	ErrArithmeticDegenerate = fmt.Errorf("%w: degenerate color arithmetic", ErrMalformedInput)
)

type Channel int

const(
	Red Channel = iota
	Green
	Blue
)

func (ch Channel)String() string {
	switch ch {
	case Red:   return "R"
	case Green: return "G"
	case Blue:  return "B"
	}
	return fmt.Sprintf("Channel(%d)", int(ch))
}

// Dims are the dimensions of a stack; they must not change while a
// stack is being processed.
type Dims struct {
	Width, Height, Frames int
}

func (d Dims)String() string { return fmt.Sprintf("%dx%dx%d", d.Width, d.Height, d.Frames) }

func (d Dims)NumPixels() int { return d.Width * d.Height * d.Frames }

func (d Dims)Validate() error {
	if d.Width <= 0 || d.Height <= 0 || d.Frames <= 0 {
		return fmt.Errorf("%w: stack dimensions %s", ErrMalformedInput, d)
	}
	return nil
}

func (d Dims)Contains(frame, x, y int) bool {
	return frame >= 0 && frame < d.Frames && x >= 0 && x < d.Width && y >= 0 && y < d.Height
}

// A Source is anywhere we can read 8-bit RGB pixels from. Channel must
// return the same value for the same arguments for the duration of a
// run, and should return an error for coordinates outside Dims.
type Source interface {
	Dims() Dims
	Channel(frame, x, y int, ch Channel) (uint8, error)
}

// A Sink is given each finished raster, along with its display title.
type Sink interface {
	Show(title string, r *Raster) error
}

// Publish hands every raster to every sink, stopping at the first error.
func Publish(rasters []*Raster, sinks ...Sink) error {
	for _, r := range rasters {
		for _, s := range sinks {
			if err := s.Show(r.Title(), r); err != nil {
				return fmt.Errorf("publish %s: %w", r.Title(), err)
			}
		}
	}
	return nil
}

// wrapMalformed makes sure a Source error matches ErrMalformedInput.
func wrapMalformed(err error) error {
	if errors.Is(err, ErrMalformedInput) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrMalformedInput, err)
}
