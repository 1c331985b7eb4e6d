package tcolor

import(
	"errors"
	"fmt"
	"math"

	"github.com/abworrall/tep-csp/pkg/emath"
)

var ErrDegenerate = errors.New("degenerate hue arithmetic")

// A HueChroma is the perceptual breakdown of an RGB that the
// classifier works with.
type HueChroma struct {
	Hue    float64 // degrees, [0, 360)
	Chroma float64 // max channel - min channel, [0, 1]
	Diff   float64 // blue - red, [-1, 1]
}

func (hc HueChroma)String() string {
	return fmt.Sprintf("[hue %7.3f, chroma %5.3f, diff %6.3f]", hc.Hue, hc.Chroma, hc.Diff)
}

// Convert is a pure function, and is safe to call from many goroutines.
//
// The hue is the usual HSV hue, but the order in which we look for the
// max channel matters when two channels tie: green is checked first,
// then red, then blue. Since green wins any tie for the max, a grey
// (chroma == 0) always lands in the green branch, which is the only
// one that guards against dividing by zero.
func Convert(c RGB) HueChroma {
	n := c.Normalized()
	r, g, b := n.R, n.G, n.B

	max := emath.Max3(r, g, b)
	min := emath.Min3(r, g, b)
	chroma := max - min

	var hue float64
	if max == g {
		if chroma == 0 {
			hue = 0
		} else {
			hue = 60 * (((b - r) / chroma) + 2)
		}
	} else if max == r {
		hue = 60 * emath.MicroFloorMod((g - b) / chroma, 6)
	} else {
		hue = 60 * (((r - g) / chroma) + 4)
	}

	return HueChroma{
		Hue:    hue,
		Chroma: chroma,
		Diff:   b - r,
	}
}

// Validate checks the ranges; a NaN or infinite value can only appear
// if a division by a zero chroma slipped past the branch ordering.
func (hc HueChroma)Validate() error {
	switch {
	case math.IsNaN(hc.Hue) || math.IsInf(hc.Hue, 0):
		return fmt.Errorf("%w: hue %v", ErrDegenerate, hc.Hue)
	case math.IsNaN(hc.Chroma) || math.IsNaN(hc.Diff):
		return fmt.Errorf("%w: %s", ErrDegenerate, hc)
	case hc.Hue < 0 || hc.Hue >= 360:
		return fmt.Errorf("%w: hue %v outside [0,360)", ErrDegenerate, hc.Hue)
	case hc.Chroma < 0 || hc.Chroma > 1:
		return fmt.Errorf("%w: chroma %v outside [0,1]", ErrDegenerate, hc.Chroma)
	case hc.Diff < -1 || hc.Diff > 1:
		return fmt.Errorf("%w: diff %v outside [-1,1]", ErrDegenerate, hc.Diff)
	}
	return nil
}
