package tepcsp

import(
	"fmt"

	"github.com/abworrall/tep-csp/pkg/emath"
	"github.com/abworrall/tep-csp/pkg/tcolor"
)

// An IntensityFunc picks which attribute of a color drives the output
// intensity. The result is expected in [-1, 1].
type IntensityFunc func(tcolor.HueChroma) float64

func IntensityFromChroma(hc tcolor.HueChroma) float64 { return hc.Chroma }
func IntensityFromDiff(hc tcolor.HueChroma) float64   { return hc.Diff }

// A Band is an open interval of hue, in degrees; hues exactly on
// either bound fall outside it.
type Band struct {
	Target
	Min, Max  float64
	Intensity IntensityFunc
}

func (b Band)Contains(hue float64) bool { return hue > b.Min && hue < b.Max }

// Bands are fixed. The gaps between them (70-80, 160-170, 220-221 and
// 285-20 across zero) are unclassified. CSP starts at 221, not 220.
var Bands = []Band{
	{Debris,  20,  70, IntensityFromChroma},
	{Algae,   80, 160, IntensityFromChroma},
	{TEP,    170, 220, IntensityFromDiff},
	{CSP,    221, 285, IntensityFromChroma},
}

// A Class is the outcome of classifying one distinct color; every
// pixel of that color gets the same Class.
type Class struct {
	Target
	Intensity uint8
}

func (c Class)String() string { return fmt.Sprintf("%s@%d", c.Target, c.Intensity) }

// Classify returns false (and a None class) if the hue is in none of
// the bands.
//
// The intensity is the scaled value rounded half-up and then narrowed
// to 8 bits by truncation, not clamping; a negative diff in the TEP
// band wraps around to a high value.
func Classify(hc tcolor.HueChroma) (Class, bool) {
	for _, b := range Bands {
		if b.Contains(hc.Hue) {
			v := emath.RoundHalfUp(b.Intensity(hc) * 255)
			return Class{b.Target, emath.NarrowToByte(v)}, true
		}
	}
	return Class{Target: None}, false
}
