package tepcsp

import(
	"fmt"
	"strings"
)

// A Target is one of the output rasters a pixel can be sorted into.
type Target int

const(
	None Target = iota // no output raster; never materialized
	TEP                // transparent exopolymer particles
	CSP                // coomassie stainable particles
	Debris
	Algae
)

// Targets lists the real targets, in the order rasters are emitted.
var Targets = []Target{TEP, CSP, Debris, Algae}

var targetTitles = map[Target]string{
	None:   "Unknown",
	TEP:    "TEP",
	CSP:    "CSP",
	Debris: "Debris",
	Algae:  "Algae",
}

// Title is the display title handed to sinks along with the raster.
func (t Target)Title() string {
	if s, exists := targetTitles[t]; exists {
		return s
	}
	return fmt.Sprintf("Target(%d)", int(t))
}

func (t Target)String() string { return t.Title() }

// ParseTarget is the inverse of Title (case insensitive).
func ParseTarget(s string) (Target, error) {
	for t, title := range targetTitles {
		if strings.EqualFold(s, title) {
			return t, nil
		}
	}
	return None, fmt.Errorf("no Target named '%s'", s)
}
