package tepcsp

import(
	"fmt"

	"github.com/abworrall/tep-csp/pkg/tcolor"
)

// A Position is one pixel occurrence in the source stack.
type Position struct {
	Frame, X, Y int
}

func (p Position)String() string { return fmt.Sprintf("(f%d %d,%d)", p.Frame, p.X, p.Y) }

// A ColorIndex maps each distinct color to every position it occurs
// at. It is built once, and then only read.
type ColorIndex map[tcolor.RGB][]Position

// NumPositions is the number of pixel occurrences in the index.
func (idx ColorIndex)NumPositions() int {
	n := 0
	for _, positions := range idx {
		n += len(positions)
	}
	return n
}

// Colors returns the distinct colors, in no particular order.
func (idx ColorIndex)Colors() []tcolor.RGB {
	colors := make([]tcolor.RGB, 0, len(idx))
	for c := range idx {
		colors = append(colors, c)
	}
	return colors
}

// BuildIndex reads every pixel of every frame. Each frame is indexed
// separately, in parallel; the per-frame indexes are then merged in
// frame order, so within one color the positions are ordered by frame,
// then x, then y.
func BuildIndex(src Source, nWorkers int) (ColorIndex, error) {
	dims := src.Dims()
	if err := dims.Validate(); err != nil {
		return nil, err
	}

	frames := make([]int, dims.Frames)
	for i := range frames {
		frames[i] = i
	}

	partials, err := runJobs(nWorkers, frames, func(frame int) (ColorIndex, error) {
		return indexFrame(src, dims, frame)
	})
	if err != nil {
		return nil, err
	}

	return mergeIndexes(partials), nil
}

func indexFrame(src Source, dims Dims, frame int) (ColorIndex, error) {
	idx := ColorIndex{}
	var rgb [3]uint8

	for x:=0; x<dims.Width; x++ {
		for y:=0; y<dims.Height; y++ {
			for ch:=Red; ch<=Blue; ch++ {
				v, err := src.Channel(frame, x, y, ch)
				if err != nil {
					return nil, fmt.Errorf("index frame %d: %w", frame, wrapMalformed(err))
				}
				rgb[ch] = v
			}
			c := tcolor.RGB{R: rgb[0], G: rgb[1], B: rgb[2]}
			idx[c] = append(idx[c], Position{frame, x, y})
		}
	}

	return idx, nil
}

// mergeIndexes concatenates position lists key by key. The partials
// are consumed; their lists may be reused by the result.
func mergeIndexes(partials []ColorIndex) ColorIndex {
	if len(partials) == 1 {
		return partials[0]
	}

	merged := ColorIndex{}
	for _, partial := range partials {
		for c, positions := range partial {
			if existing, exists := merged[c]; exists {
				merged[c] = append(existing, positions...)
			} else {
				merged[c] = positions
			}
		}
	}
	return merged
}
