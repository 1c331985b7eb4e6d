package tepcsp

import(
	"fmt"
	"io"
	"log"
	"path/filepath"
)

// DirSink writes one grayscale file per frame of each raster, named
// like "TEP-003.tif".
type DirSink struct {
	Dir     string
	Format  string // "tiff" or "png"
	Written []string
}

func (s *DirSink)Show(title string, r *Raster) error {
	ext, write := "tif", WriteTIFF
	if s.Format == "png" {
		ext, write = "png", WritePNG
	}

	for frame:=0; frame<r.Frames; frame++ {
		filename := filepath.Join(s.Dir, fmt.Sprintf("%s-%03d.%s", title, frame, ext))
		if err := write(r.Frame(frame), filename); err != nil {
			return err
		}
		s.Written = append(s.Written, filename)
	}
	return nil
}

// PreviewSink writes a tinted, titled PNG per frame, for eyeballing.
type PreviewSink struct {
	Dir      string
	MaxWidth int
	Written  []string
}

func (s *PreviewSink)Show(title string, r *Raster) error {
	for frame:=0; frame<r.Frames; frame++ {
		filename := filepath.Join(s.Dir, fmt.Sprintf("preview-%s-%03d.png", title, frame))
		if err := WritePNG(RenderPreview(r, frame, s.MaxWidth), filename); err != nil {
			return err
		}
		s.Written = append(s.Written, filename)
	}
	return nil
}

// BundleSink collects rasters, and writes them all to one file on Close.
type BundleSink struct {
	Filename string
	Report
	rasters  []*Raster
}

func (s *BundleSink)Show(title string, r *Raster) error {
	s.rasters = append(s.rasters, r)
	return nil
}

func (s *BundleSink)Close() error {
	return WriteBundleFile(NewBundle(s.rasters, s.Report), s.Filename)
}

// NewSinks builds the sinks that the config asks for. The hue map
// isn't a raster sink; see WriteHueMaps.
func (c Config)NewSinks(rep Report) []Sink {
	sinks := []Sink{}
	for _, o := range c.Outputs {
		switch o {
		case "tiff", "png":
			sinks = append(sinks, &DirSink{Dir: c.OutputDir, Format: o})
		case "preview":
			sinks = append(sinks, &PreviewSink{Dir: c.OutputDir, MaxWidth: c.PreviewWidth})
		case "bundle":
			sinks = append(sinks, &BundleSink{Filename: filepath.Join(c.OutputDir, c.BundleFilename), Report: rep})
		}
	}
	return sinks
}

// CloseSinks closes any sink that needs closing, and logs what each sink wrote.
func CloseSinks(sinks []Sink) error {
	var firstErr error
	for _, s := range sinks {
		if c, ok := s.(io.Closer); ok {
			if err := c.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}

		switch s := s.(type) {
		case *DirSink:     log.Printf("Wrote %d %s files to %s\n", len(s.Written), s.Format, s.Dir)
		case *PreviewSink: log.Printf("Wrote %d previews to %s\n", len(s.Written), s.Dir)
		case *BundleSink:  log.Printf("Wrote %d rasters to %s\n", len(s.rasters), s.Filename)
		}
	}
	return firstErr
}
