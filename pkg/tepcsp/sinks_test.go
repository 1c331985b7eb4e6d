package tepcsp

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/tiff"
)

func testRasters() []*Raster {
	tep := NewRaster(TEP, Dims{3, 2, 2})
	tep.Set(1, 2, 1, 200)
	algae := NewRaster(Algae, Dims{3, 2, 2})
	algae.Set(0, 0, 0, 17)
	return []*Raster{tep, algae}
}

func TestDirSink(t *testing.T) {
	dir := t.TempDir()
	s := &DirSink{Dir: dir, Format: "tiff"}

	if err := Publish(testRasters(), s); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	want := []string{"TEP-000.tif", "TEP-001.tif", "Algae-000.tif", "Algae-001.tif"}
	if len(s.Written) != len(want) {
		t.Fatalf("wrote %v", s.Written)
	}
	for i, name := range want {
		if s.Written[i] != filepath.Join(dir, name) {
			t.Fatalf("file %d is %s, want %s", i, s.Written[i], name)
		}
	}

	f, err := os.Open(filepath.Join(dir, "TEP-001.tif"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := tiff.Decode(f)
	if err != nil {
		t.Fatalf("tiff.Decode: %v", err)
	}
	gray, ok := img.(*image.Gray)
	if !ok {
		t.Fatalf("expected a grayscale tiff, got %T", img)
	}
	if gray.GrayAt(2, 1).Y != 200 || gray.GrayAt(0, 0).Y != 0 {
		t.Fatalf("unexpected pixels: %v", gray.Pix)
	}
}

func TestPreviewSink(t *testing.T) {
	dir := t.TempDir()
	s := &PreviewSink{Dir: dir, MaxWidth: 100}
	if err := Publish(testRasters()[:1], s); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(s.Written) != 2 || s.Written[1] != filepath.Join(dir, "preview-TEP-001.png") {
		t.Fatalf("unexpected files: %v", s.Written)
	}
}

func TestBundleSink(t *testing.T) {
	c := NewConfig()
	c.OutputDir = t.TempDir()
	c.Outputs = []string{"png", "bundle"}

	sinks := c.NewSinks(Report{TotalPixels: 12})
	if err := Publish(testRasters(), sinks...); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if err := CloseSinks(sinks); err != nil {
		t.Fatalf("CloseSinks: %v", err)
	}

	if _, err := os.Stat(filepath.Join(c.OutputDir, "Algae-001.png")); err != nil {
		t.Fatalf("png not written: %v", err)
	}

	b, err := ReadBundleFile(filepath.Join(c.OutputDir, c.BundleFilename))
	if err != nil {
		t.Fatalf("ReadBundleFile: %v", err)
	}
	if len(b.Rasters) != 2 || b.Rasters[0].Title != "TEP" || b.Rasters[1].Title != "Algae" || b.Report.TotalPixels != 12 {
		t.Fatalf("unexpected bundle: %+v", b)
	}
}

type failingSink struct{ shown int }

var errSinkFull = errors.New("sink full")

func (s *failingSink) Show(title string, r *Raster) error {
	if s.shown++; s.shown > 1 {
		return errSinkFull
	}
	return nil
}

func TestPublishStopsOnError(t *testing.T) {
	s := &failingSink{}
	if err := Publish(testRasters(), s); !errors.Is(err, errSinkFull) {
		t.Fatalf("expected errSinkFull, got %v", err)
	}
	if s.shown != 2 {
		t.Fatalf("expected publishing to stop after the failure, shown %d", s.shown)
	}
}
