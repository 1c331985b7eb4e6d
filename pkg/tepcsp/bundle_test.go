package tepcsp

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abworrall/tep-csp/pkg/tcolor"
)

func TestBundleRoundTrip(t *testing.T) {
	f0 := []tcolor.RGB{teal, green, blue, black}
	f1 := []tcolor.RGB{blue, blue, teal, green}
	res, err := Run(stackOf(2, 2, f0, f1), Config{Workers: 2})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	b := NewBundle(res.Rasters, res.Report)
	if b.Version != bundleVersion || b.RunID == "" || b.Created == "" {
		t.Fatalf("unexpected bundle header: %+v", b)
	}

	buf := bytes.Buffer{}
	if err := b.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	b2, err := ReadBundle(&buf)
	if err != nil {
		t.Fatalf("ReadBundle: %v", err)
	}
	if b2.RunID != b.RunID || b2.Created != b.Created {
		t.Fatalf("header changed: %+v", b2)
	}
	if b2.Report.TotalPixels != 8 || len(b2.Report.Targets) != len(res.Report.Targets) {
		t.Fatalf("report changed: %+v", b2.Report)
	}
	if len(b2.Rasters) != len(res.Rasters) {
		t.Fatalf("expected %d rasters, got %d", len(res.Rasters), len(b2.Rasters))
	}
	for i, br := range b2.Rasters {
		r, err := br.Raster()
		if err != nil {
			t.Fatalf("Raster: %v", err)
		}
		if !r.Equal(res.Rasters[i]) {
			t.Fatalf("raster %d changed: %s vs %s", i, r, res.Rasters[i])
		}
	}
}

func TestBundleFile(t *testing.T) {
	r := NewRaster(CSP, Dims{3, 1, 1})
	r.Set(0, 1, 0, 42)

	filename := filepath.Join(t.TempDir(), "out.cbor.zst")
	if err := WriteBundleFile(NewBundle([]*Raster{r}, Report{TotalPixels: 3}), filename); err != nil {
		t.Fatalf("WriteBundleFile: %v", err)
	}
	b, err := ReadBundleFile(filename)
	if err != nil {
		t.Fatalf("ReadBundleFile: %v", err)
	}
	if len(b.Rasters) != 1 || b.Rasters[0].Title != "CSP" || b.Report.TotalPixels != 3 {
		t.Fatalf("unexpected bundle: %+v", b)
	}
	if r2, err := b.Rasters[0].Raster(); err != nil || !r2.Equal(r) {
		t.Fatalf("unexpected raster: %v, %v", r2, err)
	}

	if _, err := ReadBundleFile(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatalf("expected an error reading a missing file")
	}
}

func TestBundleBadVersion(t *testing.T) {
	b := NewBundle(nil, Report{})
	b.Version = bundleVersion + 1

	buf := bytes.Buffer{}
	if err := b.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := ReadBundle(&buf); err == nil || !strings.Contains(err.Error(), "version") {
		t.Fatalf("expected a version error, got %v", err)
	}
}

func TestBundleGarbage(t *testing.T) {
	if _, err := ReadBundle(strings.NewReader("this is not zstd")); err == nil {
		t.Fatalf("expected an error from garbage input")
	}
}

func TestBundleRasterMalformed(t *testing.T) {
	bad := []BundleRaster{
		{Title: "Unknown", Width: 1, Height: 1, Frames: 1, Pix: []byte{0}},
		{Title: "Plankton", Width: 1, Height: 1, Frames: 1, Pix: []byte{0}},
		{Title: "TEP", Width: 0, Height: 1, Frames: 1, Pix: []byte{}},
		{Title: "TEP", Width: 2, Height: 2, Frames: 1, Pix: []byte{1, 2, 3}},
	}
	for _, br := range bad {
		if _, err := br.Raster(); !errors.Is(err, ErrMalformedInput) {
			t.Fatalf("%+v: expected ErrMalformedInput, got %v", br, err)
		}
	}
}
