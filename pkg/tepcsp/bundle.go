package tepcsp

import(
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

// A bundle file is a zstd-compressed CBOR document holding all the
// rasters from one run, plus the report.
const bundleVersion = 1

type BundleRaster struct {
	Title  string `cbor:"title"`
	Width  int    `cbor:"width"`
	Height int    `cbor:"height"`
	Frames int    `cbor:"frames"`
	Pix    []byte `cbor:"pix"`
}

type Bundle struct {
	Version int            `cbor:"version"`
	RunID   string         `cbor:"run_id"`
	Created string         `cbor:"created"`
	Report  Report         `cbor:"report"`
	Rasters []BundleRaster `cbor:"rasters"`
}

func NewBundle(rasters []*Raster, rep Report) Bundle {
	b := Bundle{
		Version: bundleVersion,
		RunID:   uuid.NewString(),
		Created: time.Now().UTC().Format(time.RFC3339),
		Report:  rep,
		Rasters: []BundleRaster{},
	}
	for _, r := range rasters {
		b.Rasters = append(b.Rasters, BundleRaster{r.Title(), r.Width, r.Height, r.Frames, r.Pix})
	}
	return b
}

// Raster turns a bundled raster back into a Raster. The pixels are
// shared, not copied.
func (br BundleRaster)Raster() (*Raster, error) {
	t, err := ParseTarget(br.Title)
	if err != nil || t == None {
		return nil, fmt.Errorf("%w: bundled raster has bad title '%s'", ErrMalformedInput, br.Title)
	}
	d := Dims{br.Width, br.Height, br.Frames}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if len(br.Pix) != d.NumPixels() {
		return nil, fmt.Errorf("%w: bundled raster %s has %d pixels, wanted %d", ErrMalformedInput,
			br.Title, len(br.Pix), d.NumPixels())
	}
	return &Raster{Target: t, Dims: d, Pix: br.Pix}, nil
}

func (b Bundle)Encode(w io.Writer) error {
	payload, err := cbor.Marshal(b)
	if err != nil {
		return fmt.Errorf("cbor encode: %w", err)
	}

	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("zstd writer: %w", err)
	}
	if _, err := enc.Write(payload); err != nil {
		enc.Close()
		return fmt.Errorf("zstd encode: %w", err)
	}
	return enc.Close()
}

func ReadBundle(r io.Reader) (Bundle, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return Bundle{}, fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()

	payload, err := io.ReadAll(dec)
	if err != nil {
		return Bundle{}, fmt.Errorf("zstd decode: %w", err)
	}

	b := Bundle{}
	if err := cbor.Unmarshal(payload, &b); err != nil {
		return Bundle{}, fmt.Errorf("cbor decode: %w", err)
	}
	if b.Version != bundleVersion {
		return Bundle{}, fmt.Errorf("bundle version %d, can only read %d", b.Version, bundleVersion)
	}
	return b, nil
}

func WriteBundleFile(b Bundle, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return b.Encode(writer)
	}
}

func ReadBundleFile(filename string) (Bundle, error) {
	reader, err := os.Open(filename)
	if err != nil {
		return Bundle{}, fmt.Errorf("open+r '%s': %v", filename, err)
	}
	defer reader.Close()
	return ReadBundle(reader)
}
