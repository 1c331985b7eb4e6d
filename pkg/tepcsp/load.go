package tepcsp

import(
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/tiff"
)

func (is *ImageStack)LoadFilesAndDirs(args ...string) (error) {
	for _, arg := range args {
		item, err := os.Stat(arg)

		switch {

		case err != nil:
			return fmt.Errorf("load %s: %v", arg, err)

		case item.IsDir():
			// Is a dir, recurse into contents
			contents, err := os.ReadDir(arg)
			if err != nil {
				return fmt.Errorf("readdir %s: %v", arg, err)
			}
			for _, content := range contents {
				if err := is.LoadFilesAndDirs(filepath.Join(arg, content.Name())); err != nil {
					return fmt.Errorf("load %s: %v", arg, err)
				}
			}

		default: // is a file, load it
			if err := is.loadFile(arg); err != nil {
				return fmt.Errorf("loadfile %s: %w", arg, err)
			}
		}
	}

	return nil
}

// Prepare puts the frames in order, and checks they can be processed.
func (is *ImageStack)Prepare() error {
	is.SortFrames(is.Config.FrameOrder)
	return is.Validate()
}

func (is *ImageStack)loadFile(filename string) error {
	ext := filepath.Ext(filename)

	switch strings.ToLower(ext) {

	case ".tif", ".tiff":
		f, err := loadFrame(filename, tiff.Decode, true)
		if err != nil {
			return fmt.Errorf("Loading %s as TIFF failed: %w", filename, err)
		}
		is.AddFrame(f)

	case ".png":
		f, err := loadFrame(filename, png.Decode, false)
		if err != nil {
			return fmt.Errorf("Loading %s as PNG failed: %w", filename, err)
		}
		is.AddFrame(f)

	case ".jpg", ".jpeg":
		f, err := loadFrame(filename, jpeg.Decode, true)
		if err != nil {
			return fmt.Errorf("Loading %s as JPEG failed: %w", filename, err)
		}
		is.AddFrame(f)

	case ".yaml", ".yml":
		cfg, err := loadConfig(filename)
		if err != nil {
			return fmt.Errorf("Loading %s as config YAML failed: %w", filename, err)
		}
		is.Config = cfg
		log.Printf("Loaded base configuration from %s\n", filename)
	}

	return nil
}

func loadConfig(filename string) (Config, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("config read %s: %v", filename, err)
	}

	return newConfigFromYaml(contents)
}

type decodeFunc func(io.Reader) (image.Image, error)

func loadFrame(filename string, decode decodeFunc, tryExif bool) (Frame, error) {
	reader, err := os.Open(filename)
	if err != nil {
		return Frame{}, fmt.Errorf("open+r img '%s': %v", filename, err)
	}
	defer reader.Close()

	img, err := decode(reader)
	if err != nil {
		return Frame{}, fmt.Errorf("decoding '%s': %v", filename, err)
	}
	f := NewFrame(filename, img)

	// Plenty of files have no EXIF; that's fine, they just get no capture time.
	if tryExif {
		if t, err := exifCaptureTime(filename); err == nil {
			f.CaptureTime = t
		}
	}

	return f, nil
}

func exifCaptureTime(filename string) (time.Time, error) {
	reader, err := os.Open(filename)
	if err != nil {
		return time.Time{}, fmt.Errorf("open+r exif '%s': %v", filename, err)
	}
	defer reader.Close()

	ex, err := exif.Decode(reader)
	if err != nil {
		return time.Time{}, fmt.Errorf("exif parsing '%s': %v", filename, err)
	}
	t, err := ex.DateTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("exif DateTime '%s': %v", filename, err)
	}
	return t, nil
}
