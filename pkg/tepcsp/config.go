package tepcsp

import(
	"fmt"
	"log"
	"runtime"
	"strings"

	"gopkg.in/yaml.v2"
)

/* Example config file ...

verbosity: 1
workers: 8
outputdir: out
outputs: [tiff, preview, bundle]
previewwidth: 800
frameorder: exif
reportfilename: report.yaml

*/

type Config struct {
	Verbosity      int

	Workers        int      // 0 means one per CPU
	FrameOrder     string   // "name" or "exif"

	OutputDir      string
	Outputs        []string // any of OutputKinds
	PreviewWidth   int      // previews wider than this get scaled down
	BundleFilename string   // relative to OutputDir
	ReportFilename string   // relative to OutputDir; empty means no report file
}

var OutputKinds = []string{"tiff", "png", "preview", "bundle", "huemap"}

func NewConfig() Config {
	return Config{
		FrameOrder:     "name",
		OutputDir:      ".",
		Outputs:        []string{"tiff"},
		PreviewWidth:   1024,
		BundleFilename: "rasters.cbor.zst",
	}
}

func newConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, err
	}
	return c, c.Finalize()
}

func (c Config)AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		log.Fatalf("Can't marshal config yaml: %v\n", err)
	}
	return string(b)
}

// Finalize does sanity checks and tidies things up
func (c *Config)Finalize() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, not %d", c.Workers)
	}

	switch c.FrameOrder = strings.ToLower(c.FrameOrder); c.FrameOrder {
	case "":           c.FrameOrder = "name"
	case "name", "exif":
	default:
		return fmt.Errorf("no FrameOrder named '%s'", c.FrameOrder)
	}

	outputs := []string{}
	for _, o := range c.Outputs {
		o = strings.ToLower(strings.TrimSpace(o))
		if o == "" {
			continue
		}
		if !isOutputKind(o) {
			return fmt.Errorf("no Output named '%s', wanted %v", o, OutputKinds)
		}
		outputs = append(outputs, o)
	}
	c.Outputs = outputs

	if c.PreviewWidth <= 0 {
		c.PreviewWidth = NewConfig().PreviewWidth
	}
	if c.BundleFilename == "" {
		c.BundleFilename = NewConfig().BundleFilename
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}

	return nil
}

func (c Config)GetWorkers() int {
	if c.Workers <= 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

func (c Config)WantsOutput(kind string) bool {
	for _, o := range c.Outputs {
		if o == kind {
			return true
		}
	}
	return false
}

func isOutputKind(s string) bool {
	for _, k := range OutputKinds {
		if k == s {
			return true
		}
	}
	return false
}
