package main

import(
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abworrall/tep-csp/pkg/tepcsp"
)

var(
	fVerbosity int
	fWorkers int
	fOutputDir string
	fOutputs string
	fPreviewWidth int
	fFrameOrder string
	fReport string
)

func init() {
	flag.IntVar(&fVerbosity, "v", 0, "how verbose to get")
	flag.IntVar(&fWorkers, "workers", 0, "number of worker goroutines (0 => one per CPU)")
	flag.StringVar(&fOutputDir, "o", "", "directory to write outputs into")
	flag.StringVar(&fOutputs, "outputs", "", "comma separated outputs: "+strings.Join(tepcsp.OutputKinds, ","))
	flag.IntVar(&fPreviewWidth, "previewwidth", 0, "max width of preview images, in pixels")
	flag.StringVar(&fFrameOrder, "order", "", "how to order the frames: name, exif")
	flag.StringVar(&fReport, "report", "", "write a YAML report with this filename (in the output dir)")
	flag.Parse()

	log.Printf("tepcsp starting\n")
}

func main() {
	stack := tepcsp.NewImageStack()
	if err := stack.LoadFilesAndDirs(flag.Args()...); err != nil {
		log.Fatal(err)
	}

	// Override the config file with command line args, if relevant
	cfg := stack.Config
	if fVerbosity > 0     { cfg.Verbosity = fVerbosity }
	if fWorkers > 0       { cfg.Workers = fWorkers }
	if fOutputDir != ""   { cfg.OutputDir = fOutputDir }
	if fOutputs != ""     { cfg.Outputs = strings.Split(fOutputs, ",") }
	if fPreviewWidth > 0  { cfg.PreviewWidth = fPreviewWidth }
	if fFrameOrder != ""  { cfg.FrameOrder = fFrameOrder }
	if fReport != ""      { cfg.ReportFilename = fReport }
	if err := cfg.Finalize(); err != nil {
		log.Fatalf("config: %v", err)
	}
	stack.Config = cfg

	if cfg.Verbosity > 0 {
		log.Printf("Final configuration:-\n\n%s\n", cfg.AsYaml())
	}

	startTime := time.Now()
	if err := stack.Prepare(); err != nil {
		log.Fatal(err)
	}
	log.Printf("Frames loaded in %s: %s", time.Since(startTime), stack)

	res, err := tepcsp.Run(stack, cfg)
	if err != nil {
		log.Fatalf("run failed: %v", err)
	}
	log.Printf("Classified:\n%s", res.Report.Summary())

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		log.Fatalf("output dir: %v", err)
	}

	sinks := cfg.NewSinks(res.Report)
	if err := tepcsp.Publish(res.Rasters, sinks...); err != nil {
		log.Fatal(err)
	}
	if err := tepcsp.CloseSinks(sinks); err != nil {
		log.Fatal(err)
	}

	if cfg.WantsOutput("huemap") {
		written, err := tepcsp.WriteHueMaps(stack, res.Colors, cfg.OutputDir)
		if err != nil {
			log.Fatalf("huemap: %v", err)
		}
		log.Printf("Wrote %d hue maps to %s\n", len(written), cfg.OutputDir)
	}

	if cfg.ReportFilename != "" {
		filename := filepath.Join(cfg.OutputDir, cfg.ReportFilename)
		if err := res.Report.WriteYaml(filename); err != nil {
			log.Fatal(err)
		}
		log.Printf("Report written to %s\n", filename)
	}
}
