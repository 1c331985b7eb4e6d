package main

import(
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/abworrall/tep-csp/pkg/tepcsp"
)

// Summarizes bundles (*.cbor.zst) and reports (*.yaml) written by tepcsp,
// and optionally unpacks a bundle's rasters as TIFFs.

var(
	fExtract string
)

func init() {
	flag.StringVar(&fExtract, "extract", "", "write each bundled raster frame as a TIFF into this dir")
	flag.Parse()
}

func main() {
	if flag.NArg() == 0 {
		log.Fatal("usage: tepcsp-dump [-extract dir] <bundle.cbor.zst|report.yaml>...")
	}

	for _, filename := range flag.Args() {
		switch {
		case strings.HasSuffix(filename, ".yaml"), strings.HasSuffix(filename, ".yml"):
			rep, err := tepcsp.LoadReport(filename)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Printf("report: %s\n%s\n", filename, rep.Summary())

		default:
			if err := dumpBundle(filename); err != nil {
				log.Fatal(err)
			}
		}
	}
}

func dumpBundle(filename string) error {
	b, err := tepcsp.ReadBundleFile(filename)
	if err != nil {
		return err
	}

	fmt.Printf("bundle: %s\n", filename)
	fmt.Printf("  run_id:  %s\n", b.RunID)
	fmt.Printf("  created: %s\n", b.Created)
	for _, br := range b.Rasters {
		r, err := br.Raster()
		if err != nil {
			return fmt.Errorf("%s: %w", filename, err)
		}
		fmt.Printf("  %s\n", r)

		if fExtract != "" {
			sink := tepcsp.DirSink{Dir: fExtract, Format: "tiff"}
			if err := sink.Show(filepath.Base(strings.TrimSuffix(filename, ".cbor.zst"))+"-"+r.Title(), r); err != nil {
				return err
			}
			fmt.Printf("    extracted %d frames\n", len(sink.Written))
		}
	}
	fmt.Printf("%s\n", b.Report.Summary())
	return nil
}
