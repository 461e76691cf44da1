package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"

	"github.com/ivlev/animcurve/internal/config"
	"github.com/ivlev/animcurve/internal/engine"
	"github.com/ivlev/animcurve/internal/recording"
)

var buildVersion = "dev"

const recordingsDir = "input/recordings"

// ensureDirs creates the default working directories, logging the ones
// that could not be created. It returns how many failed.
func ensureDirs(dirs ...string) int {
	failed := 0
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0755); err != nil {
			log.Printf("[!] Failed to create %s: %v", d, err)
			failed++
		}
	}
	return failed
}

func main() {
	ensureDirs(recordingsDir, "output")

	inputPtr := flag.String("input", "", "Recording file or directory (default: newest file in input/recordings/)")
	configPtr := flag.String("config", "", "Editor config YAML (scales, geometry, colours)")
	outputPtr := flag.String("output", "output", "Directory for exported clips and previews")
	scrollPtr := flag.Float64("scroll", -1, "Timeline scroll fraction 0..1 applied after the edit script (-1 keeps the script's)")
	hidePtr := flag.String("hide", "", "Comma-separated channels to hide, e.g. ROT_X,SCALE_Z")
	previewPtr := flag.Bool("preview", false, "Render a PNG preview of the graph next to each clip")
	qrPtr := flag.Bool("qr", false, "Stamp the clip ID as a QR code on the preview")
	workersPtr := flag.Int("workers", runtime.NumCPU(), "Recordings processed in parallel")
	statsPtr := flag.Bool("stats", false, "Print a performance report and append it to benchmark.log")

	flag.Parse()

	inputPath := *inputPtr
	var paths []string
	if inputPath == "" {
		latest, err := recording.FindLatest(recordingsDir)
		if err != nil {
			log.Fatalf("[-] Error: %v. Put a recording into %s/", err, recordingsDir)
		}
		inputPath = latest
		paths = []string{latest}
		fmt.Printf("[*] Selected recording: %s\n", inputPath)
	} else {
		var err error
		paths, err = recording.Resolve(inputPath)
		if err != nil {
			log.Fatalf("[-] Error: %v", err)
		}
	}

	editor, err := config.LoadEditor(*configPtr)
	if err != nil {
		log.Fatalf("[-] Config error: %v", err)
	}

	var hidden []string
	if *hidePtr != "" {
		hidden = strings.Split(*hidePtr, ",")
		if _, err := engine.HiddenChannels(hidden); err != nil {
			log.Fatalf("[-] Error: -hide: %v", err)
		}
	}

	cfg := &config.Config{
		InputPath:    inputPath,
		OutputDir:    *outputPtr,
		EditorConfig: *configPtr,
		Scroll:       *scrollPtr,
		Hidden:       hidden,
		Preview:      *previewPtr,
		StampQR:      *qrPtr,
		Workers:      *workersPtr,
		ShowStats:    *statsPtr,
		BuildVersion: buildVersion,
		Editor:       editor,
	}

	results, err := engine.NewRunner(cfg).Run(context.Background(), paths)
	if err != nil {
		log.Fatalf("[-] Project error: %v", err)
	}

	for _, res := range results {
		fmt.Printf("[+++] Success! Clip: %s\n", res.ClipPath)
		if res.PreviewPath != "" {
			fmt.Printf("[+++] Preview: %s\n", res.PreviewPath)
		}
	}
}
