package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shelfscan/labelscan/internal/classify"
	"github.com/shelfscan/labelscan/internal/config"
	"github.com/shelfscan/labelscan/internal/export"
	"github.com/shelfscan/labelscan/internal/imaging"
	"github.com/shelfscan/labelscan/internal/ocr"
	"github.com/shelfscan/labelscan/internal/pipeline"
	"github.com/shelfscan/labelscan/internal/preprocess"
	"github.com/shelfscan/labelscan/internal/visual"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("labelscan %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	fs := flag.NewFlagSet("labelscan", flag.ExitOnError)
	var (
		configDir     = fs.String("config", "", "directory containing labelscan.yaml (default: working directory)")
		mode          = fs.String("mode", "", "preprocessing mode: "+strings.Join(preprocess.ModeNames(), ", "))
		minConfidence = fs.Float64("min-confidence", -1, "minimum OCR confidence for classification (0-100)")
		resizeWidth   = fs.Int("resize-width", -1, "force working width in pixels (0 = automatic)")
		denoise       = fs.Bool("denoise", true, "apply median denoising during preprocessing")
		language      = fs.String("lang", "", "OCR language code")
		outputDir     = fs.String("out", "", "directory for export files")
		formats       = fs.String("format", "", "comma-separated export formats: "+strings.Join(config.ValidFormats, ", "))
		batch         = fs.Bool("batch", false, "treat the argument as a directory and process every image in it")
		workers       = fs.Int("workers", 0, "batch worker count (0 = number of CPU cores)")
		visualize     = fs.Bool("visualize", false, "write a PNG with detected regions outlined")
		verbose       = fs.Bool("verbose", false, "enable debug logging")
	)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "labelscan - extract product information from label photographs")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Usage: labelscan [options] <image-or-directory>")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Options:")
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}
	target := fs.Arg(0)

	cfg, err := config.Load(*configDir)
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	// Flags override file and environment settings.
	if *mode != "" {
		cfg.Mode = *mode
	}
	if *minConfidence >= 0 {
		cfg.MinConfidence = *minConfidence
	}
	if *resizeWidth >= 0 {
		cfg.ResizeWidth = *resizeWidth
	}
	if *language != "" {
		cfg.Language = *language
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if *formats != "" {
		cfg.Formats = strings.Split(*formats, ",")
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "denoise" {
			cfg.Denoise = *denoise
		}
	})
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	opts := pipeline.Options{
		Mode:          preprocess.ParseMode(cfg.Mode),
		MinConfidence: cfg.MinConfidence,
		ResizeWidth:   cfg.ResizeWidth,
		Denoise:       cfg.Denoise,
		Language:      cfg.Language,
		OCRTimeout:    cfg.OCRTimeout(),
	}
	p := pipeline.New(ocr.NewTesseract(), opts)
	ctx := context.Background()

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		log.WithError(err).Fatal("cannot create output directory")
	}

	if *batch {
		runBatch(ctx, log, p, target, cfg)
		return
	}
	runSingle(ctx, log, p, target, cfg, *visualize)
}

func runSingle(ctx context.Context, log *logrus.Logger, p *pipeline.Pipeline, path string, cfg config.Config, visualize bool) {
	res, err := p.ProcessFile(ctx, path)
	if err != nil {
		log.WithError(err).Fatal("processing failed")
	}
	if res.NoTextDetected {
		log.WithField("file", path).Warn("no text detected")
	}

	fmt.Print(export.FormatReport(filepath.Base(path), time.Now().Format("2006-01-02 15:04:05"), res.Info))
	writeExports(log, path, res.Info, cfg)

	if visualize && len(res.Regions) > 0 {
		img, err := imaging.Load(path)
		if err != nil {
			log.WithError(err).Error("cannot reload image for overlay")
			return
		}
		overlayPath := filepath.Join(cfg.OutputDir, overlayName(path))
		if err := visual.SaveOverlay(overlayPath, img, res.Regions); err != nil {
			log.WithError(err).Error("overlay export failed")
			return
		}
		log.WithField("file", overlayPath).Info("overlay written")
	}
}

func runBatch(ctx context.Context, log *logrus.Logger, p *pipeline.Pipeline, dir string, cfg config.Config) {
	paths, err := collectImages(dir)
	if err != nil {
		log.WithError(err).Fatal("cannot scan input directory")
	}
	if len(paths) == 0 {
		log.WithField("dir", dir).Fatal("no supported images found")
	}
	log.WithFields(logrus.Fields{"dir": dir, "images": len(paths)}).Info("starting batch run")

	b := pipeline.NewBatch(p, cfg.Workers, log)
	results, summary := b.Run(ctx, paths)

	name, err := export.WriteBatchReport(results, summary, cfg.OutputDir)
	if err != nil {
		log.WithError(err).Fatal("batch report failed")
	}
	log.WithFields(logrus.Fields{
		"report":           name,
		"total":            summary.TotalFiles,
		"successful":       summary.Successful,
		"failed":           summary.Failed,
		"no_text_detected": summary.NoTextDetected,
	}).Info("batch complete")
}

func writeExports(log *logrus.Logger, sourceFile string, info *classify.ProductInfo, cfg config.Config) {
	for _, format := range cfg.Formats {
		var (
			name string
			err  error
		)
		switch format {
		case "json":
			name, err = export.WriteJSON(sourceFile, info, cfg.OutputDir)
		case "csv":
			name, err = export.WriteCSV(sourceFile, info, cfg.OutputDir)
		case "txt":
			name, err = export.WriteText(sourceFile, info, cfg.OutputDir)
		case "xlsx":
			name, err = export.WriteXLSX(sourceFile, info, cfg.OutputDir)
		}
		if err != nil {
			log.WithError(err).WithField("format", format).Error("export failed")
			continue
		}
		log.WithField("file", name).Info("export written")
	}
}

func collectImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if imaging.SupportedFile(path) {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func overlayName(sourceFile string) string {
	base := strings.TrimSuffix(filepath.Base(sourceFile), filepath.Ext(sourceFile))
	return base + "_regions.png"
}
