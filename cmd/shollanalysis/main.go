package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"shollanalysis/internal/models"
	"shollanalysis/pkg/analysis"
	"shollanalysis/pkg/config"
	"shollanalysis/pkg/export"
	"shollanalysis/pkg/profile"
	"shollanalysis/pkg/visualization"
)

func main() {
	// Parse command line arguments
	imagePath := flag.String("image", "", "Path to a segmented 2D image")
	stackDir := flag.String("stack", "", "Directory containing a segmented image stack (3D)")
	configPath := flag.String("config", "", "Optional YAML configuration file")
	writeConfig := flag.String("write-config", "", "Write the default configuration to the given path and exit")

	centerX := flag.Int("cx", -1, "X coordinate of the center of analysis (pixels)")
	centerY := flag.Int("cy", -1, "Y coordinate of the center of analysis (pixels)")
	centerZ := flag.Int("cz", 0, "Slice index of the center of analysis (3D only)")
	pixelSize := flag.Float64("pixelsize", 1.0, "Physical size of a pixel/voxel edge")

	startRadius := flag.Float64("start", 10.0, "Starting radius (physical units)")
	endRadius := flag.Float64("end", 100.0, "Ending radius (physical units)")
	stepRadius := flag.Float64("step", 1.0, "Radius step size (physical units)")
	spans := flag.Int("spans", 1, "Samples per radius (2D only, 1-10)")
	binMode := flag.String("bin", "mean", "Sub-sample integration: mean or median")
	restrict := flag.String("restrict", "", "Restrict analysis to a hemicircle: above, below, left or right")
	noSpike := flag.Bool("no-spike-suppression", false, "Disable the spike suppression correction (2D)")

	method := flag.String("method", "linear", "Analysis method: linear, normalized, semilog or loglog")
	degree := flag.Int("degree", 5, "Polynomial degree for the linear method (4-8)")
	fitCurve := flag.Bool("fit", true, "Fit the profile and compute descriptors")

	lower := flag.Float64("lower", -1, "Lower threshold of the foreground band (-1 for auto)")
	upper := flag.Float64("upper", -1, "Upper threshold of the foreground band (-1 for auto)")

	outDir := flag.String("out", "sholl_results", "Directory for output files")
	saveCSV := flag.Bool("csv", true, "Save the profile as CSV")
	savePlot := flag.Bool("plot", true, "Save the profile plot as PNG")
	saveMask := flag.Bool("mask", false, "Save the intersections mask as PNG")
	flag.Parse()

	if *writeConfig != "" {
		if err := config.CreateDefaultConfigFile(*writeConfig); err != nil {
			log.Fatalf("Failed to write config: %v", err)
		}
		fmt.Printf("Default configuration written to %s\n", *writeConfig)
		return
	}

	// Load configuration and apply command line overrides
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *configPath == "" {
		cfg.Sampling.StartRadius = *startRadius
		cfg.Sampling.EndRadius = *endRadius
		cfg.Sampling.StepRadius = *stepRadius
		cfg.Sampling.SamplesPerRadius = *spans
		cfg.Sampling.Combine = *binMode
		cfg.Sampling.SpikeSuppression = !*noSpike
		cfg.Sampling.Restrict = *restrict
		cfg.Threshold.Auto = *lower < 0 || *upper < 0
		cfg.Threshold.Lower = *lower
		cfg.Threshold.Upper = *upper
		cfg.Fit.Enabled = *fitCurve
		cfg.Fit.Method = *method
		cfg.Fit.PolynomialDegree = *degree
		cfg.Output.Directory = *outDir
		cfg.Output.SaveCSV = *saveCSV
		cfg.Output.SavePlot = *savePlot
		cfg.Output.SaveMask = *saveMask
	}

	// Validate inputs
	if (*imagePath == "") == (*stackDir == "") {
		fmt.Fprintln(os.Stderr, "Exactly one of -image or -stack is required")
		flag.Usage()
		os.Exit(1)
	}
	if *centerX < 0 || *centerY < 0 {
		fmt.Fprintln(os.Stderr, "Center coordinates -cx and -cy are required")
		flag.Usage()
		os.Exit(1)
	}

	fmt.Println("================================")
	fmt.Println("SHOLL ANALYSIS OF SEGMENTED ARBORS")
	fmt.Println("Linear, Normalized, Semi-log and Log-log methods after")
	fmt.Println("Sholl (1953) and Milosevic & Ristanovic (2007)")
	fmt.Println("================================")

	// Step 1: Load the segmented image or stack
	fmt.Println("Step 1: Loading segmented input...")
	var stack *models.Stack
	var title string
	if *imagePath != "" {
		stack, err = models.LoadImage(*imagePath)
		title = strings.TrimSuffix(filepath.Base(*imagePath), filepath.Ext(*imagePath))
	} else {
		stack, err = models.LoadStack(*stackDir)
		title = filepath.Base(*stackDir)
	}
	if err != nil {
		log.Fatalf("Loading failed: %v", err)
	}
	stack.PixelSize = *pixelSize
	fmt.Printf("Loaded %dx%dx%d input, pixel size %.3g\n", stack.Width, stack.Height, stack.Depth, stack.PixelSize)

	// Step 2: Resolve the foreground threshold band
	fmt.Println("Step 2: Resolving threshold band...")
	var band models.ThresholdBand
	if cfg.Threshold.Auto {
		band = models.AutoBand(stack)
		fmt.Printf("Auto threshold band: [%.0f, %.0f]\n", band.Lower, band.Upper)
	} else {
		band = models.ThresholdBand{Lower: cfg.Threshold.Lower, Upper: cfg.Threshold.Upper}
		fmt.Printf("Threshold band: [%.0f, %.0f]\n", band.Lower, band.Upper)
	}

	combine, err := profile.ParseCombineMode(cfg.Sampling.Combine)
	if err != nil {
		log.Fatalf("Invalid parameters: %v", err)
	}
	mthd, err := analysis.ParseMethod(cfg.Fit.Method)
	if err != nil {
		log.Fatalf("Invalid parameters: %v", err)
	}

	// Step 3: Sample the radius series
	fmt.Println("Step 3: Sampling intersections...")
	profiler, err := profile.NewProfiler(stack, band, profile.Params{
		CenterX:          *centerX,
		CenterY:          *centerY,
		CenterZ:          *centerZ,
		StartRadius:      cfg.Sampling.StartRadius,
		EndRadius:        cfg.Sampling.EndRadius,
		StepRadius:       cfg.Sampling.StepRadius,
		SamplesPerRadius: cfg.Sampling.SamplesPerRadius,
		Combine:          combine,
		SpikeSuppression: cfg.Sampling.SpikeSuppression,
		Restrict:         cfg.Sampling.Restrict,
	})
	if err != nil {
		log.Fatalf("Invalid parameters: %v", err)
	}

	// Ctrl-C requests cooperative cancellation; the partial profile sampled
	// so far is still reported.
	var cancelled atomic.Bool
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancelled.Store(true)
	}()
	profiler.Cancel = cancelled.Load
	if cfg.Output.Verbose {
		profiler.Progress = func(done, total int, msg string) {
			fmt.Printf("\r%s (%.1f%%)", msg, float64(done)/float64(total)*100)
		}
	}

	startTime := time.Now()
	prof, err := profiler.Run()
	if err != nil {
		log.Fatalf("Sampling failed: %v", err)
	}
	fmt.Printf("\nSampled %d radii in %.2f seconds\n", len(prof.Radii), time.Since(startTime).Seconds())
	if prof.Partial {
		fmt.Println("Warning: run was cancelled; reporting the partial profile")
	}

	// Step 4: Analyze the profile
	fmt.Println("Step 4: Analyzing profile...")
	opts := analysis.Options{
		Method:           mthd,
		PolynomialDegree: cfg.Fit.PolynomialDegree,
		FitCurve:         cfg.Fit.Enabled,
		ThreeD:           stack.Is3D(),
	}
	res, err := analysis.Analyze(prof.Radii, prof.Counts, opts)
	if errors.Is(err, analysis.ErrEmptyProfile) {
		log.Fatalf("Error: all intersection counts were zero")
	} else if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}
	if res.Note != "" {
		fmt.Printf("Note: %s\n", res.Note)
	}

	printSummary(analysis.NewSummary(prof.Radii, prof.Counts, res, opts))

	// Step 5: Write requested artifacts; failures here are non-fatal
	fmt.Println("Step 5: Writing output files...")
	writeArtifacts(cfg, stack, band, profiler, prof, res, opts, title)

	fmt.Println("Done.")
}

// printSummary renders the results table on standard output.
func printSummary(s analysis.Summary) {
	fmt.Printf("\nSholl Results [%s]:\n", s.Method)
	fmt.Printf("=======================================\n")
	fmt.Printf("Sampled radii: %d\n", s.SampledRadii)
	fmt.Printf("Sum of intersections: %.1f\n", s.SumInters)
	fmt.Printf("Average intersections: %.3f\n", s.AvgInters)
	fmt.Printf("Zero-count radii: %d\n", s.ZeroCounts)
	fmt.Printf("Sholl decay: %.5f\n", s.Decay)
	fmt.Printf("R^2 (decay): %.3f\n", s.DecayRSquared)
	if s.FitPerformed {
		fmt.Printf("R^2 (curve): %.3f\n", s.RSquared)
		fmt.Printf("Critical value: %.2f\n", s.CriticalValue)
		fmt.Printf("Critical radius: %.2f\n", s.CriticalRadius)
		fmt.Printf("Mean value: %.2f\n", s.MeanValue)
		fmt.Printf("Ramification index: %.2f\n", s.RamificationIndex)
		fmt.Printf("Polynomial degree: %.0f\n", s.PolynomialDegree)
	}
}

// writeArtifacts saves the CSV table, the plot and the mask as configured.
// Export failures are logged and do not affect the analysis outcome.
func writeArtifacts(cfg *config.Config, stack *models.Stack, band models.ThresholdBand,
	profiler *profile.Profiler, prof *profile.Profile, res *analysis.Result,
	opts analysis.Options, title string) {

	if cfg.Output.SaveCSV {
		path := filepath.Join(cfg.Output.Directory, title+"_profile.csv")
		if err := export.WriteProfile(path, "radius", "inters.", prof.Radii, prof.Counts); err != nil {
			fmt.Printf("Warning: Failed to save profile CSV: %v\n", err)
		} else {
			fmt.Printf("Profile table saved to: %s\n", path)
		}
		if res.FitPerformed {
			yLabel := strings.ToLower(opts.Method.String()) + " (fitted)"
			path = filepath.Join(cfg.Output.Directory, title+"_fit.csv")
			if err := export.WriteProfile(path, "x", yLabel, res.X, res.FitY); err != nil {
				fmt.Printf("Warning: Failed to save fitted CSV: %v\n", err)
			}
		}
	}

	if cfg.Output.SavePlot {
		path := filepath.Join(cfg.Output.Directory, title+"_plot.png")
		if err := os.MkdirAll(cfg.Output.Directory, 0755); err != nil {
			fmt.Printf("Warning: Failed to create output directory: %v\n", err)
		} else if err := visualization.SaveProfilePlot(path, title, res, opts); err != nil {
			fmt.Printf("Warning: Failed to save plot: %v\n", err)
		} else {
			fmt.Printf("Profile plot saved to: %s\n", path)
		}
	}

	if cfg.Output.SaveMask {
		values := res.Y
		if res.FitPerformed {
			values = res.FitY
		}
		radii := profiler.Radii()
		lastRadius := int(radii[len(radii)-1]/stack.PixelSize + 0.5)
		cx, cy, _ := profiler.Center()
		img := visualization.IntersectionsMask(stack, band, profiler.Bounds(), visualization.MaskParams{
			CenterX:     cx,
			CenterY:     cy,
			StartRadius: radii[0],
			LastRadius:  lastRadius,
			PixelSize:   stack.PixelSize,
		}, values)
		path := filepath.Join(cfg.Output.Directory, title+"_mask.png")
		if err := os.MkdirAll(cfg.Output.Directory, 0755); err != nil {
			fmt.Printf("Warning: Failed to create output directory: %v\n", err)
		} else if err := visualization.SaveMask(img, path); err != nil {
			fmt.Printf("Warning: Failed to save mask: %v\n", err)
		} else {
			fmt.Printf("Intersections mask saved to: %s\n", path)
		}
	}
}
