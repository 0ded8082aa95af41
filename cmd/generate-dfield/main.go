// Command generate-dfield builds .dfield files from occupancy bitmaps.
//
// Inputs are raw .dat buffers (dimensions given on the command line) or
// PNG/BMP/TIFF images (dimensions from the image header). A TOML manifest
// batches many fields at once, and --watch regenerates outputs when their
// inputs change.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gogpu/dfield"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
	With().Timestamp().Logger()

const exampleUsage = `  generate-dfield -I 128 -O 32 -S 16 card.dfield card.dat
  generate-dfield -O 64 -S 16 --threshold 96 glyph.dfield glyph.png
  generate-dfield --manifest assets/fields.toml --watch`

// imageExts are the input extensions decoded as images; everything else is
// treated as a raw occupancy buffer and needs explicit input dimensions.
var imageExts = map[string]bool{
	".png":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// job describes one field to generate.
type job struct {
	Input        string
	Output       string
	InputWidth   int32
	InputHeight  int32
	OutputWidth  int32
	OutputHeight int32
	Spread       int32
	Threshold    uint8
	Workers      int
}

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	var (
		inputSize    int32
		outputSize   int32
		inputWidth   int32
		inputHeight  int32
		outputWidth  int32
		outputHeight int32
		spread       int32
		threshold    uint8
		workers      int
		manifestPath string
		watch        bool
		verbose      bool
	)

	root := &cobra.Command{
		Use:     "generate-dfield [flags] OUTPUT_FILE INPUT_FILE",
		Short:   "Generate signed distance field textures from black/white bitmaps",
		Example: exampleUsage,
		Version: getVersion(),
		Args: func(cmd *cobra.Command, args []string) error {
			if manifestPath != "" {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}

			if manifestPath != "" {
				jobs, err := loadManifest(manifestPath)
				if err != nil {
					return err
				}
				if watch {
					return watchJobs(cmd.Context(), jobs)
				}
				return runJobs(jobs)
			}

			j := job{
				Input:        args[1],
				Output:       args[0],
				InputWidth:   inputWidth,
				InputHeight:  inputHeight,
				OutputWidth:  outputWidth,
				OutputHeight: outputHeight,
				Spread:       spread,
				Threshold:    threshold,
				Workers:      workers,
			}
			if inputSize > 0 {
				j.InputWidth, j.InputHeight = inputSize, inputSize
			}
			if outputSize > 0 {
				j.OutputWidth, j.OutputHeight = outputSize, outputSize
			}
			if err := validateJob(&j); err != nil {
				return err
			}
			if watch {
				return watchJobs(cmd.Context(), []job{j})
			}
			return runJobs([]job{j})
		},
	}

	flags := root.Flags()
	flags.Int32VarP(&inputSize, "input-size", "I", 0, "set both the width and height of the input")
	flags.Int32VarP(&outputSize, "output-size", "O", 0, "set both the width and height of the output")
	flags.Int32Var(&inputWidth, "input-width", 0, "set the width of the input")
	flags.Int32Var(&inputHeight, "input-height", 0, "set the height of the input")
	flags.Int32Var(&outputWidth, "output-width", 0, "set the width of the output")
	flags.Int32Var(&outputHeight, "output-height", 0, "set the height of the output")
	flags.Int32VarP(&spread, "spread", "S", 0, "boundary search radius in input pixels")
	flags.Uint8Var(&threshold, "threshold", 0, "foreground luma threshold for image inputs (default 128)")
	flags.IntVar(&workers, "workers", 0, "generation worker count (default GOMAXPROCS)")
	flags.StringVar(&manifestPath, "manifest", "", "generate every field listed in a TOML manifest")
	flags.BoolVar(&watch, "watch", false, "keep running and regenerate outputs when inputs change")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("generate-dfield failed")
		os.Exit(1)
	}
}

// validateJob fills defaults and rejects under-specified jobs before any
// file is touched.
func validateJob(j *job) error {
	if j.Input == "" || j.Output == "" {
		return fmt.Errorf("input and output paths are required")
	}
	if !isImageInput(j.Input) && (j.InputWidth <= 0 || j.InputHeight <= 0) {
		return fmt.Errorf("%s: raw inputs need an input size (no default)", j.Input)
	}
	if j.OutputWidth <= 0 || j.OutputHeight <= 0 {
		return fmt.Errorf("%s: output size not specified (no default)", j.Input)
	}
	if j.Spread <= 0 {
		return fmt.Errorf("%s: spread not specified (no default)", j.Input)
	}
	return nil
}

func isImageInput(path string) bool {
	return imageExts[strings.ToLower(filepath.Ext(path))]
}

// runJobs generates every job, continuing past failures so a batch reports
// all broken assets in one run.
func runJobs(jobs []job) error {
	failed := 0
	for i := range jobs {
		if err := runJob(&jobs[i]); err != nil {
			log.Error().Err(err).Str("input", jobs[i].Input).Msg("generation failed")
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d fields failed", failed, len(jobs))
	}
	return nil
}

// runJob loads one input, generates the field and writes the output.
func runJob(j *job) error {
	start := time.Now()

	var (
		data          []uint8
		width, height int32
	)
	if isImageInput(j.Input) {
		bm, err := dfield.ReadImageFile(j.Input, j.Threshold)
		if err != nil {
			return err
		}
		data, width, height = bm.Data(), bm.Width(), bm.Height()
	} else {
		var err error
		data, err = dfield.ReadRawFile(j.Input, j.InputWidth, j.InputHeight)
		if err != nil {
			return err
		}
		width, height = j.InputWidth, j.InputHeight
	}

	field, err := dfield.Generate(data, width, height,
		j.OutputWidth, j.OutputHeight, j.Spread,
		dfield.WithWorkers(j.Workers))
	if err != nil {
		return err
	}

	if err := dfield.WriteFile(j.Output, field); err != nil {
		return err
	}

	log.Info().
		Str("input", j.Input).
		Str("output", j.Output).
		Int32("width", field.Width()).
		Int32("height", field.Height()).
		Int32("spread", j.Spread).
		Dur("elapsed", time.Since(start)).
		Msg("field generated")
	return nil
}
