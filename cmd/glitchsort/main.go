// Command glitchsort generates a banded Perlin noise image, or loads one,
// and pixel-sorts the runs selected by a luminance mask.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	gs "github.com/setanarut/glitchsort"
	"github.com/setanarut/glitchsort/utils"
)

type flags struct {
	in, out                       string
	maskOut, noiseOut, paletteOut string
	width, height                 int
	thresholds                    []float64
	scaleX, scaleY                float64
	seed                          int64
	background                    string
	useBackground                 bool
	palette, paletteFrom          string
	low, high                     uint8
	coverage                      float64
	workers                       int
	verbose                       bool
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	def := gs.DefaultOptions()
	f := &flags{}
	cmd := &cobra.Command{
		Use:          "glitchsort",
		Short:        "Pixel-sort luminance-masked runs of a generated or loaded image",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd, f)
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&f.in, "in", "", "sort this image instead of generating one")
	fs.StringVar(&f.out, "out", "output.png", "sorted image path")
	fs.StringVar(&f.maskOut, "mask-out", "", "write the luminance mask here")
	fs.StringVar(&f.noiseOut, "noise-out", "", "write the generated noise image here")
	fs.StringVar(&f.paletteOut, "palette-out", "", "write the palette swatch here")
	fs.IntVar(&f.width, "width", def.Width, "generated image width")
	fs.IntVar(&f.height, "height", def.Height, "generated image height")
	fs.Float64SliceVar(&f.thresholds, "thresholds", def.Thresholds, "ascending noise thresholds, one band each")
	fs.Float64Var(&f.scaleX, "scale-x", def.Noise.ScaleX, "horizontal noise scale")
	fs.Float64Var(&f.scaleY, "scale-y", def.Noise.ScaleY, "vertical noise scale")
	fs.Int64Var(&f.seed, "seed", 0, "noise and palette seed (0: from clock)")
	fs.StringVar(&f.background, "background", "#000000", "band 0 color with --use-background")
	fs.BoolVar(&f.useBackground, "use-background", false, "paint band 0 with --background")
	fs.StringVar(&f.palette, "palette", "random", "random, happy, dominantcolor or kmeans")
	fs.StringVar(&f.paletteFrom, "palette-from", "", "reference image for dominantcolor/kmeans palettes")
	fs.Uint8Var(&f.low, "low", def.MaskLow, "lowest luminance sorted")
	fs.Uint8Var(&f.high, "high", def.MaskHigh, "highest luminance sorted")
	fs.Float64Var(&f.coverage, "coverage", 0, "pick low/high to sort about this fraction of pixels (0: off)")
	fs.IntVar(&f.workers, "workers", 0, "row workers (0: GOMAXPROCS)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging")
	return cmd
}

func run(ctx context.Context, cmd *cobra.Command, f *flags) error {
	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}
	gs.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	opt := gs.DefaultOptions()
	opt.Width, opt.Height = f.width, f.height
	opt.Thresholds = f.thresholds
	opt.Noise.ScaleX, opt.Noise.ScaleY = f.scaleX, f.scaleY
	opt.Noise.Seed = f.seed
	if f.seed == 0 {
		opt.Noise.Seed = utils.TimeSeed()
	}
	opt.UseBackground = f.useBackground
	bg, err := utils.ParseHexColor(f.background)
	if err != nil {
		return fmt.Errorf("--background: %w", err)
	}
	opt.Background = bg
	opt.MaskLow, opt.MaskHigh = f.low, f.high
	opt.Workers = f.workers

	var s *gs.Sorter
	if f.in != "" {
		img, err := utils.ReadImage(f.in)
		if err != nil {
			return err
		}
		s = gs.NewSorter(img)
	} else {
		if err := opt.Validate(); err != nil {
			return err
		}
		s = gs.NewSorter(nil)
		if mode, ok := gs.ParsePaletteMode(f.palette); ok {
			opt.PaletteMode = mode
			s.Generate(opt)
		} else {
			method, ok := utils.ParsePaletteMethod(f.palette)
			if !ok {
				return fmt.Errorf("--palette: unknown palette %q", f.palette)
			}
			if f.paletteFrom == "" {
				return fmt.Errorf("--palette %s needs --palette-from", f.palette)
			}
			ref, err := utils.ReadImage(f.paletteFrom)
			if err != nil {
				return err
			}
			p := utils.ExtractPalette(ref, len(opt.Thresholds), method)
			p.SortByBrightness()
			s.GenerateWithPalette(opt, p)
		}
	}

	if f.coverage > 0 {
		opt.MaskLow, opt.MaskHigh = gs.MaskRange(gs.ToLuminance(s.InputImage), f.coverage)
		gs.Logger().Info("mask range from coverage", "coverage", f.coverage, "low", opt.MaskLow, "high", opt.MaskHigh)
	}
	if err := s.Build(ctx, opt); err != nil {
		return err
	}

	if f.noiseOut != "" && s.Noise != nil {
		if err := utils.SaveImage(s.InputImage, f.noiseOut); err != nil {
			return err
		}
	}
	if f.paletteOut != "" && len(s.Palette) > 0 {
		if err := utils.SavePalette(s.Palette, 64, f.paletteOut); err != nil {
			return err
		}
	}
	if f.maskOut != "" {
		if err := utils.SaveImage(s.Mask, f.maskOut); err != nil {
			return err
		}
	}
	return utils.SaveImage(s.Output, f.out)
}
