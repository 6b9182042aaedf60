// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdfify CLI: it adjusts a list of
// images (contrast, brighten, grayscale) and merges them into one PDF.
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfify/internal/config"
	"github.com/pdiddy/pdfify/internal/logging"
	"github.com/pdiddy/pdfify/internal/pipeline"
	"github.com/pdiddy/pdfify/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// newRootCmd builds the pdfify command with its own viper instance.
func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "pdfify -f IMAGE [IMAGE...] [flags]",
		Short: "Combine images into a grayscale, contrast-boosted PDF",
		Long: `pdfify adjusts each input image (contrast, then brightness, then grayscale),
writes the result into the working directory as p<N>_<name>, and merges the
processed images into a single PDF in input order.

By default the PDF is assembled by ImageMagick (magick, or convert on older
installs). The pdfcpu and gofpdf backends build the PDF without external tools.

Options can also be set in pdfify.yaml (./ or ~/.config/pdfify/) or through
PDFIFY_* environment variables; a .env file in the working directory is read.`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPdfify(cmd, v, args)
		},
	}

	f := cmd.Flags()
	f.StringArrayP(config.KeyFiles, "f", nil, "image file to pdfify; repeat for more pages, in page order")
	f.StringP(config.KeyOutput, "o", types.DefaultOutput, "output file name")
	f.BoolP(config.KeyVerbose, "v", false, "show verbose output")
	f.BoolP(config.KeyDeleteImages, "d", false, "delete both the processed and original images after pdfifying")
	f.Bool(config.KeyDeleteOriginal, false, "delete only the original images after pdfifying")
	f.Bool(config.KeyDeleteProcessed, false, "delete only the processed images after pdfifying")
	f.IntP(config.KeyBrighten, "b", types.DefaultBrighten, "adjust brightness by a custom amount (integer)")
	f.Float64P(config.KeyContrast, "c", types.DefaultContrast, "adjust contrast by a custom amount (-100.0 to 100.0 percent)")
	f.String(config.KeyWorkDir, types.DefaultWorkDir, "directory for processed images")
	f.String(config.KeyBackend, string(types.BackendConvert), "PDF backend: convert, pdfcpu, or gofpdf")
	f.String(config.KeyTool, "", "composition binary for the convert backend (default: magick, then convert)")
	f.Bool(config.KeyProgress, false, "show a progress bar while processing")
	f.Bool(config.KeyVerify, false, "check that the PDF has one page per image")
	f.String(config.KeyManifest, "", "write a YAML manifest of the run to this path")
	f.String(config.KeyLogLevel, types.DefaultLogLevel, "diagnostic log level: debug, info, warn, error, off")

	cmd.PersistentFlags().String("config", "", "config file (default: ./pdfify.yaml or ~/.config/pdfify/pdfify.yaml)")

	cobra.CheckErr(v.BindPFlags(f))

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func runPdfify(cmd *cobra.Command, v *viper.Viper, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	used, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}

	cfg, err := config.Resolve(v, args)
	if err != nil {
		return err
	}

	log := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	if used != "" {
		log.Info().Str("path", used).Msg("using config file")
	}

	p, err := pipeline.New(cfg, cmd.OutOrStdout(), log)
	if err != nil {
		return err
	}

	_, err = p.Run(context.Background(), cfg)
	return err
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

