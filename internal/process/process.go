// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package process decodes input images, applies the contrast, brighten and
// grayscale transforms, and writes the processed files the PDF is built from.
package process

import (
	"fmt"
	"image"
	"io"
	"os"
	"time"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	_ "golang.org/x/image/webp"

	"github.com/pdiddy/pdfify/pkg/types"
)

// Options holds the per-run settings for image processing.
type Options struct {
	Contrast float64
	Brighten int
	Verbose  bool
	// Progress draws a progress bar when Verbose is off.
	Progress bool
}

// Processor runs the image transforms for every page of a run.
type Processor struct {
	out         io.Writer
	progressOut io.Writer
	log         zerolog.Logger

	decode func(path string) (image.Image, error)
	save   func(img image.Image, path string) error
}

// New returns a Processor that prints status lines to out and diagnostics to
// log. Progress bars go to stderr.
func New(out io.Writer, log zerolog.Logger) *Processor {
	return &Processor{
		out:         out,
		progressOut: os.Stderr,
		log:         log,
		decode:      func(path string) (image.Image, error) { return imaging.Open(path) },
		save:        saveImage,
	}
}

// ProcessAll processes pages in order. The first failure stops the loop and
// is returned as a *types.StageError; files written before it are kept.
func (p *Processor) ProcessAll(pages []types.Page, opts Options) error {
	if opts.Verbose {
		fmt.Fprintf(p.out, "using contrast=%v and brighten=%d\n", opts.Contrast, opts.Brighten)
	}

	var bar *progressbar.ProgressBar
	if opts.Progress && !opts.Verbose {
		bar = progressbar.NewOptions(len(pages),
			progressbar.OptionSetWriter(p.progressOut),
			progressbar.OptionSetDescription("Processing"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
	}

	for _, page := range pages {
		if opts.Verbose {
			fmt.Fprintf(p.out, "processing %s\n", page.Original)
		}
		if err := p.ProcessPage(page, opts); err != nil {
			return err
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(p.progressOut)
	}
	return nil
}

// ProcessPage decodes page.Original, adjusts it and writes page.Processed.
func (p *Processor) ProcessPage(page types.Page, opts Options) error {
	start := time.Now()

	img, err := p.decode(page.Original)
	if err != nil {
		return &types.StageError{Stage: types.StageProcess, Op: "decode", Path: page.Original, Err: err}
	}

	gray := Adjust(img, opts.Contrast, opts.Brighten)

	if err := p.save(gray, page.Processed); err != nil {
		return &types.StageError{Stage: types.StageProcess, Op: "save", Path: page.Processed, Err: err}
	}

	b := gray.Bounds()
	p.log.Debug().
		Int("page", page.Index).
		Str("original", page.Original).
		Str("processed", page.Processed).
		Int("width", b.Dx()).
		Int("height", b.Dy()).
		Dur("took", time.Since(start)).
		Msg("page processed")
	return nil
}

// saveImage writes img in the format named by path's extension. Extensions
// the encoder cannot write (webp inputs, for one) get PNG data under the
// same name.
func saveImage(img image.Image, path string) error {
	if _, err := imaging.FormatFromFilename(path); err == nil {
		return imaging.Save(img, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := imaging.Encode(f, img, imaging.PNG); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
