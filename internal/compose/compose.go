// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compose merges processed page images into a single PDF. The
// default backend shells out to ImageMagick; pdfcpu and gofpdf backends build
// the PDF in-process.
package compose

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pdfify/internal/tool"
	"github.com/pdiddy/pdfify/pkg/types"
)

// Composer writes a PDF at output with one page per input image, in order.
type Composer interface {
	Compose(ctx context.Context, inputs []string, output string) error
}

// New returns the Composer for cfg.Backend. For the convert backend it
// resolves the composition binary, honoring cfg.Tool.
func New(cfg types.Config, log zerolog.Logger) (Composer, error) {
	switch cfg.Backend {
	case types.BackendConvert, "":
		t, err := tool.Detect(cfg.Tool)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("tool", t.Name()).Msg("composition tool resolved")
		return NewToolComposer(t, log), nil
	case types.BackendPdfcpu:
		return &PdfcpuComposer{}, nil
	case types.BackendGofpdf:
		return &GofpdfComposer{}, nil
	}
	return nil, fmt.Errorf("unknown compose backend %q", cfg.Backend)
}

// VerifyFunc checks the PDF at path once it has been composed from pages
// images.
type VerifyFunc func(path string, pages int) error

// Assemble composes the processed files of pages into output. It prints the
// target when verbose and a confirmation once the PDF exists and, when verify
// is non-nil, has passed verification. Failures are returned as a
// *types.StageError and print nothing.
func Assemble(ctx context.Context, c Composer, pages []types.Page, output string, verify VerifyFunc, verbose bool, w io.Writer) error {
	if verbose {
		fmt.Fprintf(w, "trying to save to %s\n", output)
	}

	if err := c.Compose(ctx, types.ProcessedPaths(pages), output); err != nil {
		return &types.StageError{Stage: types.StageAssemble, Op: "compose", Path: output, Err: err}
	}
	if verify != nil {
		if err := verify(output, len(pages)); err != nil {
			return &types.StageError{Stage: types.StageAssemble, Op: "verify", Path: output, Err: err}
		}
	}

	fmt.Fprintf(w, "pdf file saved at %s\n", output)
	return nil
}
