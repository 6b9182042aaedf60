// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compose

import (
	"context"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

func init() {
	// Keep pdfcpu from creating a config directory under the user's home.
	api.DisableConfigDir()
}

// PdfcpuComposer imports every image as a page of a new PDF using pdfcpu.
type PdfcpuComposer struct{}

// Compose writes a fresh PDF at output. pdfcpu appends to an existing file,
// so any previous output is removed first.
func (c *PdfcpuComposer) Compose(_ context.Context, inputs []string, output string) error {
	if err := os.Remove(output); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("replacing %s: %w", output, err)
	}
	if err := api.ImportImagesFile(inputs, output, nil, nil); err != nil {
		return fmt.Errorf("importing images with pdfcpu: %w", err)
	}
	return nil
}

// PageCount returns the number of pages in the PDF at path.
func PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("counting pages of %s: %w", path, err)
	}
	return n, nil
}

// Verify checks that the PDF at path has exactly want pages.
func Verify(path string, want int) error {
	got, err := PageCount(path)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("%s has %d pages, want %d", path, got, want)
	}
	return nil
}
