// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compose

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/jung-kurt/gofpdf"
)

// GofpdfComposer lays out one page per image, each page sized to its image
// at 72 dpi. gofpdf reads JPEG, PNG and GIF only.
type GofpdfComposer struct{}

func (c *GofpdfComposer) Compose(_ context.Context, inputs []string, output string) error {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	for _, in := range inputs {
		tp, err := gofpdfImageType(in)
		if err != nil {
			return err
		}
		opt := gofpdf.ImageOptions{ImageType: tp}

		info := pdf.RegisterImageOptions(in, opt)
		if !pdf.Ok() {
			return fmt.Errorf("loading %s: %w", in, pdf.Error())
		}
		w, h := info.Extent()

		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: w, Ht: h})
		pdf.ImageOptions(in, 0, 0, w, h, false, opt, 0, "")
	}

	if err := pdf.OutputFileAndClose(output); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	return nil
}

// gofpdfImageType reads the image header rather than trusting the extension;
// processed files for webp inputs hold PNG data.
func gofpdfImageType(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	_, format, err := image.DecodeConfig(f)
	if err != nil {
		return "", fmt.Errorf("gofpdf cannot embed %s: unsupported image type: %w", path, err)
	}
	switch format {
	case "jpeg":
		return "JPG", nil
	case "png":
		return "PNG", nil
	case "gif":
		return "GIF", nil
	default:
		return "", fmt.Errorf("gofpdf cannot embed %s: unsupported image type %q", path, format)
	}
}
