// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

const (
	// DefaultOutput is the PDF file name used when no output is given.
	DefaultOutput = "pdfified.pdf"

	// DefaultBrighten is added to every color channel before grayscale conversion.
	DefaultBrighten = 80

	// DefaultContrast is the contrast adjustment in percent.
	DefaultContrast = 40.0

	// DefaultWorkDir is where processed files are written.
	DefaultWorkDir = "."

	// DefaultLogLevel is the zerolog level for diagnostic output.
	DefaultLogLevel = "warn"
)

// ComposeBackend identifies the tool that merges processed images into a PDF.
type ComposeBackend string

const (
	// BackendConvert shells out to ImageMagick (magick or convert).
	BackendConvert ComposeBackend = "convert"
	// BackendPdfcpu imports the images into a PDF in-process with pdfcpu.
	BackendPdfcpu ComposeBackend = "pdfcpu"
	// BackendGofpdf lays out one page per image with gofpdf.
	BackendGofpdf ComposeBackend = "gofpdf"
)

// Valid reports whether b names a known backend.
func (b ComposeBackend) Valid() bool {
	switch b {
	case BackendConvert, BackendPdfcpu, BackendGofpdf:
		return true
	}
	return false
}

// DeletionMode selects which files are removed after the PDF is assembled.
type DeletionMode string

const (
	DeleteNone      DeletionMode = "none"
	DeleteOriginal  DeletionMode = "original"
	DeleteProcessed DeletionMode = "processed"
	DeleteBoth      DeletionMode = "both"
)

// Config is the resolved set of options for one run. It is built once at
// startup and never mutated afterwards.
type Config struct {
	// Files lists the input images in page order.
	Files []string `json:"files" yaml:"files"`

	// Output is the path of the PDF to produce.
	Output string `json:"output" yaml:"output"`

	// Verbose enables per-file progress lines.
	Verbose bool `json:"verbose" yaml:"verbose"`

	// DeleteImages removes both originals and processed files after the run.
	DeleteImages bool `json:"delete_images" yaml:"delete_images"`

	// DeleteOriginal removes only the input images after the run.
	DeleteOriginal bool `json:"delete_original" yaml:"delete_original"`

	// DeleteProcessed removes only the processed images after the run.
	DeleteProcessed bool `json:"delete_processed" yaml:"delete_processed"`

	// Brighten is added to each color channel (negative darkens).
	Brighten int `json:"brighten" yaml:"brighten"`

	// Contrast is the contrast adjustment in percent. The documented range is
	// -100 to 100; values outside it are passed to the transform unchanged.
	Contrast float64 `json:"contrast" yaml:"contrast"`

	// WorkDir is the directory processed files are written to.
	WorkDir string `json:"work_dir" yaml:"work_dir"`

	// Backend selects how the PDF is assembled.
	Backend ComposeBackend `json:"backend" yaml:"backend"`

	// Tool overrides the composition binary used by the convert backend.
	// Empty means auto-detect.
	Tool string `json:"tool,omitempty" yaml:"tool,omitempty"`

	// Progress shows a progress bar while processing when not verbose.
	Progress bool `json:"progress" yaml:"progress"`

	// Verify checks that the produced PDF has one page per input.
	Verify bool `json:"verify" yaml:"verify"`

	// Manifest is the path of a YAML run manifest. Empty disables it.
	Manifest string `json:"manifest,omitempty" yaml:"manifest,omitempty"`

	// LogLevel is the zerolog level for diagnostics.
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// DefaultConfig returns a Config holding every default value. Files is empty
// and must be supplied by the caller.
func DefaultConfig() Config {
	return Config{
		Output:   DefaultOutput,
		Brighten: DefaultBrighten,
		Contrast: DefaultContrast,
		WorkDir:  DefaultWorkDir,
		Backend:  BackendConvert,
		LogLevel: DefaultLogLevel,
	}
}

// Deletion maps the three deletion flags to a single mode. DeleteImages wins
// over the single-purpose flags; setting both single flags is the same as
// DeleteImages.
func (c Config) Deletion() DeletionMode {
	switch {
	case c.DeleteImages, c.DeleteOriginal && c.DeleteProcessed:
		return DeleteBoth
	case c.DeleteOriginal:
		return DeleteOriginal
	case c.DeleteProcessed:
		return DeleteProcessed
	}
	return DeleteNone
}
