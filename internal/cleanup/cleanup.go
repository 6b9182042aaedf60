// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cleanup removes original and/or processed images once the PDF has
// been assembled.
package cleanup

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/pdiddy/pdfify/pkg/types"
)

// Cleaner deletes files on a filesystem.
type Cleaner struct {
	fs  afero.Fs
	log zerolog.Logger
}

// New returns a Cleaner operating on fs. Production code passes
// afero.NewOsFs().
func New(fs afero.Fs, log zerolog.Logger) *Cleaner {
	return &Cleaner{fs: fs, log: log}
}

// Apply deletes files according to mode. For DeleteBoth every original is
// removed before any processed file. The first failed removal stops the
// remaining work and is returned as a *types.StageError; files already removed
// stay removed. It reports whether anything was attempted.
func (c *Cleaner) Apply(pages []types.Page, mode types.DeletionMode, verbose bool, w io.Writer) (bool, error) {
	switch mode {
	case types.DeleteBoth:
		if err := c.remove(types.Originals(pages), verbose, w); err != nil {
			return true, err
		}
		return true, c.remove(types.ProcessedPaths(pages), verbose, w)
	case types.DeleteOriginal:
		return true, c.remove(types.Originals(pages), verbose, w)
	case types.DeleteProcessed:
		return true, c.remove(types.ProcessedPaths(pages), verbose, w)
	case types.DeleteNone, "":
		return false, nil
	}
	return false, &types.StageError{
		Stage: types.StageCleanup,
		Op:    "select",
		Err:   fmt.Errorf("unknown deletion mode %q", mode),
	}
}

func (c *Cleaner) remove(paths []string, verbose bool, w io.Writer) error {
	for _, p := range paths {
		if err := c.fs.Remove(p); err != nil {
			return &types.StageError{Stage: types.StageCleanup, Op: "remove", Path: p, Err: err}
		}
		if verbose {
			fmt.Fprintf(w, "removed %s\n", p)
		}
		c.log.Debug().Str("path", p).Msg("file removed")
	}
	return nil
}
