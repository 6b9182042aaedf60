// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"path/filepath"
)

// Page pairs an input image with the processed file derived from it.
type Page struct {
	// Index is the 1-based position of the image in the input list.
	Index int `json:"index" yaml:"index"`

	// Original is the input path as given on the command line.
	Original string `json:"original" yaml:"original"`

	// Processed is the path the adjusted image is written to.
	Processed string `json:"processed" yaml:"processed"`
}

// ProcessedName returns the file name of the processed image for the input
// at 1-based position index: "p{index}_" followed by the input's base name.
func ProcessedName(index int, original string) string {
	return fmt.Sprintf("p%d_%s", index, filepath.Base(original))
}

// NewPages builds the page list for files, placing processed files in
// workDir. It fails if a processed path would overwrite one of the inputs.
func NewPages(files []string, workDir string) ([]Page, error) {
	if workDir == "" {
		workDir = DefaultWorkDir
	}

	inputs := make(map[string]bool, len(files))
	for _, f := range files {
		inputs[filepath.Clean(f)] = true
	}

	pages := make([]Page, len(files))
	for i, f := range files {
		processed := filepath.Join(workDir, ProcessedName(i+1, f))
		if inputs[filepath.Clean(processed)] {
			return nil, fmt.Errorf("processed file %s would overwrite an input image", processed)
		}
		pages[i] = Page{
			Index:     i + 1,
			Original:  f,
			Processed: processed,
		}
	}
	return pages, nil
}

// Originals returns the input paths of pages in order.
func Originals(pages []Page) []string {
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = p.Original
	}
	return out
}

// ProcessedPaths returns the processed paths of pages in order.
func ProcessedPaths(pages []Page) []string {
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = p.Processed
	}
	return out
}
