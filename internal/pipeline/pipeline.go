// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one pdfify invocation: process every image, assemble
// the PDF, then clean up. Stages run strictly in order and the first failure
// ends the run.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdfify/internal/cleanup"
	"github.com/pdiddy/pdfify/internal/compose"
	"github.com/pdiddy/pdfify/internal/process"
	"github.com/pdiddy/pdfify/pkg/types"
)

// State is a point in the life of a run.
type State string

const (
	StateStart           State = "start"
	StateArgsResolved    State = "args-resolved"
	StateImagesProcessed State = "images-processed"
	StatePdfAssembled    State = "pdf-assembled"
	StateCleanupApplied  State = "cleanup-applied"
	StateCleanupSkipped  State = "cleanup-skipped"
	StateFailed          State = "failed"
)

// Result summarizes a finished run.
type Result struct {
	Pages  []types.Page
	Output string
	// State is the last state reached.
	State State
}

// Pipeline wires the stages together. Fields left nil get production
// defaults in Run.
type Pipeline struct {
	Processor *process.Processor
	Composer  compose.Composer
	Cleaner   *cleanup.Cleaner
	// Fs is used for the manifest.
	Fs afero.Fs
	// Verify checks the produced PDF's page count when Config.Verify is set.
	Verify compose.VerifyFunc

	Out io.Writer
	Log zerolog.Logger
}

// New returns a Pipeline for cfg using the real filesystem and the composer
// selected by cfg.Backend. The convert backend's binary is located here, so a
// missing ImageMagick fails the run before any image is processed rather than
// at assembly.
func New(cfg types.Config, out io.Writer, log zerolog.Logger) (*Pipeline, error) {
	c, err := compose.New(cfg, log)
	if err != nil {
		return nil, &types.StageError{Stage: types.StageAssemble, Op: "select backend", Err: err}
	}
	fs := afero.NewOsFs()
	return &Pipeline{
		Processor: process.New(out, log),
		Composer:  c,
		Cleaner:   cleanup.New(fs, log),
		Fs:        fs,
		Verify:    compose.Verify,
		Out:       out,
		Log:       log,
	}, nil
}

// Run executes every stage for cfg. On failure the returned Result holds the
// state reached before the failing stage and the error is a
// *types.StageError.
func (p *Pipeline) Run(ctx context.Context, cfg types.Config) (Result, error) {
	res := Result{Output: cfg.Output, State: StateStart}

	pages, err := types.NewPages(cfg.Files, cfg.WorkDir)
	if err != nil {
		return p.fail(res, &types.StageError{Stage: types.StageResolve, Op: "plan", Err: err})
	}
	res.Pages = pages
	p.transition(&res, StateArgsResolved)

	opts := process.Options{
		Contrast: cfg.Contrast,
		Brighten: cfg.Brighten,
		Verbose:  cfg.Verbose,
		Progress: cfg.Progress,
	}
	if err := p.Processor.ProcessAll(pages, opts); err != nil {
		return p.fail(res, err)
	}
	p.transition(&res, StateImagesProcessed)

	var verify compose.VerifyFunc
	if cfg.Verify {
		verify = p.Verify
	}
	if err := compose.Assemble(ctx, p.Composer, pages, cfg.Output, verify, cfg.Verbose, p.Out); err != nil {
		return p.fail(res, err)
	}
	if cfg.Manifest != "" {
		if err := p.writeManifest(cfg, pages); err != nil {
			return p.fail(res, err)
		}
	}
	p.transition(&res, StatePdfAssembled)

	attempted, err := p.Cleaner.Apply(pages, cfg.Deletion(), cfg.Verbose, p.Out)
	if err != nil {
		return p.fail(res, err)
	}
	if attempted {
		p.transition(&res, StateCleanupApplied)
	} else {
		p.transition(&res, StateCleanupSkipped)
	}
	return res, nil
}

func (p *Pipeline) transition(res *Result, to State) {
	p.Log.Debug().Str("from", string(res.State)).Str("to", string(to)).Msg("state")
	res.State = to
}

func (p *Pipeline) fail(res Result, err error) (Result, error) {
	p.Log.Debug().Str("from", string(res.State)).Err(err).Msg("run failed")
	return res, err
}

func (p *Pipeline) writeManifest(cfg types.Config, pages []types.Page) error {
	m := types.Manifest{
		Output:    cfg.Output,
		Backend:   cfg.Backend,
		Contrast:  cfg.Contrast,
		Brighten:  cfg.Brighten,
		Deletion:  cfg.Deletion(),
		Pages:     pages,
		CreatedAt: time.Now().UTC(),
	}
	data, err := yaml.Marshal(m)
	if err != nil {
		return &types.StageError{Stage: types.StageAssemble, Op: "encode manifest", Path: cfg.Manifest, Err: err}
	}
	if dir := filepath.Dir(cfg.Manifest); dir != "." {
		if err := p.Fs.MkdirAll(dir, 0o755); err != nil {
			return &types.StageError{Stage: types.StageAssemble, Op: "write manifest", Path: cfg.Manifest, Err: err}
		}
	}
	if err := afero.WriteFile(p.Fs, cfg.Manifest, data, 0o644); err != nil {
		return &types.StageError{Stage: types.StageAssemble, Op: "write manifest", Path: cfg.Manifest, Err: fmt.Errorf("writing: %w", err)}
	}
	p.Log.Debug().Str("path", cfg.Manifest).Int("pages", len(pages)).Msg("manifest written")
	return nil
}
