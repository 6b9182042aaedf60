// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tool locates and runs the external image composition binary
// (ImageMagick's magick, or the older convert).
package tool

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const (
	binMagick  = "magick"
	binConvert = "convert"
)

// Tool runs one composition binary.
type Tool interface {
	// Name returns the binary name ("magick", "convert", or an override).
	Name() string

	// Available reports whether the binary exists on PATH.
	Available() bool

	// Run executes the binary with args and waits for it to exit. A non-zero
	// exit status is an error that includes the binary's stderr.
	Run(ctx context.Context, args []string) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// binary implements Tool for a single executable.
type binary struct {
	bin  string
	exec executor
}

func (b *binary) Name() string { return b.bin }

func (b *binary) Available() bool {
	_, err := b.exec.LookPath(b.bin)
	return err == nil
}

func (b *binary) Run(ctx context.Context, args []string) error {
	var stdout, stderr bytes.Buffer
	if err := b.exec.Run(ctx, b.bin, args, &stdout, &stderr); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = strings.TrimSpace(stdout.String())
		}
		if msg != "" {
			return fmt.Errorf("running %s: %w: %s", b.bin, err, msg)
		}
		return fmt.Errorf("running %s: %w", b.bin, err)
	}
	return nil
}

var defaultExec = &osExecutor{}

// Detect returns the named binary when name is set, failing if it is not on
// PATH. With an empty name it tries magick first and falls back to convert.
func Detect(name string) (Tool, error) {
	return detect(defaultExec, name)
}

func detect(exec executor, name string) (Tool, error) {
	if name != "" {
		b := &binary{bin: name, exec: exec}
		if !b.Available() {
			return nil, fmt.Errorf("composition tool %s not found on PATH", name)
		}
		return b, nil
	}

	magick := &binary{bin: binMagick, exec: exec}
	if magick.Available() {
		return magick, nil
	}

	convert := &binary{bin: binConvert, exec: exec}
	if convert.Available() {
		return convert, nil
	}

	return nil, fmt.Errorf(
		"no composition tool available: neither %s nor %s found on PATH (install ImageMagick)",
		binMagick, binConvert,
	)
}
