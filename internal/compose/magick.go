// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compose

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pdfify/internal/tool"
)

// ToolComposer builds the PDF by running an external composition tool with
// the input images followed by the output path.
type ToolComposer struct {
	tool tool.Tool
	log  zerolog.Logger
}

// NewToolComposer returns a composer that runs t.
func NewToolComposer(t tool.Tool, log zerolog.Logger) *ToolComposer {
	return &ToolComposer{tool: t, log: log}
}

// Compose removes any existing output, runs the tool, and checks that it
// left a file at output.
func (c *ToolComposer) Compose(ctx context.Context, inputs []string, output string) error {
	args := make([]string, 0, len(inputs)+1)
	args = append(args, inputs...)
	args = append(args, output)

	// A PDF left by an earlier run must not pass the output check below.
	if err := os.Remove(output); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing stale %s: %w", output, err)
	}

	start := time.Now()
	c.log.Debug().Str("tool", c.tool.Name()).Strs("args", args).Msg("running composition tool")

	if err := c.tool.Run(ctx, args); err != nil {
		return err
	}

	if _, err := os.Stat(output); err != nil {
		return fmt.Errorf("%s exited cleanly but produced no output: %w", c.tool.Name(), err)
	}

	c.log.Debug().Dur("took", time.Since(start)).Msg("composition tool finished")
	return nil
}
