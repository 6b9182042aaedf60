// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compose

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdfify/pkg/types"
)

// fakeTool records the arguments it was run with. When writeOutput is set it
// creates the last argument as a file, like a real composition tool.
type fakeTool struct {
	writeOutput bool
	err         error
	gotArgs     []string
}

func (f *fakeTool) Name() string    { return "convert" }
func (f *fakeTool) Available() bool { return true }

func (f *fakeTool) Run(_ context.Context, args []string) error {
	f.gotArgs = append([]string(nil), args...)
	if f.err != nil {
		return f.err
	}
	if f.writeOutput {
		return os.WriteFile(args[len(args)-1], []byte("%PDF-1.4\n"), 0o644)
	}
	return nil
}

// fakeComposer implements Composer for Assemble tests.
type fakeComposer struct {
	err       error
	gotInputs []string
	gotOutput string
}

func (f *fakeComposer) Compose(_ context.Context, inputs []string, output string) error {
	f.gotInputs = inputs
	f.gotOutput = output
	return f.err
}

func grayPNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 7)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestToolComposer_ArgumentOrder(t *testing.T) {
	dir := t.TempDir()
	pages, err := types.NewPages([]string{"c.png", "a.png", "b.png"}, dir)
	require.NoError(t, err)
	output := filepath.Join(dir, "out.pdf")

	ft := &fakeTool{writeOutput: true}
	c := NewToolComposer(ft, zerolog.Nop())
	require.NoError(t, c.Compose(context.Background(), types.ProcessedPaths(pages), output))

	want := []string{
		filepath.Join(dir, "p1_c.png"),
		filepath.Join(dir, "p2_a.png"),
		filepath.Join(dir, "p3_b.png"),
		output,
	}
	assert.Equal(t, want, ft.gotArgs)
}

func TestToolComposer_Failures(t *testing.T) {
	tests := []struct {
		name    string
		tool    *fakeTool
		wantErr string
	}{
		{
			name:    "tool exits non-zero",
			tool:    &fakeTool{err: errors.New("running convert: exit status 1: unable to open image")},
			wantErr: "exit status 1",
		},
		{
			name:    "tool succeeds without writing output",
			tool:    &fakeTool{},
			wantErr: "produced no output",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := filepath.Join(t.TempDir(), "out.pdf")
			c := NewToolComposer(tt.tool, zerolog.Nop())

			err := c.Compose(context.Background(), []string{"p1_a.png"}, output)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestToolComposer_StaleOutput(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.pdf")
	require.NoError(t, os.WriteFile(output, []byte("%PDF-1.4 from an earlier run"), 0o644))

	c := NewToolComposer(&fakeTool{}, zerolog.Nop())
	err := c.Compose(context.Background(), []string{"p1_a.png"}, output)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "produced no output")
	assert.NoFileExists(t, output)
}

func TestAssemble(t *testing.T) {
	pages := []types.Page{
		{Index: 1, Original: "a.png", Processed: "p1_a.png"},
		{Index: 2, Original: "b.png", Processed: "p2_b.png"},
	}

	t.Run("success prints confirmation", func(t *testing.T) {
		fc := &fakeComposer{}
		var out bytes.Buffer
		require.NoError(t, Assemble(context.Background(), fc, pages, "pdfified.pdf", nil, false, &out))

		assert.Equal(t, []string{"p1_a.png", "p2_b.png"}, fc.gotInputs)
		assert.Equal(t, "pdfified.pdf", fc.gotOutput)
		assert.Equal(t, "pdf file saved at pdfified.pdf\n", out.String())
	})

	t.Run("verbose names the target first", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, Assemble(context.Background(), &fakeComposer{}, pages, "book.pdf", nil, true, &out))
		assert.Equal(t, "trying to save to book.pdf\npdf file saved at book.pdf\n", out.String())
	})

	t.Run("failure is a stage error and prints no success", func(t *testing.T) {
		var out bytes.Buffer
		err := Assemble(context.Background(), &fakeComposer{err: errors.New("boom")}, pages, "book.pdf", nil, false, &out)

		var se *types.StageError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, types.StageAssemble, se.Stage)
		assert.Equal(t, "book.pdf", se.Path)
		assert.NotContains(t, out.String(), "pdf file saved")
	})

	t.Run("verify runs before the confirmation", func(t *testing.T) {
		var gotPath string
		var gotPages int
		verify := func(path string, n int) error {
			gotPath, gotPages = path, n
			return nil
		}
		var out bytes.Buffer
		require.NoError(t, Assemble(context.Background(), &fakeComposer{}, pages, "book.pdf", verify, false, &out))
		assert.Equal(t, "book.pdf", gotPath)
		assert.Equal(t, 2, gotPages)
		assert.Equal(t, "pdf file saved at book.pdf\n", out.String())
	})

	t.Run("failed verify prints no confirmation", func(t *testing.T) {
		verify := func(string, int) error { return errors.New("has 1 pages, want 2") }
		var out bytes.Buffer
		err := Assemble(context.Background(), &fakeComposer{}, pages, "book.pdf", verify, false, &out)

		var se *types.StageError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "verify", se.Op)
		assert.Empty(t, out.String())
	})
}

func TestNew(t *testing.T) {
	c, err := New(types.Config{Backend: types.BackendPdfcpu}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &PdfcpuComposer{}, c)

	c, err = New(types.Config{Backend: types.BackendGofpdf}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &GofpdfComposer{}, c)

	_, err = New(types.Config{Backend: "latex"}, zerolog.Nop())
	assert.ErrorContains(t, err, "unknown compose backend")

	_, err = New(types.Config{Backend: types.BackendConvert, Tool: "pdfify-no-such-tool"}, zerolog.Nop())
	assert.ErrorContains(t, err, "pdfify-no-such-tool not found")
}

func TestGofpdfComposer(t *testing.T) {
	dir := t.TempDir()
	inputs := []string{
		grayPNG(t, dir, "p1_a.png", 40, 20),
		grayPNG(t, dir, "p2_b.png", 20, 40),
	}
	output := filepath.Join(dir, "out.pdf")

	require.NoError(t, (&GofpdfComposer{}).Compose(context.Background(), inputs, output))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF-"))
	assert.NoError(t, Verify(output, 2))
}

func TestGofpdfComposer_UnsupportedType(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "p1_a.bmp")
	require.NoError(t, os.WriteFile(in, []byte("BM not really a bitmap"), 0o644))

	err := (&GofpdfComposer{}).Compose(context.Background(), []string{in}, filepath.Join(dir, "out.pdf"))
	assert.ErrorContains(t, err, "unsupported image type")
}

func TestGofpdfComposer_SniffsContent(t *testing.T) {
	dir := t.TempDir()
	// PNG data under a webp name, as written for webp inputs.
	src := grayPNG(t, dir, "p1_a.png", 20, 20)
	in := filepath.Join(dir, "p1_a.webp")
	require.NoError(t, os.Rename(src, in))
	output := filepath.Join(dir, "out.pdf")

	require.NoError(t, (&GofpdfComposer{}).Compose(context.Background(), []string{in}, output))
	assert.NoError(t, Verify(output, 1))
}

func TestPdfcpuComposer(t *testing.T) {
	dir := t.TempDir()
	inputs := []string{
		grayPNG(t, dir, "p1_a.png", 30, 30),
		grayPNG(t, dir, "p2_b.png", 30, 30),
		grayPNG(t, dir, "p3_c.png", 30, 30),
	}
	output := filepath.Join(dir, "out.pdf")

	c := &PdfcpuComposer{}
	require.NoError(t, c.Compose(context.Background(), inputs, output))
	n, err := PageCount(output)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// A second run replaces the file instead of appending to it.
	require.NoError(t, c.Compose(context.Background(), inputs[:1], output))
	assert.NoError(t, Verify(output, 1))
}

func TestVerify_Mismatch(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.pdf")
	require.NoError(t, (&GofpdfComposer{}).Compose(context.Background(), []string{grayPNG(t, dir, "p1_a.png", 10, 10)}, output))

	err := Verify(output, 2)
	assert.ErrorContains(t, err, "has 1 pages, want 2")
}

func TestVerify_NotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")
	require.NoError(t, os.WriteFile(path, []byte("nope"), 0o644))
	assert.Error(t, Verify(path, 1))
}
