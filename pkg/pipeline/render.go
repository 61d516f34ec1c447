package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/matzehuels/pivotgrid/pkg/errors"
	"github.com/matzehuels/pivotgrid/pkg/observability"
	"github.com/matzehuels/pivotgrid/pkg/pivot"
	"github.com/matzehuels/pivotgrid/pkg/pivot/grid"
	"github.com/matzehuels/pivotgrid/pkg/render/nodelink"
	"github.com/matzehuels/pivotgrid/pkg/render/sink"
)

// RenderOptions configures Render.
type RenderOptions struct {
	Title string
	// Plain disables terminal styling in text output.
	Plain bool
	// Highlight marks one node's cell in text output.
	Highlight string
}

// Render writes m to w in the given matrix format.
// Render hooks observe every call, including failed ones.
func Render(ctx context.Context, w io.Writer, m *grid.Matrix, format string, opts RenderOptions) (err error) {
	if err := ValidateFormat(format); err != nil {
		return err
	}

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, format)
	start := time.Now()
	var buf bytes.Buffer
	defer func() {
		hooks.OnRenderComplete(ctx, format, buf.Len(), time.Since(start), err)
	}()

	switch format {
	case FormatText:
		var textOpts []sink.TextOption
		if opts.Plain {
			textOpts = append(textOpts, sink.WithPlain())
		}
		if opts.Highlight != "" {
			textOpts = append(textOpts, sink.WithHighlight(opts.Highlight))
		}
		err = sink.WriteText(&buf, m, textOpts...)
	case FormatHTML:
		err = sink.WriteHTML(&buf, m, sink.WithDocument(), sink.WithTitle(opts.Title))
	case FormatJSON:
		err = sink.WriteJSON(&buf, m, opts.Title)
	}
	if err != nil {
		return err
	}

	if _, err = w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", format, err)
	}
	return nil
}

// RenderTree writes a data or header tree to w as DOT source or SVG.
// The table format is a terminal listing that callers build from
// [nodelink.Flatten]; it fails here with UNSUPPORTED.
func RenderTree[T any](ctx context.Context, w io.Writer, root *pivot.Node[T], format string, opts nodelink.Options) (err error) {
	if err := ValidateTreeFormat(format); err != nil {
		return err
	}
	if format == FormatTable {
		return errors.New(errors.ErrCodeUnsupported, "tree format %q is a terminal listing", format)
	}

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, format)
	start := time.Now()
	var out []byte
	defer func() {
		hooks.OnRenderComplete(ctx, format, len(out), time.Since(start), err)
	}()

	dot := nodelink.ToDOT(root, opts)
	out = []byte(dot)
	if format == FormatSVG {
		if out, err = nodelink.RenderSVG(ctx, dot); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "render svg")
		}
	}
	if _, err = w.Write(out); err != nil {
		return fmt.Errorf("write %s: %w", format, err)
	}
	return nil
}
