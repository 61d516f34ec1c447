// Package render groups the output formats of pivotgrid.
//
// # Overview
//
// Nothing is rendered from this package itself. Its subpackages cover the
// two things worth looking at:
//
//   - [sink]: the flattened table as text, HTML or JSON
//   - [nodelink]: the data and header trees as Graphviz diagrams
//
// # Tables
//
// The usual path is a session build followed by a sink:
//
//	m, err := sess.Build(ctx, records, dims, measures, true)
//	if err != nil {
//	    return err
//	}
//	return sink.WriteText(os.Stdout, m)
//
// # Trees
//
// Tree diagrams help when a table looks wrong and the question is which
// node produced a cell:
//
//	dot := nodelink.ToDOT(sess.DataTree(), nodelink.Options{Expansion: sess.Cache()})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [sink]: github.com/matzehuels/pivotgrid/pkg/render/sink
// [nodelink]: github.com/matzehuels/pivotgrid/pkg/render/nodelink
package render
