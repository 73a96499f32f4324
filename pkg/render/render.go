// Package render draws a tiling as an image.
//
// Each tile becomes a fixed-size Graphviz box pinned at its position, so the
// neato engine reproduces the layout exactly instead of laying it out anew.
// Tiles that share an edge can optionally be joined by lines, which turns the
// picture into the tiling's adjacency graph.
//
//	dot := render.ToDOT(s, render.Options{Adjacency: true})
//	svg, err := render.RenderSVG(ctx, dot)
//
// Rendering runs in-process through [github.com/goccy/go-graphviz]; no
// Graphviz installation is needed.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/geom"
	"github.com/matzehuels/tilegrid/pkg/tiling"
)

// DefaultScale draws the 100x100 container as an 8 inch square.
const DefaultScale = 0.08

// Format constants for output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatDOT = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatDOT: true,
}

// groupColors fill tiles by their first group, cycling when there are more
// groups than colors.
var groupColors = []string{
	"#cfe8fc", "#fde2c8", "#d5f2d0", "#f4d0f0", "#fff3b0", "#d9d4f7",
}

// Options configures rendering.
type Options struct {
	// Scale is inches per percent of container size. Zero means
	// DefaultScale.
	Scale float64

	// Adjacency draws a line between the centres of tiles that share an
	// edge.
	Adjacency bool

	// Detailed adds the tile rectangle to each label.
	Detailed bool
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: svg, png, dot)", format)
	}
	return nil
}

// ToDOT converts a tiling to Graphviz DOT with every tile pinned in place.
func ToDOT(s *tiling.State, opts Options) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale
	}
	fill := groupFill(s)

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  notranslate=true;\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, fixedsize=true, style=filled, fillcolor=white, fontsize=12, penwidth=1.5];\n")
	buf.WriteString("  edge [color=\"#888888\", style=dashed];\n")
	buf.WriteString("\n")

	for _, t := range s.Tiles() {
		cx := (t.X + t.Width/2) * scale
		// Graphviz's y axis points up.
		cy := (geom.ContainerSize - t.Y - t.Height/2) * scale
		attrs := []string{
			fmt.Sprintf("label=%q", label(t, opts.Detailed)),
			fmt.Sprintf("pos=\"%.4f,%.4f!\"", cx, cy),
			fmt.Sprintf("width=%.4f", t.Width*scale),
			fmt.Sprintf("height=%.4f", t.Height*scale),
		}
		if c, ok := fill[t.ID]; ok {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", c))
		}
		if t.Locked {
			attrs = append(attrs, "style=\"filled,bold\"", "color=\"#b45309\"")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", t.ID, strings.Join(attrs, ", "))
	}

	if opts.Adjacency {
		buf.WriteString("\n")
		tiles := s.Tiles()
		for i, a := range tiles {
			for _, b := range tiles[i+1:] {
				if s.Adjacent(a.ID, b.ID) {
					fmt.Fprintf(&buf, "  %q -- %q;\n", a.ID, b.ID)
				}
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func label(t tiling.Tile, detailed bool) string {
	if !detailed {
		return t.ID
	}
	return fmt.Sprintf("%s\n%g,%g %gx%g", t.ID, t.X, t.Y, t.Width, t.Height)
}

func groupFill(s *tiling.State) map[string]string {
	out := make(map[string]string)
	groups := s.Groups()
	for i, name := range s.GroupNames() {
		for _, id := range groups[name] {
			if _, ok := out[id]; !ok {
				out[id] = groupColors[i%len(groupColors)]
			}
		}
	}
	return out
}

// RenderSVG renders DOT source to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.SVG)
}

// RenderPNG renders DOT source to PNG.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.PNG)
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
	}
	return buf.Bytes(), nil
}

// Render draws s in the given format.
func Render(ctx context.Context, s *tiling.State, format string, opts Options) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	dot := ToDOT(s, opts)
	switch format {
	case FormatSVG:
		return RenderSVG(ctx, dot)
	case FormatPNG:
		return RenderPNG(ctx, dot)
	}
	return []byte(dot), nil
}
