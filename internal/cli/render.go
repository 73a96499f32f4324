package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string  // output file; the extension picks the format when --format is empty
	format    string  // svg, png or dot
	scale     float64 // inches per percent
	adjacency bool    // join adjacent tiles
	detailed  bool    // add rectangles to labels
}

// renderCommand writes the layout as an image.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the layout to SVG, PNG or DOT",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			format := opts.format
			if format == "" {
				format = strings.TrimPrefix(filepath.Ext(opts.output), ".")
			}
			if err := render.ValidateFormat(format); err != nil {
				return err
			}

			ws, err := c.open(ctx, false)
			if err != nil {
				return err
			}
			defer ws.close()

			prog := newProgress(loggerFromContext(ctx), "render", "format", format)
			data, err := render.Render(ctx, ws.eng.State(), format, render.Options{
				Scale:     opts.scale,
				Adjacency: opts.adjacency,
				Detailed:  opts.detailed,
			})
			if err != nil {
				return err
			}
			if err := os.WriteFile(opts.output, data, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "write %s", opts.output)
			}
			prog.done("bytes", len(data))
			printSuccess("Rendered %s", c.location())
			printFile(opts.output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "layout.svg", "output file")
	cmd.Flags().StringVarP(&opts.format, "format", "t", "", "output format: svg, png, dot (default from --output)")
	cmd.Flags().Float64Var(&opts.scale, "scale", render.DefaultScale, "inches per percent of container size")
	cmd.Flags().BoolVar(&opts.adjacency, "adjacency", false, "draw lines between adjacent tiles")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show tile rectangles in labels")
	return cmd
}
