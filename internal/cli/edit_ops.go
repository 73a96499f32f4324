package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tilegrid/pkg/engine"
	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/ops"
)

// mutate opens the layout, runs fn and saves the result when it was
// accepted. A rejection prints the violations and leaves the layout alone.
func (c *CLI) mutate(ctx context.Context, name string, fn func(context.Context, *engine.Engine) (ops.Result, error)) (ops.Result, error) {
	ws, err := c.open(ctx, false)
	if err != nil {
		return ops.Result{}, err
	}
	defer ws.close()

	res, err := fn(ctx, ws.eng)
	if err != nil {
		return res, err
	}
	if !res.Valid {
		printViolations(res.Violations)
		return res, errors.New(errors.ErrCodeInvalidInput, "%s rejected", name)
	}
	if err := c.save(ctx, ws); err != nil {
		return res, err
	}
	return res, nil
}

// splitCommand splits a tile in two.
func (c *CLI) splitCommand() *cobra.Command {
	var ratio float64
	cmd := &cobra.Command{
		Use:   "split <tile-id> <vertical|horizontal>",
		Short: "Split a tile into two",
		Long: `Split a tile into two. A vertical split cuts the tile with a vertical line
and yields a left and a right tile; --ratio is the share kept by the original.`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: c.completeArgs(argTile, argOrientation),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.mutate(cmd.Context(), "split", func(ctx context.Context, e *engine.Engine) (ops.Result, error) {
				return e.Split(ctx, args[0], args[1], ratio)
			})
			if err != nil {
				return err
			}
			printSuccess("Split %s, new tile %s", args[0], StyleHighlight.Render(res.NewTileID))
			return nil
		},
	}
	cmd.Flags().Float64VarP(&ratio, "ratio", "r", ops.DefaultRatio, "share of the tile kept by the original (0..1)")
	return cmd
}

// deleteCommand removes a tile and lets its neighbors absorb the space.
func (c *CLI) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "delete <tile-id>",
		Aliases:           []string{"rm"},
		Short:             "Delete a tile; neighbors absorb its area",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeArgs(argTile),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.mutate(cmd.Context(), "delete", func(ctx context.Context, e *engine.Engine) (ops.Result, error) {
				return e.Delete(ctx, args[0])
			}); err != nil {
				return err
			}
			printSuccess("Deleted %s", args[0])
			return nil
		},
	}
}

// insertCommand carves a new tile off one side of an existing tile.
func (c *CLI) insertCommand() *cobra.Command {
	var size float64
	cmd := &cobra.Command{
		Use:               "insert <ref-tile-id> <left|right|top|bottom>",
		Short:             "Insert a new tile on one side of an existing tile",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: c.completeArgs(argTile, argEdge),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.mutate(cmd.Context(), "insert", func(ctx context.Context, e *engine.Engine) (ops.Result, error) {
				return e.Insert(ctx, args[0], args[1], size)
			})
			if err != nil {
				return err
			}
			printSuccess("Inserted %s %s of %s", StyleHighlight.Render(res.NewTileID), args[1], args[0])
			return nil
		},
	}
	cmd.Flags().Float64VarP(&size, "size", "s", ops.DefaultRatio, "share of the reference tile given to the new tile (0..1)")
	return cmd
}

// resizeCommand moves one edge of a tile.
func (c *CLI) resizeCommand() *cobra.Command {
	var delta float64
	cmd := &cobra.Command{
		Use:   "resize <tile-id> <left|right|top|bottom>",
		Short: "Move one edge of a tile",
		Long: `Move one edge of a tile by --delta percent. Positive values move the edge
right or down. Tiles sharing the seam move with it.`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: c.completeArgs(argTile, argEdge),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.mutate(cmd.Context(), "resize", func(ctx context.Context, e *engine.Engine) (ops.Result, error) {
				return e.Resize(ctx, args[0], args[1], delta)
			})
			if err != nil {
				return err
			}
			printMoved(fmt.Sprintf("%s %s edge", args[0], args[1]), delta, res.AppliedDelta)
			return nil
		},
	}
	cmd.Flags().Float64VarP(&delta, "delta", "d", 0, "distance to move the edge in percent")
	_ = cmd.MarkFlagRequired("delta")
	return cmd
}

// seamResizeCommand moves a seam.
func (c *CLI) seamResizeCommand() *cobra.Command {
	var delta float64
	cmd := &cobra.Command{
		Use:               "seam-resize <seam-id>",
		Short:             "Move a seam and every tile edge on it",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeArgs(argSeam),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.mutate(cmd.Context(), "seam-resize", func(ctx context.Context, e *engine.Engine) (ops.Result, error) {
				return e.SeamResize(ctx, args[0], delta)
			})
			if err != nil {
				return err
			}
			printMoved(args[0], delta, res.AppliedDelta)
			return nil
		},
	}
	cmd.Flags().Float64VarP(&delta, "delta", "d", 0, "distance to move the seam in percent")
	_ = cmd.MarkFlagRequired("delta")
	return cmd
}

func printMoved(what string, requested, applied float64) {
	printSuccess("Moved %s by %s", what, formatNum(applied))
	if applied != requested {
		printDetail("requested %s, clamped to the legal range", formatNum(requested))
	}
}

// validateCommand checks the layout against the configuration.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the layout against size, lock and group rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := c.open(ctx, false)
			if err != nil {
				return err
			}
			defer ws.close()

			res, err := ws.eng.Validate(ctx)
			if err != nil {
				return err
			}
			if !res.Valid {
				printViolations(res.Violations)
				printNextStep("Try repairing it", appName+" adjust")
				return errors.New(errors.ErrCodeInvalidInput, "layout is invalid")
			}
			printSuccess("Layout is valid")
			return nil
		},
	}
}

// adjustCommand repairs size violations.
func (c *CLI) adjustCommand() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "adjust",
		Short: "Resize tiles until they satisfy their size limits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := c.open(ctx, false)
			if err != nil {
				return err
			}
			defer ws.close()

			res := ws.eng.Adjust(ctx, nil)
			if !res.Success {
				for _, v := range res.Violations {
					printError("%s", v)
				}
				return res.Err
			}
			if len(res.Adjusted) == 0 {
				printInfo("Nothing to adjust")
				return nil
			}
			printSuccess("Adjusted %s using %s", strings.Join(res.Adjusted, ", "), res.Strategy)
			if dryRun {
				printDetail("dry run, not saved")
				return nil
			}
			return c.save(ctx, ws)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report the repair without saving it")
	return cmd
}
