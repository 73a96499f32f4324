package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tilegrid/pkg/engine"
	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/seam"
	"github.com/matzehuels/tilegrid/pkg/tiling"
)

// initCommand creates a fresh single-tile layout.
func (c *CLI) initCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new layout with a single full-size tile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInit(cmd.Context(), force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing layout")
	return cmd
}

func (c *CLI) runInit(ctx context.Context, force bool) error {
	ws, err := c.open(ctx, false)
	switch {
	case err == nil && !force:
		ws.close()
		return errors.New(errors.ErrCodeInvalidInput, "%s already exists; use --force to overwrite", c.location())
	case err == nil:
		fresh, err := tiling.Initial(engine.RootTileID, tiling.WithEpsilon(ws.eng.Config().Epsilon))
		if err != nil {
			ws.close()
			return err
		}
		if err := ws.eng.Load(fresh, ws.eng.Config()); err != nil {
			ws.close()
			return err
		}
	case errors.Is(err, errors.ErrCodeNotFound):
		if ws, err = c.open(ctx, true); err != nil {
			return err
		}
	default:
		return err
	}
	defer ws.close()

	if err := c.save(ctx, ws); err != nil {
		return err
	}
	printSuccess("Created layout %s", c.location())
	printNextStep("Split it", appName+" split "+engine.RootTileID+" vertical")
	return nil
}

// showCommand prints the tiles of the layout.
func (c *CLI) showCommand() *cobra.Command {
	var grid, raw bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the tiles of the layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.open(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer ws.close()

			if raw {
				data, err := ws.eng.Snapshot()
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}
			s := ws.eng.State()
			printKeyValue("Layout", c.location())
			printKeyValue("Version", fmt.Sprint(s.Version()))
			printKeyValue("Tiles", fmt.Sprint(s.Len()))
			if grid {
				fmt.Print(renderGrid(s, gridCols, gridRows, ""))
			}
			fmt.Println(tileTable(s))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&grid, "grid", "g", false, "draw the layout as a grid")
	cmd.Flags().BoolVar(&raw, "json", false, "print the raw snapshot")
	return cmd
}

// seamsCommand lists the seams with how far each can travel.
func (c *CLI) seamsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seams",
		Short: "List the seams of the layout and their travel range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.open(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer ws.close()

			seams := ws.eng.Seams()
			ranges := make(map[string]seam.Range, len(seams))
			for _, sm := range seams {
				r, err := ws.eng.ClampSeam(sm.ID, 0)
				if err != nil {
					return err
				}
				ranges[sm.ID] = r
			}
			fmt.Println(seamTable(seams, ranges))
			return nil
		},
	}
}

// clampCommand reports the allowed travel of a seam or a tile edge.
func (c *CLI) clampCommand() *cobra.Command {
	var delta float64
	cmd := &cobra.Command{
		Use:               "clamp <seam-id> | clamp <tile-id> <edge>",
		Short:             "Show how far a seam or tile edge can move",
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: c.completeArgs(argTile, argEdge),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.open(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer ws.close()

			var r seam.Range
			if len(args) == 1 {
				r, err = ws.eng.ClampSeam(args[0], delta)
			} else {
				r, err = ws.eng.ClampEdge(args[0], args[1], delta)
			}
			if err != nil {
				return err
			}
			printClamp(r)
			return nil
		},
	}
	cmd.Flags().Float64VarP(&delta, "delta", "d", 0, "requested move to clamp")
	return cmd
}

func printClamp(r seam.Range) {
	if !r.ChainCovered {
		printWarning("Seam is not covered on both sides and cannot move")
		return
	}
	printKeyValue("Min", formatNum(r.Min))
	printKeyValue("Max", formatNum(r.Max))
	printKeyValue("Clamped", formatNum(r.Delta))
}
