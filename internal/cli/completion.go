package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tilegrid/pkg/tiling"
)

// completionCommand generates shell completion scripts.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for tilegrid.

Tile ids, seam ids and edges are completed from the layout named by --file
or --store.

  $ source <(tilegrid completion bash)
  $ tilegrid completion zsh > "${fpath[1]}/_tilegrid"
  $ tilegrid completion fish | source
  PS> tilegrid completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}

// argKind names what a positional argument holds.
type argKind int

const (
	argTile argKind = iota
	argSeam
	argEdge
	argOrientation
)

// completeArgs completes positional arguments of the given kinds in order.
func (c *CLI) completeArgs(kinds ...argKind) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) >= len(kinds) {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		switch kinds[len(args)] {
		case argEdge:
			out := make([]string, len(tiling.Edges))
			for i, e := range tiling.Edges {
				out[i] = string(e)
			}
			return out, cobra.ShellCompDirectiveNoFileComp
		case argOrientation:
			return []string{string(tiling.Vertical), string(tiling.Horizontal)}, cobra.ShellCompDirectiveNoFileComp
		case argSeam:
			return c.layoutIDs(func(s *tiling.State) []string {
				var out []string
				for _, sm := range s.Seams() {
					out = append(out, sm.ID)
				}
				return out
			})
		}
		return c.layoutIDs(func(s *tiling.State) []string {
			var out []string
			for _, t := range s.Tiles() {
				out = append(out, t.ID)
			}
			return out
		})
	}
}

// layoutIDs reads the layout quietly and returns ids picked from it.
func (c *CLI) layoutIDs(pick func(*tiling.State) []string) ([]string, cobra.ShellCompDirective) {
	ctx := withLogger(context.Background(), newLogger(io.Discard, LogInfo))
	ws, err := c.open(ctx, false)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer ws.close()
	return pick(ws.eng.State()), cobra.ShellCompDirectiveNoFileComp
}
