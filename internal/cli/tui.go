package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tilegrid/pkg/engine"
	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/ops"
	"github.com/matzehuels/tilegrid/pkg/tiling"
)

// resizeStep is how far one key press moves an edge, in percent.
const resizeStep = 1.0

// Editor styles
var (
	editorGridStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	editorStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	editorHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

const editorHelp = "←/→ select  v/h split  d delete  [/] width  {/} height  a adjust  u/r undo/redo  w write  q quit"

// =============================================================================
// EditorModel - Interactive layout editing
// =============================================================================

// EditorModel is the bubbletea model of the edit command.
type EditorModel struct {
	ctx    context.Context
	eng    *engine.Engine
	write  func() error
	ids    []string
	cursor int
	status string
	failed bool
	dirty  bool
}

// NewEditorModel returns an editor over eng. write persists the layout.
func NewEditorModel(ctx context.Context, eng *engine.Engine, write func() error) EditorModel {
	m := EditorModel{ctx: ctx, eng: eng, write: write}
	m.refresh()
	return m
}

// Selected returns the id of the selected tile.
func (m EditorModel) Selected() string {
	if len(m.ids) == 0 {
		return ""
	}
	return m.ids[m.cursor]
}

// Dirty reports whether there are unwritten changes.
func (m EditorModel) Dirty() bool { return m.dirty }

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	sel := m.Selected()
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "up", "shift+tab":
		m.cursor = (m.cursor + len(m.ids) - 1) % len(m.ids)
	case "right", "down", "tab":
		m.cursor = (m.cursor + 1) % len(m.ids)
	case "v":
		m.split(sel, tiling.Vertical)
	case "h":
		m.split(sel, tiling.Horizontal)
	case "d":
		res, err := m.eng.Delete(m.ctx, sel)
		m.report("delete", res, err)
	case "[":
		m.resize(sel, tiling.EdgeRight, -resizeStep)
	case "]":
		m.resize(sel, tiling.EdgeRight, resizeStep)
	case "{":
		m.resize(sel, tiling.EdgeBottom, -resizeStep)
	case "}":
		m.resize(sel, tiling.EdgeBottom, resizeStep)
	case "a":
		res := m.eng.Adjust(m.ctx, nil)
		switch {
		case !res.Success:
			m.fail(errors.UserMessage(res.Err))
		case len(res.Adjusted) == 0:
			m.ok("nothing to adjust")
		default:
			m.dirty = true
			m.ok("adjusted " + strings.Join(res.Adjusted, ", "))
		}
	case "u":
		m.history("undo", m.eng.Undo())
	case "r":
		m.history("redo", m.eng.Redo())
	case "w":
		if err := m.write(); err != nil {
			m.fail(errors.UserMessage(err))
		} else {
			m.dirty = false
			m.ok("written")
		}
	}
	m.refresh()
	return m, nil
}

func (m *EditorModel) split(id string, o tiling.Orientation) {
	res, err := m.eng.Split(m.ctx, id, string(o), ops.DefaultRatio)
	m.report("split", res, err)
}

func (m *EditorModel) resize(id string, e tiling.Edge, delta float64) {
	res, err := m.eng.Resize(m.ctx, id, string(e), delta)
	m.report("resize", res, err)
}

func (m *EditorModel) report(name string, res ops.Result, err error) {
	switch {
	case err != nil:
		m.fail(errors.UserMessage(err))
	case !res.Valid:
		msgs := make([]string, len(res.Violations))
		for i, v := range res.Violations {
			msgs[i] = v.Message
		}
		m.fail(name + " rejected: " + strings.Join(msgs, "; "))
	default:
		m.dirty = true
		m.ok(name + " ok")
	}
}

func (m *EditorModel) history(name string, changed bool) {
	if !changed {
		m.fail("nothing to " + name)
		return
	}
	m.dirty = true
	m.ok(name + " ok")
}

func (m *EditorModel) ok(msg string)   { m.status, m.failed = msg, false }
func (m *EditorModel) fail(msg string) { m.status, m.failed = msg, true }

// refresh re-reads the tile ids and keeps the selection on the same tile
// when it still exists.
func (m *EditorModel) refresh() {
	prev := m.Selected()
	tiles := m.eng.State().Tiles()
	m.ids = make([]string, 0, len(tiles))
	for _, t := range tiles {
		m.ids = append(m.ids, t.ID)
	}
	m.cursor = min(m.cursor, len(m.ids)-1)
	for i, id := range m.ids {
		if id == prev {
			m.cursor = i
		}
	}
}

func (m EditorModel) View() string {
	var b strings.Builder
	s := m.eng.State()

	title := StyleTitle.Render(appName)
	if m.dirty {
		title += StyleDim.Render(" (modified)")
	}
	b.WriteString(title + "\n\n")
	b.WriteString(editorGridStyle.Render(renderGrid(s, gridCols, gridRows, m.Selected())))
	b.WriteString("\n")

	if t, ok := s.Tile(m.Selected()); ok {
		info := fmt.Sprintf("%s  x=%s y=%s w=%s h=%s", StyleHighlight.Render(t.ID),
			formatNum(t.X), formatNum(t.Y), formatNum(t.Width), formatNum(t.Height))
		if t.Locked {
			info += " " + styleLocked.Render(iconLocked)
		}
		b.WriteString(info + "\n")
	}
	if m.status != "" {
		if m.failed {
			b.WriteString(styleIconError.Render(iconError) + " " + m.status + "\n")
		} else {
			b.WriteString(editorStatusStyle.Render(iconInfo+" "+m.status) + "\n")
		}
	}
	b.WriteString("\n" + editorHelpStyle.Render(editorHelp))
	return b.String()
}

// editCommand opens the interactive editor.
func (c *CLI) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the layout interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := c.open(ctx, true)
			if err != nil {
				return err
			}
			defer ws.close()

			m := NewEditorModel(ctx, ws.eng, func() error { return c.save(ctx, ws) })
			final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
			if err != nil {
				return err
			}
			if em, ok := final.(EditorModel); ok && em.Dirty() {
				printWarning("Quit with unwritten changes")
			}
			return nil
		},
	}
}
