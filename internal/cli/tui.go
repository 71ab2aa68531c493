package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shutterdesk/studio/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	p := tea.NewProgram(tui.NewModel(ctx.API, ctx.Location), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
