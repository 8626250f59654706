package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ChandelAnish/NutriTrack/internal/cli"
	"github.com/ChandelAnish/NutriTrack/internal/lock"
	"github.com/ChandelAnish/NutriTrack/internal/logger"
	"github.com/ChandelAnish/NutriTrack/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	l, err := lock.Acquire(ctx.Config.CacheDir())
	if err != nil {
		return err
	}
	defer func() {
		if err := l.Release(); err != nil {
			logger.Warn("Failed to release lock", "error", err)
		}
	}()

	p := tea.NewProgram(tui.NewModel(ctx), tea.WithAltScreen(), tea.WithContext(ctx.Ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited with error: %w", err)
	}
	return nil
}
