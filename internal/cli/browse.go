package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/rosterbot/internal/config"
	"github.com/rshade/rosterbot/internal/nav"
	"github.com/rshade/rosterbot/internal/roster"
	"github.com/rshade/rosterbot/internal/source"
	"github.com/rshade/rosterbot/internal/store"
	"github.com/rshade/rosterbot/internal/tui"
)

// ErrNotATerminal indicates browse was run without an interactive terminal.
var ErrNotATerminal = errors.New("browse requires an interactive terminal (use 'list' for scripted output)")

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// newBrowseCmd creates the interactive TUI browse command.
func newBrowseCmd(getConfig func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the roster interactively",
		Long:  "Open a terminal UI that pages through the roster the same way the chat transport would.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdout) {
				return ErrNotATerminal
			}
			cfg := getConfig()

			st, err := store.Open(cfg.Source.Database, config.GetLogger())
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			manager, formatter := newManager(cfg, st)
			model := tui.NewBrowseModel(manager, formatter)

			prog := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := prog.Run(); err != nil {
				return fmt.Errorf("browse UI: %w", err)
			}
			return nil
		},
	}
}

// newManager assembles the navigation stack: store, count cache, localized
// formatter, and session manager.
func newManager(cfg *config.Config, src source.Source) (*nav.Manager, *roster.Formatter) {
	formatter := roster.NewFormatter(cfg.Locale, nil)
	cached := source.NewCountCache(src, cfg.CountTTL())
	manager := nav.NewManager(cached, formatter, formatter.Envelope(), cfg.Limits(), config.GetLogger())
	return manager, formatter
}
