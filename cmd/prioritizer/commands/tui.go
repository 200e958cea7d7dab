package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"prioritizer/internal/daemon"
	"prioritizer/tui"
	"prioritizer/tui/style"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal user interface",
	Long: `Launch the interactive TUI for rearranging the board.

Tasks are moved the way you would drag them: pick one up, walk the cursor to
a task or a section header and drop it there. Dropping onto a task takes its
position, dropping onto a header or an empty section appends.

Keyboard shortcuts:
  ←/h, →/l   - Move between sections
  ↑/k, ↓/j   - Move between tasks (up past the first task selects the header)
  space      - Pick up the selected task
  enter      - Drop the held task at the cursor
  esc        - Put the held task back
  x          - Toggle completed
  r          - Reload the board
  q/Ctrl+C   - Quit

When prioritizerd is running the board refreshes as soon as anything changes
it. Without the daemon the board is reloaded every few seconds.

Examples:
  prioritizer tui

  # Shorthand
  prioritizer`,
	Annotations: boardCommand(),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

// runTUI loads the board and runs the TUI until the user quits
func runTUI(cmd *cobra.Command) error {
	ctx, cancel := context.WithCancel(getContext())
	defer cancel()

	// Initialize styles and keybindings from config
	style.InitStyles(cfg)
	tui.InitKeybindings(cfg)

	board, err := container.GetBoardUseCase.Execute(ctx)
	if err != nil {
		return fmt.Errorf("failed to load board: %w", err)
	}

	// Live updates come from the daemon when it is running
	updates, err := daemon.NewClient(cfg).Subscribe(ctx)
	if err != nil {
		container.Logger.WithError(err).Debug("daemon unavailable, polling for changes")
		updates = nil
	}

	m := tui.NewModel(board, container, updates)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
