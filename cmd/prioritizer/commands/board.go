package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"prioritizer/cmd/prioritizer/output"
	"prioritizer/internal/application/dto"
)

// boardCmd represents the board command
var boardCmd = &cobra.Command{
	Use:         "board",
	Short:       "Inspect the board",
	Annotations: boardCommand(),
}

// boardShowCmd prints every section with its tasks
var boardShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show all sections and their tasks",
	Long: `Show all sections in board order with their tasks.

Examples:
  # Show the board
  prioritizer board show

  # Show as JSON for scripting
  prioritizer board show --output json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		board, err := container.GetBoardUseCase.Execute(getContext())
		if err != nil {
			return fmt.Errorf("failed to load board: %w", err)
		}

		if formatter.IsStructured() {
			return formatter.Print(board)
		}

		for i, section := range board.Sections {
			if i > 0 {
				printer.Println("")
			}
			printer.Header("%s (%d)", section.Title, len(section.Tasks))
			printer.Subtle("id: %s", section.ID)
			if len(section.Tasks) == 0 {
				printer.Subtle("  (empty)")
				continue
			}
			printTaskTable(section.Tasks, false)
		}
		return nil
	},
}

// sectionCmd represents the section command
var sectionCmd = &cobra.Command{
	Use:         "section",
	Short:       "Manage sections",
	Annotations: boardCommand(),
}

// sectionAddCmd appends a section to the board
var sectionAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a section",
	Long: `Add a section at the end of the board. Its ID is derived from the title.

Examples:
  # Add a "Next Week" section (id: next-week)
  prioritizer section add "Next Week"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		section, err := container.CreateSectionUseCase.Execute(getContext(), dto.CreateSectionRequest{
			Title: strings.Join(args, " "),
		})
		if err != nil {
			return fmt.Errorf("failed to create section: %w", err)
		}

		if formatter.IsStructured() {
			return formatter.Print(section)
		}
		if !quiet {
			printer.Success("Created section %s (%s)", section.Title, section.ID)
		}
		return nil
	},
}

// printTaskTable renders tasks as a table; withSection adds a section column
func printTaskTable(tasks []dto.TaskDTO, withSection bool) {
	if formatter.Format() == output.FormatFZF {
		for _, task := range tasks {
			printer.Println("%s\t%s", task.ID, task.Title)
		}
		return
	}

	headers := []string{"ID", "TITLE", "PRIORITY", "STATUS", "DUE"}
	if withSection {
		headers = append(headers, "SECTION")
	}

	rows := make([][]string, 0, len(tasks))
	for _, task := range tasks {
		title := task.Title
		if task.Status == "completed" {
			title = printer.Styled("subtle", title)
		}
		due := ""
		if task.DueDate != nil {
			due = task.DueDate.Format(dto.DateLayout)
			if task.IsOverdue {
				due = printer.Styled("error", due)
			}
		}
		row := []string{task.ID, title, task.Priority, task.Status, due}
		if withSection {
			row = append(row, task.SectionID)
		}
		rows = append(rows, row)
	}
	printer.Table(headers, rows)
}

func init() {
	rootCmd.AddCommand(boardCmd)
	boardCmd.AddCommand(boardShowCmd)

	rootCmd.AddCommand(sectionCmd)
	sectionCmd.AddCommand(sectionAddCmd)
}
