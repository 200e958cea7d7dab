package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"prioritizer/internal/application/dto"
	"prioritizer/internal/domain/valueobject"
)

// workdayCmd represents the workday command
var workdayCmd = &cobra.Command{
	Use:   "workday",
	Short: "Plan the days you work on a task",
	Long: `Schedule a task on one or more calendar days. Planned days show up in
'prioritizer agenda'.

Examples:
  # Plan a task for a day
  prioritizer workday add <task-id> 2026-03-10

  # Plan it for today
  prioritizer workday add <task-id>`,
	Annotations: boardCommand(),
}

var workdayAddCmd = &cobra.Command{
	Use:   "add <task-id> [day]",
	Short: "Schedule a task on a day (default today)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := dto.WorkingDayRequest{TaskID: args[0], Day: dayArg(args, 1)}
		task, err := container.AddWorkingDayUseCase.Execute(getContext(), req)
		if err != nil {
			return fmt.Errorf("failed to add working day: %w", err)
		}
		if formatter.IsStructured() {
			return formatter.Print(task)
		}
		if !quiet {
			printer.Success("Planned %s on %s", task.Title, req.Day)
		}
		return nil
	},
}

var workdayRemoveCmd = &cobra.Command{
	Use:     "remove <task-id> [day]",
	Aliases: []string{"rm"},
	Short:   "Unschedule a task from a day (default today)",
	Args:    cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := dto.WorkingDayRequest{TaskID: args[0], Day: dayArg(args, 1)}
		task, err := container.RemoveWorkingDayUseCase.Execute(getContext(), req)
		if err != nil {
			return fmt.Errorf("failed to remove working day: %w", err)
		}
		if formatter.IsStructured() {
			return formatter.Print(task)
		}
		if !quiet {
			printer.Success("Removed %s from %s", req.Day, task.Title)
		}
		return nil
	},
}

// agendaCmd shows the work planned for a day
var agendaCmd = &cobra.Command{
	Use:   "agenda [day]",
	Short: "Show what is planned for a day",
	Long: `Show the tasks planned for a day (today by default) followed by every
open task whose due date has passed.

Examples:
  # Today's agenda
  prioritizer agenda

  # Agenda for a given day as JSON
  prioritizer agenda 2026-03-10 -o json`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: boardCommand(),
	RunE: func(cmd *cobra.Command, args []string) error {
		day := ""
		if len(args) == 1 {
			day = args[0]
		}

		agenda, err := container.AgendaUseCase.Execute(getContext(), day)
		if err != nil {
			return fmt.Errorf("failed to build agenda: %w", err)
		}

		if formatter.IsStructured() {
			return formatter.Print(agenda)
		}

		heading := agenda.Day
		if parsed, err := time.ParseInLocation(dto.DateLayout, agenda.Day, time.Local); err == nil {
			heading = parsed.Format("Monday, January 2, 2006")
		}
		printer.Header("Agenda for %s", heading)

		printer.Println("")
		printer.Bold("Planned")
		if len(agenda.Scheduled) == 0 {
			printer.Subtle("  nothing planned")
		}
		for _, t := range agenda.Scheduled {
			printAgendaTask(t)
		}

		if len(agenda.Overdue) > 0 {
			printer.Println("")
			printer.Bold("Overdue")
			for _, t := range agenda.Overdue {
				printAgendaTask(t)
			}
		}
		return nil
	},
}

func printAgendaTask(t dto.TaskDTO) {
	mark := "•"
	title := t.Title
	if t.Status == valueobject.StatusCompleted.String() {
		mark = "✓"
		title = printer.Styled("subtle", title)
	}
	detail := fmt.Sprintf("[%s] %s, %s", shortID(t.ID), t.SectionID, t.Priority)
	if t.DueDate != nil {
		detail += ", due " + t.DueDate.Format(dto.DateLayout)
	}
	printer.Println("  %s %s", mark, title)
	printer.Subtle("    %s", detail)
}

// dayArg returns args[i] or today's date
func dayArg(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return time.Now().Format(dto.DateLayout)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	rootCmd.AddCommand(workdayCmd, agendaCmd)
	workdayCmd.AddCommand(workdayAddCmd, workdayRemoveCmd)
}
