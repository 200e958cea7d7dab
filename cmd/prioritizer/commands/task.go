package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"prioritizer/internal/application/dto"
)

// taskCmd represents the task command
var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
	Long: `Manage tasks on the board - create, update, move, delete, and query tasks.

Each task has a unique ID, a title, an optional description, a priority
(low, medium, high), a status (todo, in-progress, completed), an optional
due date, working days and notes.

Examples:
  # List all tasks
  prioritizer task list

  # Create a task in TODO
  prioritizer task create --title "Renew passport"

  # Mark a task as done
  prioritizer task update <task-id> --status completed

  # Drop a task onto the Today section
  prioritizer task move <task-id> today`,
	Annotations: boardCommand(),
}

// taskListCmd lists tasks
var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List tasks in board order with optional filtering.

Output formats:
  text - Human-readable table (default)
  json - JSON output for scripting
  yaml - YAML output
  fzf  - Task ID and title (tab-separated)

Examples:
  # List tasks in a section
  prioritizer task list --section today

  # List overdue high priority tasks
  prioritizer task list --overdue --priority high

  # List tasks planned for a day
  prioritizer task list --scheduled-on 2026-03-10`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := dto.ListTasksRequest{}
		req.SectionID, _ = cmd.Flags().GetString("section")
		req.Priority, _ = cmd.Flags().GetString("priority")
		req.Status, _ = cmd.Flags().GetString("status")
		req.Overdue, _ = cmd.Flags().GetBool("overdue")
		req.ScheduledOn, _ = cmd.Flags().GetString("scheduled-on")

		tasks, err := container.ListTasksUseCase.Execute(getContext(), req)
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		if formatter.IsStructured() {
			return formatter.Print(tasks)
		}
		if len(tasks) == 0 {
			if !quiet {
				printer.Info("No tasks found")
			}
			return nil
		}
		printTaskTable(tasks, req.SectionID == "")
		return nil
	},
}

// taskShowCmd shows a single task
var taskShowCmd = &cobra.Command{
	Use:   "show <task-id>",
	Short: "Show task details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		task, err := container.GetTaskUseCase.Execute(getContext(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get task: %w", err)
		}

		if formatter.IsStructured() {
			return formatter.Print(task)
		}
		printTask(task)
		return nil
	},
}

// taskCreateCmd creates a task
var taskCreateCmd = &cobra.Command{
	Use:   "create [title...]",
	Short: "Create a task",
	Long: `Create a task at the end of a section.

Examples:
  # Create a task in TODO
  prioritizer task create --title "Renew passport"

  # Write the title and description in $EDITOR
  prioritizer task create --edit

  # Create a high priority task for today with a due date
  prioritizer task create --section today --title "Pay rent" --priority high --due 2026-03-31`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := dto.CreateTaskRequest{}
		req.SectionID, _ = cmd.Flags().GetString("section")
		req.Title, _ = cmd.Flags().GetString("title")
		req.Description, _ = cmd.Flags().GetString("description")
		req.Priority, _ = cmd.Flags().GetString("priority")
		req.DueDate, _ = cmd.Flags().GetString("due")

		if req.Title == "" && len(args) > 0 {
			req.Title = strings.Join(args, " ")
		}

		if edit, _ := cmd.Flags().GetBool("edit"); edit {
			content, err := openEditor("# " + req.Title + "\n\n" + req.Description)
			if err != nil {
				return fmt.Errorf("failed to open editor: %w", err)
			}
			req.Title, req.Description, err = parseMarkdownTask(content)
			if err != nil {
				return err
			}
		}

		task, err := container.CreateTaskUseCase.Execute(getContext(), req)
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		if formatter.IsStructured() {
			return formatter.Print(task)
		}
		if !quiet {
			printer.Success("Created task %s in %s", task.Title, task.SectionID)
		}
		printer.Subtle("%s", task.ID)
		return nil
	},
}

// taskUpdateCmd edits task fields
var taskUpdateCmd = &cobra.Command{
	Use:   "update <task-id>",
	Short: "Update a task",
	Long: `Update the fields of a task. Only the flags you pass are changed.

Examples:
  # Rename a task
  prioritizer task update <task-id> --title "Renew passport and ID"

  # Start working on it
  prioritizer task update <task-id> --status in-progress

  # Drop the due date
  prioritizer task update <task-id> --clear-due`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := dto.UpdateTaskRequest{TaskID: args[0]}
		flags := cmd.Flags()
		for name, target := range map[string]**string{
			"title":       &req.Title,
			"description": &req.Description,
			"priority":    &req.Priority,
			"status":      &req.Status,
			"due":         &req.DueDate,
		} {
			if flags.Changed(name) {
				value, _ := flags.GetString(name)
				*target = &value
			}
		}
		if clearDue, _ := flags.GetBool("clear-due"); clearDue {
			empty := ""
			req.DueDate = &empty
		}

		task, err := container.UpdateTaskUseCase.Execute(getContext(), req)
		if err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}

		if formatter.IsStructured() {
			return formatter.Print(task)
		}
		if !quiet {
			printer.Success("Updated task %s", task.Title)
		}
		return nil
	},
}

// taskMoveCmd drops a task onto a section or another task
var taskMoveCmd = &cobra.Command{
	Use:   "move <task-id> <section-or-task-id>",
	Short: "Move a task",
	Long: `Move a task the same way the board's drag and drop does.

Dropping onto a section appends the task to it. Dropping onto a task places
the moved task at that task's position. A target that does not exist leaves
the board unchanged.

Examples:
  # Move a task to the end of Tomorrow
  prioritizer task move <task-id> tomorrow

  # Put a task right before another one
  prioritizer task move <task-id> <other-task-id>`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := container.MoveTaskUseCase.Execute(getContext(), dto.MoveTaskRequest{
			TaskID: args[0],
			OverID: args[1],
		})
		if err != nil {
			return fmt.Errorf("failed to move task: %w", err)
		}

		if formatter.IsStructured() {
			return formatter.Print(result)
		}
		if result.Moved {
			if !quiet {
				printer.Success("Moved task")
			}
			return nil
		}
		printer.Warning("Nothing moved: check the task and target IDs")
		return nil
	},
}

// taskDeleteCmd removes a task
var taskDeleteCmd = &cobra.Command{
	Use:   "delete <task-id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := container.DeleteTaskUseCase.Execute(getContext(), args[0]); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		if !quiet {
			printer.Success("Deleted task %s", args[0])
		}
		return nil
	},
}

// parseMarkdownTask reads the first heading as the title and the rest as the
// description
func parseMarkdownTask(content string) (string, string, error) {
	var title string
	var descriptionLines []string
	foundTitle := false

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if !foundTitle && strings.HasPrefix(trimmed, "#") {
			title = strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
			foundTitle = true
			continue
		}
		if foundTitle {
			descriptionLines = append(descriptionLines, line)
		}
	}

	if title == "" {
		return "", "", fmt.Errorf("no title found: add a line starting with '# ' followed by the task title")
	}
	return title, strings.TrimSpace(strings.Join(descriptionLines, "\n")), nil
}

// printTask prints a task with its notes and working days
func printTask(task *dto.TaskDTO) {
	printer.Header("%s", task.Title)
	printer.Subtle("%s", task.ID)
	printer.Println("")
	printer.Println("Section:   %s", task.SectionID)
	printer.Println("Priority:  %s", task.Priority)
	printer.Println("Status:    %s", task.Status)
	printer.Println("Created:   %s", task.CreatedAt.Format("2006-01-02 15:04"))
	printer.Println("Updated:   %s", task.UpdatedAt.Format("2006-01-02 15:04"))
	if task.DueDate != nil {
		due := task.DueDate.Format(dto.DateLayout)
		if task.IsOverdue {
			due = printer.Styled("error", due+" (overdue)")
		}
		printer.Println("Due:       %s", due)
	}
	if task.CompletedDate != nil {
		printer.Println("Completed: %s", task.CompletedDate.Format("2006-01-02 15:04"))
	}
	if len(task.WorkingDays) > 0 {
		printer.Println("Planned:   %s", strings.Join(task.WorkingDays, ", "))
	}

	if task.Description != "" {
		printer.Println("")
		printer.Println("%s", task.Description)
	}

	if len(task.Notes) > 0 {
		printer.Println("")
		printer.Bold("Notes")
		for _, note := range task.Notes {
			heading := note.Title
			if heading == "" {
				heading = "(untitled)"
			}
			printer.Println("• %s %s", heading, printer.Styled("subtle", note.ID))
			if note.Content != "" {
				printer.Println("  %s", strings.ReplaceAll(note.Content, "\n", "\n  "))
			}
		}
	}
}

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskListCmd, taskShowCmd, taskCreateCmd, taskUpdateCmd, taskMoveCmd, taskDeleteCmd)

	taskListCmd.Flags().String("section", "", "Only tasks in this section")
	taskListCmd.Flags().String("priority", "", "Only tasks with this priority (low, medium, high)")
	taskListCmd.Flags().String("status", "", "Only tasks with this status (todo, in-progress, completed)")
	taskListCmd.Flags().Bool("overdue", false, "Only overdue tasks")
	taskListCmd.Flags().String("scheduled-on", "", "Only tasks planned for this day (YYYY-MM-DD)")

	taskCreateCmd.Flags().StringP("section", "s", "todo", "Section to add the task to")
	taskCreateCmd.Flags().StringP("title", "t", "", "Task title")
	taskCreateCmd.Flags().StringP("description", "d", "", "Task description")
	taskCreateCmd.Flags().StringP("priority", "p", "", "Priority: low, medium (default), high")
	taskCreateCmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	taskCreateCmd.Flags().BoolP("edit", "e", false, "Write the title and description in $EDITOR")

	taskUpdateCmd.Flags().StringP("title", "t", "", "New title")
	taskUpdateCmd.Flags().StringP("description", "d", "", "New description")
	taskUpdateCmd.Flags().StringP("priority", "p", "", "New priority")
	taskUpdateCmd.Flags().String("status", "", "New status")
	taskUpdateCmd.Flags().String("due", "", "New due date (YYYY-MM-DD)")
	taskUpdateCmd.Flags().Bool("clear-due", false, "Remove the due date")
	taskUpdateCmd.MarkFlagsMutuallyExclusive("due", "clear-due")
}
