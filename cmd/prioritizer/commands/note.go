package commands

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"prioritizer/internal/application/dto"
)

// noteCmd represents the note command
var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage task notes",
	Long: `Add, edit and remove the notes attached to a task.

Notes are listed by 'prioritizer task show <task-id>'.

Examples:
  # Add a note
  prioritizer note add <task-id> --title "Call" --content "Ask about the fee"

  # Write a note in $EDITOR
  prioritizer note add <task-id> --edit`,
	Annotations: boardCommand(),
}

var noteAddCmd = &cobra.Command{
	Use:   "add <task-id>",
	Short: "Add a note to a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := dto.NoteRequest{TaskID: args[0]}
		req.Title, _ = cmd.Flags().GetString("title")
		req.Content, _ = cmd.Flags().GetString("content")

		if edit, _ := cmd.Flags().GetBool("edit"); edit {
			content, err := openEditor(req.Content)
			if err != nil {
				return fmt.Errorf("failed to open editor: %w", err)
			}
			req.Content = strings.TrimRight(content, "\n")
		}

		note, err := container.AddNoteUseCase.Execute(getContext(), req)
		if err != nil {
			return fmt.Errorf("failed to add note: %w", err)
		}

		if formatter.IsStructured() {
			return formatter.Print(note)
		}
		if !quiet {
			printer.Success("Added note %s", note.ID)
		}
		return nil
	},
}

var noteUpdateCmd = &cobra.Command{
	Use:   "update <task-id> <note-id>",
	Short: "Edit a note",
	Long: `Replace the title and content of a note. Flags that are not passed keep
the current value.

Examples:
  # Rewrite a note in $EDITOR
  prioritizer note update <task-id> <note-id> --edit`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()

		task, err := container.GetTaskUseCase.Execute(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get task: %w", err)
		}
		current, ok := findNote(task, args[1])
		if !ok {
			return fmt.Errorf("note %s not found on task %s", args[1], args[0])
		}

		req := dto.NoteRequest{
			TaskID:  args[0],
			NoteID:  args[1],
			Title:   current.Title,
			Content: current.Content,
		}
		if cmd.Flags().Changed("title") {
			req.Title, _ = cmd.Flags().GetString("title")
		}
		if cmd.Flags().Changed("content") {
			req.Content, _ = cmd.Flags().GetString("content")
		}
		if edit, _ := cmd.Flags().GetBool("edit"); edit {
			content, err := openEditor(req.Content)
			if err != nil {
				return fmt.Errorf("failed to open editor: %w", err)
			}
			req.Content = strings.TrimRight(content, "\n")
		}

		note, err := container.UpdateNoteUseCase.Execute(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to update note: %w", err)
		}

		if formatter.IsStructured() {
			return formatter.Print(note)
		}
		if !quiet {
			printer.Success("Updated note %s", note.ID)
		}
		return nil
	},
}

var noteRemoveCmd = &cobra.Command{
	Use:     "remove <task-id> <note-id>",
	Aliases: []string{"rm"},
	Short:   "Remove a note",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := container.RemoveNoteUseCase.Execute(getContext(), dto.NoteRequest{
			TaskID: args[0],
			NoteID: args[1],
		})
		if err != nil {
			return fmt.Errorf("failed to remove note: %w", err)
		}
		if !quiet {
			printer.Success("Removed note %s", args[1])
		}
		return nil
	},
}

func findNote(task *dto.TaskDTO, noteID string) (dto.NoteDTO, bool) {
	for _, n := range task.Notes {
		if n.ID == noteID {
			return n, true
		}
	}
	return dto.NoteDTO{}, false
}

// openEditor lets the user edit content in $EDITOR and returns the result
func openEditor(content string) (string, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	tmpfile, err := os.CreateTemp("", "prioritizer-note-*.md")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmpfile.Name())

	if content != "" {
		if _, err := tmpfile.WriteString(content); err != nil {
			tmpfile.Close()
			return "", err
		}
	}
	tmpfile.Close()

	cmd := exec.Command(editor, tmpfile.Name())
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(tmpfile.Name())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func init() {
	rootCmd.AddCommand(noteCmd)
	noteCmd.AddCommand(noteAddCmd, noteUpdateCmd, noteRemoveCmd)

	for _, c := range []*cobra.Command{noteAddCmd, noteUpdateCmd} {
		c.Flags().StringP("title", "t", "", "Note title")
		c.Flags().StringP("content", "m", "", "Note content")
		c.Flags().BoolP("edit", "e", false, "Write the content in $EDITOR")
	}
}
