package commands

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"prioritizer/cmd/prioritizer/output"
)

const redacted = "<redacted>"

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manage prioritizer configuration settings.

Configuration is stored in YAML format at:
  ~/.config/prioritizer/config.yml

Examples:
  # Show current configuration
  prioritizer config show

  # Edit config in editor
  prioritizer config edit

  # Show config file location
  prioritizer config path`,
}

// configShowCmd shows the current configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Show the configuration in effect, defaults included. The token secret is
not printed.

Examples:
  # Show in YAML format (default)
  prioritizer config show

  # Show in JSON format
  prioritizer config show --output json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		shown := *cfg
		if shown.Auth.TokenSecret != "" {
			shown.Auth.TokenSecret = redacted
		}
		if formatter.IsStructured() {
			return formatter.Print(shown)
		}
		return output.NewFormatter(output.FormatYAML, cmd.OutOrStdout()).Print(shown)
	},
}

// configEditCmd opens the config file in an editor
var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration in $EDITOR",
	RunE: func(cmd *cobra.Command, args []string) error {
		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = "vi"
		}

		c := exec.Command(editor, loader.GetConfigPath())
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("failed to run editor: %w", err)
		}

		if _, err := loader.Load(); err != nil {
			printer.Warning("The edited config does not load: %v", err)
			return nil
		}
		if !quiet {
			printer.Success("Configuration saved")
		}
		return nil
	},
}

// configPathCmd shows the config file path
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show config file path",
	Run: func(cmd *cobra.Command, args []string) {
		printer.Println("%s", loader.GetConfigPath())
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configEditCmd, configPathCmd)
}
