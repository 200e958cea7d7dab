package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"prioritizer/cmd/prioritizer/output"
	"prioritizer/internal/di"
	"prioritizer/internal/domain/auth"
	"prioritizer/internal/infrastructure/config"
	"prioritizer/internal/logging"
)

// annotationBoard marks commands that read or change the board. They need a
// session when auth.required is set.
const annotationBoard = "prioritizer/board"

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"

	// Global flags
	outputFormat string
	configPath   string
	quiet        bool

	// Shared instances
	cfg       *config.Config
	loader    *config.Loader
	container *di.Container
	printer   *output.Printer
	formatter *output.Formatter

	closers []func()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "prioritizer",
	Short: "Sort your tasks into Today, Tomorrow and TODO",
	Long: `prioritizer keeps a board of sections (Today, Tomorrow, TODO by default)
and lets you rearrange tasks between them from the terminal.

Examples:
  # Launch interactive TUI
  prioritizer
  prioritizer tui

  # Show the board
  prioritizer board show

  # Create a task for today
  prioritizer task create --section today --title "Call the bank" --priority high

  # Move a task in front of another one
  prioritizer task move <task-id> <other-task-id>

  # See what is planned for today
  prioritizer agenda`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configPath != "" {
			loader, err = config.LoadFrom(configPath)
		} else {
			loader, err = config.NewLoader()
		}
		if err != nil {
			return fmt.Errorf("failed to create config loader: %w", err)
		}

		cfg, err = loader.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger, logCloser, err := logging.Setup(cfg.Logging)
		if err != nil {
			return err
		}
		closers = append(closers, closer(logCloser))

		// Initialize DI container
		var cleanup func()
		container, cleanup, err = di.InitializeContainer(cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize container: %w", err)
		}
		closers = append(closers, cleanup)

		// Initialize output formatter
		format, err := output.ParseFormat(outputFormat)
		if err != nil {
			return err
		}
		formatter = output.NewFormatter(format, cmd.OutOrStdout())
		printer = output.NewPrinter(cmd.OutOrStdout())

		if needsBoard(cmd) {
			return requireSession(getContext())
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeAll()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			printVersion()
			return nil
		}
		if err := requireSession(getContext()); err != nil {
			return err
		}
		return runTUI(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		closeAll()
		output.ErrorPrinter().Error("%v", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, json, yaml")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")

	// Version flag
	rootCmd.Flags().BoolP("version", "v", false, "Show version information")
}

func closeAll() {
	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}
	closers = nil
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("prioritizer version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Built:      %s\n", BuildDate)
}

// getContext returns a context for command execution
func getContext() context.Context {
	return context.Background()
}

// needsBoard reports whether cmd or one of its parents is a board command
func needsBoard(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationBoard] == "true" {
			return true
		}
	}
	return false
}

func boardCommand() map[string]string {
	return map[string]string{annotationBoard: "true"}
}

// requireSession refuses to continue without a valid session when the config
// asks for one
func requireSession(ctx context.Context) error {
	if !cfg.Auth.Required {
		return nil
	}
	gate := auth.NewGate(ctx, container.AuthGateway)
	defer gate.Close()

	if !gate.Allowed() {
		return fmt.Errorf("not signed in: run 'prioritizer login' or 'prioritizer register' first")
	}
	return nil
}

// closer adapts io.Closer for the closers list
func closer(c io.Closer) func() {
	return func() { c.Close() }
}
