package commands

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"prioritizer/internal/domain/auth"
)

var errPromptCanceled = errors.New("canceled")

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	Long: `Create a local account identified by an email address or phone number
and sign in with it.

Examples:
  # Register interactively
  prioritizer register --email me@example.com

  # Register from a script
  echo "$PASSWORD" | prioritizer register --email me@example.com --password-stdin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		identifier, secret, err := readCredentials(cmd)
		if err != nil {
			return err
		}
		session, err := container.AuthGateway.Register(getContext(), identifier, secret)
		if err != nil {
			return err
		}
		return printSession(session, "Registered and signed in as %s")
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in",
	Long: `Sign in with an email address or phone number and password, or through a
configured provider.

Examples:
  prioritizer login --email me@example.com
  prioritizer login --provider github`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()

		provider, _ := cmd.Flags().GetString("provider")
		if provider != "" {
			session, err := container.AuthGateway.SignInInteractive(ctx, auth.ProviderKind(provider))
			if err != nil {
				return err
			}
			return printSession(session, "Signed in as %s")
		}

		identifier, secret, err := readCredentials(cmd)
		if err != nil {
			return err
		}
		session, err := container.AuthGateway.SignInWithCredentials(ctx, identifier, secret)
		if err != nil {
			return err
		}
		return printSession(session, "Signed in as %s")
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := container.AuthGateway.SignOut(getContext()); err != nil {
			return err
		}
		if !quiet {
			printer.Success("Signed out")
		}
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		session := container.AuthGateway.Current()
		if formatter.IsStructured() {
			return formatter.Print(session)
		}
		if session == nil {
			printer.Info("Not signed in")
			return nil
		}
		printer.Println("%s", sessionName(session))
		printer.Subtle("provider %s, expires %s", session.Provider, session.ExpiresAt.Format("2006-01-02 15:04"))
		return nil
	},
}

// readCredentials takes the identifier from --email and the password from stdin
// or an interactive prompt
func readCredentials(cmd *cobra.Command) (string, string, error) {
	identifier, _ := cmd.Flags().GetString("email")
	if identifier == "" {
		var err error
		identifier, err = prompt("Email or phone", false)
		if err != nil {
			return "", "", err
		}
	}

	if fromStdin, _ := cmd.Flags().GetBool("password-stdin"); fromStdin {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return "", "", fmt.Errorf("failed to read password: %w", err)
		}
		return identifier, strings.TrimRight(line, "\r\n"), nil
	}

	secret, err := prompt("Password", true)
	if err != nil {
		return "", "", err
	}
	return identifier, secret, nil
}

func printSession(session *auth.Session, message string) error {
	if formatter.IsStructured() {
		return formatter.Print(session)
	}
	if !quiet {
		printer.Success(message, sessionName(session))
	}
	return nil
}

func sessionName(session *auth.Session) string {
	if session.Email != "" {
		return session.Email
	}
	return session.UserID
}

// promptModel reads a single line with a text input
type promptModel struct {
	input    textinput.Model
	done     bool
	canceled bool
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.canceled = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.done || m.canceled {
		return ""
	}
	return m.input.View() + "\n"
}

func prompt(label string, secret bool) (string, error) {
	input := textinput.New()
	input.Prompt = label + ": "
	if secret {
		input.EchoMode = textinput.EchoPassword
		input.EchoCharacter = '•'
	}
	input.Focus()

	result, err := tea.NewProgram(promptModel{input: input}, tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return "", err
	}
	m := result.(promptModel)
	if m.canceled {
		return "", errPromptCanceled
	}
	if secret {
		return m.input.Value(), nil
	}
	return strings.TrimSpace(m.input.Value()), nil
}

func init() {
	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd, whoamiCmd)

	for _, c := range []*cobra.Command{registerCmd, loginCmd} {
		c.Flags().String("email", "", "Email address or phone number")
		c.Flags().Bool("password-stdin", false, "Read the password from stdin")
	}
	loginCmd.Flags().String("provider", "", "Sign in through a provider (google, github)")
	loginCmd.MarkFlagsMutuallyExclusive("provider", "email")
}
