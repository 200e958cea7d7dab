package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"prioritizer/pkg/filesystem"
)

const (
	defaultConfigFileName = "config.yml"
	defaultConfigDirName  = ".config/prioritizer"
	defaultDataDirName    = ".local/share/prioritizer"
)

// Storage backends
const (
	BackendMemory     = "memory"
	BackendFilesystem = "filesystem"
	BackendSQLite     = "sqlite"
)

// Config holds application configuration
type Config struct {
	Storage     StorageConfig     `yaml:"storage"`
	Daemon      DaemonConfig      `yaml:"daemon"`
	Auth        AuthConfig        `yaml:"auth"`
	Logging     LoggingConfig     `yaml:"logging"`
	Board       BoardConfig       `yaml:"board"`
	TUI         TUIConfig         `yaml:"tui"`
	Keybindings KeybindingsConfig `yaml:"keybindings"`
}

// StorageConfig selects and locates the task store
type StorageConfig struct {
	Backend      string `yaml:"backend"`
	BoardPath    string `yaml:"board_path"`
	DatabasePath string `yaml:"database_path"`
}

// DaemonConfig holds daemon-related configuration
type DaemonConfig struct {
	SocketDir  string `yaml:"socket_dir"`
	SocketName string `yaml:"socket_name"`
	// WatchDebounce is how long the store watcher waits for a burst of file
	// events to settle, as a Go duration string
	WatchDebounce string `yaml:"watch_debounce"`
}

// AuthConfig configures the local sign-in gateway
type AuthConfig struct {
	Required     bool   `yaml:"required"`
	AccountsFile string `yaml:"accounts_file"`
	SessionFile  string `yaml:"session_file"`
	TokenSecret  string `yaml:"token_secret"`
	TokenTTL     string `yaml:"token_ttl"`
	BcryptCost   int    `yaml:"bcrypt_cost,omitempty"`
}

// LoggingConfig configures logrus
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// BoardConfig holds board defaults
type BoardConfig struct {
	DefaultSections []string `yaml:"default_sections"`
}

// TUIConfig holds TUI styling configuration
type TUIConfig struct {
	Styles StylesConfig `yaml:"styles"`
}

// StylesConfig holds color and styling configuration
type StylesConfig struct {
	Section        SectionStyle   `yaml:"section"`
	FocusedSection SectionStyle   `yaml:"focused_section"`
	SectionTitle   TextStyle      `yaml:"section_title"`
	Task           TextStyle      `yaml:"task"`
	SelectedTask   TextStyle      `yaml:"selected_task"`
	DraggedTask    TextStyle      `yaml:"dragged_task"`
	DropMarker     TextStyle      `yaml:"drop_marker"`
	Help           TextStyle      `yaml:"help"`
	Status         TextStyle      `yaml:"status"`
	DueDate        TextStyle      `yaml:"due_date"`
	Overdue        TextStyle      `yaml:"overdue"`
	Completed      TextStyle      `yaml:"completed"`
	Priority       PriorityColors `yaml:"priority"`
}

// SectionStyle represents section column styling
type SectionStyle struct {
	PaddingVertical   int    `yaml:"padding_vertical"`
	PaddingHorizontal int    `yaml:"padding_horizontal"`
	BorderStyle       string `yaml:"border_style"`
	BorderColor       string `yaml:"border_color"`
}

// TextStyle represents text styling
type TextStyle struct {
	Foreground        string `yaml:"foreground,omitempty"`
	Background        string `yaml:"background,omitempty"`
	Bold              bool   `yaml:"bold,omitempty"`
	Italic            bool   `yaml:"italic,omitempty"`
	Strikethrough     bool   `yaml:"strikethrough,omitempty"`
	PaddingVertical   int    `yaml:"padding_vertical,omitempty"`
	PaddingHorizontal int    `yaml:"padding_horizontal,omitempty"`
	Align             string `yaml:"align,omitempty"`
}

// PriorityColors holds colors for different priority levels
type PriorityColors struct {
	High   string `yaml:"high"`
	Medium string `yaml:"medium"`
	Low    string `yaml:"low"`
}

// KeybindingsConfig holds keybinding configuration
type KeybindingsConfig struct {
	Up       []string `yaml:"up"`
	Down     []string `yaml:"down"`
	Left     []string `yaml:"left"`
	Right    []string `yaml:"right"`
	PickUp   []string `yaml:"pick_up"`
	Drop     []string `yaml:"drop"`
	Cancel   []string `yaml:"cancel"`
	Complete []string `yaml:"complete"`
	Refresh  []string `yaml:"refresh"`
	Quit     []string `yaml:"quit"`
}

// WatchDebounceDuration parses Daemon.WatchDebounce
func (c *Config) WatchDebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.Daemon.WatchDebounce)
	if err != nil || d <= 0 {
		return 200 * time.Millisecond
	}
	return d
}

// TokenTTLDuration parses Auth.TokenTTL; zero means tokens never expire
func (c *Config) TokenTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.Auth.TokenTTL)
	return d
}

// SocketPath returns the daemon socket location
func (c *Config) SocketPath() string {
	return filepath.Join(c.Daemon.SocketDir, c.Daemon.SocketName)
}

// Validate checks values that cannot be defaulted silently
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory:
	case BackendFilesystem:
		if c.Storage.BoardPath == "" {
			return errors.New("storage.board_path is required for the filesystem backend")
		}
	case BackendSQLite:
		if c.Storage.DatabasePath == "" {
			return errors.New("storage.database_path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging.level: %w", err)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid logging.format %q", c.Logging.Format)
	}

	if c.Auth.TokenTTL != "" {
		if _, err := time.ParseDuration(c.Auth.TokenTTL); err != nil {
			return fmt.Errorf("invalid auth.token_ttl: %w", err)
		}
	}
	if c.Auth.TokenSecret == "" {
		return errors.New("auth.token_secret must not be empty")
	}
	if len(c.Board.DefaultSections) == 0 {
		return errors.New("board.default_sections must name at least one section")
	}
	return nil
}

// Loader handles loading and saving configuration
type Loader struct {
	configPath string
	homeDir    string
}

// NewLoader creates a loader for ~/.config/prioritizer/config.yml
func NewLoader() (*Loader, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return &Loader{
		configPath: filepath.Join(homeDir, defaultConfigDirName, defaultConfigFileName),
		homeDir:    homeDir,
	}, nil
}

// LoadFrom creates a loader for an explicit config file
func LoadFrom(path string) (*Loader, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return &Loader{configPath: path, homeDir: homeDir}, nil
}

// Load loads the configuration, creating defaults if it doesn't exist.
// Keys missing from the file keep their default values.
func (l *Loader) Load() (*Config, error) {
	data, err := os.ReadFile(l.configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return l.createDefaultConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default(l.homeDir)
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	config.expandPaths(l.homeDir)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", l.configPath, err)
	}
	return config, nil
}

// Save persists the configuration to disk. The file holds the token secret
// and is only readable by its owner.
func (l *Loader) Save(config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := filesystem.SafeWrite(l.configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GetConfigPath returns the path to the config file
func (l *Loader) GetConfigPath() string {
	return l.configPath
}

func (l *Loader) createDefaultConfig() (*Config, error) {
	config := Default(l.homeDir)
	config.Auth.TokenSecret = uuid.NewString()

	if err := l.Save(config); err != nil {
		return nil, err
	}
	return config, nil
}

// expandPaths resolves a leading ~ in configured paths
func (c *Config) expandPaths(homeDir string) {
	for _, p := range []*string{
		&c.Storage.BoardPath,
		&c.Storage.DatabasePath,
		&c.Daemon.SocketDir,
		&c.Auth.AccountsFile,
		&c.Auth.SessionFile,
		&c.Logging.File,
	} {
		if *p == "~" {
			*p = homeDir
		} else if strings.HasPrefix(*p, "~/") {
			*p = filepath.Join(homeDir, (*p)[2:])
		}
	}
}

// Default returns the built-in configuration rooted at homeDir
func Default(homeDir string) *Config {
	dataDir := filepath.Join(homeDir, defaultDataDirName)
	configDir := filepath.Join(homeDir, defaultConfigDirName)

	return &Config{
		Storage: StorageConfig{
			Backend:      BackendFilesystem,
			BoardPath:    filepath.Join(dataDir, "board"),
			DatabasePath: filepath.Join(dataDir, "prioritizer.db"),
		},
		Daemon: DaemonConfig{
			SocketDir:     dataDir,
			SocketName:    "prioritizerd.sock",
			WatchDebounce: "200ms",
		},
		Auth: AuthConfig{
			Required:     true,
			AccountsFile: filepath.Join(configDir, "accounts.yml"),
			SessionFile:  filepath.Join(dataDir, "session.yml"),
			TokenTTL:     "720h",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Board: BoardConfig{
			DefaultSections: []string{"Today", "Tomorrow", "TODO"},
		},
		TUI: TUIConfig{
			Styles: StylesConfig{
				Section: SectionStyle{
					PaddingVertical:   0,
					PaddingHorizontal: 1,
					BorderStyle:       "rounded",
					BorderColor:       "240",
				},
				FocusedSection: SectionStyle{
					PaddingVertical:   0,
					PaddingHorizontal: 1,
					BorderStyle:       "rounded",
					BorderColor:       "62",
				},
				SectionTitle: TextStyle{
					Foreground: "99",
					Bold:       true,
					Align:      "center",
				},
				Task: TextStyle{
					Foreground:        "252",
					PaddingHorizontal: 1,
				},
				SelectedTask: TextStyle{
					Foreground:        "230",
					Background:        "62",
					Bold:              true,
					PaddingHorizontal: 1,
				},
				DraggedTask: TextStyle{
					Foreground:        "#1D3557",
					Background:        "#FFE66D",
					Bold:              true,
					PaddingHorizontal: 1,
				},
				DropMarker: TextStyle{
					Foreground: "#FFE66D",
					Bold:       true,
				},
				Help: TextStyle{
					Foreground:        "241",
					PaddingHorizontal: 2,
				},
				Status: TextStyle{
					Foreground:        "#A8DADC",
					PaddingHorizontal: 2,
				},
				DueDate: TextStyle{
					Foreground: "#999999",
				},
				Overdue: TextStyle{
					Foreground: "#FF6B6B",
					Bold:       true,
				},
				Completed: TextStyle{
					Foreground:    "#666666",
					Strikethrough: true,
				},
				Priority: PriorityColors{
					High:   "#FF6B6B",
					Medium: "#FFE66D",
					Low:    "#95E1D3",
				},
			},
		},
		Keybindings: KeybindingsConfig{
			Up:       []string{"up", "k"},
			Down:     []string{"down", "j"},
			Left:     []string{"left", "h"},
			Right:    []string{"right", "l"},
			PickUp:   []string{" "},
			Drop:     []string{"enter"},
			Cancel:   []string{"esc"},
			Complete: []string{"x"},
			Refresh:  []string{"r"},
			Quit:     []string{"q", "ctrl+c"},
		},
	}
}
