package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prioritizer/internal/application/dto"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := fmt.Sprintf(`storage:
  backend: filesystem
  board_path: %[1]s/board
daemon:
  socket_dir: %[1]s
auth:
  required: true
  accounts_file: %[1]s/accounts.yml
  session_file: %[1]s/session.yml
  token_secret: test-secret
  bcrypt_cost: 4
logging:
  level: error
`, dir)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// execute runs the CLI with args and returns what it printed
func execute(t *testing.T, configFile, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--config", configFile}, args...))
	defer closeAll()

	err := rootCmd.Execute()
	return out.String(), err
}

func decode[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v), out)
	return v
}

func TestCommandsRequireSession(t *testing.T) {
	cfgFile := writeConfig(t)

	_, err := execute(t, cfgFile, "", "board", "show", "-o", "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not signed in")

	out, err := execute(t, cfgFile, "", "config", "path", "-o", "text")
	require.NoError(t, err)
	assert.Equal(t, cfgFile, strings.TrimSpace(out))
}

func TestBoardWorkflow(t *testing.T) {
	cfgFile := writeConfig(t)

	out, err := execute(t, cfgFile, "secret123\n",
		"register", "--email", "me@example.com", "--password-stdin", "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "me@example.com")

	out, err = execute(t, cfgFile, "", "task", "create", "--title", "Pay rent", "--priority", "high", "-o", "json")
	require.NoError(t, err)
	created := decode[dto.TaskDTO](t, out)
	assert.Equal(t, "todo", created.SectionID)
	assert.Equal(t, "high", created.Priority)

	out, err = execute(t, cfgFile, "", "task", "move", created.ID, "today", "-o", "json")
	require.NoError(t, err)
	moved := decode[dto.MoveResultDTO](t, out)
	assert.True(t, moved.Moved)

	out, err = execute(t, cfgFile, "", "task", "move", created.ID, "nowhere", "-o", "json")
	require.NoError(t, err)
	assert.False(t, decode[dto.MoveResultDTO](t, out).Moved)

	_, err = execute(t, cfgFile, "", "note", "add", created.ID, "--title", "Call", "--content", "Ask about the fee", "-o", "json")
	require.NoError(t, err)

	_, err = execute(t, cfgFile, "", "workday", "add", created.ID, "2026-03-10", "-o", "json")
	require.NoError(t, err)

	out, err = execute(t, cfgFile, "", "agenda", "2026-03-10", "-o", "json")
	require.NoError(t, err)
	agenda := decode[dto.AgendaDTO](t, out)
	require.Len(t, agenda.Scheduled, 1)
	assert.Equal(t, created.ID, agenda.Scheduled[0].ID)

	out, err = execute(t, cfgFile, "", "task", "list", "--section", "today", "-o", "json")
	require.NoError(t, err)
	tasks := decode[[]dto.TaskDTO](t, out)
	require.Len(t, tasks, 1)
	require.Len(t, tasks[0].Notes, 1)
	assert.Equal(t, "Call", tasks[0].Notes[0].Title)

	out, err = execute(t, cfgFile, "", "config", "show", "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, out, redacted)
	assert.NotContains(t, out, "test-secret")

	_, err = execute(t, cfgFile, "", "logout", "-o", "text")
	require.NoError(t, err)

	_, err = execute(t, cfgFile, "", "task", "list", "-o", "json")
	require.Error(t, err)
}

func TestParseMarkdownTask(t *testing.T) {
	title, description, err := parseMarkdownTask("# Renew passport\n\nBring two photos\n")
	require.NoError(t, err)
	assert.Equal(t, "Renew passport", title)
	assert.Equal(t, "Bring two photos", description)

	_, _, err = parseMarkdownTask("no heading here")
	assert.Error(t, err)

	_, _, err = parseMarkdownTask("# \nbody")
	assert.Error(t, err)
}
