// Package tui is the interactive board. Tasks are rearranged with a keyboard
// drag: pick a task up, move the cursor to where it should go, and drop it.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"prioritizer/internal/application/dto"
	"prioritizer/internal/daemon"
	"prioritizer/internal/di"
)

const refreshInterval = 2 * time.Second

// headerRow is the cursor row of a section's title. Dropping there appends to
// the section.
const headerRow = -1

// Model represents the TUI state
type Model struct {
	board          dto.BoardDTO
	container      *di.Container
	updates        <-chan *daemon.Notification
	focusedSection int   // which section is currently selected
	focusedTask    int   // which task in the current section is selected, or headerRow
	scrollOffsets  []int // scroll offset for each section (vertical)
	width          int
	height         int
	help           help.Model
	status         string
	err            error
}

// NewModel creates a new TUI model. updates may be nil, in which case the
// board is polled.
func NewModel(board *dto.BoardDTO, container *di.Container, updates <-chan *daemon.Notification) Model {
	m := Model{
		board:     *board,
		container: container,
		updates:   updates,
		help:      help.New(),
	}
	m.scrollOffsets = make([]int, len(m.board.Sections))
	m.clampTaskFocus()
	return m
}

// tickMsg is sent when the ticker fires
type tickMsg time.Time

// boardMsg carries a freshly loaded board
type boardMsg struct {
	board *dto.BoardDTO
	err   error
}

// notificationMsg carries a daemon notification; nil when the stream ended
type notificationMsg struct {
	notification *daemon.Notification
}

// doTick returns a command that waits for a tick
func doTick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitForNotification(updates <-chan *daemon.Notification) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-updates
		if !ok {
			return notificationMsg{}
		}
		return notificationMsg{notification: n}
	}
}

func (m Model) loadBoard() tea.Cmd {
	return func() tea.Msg {
		board, err := m.container.GetBoardUseCase.Execute(context.Background())
		return boardMsg{board: board, err: err}
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	if m.updates != nil {
		return waitForNotification(m.updates)
	}
	return doTick()
}

// dragging reports whether a task is held
func (m Model) dragging() (string, bool) {
	return m.container.DragUseCase.Active()
}

// Helper to get task count in current section
func (m Model) currentSectionTaskCount() int {
	if m.focusedSection < 0 || m.focusedSection >= len(m.board.Sections) {
		return 0
	}
	return len(m.board.Sections[m.focusedSection].Tasks)
}

// Helper to get current task
func (m Model) currentTask() *dto.TaskDTO {
	count := m.currentSectionTaskCount()
	if count == 0 || m.focusedTask < 0 || m.focusedTask >= count {
		return nil
	}
	return &m.board.Sections[m.focusedSection].Tasks[m.focusedTask]
}

// dropTarget is the ID a drop at the cursor lands on: the focused task, or
// the section itself when the cursor is on its header or it has no tasks
func (m Model) dropTarget() string {
	if m.focusedSection < 0 || m.focusedSection >= len(m.board.Sections) {
		return ""
	}
	if task := m.currentTask(); task != nil {
		return task.ID
	}
	return m.board.Sections[m.focusedSection].ID
}

// setBoard replaces the board keeping the cursor on the same task when it still exists
func (m *Model) setBoard(board dto.BoardDTO) {
	var focusedID string
	if task := m.currentTask(); task != nil {
		focusedID = task.ID
	}

	m.board = board
	if len(m.scrollOffsets) != len(board.Sections) {
		m.scrollOffsets = make([]int, len(board.Sections))
	}
	if focusedID == "" || !m.focus(focusedID) {
		if m.focusedSection >= len(board.Sections) {
			m.focusedSection = len(board.Sections) - 1
		}
		if m.focusedSection < 0 {
			m.focusedSection = 0
		}
		m.clampTaskFocus()
	}
}

// focus moves the cursor onto taskID
func (m *Model) focus(taskID string) bool {
	for si, section := range m.board.Sections {
		for ti, task := range section.Tasks {
			if task.ID == taskID {
				m.focusedSection = si
				m.focusedTask = ti
				return true
			}
		}
	}
	return false
}

// Helper to update scroll position to keep focused task visible
func (m *Model) updateScroll(viewportHeight int) {
	if m.focusedSection < 0 || m.focusedSection >= len(m.scrollOffsets) {
		return
	}

	taskCount := m.currentSectionTaskCount()
	if taskCount == 0 || m.focusedTask < 0 {
		m.scrollOffsets[m.focusedSection] = 0
		return
	}

	scrollOffset := m.scrollOffsets[m.focusedSection]
	if m.focusedTask < scrollOffset {
		m.scrollOffsets[m.focusedSection] = m.focusedTask
	} else if m.focusedTask >= scrollOffset+viewportHeight {
		m.scrollOffsets[m.focusedSection] = m.focusedTask - viewportHeight + 1
	}

	maxScroll := taskCount - viewportHeight
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.scrollOffsets[m.focusedSection] > maxScroll {
		m.scrollOffsets[m.focusedSection] = maxScroll
	}
	if m.scrollOffsets[m.focusedSection] < 0 {
		m.scrollOffsets[m.focusedSection] = 0
	}
}
