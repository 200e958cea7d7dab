package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"prioritizer/internal/application/dto"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.loadBoard(), doTick())

	case boardMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.setBoard(*msg.board)
		return m, nil

	case notificationMsg:
		if msg.notification == nil {
			// The daemon went away; fall back to polling.
			m.updates = nil
			m.status = "daemon disconnected, polling for changes"
			return m, doTick()
		}
		if msg.notification.Board != nil {
			m.setBoard(*msg.notification.Board)
		}
		return m, waitForNotification(m.updates)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Left):
			m.moveLeft()

		case key.Matches(msg, keys.Right):
			m.moveRight()

		case key.Matches(msg, keys.Up):
			m.moveUp()

		case key.Matches(msg, keys.Down):
			m.moveDown()

		case key.Matches(msg, keys.PickUp):
			m.pickUp()

		case key.Matches(msg, keys.Drop):
			m.drop()

		case key.Matches(msg, keys.Cancel):
			m.cancelDrag()

		case key.Matches(msg, keys.Complete):
			m.toggleComplete()

		case key.Matches(msg, keys.Refresh):
			return m, m.loadBoard()
		}
	}

	return m, nil
}

// moveLeft moves focus to the left section
func (m *Model) moveLeft() {
	if m.focusedSection > 0 {
		m.focusedSection--
		m.clampTaskFocus()
	}
}

// moveRight moves focus to the right section
func (m *Model) moveRight() {
	if m.focusedSection < len(m.board.Sections)-1 {
		m.focusedSection++
		m.clampTaskFocus()
	}
}

// moveUp moves focus to the task above, then onto the section header
func (m *Model) moveUp() {
	if m.focusedTask > headerRow {
		m.focusedTask--
	}
}

// moveDown moves focus to the task below
func (m *Model) moveDown() {
	if m.focusedTask < m.currentSectionTaskCount()-1 {
		m.focusedTask++
	}
}

// pickUp starts dragging the focused task
func (m *Model) pickUp() {
	task := m.currentTask()
	if task == nil {
		return
	}

	ok, err := m.container.DragUseCase.Begin(context.Background(), task.ID)
	if err != nil {
		m.err = err
		return
	}
	if !ok {
		m.status = "task is gone, refresh the board"
		return
	}
	m.err = nil
	m.status = fmt.Sprintf("moving %q: choose a spot and press %s", task.Title, keys.Drop.Help().Key)
}

// drop places the held task at the cursor
func (m *Model) drop() {
	activeID, ok := m.dragging()
	if !ok {
		return
	}

	result, err := m.container.DragUseCase.End(context.Background(), m.dropTarget())
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.setBoard(result.Board)
	if result.Moved {
		m.focus(activeID)
		m.status = "moved"
	} else {
		m.status = "nothing to move"
	}
}

// cancelDrag abandons the gesture, leaving the board as it was
func (m *Model) cancelDrag() {
	if _, ok := m.dragging(); !ok {
		return
	}
	m.container.DragUseCase.Cancel()
	m.status = "move cancelled"
}

// toggleComplete flips the focused task between completed and todo
func (m *Model) toggleComplete() {
	task := m.currentTask()
	if task == nil {
		return
	}

	status := "completed"
	if task.Status == "completed" {
		status = "todo"
	}
	updated, err := m.container.UpdateTaskUseCase.Execute(context.Background(), dto.UpdateTaskRequest{
		TaskID: task.ID,
		Status: &status,
	})
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.board.Sections[m.focusedSection].Tasks[m.focusedTask] = *updated
}

// clampTaskFocus ensures the task focus is within valid bounds. An empty
// section can only be focused on its header.
func (m *Model) clampTaskFocus() {
	taskCount := m.currentSectionTaskCount()
	if taskCount == 0 {
		m.focusedTask = headerRow
	} else if m.focusedTask >= taskCount {
		m.focusedTask = taskCount - 1
	} else if m.focusedTask < headerRow {
		m.focusedTask = headerRow
	}
}
