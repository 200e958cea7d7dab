package daemon

import "prioritizer/internal/application/dto"

// Request types
const (
	RequestGetBoard         = "get_board"
	RequestCreateSection    = "create_section"
	RequestCreateTask       = "create_task"
	RequestListTasks        = "list_tasks"
	RequestGetTask          = "get_task"
	RequestMoveTask         = "move_task"
	RequestUpdateTask       = "update_task"
	RequestDeleteTask       = "delete_task"
	RequestAddNote          = "add_note"
	RequestUpdateNote       = "update_note"
	RequestRemoveNote       = "remove_note"
	RequestAddWorkingDay    = "add_working_day"
	RequestRemoveWorkingDay = "remove_working_day"
	RequestAgenda           = "agenda"
	RequestSubscribe        = "subscribe"
	RequestPing             = "ping"
)

// Notification types
const (
	NotificationBoardChanged = "board_changed"
)

// Request represents a client request to the daemon
type Request struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// Response represents a daemon response to the client
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Notification is pushed to subscribed connections
type Notification struct {
	Type  string        `json:"type"`
	Board *dto.BoardDTO `json:"board,omitempty"`
}

// TaskIDPayload addresses a single task
type TaskIDPayload struct {
	TaskID string `json:"task_id"`
}

// AgendaPayload selects the agenda day; empty means today
type AgendaPayload struct {
	Day string `json:"day,omitempty"`
}
