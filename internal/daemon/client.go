package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"net"

	"prioritizer/internal/application/dto"
	"prioritizer/internal/infrastructure/config"
)

// Client represents a daemon client
type Client struct {
	socketPath string
	dialer     net.Dialer
}

// NewClient creates a new daemon client
func NewClient(cfg *config.Config) *Client {
	return NewClientForSocket(cfg.SocketPath())
}

// NewClientForSocket creates a client for an explicit socket path
func NewClientForSocket(socketPath string) *Client {
	return &Client{socketPath: socketPath}
}

// rawResponse mirrors Response with the data left undecoded
type rawResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// sendRequest sends a request to the daemon and decodes the response data into out
func (c *Client) sendRequest(ctx context.Context, req *Request, out interface{}) error {
	conn, err := c.dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("failed to connect to daemon: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	if err := json.NewEncoder(conn).Encode(req); err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	var resp rawResponse
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if !resp.Success {
		return fmt.Errorf("daemon error: %s", resp.Error)
	}

	if out == nil || len(resp.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}

// Ping checks if the daemon is running and responding
func (c *Client) Ping(ctx context.Context) error {
	var pong string
	if err := c.sendRequest(ctx, &Request{Type: RequestPing}, &pong); err != nil {
		return err
	}
	if pong != "pong" {
		return fmt.Errorf("unexpected ping reply %q", pong)
	}
	return nil
}

// GetBoard fetches the whole board
func (c *Client) GetBoard(ctx context.Context) (*dto.BoardDTO, error) {
	var board dto.BoardDTO
	if err := c.sendRequest(ctx, &Request{Type: RequestGetBoard}, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

// CreateSection adds a section
func (c *Client) CreateSection(ctx context.Context, req dto.CreateSectionRequest) (*dto.SectionDTO, error) {
	var section dto.SectionDTO
	if err := c.sendRequest(ctx, &Request{Type: RequestCreateSection, Payload: req}, &section); err != nil {
		return nil, err
	}
	return &section, nil
}

// CreateTask adds a task
func (c *Client) CreateTask(ctx context.Context, req dto.CreateTaskRequest) (*dto.TaskDTO, error) {
	return c.taskRequest(ctx, RequestCreateTask, req)
}

// ListTasks lists tasks matching req
func (c *Client) ListTasks(ctx context.Context, req dto.ListTasksRequest) ([]dto.TaskDTO, error) {
	var tasks []dto.TaskDTO
	if err := c.sendRequest(ctx, &Request{Type: RequestListTasks, Payload: req}, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask fetches one task
func (c *Client) GetTask(ctx context.Context, taskID string) (*dto.TaskDTO, error) {
	return c.taskRequest(ctx, RequestGetTask, TaskIDPayload{TaskID: taskID})
}

// MoveTask drops a task onto a section or task
func (c *Client) MoveTask(ctx context.Context, req dto.MoveTaskRequest) (*dto.MoveResultDTO, error) {
	var result dto.MoveResultDTO
	if err := c.sendRequest(ctx, &Request{Type: RequestMoveTask, Payload: req}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateTask edits a task
func (c *Client) UpdateTask(ctx context.Context, req dto.UpdateTaskRequest) (*dto.TaskDTO, error) {
	return c.taskRequest(ctx, RequestUpdateTask, req)
}

// DeleteTask removes a task
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	return c.sendRequest(ctx, &Request{Type: RequestDeleteTask, Payload: TaskIDPayload{TaskID: taskID}}, nil)
}

// AddNote appends a note to a task
func (c *Client) AddNote(ctx context.Context, req dto.NoteRequest) (*dto.NoteDTO, error) {
	return c.noteRequest(ctx, RequestAddNote, req)
}

// UpdateNote edits a note
func (c *Client) UpdateNote(ctx context.Context, req dto.NoteRequest) (*dto.NoteDTO, error) {
	return c.noteRequest(ctx, RequestUpdateNote, req)
}

// RemoveNote deletes a note
func (c *Client) RemoveNote(ctx context.Context, req dto.NoteRequest) error {
	return c.sendRequest(ctx, &Request{Type: RequestRemoveNote, Payload: req}, nil)
}

// AddWorkingDay schedules a task on a day
func (c *Client) AddWorkingDay(ctx context.Context, req dto.WorkingDayRequest) (*dto.TaskDTO, error) {
	return c.taskRequest(ctx, RequestAddWorkingDay, req)
}

// RemoveWorkingDay unschedules a task from a day
func (c *Client) RemoveWorkingDay(ctx context.Context, req dto.WorkingDayRequest) (*dto.TaskDTO, error) {
	return c.taskRequest(ctx, RequestRemoveWorkingDay, req)
}

// Agenda fetches the agenda for day; empty means today
func (c *Client) Agenda(ctx context.Context, day string) (*dto.AgendaDTO, error) {
	var agenda dto.AgendaDTO
	if err := c.sendRequest(ctx, &Request{Type: RequestAgenda, Payload: AgendaPayload{Day: day}}, &agenda); err != nil {
		return nil, err
	}
	return &agenda, nil
}

func (c *Client) taskRequest(ctx context.Context, requestType string, payload interface{}) (*dto.TaskDTO, error) {
	var task dto.TaskDTO
	if err := c.sendRequest(ctx, &Request{Type: requestType, Payload: payload}, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) noteRequest(ctx context.Context, requestType string, payload interface{}) (*dto.NoteDTO, error) {
	var note dto.NoteDTO
	if err := c.sendRequest(ctx, &Request{Type: requestType, Payload: payload}, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// Subscribe opens a long-lived connection that yields a notification whenever
// the board changes. The channel is closed when ctx is done or the daemon goes away.
func (c *Client) Subscribe(ctx context.Context) (<-chan *Notification, error) {
	conn, err := c.dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w", err)
	}

	decoder := json.NewDecoder(conn)
	if err := json.NewEncoder(conn).Encode(&Request{Type: RequestSubscribe}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	var resp rawResponse
	if err := decoder.Decode(&resp); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if !resp.Success {
		conn.Close()
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	notifications := make(chan *Notification)
	go func() {
		<-ctx.Done()
		conn.Close()
	}()
	go func() {
		defer close(notifications)
		for {
			var n Notification
			if err := decoder.Decode(&n); err != nil {
				return
			}
			select {
			case notifications <- &n:
			case <-ctx.Done():
				return
			}
		}
	}()
	return notifications, nil
}
