// Package daemon serves the board over a unix socket and pushes a notification
// to subscribers whenever the board changes.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"

	"prioritizer/internal/application/dto"
	"prioritizer/internal/di"
	"prioritizer/internal/infrastructure/config"
)

const notificationBuffer = 10

// Server represents the daemon server
type Server struct {
	container *di.Container
	config    *config.Config
	log       *log.Entry

	mu       sync.Mutex
	listener net.Listener
	watcher  *StoreWatcher

	subscribers map[net.Conn]chan *Notification
	subMu       sync.RWMutex
}

// NewServer creates a daemon server around an initialized container
func NewServer(container *di.Container) *Server {
	return &Server{
		container:   container,
		config:      container.Config,
		log:         container.Logger.WithField("component", "daemon"),
		subscribers: make(map[net.Conn]chan *Notification),
	}
}

// Start listens on the configured socket and serves until ctx is done or Stop
// is called
func (s *Server) Start(ctx context.Context) error {
	socketPath := s.config.SocketPath()
	if err := os.MkdirAll(filepath.Dir(socketPath), 0o755); err != nil {
		return fmt.Errorf("failed to create socket directory: %w", err)
	}

	// Remove existing socket if it exists
	if err := os.RemoveAll(socketPath); err != nil {
		return fmt.Errorf("failed to remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return fmt.Errorf("failed to listen on socket: %w", err)
	}
	s.log.WithField("socket", socketPath).Info("daemon listening")

	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener. When the board lives on the
// filesystem, edits made by other processes are picked up by a store watcher.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	if s.config.Storage.Backend == config.BackendFilesystem {
		watcher, err := NewStoreWatcher(
			s.config.Storage.BoardPath,
			s.config.WatchDebounceDuration(),
			func() { s.publish(context.Background()) },
			s.container.Logger,
		)
		if err != nil {
			listener.Close()
			return err
		}
		s.mu.Lock()
		s.watcher = watcher
		s.mu.Unlock()
		go watcher.Run(ctx)
	}

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return s.acceptConnections(listener)
}

// acceptConnections handles incoming connections
func (s *Server) acceptConnections(listener net.Listener) error {
	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("failed to accept connection: %w", err)
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single client connection
func (s *Server) handleConnection(conn net.Conn) {
	defer func() {
		s.cleanupSubscriber(conn)
		conn.Close()
	}()

	decoder := json.NewDecoder(conn)
	encoder := json.NewEncoder(conn)

	for {
		var req Request
		if err := decoder.Decode(&req); err != nil {
			return
		}

		// Subscribe keeps the connection open for notifications
		if req.Type == RequestSubscribe {
			s.handleSubscribe(conn, encoder)
			return
		}

		resp := s.handleRequest(&req)
		if err := encoder.Encode(resp); err != nil {
			s.log.WithError(err).Warn("failed to encode response")
			return
		}

		if req.Type != RequestPing {
			return
		}
	}
}

// handleRequest processes a request and returns a response
func (s *Server) handleRequest(req *Request) *Response {
	ctx := context.Background()
	entry := s.log.WithField("request", req.Type)
	entry.Debug("handling request")

	var (
		data    interface{}
		changed bool
		err     error
	)
	switch req.Type {
	case RequestGetBoard:
		data, err = s.container.GetBoardUseCase.Execute(ctx)
	case RequestCreateSection:
		var payload dto.CreateSectionRequest
		if err = decodePayload(req.Payload, &payload); err == nil {
			data, err = s.container.CreateSectionUseCase.Execute(ctx, payload)
			changed = true
		}
	case RequestCreateTask:
		var payload dto.CreateTaskRequest
		if err = decodePayload(req.Payload, &payload); err == nil {
			data, err = s.container.CreateTaskUseCase.Execute(ctx, payload)
			changed = true
		}
	case RequestListTasks:
		var payload dto.ListTasksRequest
		if err = decodePayload(req.Payload, &payload); err == nil {
			data, err = s.container.ListTasksUseCase.Execute(ctx, payload)
		}
	case RequestGetTask:
		var payload TaskIDPayload
		if err = decodePayload(req.Payload, &payload); err == nil {
			data, err = s.container.GetTaskUseCase.Execute(ctx, payload.TaskID)
		}
	case RequestMoveTask:
		var payload dto.MoveTaskRequest
		if err = decodePayload(req.Payload, &payload); err == nil {
			var result *dto.MoveResultDTO
			result, err = s.container.MoveTaskUseCase.Execute(ctx, payload)
			if err == nil {
				data, changed = result, result.Moved
			}
		}
	case RequestUpdateTask:
		var payload dto.UpdateTaskRequest
		if err = decodePayload(req.Payload, &payload); err == nil {
			data, err = s.container.UpdateTaskUseCase.Execute(ctx, payload)
			changed = true
		}
	case RequestDeleteTask:
		var payload TaskIDPayload
		if err = decodePayload(req.Payload, &payload); err == nil {
			err = s.container.DeleteTaskUseCase.Execute(ctx, payload.TaskID)
			changed = true
		}
	case RequestAddNote:
		var payload dto.NoteRequest
		if err = decodePayload(req.Payload, &payload); err == nil {
			data, err = s.container.AddNoteUseCase.Execute(ctx, payload)
			changed = true
		}
	case RequestUpdateNote:
		var payload dto.NoteRequest
		if err = decodePayload(req.Payload, &payload); err == nil {
			data, err = s.container.UpdateNoteUseCase.Execute(ctx, payload)
			changed = true
		}
	case RequestRemoveNote:
		var payload dto.NoteRequest
		if err = decodePayload(req.Payload, &payload); err == nil {
			err = s.container.RemoveNoteUseCase.Execute(ctx, payload)
			changed = true
		}
	case RequestAddWorkingDay:
		var payload dto.WorkingDayRequest
		if err = decodePayload(req.Payload, &payload); err == nil {
			data, err = s.container.AddWorkingDayUseCase.Execute(ctx, payload)
			changed = true
		}
	case RequestRemoveWorkingDay:
		var payload dto.WorkingDayRequest
		if err = decodePayload(req.Payload, &payload); err == nil {
			data, err = s.container.RemoveWorkingDayUseCase.Execute(ctx, payload)
			changed = true
		}
	case RequestAgenda:
		var payload AgendaPayload
		if err = decodePayload(req.Payload, &payload); err == nil {
			data, err = s.container.AgendaUseCase.Execute(ctx, payload.Day)
		}
	case RequestPing:
		data = "pong"
	default:
		err = fmt.Errorf("unknown request type: %s", req.Type)
	}

	if err != nil {
		entry.WithError(err).Debug("request failed")
		return &Response{Success: false, Error: err.Error()}
	}
	if changed {
		s.publish(ctx)
	}
	return &Response{Success: true, Data: data}
}

// publish sends the current board to every subscriber
func (s *Server) publish(ctx context.Context) {
	s.subMu.RLock()
	empty := len(s.subscribers) == 0
	s.subMu.RUnlock()
	if empty {
		return
	}

	board, err := s.container.GetBoardUseCase.Execute(ctx)
	if err != nil {
		s.log.WithError(err).Warn("failed to load board for subscribers")
		return
	}
	s.notifySubscribers(&Notification{Type: NotificationBoardChanged, Board: board})
}

// decodePayload decodes request payload into target struct
func decodePayload(payload interface{}, target interface{}) error {
	if payload == nil {
		return nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return nil
}

// Stop closes the listener and the store watcher
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			s.log.WithError(err).Warn("failed to close store watcher")
		}
		s.watcher = nil
	}

	if s.listener != nil {
		err := s.listener.Close()
		s.listener = nil
		if err != nil && !errors.Is(err, net.ErrClosed) {
			return err
		}
	}
	return nil
}

// handleSubscribe registers conn and streams notifications to it until the
// connection fails
func (s *Server) handleSubscribe(conn net.Conn, encoder *json.Encoder) {
	notifChan := make(chan *Notification, notificationBuffer)

	s.subMu.Lock()
	s.subscribers[conn] = notifChan
	s.subMu.Unlock()

	if err := encoder.Encode(&Response{Success: true, Data: "subscribed"}); err != nil {
		s.cleanupSubscriber(conn)
		return
	}
	s.log.Debug("subscriber connected")

	// A closed client never sends again; the read returning unblocks cleanup.
	go func() {
		var discard json.RawMessage
		json.NewDecoder(conn).Decode(&discard)
		s.cleanupSubscriber(conn)
	}()

	for notification := range notifChan {
		if err := encoder.Encode(notification); err != nil {
			return
		}
	}
}

// notifySubscribers sends a notification to all subscribers
func (s *Server) notifySubscribers(notification *Notification) {
	s.subMu.RLock()
	defer s.subMu.RUnlock()

	for _, ch := range s.subscribers {
		select {
		case ch <- notification:
		default:
			// Channel full, skip this subscriber
		}
	}
}

// cleanupSubscriber removes a connection's subscription
func (s *Server) cleanupSubscriber(conn net.Conn) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	if ch, exists := s.subscribers[conn]; exists {
		close(ch)
		delete(s.subscribers, conn)
	}
}
