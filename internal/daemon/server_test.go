package daemon

import (
	"context"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prioritizer/internal/application/dto"
	"prioritizer/internal/di"
	"prioritizer/internal/infrastructure/config"
	"prioritizer/internal/logging"
)

func startServer(t *testing.T, backend string) (*Client, *config.Config) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default(dir)
	cfg.Storage.Backend = backend
	cfg.Storage.BoardPath = filepath.Join(dir, "board")
	cfg.Daemon.SocketDir = dir
	cfg.Daemon.SocketName = "d.sock"
	cfg.Daemon.WatchDebounce = "20ms"
	cfg.Auth.TokenSecret = "test"

	container, cleanup, err := di.InitializeContainer(cfg, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(cleanup)

	listener, err := net.Listen("unix", cfg.SocketPath())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	server := NewServer(container)
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, listener) }()
	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
	})

	return NewClient(cfg), cfg
}

func TestServer_Requests(t *testing.T) {
	client, _ := startServer(t, config.BackendMemory)
	ctx := context.Background()

	require.NoError(t, client.Ping(ctx))

	section, err := client.CreateSection(ctx, dto.CreateSectionRequest{Title: "Someday"})
	require.NoError(t, err)
	assert.Equal(t, "someday", section.ID)

	a, err := client.CreateTask(ctx, dto.CreateTaskRequest{SectionID: "today", Title: "A"})
	require.NoError(t, err)
	b, err := client.CreateTask(ctx, dto.CreateTaskRequest{SectionID: "someday", Title: "B"})
	require.NoError(t, err)

	moved, err := client.MoveTask(ctx, dto.MoveTaskRequest{TaskID: a.ID, OverID: b.ID})
	require.NoError(t, err)
	assert.True(t, moved.Moved)

	got, err := client.GetTask(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "someday", got.SectionID)

	title := "A, renamed"
	updated, err := client.UpdateTask(ctx, dto.UpdateTaskRequest{TaskID: a.ID, Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)

	note, err := client.AddNote(ctx, dto.NoteRequest{TaskID: a.ID, Content: "first"})
	require.NoError(t, err)
	_, err = client.UpdateNote(ctx, dto.NoteRequest{TaskID: a.ID, NoteID: note.ID, Content: "second"})
	require.NoError(t, err)
	require.NoError(t, client.RemoveNote(ctx, dto.NoteRequest{TaskID: a.ID, NoteID: note.ID}))

	day := time.Now().Format(dto.DateLayout)
	scheduled, err := client.AddWorkingDay(ctx, dto.WorkingDayRequest{TaskID: a.ID, Day: day})
	require.NoError(t, err)
	assert.Equal(t, []string{day}, scheduled.WorkingDays)

	agenda, err := client.Agenda(ctx, "")
	require.NoError(t, err)
	require.Len(t, agenda.Scheduled, 1)
	assert.Equal(t, a.ID, agenda.Scheduled[0].ID)

	_, err = client.RemoveWorkingDay(ctx, dto.WorkingDayRequest{TaskID: a.ID, Day: day})
	require.NoError(t, err)

	tasks, err := client.ListTasks(ctx, dto.ListTasksRequest{SectionID: "someday"})
	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	require.NoError(t, client.DeleteTask(ctx, b.ID))
	board, err := client.GetBoard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, board.TaskCount)

	_, err = client.GetTask(ctx, b.ID)
	assert.ErrorContains(t, err, "task not found")
}

func TestServer_UnknownRequest(t *testing.T) {
	client, _ := startServer(t, config.BackendMemory)

	err := client.sendRequest(context.Background(), &Request{Type: "explode"}, nil)
	assert.ErrorContains(t, err, "unknown request type")
}

func TestServer_SubscribeSeesChanges(t *testing.T) {
	client, _ := startServer(t, config.BackendMemory)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notifications, err := client.Subscribe(ctx)
	require.NoError(t, err)

	created, err := client.CreateTask(ctx, dto.CreateTaskRequest{SectionID: "today", Title: "Ping me"})
	require.NoError(t, err)

	select {
	case n := <-notifications:
		require.NotNil(t, n)
		assert.Equal(t, NotificationBoardChanged, n.Type)
		require.NotNil(t, n.Board)
		assert.Equal(t, created.ID, n.Board.Sections[0].Tasks[0].ID)
	case <-time.After(2 * time.Second):
		t.Fatal("no notification")
	}

	cancel()
	assert.Eventually(t, func() bool {
		_, open := <-notifications
		return !open
	}, 2*time.Second, 10*time.Millisecond)
}

func TestServer_WatcherPublishesExternalEdits(t *testing.T) {
	client, cfg := startServer(t, config.BackendFilesystem)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Seed the board on disk before subscribing.
	_, err := client.GetBoard(ctx)
	require.NoError(t, err)

	notifications, err := client.Subscribe(ctx)
	require.NoError(t, err)

	// Another process touching the store shows up as a change.
	marker := filepath.Join(cfg.Storage.BoardPath, "sections", "today", "touched")
	require.NoError(t, os.WriteFile(marker, []byte("x"), 0o644))

	select {
	case n := <-notifications:
		require.NotNil(t, n)
		assert.Equal(t, NotificationBoardChanged, n.Type)
	case <-time.After(3 * time.Second):
		t.Fatal("no notification for external edit")
	}
}

func TestStoreWatcher_Debounces(t *testing.T) {
	root := t.TempDir()
	var calls atomic.Int32
	w, err := NewStoreWatcher(root, 50*time.Millisecond, func() { calls.Add(1) }, logging.Discard())
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	sub := filepath.Join(root, "sections")
	require.NoError(t, os.Mkdir(sub, 0o755))
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(root, "board.md"), []byte{byte(i)}, 0o644))
	}

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())

	// New directories are watched too.
	require.NoError(t, os.WriteFile(filepath.Join(sub, "section.md"), []byte("x"), 0o644))
	assert.Eventually(t, func() bool { return calls.Load() == 2 }, 2*time.Second, 10*time.Millisecond)

	// Temp files from atomic writes are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(root, ".tmp-123"), []byte("x"), 0o644))
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(2), calls.Load())
}

func TestServer_SubscribeAckFailureReleasesSubscriber(t *testing.T) {
	cfg := config.Default(t.TempDir())
	cfg.Storage.Backend = config.BackendMemory
	cfg.Auth.TokenSecret = "test"

	container, cleanup, err := di.InitializeContainer(cfg, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(cleanup)

	server := NewServer(container)
	conn, peer := net.Pipe()
	require.NoError(t, peer.Close())
	defer conn.Close()

	server.handleSubscribe(conn, json.NewEncoder(conn))

	server.subMu.RLock()
	defer server.subMu.RUnlock()
	assert.Empty(t, server.subscribers)
}
