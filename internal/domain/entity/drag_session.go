package entity

// DragSession tracks the task picked up by a single in-flight drag gesture.
// The zero value is idle.
type DragSession struct {
	taskID   string
	dragging bool
}

// Begin picks up taskID. A stale id leaves the session as it was; beginning while
// already dragging replaces the held task.
func (d *DragSession) Begin(board *Board, taskID string) bool {
	if board == nil || !board.HasTask(taskID) {
		return false
	}
	d.taskID = taskID
	d.dragging = true
	return true
}

// End drops the held task on overID and returns the resulting board.
// An empty overID means the task was released outside any drop target.
func (d *DragSession) End(board *Board, overID string) *Board {
	if !d.dragging {
		return board
	}
	taskID := d.taskID
	d.Cancel()
	if overID == "" || board == nil {
		return board
	}
	return board.Move(taskID, overID)
}

// Cancel abandons the gesture
func (d *DragSession) Cancel() {
	d.taskID = ""
	d.dragging = false
}

// Active returns the held task ID
func (d *DragSession) Active() (string, bool) {
	return d.taskID, d.dragging
}

// IsDragging reports whether a task is held
func (d *DragSession) IsDragging() bool {
	return d.dragging
}
