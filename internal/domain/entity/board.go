package entity

// Board is the ordered collection of sections and the sole owner of their tasks.
// A Board value is immutable: every operation that changes it returns a new Board
// and leaves the receiver untouched, so earlier values stay valid.
type Board struct {
	sections []*Section
	// position of each section in sections
	sectionIdx map[string]int
	// task id -> id of the owning section
	owner map[string]string
}

// NewBoard assembles a board, enforcing unique section ids, single ownership of
// every task and disjoint section/task id namespaces
func NewBoard(sections ...*Section) (*Board, error) {
	b := &Board{
		sections:   make([]*Section, 0, len(sections)),
		sectionIdx: make(map[string]int, len(sections)),
		owner:      make(map[string]string),
	}

	for _, s := range sections {
		if s == nil {
			return nil, ErrSectionNotFound
		}
		if _, dup := b.sectionIdx[s.ID()]; dup {
			return nil, ErrSectionAlreadyExists
		}
		b.sectionIdx[s.ID()] = len(b.sections)
		b.sections = append(b.sections, s)
	}

	for _, s := range b.sections {
		for _, t := range s.tasks {
			if _, dup := b.owner[t.ID()]; dup {
				return nil, ErrTaskAlreadyExists
			}
			if _, clash := b.sectionIdx[t.ID()]; clash {
				return nil, ErrIDCollision
			}
			b.owner[t.ID()] = s.ID()
		}
	}

	return b, nil
}

// Sections returns the sections in display order
func (b *Board) Sections() []*Section {
	sections := make([]*Section, len(b.sections))
	copy(sections, b.sections)
	return sections
}

// Section returns the section with the given ID
func (b *Board) Section(id string) (*Section, error) {
	idx, ok := b.sectionIdx[id]
	if !ok {
		return nil, ErrSectionNotFound
	}
	return b.sections[idx], nil
}

// HasSection reports whether id names a section
func (b *Board) HasSection(id string) bool {
	_, ok := b.sectionIdx[id]
	return ok
}

// HasTask reports whether id names a task on the board
func (b *Board) HasTask(id string) bool {
	_, ok := b.owner[id]
	return ok
}

// SectionOf returns the ID of the section that owns a task
func (b *Board) SectionOf(taskID string) (string, bool) {
	sectionID, ok := b.owner[taskID]
	return sectionID, ok
}

// FindTask returns a task and the section that owns it
func (b *Board) FindTask(taskID string) (*Task, *Section, error) {
	sectionID, ok := b.owner[taskID]
	if !ok {
		return nil, nil, ErrTaskNotFound
	}
	section := b.sections[b.sectionIdx[sectionID]]
	return section.tasks[section.IndexOf(taskID)], section, nil
}

// Tasks returns every task in board order
func (b *Board) Tasks() []*Task {
	tasks := make([]*Task, 0, len(b.owner))
	for _, s := range b.sections {
		tasks = append(tasks, s.tasks...)
	}
	return tasks
}

// TaskIDs returns every task ID in board order
func (b *Board) TaskIDs() []string {
	ids := make([]string, 0, len(b.owner))
	for _, s := range b.sections {
		ids = append(ids, s.TaskIDs()...)
	}
	return ids
}

// TaskCount returns the number of tasks on the board
func (b *Board) TaskCount() int {
	return len(b.owner)
}

// Move returns the board that results from dropping the active task on overID,
// which names either a section or a task. Unresolvable ids leave the board as is.
func (b *Board) Move(activeID, overID string) *Board {
	moved, _ := b.TryMove(activeID, overID)
	return moved
}

// TryMove behaves like Move and additionally reports why a move was a no-op.
// The board returned with a non-nil error is always the receiver.
//
// Within one section the task is array-moved to the target task's index; dropping
// on the section itself sends it to the end. Across sections the task is removed
// from its source and placed immediately before the target task, or appended when
// the target is the section.
func (b *Board) TryMove(activeID, overID string) (*Board, error) {
	srcSectionID, ok := b.owner[activeID]
	if !ok {
		return b, ErrTaskNotFound
	}

	dstSectionID, overIsSection := overID, true
	if _, ok := b.sectionIdx[overID]; !ok {
		owner, ok := b.owner[overID]
		if !ok {
			return b, ErrDropTargetNotFound
		}
		dstSectionID, overIsSection = owner, false
	}

	srcIdx := b.sectionIdx[srcSectionID]
	src := b.sections[srcIdx]
	from := src.IndexOf(activeID)

	if srcSectionID == dstSectionID {
		to := len(src.tasks) - 1
		if !overIsSection {
			to = src.IndexOf(overID)
		}
		if from == to {
			return b, nil
		}
		return b.replaceSections(nil, src.withTasks(arrayMove(src.tasks, from, to))), nil
	}

	dstIdx := b.sectionIdx[dstSectionID]
	dst := b.sections[dstIdx]
	task := src.tasks[from]

	srcTasks := removeAt(src.tasks, from)
	at := len(dst.tasks)
	if !overIsSection {
		at = dst.IndexOf(overID)
	}
	dstTasks := insertAt(dst.tasks, at, task)

	owner := b.copyOwner()
	owner[activeID] = dstSectionID
	return b.replaceSections(owner, src.withTasks(srcTasks), dst.withTasks(dstTasks)), nil
}

// WithTask returns a board where the task sharing updated's ID is replaced by updated
func (b *Board) WithTask(updated *Task) (*Board, error) {
	if updated == nil {
		return b, ErrInvalidTaskID
	}
	sectionID, ok := b.owner[updated.ID()]
	if !ok {
		return b, ErrTaskNotFound
	}
	section := b.sections[b.sectionIdx[sectionID]]
	tasks := section.Tasks()
	tasks[section.IndexOf(updated.ID())] = updated
	return b.replaceSections(nil, section.withTasks(tasks)), nil
}

// AddTask returns a board with task appended to the given section
func (b *Board) AddTask(sectionID string, task *Task) (*Board, error) {
	if task == nil {
		return b, ErrInvalidTaskID
	}
	idx, ok := b.sectionIdx[sectionID]
	if !ok {
		return b, ErrSectionNotFound
	}
	if b.HasTask(task.ID()) {
		return b, ErrTaskAlreadyExists
	}
	if b.HasSection(task.ID()) {
		return b, ErrIDCollision
	}

	section := b.sections[idx]
	owner := b.copyOwner()
	owner[task.ID()] = sectionID
	return b.replaceSections(owner, section.withTasks(insertAt(section.tasks, len(section.tasks), task))), nil
}

// RemoveTask returns a board without the given task
func (b *Board) RemoveTask(taskID string) (*Board, error) {
	sectionID, ok := b.owner[taskID]
	if !ok {
		return b, ErrTaskNotFound
	}
	section := b.sections[b.sectionIdx[sectionID]]
	owner := b.copyOwner()
	delete(owner, taskID)
	return b.replaceSections(owner, section.withTasks(removeAt(section.tasks, section.IndexOf(taskID)))), nil
}

// AddSection returns a board with section appended after the existing ones
func (b *Board) AddSection(section *Section) (*Board, error) {
	if section == nil {
		return b, ErrSectionNotFound
	}
	sections := append(b.Sections(), section)
	return NewBoard(sections...)
}

// replaceSections copies the board, swapping in sections by ID.
// A nil owner keeps the current ownership index.
func (b *Board) replaceSections(owner map[string]string, replacements ...*Section) *Board {
	sections := b.Sections()
	for _, s := range replacements {
		sections[b.sectionIdx[s.ID()]] = s
	}
	if owner == nil {
		owner = b.owner
	}
	return &Board{
		sections:   sections,
		sectionIdx: b.sectionIdx,
		owner:      owner,
	}
}

func (b *Board) copyOwner() map[string]string {
	owner := make(map[string]string, len(b.owner)+1)
	for k, v := range b.owner {
		owner[k] = v
	}
	return owner
}

// arrayMove returns a copy of tasks with the element at from reinserted at to
func arrayMove(tasks []*Task, from, to int) []*Task {
	moved := tasks[from]
	return insertAt(removeAt(tasks, from), to, moved)
}

func removeAt(tasks []*Task, i int) []*Task {
	out := make([]*Task, 0, len(tasks))
	out = append(out, tasks[:i]...)
	return append(out, tasks[i+1:]...)
}

func insertAt(tasks []*Task, i int, task *Task) []*Task {
	out := make([]*Task, 0, len(tasks)+1)
	out = append(out, tasks[:i]...)
	out = append(out, task)
	return append(out, tasks[i:]...)
}
