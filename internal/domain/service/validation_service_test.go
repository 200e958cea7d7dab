package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prioritizer/internal/domain/entity"
	"prioritizer/internal/domain/valueobject"
)

func TestValidationService_TaskTitle(t *testing.T) {
	v := NewValidationService()

	assert.NoError(t, v.ValidateTaskTitle("Write report"))
	assert.ErrorIs(t, v.ValidateTaskTitle("   "), entity.ErrEmptyTaskTitle)
	assert.Error(t, v.ValidateTaskTitle(strings.Repeat("x", 201)))
	assert.NoError(t, v.ValidateTaskTitle(strings.Repeat("é", 200)))
}

func TestValidationService_SectionTitle(t *testing.T) {
	v := NewValidationService()

	assert.NoError(t, v.ValidateSectionTitle("Today"))
	assert.ErrorIs(t, v.ValidateSectionTitle(""), entity.ErrEmptySectionTitle)
	assert.Error(t, v.ValidateSectionTitle(strings.Repeat("s", 61)))
}

func TestValidationService_UniqueSectionID(t *testing.T) {
	v := NewValidationService()

	task, err := entity.NewTask("t1", "Task", "", valueobject.PriorityLow, valueobject.StatusTodo)
	require.NoError(t, err)
	section, err := entity.NewSection("today", "Today", task)
	require.NoError(t, err)
	board, err := entity.NewBoard(section)
	require.NoError(t, err)

	assert.NoError(t, v.ValidateUniqueSectionID(board, "later"))
	assert.ErrorIs(t, v.ValidateUniqueSectionID(board, "today"), entity.ErrSectionAlreadyExists)
	assert.ErrorIs(t, v.ValidateUniqueSectionID(board, "t1"), entity.ErrIDCollision)
}

func TestValidationService_Parse(t *testing.T) {
	v := NewValidationService()

	p, err := v.ParsePriority("")
	require.NoError(t, err)
	assert.Equal(t, valueobject.PriorityMedium, p)
	p, err = v.ParsePriority("HIGH")
	require.NoError(t, err)
	assert.Equal(t, valueobject.PriorityHigh, p)
	_, err = v.ParsePriority("urgent")
	assert.ErrorIs(t, err, entity.ErrInvalidPriority)

	s, err := v.ParseStatus("done")
	require.NoError(t, err)
	assert.Equal(t, valueobject.StatusCompleted, s)
	_, err = v.ParseStatus("blocked")
	assert.ErrorIs(t, err, entity.ErrInvalidStatus)

	d, err := v.ParseDate("")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = v.ParseDate("2026-04-05")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, 5, d.Day())
	assert.Equal(t, time.Local, d.Location())

	d, err = v.ParseDate("2026-04-05T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, d.Hour())

	_, err = v.ParseDate("tomorrow")
	assert.ErrorIs(t, err, entity.ErrInvalidDate)
}
