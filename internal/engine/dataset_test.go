package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/runoshun/kanban/internal/domain"
	"github.com/runoshun/kanban/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func populated(t *testing.T) *Engine {
	t.Helper()
	e := New()
	_, err := e.CreateTask(newTask("plan", 0, 30))
	require.NoError(t, err)
	ep := mustEpic(t, e, "release")
	start, dur := at(60, 15)
	s, err := e.CreateSubtask(&domain.Subtask{
		Task:   domain.Task{Name: "build", Description: "ci, then tag", StartTime: start, Duration: dur},
		EpicID: ep.ID,
	})
	require.NoError(t, err)
	s.Status = domain.StatusDone
	_, err = e.UpdateSubtask(s)
	require.NoError(t, err)
	mustSubtask(t, e, "notes", ep.ID)
	_, err = e.CreateTask(&domain.Task{Name: "idle"})
	require.NoError(t, err)
	return e
}

func TestEngine_ExportRestore_RoundTrip(t *testing.T) {
	// Setup
	src := populated(t)
	data := src.Export()

	// Execute
	restored := Restore(data)

	// Assert
	assert.Equal(t, data, restored.Export())
	assert.Equal(t, src.NextID(), restored.NextID())
	assert.Equal(t, idsOfItems(src.Prioritized()), idsOfItems(restored.Prioritized()))

	ep := restored.Epics()[0]
	assert.Equal(t, domain.StatusInProgress, ep.Status)
}

func TestRestore_RebuildsLinksAndAggregates(t *testing.T) {
	start, dur := at(0, 10)
	stale := domain.StatusDone
	data := &domain.Dataset{
		Epics: []*domain.Epic{
			// Persisted child list and derived status are not trusted
			{Task: domain.Task{ID: 2, Name: "epic", Status: stale}, SubtaskIDs: []int{40, 41}},
		},
		Subtasks: []*domain.Subtask{
			{Task: domain.Task{ID: 7, Name: "b", Status: domain.StatusNew}, EpicID: 2},
			{Task: domain.Task{ID: 5, Name: "a", Status: domain.StatusInProgress, StartTime: start, Duration: dur}, EpicID: 2},
			{Task: domain.Task{ID: 9, Name: "orphan", Status: domain.StatusDone}, EpicID: 30},
		},
	}

	e := Restore(data)

	ep, ok := e.epics.Get(2)
	require.True(t, ok)
	assert.Equal(t, []int{5, 7}, ep.SubtaskIDs)
	assert.Equal(t, domain.StatusInProgress, ep.Status)
	require.NotNil(t, ep.EndTime)
	assert.Equal(t, base.Add(10*time.Minute), *ep.EndTime)

	assert.False(t, e.subtasks.Exists(9), "orphan dropped")
	assert.Equal(t, 10, e.NextID(), "resumes after the highest ID seen")
	assert.Len(t, e.Prioritized(), 1)
}

func TestRestore_TimelineIsLive(t *testing.T) {
	data := &domain.Dataset{Tasks: []*domain.Task{newTask("t", 0, 30)}}
	data.Tasks[0].ID = 3
	data.Tasks[0].Status = domain.StatusNew

	e := Restore(data)
	_, err := e.CreateTask(newTask("clash", 10, 5))

	assert.True(t, errors.Is(err, domain.ErrOverlap))
	created, err := e.CreateTask(&domain.Task{Name: "next"})
	require.NoError(t, err)
	assert.Equal(t, 4, created.ID)
}

func TestRestore_DoesNotAliasInput(t *testing.T) {
	data := &domain.Dataset{Tasks: []*domain.Task{{ID: 1, Name: "t", Status: domain.StatusNew}}}

	e := Restore(data)
	data.Tasks[0].Name = "mutated"

	got, _ := e.Task(1)
	assert.Equal(t, "t", got.Name)
}

func TestRestore_Empty(t *testing.T) {
	for name, data := range map[string]*domain.Dataset{
		"nil":   nil,
		"empty": {},
	} {
		t.Run(name, func(t *testing.T) {
			e := Restore(data, WithHistoryLimit(3))

			assert.Empty(t, e.Items())
			assert.Equal(t, 1, e.NextID())
			assert.Equal(t, 3, e.HistoryLimit())
		})
	}
}

func TestRestore_SharedAllocatorAhead(t *testing.T) {
	alloc := store.NewAllocator()
	alloc.ResumeFrom(50)
	data := &domain.Dataset{Tasks: []*domain.Task{{ID: 4, Name: "t", Status: domain.StatusNew}}}

	e := Restore(data, WithAllocator(alloc))

	assert.Equal(t, 51, e.NextID())
}

func idsOfItems(items []domain.Item) []int {
	out := make([]int, 0, len(items))
	for _, item := range items {
		out = append(out, item.ItemID())
	}
	return out
}
