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

var base = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func at(offset, minutes int) (*time.Time, *time.Duration) {
	start := base.Add(time.Duration(offset) * time.Minute)
	dur := time.Duration(minutes) * time.Minute
	return &start, &dur
}

func newTask(name string, offset, minutes int) *domain.Task {
	start, dur := at(offset, minutes)
	return &domain.Task{Name: name, StartTime: start, Duration: dur}
}

func mustEpic(t *testing.T, e *Engine, name string) *domain.Epic {
	t.Helper()
	ep, err := e.CreateEpic(&domain.Epic{Task: domain.Task{Name: name}})
	require.NoError(t, err)
	require.NotNil(t, ep)
	return ep
}

func mustSubtask(t *testing.T, e *Engine, name string, epicID int) *domain.Subtask {
	t.Helper()
	s, err := e.CreateSubtask(&domain.Subtask{Task: domain.Task{Name: name}, EpicID: epicID})
	require.NoError(t, err)
	require.NotNil(t, s)
	return s
}

func epicStatus(t *testing.T, e *Engine, id int) domain.Status {
	t.Helper()
	ep, ok := e.epics.Get(id)
	require.True(t, ok)
	return ep.Status
}

func TestEngine_EpicLifecycle(t *testing.T) {
	// Setup
	e := New()
	e1 := mustEpic(t, e, "e1")
	s1 := mustSubtask(t, e, "s1", e1.ID)
	s2 := mustSubtask(t, e, "s2", e1.ID)

	// Both children NEW
	assert.Equal(t, domain.StatusNew, epicStatus(t, e, e1.ID))

	// One child done
	s1.Status = domain.StatusDone
	_, err := e.UpdateSubtask(s1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, epicStatus(t, e, e1.ID))

	// Both children done
	s2.Status = domain.StatusDone
	_, err = e.UpdateSubtask(s2)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, epicStatus(t, e, e1.ID))

	// Removing a child recomputes over the rest
	require.True(t, e.RemoveSubtask(s1.ID))
	got, ok := e.epics.Get(e1.ID)
	require.True(t, ok)
	assert.Equal(t, domain.StatusDone, got.Status)
	assert.Equal(t, []int{s2.ID}, got.SubtaskIDs)
}

func TestEngine_TimelineBoundary(t *testing.T) {
	// Setup
	e := New()

	// Execute
	t1, err := e.CreateTask(newTask("t1", 0, 5))
	require.NoError(t, err)
	t2, err := e.CreateTask(newTask("t2", 5, 5))
	require.NoError(t, err, "touching windows do not overlap")
	t3, err := e.CreateTask(newTask("t3", 4, 1))

	// Assert
	require.NotNil(t, t1)
	require.NotNil(t, t2)
	assert.Nil(t, t3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrOverlap))

	var overlap *domain.OverlapError
	require.True(t, errors.As(err, &overlap))
	assert.Equal(t, "t3", overlap.Name)
	assert.Equal(t, domain.KindTask, overlap.Kind)
	assert.Equal(t, t1.ID, overlap.ConflictID)
	assert.Contains(t, err.Error(), `"t3"`)

	// The rejected task was never stored
	assert.Len(t, e.Tasks(), 2)
	assert.Equal(t, 3, e.NextID(), "no ID consumed by the rejected task")
	assert.Len(t, e.Prioritized(), 2)
}

func TestEngine_EpicStatusLaw(t *testing.T) {
	tests := []struct {
		name     string
		statuses []domain.Status
		want     domain.Status
	}{
		{"no subtasks", nil, domain.StatusNew},
		{"all new", []domain.Status{domain.StatusNew, domain.StatusNew}, domain.StatusNew},
		{"all done", []domain.Status{domain.StatusDone, domain.StatusDone}, domain.StatusDone},
		{"single done", []domain.Status{domain.StatusDone}, domain.StatusDone},
		{"new and done", []domain.Status{domain.StatusNew, domain.StatusDone}, domain.StatusInProgress},
		{"one in progress", []domain.Status{domain.StatusInProgress}, domain.StatusInProgress},
		{"in progress and done", []domain.Status{domain.StatusInProgress, domain.StatusDone}, domain.StatusInProgress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New()
			ep := mustEpic(t, e, "epic")
			for i, st := range tt.statuses {
				s := mustSubtask(t, e, "s", ep.ID)
				s.Status = st
				_, err := e.UpdateSubtask(s)
				require.NoError(t, err, "subtask %d", i)
			}

			assert.Equal(t, tt.want, epicStatus(t, e, ep.ID))
		})
	}
}

func TestEngine_CreateEpic_IgnoresDerivedInput(t *testing.T) {
	e := New()
	start, dur := at(0, 30)

	ep, err := e.CreateEpic(&domain.Epic{
		Task:       domain.Task{Name: "epic", Status: domain.StatusDone, StartTime: start, Duration: dur},
		SubtaskIDs: []int{7, 8},
		EndTime:    start,
	})

	require.NoError(t, err)
	require.NotNil(t, ep)
	got, _ := e.Epic(ep.ID)
	assert.Equal(t, domain.StatusNew, got.Status)
	assert.Empty(t, got.SubtaskIDs)
	assert.Nil(t, got.StartTime)
	assert.Nil(t, got.Duration)
	assert.Nil(t, got.EndTime)
}

func TestEngine_Create_NoOps(t *testing.T) {
	tests := []struct {
		create func(e *Engine) (any, error)
		name   string
	}{
		{func(e *Engine) (any, error) { return e.CreateTask(nil) }, "nil task"},
		{func(e *Engine) (any, error) { return e.CreateTask(&domain.Task{}) }, "empty name"},
		{func(e *Engine) (any, error) {
			d := -time.Minute
			return e.CreateTask(&domain.Task{Name: "t", Duration: &d})
		}, "negative duration"},
		{func(e *Engine) (any, error) {
			start, d := base, 90*time.Second
			return e.CreateTask(&domain.Task{Name: "t", StartTime: &start, Duration: &d})
		}, "duration not in whole minutes"},
		{func(e *Engine) (any, error) {
			return e.CreateTask(&domain.Task{Name: "t", Status: "BLOCKED"})
		}, "invalid status"},
		{func(e *Engine) (any, error) { return e.CreateEpic(nil) }, "nil epic"},
		{func(e *Engine) (any, error) { return e.CreateSubtask(nil) }, "nil subtask"},
		{func(e *Engine) (any, error) {
			return e.CreateSubtask(&domain.Subtask{Task: domain.Task{Name: "s"}, EpicID: 42})
		}, "dangling epic"},
		{func(e *Engine) (any, error) {
			return e.CreateSubtask(&domain.Subtask{Task: domain.Task{Name: "s"}})
		}, "missing epic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New()

			got, err := tt.create(e)

			require.NoError(t, err)
			assert.Nil(t, got)
			assert.Empty(t, e.Items())
			assert.Equal(t, 1, e.NextID())
		})
	}
}

func TestEngine_CreateTask_ReturnsCallerItem(t *testing.T) {
	e := New()
	task := &domain.Task{Name: "t", Status: domain.StatusDone}

	got, err := e.CreateTask(task)

	require.NoError(t, err)
	assert.Same(t, task, got)
	assert.Equal(t, 1, task.ID)
	assert.Equal(t, domain.StatusNew, task.Status)
}

func TestEngine_SharedIDSpace(t *testing.T) {
	e := New()
	task, _ := e.CreateTask(&domain.Task{Name: "t"})
	ep := mustEpic(t, e, "e")
	s := mustSubtask(t, e, "s", ep.ID)

	assert.Equal(t, []int{1, 2, 3}, []int{task.ID, ep.ID, s.ID})
}

func TestEngine_WithAllocator(t *testing.T) {
	alloc := store.NewAllocator()
	alloc.ResumeFrom(100)
	e := New(WithAllocator(alloc))

	task, _ := e.CreateTask(&domain.Task{Name: "t"})

	assert.Equal(t, 101, task.ID)
	assert.Equal(t, 102, alloc.Peek())
}

func TestEngine_UpdateTask(t *testing.T) {
	e := New()
	t1, _ := e.CreateTask(newTask("t1", 0, 5))
	t2, _ := e.CreateTask(newTask("t2", 10, 5))

	t.Run("moving within its own window is allowed", func(t *testing.T) {
		upd := newTask("t1 shifted", 1, 5)
		upd.ID = t1.ID
		upd.Status = domain.StatusInProgress

		got, err := e.UpdateTask(upd)

		require.NoError(t, err)
		require.NotNil(t, got)
		stored, _ := e.tasks.Get(t1.ID)
		assert.Equal(t, "t1 shifted", stored.Name)
		assert.Equal(t, domain.StatusInProgress, stored.Status)
	})

	t.Run("moving onto another task is rejected", func(t *testing.T) {
		upd := newTask("t2", 3, 5)
		upd.ID = t2.ID
		upd.Status = domain.StatusNew

		got, err := e.UpdateTask(upd)

		assert.Nil(t, got)
		var overlap *domain.OverlapError
		require.True(t, errors.As(err, &overlap))
		assert.Equal(t, t2.ID, overlap.ID)
		assert.Equal(t, t1.ID, overlap.ConflictID)

		stored, _ := e.tasks.Get(t2.ID)
		assert.Equal(t, base.Add(10*time.Minute), *stored.StartTime, "stored task unchanged")
	})

	t.Run("unscheduling removes it from the timeline", func(t *testing.T) {
		upd := &domain.Task{ID: t2.ID, Name: "t2", Status: domain.StatusNew}

		_, err := e.UpdateTask(upd)

		require.NoError(t, err)
		require.Len(t, e.Prioritized(), 1)
		assert.Equal(t, t1.ID, e.Prioritized()[0].ItemID())
	})

	t.Run("no-ops", func(t *testing.T) {
		for name, upd := range map[string]*domain.Task{
			"nil":            nil,
			"unknown id":     {ID: 99, Name: "x", Status: domain.StatusNew},
			"invalid status": {ID: t1.ID, Name: "x", Status: "BLOCKED"},
			"missing status": {ID: t1.ID, Name: "x"},
			"empty name":     {ID: t1.ID, Status: domain.StatusNew},
		} {
			got, err := e.UpdateTask(upd)
			assert.NoError(t, err, name)
			assert.Nil(t, got, name)
		}
		stored, _ := e.tasks.Get(t1.ID)
		assert.Equal(t, "t1 shifted", stored.Name)
	})
}

func TestEngine_UpdateEpic(t *testing.T) {
	e := New()
	e1 := mustEpic(t, e, "e1")
	e2 := mustEpic(t, e, "e2")
	s1 := mustSubtask(t, e, "s1", e1.ID)
	s2 := mustSubtask(t, e, "s2", e2.ID)
	s1.Status = domain.StatusDone
	_, _ = e.UpdateSubtask(s1)

	t.Run("renames and keeps derived fields", func(t *testing.T) {
		got, err := e.UpdateEpic(&domain.Epic{
			Task:       domain.Task{ID: e1.ID, Name: "renamed", Description: "d", Status: domain.StatusNew},
			SubtaskIDs: []int{s1.ID},
		})

		require.NoError(t, err)
		require.NotNil(t, got)
		stored, _ := e.epics.Get(e1.ID)
		assert.Equal(t, "renamed", stored.Name)
		assert.Equal(t, "d", stored.Description)
		assert.Equal(t, domain.StatusDone, stored.Status)
		assert.Equal(t, []int{s1.ID}, stored.SubtaskIDs)
	})

	t.Run("foreign subtask id rejects the whole update", func(t *testing.T) {
		got, err := e.UpdateEpic(&domain.Epic{
			Task:       domain.Task{ID: e1.ID, Name: "hijack"},
			SubtaskIDs: []int{s1.ID, s2.ID},
		})

		require.NoError(t, err)
		assert.Nil(t, got)
		stored, _ := e.epics.Get(e1.ID)
		assert.Equal(t, "renamed", stored.Name)
		assert.Equal(t, []int{s1.ID}, stored.SubtaskIDs)

		other, _ := e.subtasks.Get(s2.ID)
		assert.Equal(t, e2.ID, other.EpicID)
	})

	t.Run("unknown epic", func(t *testing.T) {
		got, err := e.UpdateEpic(&domain.Epic{Task: domain.Task{ID: 99, Name: "x"}})
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestEngine_UpdateSubtask_MovesBetweenEpics(t *testing.T) {
	// Setup
	e := New()
	e1 := mustEpic(t, e, "e1")
	e2 := mustEpic(t, e, "e2")
	start, dur := at(0, 20)
	s, err := e.CreateSubtask(&domain.Subtask{
		Task:   domain.Task{Name: "s", StartTime: start, Duration: dur},
		EpicID: e1.ID,
	})
	require.NoError(t, err)
	keep := mustSubtask(t, e, "keep", e1.ID)

	// Execute
	s.EpicID = e2.ID
	s.Status = domain.StatusDone
	got, err := e.UpdateSubtask(s)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, got)

	old, _ := e.epics.Get(e1.ID)
	assert.Equal(t, []int{keep.ID}, old.SubtaskIDs)
	assert.Equal(t, domain.StatusNew, old.Status)
	assert.Nil(t, old.StartTime)

	moved, _ := e.epics.Get(e2.ID)
	assert.Equal(t, []int{s.ID}, moved.SubtaskIDs)
	assert.Equal(t, domain.StatusDone, moved.Status)
	require.NotNil(t, moved.StartTime)
	assert.Equal(t, base, *moved.StartTime)
	require.NotNil(t, moved.EndTime)
	assert.Equal(t, base.Add(20*time.Minute), *moved.EndTime)

	assert.Equal(t, []int{keep.ID}, idsOf(e.SubtasksOf(e1.ID)))
	assert.Equal(t, []int{s.ID}, idsOf(e.SubtasksOf(e2.ID)))
}

func TestEngine_UpdateSubtask_DanglingEpic(t *testing.T) {
	e := New()
	ep := mustEpic(t, e, "e")
	s := mustSubtask(t, e, "s", ep.ID)

	s.EpicID = 99
	got, err := e.UpdateSubtask(s)

	require.NoError(t, err)
	assert.Nil(t, got)
	stored, _ := e.subtasks.Get(s.ID)
	assert.Equal(t, ep.ID, stored.EpicID)
}

func TestEngine_UpdateSubtask_Idempotent(t *testing.T) {
	e := New()
	ep := mustEpic(t, e, "e")
	start, dur := at(0, 15)
	s, _ := e.CreateSubtask(&domain.Subtask{Task: domain.Task{Name: "s", StartTime: start, Duration: dur}, EpicID: ep.ID})
	s.Status = domain.StatusInProgress
	_, err := e.UpdateSubtask(s)
	require.NoError(t, err)
	before, _ := e.epics.Get(ep.ID)

	current, _ := e.subtasks.Get(s.ID)
	_, err = e.UpdateSubtask(current)
	require.NoError(t, err)
	_, err = e.UpdateSubtask(current)
	require.NoError(t, err)

	after, _ := e.epics.Get(ep.ID)
	assert.Equal(t, before, after)
}

func TestEngine_EpicAggregateTimes(t *testing.T) {
	e := New()
	ep := mustEpic(t, e, "e")
	for _, w := range []struct{ offset, minutes int }{{30, 10}, {0, 5}, {60, 15}} {
		start, dur := at(w.offset, w.minutes)
		_, err := e.CreateSubtask(&domain.Subtask{Task: domain.Task{Name: "s", StartTime: start, Duration: dur}, EpicID: ep.ID})
		require.NoError(t, err)
	}
	// Duration only: counted in the sum, not in the window
	d := 7 * time.Minute
	_, err := e.CreateSubtask(&domain.Subtask{Task: domain.Task{Name: "d", Duration: &d}, EpicID: ep.ID})
	require.NoError(t, err)

	got, _ := e.epics.Get(ep.ID)
	require.NotNil(t, got.StartTime)
	require.NotNil(t, got.EndTime)
	require.NotNil(t, got.Duration)
	assert.Equal(t, base, *got.StartTime)
	assert.Equal(t, base.Add(75*time.Minute), *got.EndTime)
	assert.Equal(t, 37*time.Minute, *got.Duration)
}

func TestEngine_SubtaskOverlapsTask(t *testing.T) {
	e := New()
	task, _ := e.CreateTask(newTask("t", 0, 30))
	ep := mustEpic(t, e, "e")
	start, dur := at(10, 5)

	got, err := e.CreateSubtask(&domain.Subtask{Task: domain.Task{Name: "s", StartTime: start, Duration: dur}, EpicID: ep.ID})

	assert.Nil(t, got)
	var overlap *domain.OverlapError
	require.True(t, errors.As(err, &overlap))
	assert.Equal(t, domain.KindSubtask, overlap.Kind)
	assert.Equal(t, task.ID, overlap.ConflictID)

	stored, _ := e.epics.Get(ep.ID)
	assert.Empty(t, stored.SubtaskIDs)
}

func TestEngine_EpicsNeverOnTimeline(t *testing.T) {
	e := New()
	ep := mustEpic(t, e, "e")
	start, dur := at(0, 60)
	_, err := e.CreateSubtask(&domain.Subtask{Task: domain.Task{Name: "s", StartTime: start, Duration: dur}, EpicID: ep.ID})
	require.NoError(t, err)

	for _, item := range e.Prioritized() {
		assert.NotEqual(t, domain.KindEpic, item.ItemKind())
	}
	assert.Len(t, e.Prioritized(), 1)
}

func TestEngine_RemoveEpic_Cascades(t *testing.T) {
	// Setup
	e := New(WithHistoryLimit(10))
	ep := mustEpic(t, e, "e")
	start, dur := at(0, 5)
	s1, _ := e.CreateSubtask(&domain.Subtask{Task: domain.Task{Name: "s1", StartTime: start, Duration: dur}, EpicID: ep.ID})
	s2 := mustSubtask(t, e, "s2", ep.ID)
	other, _ := e.CreateTask(&domain.Task{Name: "other"})

	e.Subtask(s1.ID)
	e.Subtask(s2.ID)
	e.Epic(ep.ID)
	e.Task(other.ID)
	require.Len(t, e.History(), 4)

	// Execute
	require.True(t, e.RemoveEpic(ep.ID))

	// Assert
	for _, id := range []int{s1.ID, s2.ID} {
		_, ok := e.Subtask(id)
		assert.False(t, ok)
	}
	_, ok := e.Epic(ep.ID)
	assert.False(t, ok)
	assert.Empty(t, e.Prioritized())

	history := e.History()
	require.Len(t, history, 1)
	assert.Equal(t, other.ID, history[0].ID())

	assert.False(t, e.RemoveEpic(ep.ID), "second removal is a no-op")
}

func TestEngine_Remove_Unknown(t *testing.T) {
	e := New()
	assert.False(t, e.RemoveTask(1))
	assert.False(t, e.RemoveEpic(1))
	assert.False(t, e.RemoveSubtask(1))
	assert.False(t, e.RemoveTask(-3))
}

func TestEngine_RemoveTask_FreesWindow(t *testing.T) {
	e := New()
	t1, _ := e.CreateTask(newTask("t1", 0, 10))

	require.True(t, e.RemoveTask(t1.ID))
	_, err := e.CreateTask(newTask("t2", 0, 10))

	assert.NoError(t, err)
}

func TestEngine_History(t *testing.T) {
	e := New(WithHistoryLimit(2))
	x, _ := e.CreateTask(&domain.Task{Name: "x"})
	y, _ := e.CreateTask(&domain.Task{Name: "y"})
	z, _ := e.CreateTask(&domain.Task{Name: "z"})

	// Creation and misses do not record views
	_, ok := e.Task(99)
	assert.False(t, ok)
	assert.Empty(t, e.History())

	e.Task(x.ID)
	e.Task(y.ID)
	e.Task(z.ID)

	assert.Equal(t, []int{z.ID, y.ID}, snapshotIDs(e.History()))
	assert.Equal(t, 2, e.HistoryLimit())

	// Wrong kind is a miss
	_, ok = e.Epic(x.ID)
	assert.False(t, ok)
	assert.Equal(t, []int{z.ID, y.ID}, snapshotIDs(e.History()))
}

func TestEngine_Get_ReturnsCopy(t *testing.T) {
	e := New()
	created, _ := e.CreateTask(&domain.Task{Name: "t"})

	got, ok := e.Task(created.ID)
	require.True(t, ok)
	got.Name = "mutated"

	again, _ := e.Task(created.ID)
	assert.Equal(t, "t", again.Name)
}

func TestEngine_Prioritized_Order(t *testing.T) {
	e := New()
	ep := mustEpic(t, e, "e")
	late, _ := e.CreateTask(newTask("late", 60, 5))
	start, dur := at(0, 5)
	early, _ := e.CreateSubtask(&domain.Subtask{Task: domain.Task{Name: "early", StartTime: start, Duration: dur}, EpicID: ep.ID})
	_, _ = e.CreateTask(&domain.Task{Name: "unscheduled"})
	mid, _ := e.CreateTask(newTask("mid", 30, 5))

	got := e.Prioritized()

	require.Len(t, got, 3)
	assert.Equal(t, []int{early.ID, mid.ID, late.ID}, []int{got[0].ItemID(), got[1].ItemID(), got[2].ItemID()})
	assert.Equal(t, domain.KindSubtask, got[0].ItemKind())
}

func TestEngine_Lists(t *testing.T) {
	e := New()
	ep := mustEpic(t, e, "e")
	task, _ := e.CreateTask(&domain.Task{Name: "t"})
	s := mustSubtask(t, e, "s", ep.ID)

	assert.Equal(t, []int{task.ID}, idsOf(e.Tasks()))
	assert.Equal(t, []int{ep.ID}, idsOf(e.Epics()))
	assert.Equal(t, []int{s.ID}, idsOf(e.Subtasks()))
	assert.Empty(t, e.SubtasksOf(99))
	assert.NotNil(t, e.SubtasksOf(99))

	items := e.Items()
	require.Len(t, items, 3)
	assert.Equal(t, domain.KindEpic, items[0].ItemKind())
	assert.Equal(t, domain.KindTask, items[1].ItemKind())
	assert.Equal(t, domain.KindSubtask, items[2].ItemKind())
}

func idsOf[T interface{ ItemID() int }](items []T) []int {
	out := make([]int, 0, len(items))
	for _, item := range items {
		out = append(out, item.ItemID())
	}
	return out
}

func snapshotIDs(snaps []domain.Snapshot) []int {
	out := make([]int, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, s.ID())
	}
	return out
}

func TestEngine_Find(t *testing.T) {
	e := New()
	ep := mustEpic(t, e, "e")
	s := mustSubtask(t, e, "s", ep.ID)

	item, ok := e.Find(s.ID)
	require.True(t, ok)
	assert.Equal(t, domain.KindSubtask, item.ItemKind())

	item, ok = e.Find(ep.ID)
	require.True(t, ok)
	assert.Equal(t, domain.KindEpic, item.ItemKind())

	_, ok = e.Find(99)
	assert.False(t, ok)
	assert.Empty(t, e.History(), "Find does not record views")
}
