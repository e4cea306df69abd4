package server

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/runoshun/kanban/internal/domain"
)

// itemRequest is the JSON body for creating or updating any kind of item.
// Durations are whole minutes. Fields a kind does not use are ignored.
// Fields are ordered to minimize memory padding.
type itemRequest struct {
	StartTime   *time.Time `json:"startTime"`
	Duration    *int64     `json:"duration" validate:"omitempty,gte=0"`
	Status      *string    `json:"status" validate:"omitempty,status"`
	EpicID      *int       `json:"epic" validate:"omitempty,gt=0"`
	Name        string     `json:"name" validate:"required,max=200"`
	Description string     `json:"description" validate:"max=4000"`
	SubtaskIDs  []int      `json:"subtaskIds" validate:"omitempty,dive,gt=0"`
	ID          int        `json:"id" validate:"gte=0"`
}

// itemResponse is the JSON form of a task, epic or subtask.
// Fields are ordered to minimize memory padding.
type itemResponse struct {
	StartTime   *time.Time  `json:"startTime,omitempty"`
	EndTime     *time.Time  `json:"endTime,omitempty"`
	Duration    *int64      `json:"duration,omitempty"`
	Type        domain.Kind `json:"type"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Status      string      `json:"status"`
	SubtaskIDs  []int       `json:"subtaskIds,omitempty"`
	ID          int         `json:"id"`
	EpicID      int         `json:"epic,omitempty"`
}

// errorResponse is the body of every non-2xx reply.
type errorResponse struct {
	Error string `json:"error"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("status", func(fl validator.FieldLevel) bool {
		return domain.Status(fl.Field().String()).IsValid()
	})
	return v
}

func (r *itemRequest) startAndDuration() (*time.Time, *time.Duration) {
	var d *time.Duration
	if r.Duration != nil {
		v := time.Duration(*r.Duration) * time.Minute
		d = &v
	}
	return r.StartTime, d
}

func (r *itemRequest) status() *domain.Status {
	if r.Status == nil {
		return nil
	}
	s := domain.Status(*r.Status)
	return &s
}

func newItemResponse(item domain.Item) itemResponse {
	var t *domain.Task
	resp := itemResponse{Type: item.ItemKind()}
	switch v := item.(type) {
	case *domain.Task:
		t = v
	case *domain.Epic:
		t = &v.Task
		resp.SubtaskIDs = v.SubtaskIDs
	case *domain.Subtask:
		t = &v.Task
		resp.EpicID = v.EpicID
	}
	resp.ID = t.ID
	resp.Name = t.Name
	resp.Description = t.Description
	resp.Status = string(t.Status)
	resp.StartTime = t.StartTime
	if t.Duration != nil {
		m := int64(*t.Duration / time.Minute)
		resp.Duration = &m
	}
	if end, ok := item.End(); ok {
		resp.EndTime = &end
	}
	return resp
}

func newSnapshotResponse(s domain.Snapshot) itemResponse {
	resp := itemResponse{
		Type:        s.Kind(),
		ID:          s.ID(),
		Name:        s.Name(),
		Description: s.Description(),
		Status:      string(s.Status()),
		SubtaskIDs:  s.SubtaskIDs(),
		EpicID:      s.EpicID(),
	}
	if start, ok := s.StartTime(); ok {
		resp.StartTime = &start
	}
	if end, ok := s.EndTime(); ok {
		resp.EndTime = &end
	}
	if d, ok := s.Duration(); ok {
		m := int64(d / time.Minute)
		resp.Duration = &m
	}
	return resp
}

func newItemResponses(items []domain.Item) []itemResponse {
	out := make([]itemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, newItemResponse(item))
	}
	return out
}
