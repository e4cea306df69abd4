package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/runoshun/kanban/internal/domain"
	"github.com/runoshun/kanban/internal/usecase"
)

var errBadID = errors.New("invalid id")

// registerItemRoutes wires list, get, create, update and delete for one kind.
// POST without an id creates; POST with an id updates.
func (s *Server) registerItemRoutes(path string, kind domain.Kind) {
	s.router.GET(path, s.handleList(kind))
	s.router.GET(path+"/:id", s.handleGet(kind))
	s.router.POST(path, s.handleCreate(kind))
	s.router.POST(path+"/:id", s.handleUpdate(kind))
	s.router.DELETE(path+"/:id", s.handleDelete(kind))
}

func (s *Server) handleList(kind domain.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := s.listItems.Execute(c.Request.Context(), usecase.ListItemsInput{Kind: kind})
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, newItemResponses(out.Items))
	}
}

func (s *Server) handleGet(kind domain.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			s.fail(c, err)
			return
		}
		out, err := s.showItem.Execute(c.Request.Context(), usecase.ShowItemInput{ID: id, Kind: kind})
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, newItemResponse(out.Item))
	}
}

func (s *Server) handleCreate(kind domain.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := bindItem(c)
		if err != nil {
			s.fail(c, err)
			return
		}
		in := usecase.NewItemInput{
			Kind:        kind,
			Name:        req.Name,
			Description: req.Description,
		}
		in.StartTime, in.Duration = req.startAndDuration()
		if kind == domain.KindSubtask {
			if req.EpicID == nil {
				s.fail(c, fmt.Errorf("%w: epic is required", domain.ErrInvalidInput))
				return
			}
			in.EpicID = *req.EpicID
		}

		out, err := s.newItem.Execute(c.Request.Context(), in)
		if err != nil {
			// A create that cannot attach to its epic is a bad request, not a miss.
			if errors.Is(err, domain.ErrEpicNotFound) {
				err = fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
			}
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, newItemResponse(out.Item))
	}
}

func (s *Server) handleUpdate(kind domain.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			s.fail(c, err)
			return
		}
		req, err := bindItem(c)
		if err != nil {
			s.fail(c, err)
			return
		}
		if req.ID != 0 && req.ID != id {
			s.fail(c, fmt.Errorf("%w: body id %d does not match path id %d", domain.ErrInvalidInput, req.ID, id))
			return
		}

		// The body replaces the item, so an absent window clears it.
		in := usecase.EditItemInput{
			ID:            id,
			Kind:          kind,
			Name:          &req.Name,
			Description:   &req.Description,
			Status:        req.status(),
			EpicID:        req.EpicID,
			SubtaskIDs:    req.SubtaskIDs,
			ClearSchedule: true,
		}
		in.StartTime, in.Duration = req.startAndDuration()

		out, err := s.editItem.Execute(c.Request.Context(), in)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, newItemResponse(out.Item))
	}
}

func (s *Server) handleDelete(kind domain.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			s.fail(c, err)
			return
		}
		out, err := s.removeItem.Execute(c.Request.Context(), usecase.RemoveItemInput{ID: id, Kind: kind})
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"removed": out.Removed})
	}
}

func (s *Server) handleEpicSubtasks(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	out, err := s.listItems.Execute(c.Request.Context(), usecase.ListItemsInput{EpicID: id})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newItemResponses(out.Items))
}

func (s *Server) handleHistory(c *gin.Context) {
	out, err := s.history.Execute(c.Request.Context(), usecase.ShowHistoryInput{})
	if err != nil {
		s.fail(c, err)
		return
	}
	resp := make([]itemResponse, 0, len(out.Entries))
	for _, snap := range out.Entries {
		resp = append(resp, newSnapshotResponse(snap))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handlePrioritized(c *gin.Context) {
	out, err := s.prioritized.Execute(c.Request.Context(), usecase.PrioritizedInput{})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newItemResponses(out.Items))
}

// fail writes the error response for err and counts overlap rejections.
func (s *Server) fail(c *gin.Context, err error) {
	code := statusFor(err)
	var overlap *domain.OverlapError
	if errors.As(err, &overlap) {
		s.metrics.overlaps.WithLabelValues(overlap.Kind.Display()).Inc()
	}
	if code == http.StatusInternalServerError {
		s.logger.Error(0, "server", fmt.Sprintf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err))
	}
	c.AbortWithStatusJSON(code, errorResponse{Error: err.Error()})
}

// statusFor maps an error to its HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrOverlap):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, errBadID):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrEpicNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func pathID(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", errBadID, c.Param("id"))
	}
	return id, nil
}

// bindItem decodes and validates the request body.
func bindItem(c *gin.Context) (*itemRequest, error) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	if err := validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return &req, nil
}
