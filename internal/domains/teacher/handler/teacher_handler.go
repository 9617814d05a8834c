package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"elearn-backend/internal/domains/teacher"
	"elearn-backend/internal/ordering"
	"elearn-backend/internal/shared/response"
)

type TeacherHandler struct {
	service teacher.TeacherService
}

func NewTeacherHandler(service teacher.TeacherService) *TeacherHandler {
	return &TeacherHandler{service: service}
}

// List handles GET /teachers. Public: the directory is shown on the
// storefront in its curated order.
func (h *TeacherHandler) List(c *gin.Context) {
	results, err := h.service.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, results, &response.Meta{Total: len(results)})
}

// GetByID handles GET /teachers/:id
func (h *TeacherHandler) GetByID(c *gin.Context) {
	teacherID, ok := pathID(c)
	if !ok {
		return
	}

	result, err := h.service.GetByID(c.Request.Context(), teacherID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Create handles POST /teachers (admin)
func (h *TeacherHandler) Create(c *gin.Context) {
	var req teacher.CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid teacher", err.Error())
		return
	}

	result, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// Update handles PUT /teachers/:id (admin)
func (h *TeacherHandler) Update(c *gin.Context) {
	teacherID, ok := pathID(c)
	if !ok {
		return
	}

	var req teacher.UpdateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid teacher", err.Error())
		return
	}

	result, err := h.service.Update(c.Request.Context(), teacherID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Delete handles DELETE /teachers/:id (admin)
func (h *TeacherHandler) Delete(c *gin.Context) {
	teacherID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), teacherID); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": teacherID})
}

// Reorder handles PUT /teachers/reorder (admin)
func (h *TeacherHandler) Reorder(c *gin.Context) {
	var req teacher.ReorderTeachersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid reorder request", err.Error())
		return
	}

	results, err := h.service.Reorder(c.Request.Context(), req.IDs)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, results)
}

// MoveUp handles POST /teachers/:id/move-up (admin)
func (h *TeacherHandler) MoveUp(c *gin.Context) {
	h.move(c, ordering.DirectionUp)
}

// MoveDown handles POST /teachers/:id/move-down (admin)
func (h *TeacherHandler) MoveDown(c *gin.Context) {
	h.move(c, ordering.DirectionDown)
}

func (h *TeacherHandler) move(c *gin.Context, dir ordering.Direction) {
	teacherID, ok := pathID(c)
	if !ok {
		return
	}

	results, err := h.service.Move(c.Request.Context(), teacherID, dir)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, results)
}

func (h *TeacherHandler) writeError(c *gin.Context, err error) {
	var failed *ordering.ReconcileFailed
	switch {
	case errors.Is(err, teacher.ErrTeacherNotFound), errors.Is(err, ordering.ErrItemNotFound):
		response.NotFound(c, "Teacher not found")
	case errors.As(err, &failed):
		response.InternalServerError(c, "Failed to reorder teachers")
	default:
		response.InternalServerError(c, "Internal server error")
	}
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid id")
		return uuid.Nil, false
	}
	return id, true
}
