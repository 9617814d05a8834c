package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"elearn-backend/internal/domains/lesson/model"
	"elearn-backend/internal/domains/lesson/service"
	"elearn-backend/internal/ordering"
	"elearn-backend/internal/shared/response"
)

type LessonHandler struct {
	service service.LessonService
}

func NewLessonHandler(service service.LessonService) *LessonHandler {
	return &LessonHandler{service: service}
}

// Create handles POST /courses/:id/lessons
func (h *LessonHandler) Create(c *gin.Context) {
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req model.CreateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid lesson", err.Error())
		return
	}

	result, err := h.service.Create(c.Request.Context(), courseID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// List handles GET /courses/:id/lessons
func (h *LessonHandler) List(c *gin.Context) {
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}

	results, err := h.service.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, results, &response.Meta{Total: len(results)})
}

// GetByID handles GET /courses/:id/lessons/:lessonId
func (h *LessonHandler) GetByID(c *gin.Context) {
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	lessonID, ok := pathID(c, "lessonId")
	if !ok {
		return
	}

	result, err := h.service.GetByID(c.Request.Context(), courseID, lessonID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Update handles PUT /courses/:id/lessons/:lessonId
func (h *LessonHandler) Update(c *gin.Context) {
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	lessonID, ok := pathID(c, "lessonId")
	if !ok {
		return
	}

	var req model.UpdateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid lesson", err.Error())
		return
	}

	result, err := h.service.Update(c.Request.Context(), courseID, lessonID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Delete handles DELETE /courses/:id/lessons/:lessonId
func (h *LessonHandler) Delete(c *gin.Context) {
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	lessonID, ok := pathID(c, "lessonId")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), courseID, lessonID); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": lessonID})
}

// Reorder handles PUT /courses/:id/lessons/reorder
func (h *LessonHandler) Reorder(c *gin.Context) {
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req model.ReorderLessonsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid reorder request", err.Error())
		return
	}

	results, err := h.service.Reorder(c.Request.Context(), courseID, req.IDs)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, results)
}

// MoveUp handles POST /courses/:id/lessons/:lessonId/move-up
func (h *LessonHandler) MoveUp(c *gin.Context) {
	h.move(c, ordering.DirectionUp)
}

// MoveDown handles POST /courses/:id/lessons/:lessonId/move-down
func (h *LessonHandler) MoveDown(c *gin.Context) {
	h.move(c, ordering.DirectionDown)
}

func (h *LessonHandler) move(c *gin.Context, dir ordering.Direction) {
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	lessonID, ok := pathID(c, "lessonId")
	if !ok {
		return
	}

	results, err := h.service.Move(c.Request.Context(), courseID, lessonID, dir)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, results)
}

func (h *LessonHandler) writeError(c *gin.Context, err error) {
	var failed *ordering.ReconcileFailed
	switch {
	case errors.Is(err, model.ErrCourseNotFound):
		response.NotFound(c, "Course not found")
	case errors.Is(err, model.ErrLessonNotFound), errors.Is(err, ordering.ErrItemNotFound):
		response.NotFound(c, "Lesson not found")
	case errors.Is(err, model.ErrLessonCourseMismatch):
		response.NotFound(c, "Lesson not found in this course")
	case errors.As(err, &failed):
		response.InternalServerError(c, "Failed to reorder lessons")
	default:
		response.InternalServerError(c, "Internal server error")
	}
}

func pathID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		response.BadRequest(c, "Invalid id")
		return uuid.Nil, false
	}
	return id, true
}
