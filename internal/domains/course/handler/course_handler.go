package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"elearn-backend/internal/domains/course/model"
	"elearn-backend/internal/domains/course/service"
	"elearn-backend/internal/ordering"
	"elearn-backend/internal/shared/response"
)

type CourseHandler struct {
	service service.CourseService
}

func NewCourseHandler(service service.CourseService) *CourseHandler {
	return &CourseHandler{service: service}
}

// Create handles POST /courses
func (h *CourseHandler) Create(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	var req model.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid course", err.Error())
		return
	}

	result, err := h.service.Create(c.Request.Context(), ownerID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// List handles GET /courses (the caller's own catalog, in order)
func (h *CourseHandler) List(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	results, err := h.service.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, results, &response.Meta{Total: len(results)})
}

// GetByID handles GET /courses/:id
func (h *CourseHandler) GetByID(c *gin.Context) {
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.service.GetByID(c.Request.Context(), courseID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Update handles PUT /courses/:id
func (h *CourseHandler) Update(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid course", err.Error())
		return
	}

	result, err := h.service.Update(c.Request.Context(), ownerID, courseID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Delete handles DELETE /courses/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), ownerID, courseID); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": courseID})
}

// Reorder handles PUT /courses/reorder
func (h *CourseHandler) Reorder(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	var req model.ReorderCoursesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid reorder request", err.Error())
		return
	}

	results, err := h.service.Reorder(c.Request.Context(), ownerID, req.IDs)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, results)
}

// MoveUp handles POST /courses/:id/move-up
func (h *CourseHandler) MoveUp(c *gin.Context) {
	h.move(c, ordering.DirectionUp)
}

// MoveDown handles POST /courses/:id/move-down
func (h *CourseHandler) MoveDown(c *gin.Context) {
	h.move(c, ordering.DirectionDown)
}

func (h *CourseHandler) move(c *gin.Context, dir ordering.Direction) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}

	results, err := h.service.Move(c.Request.Context(), ownerID, courseID, dir)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, results)
}

func (h *CourseHandler) writeError(c *gin.Context, err error) {
	// A failed reconciliation must never report success; surface it
	// as a server error with the underlying cause logged upstream.
	var failed *ordering.ReconcileFailed
	if errors.As(err, &failed) {
		response.InternalServerError(c, "Failed to reorder courses")
		return
	}

	statusCode, message, code := model.GetErrorResponse(err)
	response.ErrorResponse(c, statusCode, code, message)
}

func callerID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("userID")
	if !exists {
		response.Unauthorized(c, "missing user identity")
		return uuid.Nil, false
	}
	userID, ok := v.(uuid.UUID)
	if !ok {
		response.Unauthorized(c, "invalid user identity")
		return uuid.Nil, false
	}
	return userID, true
}

func pathID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		response.BadRequest(c, "Invalid id")
		return uuid.Nil, false
	}
	return id, true
}
