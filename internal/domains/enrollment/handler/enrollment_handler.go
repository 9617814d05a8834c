package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"elearn-backend/internal/domains/enrollment"
	"elearn-backend/internal/shared/response"
)

type EnrollmentHandler struct {
	service enrollment.EnrollmentService
}

func NewEnrollmentHandler(service enrollment.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{service: service}
}

// Enroll handles POST /courses/:id/enroll
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid course id")
		return
	}

	result, err := h.service.Enroll(c.Request.Context(), userID, courseID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// ListMine handles GET /enrollments
func (h *EnrollmentHandler) ListMine(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	results, err := h.service.ListMine(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, results, &response.Meta{Total: len(results)})
}

func (h *EnrollmentHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, enrollment.ErrCourseNotFound):
		response.NotFound(c, "Course not found")
	case errors.Is(err, enrollment.ErrCourseNotPublished):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, "COURSE_NOT_PUBLISHED", "Course is not open for enrollment")
	case errors.Is(err, enrollment.ErrAlreadyEnrolled):
		response.Conflict(c, "You are already enrolled in this course")
	default:
		response.InternalServerError(c, "Internal server error")
	}
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
