package model

import (
	"errors"
	"net/http"

	"elearn-backend/internal/ordering"
)

var (
	ErrCourseNotFound = errors.New("course not found")
	ErrNotCourseOwner = errors.New("course belongs to another user")
	ErrDuplicateSlug  = errors.New("course slug already exists for this owner")
)

// GetErrorResponse maps a domain error to an HTTP status, a
// user-facing message and an error code.
func GetErrorResponse(err error) (int, string, string) {
	switch {
	case errors.Is(err, ErrCourseNotFound), errors.Is(err, ordering.ErrItemNotFound):
		return http.StatusNotFound, "Course not found", "COURSE_NOT_FOUND"
	case errors.Is(err, ErrNotCourseOwner):
		return http.StatusForbidden, "You do not own this course", "COURSE_FORBIDDEN"
	case errors.Is(err, ErrDuplicateSlug):
		return http.StatusConflict, "A course with this title already exists", "COURSE_DUPLICATE_SLUG"
	default:
		return http.StatusInternalServerError, "Internal server error", "COURSE_INTERNAL"
	}
}
