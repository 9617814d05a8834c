package enrollment

import "errors"

var (
	ErrAlreadyEnrolled    = errors.New("already enrolled in this course")
	ErrCourseNotFound     = errors.New("course not found")
	ErrCourseNotPublished = errors.New("course is not published")
)
