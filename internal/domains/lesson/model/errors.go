package model

import "errors"

var (
	ErrLessonNotFound = errors.New("lesson not found")
	ErrCourseNotFound = errors.New("course not found")
	ErrLessonCourseMismatch = errors.New("lesson does not belong to this course")
)
