package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// Lesson is one unit of a course. Position ranks it within its course;
// 0 means the row has not been reconciled yet.
type Lesson struct {
	ID              uuid.UUID `json:"id"`
	CourseID        uuid.UUID `json:"course_id"`
	Title           string    `json:"title"`
	VideoURL        string    `json:"video_url,omitempty"`
	DurationMinutes int       `json:"duration_minutes"`
	FreePreview     bool      `json:"free_preview"`
	Position        int       `json:"position"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CreateLessonRequest struct {
	Title           string `json:"title"`
	VideoURL        string `json:"video_url"`
	DurationMinutes int    `json:"duration_minutes"`
	FreePreview     bool   `json:"free_preview"`
}

func (r CreateLessonRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.VideoURL, is.URL),
		validation.Field(&r.DurationMinutes, validation.Min(0)),
	)
}

type UpdateLessonRequest struct {
	Title           *string `json:"title"`
	VideoURL        *string `json:"video_url"`
	DurationMinutes *int    `json:"duration_minutes"`
	FreePreview     *bool   `json:"free_preview"`
}

func (r UpdateLessonRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 255)),
	)
}

// ReorderLessonsRequest is the drag-and-drop payload for one course's
// lesson list.
type ReorderLessonsRequest struct {
	IDs []string `json:"ids"`
}

func (r ReorderLessonsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.IDs, validation.Required, validation.Each(is.UUIDv4)),
	)
}
