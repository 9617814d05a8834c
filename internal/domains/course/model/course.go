package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Course is one sellable course owned by an instructor. Position is the
// course's rank within the owner's catalog; 0 means the row has not
// been reconciled yet.
type Course struct {
	ID          uuid.UUID       `json:"id"`
	OwnerID     uuid.UUID       `json:"owner_id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Published   bool            `json:"published"`
	Position    int             `json:"position"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type CreateCourseRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Published   bool            `json:"published"`
}

func (r CreateCourseRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Length(0, 4000)),
	)
}

type UpdateCourseRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Published   *bool            `json:"published"`
}

func (r UpdateCourseRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Length(0, 4000)),
	)
}

// ReorderCoursesRequest carries the full desired order from a
// drag-and-drop UI. The list may be partial; unmentioned courses keep
// their relative order after the mentioned ones.
type ReorderCoursesRequest struct {
	IDs []string `json:"ids"`
}

func (r ReorderCoursesRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.IDs, validation.Required, validation.Each(is.UUIDv4)),
	)
}
