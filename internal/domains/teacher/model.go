package teacher

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// Teacher is one entry of the site-wide instructor directory. The
// directory is a single global list: Position ranks a teacher across
// the whole site, 0 meaning the row has not been reconciled yet.
type Teacher struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Headline  string    `json:"headline,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateTeacherRequest struct {
	Name     string `json:"name"`
	Headline string `json:"headline"`
	Bio      string `json:"bio"`
}

func (r CreateTeacherRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Headline, validation.Length(0, 255)),
		validation.Field(&r.Bio, validation.Length(0, 8000)),
	)
}

type UpdateTeacherRequest struct {
	Name     *string `json:"name"`
	Headline *string `json:"headline"`
	Bio      *string `json:"bio"`
}

func (r UpdateTeacherRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
	)
}

type ReorderTeachersRequest struct {
	IDs []string `json:"ids"`
}

func (r ReorderTeachersRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.IDs, validation.Required, validation.Each(is.UUIDv4)),
	)
}
