package textbook

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Textbook is a companion book sold alongside an instructor's courses.
// Position ranks it within the owner's shelf; 0 means unreconciled.
type Textbook struct {
	ID        uuid.UUID       `json:"id"`
	OwnerID   uuid.UUID       `json:"owner_id"`
	Title     string          `json:"title"`
	Author    string          `json:"author,omitempty"`
	ISBN      string          `json:"isbn,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Position  int             `json:"position"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type CreateTextbookRequest struct {
	Title  string          `json:"title"`
	Author string          `json:"author"`
	ISBN   string          `json:"isbn"`
	Price  decimal.Decimal `json:"price"`
}

func (r CreateTextbookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Author, validation.Length(0, 255)),
		validation.Field(&r.ISBN, is.ISBN),
	)
}

type UpdateTextbookRequest struct {
	Title  *string          `json:"title"`
	Author *string          `json:"author"`
	ISBN   *string          `json:"isbn"`
	Price  *decimal.Decimal `json:"price"`
}

func (r UpdateTextbookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 255)),
	)
}

type ReorderTextbooksRequest struct {
	IDs []string `json:"ids"`
}

func (r ReorderTextbooksRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.IDs, validation.Required, validation.Each(is.UUIDv4)),
	)
}
