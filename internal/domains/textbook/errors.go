package textbook

import "errors"

var (
	ErrTextbookNotFound = errors.New("textbook not found")
	ErrNotTextbookOwner = errors.New("textbook belongs to another user")
	ErrDuplicateISBN    = errors.New("textbook with this ISBN already exists")
)
