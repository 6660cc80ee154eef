package library

import "errors"

var (
	// ErrNotFound is returned when no record matches the requested id.
	ErrNotFound = errors.New("book not found")
	// ErrDuplicateISBN is returned by the repository when an insert hits
	// the isbn uniqueness constraint.
	ErrDuplicateISBN = errors.New("isbn already exists")
	// ErrInvalidRating rejects ratings outside [0, 5].
	ErrInvalidRating = errors.New("rating must be a number between 0 and 5")
	// ErrInvalidReadStatus rejects statuses outside the enum.
	ErrInvalidReadStatus = errors.New("invalid read status")
)
