// Package library is the authoritative book catalog: the Book entity, the
// catalog service with its validation rules, and the Postgres repository.
package library

import "time"

// ReadStatus tracks where a book sits in the reading lifecycle.
type ReadStatus string

const (
	StatusUnread   ReadStatus = "unread"
	StatusReading  ReadStatus = "reading"
	StatusFinished ReadStatus = "finished"
)

// Valid reports whether s is one of the three enumerated statuses.
func (s ReadStatus) Valid() bool {
	switch s {
	case StatusUnread, StatusReading, StatusFinished:
		return true
	}
	return false
}

// Book is the sole catalog entity. JSON field names are the wire contract
// shared with the web and scanner clients.
type Book struct {
	ID         string     `json:"id"`
	ISBN       string     `json:"isbn"`
	Title      string     `json:"title"`
	Author     string     `json:"author"`
	CoverURL   string     `json:"coverUrl,omitempty"`
	Genres     []string   `json:"genres"`
	Rating     float64    `json:"rating"`
	ReadStatus ReadStatus `json:"readStatus"`
	DateAdded  time.Time  `json:"dateAdded"`
}

// Update is a partial mutation. Nil pointers (and nil Genres) leave the
// stored field untouched. Title, Author, CoverURL and Genres exist for the
// metadata refresh path; users mutate Rating and ReadStatus.
type Update struct {
	Title      *string
	Author     *string
	CoverURL   *string
	Genres     []string
	Rating     *float64
	ReadStatus *ReadStatus
}

// Sort orders a listing. Only the two rating orders are recognized;
// anything else is natural (insertion) order.
type Sort string

const (
	SortNatural    Sort = ""
	SortRatingDesc Sort = "rating_desc"
	SortRatingAsc  Sort = "rating_asc"
)

// ParseSort maps a raw query value onto a Sort; unrecognized values are
// natural order.
func ParseSort(raw string) Sort {
	switch Sort(raw) {
	case SortRatingDesc:
		return SortRatingDesc
	case SortRatingAsc:
		return SortRatingAsc
	}
	return SortNatural
}

// Query defines listing filters. Dimensions combine with AND; the Search
// substring test is OR across title and author.
type Query struct {
	Search string
	Genre  string
	Sort   Sort
}
