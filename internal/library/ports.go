package library

import (
	"context"

	"shelfapi/internal/metadata"
)

// Repository defines the contract for catalog persistence.
type Repository interface {
	Insert(ctx context.Context, b Book) error
	Get(ctx context.Context, id string) (Book, error)
	GetByISBN(ctx context.Context, isbn string) (Book, error)
	List(ctx context.Context, q Query) ([]Book, error)
	Update(ctx context.Context, id string, u Update) (Book, error)
	Delete(ctx context.Context, id string) error
}

// Resolver turns an ISBN into merged book metadata.
type Resolver interface {
	Resolve(ctx context.Context, isbn string) (metadata.BookMetadata, error)
}

// Broadcaster fans a successful mutation out to every connected realtime
// subscriber. Implementations must not block the mutating request.
type Broadcaster interface {
	BookAdded(b Book)
	BookUpdated(b Book)
	BookDeleted(id string)
}
