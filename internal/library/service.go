package library

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Service owns every catalog mutation. Each operation is one atomic unit
// against the repository; successful mutations are broadcast after commit,
// fire-and-forget.
type Service struct {
	repo        Repository
	resolver    Resolver
	broadcaster Broadcaster
	logger      *log.Logger
}

func NewService(repo Repository, resolver Resolver, broadcaster Broadcaster, logger *log.Logger) *Service {
	return &Service{
		repo:        repo,
		resolver:    resolver,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Add creates a record for isbn, resolving metadata through the providers.
// Creation is idempotent: an already-catalogued ISBN returns the existing
// record unchanged with created=false and no resolver call.
func (s *Service) Add(ctx context.Context, isbn string) (Book, bool, error) {
	existing, err := s.repo.GetByISBN(ctx, isbn)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Book{}, false, err
	}

	md, err := s.resolver.Resolve(ctx, isbn)
	if err != nil {
		return Book{}, false, fmt.Errorf("resolve isbn %s: %w", isbn, err)
	}

	b := Book{
		ID:         uuid.NewString(),
		ISBN:       isbn,
		Title:      md.Title,
		Author:     md.Author,
		CoverURL:   md.CoverURL,
		Genres:     md.Genres,
		ReadStatus: StatusUnread,
		DateAdded:  time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, b); err != nil {
		if errors.Is(err, ErrDuplicateISBN) {
			// Lost a create race; the winner's record is the answer.
			winner, getErr := s.repo.GetByISBN(ctx, isbn)
			if getErr != nil {
				return Book{}, false, getErr
			}
			return winner, false, nil
		}
		return Book{}, false, err
	}

	s.logger.Info("book added", "id", b.ID, "isbn", b.ISBN, "title", b.Title)
	s.broadcaster.BookAdded(b)
	return b, true, nil
}

// List returns records matching q.
func (s *Service) List(ctx context.Context, q Query) ([]Book, error) {
	return s.repo.List(ctx, q)
}

// Get returns the record for id.
func (s *Service) Get(ctx context.Context, id string) (Book, error) {
	return s.repo.Get(ctx, id)
}

// Update validates the partial payload, then merges it into the stored
// record. A validation failure rejects the whole update; nothing persists.
func (s *Service) Update(ctx context.Context, id string, u Update) (Book, error) {
	if u.Rating != nil && (*u.Rating < 0 || *u.Rating > 5) {
		return Book{}, ErrInvalidRating
	}
	if u.ReadStatus != nil && !u.ReadStatus.Valid() {
		return Book{}, ErrInvalidReadStatus
	}

	b, err := s.repo.Update(ctx, id, u)
	if err != nil {
		return Book{}, err
	}

	s.broadcaster.BookUpdated(b)
	return b, nil
}

// Delete removes the record for id. A missing id is ErrNotFound, never a
// silent no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("book deleted", "id", id)
	s.broadcaster.BookDeleted(id)
	return nil
}
