// Package metadata resolves an ISBN to one canonical book-metadata record by
// merging the primary provider (title, authors, categories, cover) with the
// secondary provider's subject tags.
package metadata

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shelfapi/internal/genre"
	"shelfapi/internal/platform/googlebooks"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// UnknownAuthor is the display sentinel used when the primary provider
// reports no authors.
const UnknownAuthor = "Unknown Author"

var (
	// ErrNotFound means the primary provider has no record for the ISBN.
	ErrNotFound = errors.New("metadata: no match for isbn")
	// ErrUnavailable means the primary provider request itself failed, so
	// the ISBN may still exist upstream. Callers can retry; a NotFound is
	// permanent.
	ErrUnavailable = errors.New("metadata: primary provider unavailable")
)

// BookMetadata is the merged, normalized record for one ISBN.
type BookMetadata struct {
	Title    string
	Author   string
	CoverURL string
	Genres   []string
}

// PrimaryProvider supplies title, authors, raw categories and a cover image.
// Its absence for an ISBN fails the whole resolution.
type PrimaryProvider interface {
	Lookup(ctx context.Context, isbn string) (googlebooks.Volume, error)
}

// SubjectProvider supplies raw subject tags. It is best-effort: failures
// degrade to an empty list.
type SubjectProvider interface {
	Subjects(ctx context.Context, isbn string) ([]string, error)
}

type Service struct {
	primary  PrimaryProvider
	subjects SubjectProvider
	timeout  time.Duration
	logger   *log.Logger
}

func NewService(primary PrimaryProvider, subjects SubjectProvider, timeout time.Duration, logger *log.Logger) *Service {
	return &Service{
		primary:  primary,
		subjects: subjects,
		timeout:  timeout,
		logger:   logger,
	}
}

// Resolve fetches both providers concurrently and merges the results.
// Resolution is read-only; repeated calls may return different metadata if
// the upstream sources change.
func (s *Service) Resolve(ctx context.Context, isbn string) (BookMetadata, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		vol      googlebooks.Volume
		subjects []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.primary.Lookup(gctx, isbn)
		if err != nil {
			return err
		}
		vol = v
		return nil
	})
	g.Go(func() error {
		subs, err := s.subjects.Subjects(gctx, isbn)
		if err != nil {
			// Degrade to no subjects. The error never surfaces past here.
			s.logger.Warn("subject lookup failed", "isbn", isbn, "err", err)
			return nil
		}
		subjects = subs
		return nil
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, googlebooks.ErrNoMatch) {
			return BookMetadata{}, ErrNotFound
		}
		return BookMetadata{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	author := UnknownAuthor
	if len(vol.Authors) > 0 {
		author = strings.Join(vol.Authors, ", ")
	}

	return BookMetadata{
		Title:    vol.Title,
		Author:   author,
		CoverURL: vol.Thumbnail,
		Genres:   genre.Normalize(vol.Categories, subjects),
	}, nil
}
