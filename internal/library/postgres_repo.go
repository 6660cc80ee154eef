package library

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

const bookColumns = "id, isbn, title, author, cover_url, genres, rating, read_status, date_added"

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Insert(ctx context.Context, b Book) error {
	const sql = `
		INSERT INTO books (id, isbn, title, author, cover_url, genres, rating, read_status, date_added)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(timeoutCtx, sql,
		b.ID, b.ISBN, b.Title, b.Author, b.CoverURL, b.Genres, b.Rating, b.ReadStatus, b.DateAdded,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateISBN
		}
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

func (r *PostgresRepo) Get(ctx context.Context, id string) (Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books WHERE id = $1`, bookColumns)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.scanOne(r.db.QueryRow(timeoutCtx, query, id))
}

func (r *PostgresRepo) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books WHERE isbn = $1`, bookColumns)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.scanOne(r.db.QueryRow(timeoutCtx, query, isbn))
}

func (r *PostgresRepo) List(ctx context.Context, q Query) ([]Book, error) {
	clauses := []string{"1=1"}
	args := []any{}
	argn := 1

	if q.Search != "" {
		clauses = append(clauses, fmt.Sprintf("(title ILIKE $%d OR author ILIKE $%d)", argn, argn+1))
		pattern := "%" + q.Search + "%"
		args = append(args, pattern, pattern)
		argn += 2
	}

	if q.Genre != "" {
		clauses = append(clauses, fmt.Sprintf("$%d = ANY(genres)", argn))
		args = append(args, q.Genre)
		argn++
	}

	where := "WHERE " + strings.Join(clauses, " AND ")

	// Natural order is insertion order; id breaks date_added ties.
	order := "date_added ASC, id ASC"
	switch q.Sort {
	case SortRatingDesc:
		order = "rating DESC, date_added ASC"
	case SortRatingAsc:
		order = "rating ASC, date_added ASC"
	}

	dataSQL := fmt.Sprintf(`SELECT %s FROM books %s ORDER BY %s`, bookColumns, where, order)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, dataSQL, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(
			&b.ID, &b.ISBN, &b.Title, &b.Author, &b.CoverURL,
			&b.Genres, &b.Rating, &b.ReadStatus, &b.DateAdded,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Update(ctx context.Context, id string, u Update) (Book, error) {
	sets := []string{}
	args := []any{}
	argn := 1

	set := func(col string, v any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, argn))
		args = append(args, v)
		argn++
	}

	if u.Title != nil {
		set("title", *u.Title)
	}
	if u.Author != nil {
		set("author", *u.Author)
	}
	if u.CoverURL != nil {
		set("cover_url", *u.CoverURL)
	}
	if u.Genres != nil {
		set("genres", u.Genres)
	}
	if u.Rating != nil {
		set("rating", *u.Rating)
	}
	if u.ReadStatus != nil {
		set("read_status", *u.ReadStatus)
	}

	if len(sets) == 0 {
		return r.Get(ctx, id)
	}

	query := fmt.Sprintf(`UPDATE books SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), argn, bookColumns)
	args = append(args, id)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.scanOne(r.db.QueryRow(timeoutCtx, query, args...))
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) scanOne(row pgx.Row) (Book, error) {
	var b Book
	err := row.Scan(
		&b.ID, &b.ISBN, &b.Title, &b.Author, &b.CoverURL,
		&b.Genres, &b.Rating, &b.ReadStatus, &b.DateAdded,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}
