package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"shelfapi/internal/library"
	"shelfapi/internal/metadata"
)

//go:generate mockgen -source=book_handler.go -destination=mocks/catalog_mock.go -package=mocks

// Catalog is the slice of the library service the REST surface needs.
type Catalog interface {
	Add(ctx context.Context, isbn string) (library.Book, bool, error)
	List(ctx context.Context, q library.Query) ([]library.Book, error)
	Get(ctx context.Context, id string) (library.Book, error)
	Update(ctx context.Context, id string, u library.Update) (library.Book, error)
	Delete(ctx context.Context, id string) error
}

type BookHandler struct {
	catalog Catalog
}

func NewBookHandler(catalog Catalog) *BookHandler {
	return &BookHandler{catalog: catalog}
}

type addBookRequest struct {
	ISBN string `json:"isbn" validate:"required,isbn"`
}

type updateBookRequest struct {
	Title      *string  `json:"title"`
	Author     *string  `json:"author"`
	CoverURL   *string  `json:"coverUrl"`
	Genres     []string `json:"genres"`
	Rating     *float64 `json:"rating"`
	ReadStatus *string  `json:"readStatus"`
}

// Add handles POST /books and its POST /scan alias (the barcode-scanner
// ingestion path shares the contract). An already-catalogued ISBN answers
// 200 with the existing record; a fresh one answers 201.
func (h *BookHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, CodeValidation, "invalid request body", nil)
		return
	}

	if verrs := ValidateStruct(req); verrs != nil {
		details := make([]ErrorDetail, len(verrs))
		for i, v := range verrs {
			details[i] = ErrorDetail{Field: v.Field, Message: v.Message}
		}
		JSONError(w, http.StatusBadRequest, CodeValidation, "invalid isbn", details)
		return
	}

	b, created, err := h.catalog.Add(r.Context(), req.ISBN)
	if err != nil {
		switch {
		case errors.Is(err, metadata.ErrNotFound):
			JSONError(w, http.StatusNotFound, CodeNotFound, "book not found", nil)
		case errors.Is(err, metadata.ErrUnavailable):
			JSONError(w, http.StatusBadGateway, CodeUpstream, "metadata provider unavailable", nil)
		default:
			JSONError(w, http.StatusInternalServerError, CodeInternal, "failed to add book", nil)
		}
		return
	}

	if created {
		JSONSuccessCreated(w, b)
		return
	}
	JSONSuccess(w, b)
}

// List handles GET /books with optional search, genre and sort filters.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	q := library.Query{
		Search: r.URL.Query().Get("search"),
		Genre:  r.URL.Query().Get("genre"),
		Sort:   library.ParseSort(r.URL.Query().Get("sort")),
	}

	books, err := h.catalog.List(r.Context(), q)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, CodeInternal, "failed to fetch books", nil)
		return
	}
	if books == nil {
		books = []library.Book{}
	}
	JSONSuccess(w, books)
}

// Get handles GET /books/{id}.
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	b, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, library.ErrNotFound) {
			JSONError(w, http.StatusNotFound, CodeNotFound, "book not found", nil)
			return
		}
		JSONError(w, http.StatusInternalServerError, CodeInternal, "failed to fetch book", nil)
		return
	}
	JSONSuccess(w, b)
}

// Update handles PUT /books/{id} with a partial payload.
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req updateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, CodeValidation, "invalid request body", nil)
		return
	}

	u := library.Update{
		Title:    req.Title,
		Author:   req.Author,
		CoverURL: req.CoverURL,
		Genres:   req.Genres,
		Rating:   req.Rating,
	}
	if req.ReadStatus != nil {
		rs := library.ReadStatus(*req.ReadStatus)
		u.ReadStatus = &rs
	}

	b, err := h.catalog.Update(r.Context(), id, u)
	if err != nil {
		switch {
		case errors.Is(err, library.ErrInvalidRating),
			errors.Is(err, library.ErrInvalidReadStatus):
			JSONError(w, http.StatusBadRequest, CodeValidation, err.Error(), nil)
		case errors.Is(err, library.ErrNotFound):
			JSONError(w, http.StatusNotFound, CodeNotFound, "book not found", nil)
		default:
			JSONError(w, http.StatusInternalServerError, CodeInternal, "failed to update book", nil)
		}
		return
	}
	JSONSuccess(w, b)
}

// Delete handles DELETE /books/{id}.
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.catalog.Delete(r.Context(), id); err != nil {
		if errors.Is(err, library.ErrNotFound) {
			JSONError(w, http.StatusNotFound, CodeNotFound, "book not found", nil)
			return
		}
		JSONError(w, http.StatusInternalServerError, CodeInternal, "failed to delete book", nil)
		return
	}
	JSONSuccess(w, map[string]bool{"deleted": true})
}
