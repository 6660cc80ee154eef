package http

import "net/http"

// NewRouter assembles the public surface. The scan route is an alias for
// book creation: the mobile client posts scanned barcodes there with the
// same contract.
func NewRouter(books *BookHandler, serveWS, healthz, readyz http.HandlerFunc) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", healthz)
	mux.HandleFunc("GET /readyz", readyz)

	mux.HandleFunc("GET /books", books.List)
	mux.HandleFunc("POST /books", books.Add)
	mux.HandleFunc("GET /books/{id}", books.Get)
	mux.HandleFunc("PUT /books/{id}", books.Update)
	mux.HandleFunc("DELETE /books/{id}", books.Delete)

	mux.HandleFunc("POST /scan", books.Add)

	mux.HandleFunc("GET /ws", serveWS)

	return mux
}
