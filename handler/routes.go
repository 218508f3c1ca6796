package handler

import (
	"expvar"
	"net/http"

	"github.com/julienschmidt/httprouter"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func (h *Handler) Routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(h.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(h.methodNotAllowed)

	router.HandlerFunc(http.MethodGet, "/v1/books", h.listBooksHandler)
	router.HandlerFunc(http.MethodPost, "/v1/books", h.addBookHandler)
	router.HandlerFunc(http.MethodGet, "/v1/books/:bookId", h.showBookHandler)
	router.HandlerFunc(http.MethodPatch, "/v1/books/:bookId", h.updateBookHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/books/:bookId", h.deleteBookHandler)
	router.HandlerFunc(http.MethodPost, "/v1/books/:bookId/borrow", h.borrowBookHandler)
	router.HandlerFunc(http.MethodPost, "/v1/books/:bookId/return", h.returnBookHandler)
	router.HandlerFunc(http.MethodGet, "/v1/search", h.searchBooksHandler)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", h.healthcheckHandler)
	router.HandlerFunc(http.MethodGet, "/debug/vars", h.basicAuth(expvar.Handler().ServeHTTP))

	// Swagger UI; the generated spec itself is served at /docs/doc.json
	router.HandlerFunc(http.MethodGet, "/docs/*any", httpSwagger.Handler())

	return h.recoverPanic(h.enableCORS(h.rateLimit(h.metrics(h.requestID(router)))))
}
