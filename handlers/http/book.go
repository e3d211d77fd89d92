package httpHandler

import (
	"net/http"

	"houses-api/query"
	"houses-api/usecases"

	"github.com/gin-gonic/gin"
)

type BookHandler struct {
	useCase *usecases.BookUseCase
}

func NewBookHandler(useCase *usecases.BookUseCase) *BookHandler {
	return &BookHandler{useCase: useCase}
}

// GetBooks handles GET /api/v1/books
func (h *BookHandler) GetBooks(c *gin.Context) {
	params, err := query.Parse(c.Request.URL.Query(), query.BookFields)
	if err != nil {
		respondError(c, err)
		return
	}
	books, total, err := h.useCase.ListBooks(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, books, len(books), total, params)
}

// GetHouseBooks handles GET /api/v1/houses/:id/books
func (h *BookHandler) GetHouseBooks(c *gin.Context) {
	books, err := h.useCase.ListBooksByHouse(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, books, len(books))
}

// GetBook handles GET /api/v1/books/:id
func (h *BookHandler) GetBook(c *gin.Context) {
	book, err := h.useCase.GetBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, book)
}

// AddBook handles POST /api/v1/houses/:id/books
func (h *BookHandler) AddBook(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var in usecases.BookInput
	if !bindJSON(c, &in) {
		return
	}
	book, err := h.useCase.AddBook(c.Request.Context(), a, c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, book)
}

// UpdateBook handles PUT /api/v1/books/:id
func (h *BookHandler) UpdateBook(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var in usecases.BookInput
	if !bindJSON(c, &in) {
		return
	}
	book, err := h.useCase.UpdateBook(c.Request.Context(), a, c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, book)
}

// DeleteBook handles DELETE /api/v1/books/:id
func (h *BookHandler) DeleteBook(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	if err := h.useCase.DeleteBook(c.Request.Context(), a, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{})
}
