package httpHandler

import (
	"net/http"

	"houses-api/query"
	"houses-api/usecases"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	useCase *usecases.ReviewUseCase
}

func NewReviewHandler(useCase *usecases.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{useCase: useCase}
}

// GetReviews handles GET /api/v1/reviews
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	params, err := query.Parse(c.Request.URL.Query(), query.ReviewFields)
	if err != nil {
		respondError(c, err)
		return
	}
	reviews, total, err := h.useCase.ListReviews(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, reviews, len(reviews), total, params)
}

// GetHouseReviews handles GET /api/v1/houses/:id/reviews
func (h *ReviewHandler) GetHouseReviews(c *gin.Context) {
	reviews, err := h.useCase.ListReviewsByHouse(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, reviews, len(reviews))
}

// GetReview handles GET /api/v1/reviews/:id
func (h *ReviewHandler) GetReview(c *gin.Context) {
	review, err := h.useCase.GetReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, review)
}

// AddReview handles POST /api/v1/houses/:id/reviews
func (h *ReviewHandler) AddReview(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var in usecases.ReviewInput
	if !bindJSON(c, &in) {
		return
	}
	review, err := h.useCase.AddReview(c.Request.Context(), a, c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, review)
}

// UpdateReview handles PUT /api/v1/reviews/:id
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var in usecases.ReviewInput
	if !bindJSON(c, &in) {
		return
	}
	review, err := h.useCase.UpdateReview(c.Request.Context(), a, c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, review)
}

// DeleteReview handles DELETE /api/v1/reviews/:id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	if err := h.useCase.DeleteReview(c.Request.Context(), a, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{})
}
