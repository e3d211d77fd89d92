package httpHandler

import (
	"net/http"

	"houses-api/apperr"
	"houses-api/query"
	"houses-api/usecases"

	"github.com/gin-gonic/gin"
)

type HouseHandler struct {
	useCase *usecases.HouseUseCase
	photos  *usecases.PhotoUseCase
}

func NewHouseHandler(useCase *usecases.HouseUseCase, photos *usecases.PhotoUseCase) *HouseHandler {
	return &HouseHandler{
		useCase: useCase,
		photos:  photos,
	}
}

// GetHouses handles GET /api/v1/houses
func (h *HouseHandler) GetHouses(c *gin.Context) {
	params, err := query.Parse(c.Request.URL.Query(), query.HouseFields)
	if err != nil {
		respondError(c, err)
		return
	}
	houses, total, err := h.useCase.ListHouses(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, houses, len(houses), total, params)
}

// GetHouse handles GET /api/v1/houses/:id
func (h *HouseHandler) GetHouse(c *gin.Context) {
	house, err := h.useCase.GetHouse(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, house)
}

// CreateHouse handles POST /api/v1/houses
func (h *HouseHandler) CreateHouse(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var in usecases.HouseInput
	if !bindJSON(c, &in) {
		return
	}
	house, err := h.useCase.CreateHouse(c.Request.Context(), a, in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, house)
}

// UpdateHouse handles PUT /api/v1/houses/:id
func (h *HouseHandler) UpdateHouse(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var in usecases.HouseInput
	if !bindJSON(c, &in) {
		return
	}
	house, err := h.useCase.UpdateHouse(c.Request.Context(), a, c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, house)
}

// DeleteHouse handles DELETE /api/v1/houses/:id
func (h *HouseHandler) DeleteHouse(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	if err := h.useCase.DeleteHouse(c.Request.Context(), a, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{})
}

// UploadPhoto handles PUT /api/v1/houses/:id/photo (multipart field "file")
func (h *HouseHandler) UploadPhoto(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	var file *usecases.PhotoFile
	if header, err := c.FormFile("file"); err == nil {
		body, err := header.Open()
		if err != nil {
			respondError(c, apperr.Upload("Please upload a file"))
			return
		}
		defer body.Close()
		file = &usecases.PhotoFile{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Body:        body,
		}
	}

	name, err := h.photos.UploadHousePhoto(c.Request.Context(), a, c.Param("id"), file)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, name)
}
