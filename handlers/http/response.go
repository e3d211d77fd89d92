package httpHandler

import (
	"net/http"

	"houses-api/apperr"
	"houses-api/middleware"
	"houses-api/query"
	"houses-api/usecases"

	"github.com/gin-gonic/gin"
)

func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondList(c *gin.Context, data interface{}, count int) {
	c.JSON(http.StatusOK, gin.H{"success": true, "count": count, "data": data})
}

func respondPage(c *gin.Context, data interface{}, count int, total int64, params *query.Params) {
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"count":      count,
		"total":      total,
		"pagination": params.Paginate(total),
		"data":       data,
	})
}

// respondError writes the failure envelope; unexpected causes are attached to
// the context for the request logger and never sent to the client.
func respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"success": false, "error": apperr.Message(err)})
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, apperr.Validation("Invalid request body: %v", err))
		return false
	}
	return true
}

func actor(c *gin.Context) (usecases.Actor, bool) {
	a, ok := middleware.ActorFrom(c)
	if !ok {
		respondError(c, apperr.Unauthorized("Not authorized to access this route"))
	}
	return a, ok
}
