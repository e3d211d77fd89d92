package handlers

import (
	"net/http"

	"houses-api/cache"

	"github.com/gin-gonic/gin"
)

type CacheHandler struct {
	users *cache.UserCache
}

func NewCacheHandler(users *cache.UserCache) *CacheHandler {
	return &CacheHandler{users: users}
}

// GetCacheStats GET /api/v1/admin/cache
func (h *CacheHandler) GetCacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"users": h.users.Len()}})
}

// FlushCache DELETE /api/v1/admin/cache
func (h *CacheHandler) FlushCache(c *gin.Context) {
	h.users.Flush()
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
}
