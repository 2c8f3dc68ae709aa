package handlers

import (
	"net/http"
	"strconv"
	"sync"

	"fleet/internal/domain"
	"fleet/internal/http/middleware"
	"fleet/internal/storage"
	"fleet/internal/utils"

	"github.com/gin-gonic/gin"
)

var (
	storeMu sync.RWMutex
	store   storage.Store
)

// SetStore wires the active storage backend into the handler package.
func SetStore(s storage.Store) {
	storeMu.Lock()
	defer storeMu.Unlock()
	store = s
}

func activeStore() storage.Store {
	storeMu.RLock()
	defer storeMu.RUnlock()
	return store
}

// respondError maps domain errors to HTTP statuses. Anything unexpected
// becomes a generic 500 without internal detail.
func respondError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case domain.IsUnavailable(err):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
	default:
		utils.LogEvent(middleware.GetRequestID(c), "http", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected failure"})
	}
}

// parseID reads the :id path param; a false return means the 400 response
// has been written already.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
