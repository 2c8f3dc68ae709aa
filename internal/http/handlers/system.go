package handlers

import (
	"net/http"

	"fleet/internal/storage"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "fleet backend running"})
}

// StorageCheck reports which backend is active and whether it is reachable.
// The memory backend additionally reports whether mutations reach disk.
func StorageCheck(c *gin.Context) {
	s := activeStore()
	if s == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage not configured"})
		return
	}
	if err := s.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unreachable", "backend": s.Kind()})
		return
	}

	out := gin.H{"message": "storage OK", "backend": s.Kind()}
	if mem, ok := s.(*storage.MemoryStore); ok {
		out["durable"] = mem.Durable()
	}
	c.JSON(http.StatusOK, out)
}
