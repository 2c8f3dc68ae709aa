package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"fleet/internal/domain/models"
	"fleet/internal/http/middleware"
	"fleet/internal/services"
	"fleet/internal/utils"

	"github.com/gin-gonic/gin"
)

// enrichedDocuments loads both collections and joins vehicle plates plus
// derived statuses onto the documents.
func enrichedDocuments(c *gin.Context) ([]services.EnrichedDocument, error) {
	s := activeStore()
	docs, err := s.Documents().List(c.Request.Context())
	if err != nil {
		return nil, err
	}
	vehicles, err := s.Vehicles().List(c.Request.Context())
	if err != nil {
		return nil, err
	}
	return services.EnrichDocuments(docs, vehicles, time.Now()), nil
}

// GET /api/documents?status=expiring&type=Insurance&q=AB
func GetDocuments(c *gin.Context) {
	docs, err := enrichedDocuments(c)
	if err != nil {
		respondError(c, err)
		return
	}

	status := strings.TrimSpace(c.Query("status"))
	docType := strings.TrimSpace(c.Query("type"))
	q := strings.ToLower(strings.TrimSpace(c.Query("q")))

	filtered := []services.EnrichedDocument{}
	for _, d := range docs {
		if status != "" && d.Status != status {
			continue
		}
		if docType != "" && d.DocumentType != docType {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(d.VehiclePlate), q) &&
			!strings.Contains(strings.ToLower(d.DocumentName), q) &&
			!strings.Contains(strings.ToLower(d.DocumentType), q) {
			continue
		}
		filtered = append(filtered, d)
	}

	c.JSON(http.StatusOK, filtered)
}

// GET /api/documents/summary
func GetDocumentSummary(c *gin.Context) {
	docs, err := enrichedDocuments(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services.SummarizeDocuments(docs))
}

// POST /api/documents
func CreateDocument(c *gin.Context) {
	var in models.NewVehicleDocument
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields", "detail": err.Error()})
		return
	}
	if in.VehicleID <= 0 || strings.TrimSpace(in.DocumentType) == "" || strings.TrimSpace(in.DocumentName) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}

	d, err := activeStore().Documents().Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "documents", "create", fmt.Sprintf("id=%d vehicle_id=%d", d.ID, d.VehicleID))
	c.JSON(http.StatusOK, d)
}

// GET /api/documents/:id
func GetDocumentByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	d, err := activeStore().Documents().GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// PUT /api/documents/:id
func UpdateDocument(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var patch models.DocumentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "detail": err.Error()})
		return
	}

	d, err := activeStore().Documents().Update(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// DELETE /api/documents/:id
func DeleteDocument(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := activeStore().Documents().Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "document deleted"})
}
