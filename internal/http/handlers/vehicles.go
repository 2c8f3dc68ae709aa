package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"fleet/internal/domain/models"
	"fleet/internal/http/middleware"
	"fleet/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/vehicles?q=AB-123
func GetVehicles(c *gin.Context) {
	list, err := activeStore().Vehicles().List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	q := strings.ToLower(strings.TrimSpace(c.Query("q")))
	if q != "" {
		filtered := []models.Vehicle{}
		for _, v := range list {
			if strings.Contains(strings.ToLower(v.RegistrationNumber), q) ||
				strings.Contains(strings.ToLower(v.Manufacturer), q) ||
				strings.Contains(strings.ToLower(v.Model), q) ||
				strings.Contains(strings.ToLower(v.VehicleType), q) {
				filtered = append(filtered, v)
			}
		}
		list = filtered
	}

	c.JSON(http.StatusOK, list)
}

// POST /api/vehicles
func CreateVehicle(c *gin.Context) {
	var in models.NewVehicle
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields", "detail": err.Error()})
		return
	}
	if strings.TrimSpace(in.RegistrationNumber) == "" || strings.TrimSpace(in.Manufacturer) == "" ||
		strings.TrimSpace(in.Model) == "" || strings.TrimSpace(in.VehicleType) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}

	v, err := activeStore().Vehicles().Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "vehicles", "create", fmt.Sprintf("id=%d plate=%s", v.ID, v.RegistrationNumber))
	c.JSON(http.StatusOK, v)
}

// GET /api/vehicles/:id
func GetVehicleByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	v, err := activeStore().Vehicles().GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// PUT /api/vehicles/:id
func UpdateVehicle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var patch models.VehiclePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "detail": err.Error()})
		return
	}

	v, err := activeStore().Vehicles().Update(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// DELETE /api/vehicles/:id
func DeleteVehicle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := activeStore().Vehicles().Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vehicle deleted"})
}

// GET /api/vehicles/:id/documents
func GetVehicleDocuments(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	docs, err := activeStore().Documents().ListByVehicleID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}
