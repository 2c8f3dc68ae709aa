package handlers

import (
	"fmt"
	"net/http"

	"fleet/internal/http/middleware"
	"fleet/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/reports/fleet
func GetFleetReport(c *gin.Context) {
	svc := services.ReportsService{Store: activeStore(), RequestID: middleware.GetRequestID(c)}
	rep, err := svc.FleetReport(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// GET /api/reports/fleet/pdf
func GetFleetReportPDF(c *gin.Context) {
	svc := services.ReportsService{Store: activeStore(), RequestID: middleware.GetRequestID(c)}
	pdfBytes, filename, err := svc.FleetReportPDF(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
