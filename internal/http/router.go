package api

import (
	"log"
	stdhttp "net/http"

	intconfig "fleet/internal/config"
	h "fleet/internal/http/handlers"
	"fleet/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.AllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.StorageCheck)

		// Vehicles
		vehicles := api.Group("/vehicles")
		vehicles.GET("", h.GetVehicles)
		vehicles.POST("", h.CreateVehicle)
		vehicles.GET("/:id", h.GetVehicleByID)
		vehicles.PUT("/:id", h.UpdateVehicle)
		vehicles.DELETE("/:id", h.DeleteVehicle)
		vehicles.GET("/:id/documents", h.GetVehicleDocuments)

		// Vehicle documents
		documents := api.Group("/documents")
		documents.GET("", h.GetDocuments)
		documents.POST("", h.CreateDocument)
		documents.GET("/summary", h.GetDocumentSummary)
		documents.GET("/:id", h.GetDocumentByID)
		documents.PUT("/:id", h.UpdateDocument)
		documents.DELETE("/:id", h.DeleteDocument)

		// Reports
		reports := api.Group("/reports")
		reports.GET("/fleet", h.GetFleetReport)
		reports.GET("/fleet/pdf", h.GetFleetReportPDF)
	}

	return r
}
