package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"fleet/internal/domain/models"
	"fleet/internal/storage"
	"fleet/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// FleetReport is the reports dashboard summary.
type FleetReport struct {
	TotalVehicles       int       `json:"totalVehicles"`
	ActiveVehicles      int       `json:"activeVehicles"`
	MaintenanceVehicles int       `json:"maintenanceVehicles"`
	InactiveVehicles    int       `json:"inactiveVehicles"`
	AverageFuelLevel    int       `json:"averageFuelLevel"`
	TotalDocuments      int       `json:"totalDocuments"`
	ExpiringDocuments   int       `json:"expiringDocuments"`
	ExpiredDocuments    int       `json:"expiredDocuments"`
	GeneratedAt         time.Time `json:"generatedAt"`
}

// ReportsService aggregates fleet-wide statistics and renders the PDF
// export.
type ReportsService struct {
	Store     storage.Store
	RequestID string
	Now       func() time.Time
}

func (s ReportsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s ReportsService) FleetReport(ctx context.Context) (FleetReport, error) {
	vehicles, err := s.Store.Vehicles().List(ctx)
	if err != nil {
		return FleetReport{}, err
	}
	docs, err := s.Store.Documents().List(ctx)
	if err != nil {
		return FleetReport{}, err
	}
	utils.LogEvent(s.RequestID, "reports", "fleet_report", fmt.Sprintf("vehicles=%d documents=%d", len(vehicles), len(docs)))
	return buildFleetReport(vehicles, docs, s.now()), nil
}

func buildFleetReport(vehicles []models.Vehicle, docs []models.VehicleDocument, now time.Time) FleetReport {
	rep := FleetReport{
		TotalVehicles:  len(vehicles),
		TotalDocuments: len(docs),
		GeneratedAt:    now,
	}

	fuelSum := 0
	for _, v := range vehicles {
		switch v.Status {
		case models.VehicleStatusActive:
			rep.ActiveVehicles++
		case models.VehicleStatusMaintenance:
			rep.MaintenanceVehicles++
		case models.VehicleStatusInactive:
			rep.InactiveVehicles++
		}
		fuelSum += v.FuelLevel
	}
	if len(vehicles) > 0 {
		rep.AverageFuelLevel = int(float64(fuelSum)/float64(len(vehicles)) + 0.5)
	}

	for _, d := range docs {
		status, _ := DeriveDocumentStatus(d, now)
		switch status {
		case DocStatusExpiring:
			rep.ExpiringDocuments++
		case DocStatusExpired:
			rep.ExpiredDocuments++
		}
	}
	return rep
}

// FleetReportPDF renders the summary as a downloadable PDF.
func (s ReportsService) FleetReportPDF(ctx context.Context) ([]byte, string, error) {
	rep, err := s.FleetReport(ctx)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "reports", "fleet_report_pdf", "rendering")
	return buildFleetReportPDF(rep)
}

func buildFleetReportPDF(rep FleetReport) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Fleet Report", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "FLEET REPORT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Generated        : %s", utils.FormatDateTime(rep.GeneratedAt)),
		fmt.Sprintf("Total vehicles   : %d", rep.TotalVehicles),
		fmt.Sprintf("Active           : %d", rep.ActiveVehicles),
		fmt.Sprintf("In maintenance   : %d", rep.MaintenanceVehicles),
		fmt.Sprintf("Inactive         : %d", rep.InactiveVehicles),
		fmt.Sprintf("Avg fuel level   : %d%%", rep.AverageFuelLevel),
		fmt.Sprintf("Total documents  : %d", rep.TotalDocuments),
		fmt.Sprintf("Expiring (30d)   : %d", rep.ExpiringDocuments),
		fmt.Sprintf("Expired          : %d", rep.ExpiredDocuments),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Document counts use the 30-day expiry window; statuses are derived at generation time.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("FLEET_REPORT_%s.pdf", utils.FormatDate(rep.GeneratedAt))
	return buf.Bytes(), filename, nil
}
