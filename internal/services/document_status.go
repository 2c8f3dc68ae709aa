package services

import (
	"math"
	"time"

	"fleet/internal/domain/models"
)

// Document lifecycle states, derived at read time and never persisted.
const (
	DocStatusActive   = "active"
	DocStatusExpiring = "expiring"
	DocStatusExpired  = "expired"
)

// ExpiringWindowDays is how far ahead a document counts as "expiring".
const ExpiringWindowDays = 30

// DeriveDocumentStatus classifies a document against the current moment.
// A document without an expiry date is always active and reports zero
// days. Otherwise days is ceil((expiry - now) / 24h): negative means
// expired, within the window means expiring.
func DeriveDocumentStatus(doc models.VehicleDocument, now time.Time) (status string, daysUntilExpiry int) {
	if doc.ExpiryDate.IsZero() {
		return DocStatusActive, 0
	}
	days := int(math.Ceil(doc.ExpiryDate.Sub(now).Hours() / 24))
	switch {
	case days < 0:
		return DocStatusExpired, days
	case days <= ExpiringWindowDays:
		return DocStatusExpiring, days
	default:
		return DocStatusActive, days
	}
}

// EnrichedDocument is the display view of a document: the stored record
// plus the derived status and the owning vehicle's plate.
type EnrichedDocument struct {
	models.VehicleDocument
	VehiclePlate    string `json:"vehiclePlate"`
	Status          string `json:"status"`
	DaysUntilExpiry int    `json:"daysUntilExpiry"`
}

// EnrichDocuments joins vehicle registration numbers onto documents and
// derives each document's status. Documents pointing at a missing vehicle
// get the "Unknown" placeholder. Stored data is not mutated.
func EnrichDocuments(docs []models.VehicleDocument, vehicles []models.Vehicle, now time.Time) []EnrichedDocument {
	plates := make(map[int64]string, len(vehicles))
	for _, v := range vehicles {
		plates[v.ID] = v.RegistrationNumber
	}

	out := make([]EnrichedDocument, 0, len(docs))
	for _, d := range docs {
		plate, ok := plates[d.VehicleID]
		if !ok {
			plate = "Unknown"
		}
		status, days := DeriveDocumentStatus(d, now)
		out = append(out, EnrichedDocument{
			VehicleDocument: d,
			VehiclePlate:    plate,
			Status:          status,
			DaysUntilExpiry: days,
		})
	}
	return out
}

// DocumentSummary is the header counts of the documents page.
type DocumentSummary struct {
	Total    int `json:"total"`
	Valid    int `json:"valid"`
	Expiring int `json:"expiring"`
	Expired  int `json:"expired"`
}

func SummarizeDocuments(docs []EnrichedDocument) DocumentSummary {
	sum := DocumentSummary{Total: len(docs)}
	for _, d := range docs {
		switch d.Status {
		case DocStatusActive:
			sum.Valid++
		case DocStatusExpiring:
			sum.Expiring++
		case DocStatusExpired:
			sum.Expired++
		}
	}
	return sum
}
