package models

import (
	"strings"
	"time"
)

// VehicleDocument is a certificate or paper attached to a vehicle. The
// vehicleId reference is advisory only; it is never validated against the
// vehicle collection and deleting a vehicle leaves its documents behind.
type VehicleDocument struct {
	ID           int64     `json:"id"`
	VehicleID    int64     `json:"vehicleId"`
	DocumentType string    `json:"documentType"`
	DocumentName string    `json:"documentName"`
	DocumentURL  string    `json:"documentUrl,omitempty"`
	ExpiryDate   Date      `json:"expiryDate"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

type NewVehicleDocument struct {
	VehicleID    int64  `json:"vehicleId" binding:"required"`
	DocumentType string `json:"documentType" binding:"required"`
	DocumentName string `json:"documentName" binding:"required"`
	DocumentURL  string `json:"documentUrl"`
	ExpiryDate   Date   `json:"expiryDate"`
}

func (in NewVehicleDocument) Document() VehicleDocument {
	return VehicleDocument{
		VehicleID:    in.VehicleID,
		DocumentType: strings.TrimSpace(in.DocumentType),
		DocumentName: strings.TrimSpace(in.DocumentName),
		DocumentURL:  strings.TrimSpace(in.DocumentURL),
		ExpiryDate:   in.ExpiryDate,
	}
}

// DocumentPatch carries a partial update. UploadedAt is set once at create
// and is deliberately not patchable.
type DocumentPatch struct {
	VehicleID    *int64  `json:"vehicleId"`
	DocumentType *string `json:"documentType"`
	DocumentName *string `json:"documentName"`
	DocumentURL  *string `json:"documentUrl"`
	ExpiryDate   *Date   `json:"expiryDate"`
}

func (p DocumentPatch) Apply(d *VehicleDocument) {
	if p.VehicleID != nil {
		d.VehicleID = *p.VehicleID
	}
	if p.DocumentType != nil {
		d.DocumentType = strings.TrimSpace(*p.DocumentType)
	}
	if p.DocumentName != nil {
		d.DocumentName = strings.TrimSpace(*p.DocumentName)
	}
	if p.DocumentURL != nil {
		d.DocumentURL = strings.TrimSpace(*p.DocumentURL)
	}
	if p.ExpiryDate != nil {
		d.ExpiryDate = *p.ExpiryDate
	}
}
