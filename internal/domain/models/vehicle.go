package models

import (
	"strings"
	"time"
)

// Vehicle statuses.
const (
	VehicleStatusActive      = "active"
	VehicleStatusMaintenance = "maintenance"
	VehicleStatusInactive    = "inactive"
)

const DefaultFuelLevel = 100

type Vehicle struct {
	ID                 int64     `json:"id"`
	RegistrationNumber string    `json:"registrationNumber"`
	Manufacturer       string    `json:"manufacturer"`
	Model              string    `json:"model"`
	Year               int       `json:"year"`
	VehicleType        string    `json:"vehicleType"`
	FuelType           string    `json:"fuelType,omitempty"`
	Capacity           string    `json:"capacity,omitempty"`
	Owner              string    `json:"owner,omitempty"`
	FleetManager       string    `json:"fleetManager,omitempty"`
	InsuranceExpiry    Date      `json:"insuranceExpiry"`
	RegistrationExpiry Date      `json:"registrationExpiry"`
	Remark             string    `json:"remark,omitempty"`
	Status             string    `json:"status"`
	Location           string    `json:"location,omitempty"`
	FuelLevel          int       `json:"fuelLevel"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// NewVehicle is the create payload. Id and timestamps are assigned by the
// repository; status and fuelLevel fall back to defaults when absent.
type NewVehicle struct {
	RegistrationNumber string `json:"registrationNumber" binding:"required"`
	Manufacturer       string `json:"manufacturer" binding:"required"`
	Model              string `json:"model" binding:"required"`
	Year               int    `json:"year"`
	VehicleType        string `json:"vehicleType" binding:"required"`
	FuelType           string `json:"fuelType"`
	Capacity           string `json:"capacity"`
	Owner              string `json:"owner"`
	FleetManager       string `json:"fleetManager"`
	InsuranceExpiry    Date   `json:"insuranceExpiry"`
	RegistrationExpiry Date   `json:"registrationExpiry"`
	Remark             string `json:"remark"`
	Status             string `json:"status"`
	Location           string `json:"location"`
	FuelLevel          *int   `json:"fuelLevel"`
}

// Vehicle builds the record to store, applying defaults. Id and timestamps
// stay zero for the repository to fill in.
func (in NewVehicle) Vehicle() Vehicle {
	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = VehicleStatusActive
	}
	fuel := DefaultFuelLevel
	if in.FuelLevel != nil {
		fuel = *in.FuelLevel
	}
	return Vehicle{
		RegistrationNumber: strings.TrimSpace(in.RegistrationNumber),
		Manufacturer:       strings.TrimSpace(in.Manufacturer),
		Model:              strings.TrimSpace(in.Model),
		Year:               in.Year,
		VehicleType:        strings.TrimSpace(in.VehicleType),
		FuelType:           strings.TrimSpace(in.FuelType),
		Capacity:           strings.TrimSpace(in.Capacity),
		Owner:              strings.TrimSpace(in.Owner),
		FleetManager:       strings.TrimSpace(in.FleetManager),
		InsuranceExpiry:    in.InsuranceExpiry,
		RegistrationExpiry: in.RegistrationExpiry,
		Remark:             strings.TrimSpace(in.Remark),
		Status:             status,
		Location:           strings.TrimSpace(in.Location),
		FuelLevel:          fuel,
	}
}

// VehiclePatch carries a partial update; only non-nil fields are applied.
// Merging is shallow and last-write-wins.
type VehiclePatch struct {
	RegistrationNumber *string `json:"registrationNumber"`
	Manufacturer       *string `json:"manufacturer"`
	Model              *string `json:"model"`
	Year               *int    `json:"year"`
	VehicleType        *string `json:"vehicleType"`
	FuelType           *string `json:"fuelType"`
	Capacity           *string `json:"capacity"`
	Owner              *string `json:"owner"`
	FleetManager       *string `json:"fleetManager"`
	InsuranceExpiry    *Date   `json:"insuranceExpiry"`
	RegistrationExpiry *Date   `json:"registrationExpiry"`
	Remark             *string `json:"remark"`
	Status             *string `json:"status"`
	Location           *string `json:"location"`
	FuelLevel          *int    `json:"fuelLevel"`
}

func (p VehiclePatch) Apply(v *Vehicle) {
	if p.RegistrationNumber != nil {
		v.RegistrationNumber = strings.TrimSpace(*p.RegistrationNumber)
	}
	if p.Manufacturer != nil {
		v.Manufacturer = strings.TrimSpace(*p.Manufacturer)
	}
	if p.Model != nil {
		v.Model = strings.TrimSpace(*p.Model)
	}
	if p.Year != nil {
		v.Year = *p.Year
	}
	if p.VehicleType != nil {
		v.VehicleType = strings.TrimSpace(*p.VehicleType)
	}
	if p.FuelType != nil {
		v.FuelType = strings.TrimSpace(*p.FuelType)
	}
	if p.Capacity != nil {
		v.Capacity = strings.TrimSpace(*p.Capacity)
	}
	if p.Owner != nil {
		v.Owner = strings.TrimSpace(*p.Owner)
	}
	if p.FleetManager != nil {
		v.FleetManager = strings.TrimSpace(*p.FleetManager)
	}
	if p.InsuranceExpiry != nil {
		v.InsuranceExpiry = *p.InsuranceExpiry
	}
	if p.RegistrationExpiry != nil {
		v.RegistrationExpiry = *p.RegistrationExpiry
	}
	if p.Remark != nil {
		v.Remark = strings.TrimSpace(*p.Remark)
	}
	if p.Status != nil {
		v.Status = strings.TrimSpace(*p.Status)
	}
	if p.Location != nil {
		v.Location = strings.TrimSpace(*p.Location)
	}
	if p.FuelLevel != nil {
		v.FuelLevel = *p.FuelLevel
	}
}
