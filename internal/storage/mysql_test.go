package storage

import (
	"context"
	"testing"
	"time"

	"fleet/internal/domain"
	"fleet/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newTestSQLStore(t *testing.T) (*SQLStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return &SQLStore{db: db, now: func() time.Time { return fixed }}, mock
}

func vehicleRowColumns() []string {
	return []string{
		"id", "registration_number", "manufacturer", "model", "year", "vehicle_type",
		"fuel_type", "capacity", "owner", "fleet_manager", "insurance_expiry",
		"registration_expiry", "remark", "status", "location", "fuel_level",
		"created_at", "updated_at",
	}
}

func TestSQLVehicleCreate(t *testing.T) {
	s, mock := newTestSQLStore(t)

	mock.ExpectExec("INSERT INTO vehicles").
		WillReturnResult(sqlmock.NewResult(7, 1))

	v, err := s.Vehicles().Create(context.Background(), models.NewVehicle{
		RegistrationNumber: "AB-123",
		Manufacturer:       "Ford",
		Model:              "Transit",
		VehicleType:        "Van",
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if v.ID != 7 {
		t.Fatalf("id should come from AUTO_INCREMENT, got %d", v.ID)
	}
	if v.Status != models.VehicleStatusActive || v.FuelLevel != models.DefaultFuelLevel {
		t.Fatalf("defaults not applied: %+v", v)
	}
	if !v.UpdatedAt.Equal(v.CreatedAt) {
		t.Fatalf("timestamps differ on create")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLVehicleGetByIDNotFound(t *testing.T) {
	s, mock := newTestSQLStore(t)

	mock.ExpectQuery("FROM vehicles WHERE id").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(vehicleRowColumns()))

	_, err := s.Vehicles().GetByID(context.Background(), 99)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestSQLVehicleUpdateMerges(t *testing.T) {
	s, mock := newTestSQLStore(t)
	created := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM vehicles WHERE id").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(vehicleRowColumns()).
			AddRow(3, "AB-123", "Ford", "Transit", 2022, "Van",
				nil, nil, nil, nil, nil, nil, nil, "active", nil, 100,
				created, created))
	mock.ExpectExec("UPDATE vehicles SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	status := models.VehicleStatusMaintenance
	v, err := s.Vehicles().Update(context.Background(), 3, models.VehiclePatch{Status: &status})
	if err != nil {
		t.Fatalf("update error: %v", err)
	}
	if v.Status != models.VehicleStatusMaintenance {
		t.Fatalf("patch not applied: %+v", v)
	}
	if v.RegistrationNumber != "AB-123" || v.Model != "Transit" {
		t.Fatalf("unpatched fields changed: %+v", v)
	}
	if !v.UpdatedAt.After(created) {
		t.Fatalf("updatedAt not refreshed: %v", v.UpdatedAt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLVehicleDeleteNotFound(t *testing.T) {
	s, mock := newTestSQLStore(t)

	mock.ExpectExec("DELETE FROM vehicles").
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.Vehicles().Delete(context.Background(), 42); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestSQLDocumentListByVehicleID(t *testing.T) {
	s, mock := newTestSQLStore(t)
	uploaded := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	expiry := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	cols := []string{"id", "vehicle_id", "document_type", "document_name", "document_url", "expiry_date", "uploaded_at"}
	mock.ExpectQuery("FROM vehicle_documents WHERE vehicle_id").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(1, 3, "Insurance", "Insurance - AB-123", nil, expiry, uploaded).
			AddRow(2, 3, "Permit", "Permit - AB-123", "/docs/permit.pdf", nil, uploaded))

	docs, err := s.Documents().ListByVehicleID(context.Background(), 3)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].ExpiryDate.IsZero() || docs[0].ExpiryDate.String() != "2026-09-01" {
		t.Fatalf("expiry date not scanned: %+v", docs[0])
	}
	if !docs[1].ExpiryDate.IsZero() {
		t.Fatalf("NULL expiry should stay zero: %+v", docs[1])
	}
	if docs[1].DocumentURL != "/docs/permit.pdf" {
		t.Fatalf("document url not scanned: %+v", docs[1])
	}
}

func TestSQLDocumentCreate(t *testing.T) {
	s, mock := newTestSQLStore(t)

	mock.ExpectExec("INSERT INTO vehicle_documents").
		WillReturnResult(sqlmock.NewResult(11, 1))

	d, err := s.Documents().Create(context.Background(), models.NewVehicleDocument{
		VehicleID:    3,
		DocumentType: "Insurance",
		DocumentName: "Insurance - AB-123",
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if d.ID != 11 {
		t.Fatalf("id should come from AUTO_INCREMENT, got %d", d.ID)
	}
	if d.UploadedAt.IsZero() {
		t.Fatalf("uploadedAt not set")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
