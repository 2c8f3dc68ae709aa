package storage

import (
	"context"

	"fleet/internal/config"
	"fleet/internal/domain/models"
)

// VehicleRepository owns CRUD access and id/timestamp invariants for the
// vehicle collection.
type VehicleRepository interface {
	List(ctx context.Context) ([]models.Vehicle, error)
	GetByID(ctx context.Context, id int64) (models.Vehicle, error)
	Create(ctx context.Context, in models.NewVehicle) (models.Vehicle, error)
	Update(ctx context.Context, id int64, patch models.VehiclePatch) (models.Vehicle, error)
	Delete(ctx context.Context, id int64) error
}

// DocumentRepository owns CRUD access for vehicle documents. UploadedAt is
// set once at create; updates never touch it.
type DocumentRepository interface {
	List(ctx context.Context) ([]models.VehicleDocument, error)
	GetByID(ctx context.Context, id int64) (models.VehicleDocument, error)
	ListByVehicleID(ctx context.Context, vehicleID int64) ([]models.VehicleDocument, error)
	Create(ctx context.Context, in models.NewVehicleDocument) (models.VehicleDocument, error)
	Update(ctx context.Context, id int64, patch models.DocumentPatch) (models.VehicleDocument, error)
	Delete(ctx context.Context, id int64) error
}

// Store is the storage backend contract. Two implementations exist: the
// default file-mirrored in-memory store and a MySQL store selected by
// DATABASE_DSN. Callers never branch on which one is active.
type Store interface {
	Vehicles() VehicleRepository
	Documents() DocumentRepository
	Kind() string
	Ping(ctx context.Context) error
	Close() error
}

// Open selects the backend from configuration.
func Open(env config.Env) (Store, error) {
	if env.DatabaseDSN != "" {
		return OpenMySQL(env.DatabaseDSN)
	}
	return OpenMemory(env.DataDir), nil
}
