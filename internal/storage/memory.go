package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fleet/internal/domain"
	"fleet/internal/domain/models"
	"fleet/internal/utils"
)

// vehiclesFile and documentsFile are the on-disk envelopes: the ordered
// records plus the monotonic id counter that survives deletion of the
// highest record, so ids are never reused.
type vehiclesFile struct {
	NextID  int64            `json:"nextId"`
	Records []models.Vehicle `json:"records"`
}

type documentsFile struct {
	NextID  int64                    `json:"nextId"`
	Records []models.VehicleDocument `json:"records"`
}

// MemoryStore keeps both collections in process memory and mirrors every
// mutation to the blob store. With no usable data directory it degrades to
// memory-only operation for the life of the process.
//
// The mirror is not safe to share between processes; the last flush wins.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs *BlobStore
	now   func() time.Time

	vehicles  []models.Vehicle
	documents []models.VehicleDocument
	nextVehID int64
	nextDocID int64
}

// OpenMemory builds the store and rehydrates both collections from dataDir.
func OpenMemory(dataDir string) *MemoryStore {
	s := &MemoryStore{
		now:       time.Now,
		nextVehID: 1,
		nextDocID: 1,
	}

	blobs, err := NewBlobStore(dataDir)
	if err != nil {
		utils.LogEvent("", "storage", "open", fmt.Sprintf("data dir unavailable, running memory-only: %v", err))
		return s
	}
	s.blobs = blobs
	s.loadVehicles()
	s.loadDocuments()
	return s
}

func (s *MemoryStore) loadVehicles() {
	var file vehiclesFile
	if err := s.blobs.Load(vehiclesBlob, &file); err != nil {
		// legacy dumps are a bare array of records
		var recs []models.Vehicle
		if err2 := s.blobs.Load(vehiclesBlob, &recs); err2 != nil {
			utils.LogEvent("", "storage", "load", fmt.Sprintf("vehicles blob unreadable, starting empty: %v", err))
			return
		}
		file.Records = recs
	}
	s.vehicles = file.Records
	s.nextVehID = file.NextID
	for _, v := range s.vehicles {
		if v.ID >= s.nextVehID {
			s.nextVehID = v.ID + 1
		}
	}
	if s.nextVehID < 1 {
		s.nextVehID = 1
	}
}

func (s *MemoryStore) loadDocuments() {
	var file documentsFile
	if err := s.blobs.Load(documentsBlob, &file); err != nil {
		var recs []models.VehicleDocument
		if err2 := s.blobs.Load(documentsBlob, &recs); err2 != nil {
			utils.LogEvent("", "storage", "load", fmt.Sprintf("documents blob unreadable, starting empty: %v", err))
			return
		}
		file.Records = recs
	}
	s.documents = file.Records
	s.nextDocID = file.NextID
	for _, d := range s.documents {
		if d.ID >= s.nextDocID {
			s.nextDocID = d.ID + 1
		}
	}
	if s.nextDocID < 1 {
		s.nextDocID = 1
	}
}

// persistVehicles flushes the whole collection. Callers hold the lock.
// A failed flush is logged and the in-memory state stays authoritative.
func (s *MemoryStore) persistVehicles() {
	if s.blobs == nil {
		return
	}
	file := vehiclesFile{NextID: s.nextVehID, Records: s.vehicles}
	if err := s.blobs.Save(vehiclesBlob, file); err != nil {
		utils.LogEvent("", "storage", "persist", fmt.Sprintf("vehicles flush failed: %v", err))
	}
}

func (s *MemoryStore) persistDocuments() {
	if s.blobs == nil {
		return
	}
	file := documentsFile{NextID: s.nextDocID, Records: s.documents}
	if err := s.blobs.Save(documentsBlob, file); err != nil {
		utils.LogEvent("", "storage", "persist", fmt.Sprintf("documents flush failed: %v", err))
	}
}

func (s *MemoryStore) Vehicles() VehicleRepository { return memVehicles{s} }

func (s *MemoryStore) Documents() DocumentRepository { return memDocuments{s} }

func (s *MemoryStore) Kind() string { return "memory" }

// Durable reports whether mutations reach the blob store.
func (s *MemoryStore) Durable() bool { return s.blobs != nil }

func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

// Close flushes both collections a final time.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persistVehicles()
	s.persistDocuments()
	return nil
}

type memVehicles struct {
	s *MemoryStore
}

func (r memVehicles) List(ctx context.Context) ([]models.Vehicle, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]models.Vehicle, len(r.s.vehicles))
	copy(out, r.s.vehicles)
	return out, nil
}

func (r memVehicles) GetByID(ctx context.Context, id int64) (models.Vehicle, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, v := range r.s.vehicles {
		if v.ID == id {
			return v, nil
		}
	}
	return models.Vehicle{}, domain.NotFoundError{Resource: "vehicle"}
}

func (r memVehicles) Create(ctx context.Context, in models.NewVehicle) (models.Vehicle, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	v := in.Vehicle()
	v.ID = r.s.nextVehID
	r.s.nextVehID++
	now := r.s.now()
	v.CreatedAt = now
	v.UpdatedAt = now

	r.s.vehicles = append(r.s.vehicles, v)
	r.s.persistVehicles()
	return v, nil
}

func (r memVehicles) Update(ctx context.Context, id int64, patch models.VehiclePatch) (models.Vehicle, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.vehicles {
		if r.s.vehicles[i].ID != id {
			continue
		}
		v := r.s.vehicles[i]
		patch.Apply(&v)
		v.UpdatedAt = r.s.now()
		r.s.vehicles[i] = v
		r.s.persistVehicles()
		return v, nil
	}
	return models.Vehicle{}, domain.NotFoundError{Resource: "vehicle"}
}

func (r memVehicles) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.vehicles {
		if r.s.vehicles[i].ID != id {
			continue
		}
		r.s.vehicles = append(r.s.vehicles[:i], r.s.vehicles[i+1:]...)
		r.s.persistVehicles()
		return nil
	}
	return domain.NotFoundError{Resource: "vehicle"}
}

type memDocuments struct {
	s *MemoryStore
}

func (r memDocuments) List(ctx context.Context) ([]models.VehicleDocument, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]models.VehicleDocument, len(r.s.documents))
	copy(out, r.s.documents)
	return out, nil
}

func (r memDocuments) GetByID(ctx context.Context, id int64) (models.VehicleDocument, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, d := range r.s.documents {
		if d.ID == id {
			return d, nil
		}
	}
	return models.VehicleDocument{}, domain.NotFoundError{Resource: "document"}
}

// ListByVehicleID returns the documents referencing vehicleID in insertion
// order. The vehicle itself is not required to exist.
func (r memDocuments) ListByVehicleID(ctx context.Context, vehicleID int64) ([]models.VehicleDocument, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []models.VehicleDocument{}
	for _, d := range r.s.documents {
		if d.VehicleID == vehicleID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r memDocuments) Create(ctx context.Context, in models.NewVehicleDocument) (models.VehicleDocument, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d := in.Document()
	d.ID = r.s.nextDocID
	r.s.nextDocID++
	d.UploadedAt = r.s.now()

	r.s.documents = append(r.s.documents, d)
	r.s.persistDocuments()
	return d, nil
}

func (r memDocuments) Update(ctx context.Context, id int64, patch models.DocumentPatch) (models.VehicleDocument, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.documents {
		if r.s.documents[i].ID != id {
			continue
		}
		d := r.s.documents[i]
		patch.Apply(&d)
		r.s.documents[i] = d
		r.s.persistDocuments()
		return d, nil
	}
	return models.VehicleDocument{}, domain.NotFoundError{Resource: "document"}
}

func (r memDocuments) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.documents {
		if r.s.documents[i].ID != id {
			continue
		}
		r.s.documents = append(r.s.documents[:i], r.s.documents[i+1:]...)
		r.s.persistDocuments()
		return nil
	}
	return domain.NotFoundError{Resource: "document"}
}
