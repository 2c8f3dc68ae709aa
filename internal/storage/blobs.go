package storage

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Blob names mirror the storage keys of the browser build of this app, so
// an exported dump can be dropped into the data dir as-is.
const (
	vehiclesBlob  = "fleet_vehicles.json"
	documentsBlob = "fleet_vehicle_documents.json"
)

// BlobStore keeps one JSON file per collection under a data directory.
// Writes always serialize the full collection; there is no incremental
// format and no version tag.
type BlobStore struct {
	dir string
}

// NewBlobStore prepares the data directory. An error means durable storage
// is unavailable in this context; callers degrade to memory-only.
func NewBlobStore(dir string) (*BlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &BlobStore{dir: dir}, nil
}

// Load reads the named blob into v. A missing blob is not an error; v is
// left untouched.
func (b *BlobStore) Load(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(b.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, v)
}

// Save overwrites the named blob with the serialized value.
func (b *BlobStore) Save(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(b.dir, name), data, 0o644)
}
