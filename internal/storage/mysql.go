package storage

import (
	"context"
	"database/sql"
	"time"

	"fleet/internal/domain"
	"fleet/internal/domain/models"

	_ "github.com/go-sql-driver/mysql"
)

// SQLStore implements Store on MySQL. It is selected by DATABASE_DSN; the
// DSN must carry parseTime=true so DATE/DATETIME columns scan into
// time.Time.
type SQLStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenMySQL opens the connection pool, verifies it, and bootstraps the
// schema.
func OpenMySQL(dsn string) (*SQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, domain.UnavailableError{Msg: "cannot open database", Err: err}
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(10 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, domain.UnavailableError{Msg: "cannot reach database", Err: err}
	}

	s := &SQLStore{db: db, now: time.Now}
	if err := s.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) ensureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS vehicles (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			registration_number VARCHAR(50) NOT NULL,
			manufacturer VARCHAR(50) NOT NULL,
			model VARCHAR(50) NOT NULL,
			year INT NOT NULL DEFAULT 0,
			vehicle_type VARCHAR(30) NOT NULL,
			fuel_type VARCHAR(20) NULL,
			capacity VARCHAR(50) NULL,
			owner VARCHAR(50) NULL,
			fleet_manager VARCHAR(50) NULL,
			insurance_expiry DATE NULL,
			registration_expiry DATE NULL,
			remark TEXT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'active',
			location VARCHAR(100) NULL,
			fuel_level INT NOT NULL DEFAULT 100,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		// vehicle_id is deliberately unconstrained; the reference is
		// advisory and deletes do not cascade.
		`CREATE TABLE IF NOT EXISTS vehicle_documents (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			vehicle_id BIGINT NOT NULL,
			document_type VARCHAR(50) NOT NULL,
			document_name VARCHAR(100) NOT NULL,
			document_url VARCHAR(255) NULL,
			expiry_date DATE NULL,
			uploaded_at DATETIME NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return domain.InternalError{Msg: "schema bootstrap failed", Err: err}
		}
	}
	return nil
}

func (s *SQLStore) Vehicles() VehicleRepository { return sqlVehicles{s} }

func (s *SQLStore) Documents() DocumentRepository { return sqlDocuments{s} }

func (s *SQLStore) Kind() string { return "mysql" }

func (s *SQLStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return domain.UnavailableError{Msg: "cannot reach database", Err: err}
	}
	return nil
}

func (s *SQLStore) Close() error { return s.db.Close() }

const vehicleColumns = `id, registration_number, manufacturer, model, year, vehicle_type,
	fuel_type, capacity, owner, fleet_manager, insurance_expiry, registration_expiry,
	remark, status, location, fuel_level, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVehicle(sc rowScanner) (models.Vehicle, error) {
	var v models.Vehicle
	var fuelType, capacity, owner, fleetManager, remark, location sql.NullString
	var insurance, registration sql.NullTime
	err := sc.Scan(
		&v.ID,
		&v.RegistrationNumber,
		&v.Manufacturer,
		&v.Model,
		&v.Year,
		&v.VehicleType,
		&fuelType,
		&capacity,
		&owner,
		&fleetManager,
		&insurance,
		&registration,
		&remark,
		&v.Status,
		&location,
		&v.FuelLevel,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return models.Vehicle{}, err
	}
	v.FuelType = fuelType.String
	v.Capacity = capacity.String
	v.Owner = owner.String
	v.FleetManager = fleetManager.String
	v.Remark = remark.String
	v.Location = location.String
	if insurance.Valid {
		v.InsuranceExpiry = models.NewDate(insurance.Time)
	}
	if registration.Valid {
		v.RegistrationExpiry = models.NewDate(registration.Time)
	}
	return v, nil
}

// dateArg maps a zero Date to SQL NULL.
func dateArg(d models.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.Time
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

type sqlVehicles struct {
	s *SQLStore
}

func (r sqlVehicles) List(ctx context.Context) ([]models.Vehicle, error) {
	rows, err := r.s.db.QueryContext(ctx, `SELECT `+vehicleColumns+` FROM vehicles ORDER BY id ASC`)
	if err != nil {
		return nil, domain.InternalError{Msg: "vehicle list query failed", Err: err}
	}
	defer rows.Close()

	list := []models.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, domain.InternalError{Msg: "vehicle scan failed", Err: err}
		}
		list = append(list, v)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Msg: "vehicle rows iteration failed", Err: err}
	}
	return list, nil
}

func (r sqlVehicles) GetByID(ctx context.Context, id int64) (models.Vehicle, error) {
	row := r.s.db.QueryRowContext(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = ?`, id)
	v, err := scanVehicle(row)
	if err == sql.ErrNoRows {
		return models.Vehicle{}, domain.NotFoundError{Resource: "vehicle"}
	}
	if err != nil {
		return models.Vehicle{}, domain.InternalError{Msg: "vehicle lookup failed", Err: err}
	}
	return v, nil
}

func (r sqlVehicles) Create(ctx context.Context, in models.NewVehicle) (models.Vehicle, error) {
	v := in.Vehicle()
	now := r.s.now()
	v.CreatedAt = now
	v.UpdatedAt = now

	res, err := r.s.db.ExecContext(ctx, `
		INSERT INTO vehicles (registration_number, manufacturer, model, year, vehicle_type,
			fuel_type, capacity, owner, fleet_manager, insurance_expiry, registration_expiry,
			remark, status, location, fuel_level, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.RegistrationNumber, v.Manufacturer, v.Model, v.Year, v.VehicleType,
		nullIfEmpty(v.FuelType), nullIfEmpty(v.Capacity), nullIfEmpty(v.Owner),
		nullIfEmpty(v.FleetManager), dateArg(v.InsuranceExpiry), dateArg(v.RegistrationExpiry),
		nullIfEmpty(v.Remark), v.Status, nullIfEmpty(v.Location), v.FuelLevel,
		v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return models.Vehicle{}, domain.InternalError{Msg: "vehicle insert failed", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Vehicle{}, domain.InternalError{Msg: "vehicle id retrieval failed", Err: err}
	}
	v.ID = id
	return v, nil
}

func (r sqlVehicles) Update(ctx context.Context, id int64, patch models.VehiclePatch) (models.Vehicle, error) {
	v, err := r.GetByID(ctx, id)
	if err != nil {
		return models.Vehicle{}, err
	}
	patch.Apply(&v)
	v.UpdatedAt = r.s.now()

	_, err = r.s.db.ExecContext(ctx, `
		UPDATE vehicles SET registration_number = ?, manufacturer = ?, model = ?, year = ?,
			vehicle_type = ?, fuel_type = ?, capacity = ?, owner = ?, fleet_manager = ?,
			insurance_expiry = ?, registration_expiry = ?, remark = ?, status = ?,
			location = ?, fuel_level = ?, updated_at = ?
		WHERE id = ?`,
		v.RegistrationNumber, v.Manufacturer, v.Model, v.Year, v.VehicleType,
		nullIfEmpty(v.FuelType), nullIfEmpty(v.Capacity), nullIfEmpty(v.Owner),
		nullIfEmpty(v.FleetManager), dateArg(v.InsuranceExpiry), dateArg(v.RegistrationExpiry),
		nullIfEmpty(v.Remark), v.Status, nullIfEmpty(v.Location), v.FuelLevel,
		v.UpdatedAt, id,
	)
	if err != nil {
		return models.Vehicle{}, domain.InternalError{Msg: "vehicle update failed", Err: err}
	}
	return v, nil
}

func (r sqlVehicles) Delete(ctx context.Context, id int64) error {
	res, err := r.s.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = ?`, id)
	if err != nil {
		return domain.InternalError{Msg: "vehicle delete failed", Err: err}
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return domain.NotFoundError{Resource: "vehicle"}
	}
	return nil
}

const documentColumns = `id, vehicle_id, document_type, document_name, document_url, expiry_date, uploaded_at`

func scanDocument(sc rowScanner) (models.VehicleDocument, error) {
	var d models.VehicleDocument
	var url sql.NullString
	var expiry sql.NullTime
	err := sc.Scan(&d.ID, &d.VehicleID, &d.DocumentType, &d.DocumentName, &url, &expiry, &d.UploadedAt)
	if err != nil {
		return models.VehicleDocument{}, err
	}
	d.DocumentURL = url.String
	if expiry.Valid {
		d.ExpiryDate = models.NewDate(expiry.Time)
	}
	return d, nil
}

type sqlDocuments struct {
	s *SQLStore
}

func (r sqlDocuments) List(ctx context.Context) ([]models.VehicleDocument, error) {
	return r.listWhere(ctx, ``, nil)
}

func (r sqlDocuments) ListByVehicleID(ctx context.Context, vehicleID int64) ([]models.VehicleDocument, error) {
	return r.listWhere(ctx, ` WHERE vehicle_id = ?`, []any{vehicleID})
}

func (r sqlDocuments) listWhere(ctx context.Context, where string, args []any) ([]models.VehicleDocument, error) {
	rows, err := r.s.db.QueryContext(ctx, `SELECT `+documentColumns+` FROM vehicle_documents`+where+` ORDER BY id ASC`, args...)
	if err != nil {
		return nil, domain.InternalError{Msg: "document list query failed", Err: err}
	}
	defer rows.Close()

	list := []models.VehicleDocument{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, domain.InternalError{Msg: "document scan failed", Err: err}
		}
		list = append(list, d)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Msg: "document rows iteration failed", Err: err}
	}
	return list, nil
}

func (r sqlDocuments) GetByID(ctx context.Context, id int64) (models.VehicleDocument, error) {
	row := r.s.db.QueryRowContext(ctx, `SELECT `+documentColumns+` FROM vehicle_documents WHERE id = ?`, id)
	d, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return models.VehicleDocument{}, domain.NotFoundError{Resource: "document"}
	}
	if err != nil {
		return models.VehicleDocument{}, domain.InternalError{Msg: "document lookup failed", Err: err}
	}
	return d, nil
}

func (r sqlDocuments) Create(ctx context.Context, in models.NewVehicleDocument) (models.VehicleDocument, error) {
	d := in.Document()
	d.UploadedAt = r.s.now()

	res, err := r.s.db.ExecContext(ctx, `
		INSERT INTO vehicle_documents (vehicle_id, document_type, document_name, document_url, expiry_date, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		d.VehicleID, d.DocumentType, d.DocumentName, nullIfEmpty(d.DocumentURL),
		dateArg(d.ExpiryDate), d.UploadedAt,
	)
	if err != nil {
		return models.VehicleDocument{}, domain.InternalError{Msg: "document insert failed", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.VehicleDocument{}, domain.InternalError{Msg: "document id retrieval failed", Err: err}
	}
	d.ID = id
	return d, nil
}

func (r sqlDocuments) Update(ctx context.Context, id int64, patch models.DocumentPatch) (models.VehicleDocument, error) {
	d, err := r.GetByID(ctx, id)
	if err != nil {
		return models.VehicleDocument{}, err
	}
	patch.Apply(&d)

	_, err = r.s.db.ExecContext(ctx, `
		UPDATE vehicle_documents SET vehicle_id = ?, document_type = ?, document_name = ?,
			document_url = ?, expiry_date = ?
		WHERE id = ?`,
		d.VehicleID, d.DocumentType, d.DocumentName, nullIfEmpty(d.DocumentURL),
		dateArg(d.ExpiryDate), id,
	)
	if err != nil {
		return models.VehicleDocument{}, domain.InternalError{Msg: "document update failed", Err: err}
	}
	return d, nil
}

func (r sqlDocuments) Delete(ctx context.Context, id int64) error {
	res, err := r.s.db.ExecContext(ctx, `DELETE FROM vehicle_documents WHERE id = ?`, id)
	if err != nil {
		return domain.InternalError{Msg: "document delete failed", Err: err}
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return domain.NotFoundError{Resource: "document"}
	}
	return nil
}
