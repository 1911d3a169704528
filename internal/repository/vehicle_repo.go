package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"rentaride/internal/db"
)

type VehicleStore interface {
	ListAvailable(vehicleType, search string) ([]db.Vehicle, error)
	ByID(id int) (*db.Vehicle, error)
	ByIDs(ids []int) ([]db.Vehicle, error)
}

type VehicleRepository struct {
	DB *sql.DB
}

func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{DB: db}
}

const vehicleColumns = `id, name, model, vehicle_type, mileage, price_per_day, image_url, is_available, created_at`

// ListAvailable returns available vehicles, optionally narrowed by type and by a
// case-insensitive substring match on name or model.
func (r *VehicleRepository) ListAvailable(vehicleType, search string) ([]db.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE is_available = TRUE`
	args := []interface{}{}
	idx := 1

	if vehicleType != "" {
		query += fmt.Sprintf(" AND vehicle_type = $%d", idx)
		args = append(args, vehicleType)
		idx++
	}
	if search != "" {
		query += fmt.Sprintf(" AND (name ILIKE $%d OR model ILIKE $%d)", idx, idx)
		args = append(args, "%"+search+"%")
		idx++
	}
	query += " ORDER BY id"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying available vehicles: %w", err)
	}
	defer rows.Close()
	return scanVehicles(rows)
}

func (r *VehicleRepository) ByID(id int) (*db.Vehicle, error) {
	var v db.Vehicle
	err := r.DB.QueryRow(`SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id).Scan(
		&v.ID, &v.Name, &v.Model, &v.VehicleType, &v.Mileage, &v.PricePerDay, &v.ImageURL, &v.IsAvailable, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying vehicle %d: %w", id, err)
	}
	return &v, nil
}

func (r *VehicleRepository) ByIDs(ids []int) ([]db.Vehicle, error) {
	rows, err := r.DB.Query(`SELECT `+vehicleColumns+` FROM vehicles WHERE id = ANY($1) ORDER BY id`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("error querying vehicles by ids: %w", err)
	}
	defer rows.Close()
	return scanVehicles(rows)
}

func scanVehicles(rows *sql.Rows) ([]db.Vehicle, error) {
	var vehicles []db.Vehicle
	for rows.Next() {
		var v db.Vehicle
		err := rows.Scan(&v.ID, &v.Name, &v.Model, &v.VehicleType, &v.Mileage, &v.PricePerDay, &v.ImageURL, &v.IsAvailable, &v.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}
