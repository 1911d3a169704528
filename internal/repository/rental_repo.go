package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentaride/internal/db"
	apperrors "rentaride/internal/errors"
)

// BookingLine is one vehicle's share of a multi-vehicle booking.
type BookingLine struct {
	VehicleID   int
	VehicleName string
	StartDate   time.Time
	EndDate     time.Time
	LinePrice   float64
}

// RentalDetail is a rental row joined with the user and vehicle it references.
type RentalDetail struct {
	db.Rental
	Username     string
	VehicleName  string
	VehicleModel string
	VehicleImage string
}

type RentalStore interface {
	CreateBooking(userID int, lines []BookingLine) ([]int, error)
	ByID(id int) (*db.Rental, error)
	Return(rentalID, vehicleID int) error
	ActiveForUser(userID int) ([]RentalDetail, error)
	ActiveAll() ([]RentalDetail, error)
	ActiveToday(today time.Time) ([]RentalDetail, error)
}

type RentalRepository struct {
	DB *sql.DB
}

func NewRentalRepository(db *sql.DB) *RentalRepository {
	return &RentalRepository{DB: db}
}

// CreateBooking inserts one rental per line and flips each vehicle unavailable,
// all inside a single transaction. Each vehicle is claimed with a conditional
// update; zero rows means someone else took it and the whole booking rolls back.
func (r *RentalRepository) CreateBooking(userID int, lines []BookingLine) ([]int, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("error starting booking transaction: %w", err)
	}
	defer tx.Rollback()

	ids := make([]int, 0, len(lines))
	for _, line := range lines {
		res, err := tx.Exec(
			`UPDATE vehicles SET is_available = FALSE WHERE id = $1 AND is_available = TRUE`,
			line.VehicleID,
		)
		if err != nil {
			return nil, fmt.Errorf("error claiming vehicle %d: %w", line.VehicleID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, apperrors.Conflict(fmt.Sprintf("%s is no longer available", line.VehicleName))
		}

		var id int
		err = tx.QueryRow(
			`INSERT INTO rentals (user_id, vehicle_id, start_date, end_date, total_price, is_returned)
			 VALUES ($1, $2, $3, $4, $5, FALSE)
			 RETURNING id`,
			userID, line.VehicleID, line.StartDate, line.EndDate, line.LinePrice,
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("error inserting rental for vehicle %d: %w", line.VehicleID, err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing booking: %w", err)
	}
	return ids, nil
}

func (r *RentalRepository) ByID(id int) (*db.Rental, error) {
	var rental db.Rental
	err := r.DB.QueryRow(
		`SELECT id, user_id, vehicle_id, start_date, end_date, total_price, is_returned, created_at
		 FROM rentals WHERE id = $1`, id,
	).Scan(&rental.ID, &rental.UserID, &rental.VehicleID, &rental.StartDate, &rental.EndDate,
		&rental.TotalPrice, &rental.IsReturned, &rental.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying rental %d: %w", id, err)
	}
	return &rental, nil
}

// Return marks the rental returned and frees its vehicle in one transaction.
func (r *RentalRepository) Return(rentalID, vehicleID int) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting return transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE rentals SET is_returned = TRUE WHERE id = $1`, rentalID); err != nil {
		return fmt.Errorf("error marking rental %d returned: %w", rentalID, err)
	}
	if _, err := tx.Exec(`UPDATE vehicles SET is_available = TRUE WHERE id = $1`, vehicleID); err != nil {
		return fmt.Errorf("error freeing vehicle %d: %w", vehicleID, err)
	}
	return tx.Commit()
}

const rentalDetailQuery = `
	SELECT r.id, r.user_id, r.vehicle_id, r.start_date, r.end_date, r.total_price, r.is_returned, r.created_at,
	       u.username, v.name, v.model, v.image_url
	FROM rentals r
	JOIN users u ON u.id = r.user_id
	JOIN vehicles v ON v.id = r.vehicle_id
	WHERE r.is_returned = FALSE`

func (r *RentalRepository) ActiveForUser(userID int) ([]RentalDetail, error) {
	rows, err := r.DB.Query(rentalDetailQuery+` AND r.user_id = $1 ORDER BY r.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying rentals for user %d: %w", userID, err)
	}
	defer rows.Close()
	return scanRentalDetails(rows)
}

func (r *RentalRepository) ActiveAll() ([]RentalDetail, error) {
	rows, err := r.DB.Query(rentalDetailQuery + ` ORDER BY r.start_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("error querying active rentals: %w", err)
	}
	defer rows.Close()
	return scanRentalDetails(rows)
}

func (r *RentalRepository) ActiveToday(today time.Time) ([]RentalDetail, error) {
	rows, err := r.DB.Query(
		rentalDetailQuery+` AND r.start_date <= $1 AND r.end_date >= $1 ORDER BY r.start_date DESC`,
		today.Format("2006-01-02"),
	)
	if err != nil {
		return nil, fmt.Errorf("error querying today's rentals: %w", err)
	}
	defer rows.Close()
	return scanRentalDetails(rows)
}

func scanRentalDetails(rows *sql.Rows) ([]RentalDetail, error) {
	var rentals []RentalDetail
	for rows.Next() {
		var d RentalDetail
		err := rows.Scan(&d.ID, &d.UserID, &d.VehicleID, &d.StartDate, &d.EndDate, &d.TotalPrice,
			&d.IsReturned, &d.CreatedAt, &d.Username, &d.VehicleName, &d.VehicleModel, &d.VehicleImage)
		if err != nil {
			return nil, fmt.Errorf("error scanning rental: %w", err)
		}
		rentals = append(rentals, d)
	}
	return rentals, rows.Err()
}
