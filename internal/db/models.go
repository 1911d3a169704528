package db

import "time"

const (
	VehicleTypeCar  = "car"
	VehicleTypeBike = "bike"
)

type User struct {
	ID           int
	Username     string
	Email        string
	Phone        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}

type Vehicle struct {
	ID          int
	Name        string
	Model       string
	VehicleType string
	Mileage     string
	PricePerDay float64
	ImageURL    string
	IsAvailable bool
	CreatedAt   time.Time
}

type Rental struct {
	ID         int
	UserID     int
	VehicleID  int
	StartDate  time.Time
	EndDate    time.Time
	TotalPrice float64
	IsReturned bool
	CreatedAt  time.Time
}
