package service

import (
	"fmt"
	"time"

	"rentaride/internal/db"
	apperrors "rentaride/internal/errors"
	"rentaride/internal/repository"
)

// Notifier delivers booking lifecycle notices. Implementations must not block
// the request; sends happen on their own goroutines.
type Notifier interface {
	BookingConfirmed(user *db.User, vehicles []db.Vehicle, start, end time.Time, total float64)
	BookingReturned(user *db.User, vehicleName string)
}

// BookingService owns the rental state machine: claiming vehicles, pricing a
// date range, and the one-way return transition.
type BookingService struct {
	Vehicles repository.VehicleStore
	Rentals  repository.RentalStore
	Users    repository.UserStore
	Notify   Notifier
}

func NewBookingService(vehicles repository.VehicleStore, rentals repository.RentalStore, users repository.UserStore, notify Notifier) *BookingService {
	return &BookingService{Vehicles: vehicles, Rentals: rentals, Users: users, Notify: notify}
}

type BookingResult struct {
	RentalIDs  []int
	TotalPrice float64
}

// RentalDays is the integer number of calendar days between two dates.
// The start < end precondition guarantees at least one.
func RentalDays(start, end time.Time) int {
	return int(end.Sub(start) / (24 * time.Hour))
}

// CreateBooking rents every requested vehicle for the date range, or none of
// them: the store claims each vehicle atomically inside one transaction, and an
// unavailable vehicle aborts the whole booking with a conflict naming it.
func (s *BookingService) CreateBooking(userID int, vehicleIDs []int, start, end time.Time) (*BookingResult, error) {
	if len(vehicleIDs) == 0 {
		return nil, apperrors.Validation("Please select at least one vehicle")
	}
	if !start.Before(end) {
		return nil, apperrors.Validation("End date must be after start date")
	}

	days := RentalDays(start, end)
	lines := make([]repository.BookingLine, 0, len(vehicleIDs))
	vehicles := make([]db.Vehicle, 0, len(vehicleIDs))
	var total float64
	for _, id := range vehicleIDs {
		vehicle, err := s.Vehicles.ByID(id)
		if err != nil {
			return nil, err
		}
		if vehicle == nil {
			return nil, apperrors.NotFound(fmt.Sprintf("Vehicle %d not found", id))
		}
		linePrice := vehicle.PricePerDay * float64(days)
		lines = append(lines, repository.BookingLine{
			VehicleID:   vehicle.ID,
			VehicleName: vehicle.Name,
			StartDate:   start,
			EndDate:     end,
			LinePrice:   linePrice,
		})
		vehicles = append(vehicles, *vehicle)
		total += linePrice
	}

	ids, err := s.Rentals.CreateBooking(userID, lines)
	if err != nil {
		return nil, err
	}

	if s.Notify != nil {
		if user, err := s.Users.ByID(userID); err == nil && user != nil {
			s.Notify.BookingConfirmed(user, vehicles, start, end, total)
		}
	}
	return &BookingResult{RentalIDs: ids, TotalPrice: total}, nil
}

// ReturnBooking flips a rental to returned and frees its vehicle. Only the
// rental's owner may return it. Returning an already-returned rental is a
// no-op success.
func (s *BookingService) ReturnBooking(rentalID, requestingUserID int) error {
	rental, err := s.Rentals.ByID(rentalID)
	if err != nil {
		return err
	}
	if rental == nil {
		return apperrors.NotFound("Rental not found")
	}
	if rental.UserID != requestingUserID {
		return apperrors.Authorization("Unauthorized access")
	}
	if rental.IsReturned {
		return nil
	}

	if err := s.Rentals.Return(rental.ID, rental.VehicleID); err != nil {
		return err
	}

	if s.Notify != nil {
		user, uerr := s.Users.ByID(rental.UserID)
		vehicle, verr := s.Vehicles.ByID(rental.VehicleID)
		if uerr == nil && verr == nil && user != nil && vehicle != nil {
			s.Notify.BookingReturned(user, vehicle.Name)
		}
	}
	return nil
}

// ListAvailable returns rentable vehicles, optionally filtered by type and by
// a substring match on name or model.
func (s *BookingService) ListAvailable(vehicleType, search string) ([]db.Vehicle, error) {
	return s.Vehicles.ListAvailable(vehicleType, search)
}

// SelectedVehicles loads the vehicles a user picked on the selection page.
func (s *BookingService) SelectedVehicles(vehicleIDs []int) ([]db.Vehicle, error) {
	if len(vehicleIDs) == 0 {
		return nil, apperrors.Validation("Please select at least one vehicle")
	}
	return s.Vehicles.ByIDs(vehicleIDs)
}

// VehicleByID loads one vehicle, failing with not found on an unknown id.
func (s *BookingService) VehicleByID(id int) (*db.Vehicle, error) {
	vehicle, err := s.Vehicles.ByID(id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, apperrors.NotFound("Vehicle not found")
	}
	return vehicle, nil
}

func (s *BookingService) ListActiveForUser(userID int) ([]repository.RentalDetail, error) {
	return s.Rentals.ActiveForUser(userID)
}

func (s *BookingService) ListActiveAll() ([]repository.RentalDetail, error) {
	return s.Rentals.ActiveAll()
}

func (s *BookingService) ListActiveToday(today time.Time) ([]repository.RentalDetail, error) {
	return s.Rentals.ActiveToday(today)
}
