package utils

import (
	"strings"

	"rentaride/internal/db"
)

// ValidVehicleType reports whether t names a rentable vehicle type.
func ValidVehicleType(t string) bool {
	switch strings.ToLower(t) {
	case db.VehicleTypeCar, db.VehicleTypeBike:
		return true
	}
	return false
}
