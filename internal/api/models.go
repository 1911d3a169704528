package api

import (
	"rentaride/internal/db"
	"rentaride/internal/repository"
	"rentaride/internal/session"
)

type VehicleResponse struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Model       string  `json:"model"`
	VehicleType string  `json:"vehicle_type"`
	Mileage     string  `json:"mileage"`
	PricePerDay float64 `json:"price_per_day"`
	ImageURL    string  `json:"image_url"`
	IsAvailable bool    `json:"is_available"`
}

func toVehicleResponse(v db.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:          v.ID,
		Name:        v.Name,
		Model:       v.Model,
		VehicleType: v.VehicleType,
		Mileage:     v.Mileage,
		PricePerDay: v.PricePerDay,
		ImageURL:    v.ImageURL,
		IsAvailable: v.IsAvailable,
	}
}

func toVehicleResponses(vehicles []db.Vehicle) []VehicleResponse {
	out := make([]VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, toVehicleResponse(v))
	}
	return out
}

type UserRentalResponse struct {
	ID           int     `json:"id"`
	VehicleName  string  `json:"vehicle_name"`
	VehicleModel string  `json:"vehicle_model"`
	VehicleImage string  `json:"vehicle_image"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	TotalPrice   float64 `json:"total_price"`
	IsReturned   bool    `json:"is_returned"`
}

func toUserRentalResponses(rentals []repository.RentalDetail) []UserRentalResponse {
	out := make([]UserRentalResponse, 0, len(rentals))
	for _, r := range rentals {
		out = append(out, UserRentalResponse{
			ID:           r.ID,
			VehicleName:  r.VehicleName,
			VehicleModel: r.VehicleModel,
			VehicleImage: r.VehicleImage,
			StartDate:    r.StartDate.Format("2006-01-02"),
			EndDate:      r.EndDate.Format("2006-01-02"),
			TotalPrice:   r.TotalPrice,
			IsReturned:   r.IsReturned,
		})
	}
	return out
}

type AdminRentalResponse struct {
	ID          int     `json:"id"`
	Username    string  `json:"username"`
	VehicleName string  `json:"vehicle_name"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	TotalPrice  float64 `json:"total_price"`
}

func toAdminRentalResponses(rentals []repository.RentalDetail) []AdminRentalResponse {
	out := make([]AdminRentalResponse, 0, len(rentals))
	for _, r := range rentals {
		out = append(out, AdminRentalResponse{
			ID:          r.ID,
			Username:    r.Username,
			VehicleName: r.VehicleName,
			StartDate:   r.StartDate.Format("2006-01-02"),
			EndDate:     r.EndDate.Format("2006-01-02"),
			TotalPrice:  r.TotalPrice,
		})
	}
	return out
}

// PageResponse is the payload of the form-flow GET targets: the page's data
// plus the flash messages queued by the redirect that led here.
type PageResponse struct {
	Page     string          `json:"page"`
	Messages []session.Flash `json:"messages"`
	Data     interface{}     `json:"data,omitempty"`
}

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AdminLoginResponse struct {
	Token string `json:"token"`
}
