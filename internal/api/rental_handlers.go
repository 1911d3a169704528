package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"rentaride/internal/auth"
	apperrors "rentaride/internal/errors"
	"rentaride/internal/service"
	"rentaride/internal/session"
)

const dateLayout = "2006-01-02"

type RentalHandler struct {
	Service  *service.BookingService
	Sessions session.Store
}

func NewRentalHandler(svc *service.BookingService, sessions session.Store) *RentalHandler {
	return &RentalHandler{Service: svc, Sessions: sessions}
}

// ConfirmRental books every selected vehicle for the submitted date range.
func (h *RentalHandler) ConfirmRental(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFrom(r.Context())

	if err := r.ParseForm(); err != nil {
		flashAndRedirect(w, r, h.Sessions, "/vehicle-selection", "error", "Invalid form")
		return
	}

	start, err := time.Parse(dateLayout, r.FormValue("start_date"))
	if err != nil {
		flashAndRedirect(w, r, h.Sessions, "/vehicle-selection", "error", "Invalid start date")
		return
	}
	end, err := time.Parse(dateLayout, r.FormValue("end_date"))
	if err != nil {
		flashAndRedirect(w, r, h.Sessions, "/vehicle-selection", "error", "Invalid end date")
		return
	}

	result, err := h.Service.CreateBooking(identity.UserID, parseIDs(r.Form["vehicle_ids"]), start, end)
	if err != nil {
		flashAndRedirect(w, r, h.Sessions, "/vehicle-selection", "error", userMessage(err))
		return
	}

	flashAndRedirect(w, r, h.Sessions, "/my-rentals", "success",
		fmt.Sprintf("Rental confirmed! Total price: $%.2f", result.TotalPrice))
}

// MyRentals lists the caller's active rentals.
func (h *RentalHandler) MyRentals(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFrom(r.Context())
	rentals, err := h.Service.ListActiveForUser(identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PageResponse{
		Page:     "my_rentals",
		Messages: popFlashes(r, h.Sessions),
		Data:     map[string]interface{}{"rentals": toUserRentalResponses(rentals)},
	})
}

// ReturnVehicle hands a rented vehicle back.
func (h *RentalHandler) ReturnVehicle(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFrom(r.Context())

	rentalID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		flashAndRedirect(w, r, h.Sessions, "/my-rentals", "error", "Invalid rental ID")
		return
	}

	if err := h.Service.ReturnBooking(rentalID, identity.UserID); err != nil {
		flashAndRedirect(w, r, h.Sessions, "/my-rentals", "error", userMessage(err))
		return
	}
	flashAndRedirect(w, r, h.Sessions, "/my-rentals", "success", "Vehicle returned successfully!")
}

// APIUserRentals is the JSON view of the caller's active rentals.
func (h *RentalHandler) APIUserRentals(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFrom(r.Context())
	rentals, err := h.Service.ListActiveForUser(identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserRentalResponses(rentals))
}

// userMessage keeps internal error detail out of flash messages.
func userMessage(err error) string {
	var e *apperrors.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Something went wrong, please try again"
}
