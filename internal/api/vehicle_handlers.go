package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"rentaride/internal/service"
	"rentaride/internal/session"
	"rentaride/internal/utils"
)

type VehicleHandler struct {
	Service  *service.BookingService
	Sessions session.Store
}

func NewVehicleHandler(svc *service.BookingService, sessions session.Store) *VehicleHandler {
	return &VehicleHandler{Service: svc, Sessions: sessions}
}

// VehicleSelection is the browse page: every available car and bike.
func (h *VehicleHandler) VehicleSelection(w http.ResponseWriter, r *http.Request) {
	cars, err := h.Service.ListAvailable("car", "")
	if err != nil {
		writeError(w, err)
		return
	}
	bikes, err := h.Service.ListAvailable("bike", "")
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PageResponse{
		Page:     "vehicle_selection",
		Messages: popFlashes(r, h.Sessions),
		Data: map[string]interface{}{
			"cars":  toVehicleResponses(cars),
			"bikes": toVehicleResponses(bikes),
		},
	})
}

// RentalDetails shows the vehicles the user selected so dates can be chosen.
func (h *VehicleHandler) RentalDetails(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flashAndRedirect(w, r, h.Sessions, "/vehicle-selection", "error", "Invalid form")
		return
	}
	ids := parseIDs(r.Form["selected_vehicles"])
	vehicles, err := h.Service.SelectedVehicles(ids)
	if err != nil {
		flashAndRedirect(w, r, h.Sessions, "/vehicle-selection", "error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, PageResponse{
		Page:     "rental_details",
		Messages: popFlashes(r, h.Sessions),
		Data:     map[string]interface{}{"vehicles": toVehicleResponses(vehicles)},
	})
}

// APIVehicles lists available vehicles with optional type and search filters.
func (h *VehicleHandler) APIVehicles(w http.ResponseWriter, r *http.Request) {
	vehicleType := r.URL.Query().Get("type")
	search := r.URL.Query().Get("search")

	if vehicleType != "" && !utils.ValidVehicleType(vehicleType) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Unknown vehicle type"})
		return
	}

	vehicles, err := h.Service.ListAvailable(vehicleType, search)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toVehicleResponses(vehicles))
}

func (h *VehicleHandler) APIVehicleDetails(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid vehicle ID"})
		return
	}
	vehicle, err := h.Service.VehicleByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toVehicleResponse(*vehicle))
}

func parseIDs(values []string) []int {
	ids := make([]int, 0, len(values))
	for _, v := range values {
		if id, err := strconv.Atoi(v); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
