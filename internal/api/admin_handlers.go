package api

import (
	"net/http"
	"time"

	"rentaride/internal/service"
	"rentaride/internal/session"
)

type AdminHandler struct {
	Service  *service.BookingService
	Sessions session.Store
}

func NewAdminHandler(svc *service.BookingService, sessions session.Store) *AdminHandler {
	return &AdminHandler{Service: svc, Sessions: sessions}
}

// Dashboard shows all active rentals plus the subset running today.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	active, err := h.Service.ListActiveAll()
	if err != nil {
		writeError(w, err)
		return
	}
	today, err := h.Service.ListActiveToday(time.Now().UTC())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PageResponse{
		Page:     "admin_dashboard",
		Messages: popFlashes(r, h.Sessions),
		Data: map[string]interface{}{
			"active_rentals": toAdminRentalResponses(active),
			"today_rentals":  toAdminRentalResponses(today),
		},
	})
}

// APIActiveRentals is the token-protected JSON view of active rentals.
func (h *AdminHandler) APIActiveRentals(w http.ResponseWriter, r *http.Request) {
	active, err := h.Service.ListActiveAll()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAdminRentalResponses(active))
}

func (h *AdminHandler) APITodayRentals(w http.ResponseWriter, r *http.Request) {
	today, err := h.Service.ListActiveToday(time.Now().UTC())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAdminRentalResponses(today))
}
