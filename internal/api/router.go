package api

import (
	"github.com/gorilla/mux"

	"rentaride/internal/auth"
)

// NewRouter wires every route behind the session middleware.
func NewRouter(
	mw *auth.Middleware,
	authHandler *AuthHandler,
	vehicleHandler *VehicleHandler,
	rentalHandler *RentalHandler,
	adminHandler *AdminHandler,
	adminAuthHandler *AdminAuthHandler,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(mw.LoadSession)

	// Public pages and auth flows
	r.HandleFunc("/", authHandler.Index).Methods("GET")
	r.HandleFunc("/login", authHandler.LoginPage).Methods("GET")
	r.HandleFunc("/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/signup", authHandler.SignupPage).Methods("GET")
	r.HandleFunc("/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/forgot-password", authHandler.ForgotPasswordPage).Methods("GET")
	r.HandleFunc("/forgot-password", authHandler.ForgotPassword).Methods("POST")

	// Logged-in browse and booking flows
	user := r.NewRoute().Subrouter()
	user.Use(mw.RequireUser)
	user.HandleFunc("/logout", authHandler.Logout).Methods("GET")
	user.HandleFunc("/vehicle-selection", vehicleHandler.VehicleSelection).Methods("GET")
	user.HandleFunc("/rental-details", vehicleHandler.RentalDetails).Methods("POST")
	user.HandleFunc("/confirm-rental", rentalHandler.ConfirmRental).Methods("POST")
	user.HandleFunc("/my-rentals", rentalHandler.MyRentals).Methods("GET")
	user.HandleFunc("/return-vehicle/{id:[0-9]+}", rentalHandler.ReturnVehicle).Methods("GET")

	// Admin dashboard (session identity with the admin flag)
	admin := r.NewRoute().Subrouter()
	admin.Use(mw.RequireAdmin)
	admin.HandleFunc("/admin", adminHandler.Dashboard).Methods("GET")

	// Public JSON API
	r.HandleFunc("/api/vehicles", vehicleHandler.APIVehicles).Methods("GET")
	r.HandleFunc("/api/vehicle/{id:[0-9]+}", vehicleHandler.APIVehicleDetails).Methods("GET")

	// Authenticated JSON API
	userAPI := r.NewRoute().Subrouter()
	userAPI.Use(mw.RequireUserAPI)
	userAPI.HandleFunc("/api/user/rentals", rentalHandler.APIUserRentals).Methods("GET")

	// Admin JSON API (bearer token)
	r.HandleFunc("/api/admin/login", adminAuthHandler.Login).Methods("POST")
	adminAPI := r.PathPrefix("/api/admin").Subrouter()
	adminAPI.Use(mw.RequireAdminToken)
	adminAPI.HandleFunc("/rentals", adminHandler.APIActiveRentals).Methods("GET")
	adminAPI.HandleFunc("/rentals/today", adminHandler.APITodayRentals).Methods("GET")

	return r
}
