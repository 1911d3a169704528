package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"rentaride/internal/api"
	"rentaride/internal/auth"
	"rentaride/internal/db"
	"rentaride/internal/repository"
	"rentaride/internal/service"
	"rentaride/internal/session"
)

func main() {
	godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	conn, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := conn.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}
	if err := db.Seed(conn); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	sessions, err := session.NewRedisStore(redisAddr)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	userRepo := repository.NewUserRepository(conn)
	vehicleRepo := repository.NewVehicleRepository(conn)
	rentalRepo := repository.NewRentalRepository(conn)

	sender := service.NewSenderService()
	authSvc := service.NewAuthService(userRepo)
	bookingSvc := service.NewBookingService(vehicleRepo, rentalRepo, userRepo, sender)
	jobSvc := service.NewJobService(rentalRepo, userRepo)

	mw := auth.NewMiddleware(sessions, userRepo, jwtSecret)
	router := api.NewRouter(
		mw,
		api.NewAuthHandler(authSvc, sessions),
		api.NewVehicleHandler(bookingSvc, sessions),
		api.NewRentalHandler(bookingSvc, sessions),
		api.NewAdminHandler(bookingSvc, sessions),
		api.NewAdminAuthHandler(authSvc, jwtSecret),
	)

	c := cron.New()
	if _, err := c.AddFunc("0 8 * * *", func() {
		if err := jobSvc.SendDailyRentalReport(); err != nil {
			log.Printf("Daily rental report failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule daily report: %v", err)
	}
	c.Start()
	defer c.Stop()

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, corsHandler(router))))
}
