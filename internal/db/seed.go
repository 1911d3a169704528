package db

import (
	"database/sql"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
)

// Seed loads the demo fleet and the admin account on an empty database.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM vehicles`).Scan(&count); err != nil {
		return fmt.Errorf("error counting vehicles: %w", err)
	}
	if count > 0 {
		return nil
	}

	vehicles := []Vehicle{
		{Name: "Toyota Camry", Model: "2023", VehicleType: VehicleTypeCar, Mileage: "25 MPG", PricePerDay: 50.0, ImageURL: "https://images.unsplash.com/photo-1621007947382-bb3c3994e3fb?w=400&h=300&fit=crop"},
		{Name: "Honda Civic", Model: "2023", VehicleType: VehicleTypeCar, Mileage: "32 MPG", PricePerDay: 45.0, ImageURL: "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=400&h=300&fit=crop"},
		{Name: "BMW 3 Series", Model: "2023", VehicleType: VehicleTypeCar, Mileage: "28 MPG", PricePerDay: 80.0, ImageURL: "https://images.unsplash.com/photo-1555215695-3004980ad54e?w=400&h=300&fit=crop"},
		{Name: "Mercedes C-Class", Model: "2023", VehicleType: VehicleTypeCar, Mileage: "26 MPG", PricePerDay: 85.0, ImageURL: "https://images.unsplash.com/photo-1618843479313-40f8afb4b4d8?w=400&h=300&fit=crop"},
		{Name: "Audi A4", Model: "2023", VehicleType: VehicleTypeCar, Mileage: "27 MPG", PricePerDay: 75.0, ImageURL: "https://images.unsplash.com/photo-1606664515524-ed2f786a0bd6?w=400&h=300&fit=crop"},
		{Name: "Tesla Model 3", Model: "2023", VehicleType: VehicleTypeCar, Mileage: "Electric", PricePerDay: 90.0, ImageURL: "https://images.unsplash.com/photo-1560958089-b8a1929cea89?w=400&h=300&fit=crop"},
		{Name: "Ford Mustang", Model: "2023", VehicleType: VehicleTypeCar, Mileage: "22 MPG", PricePerDay: 70.0, ImageURL: "https://images.unsplash.com/photo-1552519507-da3b142c6e3d?w=400&h=300&fit=crop"},
		{Name: "Chevrolet Corvette", Model: "2023", VehicleType: VehicleTypeCar, Mileage: "19 MPG", PricePerDay: 120.0, ImageURL: "https://images.unsplash.com/photo-1544636331-e26879cd4d9b?w=400&h=300&fit=crop"},
		{Name: "Nissan Altima", Model: "2023", VehicleType: VehicleTypeCar, Mileage: "30 MPG", PricePerDay: 40.0, ImageURL: "https://images.unsplash.com/photo-1606664515524-ed2f786a0bd6?w=400&h=300&fit=crop"},
		{Name: "Hyundai Sonata", Model: "2023", VehicleType: VehicleTypeCar, Mileage: "29 MPG", PricePerDay: 42.0, ImageURL: "https://images.unsplash.com/photo-1555215695-3004980ad54e?w=400&h=300&fit=crop"},
		{Name: "Honda CBR600RR", Model: "2023", VehicleType: VehicleTypeBike, Mileage: "40 MPG", PricePerDay: 35.0, ImageURL: "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=400&h=300&fit=crop"},
		{Name: "Yamaha R6", Model: "2023", VehicleType: VehicleTypeBike, Mileage: "38 MPG", PricePerDay: 32.0, ImageURL: "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=400&h=300&fit=crop"},
		{Name: "Kawasaki Ninja 650", Model: "2023", VehicleType: VehicleTypeBike, Mileage: "45 MPG", PricePerDay: 28.0, ImageURL: "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=400&h=300&fit=crop"},
		{Name: "Suzuki GSX-R750", Model: "2023", VehicleType: VehicleTypeBike, Mileage: "35 MPG", PricePerDay: 40.0, ImageURL: "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=400&h=300&fit=crop"},
		{Name: "Ducati Panigale V2", Model: "2023", VehicleType: VehicleTypeBike, Mileage: "30 MPG", PricePerDay: 65.0, ImageURL: "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=400&h=300&fit=crop"},
		{Name: "BMW S1000RR", Model: "2023", VehicleType: VehicleTypeBike, Mileage: "32 MPG", PricePerDay: 70.0, ImageURL: "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=400&h=300&fit=crop"},
		{Name: "Aprilia RSV4", Model: "2023", VehicleType: VehicleTypeBike, Mileage: "28 MPG", PricePerDay: 75.0, ImageURL: "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=400&h=300&fit=crop"},
		{Name: "KTM 1290 Super Duke", Model: "2023", VehicleType: VehicleTypeBike, Mileage: "35 MPG", PricePerDay: 55.0, ImageURL: "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=400&h=300&fit=crop"},
		{Name: "Triumph Street Triple", Model: "2023", VehicleType: VehicleTypeBike, Mileage: "42 MPG", PricePerDay: 45.0, ImageURL: "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=400&h=300&fit=crop"},
		{Name: "Harley Davidson Sportster", Model: "2023", VehicleType: VehicleTypeBike, Mileage: "50 MPG", PricePerDay: 50.0, ImageURL: "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=400&h=300&fit=crop"},
	}

	for _, v := range vehicles {
		_, err := db.Exec(`
			INSERT INTO vehicles (name, model, vehicle_type, mileage, price_per_day, image_url, is_available)
			VALUES ($1, $2, $3, $4, $5, $6, TRUE)`,
			v.Name, v.Model, v.VehicleType, v.Mileage, v.PricePerDay, v.ImageURL,
		)
		if err != nil {
			return fmt.Errorf("error seeding vehicle %q: %w", v.Name, err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
		INSERT INTO users (username, email, phone, password_hash, is_admin)
		VALUES ('admin', 'admin@rental.com', '1234567890', $1, TRUE)
		ON CONFLICT (username) DO NOTHING`,
		string(hash),
	)
	if err != nil {
		return fmt.Errorf("error seeding admin user: %w", err)
	}

	log.Printf("Seeded %d vehicles and admin user", len(vehicles))
	return nil
}
