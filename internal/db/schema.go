package db

import "database/sql"

// CreateSchema creates the rental tables if they do not exist yet.
func CreateSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id            SERIAL PRIMARY KEY,
		username      VARCHAR(80) NOT NULL UNIQUE,
		email         VARCHAR(120) NOT NULL UNIQUE,
		phone         VARCHAR(20) NOT NULL,
		password_hash VARCHAR(120) NOT NULL,
		is_admin      BOOLEAN NOT NULL DEFAULT FALSE,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS vehicles (
		id            SERIAL PRIMARY KEY,
		name          VARCHAR(100) NOT NULL,
		model         VARCHAR(100) NOT NULL,
		vehicle_type  VARCHAR(20) NOT NULL,
		mileage       VARCHAR(50) NOT NULL,
		price_per_day NUMERIC(10,2) NOT NULL CHECK (price_per_day >= 0),
		image_url     VARCHAR(200) NOT NULL,
		is_available  BOOLEAN NOT NULL DEFAULT TRUE,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS rentals (
		id          SERIAL PRIMARY KEY,
		user_id     INTEGER NOT NULL REFERENCES users(id),
		vehicle_id  INTEGER NOT NULL REFERENCES vehicles(id),
		start_date  DATE NOT NULL,
		end_date    DATE NOT NULL CHECK (end_date > start_date),
		total_price NUMERIC(10,2) NOT NULL,
		is_returned BOOLEAN NOT NULL DEFAULT FALSE,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`
	_, err := db.Exec(schema)
	return err
}
