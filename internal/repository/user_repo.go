package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"rentaride/internal/db"
	apperrors "rentaride/internal/errors"
)

type UserStore interface {
	Create(user *db.User) error
	ByID(id int) (*db.User, error)
	ByUsername(username string) (*db.User, error)
	ByEmail(email string) (*db.User, error)
	AdminEmails() ([]string, error)
}

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *db.User) error {
	query := `
		INSERT INTO users (username, email, phone, password_hash, is_admin)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	err := r.DB.QueryRow(query,
		user.Username, user.Email, user.Phone, user.PasswordHash, user.IsAdmin,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		// Unique violation on username/email can still race past the
		// service-level existence checks.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return apperrors.Authentication("Username or email already exists")
		}
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

func (r *UserRepository) ByID(id int) (*db.User, error) {
	return r.scanOne(`SELECT id, username, email, phone, password_hash, is_admin, created_at FROM users WHERE id = $1`, id)
}

func (r *UserRepository) ByUsername(username string) (*db.User, error) {
	return r.scanOne(`SELECT id, username, email, phone, password_hash, is_admin, created_at FROM users WHERE username = $1`, username)
}

func (r *UserRepository) ByEmail(email string) (*db.User, error) {
	return r.scanOne(`SELECT id, username, email, phone, password_hash, is_admin, created_at FROM users WHERE email = $1`, email)
}

func (r *UserRepository) scanOne(query string, arg interface{}) (*db.User, error) {
	var u db.User
	err := r.DB.QueryRow(query, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.Phone, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) AdminEmails() ([]string, error) {
	rows, err := r.DB.Query(`SELECT email FROM users WHERE is_admin = TRUE ORDER BY email`)
	if err != nil {
		return nil, fmt.Errorf("error querying admin emails: %w", err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}
