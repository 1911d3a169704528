package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"rentaride/internal/db"
	apperrors "rentaride/internal/errors"
	"rentaride/internal/repository"
)

type AuthService struct {
	Users repository.UserStore
}

func NewAuthService(users repository.UserStore) *AuthService {
	return &AuthService{Users: users}
}

// Signup registers a new account. Username and email must both be unused.
func (s *AuthService) Signup(username, email, phone, password string) (*db.User, error) {
	if username == "" || email == "" || phone == "" || password == "" {
		return nil, apperrors.Validation("All fields are required")
	}

	existing, err := s.Users.ByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Authentication("Username already exists")
	}
	existing, err = s.Users.ByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Authentication("Email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &db.User{
		Username:     username,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
	}
	if err := s.Users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies a username/password pair.
func (s *AuthService) Login(username, password string) (*db.User, error) {
	user, err := s.Users.ByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.Authentication("Invalid username or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperrors.Authentication("Invalid username or password")
	}
	return user, nil
}

// AdminLogin is Login restricted to admin accounts, used by the token API.
func (s *AuthService) AdminLogin(username, password string) (*db.User, error) {
	user, err := s.Login(username, password)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin {
		return nil, apperrors.Authentication("Invalid credentials")
	}
	return user, nil
}

// RequestPasswordReset validates that the email belongs to an account.
// No reset mail is delivered; the caller only learns whether the address exists.
func (s *AuthService) RequestPasswordReset(email string) error {
	user, err := s.Users.ByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NotFound("Email not found in our system.")
	}
	return nil
}
