package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const adminTokenTTL = time.Hour

// SignAdminToken issues a short-lived bearer token for the admin API.
func SignAdminToken(secret string, userID int, username string) (string, error) {
	if secret == "" {
		return "", errors.New("JWT_SECRET not set")
	}
	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"admin":    true,
		"exp":      time.Now().Add(adminTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyAdminToken validates an admin bearer token and returns its identity.
func VerifyAdminToken(secret, tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Identity{}, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, errors.New("invalid claims")
	}
	isAdmin, _ := claims["admin"].(bool)
	if !isAdmin {
		return Identity{}, errors.New("not an admin token")
	}
	userID, _ := claims["user_id"].(float64)
	username, _ := claims["username"].(string)
	return Identity{UserID: int(userID), Username: username, IsAdmin: true}, nil
}
