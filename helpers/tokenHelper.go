package helpers

import (
	"errors"
	"fmt"
	"time"

	"go-restaurant-pos/config"

	"github.com/golang-jwt/jwt/v5"
)

// Staff roles allowed to drive the kitchen and billing side.
const (
	RoleAdmin   = "admin"
	RoleKitchen = "kitchen"
	RoleWaiter  = "waiter"
	RoleCashier = "cashier"
)

var StaffRoles = []string{RoleAdmin, RoleKitchen, RoleWaiter, RoleCashier}

type SignedDetails struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func secret() []byte { return []byte(config.SecretKey()) }

func IsStaffRole(role string) bool {
	for _, r := range StaffRoles {
		if r == role {
			return true
		}
	}
	return false
}

// GenerateStaffToken signs a token for a staff member valid for ttl.
func GenerateStaffToken(name, role string, ttl time.Duration) (string, error) {
	if !IsStaffRole(role) {
		return "", fmt.Errorf("unknown staff role %q", role)
	}
	now := time.Now()
	claims := SignedDetails{
		Name: name,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   name,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
}

// ValidateToken parses signedToken and checks its signature, expiry and role.
func ValidateToken(signedToken string) (*SignedDetails, error) {
	token, err := jwt.ParseWithClaims(signedToken, &SignedDetails{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret(), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*SignedDetails)
	if !ok || !token.Valid {
		return nil, errors.New("the token is invalid")
	}
	if !IsStaffRole(claims.Role) {
		return nil, fmt.Errorf("role %q may not use staff endpoints", claims.Role)
	}
	return claims, nil
}
