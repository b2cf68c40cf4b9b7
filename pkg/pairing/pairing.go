package pairing

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	errorvalues "github.com/limbo/staircircuit/internal/error_values"
)

var (
	tokenTTL = time.Hour * 24 * 30
)

// Device roles carried inside a pairing token.
const (
	RolePrimary   = "primary"
	RoleCompanion = "companion"
)

type DeviceClaims struct {
	jwt.RegisteredClaims
	DeviceID string `json:"device_id"`
	Role     string `json:"role"`
}

// Service issues and verifies long-lived tokens that bind a device to a pair.
type Service struct {
	secret []byte
}

func New(secret string) *Service {
	return &Service{
		secret: []byte(secret),
	}
}

func (s *Service) GenerateToken(deviceID, role string) (string, error) {
	if role != RolePrimary && role != RoleCompanion {
		return "", errors.New("unknown device role: " + role)
	}
	expTime := time.Now().Add(tokenTTL)
	claims := &DeviceClaims{
		DeviceID: deviceID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) ParseToken(tokenString string) (*DeviceClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &DeviceClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, errors.New("token parsing error: " + err.Error())
	}
	claims, ok := token.Claims.(*DeviceClaims)
	if !ok || !token.Valid {
		return nil, errorvalues.ErrInvalidPairingToken
	}
	return claims, nil
}
