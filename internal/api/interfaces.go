package api

import (
	"github.com/limbo/staircircuit/pkg/pairing"
)

type PairingServiceI interface {
	GenerateToken(deviceID, role string) (string, error)
	ParseToken(tokenString string) (*pairing.DeviceClaims, error)
}
