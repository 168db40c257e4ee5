package security

import (
	"time"

	"github.com/google/uuid"
)

// Maker issues and verifies bearer tokens.
type Maker interface {
	// CreateToken issues a token for userID that expires after duration.
	CreateToken(userID uuid.UUID, role string, duration time.Duration) (string, *Payload, error)

	// VerifyToken decodes token and checks its expiry.
	VerifyToken(token string) (*Payload, error)
}
