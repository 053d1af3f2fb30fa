package types

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/hireachef/backend/internal/models"
)

// TokenClaims represents the claims in a JWT token. Name and Email are
// carried so booking snapshots can be written without an extra lookup.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID   `json:"user_id"`
	Role   models.Role `json:"role"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
}
