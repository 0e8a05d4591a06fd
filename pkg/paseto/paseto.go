package paseto

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/o1egl/paseto"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"visitor-management/models"
)

// Maker issues and validates v2.local tokens with a fixed symmetric key.
type Maker struct {
	paseto       *paseto.V2
	symmetricKey []byte
	ttl          time.Duration
}

// NewPasetoMaker decodes a base64 secret; it must decode to exactly 32 bytes.
func NewPasetoMaker(secret string, ttl time.Duration) (*Maker, error) {
	// Try URL encoding, padded URL encoding, then standard base64.
	decodedKey, err := base64.URLEncoding.DecodeString(secret)
	if err != nil {
		decodedKey, err = base64.URLEncoding.WithPadding(base64.StdPadding).DecodeString(secret)
		if err != nil {
			decodedKey, err = base64.StdEncoding.DecodeString(secret)
			if err != nil {
				return nil, fmt.Errorf("failed to decode PASETO_SECRET: %w", err)
			}
		}
	}

	if len(decodedKey) != 32 {
		return nil, fmt.Errorf("PASETO_SECRET must be exactly 32 bytes after Base64 decoding, got %d bytes", len(decodedKey))
	}

	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &Maker{paseto: paseto.NewV2(), symmetricKey: decodedKey, ttl: ttl}, nil
}

func (m *Maker) GenerateToken(user *models.User) (string, error) {
	now := time.Now()

	token := paseto.JSONToken{
		Subject:    user.ID.Hex(),
		IssuedAt:   now,
		Expiration: now.Add(m.ttl),
		NotBefore:  now,
	}

	token.Set("email", user.Email)
	token.Set("name", user.Name)
	token.Set("role", string(user.Role))

	return m.paseto.Encrypt(m.symmetricKey, token, "")
}

func (m *Maker) ValidateToken(tokenString string) (*models.Claims, error) {
	var token paseto.JSONToken
	var footer string

	if err := m.paseto.Decrypt(tokenString, m.symmetricKey, &token, &footer); err != nil {
		return nil, fmt.Errorf("failed to decrypt paseto token: %w", err)
	}

	if err := token.Validate(); err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	userID, err := primitive.ObjectIDFromHex(token.Subject)
	if err != nil {
		return nil, fmt.Errorf("invalid subject format: %w", err)
	}

	return &models.Claims{
		UserID: userID,
		Email:  token.Get("email"),
		Name:   token.Get("name"),
		Role:   models.Role(token.Get("role")),
	}, nil
}
