package models

import (
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// APIToken is a bearer token issued to a user for the JSON API.
// Only the argon2id hash of the secret part is stored; Prefix is the
// non-secret lookup key sent in front of the secret.
type APIToken struct {
	// ID is the unique identifier for the token.
	ID uint64 `gorm:"primaryKey"`
	// UserID is the owner of the token.
	UserID uint64 `gorm:"not null;index"`
	// User is the owning account. Tokens are removed with their user.
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	// Prefix identifies the token without revealing the secret.
	Prefix string `gorm:"uniqueIndex;size:16;not null"`
	// Hash is the argon2id hash of the secret.
	Hash string `gorm:"size:255;not null"`
	// ExpiresAt is nil for tokens that never expire.
	ExpiresAt *time.Time
	// CreatedAt is the timestamp when the token was issued (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the APIToken model.
func (APIToken) TableName() string {
	return "api_tokens"
}

// TokenHashParams are the Argon2id parameters of token secrets.
// Secrets are 256 random bits, not passwords, so a single pass over 1 MiB is
// enough and keeps per-request verification cheap.
var TokenHashParams = &argon2id.Params{ //nolint:gochecknoglobals
	Memory:      1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

// HashSecret hashes a token secret using the Argon2id algorithm.
func HashSecret(secret string) (string, error) {
	return argon2id.CreateHash(secret, TokenHashParams) //nolint:wrapcheck
}

// VerifySecret compares secret against the stored hash in constant time.
// The parameters are read from the stored hash.
func (t *APIToken) VerifySecret(secret string) bool {
	match, err := argon2id.ComparePasswordAndHash(secret, t.Hash)
	if err != nil {
		log.Error().Err(err).Uint64("token_id", t.ID).Msg("failed to verify token secret")
		return false
	}

	return match
}

// Expired reports whether the token is past its expiry at now.
func (t *APIToken) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && !now.Before(*t.ExpiresAt)
}
