package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/DirGroup-Admin/DirGroup-Admin/internal/db/models"
)

const (
	// prefixBytes is the number of random bytes of the token prefix (hex encoded: 12 chars).
	prefixBytes = 6
	// secretBytes is the number of random bytes of the token secret (hex encoded: 64 chars).
	secretBytes = 32

	tokenSeparator = "."
)

// Service issues and verifies API tokens.
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

// NewService creates a new auth service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// IssueToken creates a token for the active user username.
// A ttl of 0 issues a token that never expires. The returned string is the
// only place the secret ever appears in clear.
func (s *Service) IssueToken(ctx context.Context, username string, ttl time.Duration) (string, error) {
	var user models.User

	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrUserNotFound
	}

	if err != nil {
		return "", fmt.Errorf("failed to query user: %w", err)
	}

	if !user.Active {
		return "", ErrUserAccountDisabled
	}

	prefix, err := randomHex(prefixBytes)
	if err != nil {
		return "", err
	}

	secret, err := randomHex(secretBytes)
	if err != nil {
		return "", err
	}

	hash, err := models.HashSecret(secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash token secret")
	}

	token := models.APIToken{
		UserID: user.ID,
		Prefix: prefix,
		Hash:   hash,
	}

	if ttl > 0 {
		expiresAt := s.now().Add(ttl)
		token.ExpiresAt = &expiresAt
	}

	if err = s.db.WithContext(ctx).Omit("User").Create(&token).Error; err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}

	return prefix + tokenSeparator + secret, nil
}

// Authenticate verifies a bearer token and returns the caller it belongs to.
func (s *Service) Authenticate(ctx context.Context, bearer string) (Caller, error) {
	prefix, secret, ok := strings.Cut(bearer, tokenSeparator)
	if !ok || len(prefix) != 2*prefixBytes || len(secret) != 2*secretBytes {
		return Caller{}, ErrMalformedToken
	}

	var token models.APIToken

	err := s.db.WithContext(ctx).Preload("User.Role").Where("prefix = ?", prefix).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Caller{}, ErrInvalidToken
	}

	if err != nil {
		return Caller{}, fmt.Errorf("failed to query token: %w", err)
	}

	if token.Expired(s.now()) {
		return Caller{}, ErrTokenExpired
	}

	if !token.VerifySecret(secret) {
		return Caller{}, ErrInvalidToken
	}

	if !token.User.Active {
		return Caller{}, ErrUserAccountDisabled
	}

	return CallerFromUser(&token.User), nil
}

// RevokeTokens removes every token of the user username.
func (s *Service) RevokeTokens(ctx context.Context, username string) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("user_id IN (?)", s.db.Model(&models.User{}).Select("id").Where("username = ?", username)).
		Delete(&models.APIToken{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to revoke tokens: %w", result.Error)
	}

	return result.RowsAffected, nil
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Wrap(err, "failed to read random bytes")
	}

	return hex.EncodeToString(b), nil
}
