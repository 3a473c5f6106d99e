// Package services: services/botkey_service.go
// One-time bot API key provisioning: normalize, rate-limit, check
// existence, generate, persist, disclose once.
package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-con-board/logger"
)

// Issuance outcomes surfaced to the HTTP layer.
var (
	ErrInvalidEmail = errors.New("valid email required")
	ErrRateLimited  = errors.New("too many requests")
	ErrKeyExists    = errors.New("bot key already exists for this email")
)

// botKeyBytes is the entropy behind each issued secret.
const botKeyBytes = 24

// Issuance throttle: at most BotKeyMaxPerWindow requests per source
// address within BotKeyWindow.
const (
	BotKeyWindow       = time.Hour
	BotKeyMaxPerWindow = 3
)

// BotKeyService issues API keys for automated submitters.
type BotKeyService struct {
	store   Store
	limiter Limiter
}

// NewBotKeyService wires the issuance flow to its store and limiter.
func NewBotKeyService(store Store, limiter Limiter) *BotKeyService {
	return &BotKeyService{store: store, limiter: limiter}
}

// Issue provisions a bot key for email, throttled per source identifier
// (the caller's network origin). The returned secret is disclosed exactly
// once: re-requesting for an existing email yields ErrKeyExists and never
// the original value. A persistence failure discards the generated secret
// rather than leaking an orphan.
func (b *BotKeyService) Issue(email, source string) (string, error) {
	// the limiter runs first so invalid input still burns an attempt
	if !b.limiter.Allow(source) {
		return "", ErrRateLimited
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return "", ErrInvalidEmail
	}

	exists, err := b.store.BotKeyEmailExists(email)
	if err != nil {
		return "", fmt.Errorf("bot key lookup failed: %w", err)
	}
	if exists {
		logger.Info.Printf("bot key re-requested for %s; refusing to re-disclose", email)
		return "", ErrKeyExists
	}

	raw := make([]byte, botKeyBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate bot key: %w", err)
	}
	apiKey := hex.EncodeToString(raw)

	if err := b.store.InsertBotKey(email, apiKey); err != nil {
		return "", fmt.Errorf("failed to persist bot key: %w", err)
	}

	logger.Info.Printf("bot key issued for %s", email)
	return apiKey, nil
}
