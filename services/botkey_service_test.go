// file: services/botkey_service_test.go
package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// allowAll is a Limiter that never refuses.
type allowAll struct{}

func (allowAll) Allow(string) bool { return true }

// denyAll is a Limiter that always refuses.
type denyAll struct{}

func (denyAll) Allow(string) bool { return false }

func TestIssue_NormalizesEmail(t *testing.T) {
	store := new(MockStore)
	store.On("BotKeyEmailExists", "bot@example.com").Return(false, nil)
	store.On("InsertBotKey", "bot@example.com", mock.AnythingOfType("string")).Return(nil)

	svc := NewBotKeyService(store, allowAll{})
	key, err := svc.Issue("  Bot@Example.COM  ", "1.2.3.4")

	assert.NoError(t, err)
	assert.Len(t, key, 48, "24 random bytes hex-encoded")
	store.AssertExpectations(t)
}

func TestIssue_InvalidEmail(t *testing.T) {
	store := new(MockStore)
	svc := NewBotKeyService(store, allowAll{})

	_, err := svc.Issue("", "1.2.3.4")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.Issue("no-at-sign", "1.2.3.4")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	store.AssertNotCalled(t, "InsertBotKey", mock.Anything, mock.Anything)
}

func TestIssue_RateLimitedRegardlessOfEmailValidity(t *testing.T) {
	store := new(MockStore)
	svc := NewBotKeyService(store, denyAll{})

	_, err := svc.Issue("bot@example.com", "1.2.3.4")
	assert.ErrorIs(t, err, ErrRateLimited)

	_, err = svc.Issue("not-an-email", "1.2.3.4")
	assert.ErrorIs(t, err, ErrRateLimited, "throttle outranks input validation")

	store.AssertNotCalled(t, "BotKeyEmailExists", mock.Anything)
}

func TestIssue_DisclosureOnce(t *testing.T) {
	store := new(MockStore)
	store.On("BotKeyEmailExists", "bot@example.com").Return(true, nil)

	svc := NewBotKeyService(store, allowAll{})

	// however many times the caller retries, the original secret never comes back
	for i := 0; i < 3; i++ {
		key, err := svc.Issue("bot@example.com", "1.2.3.4")
		assert.ErrorIs(t, err, ErrKeyExists)
		assert.Empty(t, key)
	}
	store.AssertNotCalled(t, "InsertBotKey", mock.Anything, mock.Anything)
}

func TestIssue_PersistenceFailureDiscardsSecret(t *testing.T) {
	store := new(MockStore)
	store.On("BotKeyEmailExists", "bot@example.com").Return(false, nil)
	store.On("InsertBotKey", "bot@example.com", mock.AnythingOfType("string")).
		Return(errors.New("disk on fire"))

	svc := NewBotKeyService(store, allowAll{})
	key, err := svc.Issue("bot@example.com", "1.2.3.4")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrKeyExists)
	assert.Empty(t, key, "no orphan disclosure after a failed insert")
}

func TestIssue_EndToEndRateWindow(t *testing.T) {
	store := new(MockStore)
	store.On("BotKeyEmailExists", mock.AnythingOfType("string")).Return(false, nil)
	store.On("InsertBotKey", mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil)

	limiter := NewMemoryLimiter(time.Hour, 3)
	svc := NewBotKeyService(store, limiter)

	_, err := svc.Issue("a@example.com", "9.9.9.9")
	assert.NoError(t, err)
	_, err = svc.Issue("b@example.com", "9.9.9.9")
	assert.NoError(t, err)
	_, err = svc.Issue("c@example.com", "9.9.9.9")
	assert.NoError(t, err)

	_, err = svc.Issue("d@example.com", "9.9.9.9")
	assert.ErrorIs(t, err, ErrRateLimited)
}
