// services/mock_store.go
package services

import (
	"time"

	"github.com/stretchr/testify/mock"

	"go-con-board/models"
)

// MockStore implements the Store interface for testing.
type MockStore struct {
	mock.Mock
}

// EventBySlug resolves an event by slug.
func (m *MockStore) EventBySlug(slug string) (models.Event, error) {
	args := m.Called(slug)
	return args.Get(0).(models.Event), args.Error(1)
}

// RankedSubmissions returns submissions with computed vote counts.
func (m *MockStore) RankedSubmissions(eventSlug string) ([]models.Submission, error) {
	args := m.Called(eventSlug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Submission), args.Error(1)
}

// SubmissionsByEvent returns raw submissions for an event.
func (m *MockStore) SubmissionsByEvent(eventID string) ([]models.Submission, error) {
	args := m.Called(eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Submission), args.Error(1)
}

// InsertSubmission stages a submission for insertion.
func (m *MockStore) InsertSubmission(s models.Submission) (string, error) {
	args := m.Called(s)
	return args.String(0), args.Error(1)
}

// InsertVote records a vote.
func (m *MockStore) InsertVote(submissionID, userID string) error {
	args := m.Called(submissionID, userID)
	return args.Error(0)
}

// VoteCount returns the counted votes for a submission.
func (m *MockStore) VoteCount(submissionID string) (int, error) {
	args := m.Called(submissionID)
	return args.Int(0), args.Error(1)
}

// CreateUser registers an account.
func (m *MockStore) CreateUser(email, passwordHash string) (string, error) {
	args := m.Called(email, passwordHash)
	return args.String(0), args.Error(1)
}

// UserByEmail looks up an account.
func (m *MockStore) UserByEmail(email string) (models.User, error) {
	args := m.Called(email)
	return args.Get(0).(models.User), args.Error(1)
}

// UsersByEmailSuffix lists accounts by email suffix.
func (m *MockStore) UsersByEmailSuffix(suffix string) ([]models.User, error) {
	args := m.Called(suffix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

// BanUser blocks an account until the given time.
func (m *MockStore) BanUser(id string, until time.Time) error {
	args := m.Called(id, until)
	return args.Error(0)
}

// BotKeyEmailExists reports whether a key exists for the email.
func (m *MockStore) BotKeyEmailExists(email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

// InsertBotKey persists an issued key.
func (m *MockStore) InsertBotKey(email, apiKey string) error {
	args := m.Called(email, apiKey)
	return args.Error(0)
}

// BotKeyEmail resolves an api key to its email.
func (m *MockStore) BotKeyEmail(apiKey string) (string, error) {
	args := m.Called(apiKey)
	return args.String(0), args.Error(1)
}

// DeleteVotesByUsers removes votes cast by the given accounts.
func (m *MockStore) DeleteVotesByUsers(userIDs []string) (int64, error) {
	args := m.Called(userIDs)
	return args.Get(0).(int64), args.Error(1)
}

// VotesByUsers lists votes cast by the given accounts.
func (m *MockStore) VotesByUsers(userIDs []string) ([]models.Vote, error) {
	args := m.Called(userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Vote), args.Error(1)
}

// AddVoteExclusion registers an excluded email suffix.
func (m *MockStore) AddVoteExclusion(suffix string) error {
	args := m.Called(suffix)
	return args.Error(0)
}
