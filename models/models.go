// Package models defines data structures used across the application.
// File: models/models.go
package models

import "time"

// ----------------------- submission model -----------------------

// SubmittedBy identifies who created a submission.
const (
	SubmittedByHuman       = "human"
	SubmittedByBot         = "bot"
	SubmittedByBotOnBehalf = "bot_on_behalf"
)

// Submission is one user-contributed item on a board. VoteCount is derived
// at read time; it is never stored on the row.
type Submission struct {
	ID               string    `json:"id"`
	EventID          string    `json:"event_id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	PresenterName    string    `json:"presenter_name"`
	Links            []string  `json:"links"`
	SubmissionType   string    `json:"submission_type"`
	SubmittedBy      string    `json:"submitted_by"`
	SubmittedForName string    `json:"submitted_for_name,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	VoteCount        int       `json:"vote_count"`
}

// ------------------------ vote model -----------------------

// Vote records one user's endorsement of one submission. At most one vote
// exists per (submission, user) pair; the database constraint enforces it.
type Vote struct {
	ID           string    `json:"id"`
	SubmissionID string    `json:"submission_id"`
	UserID       string    `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// ------------------------ event model -----------------------

// Event scopes submissions to one named occurrence, identified by slug.
type Event struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// ------------------------ user model -----------------------

// User is an attendee account. BannedUntil after the current time means
// the account cannot sign in.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	BannedUntil  time.Time `json:"banned_until,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ------------------------ bot key model -----------------------

// BotKey is an opaque credential issued to automated submitters.
// The APIKey value is disclosed to the caller exactly once, at creation.
type BotKey struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	APIKey    string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
