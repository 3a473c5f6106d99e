// Package services: services/store.go
// Storage layer for events, submissions, votes, users, and bot keys.
// Works against SQLite or Postgres through database/sql; the vote
// uniqueness constraint in the schema is the authoritative guard against
// duplicate votes.
package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-con-board/logger"
	"go-con-board/models"
)

// Sentinel errors interpreted at the controller boundary.
var (
	ErrEventNotFound  = errors.New("event not found")
	ErrAlreadyVoted   = errors.New("already voted")
	ErrUserNotFound   = errors.New("user not found")
	ErrEmailTaken     = errors.New("email already registered")
	ErrBotKeyNotFound = errors.New("bot key not found")
)

// Store is the persistence boundary used by controllers and services.
type Store interface {
	EventBySlug(slug string) (models.Event, error)
	RankedSubmissions(eventSlug string) ([]models.Submission, error)
	SubmissionsByEvent(eventID string) ([]models.Submission, error)
	InsertSubmission(s models.Submission) (string, error)
	InsertVote(submissionID, userID string) error
	VoteCount(submissionID string) (int, error)

	CreateUser(email, passwordHash string) (string, error)
	UserByEmail(email string) (models.User, error)
	UsersByEmailSuffix(suffix string) ([]models.User, error)
	BanUser(id string, until time.Time) error

	BotKeyEmailExists(email string) (bool, error)
	InsertBotKey(email, apiKey string) error
	BotKeyEmail(apiKey string) (string, error)

	DeleteVotesByUsers(userIDs []string) (int64, error)
	VotesByUsers(userIDs []string) ([]models.Vote, error)
	AddVoteExclusion(suffix string) error
}

// SQLStore implements Store over a database/sql connection.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore wraps an open connection.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// CreateSchema creates all tables. Safe to call repeatedly.
func (s *SQLStore) CreateSchema() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS events (
    id TEXT PRIMARY KEY,
    slug TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    banned_until TIMESTAMP,
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS submissions (
    id TEXT PRIMARY KEY,
    event_id TEXT NOT NULL REFERENCES events(id),
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    presenter_name TEXT NOT NULL,
    links TEXT,
    submission_type TEXT NOT NULL,
    submitted_by TEXT NOT NULL DEFAULT 'human',
    submitted_for_name TEXT,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_submissions_event ON submissions(event_id);

CREATE TABLE IF NOT EXISTS votes (
    id TEXT PRIMARY KEY,
    submission_id TEXT NOT NULL REFERENCES submissions(id),
    user_id TEXT NOT NULL REFERENCES users(id),
    created_at TIMESTAMP NOT NULL,
    UNIQUE (submission_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_votes_submission ON votes(submission_id);
CREATE INDEX IF NOT EXISTS idx_votes_user ON votes(user_id);

CREATE TABLE IF NOT EXISTS bot_keys (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    api_key TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS vote_exclusions (
    suffix TEXT PRIMARY KEY
);
`

// isUniqueViolation recognizes a uniqueness-constraint error from either
// driver. SQLite reports "UNIQUE constraint failed: ..."; Postgres reports
// "duplicate key value violates unique constraint ...".
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

// encodeLinks serializes the links slice for the TEXT column; nil for none.
func encodeLinks(links []string) (any, error) {
	if len(links) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(links)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func decodeLinks(raw sql.NullString) []string {
	if !raw.Valid || raw.String == "" {
		return nil
	}
	var links []string
	if err := json.Unmarshal([]byte(raw.String), &links); err != nil {
		logger.Warn.Printf("store: malformed links column: %v", err)
		return nil
	}
	return links
}

// ---------------- events ----------------

// EventBySlug resolves an event by its slug. ErrEventNotFound means the
// event has no backing row yet ("not configured").
func (s *SQLStore) EventBySlug(slug string) (models.Event, error) {
	var e models.Event
	err := s.db.QueryRow(`
		SELECT id, slug, name FROM events WHERE slug = $1
	`, slug).Scan(&e.ID, &e.Slug, &e.Name)
	if err == sql.ErrNoRows {
		return models.Event{}, ErrEventNotFound
	}
	if err != nil {
		return models.Event{}, fmt.Errorf("failed to query event: %w", err)
	}
	return e, nil
}

// EnsureEvent inserts the event if its slug is new and returns its id.
// Used by bootstrap seeding and tests.
func (s *SQLStore) EnsureEvent(slug, name string) (string, error) {
	e, err := s.EventBySlug(slug)
	if err == nil {
		return e.ID, nil
	}
	if !errors.Is(err, ErrEventNotFound) {
		return "", err
	}
	id := uuid.NewString()
	if _, err := s.db.Exec(`
		INSERT INTO events (id, slug, name) VALUES ($1, $2, $3)
	`, id, slug, name); err != nil {
		return "", fmt.Errorf("failed to insert event: %w", err)
	}
	return id, nil
}

// ---------------- submissions ----------------

const submissionColumns = `s.id, s.event_id, s.title, s.description, s.presenter_name,
		s.links, s.submission_type, s.submitted_by, s.submitted_for_name, s.created_at`

// RankedSubmissions returns every submission for the event identified by
// slug, with vote counts computed in the query. Votes cast by accounts
// whose email matches a registered exclusion suffix are never counted,
// whether or not their rows still exist. Ordered by votes then recency;
// callers re-rank with RankSubmissions after any filtering.
func (s *SQLStore) RankedSubmissions(eventSlug string) ([]models.Submission, error) {
	rows, err := s.db.Query(`
		SELECT `+submissionColumns+`,
		       COUNT(v.id) AS vote_count
		FROM submissions s
		JOIN events e ON e.id = s.event_id
		LEFT JOIN votes v ON v.submission_id = s.id
		    AND NOT EXISTS (
		        SELECT 1 FROM vote_exclusions x
		        JOIN users u ON u.id = v.user_id
		        WHERE u.email LIKE '%' || x.suffix
		    )
		WHERE e.slug = $1
		GROUP BY `+submissionColumns+`
		ORDER BY COUNT(v.id) DESC, s.created_at DESC
	`, eventSlug)
	if err != nil {
		return nil, fmt.Errorf("failed to query ranked submissions: %w", err)
	}
	defer rows.Close()

	return scanSubmissions(rows, true)
}

// SubmissionsByEvent returns submissions without vote counts. This is the
// raw form used by the admin audit snapshot; the board always goes through
// RankedSubmissions so degraded reads never show zeroed counts.
func (s *SQLStore) SubmissionsByEvent(eventID string) ([]models.Submission, error) {
	rows, err := s.db.Query(`
		SELECT `+submissionColumns+`
		FROM submissions s
		WHERE s.event_id = $1
		ORDER BY s.created_at DESC
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	return scanSubmissions(rows, false)
}

func scanSubmissions(rows *sql.Rows, withVotes bool) ([]models.Submission, error) {
	var out []models.Submission
	for rows.Next() {
		var sub models.Submission
		var links sql.NullString
		var forName sql.NullString

		dest := []any{
			&sub.ID, &sub.EventID, &sub.Title, &sub.Description, &sub.PresenterName,
			&links, &sub.SubmissionType, &sub.SubmittedBy, &forName, &sub.CreatedAt,
		}
		if withVotes {
			dest = append(dest, &sub.VoteCount)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		sub.Links = decodeLinks(links)
		sub.SubmittedForName = forName.String
		out = append(out, sub)
	}
	return out, rows.Err()
}

// InsertSubmission stages a validated submission and returns its id.
// The caller is responsible for sanitizing links beforehand.
func (s *SQLStore) InsertSubmission(sub models.Submission) (string, error) {
	id := uuid.NewString()
	links, err := encodeLinks(sub.Links)
	if err != nil {
		return "", fmt.Errorf("failed to encode links: %w", err)
	}

	var forName any
	if sub.SubmittedForName != "" {
		forName = sub.SubmittedForName
	}

	_, err = s.db.Exec(`
		INSERT INTO submissions
		    (id, event_id, title, description, presenter_name, links,
		     submission_type, submitted_by, submitted_for_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, id, sub.EventID, sub.Title, sub.Description, sub.PresenterName, links,
		sub.SubmissionType, sub.SubmittedBy, forName, time.Now())
	if err != nil {
		return "", fmt.Errorf("failed to insert submission: %w", err)
	}
	return id, nil
}

// ---------------- votes ----------------

// InsertVote records one user's vote on one submission. A uniqueness
// violation on (submission_id, user_id) maps to ErrAlreadyVoted so the
// caller can tell a repeat vote apart from a storage failure.
func (s *SQLStore) InsertVote(submissionID, userID string) error {
	_, err := s.db.Exec(`
		INSERT INTO votes (id, submission_id, user_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, uuid.NewString(), submissionID, userID, time.Now())
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyVoted
		}
		return fmt.Errorf("failed to insert vote: %w", err)
	}
	return nil
}

// VoteCount returns the current counted votes for one submission,
// honouring exclusion suffixes.
func (s *SQLStore) VoteCount(submissionID string) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM votes v
		WHERE v.submission_id = $1
		  AND NOT EXISTS (
		      SELECT 1 FROM vote_exclusions x
		      JOIN users u ON u.id = v.user_id
		      WHERE u.email LIKE '%' || x.suffix
		  )
	`, submissionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return count, nil
}

// ---------------- users ----------------

// CreateUser registers a new account and returns its id.
func (s *SQLStore) CreateUser(email, passwordHash string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(`
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`, id, email, passwordHash, time.Now())
	if err != nil {
		if isUniqueViolation(err) {
			return "", ErrEmailTaken
		}
		return "", fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}

// UserByEmail looks up an account by its (already normalized) email.
func (s *SQLStore) UserByEmail(email string) (models.User, error) {
	var u models.User
	var banned sql.NullTime
	err := s.db.QueryRow(`
		SELECT id, email, password_hash, banned_until, created_at
		FROM users WHERE email = $1
	`, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &banned, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	if banned.Valid {
		u.BannedUntil = banned.Time
	}
	return u, nil
}

// UsersByEmailSuffix lists accounts whose email ends with the given suffix.
func (s *SQLStore) UsersByEmailSuffix(suffix string) ([]models.User, error) {
	rows, err := s.db.Query(`
		SELECT id, email, password_hash, banned_until, created_at
		FROM users WHERE email LIKE '%' || $1
		ORDER BY created_at
	`, suffix)
	if err != nil {
		return nil, fmt.Errorf("failed to query users by suffix: %w", err)
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		var u models.User
		var banned sql.NullTime
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &banned, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		if banned.Valid {
			u.BannedUntil = banned.Time
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// BanUser blocks the account from signing in until the given time.
func (s *SQLStore) BanUser(id string, until time.Time) error {
	res, err := s.db.Exec(`
		UPDATE users SET banned_until = $1 WHERE id = $2
	`, until, id)
	if err != nil {
		return fmt.Errorf("failed to ban user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ---------------- bot keys ----------------

// BotKeyEmailExists reports whether a key was ever issued for the email.
// Existence is all callers may learn; the secret is never re-read.
func (s *SQLStore) BotKeyEmailExists(email string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM bot_keys WHERE email = $1)
	`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check bot key: %w", err)
	}
	return exists, nil
}

// InsertBotKey persists a freshly issued key.
func (s *SQLStore) InsertBotKey(email, apiKey string) error {
	_, err := s.db.Exec(`
		INSERT INTO bot_keys (id, email, api_key, created_at)
		VALUES ($1, $2, $3, $4)
	`, uuid.NewString(), email, apiKey, time.Now())
	if err != nil {
		return fmt.Errorf("failed to insert bot key: %w", err)
	}
	return nil
}

// BotKeyEmail resolves an api key to the email it was issued for.
func (s *SQLStore) BotKeyEmail(apiKey string) (string, error) {
	var email string
	err := s.db.QueryRow(`
		SELECT email FROM bot_keys WHERE api_key = $1
	`, apiKey).Scan(&email)
	if err == sql.ErrNoRows {
		return "", ErrBotKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query bot key: %w", err)
	}
	return email, nil
}

// ---------------- remediation ----------------

// placeholders builds "$2, $3, ..." for n values starting at $start.
func placeholders(start, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", start+i)
	}
	return strings.Join(parts, ", ")
}

// DeleteVotesByUsers removes every vote cast by the given accounts and
// returns how many rows went away.
func (s *SQLStore) DeleteVotesByUsers(userIDs []string) (int64, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}
	args := make([]any, len(userIDs))
	for i, id := range userIDs {
		args[i] = id
	}
	res, err := s.db.Exec(
		`DELETE FROM votes WHERE user_id IN (`+placeholders(1, len(userIDs))+`)`,
		args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete votes: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted votes: %w", err)
	}
	return n, nil
}

// VotesByUsers lists the remaining votes cast by the given accounts.
func (s *SQLStore) VotesByUsers(userIDs []string) ([]models.Vote, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	args := make([]any, len(userIDs))
	for i, id := range userIDs {
		args[i] = id
	}
	rows, err := s.db.Query(
		`SELECT id, submission_id, user_id, created_at FROM votes
		 WHERE user_id IN (`+placeholders(1, len(userIDs))+`)`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	var out []models.Vote
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.ID, &v.SubmissionID, &v.UserID, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// AddVoteExclusion permanently excludes votes from accounts matching the
// email suffix from every count, independent of row deletion.
func (s *SQLStore) AddVoteExclusion(suffix string) error {
	_, err := s.db.Exec(`
		INSERT INTO vote_exclusions (suffix) VALUES ($1)
	`, suffix)
	if err != nil {
		if isUniqueViolation(err) {
			return nil // already excluded
		}
		return fmt.Errorf("failed to add vote exclusion: %w", err)
	}
	return nil
}
