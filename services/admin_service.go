// Package services: services/admin_service.go
// Privileged batch remediation against automated-account abuse. Every
// sub-step runs independently and records its own outcome, so a failing
// step never masks its siblings.
package services

import (
	"time"

	"go-con-board/logger"
	"go-con-board/models"
)

// banDuration is the practical "forever" applied to remediated accounts.
const banDuration = 876000 * time.Hour // ~100 years

// AccountSummary identifies one matched account in a report.
type AccountSummary struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// BanOutcome records the ban attempt for one account.
type BanOutcome struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Banned bool   `json:"banned"`
	Error  string `json:"error,omitempty"`
}

// CleanupReport enumerates the result of each remediation sub-step.
type CleanupReport struct {
	Suffix            string           `json:"suffix"`
	Accounts          []AccountSummary `json:"accounts"`
	AccountsError     string           `json:"accounts_error,omitempty"`
	DeletedVotes      int64            `json:"deleted_votes"`
	DeletedVotesError string           `json:"deleted_votes_error,omitempty"`
	Bans              []BanOutcome     `json:"bans"`
	ExclusionAdded    bool             `json:"exclusion_added"`
	ExclusionError    string           `json:"exclusion_error,omitempty"`
}

// AuditReport is a read-only snapshot for operator diagnosis.
// SubmissionRows counts raw submission rows; a mismatch with
// len(Submissions) means the counting query is dropping entries.
type AuditReport struct {
	Accounts       []AccountSummary    `json:"accounts"`
	RemainingVotes []models.Vote       `json:"remaining_votes"`
	Submissions    []models.Submission `json:"submissions"`
	SubmissionRows int                 `json:"submission_rows"`
}

// AdminService runs remediation jobs against the store.
type AdminService struct {
	store Store
}

// NewAdminService wires the remediation jobs to their store.
func NewAdminService(store Store) *AdminService {
	return &AdminService{store: store}
}

// CleanupBots remediates accounts whose email ends with suffix:
// delete their votes, ban the accounts, and register the suffix as a
// permanent vote exclusion so future votes never count even if rows
// survive. Steps after account listing still run when earlier ones fail;
// only a failed listing leaves nothing to act on.
func (a *AdminService) CleanupBots(suffix string) CleanupReport {
	report := CleanupReport{Suffix: suffix}

	users, err := a.store.UsersByEmailSuffix(suffix)
	if err != nil {
		report.AccountsError = err.Error()
		logger.Error.Printf("cleanup: listing accounts for %s failed: %v", suffix, err)
	}

	var userIDs []string
	for _, u := range users {
		report.Accounts = append(report.Accounts, AccountSummary{
			ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt,
		})
		userIDs = append(userIDs, u.ID)
	}

	if len(userIDs) > 0 {
		deleted, err := a.store.DeleteVotesByUsers(userIDs)
		if err != nil {
			report.DeletedVotesError = err.Error()
			logger.Error.Printf("cleanup: deleting votes failed: %v", err)
		} else {
			report.DeletedVotes = deleted
			logger.Info.Printf("cleanup: removed %d votes from %d %s accounts",
				deleted, len(userIDs), suffix)
		}

		until := time.Now().Add(banDuration)
		for _, u := range users {
			outcome := BanOutcome{ID: u.ID, Email: u.Email, Banned: true}
			if err := a.store.BanUser(u.ID, until); err != nil {
				outcome.Banned = false
				outcome.Error = err.Error()
				logger.Error.Printf("cleanup: banning %s failed: %v", u.Email, err)
			}
			report.Bans = append(report.Bans, outcome)
		}
	}

	// the suffix stops counting even when deletion or bans failed
	if err := a.store.AddVoteExclusion(suffix); err != nil {
		report.ExclusionError = err.Error()
		logger.Error.Printf("cleanup: registering exclusion %s failed: %v", suffix, err)
	} else {
		report.ExclusionAdded = true
	}

	return report
}

// Audit snapshots the accounts matching suffix, any votes they still hold,
// and every submission for the event with current counts.
func (a *AdminService) Audit(suffix, eventSlug string) (AuditReport, error) {
	var report AuditReport

	users, err := a.store.UsersByEmailSuffix(suffix)
	if err != nil {
		return AuditReport{}, err
	}

	var userIDs []string
	for _, u := range users {
		report.Accounts = append(report.Accounts, AccountSummary{
			ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt,
		})
		userIDs = append(userIDs, u.ID)
	}

	votes, err := a.store.VotesByUsers(userIDs)
	if err != nil {
		return AuditReport{}, err
	}
	report.RemainingVotes = votes

	subs, err := a.store.RankedSubmissions(eventSlug)
	if err != nil {
		return AuditReport{}, err
	}
	report.Submissions = subs

	event, err := a.store.EventBySlug(eventSlug)
	if err != nil {
		return AuditReport{}, err
	}
	raw, err := a.store.SubmissionsByEvent(event.ID)
	if err != nil {
		return AuditReport{}, err
	}
	report.SubmissionRows = len(raw)

	return report, nil
}
