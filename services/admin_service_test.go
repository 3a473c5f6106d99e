// file: services/admin_service_test.go
package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"go-con-board/models"
)

func botAccounts() []models.User {
	created := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	return []models.User{
		{ID: "u-a", Email: "a@x.to", CreatedAt: created},
		{ID: "u-b", Email: "b@x.to", CreatedAt: created.Add(time.Minute)},
	}
}

func TestCleanupBots_FullRun(t *testing.T) {
	store := new(MockStore)
	store.On("UsersByEmailSuffix", "@x.to").Return(botAccounts(), nil)
	store.On("DeleteVotesByUsers", []string{"u-a", "u-b"}).Return(int64(7), nil)
	store.On("BanUser", "u-a", mock.AnythingOfType("time.Time")).Return(nil)
	store.On("BanUser", "u-b", mock.AnythingOfType("time.Time")).Return(nil)
	store.On("AddVoteExclusion", "@x.to").Return(nil)

	report := NewAdminService(store).CleanupBots("@x.to")

	assert.Len(t, report.Accounts, 2)
	assert.Equal(t, "a@x.to", report.Accounts[0].Email)
	assert.Equal(t, "b@x.to", report.Accounts[1].Email)
	assert.Equal(t, int64(7), report.DeletedVotes)
	assert.Empty(t, report.DeletedVotesError)
	assert.True(t, report.Bans[0].Banned)
	assert.True(t, report.Bans[1].Banned)
	assert.True(t, report.ExclusionAdded)
	store.AssertExpectations(t)
}

func TestCleanupBots_BanUsesLongDuration(t *testing.T) {
	store := new(MockStore)
	store.On("UsersByEmailSuffix", "@x.to").Return(botAccounts()[:1], nil)
	store.On("DeleteVotesByUsers", []string{"u-a"}).Return(int64(0), nil)
	store.On("AddVoteExclusion", "@x.to").Return(nil)

	var bannedUntil time.Time
	store.On("BanUser", "u-a", mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			bannedUntil = args.Get(1).(time.Time)
		}).
		Return(nil)

	NewAdminService(store).CleanupBots("@x.to")

	assert.True(t, bannedUntil.After(time.Now().Add(50*365*24*time.Hour)),
		"ban must be a practical forever")
}

func TestCleanupBots_StepFailuresAreIsolated(t *testing.T) {
	store := new(MockStore)
	store.On("UsersByEmailSuffix", "@x.to").Return(botAccounts(), nil)
	store.On("DeleteVotesByUsers", []string{"u-a", "u-b"}).
		Return(int64(0), errors.New("delete blew up"))
	store.On("BanUser", "u-a", mock.AnythingOfType("time.Time")).Return(nil)
	store.On("BanUser", "u-b", mock.AnythingOfType("time.Time")).
		Return(errors.New("ban blew up"))
	store.On("AddVoteExclusion", "@x.to").Return(nil)

	report := NewAdminService(store).CleanupBots("@x.to")

	// the failed delete is reported, and the bans still ran
	assert.Equal(t, "delete blew up", report.DeletedVotesError)
	assert.True(t, report.Bans[0].Banned)
	assert.False(t, report.Bans[1].Banned)
	assert.Equal(t, "ban blew up", report.Bans[1].Error)
	assert.True(t, report.ExclusionAdded, "exclusion runs even after earlier failures")
	store.AssertExpectations(t)
}

func TestCleanupBots_NoMatchesStillRegistersExclusion(t *testing.T) {
	store := new(MockStore)
	store.On("UsersByEmailSuffix", "@x.to").Return([]models.User{}, nil)
	store.On("AddVoteExclusion", "@x.to").Return(nil)

	report := NewAdminService(store).CleanupBots("@x.to")

	assert.Empty(t, report.Accounts)
	assert.Equal(t, int64(0), report.DeletedVotes)
	assert.True(t, report.ExclusionAdded)
	store.AssertNotCalled(t, "DeleteVotesByUsers", mock.Anything)
	store.AssertNotCalled(t, "BanUser", mock.Anything, mock.Anything)
}

func TestCleanupBots_OnlyMatchingAccountsAffected(t *testing.T) {
	// c@y.com does not match the suffix, so only a and b reach the store calls
	store := new(MockStore)
	store.On("UsersByEmailSuffix", "@x.to").Return(botAccounts(), nil)
	store.On("DeleteVotesByUsers", []string{"u-a", "u-b"}).Return(int64(3), nil)
	store.On("BanUser", mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil)
	store.On("AddVoteExclusion", "@x.to").Return(nil)

	report := NewAdminService(store).CleanupBots("@x.to")

	var emails []string
	for _, a := range report.Accounts {
		emails = append(emails, a.Email)
	}
	assert.Equal(t, []string{"a@x.to", "b@x.to"}, emails)
	store.AssertExpectations(t)
}

func TestAudit_Snapshot(t *testing.T) {
	store := new(MockStore)
	store.On("UsersByEmailSuffix", "@x.to").Return(botAccounts(), nil)
	store.On("VotesByUsers", []string{"u-a", "u-b"}).Return([]models.Vote{
		{ID: "v1", SubmissionID: "s1", UserID: "u-a"},
	}, nil)
	store.On("RankedSubmissions", "con-sf").Return([]models.Submission{
		{ID: "s1", Title: "Demo", VoteCount: 4},
	}, nil)
	store.On("EventBySlug", "con-sf").Return(models.Event{ID: "e1", Slug: "con-sf"}, nil)
	store.On("SubmissionsByEvent", "e1").Return([]models.Submission{
		{ID: "s1", Title: "Demo"},
	}, nil)

	report, err := NewAdminService(store).Audit("@x.to", "con-sf")

	assert.NoError(t, err)
	assert.Len(t, report.Accounts, 2)
	assert.Len(t, report.RemainingVotes, 1)
	assert.Len(t, report.Submissions, 1)
	assert.Equal(t, 1, report.SubmissionRows)
}

func TestAudit_ListFailurePropagates(t *testing.T) {
	store := new(MockStore)
	store.On("UsersByEmailSuffix", "@x.to").Return(nil, errors.New("boom"))

	_, err := NewAdminService(store).Audit("@x.to", "con-sf")
	assert.Error(t, err)
}
