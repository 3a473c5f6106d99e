// Package services: services/ranker.go
package services

import (
	"sort"

	"go-con-board/models"
)

// RankSubmissions orders submissions by vote count descending, breaking
// ties by creation time descending. A zero CreatedAt counts as the oldest
// possible time. The sort is stable: submissions equal on both keys keep
// their input order, which also makes ranking idempotent.
func RankSubmissions(subs []models.Submission) []models.Submission {
	out := make([]models.Submission, len(subs))
	copy(out, subs)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].VoteCount != out[j].VoteCount {
			return out[i].VoteCount > out[j].VoteCount
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
