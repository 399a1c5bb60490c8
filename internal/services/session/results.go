package session

import (
	"context"
	"errors"
	"math"
	"sort"

	"github.com/Konrad-GB/voting-website/internal/models"
)

// UnknownVoterLabel substitutes for voters missing from the registry
const UnknownVoterLabel = "Unknown"

// GetResults computes the live statistics for one poll. A poll that
// was never started yields zero-valued results, not an error, so
// hosts can poll this endpoint freely.
func (s *service) GetResults(ctx context.Context, input *GetResultsInput) (*GetResultsOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	ledger, ok := session.Votes[input.PollID]
	if !ok {
		return &GetResultsOutput{
			Results: &models.PollResults{
				Ratings:  []int{},
				PerVoter: []models.VoterVote{},
			},
		}, nil
	}

	return &GetResultsOutput{
		Results: computeResults(ledger, session.Voters),
	}, nil
}

// computeResults aggregates a vote ledger into live statistics. It
// never mutates the ledger and is safe to call repeatedly.
func computeResults(ledger models.VoteLedger, voters map[string]string) *models.PollResults {
	results := &models.PollResults{
		TotalVotes: len(ledger),
		Ratings:    make([]int, 0, len(ledger)),
		PerVoter:   make([]models.VoterVote, 0, len(ledger)),
	}

	sum := 0
	for voterID, rating := range ledger {
		sum += rating
		results.Ratings = append(results.Ratings, rating)

		label, ok := voters[voterID]
		if !ok {
			label = UnknownVoterLabel
		}
		results.PerVoter = append(results.PerVoter, models.VoterVote{
			Label:  label,
			Rating: rating,
		})
	}

	if results.TotalVotes > 0 {
		mean := float64(sum) / float64(results.TotalVotes)
		results.Average = math.Round(mean*100) / 100
	}

	sort.Ints(results.Ratings)
	sort.Slice(results.PerVoter, func(i, j int) bool {
		if results.PerVoter[i].Label != results.PerVoter[j].Label {
			return results.PerVoter[i].Label < results.PerVoter[j].Label
		}
		return results.PerVoter[i].Rating < results.PerVoter[j].Rating
	})

	return results
}
