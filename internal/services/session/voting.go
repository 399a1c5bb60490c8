package session

import (
	"context"
	"errors"
	"time"

	"github.com/Konrad-GB/voting-website/internal/models"
	"github.com/Konrad-GB/voting-website/internal/notify"
)

// StartPoll opens the poll at an index for voting. Starting always
// resets the poll's vote ledger, discarding any votes from a
// previous run of the same poll.
func (s *service) StartPoll(ctx context.Context, input *StartPollInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}

	var (
		started   *models.Poll
		pollIndex int
	)

	_, err := s.mutateSession(ctx, input.SessionID, func(session *models.Session) error {
		if session.Status == models.SessionStatusCompleted {
			return ErrSessionCompleted
		}
		if input.Index < 0 || input.Index >= len(session.Polls) {
			return ErrPollIndexOutOfRange
		}

		poll := session.Polls[input.Index]
		now := s.clock.Now()
		poll.StartedAt = &now

		session.CurrentPollIndex = input.Index
		session.Votes[poll.ID] = make(models.VoteLedger)
		if session.Status == models.SessionStatusDraft {
			session.Status = models.SessionStatusPresenting
		}

		started = poll
		pollIndex = input.Index
		return nil
	})
	if err != nil {
		return err
	}

	// Announce only after the aggregate write landed
	s.publisher.PublishPollStarted(input.SessionID, &notify.PollStartedEvent{
		Poll:      started,
		PollIndex: pollIndex,
	})

	return nil
}

// GetCurrentPoll returns the active poll, if any, along with the
// calling voter's recorded state against it. Voters poll this every
// couple of seconds; it is a single store read with no lock.
func (s *service) GetCurrentPoll(ctx context.Context, input *GetCurrentPollInput) (*GetCurrentPollOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	index := session.CurrentPollIndex
	if index == models.NoActivePoll || index >= len(session.Polls) {
		return &GetCurrentPollOutput{
			PollIndex: models.NoActivePoll,
		}, nil
	}

	poll := session.Polls[index]
	output := &GetCurrentPollOutput{
		Poll:      poll,
		PollIndex: index,
	}

	if input.VoterID != "" {
		if rating, ok := session.Votes[poll.ID][input.VoterID]; ok {
			output.HasVoted = true
			output.VoterRating = &rating
		}
	}

	return output, nil
}

// SubmitVote records a rating for an open poll. Resubmitting
// overwrites the voter's previous rating.
func (s *service) SubmitVote(ctx context.Context, input *SubmitVoteInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}

	var results *models.PollResults

	_, err := s.mutateSession(ctx, input.SessionID, func(session *models.Session) error {
		if session.Status == models.SessionStatusCompleted {
			return ErrSessionCompleted
		}

		ledger, ok := session.Votes[input.PollID]
		if !ok {
			return ErrPollNotActive
		}

		if input.Rating < MinRating || input.Rating > MaxRating {
			return ErrInvalidRating
		}

		if err := s.checkVotingWindow(session, input.PollID); err != nil {
			return err
		}

		ledger[input.VoterID] = input.Rating
		results = computeResults(ledger, session.Voters)
		return nil
	})
	if err != nil {
		return err
	}

	s.publisher.PublishVoteUpdate(input.SessionID, &notify.VoteUpdateEvent{
		PollID:  input.PollID,
		Results: results,
	})

	return nil
}

// checkVotingWindow rejects votes landing at or after the poll's
// timer expiry. Expiry is a pure function of the stored start time
// and the current clock; nothing schedules it.
func (s *service) checkVotingWindow(session *models.Session, pollID string) error {
	for _, poll := range session.Polls {
		if poll.ID != pollID {
			continue
		}

		if poll.TimerSeconds <= 0 || poll.StartedAt == nil {
			return nil
		}

		window := time.Duration(poll.TimerSeconds) * time.Second
		if s.clock.Now().Sub(*poll.StartedAt) >= window {
			return ErrVotingClosed
		}
		return nil
	}

	// Ledger entries can outlive poll deletion; a vote against a
	// deleted poll has no window left to honor
	return ErrPollNotActive
}
