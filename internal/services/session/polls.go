package session

import (
	"context"
	"errors"
	"net/url"

	"github.com/Konrad-GB/voting-website/internal/models"
)

// AddPoll validates and appends a poll to a session
func (s *service) AddPoll(ctx context.Context, input *AddPollInput) (*AddPollOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	timerSeconds, err := normalizeTimer(input.TimerSeconds)
	if err != nil {
		return nil, err
	}

	if err := validateMediaItems(input.MediaItems); err != nil {
		return nil, err
	}

	poll := &models.Poll{
		ID:           s.idGen.NewID(),
		Title:        input.Title,
		MediaItems:   input.MediaItems,
		TimerSeconds: timerSeconds,
	}

	_, err = s.mutateSession(ctx, input.SessionID, func(session *models.Session) error {
		if session.Status == models.SessionStatusCompleted {
			return ErrSessionCompleted
		}
		session.Polls = append(session.Polls, poll)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &AddPollOutput{
		Poll: poll,
	}, nil
}

// UpdatePoll replaces the poll at an index. The poll keeps its ID
// and any start timestamp from a previous run.
func (s *service) UpdatePoll(ctx context.Context, input *UpdatePollInput) (*UpdatePollOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	timerSeconds, err := normalizeTimer(input.TimerSeconds)
	if err != nil {
		return nil, err
	}

	if err := validateMediaItems(input.MediaItems); err != nil {
		return nil, err
	}

	var updated *models.Poll

	_, err = s.mutateSession(ctx, input.SessionID, func(session *models.Session) error {
		if session.Status == models.SessionStatusCompleted {
			return ErrSessionCompleted
		}
		if input.Index < 0 || input.Index >= len(session.Polls) {
			return ErrPollIndexOutOfRange
		}

		existing := session.Polls[input.Index]
		updated = &models.Poll{
			ID:           existing.ID,
			Title:        input.Title,
			MediaItems:   input.MediaItems,
			TimerSeconds: timerSeconds,
			StartedAt:    existing.StartedAt,
		}
		session.Polls[input.Index] = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &UpdatePollOutput{
		Poll: updated,
	}, nil
}

// DeletePoll removes the poll at an index. The active-poll pointer
// follows the poll it was addressing: deleting the active poll
// clears it, deleting an earlier poll shifts it down.
func (s *service) DeletePoll(ctx context.Context, input *DeletePollInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}

	_, err := s.mutateSession(ctx, input.SessionID, func(session *models.Session) error {
		if session.Status == models.SessionStatusCompleted {
			return ErrSessionCompleted
		}
		if input.Index < 0 || input.Index >= len(session.Polls) {
			return ErrPollIndexOutOfRange
		}

		session.Polls = append(session.Polls[:input.Index], session.Polls[input.Index+1:]...)

		if session.CurrentPollIndex == input.Index {
			session.CurrentPollIndex = models.NoActivePoll
		} else if session.CurrentPollIndex > input.Index {
			session.CurrentPollIndex--
		}
		return nil
	})
	return err
}

// ReorderPolls replaces the poll list with a new ordering. The
// submitted ID multiset must exactly match the existing polls; the
// stored poll objects are reused, so a reorder can never alter poll
// content. The numeric active-poll index is left untouched, matching
// the historical behavior hosts rely on (the index may address a
// different poll afterwards).
func (s *service) ReorderPolls(ctx context.Context, input *ReorderPollsInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}

	_, err := s.mutateSession(ctx, input.SessionID, func(session *models.Session) error {
		if session.Status == models.SessionStatusCompleted {
			return ErrSessionCompleted
		}

		if len(input.PollIDs) != len(session.Polls) {
			return ErrReorderMismatch
		}

		remaining := make(map[string]*models.Poll, len(session.Polls))
		for _, poll := range session.Polls {
			remaining[poll.ID] = poll
		}

		reordered := make([]*models.Poll, 0, len(input.PollIDs))
		for _, pollID := range input.PollIDs {
			poll, ok := remaining[pollID]
			if !ok {
				return ErrReorderMismatch
			}
			delete(remaining, pollID)
			reordered = append(reordered, poll)
		}

		session.Polls = reordered
		return nil
	})
	return err
}

func normalizeTimer(timerSeconds int) (int, error) {
	if timerSeconds == 0 {
		return DefaultTimerSeconds, nil
	}
	if timerSeconds < 0 {
		return 0, ErrInvalidTimer
	}
	return timerSeconds, nil
}

func validateMediaItems(items []models.MediaItem) error {
	if len(items) == 0 {
		return ErrNoMediaItems
	}

	for _, item := range items {
		if item.Type != models.MediaTypeImage && item.Type != models.MediaTypeVideo {
			return ErrInvalidMediaType
		}

		u, err := url.ParseRequestURI(item.URL)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return ErrInvalidMediaURL
		}
	}

	return nil
}
