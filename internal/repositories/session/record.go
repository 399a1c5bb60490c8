package session

import (
	"time"

	"github.com/Konrad-GB/voting-website/internal/models"
)

// Storage-boundary shapes. The domain types stay free of wire tags;
// these records define the JSON layout stored under session keys,
// matching the shape voters' sessions were historically stored with
// (votes and voters as plain objects).

type mediaItemRecord struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

type pollRecord struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	MediaItems   []mediaItemRecord `json:"mediaItems"`
	TimerSeconds int               `json:"timer"`
	StartedAt    *time.Time        `json:"startedAt,omitempty"`
}

type sessionRecord struct {
	ID               string                    `json:"id"`
	Name             string                    `json:"name,omitempty"`
	Polls            []pollRecord              `json:"polls"`
	CurrentPollIndex int                       `json:"currentPollIndex"`
	Votes            map[string]map[string]int `json:"votes"`
	Voters           map[string]string         `json:"voters"`
	Status           string                    `json:"status"`
	CreatedAt        time.Time                 `json:"createdAt"`
}

func newSessionRecord(s *models.Session) *sessionRecord {
	rec := &sessionRecord{
		ID:               s.ID,
		Name:             s.Name,
		Polls:            make([]pollRecord, 0, len(s.Polls)),
		CurrentPollIndex: s.CurrentPollIndex,
		Votes:            make(map[string]map[string]int, len(s.Votes)),
		Voters:           make(map[string]string, len(s.Voters)),
		Status:           string(s.Status),
		CreatedAt:        s.CreatedAt,
	}

	for _, poll := range s.Polls {
		rec.Polls = append(rec.Polls, newPollRecord(poll))
	}

	for pollID, ledger := range s.Votes {
		entry := make(map[string]int, len(ledger))
		for voterID, rating := range ledger {
			entry[voterID] = rating
		}
		rec.Votes[pollID] = entry
	}

	for voterID, label := range s.Voters {
		rec.Voters[voterID] = label
	}

	return rec
}

func newPollRecord(p *models.Poll) pollRecord {
	rec := pollRecord{
		ID:           p.ID,
		Title:        p.Title,
		MediaItems:   make([]mediaItemRecord, 0, len(p.MediaItems)),
		TimerSeconds: p.TimerSeconds,
		StartedAt:    p.StartedAt,
	}

	for _, item := range p.MediaItems {
		rec.MediaItems = append(rec.MediaItems, mediaItemRecord{
			URL:  item.URL,
			Type: string(item.Type),
		})
	}

	return rec
}

func (r *sessionRecord) toModel() *models.Session {
	session := &models.Session{
		ID:               r.ID,
		Name:             r.Name,
		Polls:            make([]*models.Poll, 0, len(r.Polls)),
		CurrentPollIndex: r.CurrentPollIndex,
		Votes:            make(map[string]models.VoteLedger, len(r.Votes)),
		Voters:           make(map[string]string, len(r.Voters)),
		Status:           models.SessionStatus(r.Status),
		CreatedAt:        r.CreatedAt,
	}

	for i := range r.Polls {
		session.Polls = append(session.Polls, r.Polls[i].toModel())
	}

	for pollID, entry := range r.Votes {
		ledger := make(models.VoteLedger, len(entry))
		for voterID, rating := range entry {
			ledger[voterID] = rating
		}
		session.Votes[pollID] = ledger
	}

	for voterID, label := range r.Voters {
		session.Voters[voterID] = label
	}

	return session
}

func (r *pollRecord) toModel() *models.Poll {
	poll := &models.Poll{
		ID:           r.ID,
		Title:        r.Title,
		MediaItems:   make([]models.MediaItem, 0, len(r.MediaItems)),
		TimerSeconds: r.TimerSeconds,
		StartedAt:    r.StartedAt,
	}

	for _, item := range r.MediaItems {
		poll.MediaItems = append(poll.MediaItems, models.MediaItem{
			URL:  item.URL,
			Type: models.MediaType(item.Type),
		})
	}

	return poll
}
