package notify

import (
	"log"
	"sync"
	"time"

	"github.com/Konrad-GB/voting-website/internal/models"
)

// Envelope is the wire frame pushed to observers
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Subscriber is one connected observer. Implementations must not
// block in Send; the hub drops slow subscribers.
type Subscriber interface {
	Send(envelope *Envelope) error
}

// Wire shapes for event payloads; domain types carry no JSON tags.

type mediaItemPayload struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

type pollPayload struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	MediaItems   []mediaItemPayload `json:"mediaItems"`
	TimerSeconds int                `json:"timer"`
	StartedAt    *time.Time         `json:"startedAt,omitempty"`
}

type pollStartedPayload struct {
	Poll      pollPayload `json:"poll"`
	PollIndex int         `json:"pollIndex"`
}

type voteWithLabelPayload struct {
	Email  string `json:"email"`
	Rating int    `json:"rating"`
}

type voteUpdatePayload struct {
	PollID          string                 `json:"pollId"`
	TotalVotes      int                    `json:"totalVotes"`
	Average         float64                `json:"average"`
	Ratings         []int                  `json:"ratings"`
	VotesWithEmails []voteWithLabelPayload `json:"votesWithEmails"`
}

// Hub fans session events out to subscribed observers. Observers
// subscribe to a session room; host observers additionally receive
// vote updates.
type Hub struct {
	mu        sync.RWMutex
	observers map[string]map[Subscriber]bool
	hosts     map[string]map[Subscriber]bool
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		observers: make(map[string]map[Subscriber]bool),
		hosts:     make(map[string]map[Subscriber]bool),
	}
}

// Subscribe registers an observer for a session. Host observers
// also receive host-only events.
func (h *Hub) Subscribe(sessionID string, host bool, sub Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.observers[sessionID] == nil {
		h.observers[sessionID] = make(map[Subscriber]bool)
	}
	h.observers[sessionID][sub] = true

	if host {
		if h.hosts[sessionID] == nil {
			h.hosts[sessionID] = make(map[Subscriber]bool)
		}
		h.hosts[sessionID][sub] = true
	}
}

// Unsubscribe removes an observer from a session
func (h *Hub) Unsubscribe(sessionID string, sub Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.observers[sessionID], sub)
	delete(h.hosts[sessionID], sub)

	if len(h.observers[sessionID]) == 0 {
		delete(h.observers, sessionID)
	}
	if len(h.hosts[sessionID]) == 0 {
		delete(h.hosts, sessionID)
	}
}

// ObserverCount returns the number of observers in a session room
func (h *Hub) ObserverCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.observers[sessionID])
}

// PublishPollStarted notifies every observer of a session
func (h *Hub) PublishPollStarted(sessionID string, event *PollStartedEvent) {
	h.broadcast(sessionID, h.observers, &Envelope{
		Event: EventPollStarted,
		Data: pollStartedPayload{
			Poll:      newPollPayload(event.Poll),
			PollIndex: event.PollIndex,
		},
	})
}

// PublishVoteUpdate notifies only host observers of a session
func (h *Hub) PublishVoteUpdate(sessionID string, event *VoteUpdateEvent) {
	payload := voteUpdatePayload{
		PollID:          event.PollID,
		TotalVotes:      event.Results.TotalVotes,
		Average:         event.Results.Average,
		Ratings:         event.Results.Ratings,
		VotesWithEmails: make([]voteWithLabelPayload, 0, len(event.Results.PerVoter)),
	}
	for _, vote := range event.Results.PerVoter {
		payload.VotesWithEmails = append(payload.VotesWithEmails, voteWithLabelPayload{
			Email:  vote.Label,
			Rating: vote.Rating,
		})
	}

	h.broadcast(sessionID, h.hosts, &Envelope{
		Event: EventVoteUpdate,
		Data:  payload,
	})
}

func (h *Hub) broadcast(sessionID string, rooms map[string]map[Subscriber]bool, envelope *Envelope) {
	h.mu.RLock()
	subs := make([]Subscriber, 0, len(rooms[sessionID]))
	for sub := range rooms[sessionID] {
		subs = append(subs, sub)
	}
	h.mu.RUnlock()

	for _, sub := range subs {
		if err := sub.Send(envelope); err != nil {
			log.Printf("notify: dropping observer for session %s: %v", sessionID, err)
			h.Unsubscribe(sessionID, sub)
		}
	}
}

func newPollPayload(p *models.Poll) pollPayload {
	payload := pollPayload{
		ID:           p.ID,
		Title:        p.Title,
		MediaItems:   make([]mediaItemPayload, 0, len(p.MediaItems)),
		TimerSeconds: p.TimerSeconds,
		StartedAt:    p.StartedAt,
	}
	for _, item := range p.MediaItems {
		payload.MediaItems = append(payload.MediaItems, mediaItemPayload{
			URL:  item.URL,
			Type: string(item.Type),
		})
	}
	return payload
}
