package notify

//go:generate mockgen -package=mocks -destination=mocks/mock_publisher.go github.com/Konrad-GB/voting-website/internal/notify Publisher

import (
	"github.com/Konrad-GB/voting-website/internal/models"
)

// Event names pushed to connected observers
const (
	EventPollStarted = "pollStarted"
	EventVoteUpdate  = "voteUpdate"
)

// PollStartedEvent announces that a poll was opened for voting
type PollStartedEvent struct {
	// Poll is the poll that was started
	Poll *models.Poll

	// PollIndex is the poll's position in the session
	PollIndex int
}

// VoteUpdateEvent carries live aggregate stats after a vote lands
type VoteUpdateEvent struct {
	// PollID is the poll the vote was recorded against
	PollID string

	// Results are the aggregated stats including the new vote
	Results *models.PollResults
}

// Publisher pushes session events to connected observers. Delivery
// is best effort; a publish never blocks the voting path.
type Publisher interface {
	// PublishPollStarted notifies every observer of a session
	PublishPollStarted(sessionID string, event *PollStartedEvent)

	// PublishVoteUpdate notifies only host observers of a session
	PublishVoteUpdate(sessionID string, event *VoteUpdateEvent)
}
