package session

import (
	"github.com/Konrad-GB/voting-website/internal/common/clock"
	"github.com/Konrad-GB/voting-website/internal/common/uuid"
	"github.com/Konrad-GB/voting-website/internal/models"
	"github.com/Konrad-GB/voting-website/internal/notify"
	sessionRepo "github.com/Konrad-GB/voting-website/internal/repositories/session"
	tokenRepo "github.com/Konrad-GB/voting-website/internal/repositories/token"
)

// Rating bounds accepted for a vote
const (
	MinRating = 0
	MaxRating = 10
)

// DefaultTimerSeconds is the voting window applied when a poll is
// created without one
const DefaultTimerSeconds = 60

// Config holds configuration for the session service
type Config struct {
	// SessionRepo persists session aggregates
	SessionRepo sessionRepo.Repository

	// TokenRepo persists issued host tokens
	TokenRepo tokenRepo.Repository

	// Publisher pushes poll and vote events to observers
	Publisher notify.Publisher

	// Clock provides the current time (defaults to the system clock)
	Clock clock.Clock

	// IDGenerator produces identifiers (defaults to random UUIDs)
	IDGenerator uuid.Generator

	// HostUsername is the fixed operator identity
	HostUsername string

	// HostPassword is the fixed operator secret
	HostPassword string
}

type LoginInput struct {
	Username string
	Password string
}

type LoginOutput struct {
	// Token authorizes subsequent host-scoped operations
	Token string
}

type ValidateHostTokenInput struct {
	Token string
}

type CreateSessionInput struct {
	// Token must be a valid host token
	Token string

	// Name is an optional display label for the session
	Name string
}

type CreateSessionOutput struct {
	SessionID string
}

type ListSessionsInput struct {
	Token string
}

type ListSessionsOutput struct {
	Summaries []*models.SessionSummary
}

type DeleteSessionInput struct {
	Token     string
	SessionID string
}

type CompleteSessionInput struct {
	Token     string
	SessionID string
}

type VerifyVoterInput struct {
	SessionID string

	// Label is the voter-supplied contact label, typically an email.
	// Labels are not unique; each verification mints a new voter ID.
	Label string
}

type VerifyVoterOutput struct {
	VoterID string
}

type AddPollInput struct {
	SessionID    string
	Title        string
	MediaItems   []models.MediaItem
	TimerSeconds int
}

type AddPollOutput struct {
	Poll *models.Poll
}

type UpdatePollInput struct {
	SessionID    string
	Index        int
	Title        string
	MediaItems   []models.MediaItem
	TimerSeconds int
}

type UpdatePollOutput struct {
	Poll *models.Poll
}

type DeletePollInput struct {
	SessionID string
	Index     int
}

type ReorderPollsInput struct {
	SessionID string

	// PollIDs is the complete poll list in its new order
	PollIDs []string
}

type StartPollInput struct {
	SessionID string
	Index     int
}

type GetSessionInput struct {
	SessionID string
}

type GetSessionOutput struct {
	Session *models.Session
}

type GetCurrentPollInput struct {
	SessionID string

	// VoterID is optional; when present the output reports the
	// voter's prior-vote state
	VoterID string
}

type GetCurrentPollOutput struct {
	// Poll is nil when no poll is active
	Poll *models.Poll

	// PollIndex is the active poll's position, or models.NoActivePoll
	PollIndex int

	// HasVoted reports whether the voter already voted on the
	// active poll
	HasVoted bool

	// VoterRating is the voter's recorded rating, nil if none
	VoterRating *int
}

type SubmitVoteInput struct {
	SessionID string
	PollID    string
	VoterID   string
	Rating    int
}

type GetResultsInput struct {
	SessionID string
	PollID    string
}

type GetResultsOutput struct {
	Results *models.PollResults
}
