package session

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/Konrad-GB/voting-website/internal/services/session Service

import "context"

// Service defines the interface for session lifecycle operations
type Service interface {
	// Login checks host credentials and issues a host token
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// ValidateHostToken checks a previously issued host token
	ValidateHostToken(ctx context.Context, input *ValidateHostTokenInput) error

	// CreateSession creates a new draft session
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)

	// ListSessions returns summaries of the stored sessions
	ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error)

	// DeleteSession removes a session
	DeleteSession(ctx context.Context, input *DeleteSessionInput) error

	// CompleteSession marks a session as finished
	CompleteSession(ctx context.Context, input *CompleteSessionInput) error

	// VerifyVoter registers a voter against a session and returns
	// their voter ID
	VerifyVoter(ctx context.Context, input *VerifyVoterInput) (*VerifyVoterOutput, error)

	// AddPoll appends a poll to a session
	AddPoll(ctx context.Context, input *AddPollInput) (*AddPollOutput, error)

	// UpdatePoll replaces the poll at an index, preserving its ID
	UpdatePoll(ctx context.Context, input *UpdatePollInput) (*UpdatePollOutput, error)

	// DeletePoll removes the poll at an index
	DeletePoll(ctx context.Context, input *DeletePollInput) error

	// ReorderPolls replaces the poll list with a new ordering of the
	// same polls
	ReorderPolls(ctx context.Context, input *ReorderPollsInput) error

	// StartPoll opens a poll for voting
	StartPoll(ctx context.Context, input *StartPollInput) error

	// GetSession returns the full session aggregate
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)

	// GetCurrentPoll returns the active poll and the voter's state
	// against it
	GetCurrentPoll(ctx context.Context, input *GetCurrentPollInput) (*GetCurrentPollOutput, error)

	// SubmitVote records a voter's rating for an open poll
	SubmitVote(ctx context.Context, input *SubmitVoteInput) error

	// GetResults computes the live statistics for a poll
	GetResults(ctx context.Context, input *GetResultsInput) (*GetResultsOutput, error)
}
