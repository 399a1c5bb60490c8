package models

import (
	"time"
)

// SessionStatus represents the lifecycle state of a session
type SessionStatus string

const (
	// SessionStatusDraft indicates a session being authored, before
	// any poll has been started
	SessionStatusDraft SessionStatus = "draft"

	// SessionStatusPresenting indicates a session with at least one
	// started poll
	SessionStatusPresenting SessionStatus = "presenting"

	// SessionStatusCompleted indicates a session the host has ended
	SessionStatusCompleted SessionStatus = "completed"
)

// NoActivePoll is the CurrentPollIndex value when no poll is open
const NoActivePoll = -1

// VoteLedger records the ratings submitted for one poll, keyed by
// voter ID. At most one rating per voter; resubmission overwrites.
type VoteLedger map[string]int

// Session is the aggregate root for one hosted polling event
type Session struct {
	// ID is the unique identifier for the session
	ID string

	// Name is an optional display label
	Name string

	// Polls is the ordered list of polls, in presentation order
	Polls []*Poll

	// CurrentPollIndex points at the active poll, or NoActivePoll
	CurrentPollIndex int

	// Votes maps poll ID to that poll's vote ledger. A ledger entry
	// exists only for polls that have been started.
	Votes map[string]VoteLedger

	// Voters maps voter ID to the contact label supplied at
	// verification time
	Voters map[string]string

	// Status is the lifecycle state of the session
	Status SessionStatus

	// CreatedAt is when the session was created
	CreatedAt time.Time
}

// SessionSummary is the lightweight listing form of a session
type SessionSummary struct {
	// ID is the session's unique identifier
	ID string

	// Name is the session's display label
	Name string

	// PollCount is the number of authored polls
	PollCount int

	// Status is the session's lifecycle state
	Status SessionStatus

	// CreatedAt is when the session was created
	CreatedAt time.Time
}
