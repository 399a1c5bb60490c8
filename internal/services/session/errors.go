package session

// SessionError is a custom error type for session-related errors
type SessionError string

// Error implements the error interface
func (e SessionError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrUnauthorized        SessionError = "invalid host credentials"
	ErrTokenInvalid        SessionError = "invalid or expired host token"
	ErrSessionNotFound     SessionError = "session not found"
	ErrSessionCompleted    SessionError = "session has been completed"
	ErrPollIndexOutOfRange SessionError = "poll index out of range"
	ErrNoMediaItems        SessionError = "poll requires at least one media item"
	ErrInvalidMediaURL     SessionError = "media URL is malformed"
	ErrInvalidMediaType    SessionError = "media type must be image or video"
	ErrInvalidTimer        SessionError = "timer must be a positive number of seconds"
	ErrReorderMismatch     SessionError = "reordered polls must be exactly the existing polls"
	ErrPollNotActive       SessionError = "poll is not open for voting"
	ErrInvalidRating       SessionError = "rating must be between 0 and 10"
	ErrVotingClosed        SessionError = "voting window has closed"
	ErrNilConfig           SessionError = "config cannot be nil"
	ErrNilSessionRepo      SessionError = "session repository cannot be nil"
	ErrNilTokenRepo        SessionError = "token repository cannot be nil"
	ErrNilPublisher        SessionError = "publisher cannot be nil"
)
