package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/Konrad-GB/voting-website/internal/repositories/session Repository

import (
	"context"

	"github.com/Konrad-GB/voting-website/internal/models"
)

// Repository defines the interface for session aggregate persistence.
// SaveSession replaces the whole aggregate in one operation; callers
// never see partial-field updates.
type Repository interface {
	// CreateSession persists a new session; the ID must be unused
	CreateSession(ctx context.Context, input *CreateSessionInput) error

	// SaveSession persists an existing session, refreshing its
	// retention window. Saving a missing session signals not-found;
	// an expired session is never recreated.
	SaveSession(ctx context.Context, input *SaveSessionInput) error

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error)

	// DeleteSession removes a session
	DeleteSession(ctx context.Context, input *DeleteSessionInput) error

	// ListSessionSummaries retrieves the lightweight index of stored
	// sessions, newest first
	ListSessionSummaries(ctx context.Context, input *ListSessionSummariesInput) (*ListSessionSummariesOutput, error)
}
