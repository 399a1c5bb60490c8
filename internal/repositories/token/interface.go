package token

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/Konrad-GB/voting-website/internal/repositories/token Repository

import (
	"context"
)

// Repository defines the interface for host auth token persistence
type Repository interface {
	// SaveToken stores an issued token with the standard retention
	// window
	SaveToken(ctx context.Context, input *SaveTokenInput) error

	// ValidateToken checks that a token exists and has not expired
	ValidateToken(ctx context.Context, input *ValidateTokenInput) error

	// DeleteToken revokes a token
	DeleteToken(ctx context.Context, input *DeleteTokenInput) error
}
