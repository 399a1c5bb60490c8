package uuid

import "github.com/google/uuid"

//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/Konrad-GB/voting-website/internal/common/uuid Generator

// Generator produces the opaque identifiers used for sessions,
// polls, voters and host tokens
type Generator interface {
	NewID() string

	// NewShortID returns a short join-code style identifier, used
	// for session IDs so they stay typeable
	NewShortID() string
}

// shortIDLength is the number of UUID characters kept for short IDs
const shortIDLength = 8

// DefaultGenerator implements Generator using random UUIDs
type DefaultGenerator struct{}

func New() *DefaultGenerator {
	return &DefaultGenerator{}
}

// NewID returns a new UUID string
func (d *DefaultGenerator) NewID() string {
	return uuid.New().String()
}

// NewShortID returns the first 8 characters of a new UUID
func (d *DefaultGenerator) NewShortID() string {
	return uuid.New().String()[:shortIDLength]
}
