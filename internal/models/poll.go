package models

import (
	"time"
)

// MediaType categorizes a poll media item
type MediaType string

const (
	// MediaTypeImage is a still image reference
	MediaTypeImage MediaType = "image"

	// MediaTypeVideo is a video reference
	MediaTypeVideo MediaType = "video"
)

// MediaItem is a single hosted media reference attached to a poll
type MediaItem struct {
	// URL is the already-hosted location of the media
	URL string

	// Type is the kind of media the URL points at
	Type MediaType
}

// Poll is a single votable unit within a session
type Poll struct {
	// ID is the unique identifier for the poll
	ID string

	// Title is the display title shown to voters
	Title string

	// MediaItems are the media references presented with the poll,
	// in display order. A poll always has at least one.
	MediaItems []MediaItem

	// TimerSeconds is the voting window duration. Zero or negative
	// means the poll has no window and stays open until the host
	// moves on.
	TimerSeconds int

	// StartedAt is when the poll was last started. Nil until the
	// poll has been started for the first time.
	StartedAt *time.Time
}
