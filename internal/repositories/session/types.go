package session

import "github.com/Konrad-GB/voting-website/internal/models"

type CreateSessionInput struct {
	Session *models.Session
}

type SaveSessionInput struct {
	Session *models.Session
}

type GetSessionInput struct {
	SessionID string
}

type DeleteSessionInput struct {
	SessionID string
}

type ListSessionSummariesInput struct {
}

type ListSessionSummariesOutput struct {
	Summaries []*models.SessionSummary
}
