package session

import (
	"context"
	"errors"
	"sync"

	"github.com/Konrad-GB/voting-website/internal/common/clock"
	"github.com/Konrad-GB/voting-website/internal/common/uuid"
	"github.com/Konrad-GB/voting-website/internal/models"
	"github.com/Konrad-GB/voting-website/internal/notify"
	sessionRepo "github.com/Konrad-GB/voting-website/internal/repositories/session"
	tokenRepo "github.com/Konrad-GB/voting-website/internal/repositories/token"
)

// service implements the Service interface
type service struct {
	sessionRepo  sessionRepo.Repository
	tokenRepo    tokenRepo.Repository
	publisher    notify.Publisher
	clock        clock.Clock
	idGen        uuid.Generator
	hostUsername string
	hostPassword string

	// locks serializes read-modify-write cycles per session ID, so
	// two concurrent mutations can never overwrite each other's
	// aggregate state. Entries are never evicted; one idle mutex per
	// session seen by this process is an accepted cost, since evicting
	// while another goroutine waits on the same mutex could hand out a
	// second lock for the same session.
	locks sync.Map
}

// New creates a new session service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}

	if cfg.TokenRepo == nil {
		return nil, ErrNilTokenRepo
	}

	if cfg.Publisher == nil {
		return nil, ErrNilPublisher
	}

	clk := cfg.Clock
	if clk == nil {
		clk = &clock.DefaultClock{}
	}

	idGen := cfg.IDGenerator
	if idGen == nil {
		idGen = uuid.New()
	}

	return &service{
		sessionRepo:  cfg.SessionRepo,
		tokenRepo:    cfg.TokenRepo,
		publisher:    cfg.Publisher,
		clock:        clk,
		idGen:        idGen,
		hostUsername: cfg.HostUsername,
		hostPassword: cfg.HostPassword,
	}, nil
}

// Login checks the fixed operator credentials and issues a host token
func (s *service) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.Username != s.hostUsername || input.Password != s.hostPassword {
		return nil, ErrUnauthorized
	}

	hostToken := s.idGen.NewID()
	err := s.tokenRepo.SaveToken(ctx, &tokenRepo.SaveTokenInput{
		Token:    hostToken,
		Username: input.Username,
	})
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		Token: hostToken,
	}, nil
}

// ValidateHostToken checks that a host token is still valid
func (s *service) ValidateHostToken(ctx context.Context, input *ValidateHostTokenInput) error {
	if input == nil || input.Token == "" {
		return ErrTokenInvalid
	}

	err := s.tokenRepo.ValidateToken(ctx, &tokenRepo.ValidateTokenInput{
		Token: input.Token,
	})
	if err != nil {
		if errors.Is(err, tokenRepo.ErrTokenNotFound) {
			return ErrTokenInvalid
		}
		return err
	}

	return nil
}

// CreateSession creates a new draft session for an authenticated host
func (s *service) CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if err := s.ValidateHostToken(ctx, &ValidateHostTokenInput{Token: input.Token}); err != nil {
		return nil, err
	}

	session := &models.Session{
		ID:               s.idGen.NewShortID(),
		Name:             input.Name,
		Polls:            []*models.Poll{},
		CurrentPollIndex: models.NoActivePoll,
		Votes:            make(map[string]models.VoteLedger),
		Voters:           make(map[string]string),
		Status:           models.SessionStatusDraft,
		CreatedAt:        s.clock.Now(),
	}

	err := s.sessionRepo.CreateSession(ctx, &sessionRepo.CreateSessionInput{
		Session: session,
	})
	if err != nil {
		return nil, err
	}

	return &CreateSessionOutput{
		SessionID: session.ID,
	}, nil
}

// ListSessions returns summaries of every stored session
func (s *service) ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if err := s.ValidateHostToken(ctx, &ValidateHostTokenInput{Token: input.Token}); err != nil {
		return nil, err
	}

	result, err := s.sessionRepo.ListSessionSummaries(ctx, &sessionRepo.ListSessionSummariesInput{})
	if err != nil {
		return nil, err
	}

	return &ListSessionsOutput{
		Summaries: result.Summaries,
	}, nil
}

// DeleteSession removes a session
func (s *service) DeleteSession(ctx context.Context, input *DeleteSessionInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}

	if err := s.ValidateHostToken(ctx, &ValidateHostTokenInput{Token: input.Token}); err != nil {
		return err
	}

	unlock := s.lockSession(input.SessionID)
	defer unlock()

	err := s.sessionRepo.DeleteSession(ctx, &sessionRepo.DeleteSessionInput{
		SessionID: input.SessionID,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return ErrSessionNotFound
		}
		return err
	}

	return nil
}

// CompleteSession marks a session as finished. Completed sessions
// reject all further mutations.
func (s *service) CompleteSession(ctx context.Context, input *CompleteSessionInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}

	if err := s.ValidateHostToken(ctx, &ValidateHostTokenInput{Token: input.Token}); err != nil {
		return err
	}

	_, err := s.mutateSession(ctx, input.SessionID, func(session *models.Session) error {
		session.Status = models.SessionStatusCompleted
		session.CurrentPollIndex = models.NoActivePoll
		return nil
	})
	return err
}

// VerifyVoter registers a voter against a session. Verifying twice
// with the same label mints two independent voter IDs; the voter ID,
// not the label, is the voting identity.
func (s *service) VerifyVoter(ctx context.Context, input *VerifyVoterInput) (*VerifyVoterOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	voterID := s.idGen.NewID()

	_, err := s.mutateSession(ctx, input.SessionID, func(session *models.Session) error {
		if session.Status == models.SessionStatusCompleted {
			return ErrSessionCompleted
		}
		session.Voters[voterID] = input.Label
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &VerifyVoterOutput{
		VoterID: voterID,
	}, nil
}

// GetSession returns the full session aggregate
func (s *service) GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	return &GetSessionOutput{
		Session: session,
	}, nil
}

// lockSession acquires the per-session mutation lock and returns the
// release func
func (s *service) lockSession(sessionID string) func() {
	v, _ := s.locks.LoadOrStore(sessionID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// getSession fetches a session, translating the repository's
// not-found sentinel
func (s *service) getSession(ctx context.Context, sessionID string) (*models.Session, error) {
	session, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{
		SessionID: sessionID,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

// mutateSession runs one serialized read-modify-write cycle against
// a session. The mutation either lands whole via SaveSession or not
// at all.
func (s *service) mutateSession(ctx context.Context, sessionID string, fn func(*models.Session) error) (*models.Session, error) {
	unlock := s.lockSession(sessionID)
	defer unlock()

	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := fn(session); err != nil {
		return nil, err
	}

	err = s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{
		Session: session,
	})
	if err != nil {
		// The session can expire between the read and the write; the
		// store refuses to resurrect it
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	return session, nil
}
