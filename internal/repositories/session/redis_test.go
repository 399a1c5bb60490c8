package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/Konrad-GB/voting-website/internal/models"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.testNow = time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) newTestSession() *models.Session {
	startedAt := s.testNow.Add(time.Minute)

	return &models.Session{
		ID:   "test-session-id",
		Name: "Friday screening",
		Polls: []*models.Poll{
			{
				ID:    "poll-1",
				Title: "Opening cut",
				MediaItems: []models.MediaItem{
					{URL: "https://cdn.example.com/a.jpg", Type: models.MediaTypeImage},
					{URL: "https://cdn.example.com/a.mp4", Type: models.MediaTypeVideo},
				},
				TimerSeconds: 60,
				StartedAt:    &startedAt,
			},
			{
				ID:    "poll-2",
				Title: "Alternate cut",
				MediaItems: []models.MediaItem{
					{URL: "https://cdn.example.com/b.jpg", Type: models.MediaTypeImage},
				},
				TimerSeconds: 30,
			},
		},
		CurrentPollIndex: 0,
		Votes: map[string]models.VoteLedger{
			"poll-1": {
				"voter-1": 8,
				"voter-2": 4,
			},
		},
		Voters: map[string]string{
			"voter-1": "ada@example.com",
			"voter-2": "grace@example.com",
		},
		Status:    models.SessionStatusPresenting,
		CreatedAt: s.testNow,
	}
}

// createTestSession seeds the store with a freshly created session
func (s *RedisRepositoryTestSuite) createTestSession(session *models.Session) {
	s.Require().NoError(s.repo.CreateSession(context.Background(), &CreateSessionInput{
		Session: session,
	}))
}

func (s *RedisRepositoryTestSuite) TestCreateAndGetSession() {
	session := s.newTestSession()
	s.createTestSession(session)

	retrieved, err := s.repo.GetSession(context.Background(), &GetSessionInput{
		SessionID: "test-session-id",
	})
	s.Require().NoError(err)
	s.Require().NotNil(retrieved)

	s.Equal("test-session-id", retrieved.ID)
	s.Equal("Friday screening", retrieved.Name)
	s.Equal(models.SessionStatusPresenting, retrieved.Status)
	s.Equal(0, retrieved.CurrentPollIndex)
	s.Equal(s.testNow.Unix(), retrieved.CreatedAt.Unix())

	s.Require().Len(retrieved.Polls, 2)
	s.Equal("poll-1", retrieved.Polls[0].ID)
	s.Equal("Opening cut", retrieved.Polls[0].Title)
	s.Equal(60, retrieved.Polls[0].TimerSeconds)
	s.Require().NotNil(retrieved.Polls[0].StartedAt)
	s.Equal(s.testNow.Add(time.Minute).Unix(), retrieved.Polls[0].StartedAt.Unix())
	s.Require().Len(retrieved.Polls[0].MediaItems, 2)
	s.Equal(models.MediaTypeVideo, retrieved.Polls[0].MediaItems[1].Type)
	s.Nil(retrieved.Polls[1].StartedAt)

	s.Require().Contains(retrieved.Votes, "poll-1")
	s.Equal(8, retrieved.Votes["poll-1"]["voter-1"])
	s.Equal(4, retrieved.Votes["poll-1"]["voter-2"])
	s.Equal("ada@example.com", retrieved.Voters["voter-1"])
}

func (s *RedisRepositoryTestSuite) TestGetSessionNotFound() {
	_, err := s.repo.GetSession(context.Background(), &GetSessionInput{
		SessionID: "missing-session-id",
	})
	s.Require().Error(err)
	s.Equal(ErrSessionNotFound, err)
}

func (s *RedisRepositoryTestSuite) TestCreateExistingSession() {
	session := s.newTestSession()
	s.createTestSession(session)

	err := s.repo.CreateSession(context.Background(), &CreateSessionInput{
		Session: session,
	})
	s.Require().Error(err)
	s.Equal(ErrSessionExists, err)
}

func (s *RedisRepositoryTestSuite) TestCreateSetsRetentionWindow() {
	session := s.newTestSession()
	s.createTestSession(session)

	ttl := s.mr.TTL("session:test-session-id")
	s.Equal(24*time.Hour, ttl)

	// Expire the key and verify the session is gone
	s.mr.FastForward(25 * time.Hour)

	_, err := s.repo.GetSession(context.Background(), &GetSessionInput{
		SessionID: "test-session-id",
	})
	s.Require().Error(err)
	s.Equal(ErrSessionNotFound, err)
}

func (s *RedisRepositoryTestSuite) TestSaveRefreshesRetentionWindow() {
	session := s.newTestSession()
	s.createTestSession(session)

	s.mr.FastForward(23 * time.Hour)

	// Re-save inside the window; expiry starts over
	err := s.repo.SaveSession(context.Background(), &SaveSessionInput{
		Session: session,
	})
	s.Require().NoError(err)

	s.mr.FastForward(2 * time.Hour)

	_, err = s.repo.GetSession(context.Background(), &GetSessionInput{
		SessionID: "test-session-id",
	})
	s.Require().NoError(err)
}

func (s *RedisRepositoryTestSuite) TestSaveMissingSessionNotFound() {
	session := s.newTestSession()
	session.ID = "ghost123"

	err := s.repo.SaveSession(context.Background(), &SaveSessionInput{
		Session: session,
	})
	s.Require().Error(err)
	s.Equal(ErrSessionNotFound, err)

	// Nothing was written
	_, err = s.repo.GetSession(context.Background(), &GetSessionInput{
		SessionID: "ghost123",
	})
	s.Require().Error(err)
	s.Equal(ErrSessionNotFound, err)
}

func (s *RedisRepositoryTestSuite) TestSaveAfterExpiryNotFound() {
	session := s.newTestSession()
	s.createTestSession(session)

	s.mr.FastForward(25 * time.Hour)

	// Saving an expired session must not resurrect it
	err := s.repo.SaveSession(context.Background(), &SaveSessionInput{
		Session: session,
	})
	s.Require().Error(err)
	s.Equal(ErrSessionNotFound, err)

	_, err = s.repo.GetSession(context.Background(), &GetSessionInput{
		SessionID: "test-session-id",
	})
	s.Require().Error(err)
	s.Equal(ErrSessionNotFound, err)
}

func (s *RedisRepositoryTestSuite) TestDeleteSession() {
	session := s.newTestSession()
	s.createTestSession(session)

	err := s.repo.DeleteSession(context.Background(), &DeleteSessionInput{
		SessionID: "test-session-id",
	})
	s.Require().NoError(err)

	_, err = s.repo.GetSession(context.Background(), &GetSessionInput{
		SessionID: "test-session-id",
	})
	s.Require().Error(err)
	s.Equal(ErrSessionNotFound, err)

	// The listing no longer includes the deleted session
	result, err := s.repo.ListSessionSummaries(context.Background(), &ListSessionSummariesInput{})
	s.Require().NoError(err)
	s.Len(result.Summaries, 0)
}

func (s *RedisRepositoryTestSuite) TestDeleteSessionNotFound() {
	err := s.repo.DeleteSession(context.Background(), &DeleteSessionInput{
		SessionID: "missing-session-id",
	})
	s.Require().Error(err)
	s.Equal(ErrSessionNotFound, err)
}

func (s *RedisRepositoryTestSuite) TestListSessionSummaries() {
	older := s.newTestSession()
	older.ID = "older-session-id"
	older.CreatedAt = s.testNow.Add(-time.Hour)

	newer := s.newTestSession()
	newer.ID = "newer-session-id"
	newer.Name = "Saturday screening"
	newer.Status = models.SessionStatusDraft
	newer.Polls = newer.Polls[:1]

	s.createTestSession(older)
	s.createTestSession(newer)

	result, err := s.repo.ListSessionSummaries(context.Background(), &ListSessionSummariesInput{})
	s.Require().NoError(err)
	s.Require().Len(result.Summaries, 2)

	// Newest first
	s.Equal("newer-session-id", result.Summaries[0].ID)
	s.Equal("Saturday screening", result.Summaries[0].Name)
	s.Equal(1, result.Summaries[0].PollCount)
	s.Equal(models.SessionStatusDraft, result.Summaries[0].Status)

	s.Equal("older-session-id", result.Summaries[1].ID)
	s.Equal(2, result.Summaries[1].PollCount)
}

func (s *RedisRepositoryTestSuite) TestListSkipsExpiredSessions() {
	session := s.newTestSession()
	s.createTestSession(session)

	// Expire the aggregate but leave the index entry behind
	s.mr.FastForward(25 * time.Hour)

	result, err := s.repo.ListSessionSummaries(context.Background(), &ListSessionSummariesInput{})
	s.Require().NoError(err)
	s.Len(result.Summaries, 0)
}

func (s *RedisRepositoryTestSuite) TestStoreUnavailable() {
	session := s.newTestSession()
	s.createTestSession(session)

	s.mr.Close()

	_, err := s.repo.GetSession(context.Background(), &GetSessionInput{
		SessionID: "test-session-id",
	})
	s.Require().Error(err)
	s.True(errors.Is(err, ErrStoreUnavailable))
}
