package session

import (
	"time"

	"go.uber.org/mock/gomock"

	"github.com/Konrad-GB/voting-website/internal/models"
	"github.com/Konrad-GB/voting-website/internal/notify"
)

func (s *SessionServiceTestSuite) TestStartPoll() {
	session := s.draftSession()
	s.expectGetSession(session)

	var saved *models.Session
	s.expectSaveSession(&saved)

	var published *notify.PollStartedEvent
	s.mockPublisher.EXPECT().PublishPollStarted(s.testSessionID, gomock.Any()).Do(
		func(_ string, event *notify.PollStartedEvent) {
			published = event
		})

	err := s.service.StartPoll(s.ctx, &StartPollInput{
		SessionID: s.testSessionID,
		Index:     0,
	})
	s.Require().NoError(err)

	s.Equal(0, saved.CurrentPollIndex)
	s.Equal(models.SessionStatusPresenting, saved.Status)
	s.Require().NotNil(saved.Polls[0].StartedAt)
	s.Equal(s.testTime, *saved.Polls[0].StartedAt)

	ledger, ok := saved.Votes["poll-1"]
	s.Require().True(ok)
	s.Empty(ledger)

	s.Require().NotNil(published)
	s.Equal("poll-1", published.Poll.ID)
	s.Equal(0, published.PollIndex)
}

func (s *SessionServiceTestSuite) TestStartPollResetsLedger() {
	session := s.presentingSession()
	s.Require().NotEmpty(session.Votes["poll-1"])
	s.expectGetSession(session)

	var saved *models.Session
	s.expectSaveSession(&saved)
	s.mockPublisher.EXPECT().PublishPollStarted(s.testSessionID, gomock.Any())

	// Restart the already-voted poll; stale votes are discarded
	err := s.service.StartPoll(s.ctx, &StartPollInput{
		SessionID: s.testSessionID,
		Index:     0,
	})
	s.Require().NoError(err)

	s.Empty(saved.Votes["poll-1"])
	s.Equal(s.testTime, *saved.Polls[0].StartedAt)
}

func (s *SessionServiceTestSuite) TestStartPollOutOfRange() {
	session := s.draftSession()
	s.expectGetSession(session)

	err := s.service.StartPoll(s.ctx, &StartPollInput{
		SessionID: s.testSessionID,
		Index:     2,
	})
	s.Require().Error(err)
	s.Equal(ErrPollIndexOutOfRange, err)
}

func (s *SessionServiceTestSuite) TestStartPollCompletedSession() {
	session := s.draftSession()
	session.Status = models.SessionStatusCompleted
	s.expectGetSession(session)

	err := s.service.StartPoll(s.ctx, &StartPollInput{
		SessionID: s.testSessionID,
		Index:     0,
	})
	s.Require().Error(err)
	s.Equal(ErrSessionCompleted, err)
}

func (s *SessionServiceTestSuite) TestGetCurrentPollNoneActive() {
	session := s.draftSession()
	s.expectGetSession(session)

	output, err := s.service.GetCurrentPoll(s.ctx, &GetCurrentPollInput{
		SessionID: s.testSessionID,
	})
	s.Require().NoError(err)

	s.Nil(output.Poll)
	s.Equal(models.NoActivePoll, output.PollIndex)
	s.False(output.HasVoted)
	s.Nil(output.VoterRating)
}

func (s *SessionServiceTestSuite) TestGetCurrentPollVoterHasVoted() {
	session := s.presentingSession()
	s.expectGetSession(session)

	output, err := s.service.GetCurrentPoll(s.ctx, &GetCurrentPollInput{
		SessionID: s.testSessionID,
		VoterID:   "voter-1",
	})
	s.Require().NoError(err)

	s.Require().NotNil(output.Poll)
	s.Equal("poll-1", output.Poll.ID)
	s.Equal(0, output.PollIndex)
	s.True(output.HasVoted)
	s.Require().NotNil(output.VoterRating)
	s.Equal(8, *output.VoterRating)
}

func (s *SessionServiceTestSuite) TestGetCurrentPollVoterNotVoted() {
	session := s.presentingSession()
	s.expectGetSession(session)

	output, err := s.service.GetCurrentPoll(s.ctx, &GetCurrentPollInput{
		SessionID: s.testSessionID,
		VoterID:   "voter-other",
	})
	s.Require().NoError(err)

	s.Require().NotNil(output.Poll)
	s.False(output.HasVoted)
	s.Nil(output.VoterRating)
}

func (s *SessionServiceTestSuite) TestSubmitVote() {
	session := s.presentingSession()
	s.expectGetSession(session)

	var saved *models.Session
	s.expectSaveSession(&saved)

	var published *notify.VoteUpdateEvent
	s.mockPublisher.EXPECT().PublishVoteUpdate(s.testSessionID, gomock.Any()).Do(
		func(_ string, event *notify.VoteUpdateEvent) {
			published = event
		})

	err := s.service.SubmitVote(s.ctx, &SubmitVoteInput{
		SessionID: s.testSessionID,
		PollID:    "poll-1",
		VoterID:   "voter-2",
		Rating:    4,
	})
	s.Require().NoError(err)

	s.Equal(4, saved.Votes["poll-1"]["voter-2"])
	s.Equal(8, saved.Votes["poll-1"]["voter-1"])

	s.Require().NotNil(published)
	s.Equal("poll-1", published.PollID)
	s.Equal(2, published.Results.TotalVotes)
	s.InDelta(6.0, published.Results.Average, 0.001)
}

func (s *SessionServiceTestSuite) TestSubmitVoteOverwrites() {
	session := s.presentingSession()
	s.expectGetSession(session)

	var saved *models.Session
	s.expectSaveSession(&saved)
	s.mockPublisher.EXPECT().PublishVoteUpdate(s.testSessionID, gomock.Any())

	err := s.service.SubmitVote(s.ctx, &SubmitVoteInput{
		SessionID: s.testSessionID,
		PollID:    "poll-1",
		VoterID:   "voter-1",
		Rating:    3,
	})
	s.Require().NoError(err)

	s.Equal(3, saved.Votes["poll-1"]["voter-1"])
	s.Len(saved.Votes["poll-1"], 1)
}

func (s *SessionServiceTestSuite) TestSubmitVotePollNotStarted() {
	session := s.presentingSession()
	s.expectGetSession(session)

	err := s.service.SubmitVote(s.ctx, &SubmitVoteInput{
		SessionID: s.testSessionID,
		PollID:    "poll-2",
		VoterID:   "voter-1",
		Rating:    5,
	})
	s.Require().Error(err)
	s.Equal(ErrPollNotActive, err)
}

func (s *SessionServiceTestSuite) TestSubmitVoteRatingTooHigh() {
	session := s.presentingSession()
	s.expectGetSession(session)

	err := s.service.SubmitVote(s.ctx, &SubmitVoteInput{
		SessionID: s.testSessionID,
		PollID:    "poll-1",
		VoterID:   "voter-2",
		Rating:    11,
	})
	s.Require().Error(err)
	s.Equal(ErrInvalidRating, err)

	// The ledger is untouched
	s.NotContains(session.Votes["poll-1"], "voter-2")
}

func (s *SessionServiceTestSuite) TestSubmitVoteRatingNegative() {
	session := s.presentingSession()
	s.expectGetSession(session)

	err := s.service.SubmitVote(s.ctx, &SubmitVoteInput{
		SessionID: s.testSessionID,
		PollID:    "poll-1",
		VoterID:   "voter-2",
		Rating:    -1,
	})
	s.Require().Error(err)
	s.Equal(ErrInvalidRating, err)
	s.NotContains(session.Votes["poll-1"], "voter-2")
}

func (s *SessionServiceTestSuite) TestSubmitVoteAfterWindowCloses() {
	session := s.presentingSession()
	// Poll ran a 60s window that opened 61 seconds ago
	startedAt := s.testTime.Add(-61 * time.Second)
	session.Polls[0].StartedAt = &startedAt
	s.expectGetSession(session)

	err := s.service.SubmitVote(s.ctx, &SubmitVoteInput{
		SessionID: s.testSessionID,
		PollID:    "poll-1",
		VoterID:   "voter-2",
		Rating:    4,
	})
	s.Require().Error(err)
	s.Equal(ErrVotingClosed, err)
	s.NotContains(session.Votes["poll-1"], "voter-2")
}

func (s *SessionServiceTestSuite) TestSubmitVoteExactlyAtWindowEdge() {
	session := s.presentingSession()
	startedAt := s.testTime.Add(-60 * time.Second)
	session.Polls[0].StartedAt = &startedAt
	s.expectGetSession(session)

	// now - startedAt == timer counts as closed
	err := s.service.SubmitVote(s.ctx, &SubmitVoteInput{
		SessionID: s.testSessionID,
		PollID:    "poll-1",
		VoterID:   "voter-2",
		Rating:    4,
	})
	s.Require().Error(err)
	s.Equal(ErrVotingClosed, err)
}

func (s *SessionServiceTestSuite) TestSubmitVoteUntimedPollStaysOpen() {
	session := s.presentingSession()
	session.Polls[0].TimerSeconds = 0
	startedAt := s.testTime.Add(-2 * time.Hour)
	session.Polls[0].StartedAt = &startedAt
	s.expectGetSession(session)

	var saved *models.Session
	s.expectSaveSession(&saved)
	s.mockPublisher.EXPECT().PublishVoteUpdate(s.testSessionID, gomock.Any())

	err := s.service.SubmitVote(s.ctx, &SubmitVoteInput{
		SessionID: s.testSessionID,
		PollID:    "poll-1",
		VoterID:   "voter-2",
		Rating:    7,
	})
	s.Require().NoError(err)
	s.Equal(7, saved.Votes["poll-1"]["voter-2"])
}

func (s *SessionServiceTestSuite) TestSubmitVoteCompletedSession() {
	session := s.presentingSession()
	session.Status = models.SessionStatusCompleted
	s.expectGetSession(session)

	err := s.service.SubmitVote(s.ctx, &SubmitVoteInput{
		SessionID: s.testSessionID,
		PollID:    "poll-1",
		VoterID:   "voter-1",
		Rating:    5,
	})
	s.Require().Error(err)
	s.Equal(ErrSessionCompleted, err)
}

func (s *SessionServiceTestSuite) TestActivePollIndexInvariant() {
	// After every mutating operation the pointer is either cleared
	// or addresses a poll that exists
	session := s.presentingSession()
	s.expectGetSession(session)

	var saved *models.Session
	s.expectSaveSession(&saved)

	err := s.service.DeletePoll(s.ctx, &DeletePollInput{
		SessionID: s.testSessionID,
		Index:     0,
	})
	s.Require().NoError(err)

	s.GreaterOrEqual(saved.CurrentPollIndex, models.NoActivePoll)
	s.Less(saved.CurrentPollIndex, len(saved.Polls))
}
