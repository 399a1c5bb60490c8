package session

import (
	"go.uber.org/mock/gomock"

	"github.com/Konrad-GB/voting-website/internal/models"
	sessionRepo "github.com/Konrad-GB/voting-website/internal/repositories/session"
)

func (s *SessionServiceTestSuite) TestGetResults() {
	session := s.presentingSession()
	session.Votes["poll-1"] = models.VoteLedger{
		"voter-1": 3,
		"voter-2": 7,
		"voter-3": 10,
	}
	session.Voters = map[string]string{
		"voter-1": "ada@example.com",
		"voter-2": "grace@example.com",
	}
	s.expectGetSession(session)

	output, err := s.service.GetResults(s.ctx, &GetResultsInput{
		SessionID: s.testSessionID,
		PollID:    "poll-1",
	})
	s.Require().NoError(err)

	results := output.Results
	s.Equal(3, results.TotalVotes)
	s.InDelta(6.67, results.Average, 0.001)
	s.Equal([]int{3, 7, 10}, results.Ratings)

	// voter-3 never verified; its vote is attributed to "Unknown"
	s.Require().Len(results.PerVoter, 3)
	s.Equal(models.VoterVote{Label: "Unknown", Rating: 10}, results.PerVoter[0])
	s.Equal(models.VoterVote{Label: "ada@example.com", Rating: 3}, results.PerVoter[1])
	s.Equal(models.VoterVote{Label: "grace@example.com", Rating: 7}, results.PerVoter[2])
}

func (s *SessionServiceTestSuite) TestGetResultsPollNeverStarted() {
	session := s.draftSession()
	s.expectGetSession(session)

	output, err := s.service.GetResults(s.ctx, &GetResultsInput{
		SessionID: s.testSessionID,
		PollID:    "poll-1",
	})
	s.Require().NoError(err)

	s.Equal(0, output.Results.TotalVotes)
	s.Zero(output.Results.Average)
	s.Empty(output.Results.Ratings)
	s.Empty(output.Results.PerVoter)
}

func (s *SessionServiceTestSuite) TestGetResultsEmptyLedgerAverageIsZero() {
	session := s.presentingSession()
	session.Votes["poll-1"] = models.VoteLedger{}
	s.expectGetSession(session)

	output, err := s.service.GetResults(s.ctx, &GetResultsInput{
		SessionID: s.testSessionID,
		PollID:    "poll-1",
	})
	s.Require().NoError(err)

	s.Equal(0, output.Results.TotalVotes)
	s.Zero(output.Results.Average)
}

func (s *SessionServiceTestSuite) TestGetResultsSessionNotFound() {
	s.mockSessionRepo.EXPECT().GetSession(s.ctx, gomock.Any()).Return(nil, sessionRepo.ErrSessionNotFound)

	_, err := s.service.GetResults(s.ctx, &GetResultsInput{
		SessionID: "missing",
		PollID:    "poll-1",
	})
	s.Require().Error(err)
	s.Equal(ErrSessionNotFound, err)
}

func (s *SessionServiceTestSuite) TestComputeResultsDoesNotMutateLedger() {
	ledger := models.VoteLedger{"voter-1": 5, "voter-2": 9}
	voters := map[string]string{"voter-1": "ada@example.com"}

	first := computeResults(ledger, voters)
	second := computeResults(ledger, voters)

	s.Equal(first, second)
	s.Len(ledger, 2)
	s.Equal(5, ledger["voter-1"])
}

func (s *SessionServiceTestSuite) TestComputeResultsRounding() {
	// 1+2+2 over 3 votes is 1.666..., reported as 1.67
	results := computeResults(models.VoteLedger{
		"a": 1, "b": 2, "c": 2,
	}, nil)
	s.InDelta(1.67, results.Average, 0.001)
}
