package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Konrad-GB/voting-website/internal/models"
	sessionService "github.com/Konrad-GB/voting-website/internal/services/session"
)

// Wire types mirror the JSON contract and stay independent of the
// domain models.

type mediaItemJSON struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

type pollJSON struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	MediaItems   []mediaItemJSON `json:"mediaItems"`
	TimerSeconds int             `json:"timer"`
	StartedAt    *time.Time      `json:"startedAt,omitempty"`
}

type voterVoteJSON struct {
	Label  string `json:"email"`
	Rating int    `json:"rating"`
}

func toPollJSON(p *models.Poll) *pollJSON {
	if p == nil {
		return nil
	}

	items := make([]mediaItemJSON, 0, len(p.MediaItems))
	for _, item := range p.MediaItems {
		items = append(items, mediaItemJSON{URL: item.URL, Type: string(item.Type)})
	}

	return &pollJSON{
		ID:           p.ID,
		Title:        p.Title,
		MediaItems:   items,
		TimerSeconds: p.TimerSeconds,
		StartedAt:    p.StartedAt,
	}
}

func toMediaItems(items []mediaItemJSON) []models.MediaItem {
	out := make([]models.MediaItem, 0, len(items))
	for _, item := range items {
		out = append(out, models.MediaItem{URL: item.URL, Type: models.MediaType(item.Type)})
	}
	return out
}

func (s *Server) handleHostLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	out, err := s.service.Login(r.Context(), &sessionService.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}{Success: true, Token: out.Token})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionName string `json:"sessionName"`
		IsLive      bool   `json:"isLive"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	out, err := s.service.CreateSession(r.Context(), &sessionService.CreateSessionInput{
		Token: bearerToken(r),
		Name:  req.SessionName,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Success   bool   `json:"success"`
		SessionID string `json:"sessionId"`
	}{Success: true, SessionID: out.SessionID})
}

func (s *Server) handleSavedSessions(w http.ResponseWriter, r *http.Request) {
	out, err := s.service.ListSessions(r.Context(), &sessionService.ListSessionsInput{
		Token: bearerToken(r),
	})
	if err != nil {
		respondError(w, err)
		return
	}

	type summaryJSON struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		PollCount int       `json:"polls"`
		Status    string    `json:"status"`
		CreatedAt time.Time `json:"created"`
	}

	summaries := make([]summaryJSON, 0, len(out.Summaries))
	for _, sum := range out.Summaries {
		summaries = append(summaries, summaryJSON{
			ID:        sum.ID,
			Name:      sum.Name,
			PollCount: sum.PollCount,
			Status:    string(sum.Status),
			CreatedAt: sum.CreatedAt,
		})
	}

	respondJSON(w, http.StatusOK, struct {
		Sessions []summaryJSON `json:"sessions"`
	}{Sessions: summaries})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	err := s.service.DeleteSession(r.Context(), &sessionService.DeleteSessionInput{
		Token:     bearerToken(r),
		SessionID: r.PathValue("id"),
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, successResponse())
}

func (s *Server) handleVerifyVoter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"sessionId"`
		Email     string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	out, err := s.service.VerifyVoter(r.Context(), &sessionService.VerifyVoterInput{
		SessionID: req.SessionID,
		Label:     req.Email,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Success bool   `json:"success"`
		VoterID string `json:"voterId"`
	}{Success: true, VoterID: out.VoterID})
}

type pollRequest struct {
	Title      string          `json:"title"`
	MediaItems []mediaItemJSON `json:"mediaItems"`
	Timer      int             `json:"timer"`
}

func (s *Server) handleAddPoll(w http.ResponseWriter, r *http.Request) {
	var req pollRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	out, err := s.service.AddPoll(r.Context(), &sessionService.AddPollInput{
		SessionID:    r.PathValue("id"),
		Title:        req.Title,
		MediaItems:   toMediaItems(req.MediaItems),
		TimerSeconds: req.Timer,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Poll *pollJSON `json:"poll"`
	}{Poll: toPollJSON(out.Poll)})
}

func (s *Server) handleUpdatePoll(w http.ResponseWriter, r *http.Request) {
	index, err := pollIndex(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid poll index"})
		return
	}

	var req pollRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	out, err := s.service.UpdatePoll(r.Context(), &sessionService.UpdatePollInput{
		SessionID:    r.PathValue("id"),
		Index:        index,
		Title:        req.Title,
		MediaItems:   toMediaItems(req.MediaItems),
		TimerSeconds: req.Timer,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Poll *pollJSON `json:"poll"`
	}{Poll: toPollJSON(out.Poll)})
}

func (s *Server) handleDeletePoll(w http.ResponseWriter, r *http.Request) {
	index, err := pollIndex(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid poll index"})
		return
	}

	err = s.service.DeletePoll(r.Context(), &sessionService.DeletePollInput{
		SessionID: r.PathValue("id"),
		Index:     index,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, successResponse())
}

func (s *Server) handleReorderPolls(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Polls []struct {
			ID string `json:"id"`
		} `json:"polls"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	pollIDs := make([]string, 0, len(req.Polls))
	for _, p := range req.Polls {
		pollIDs = append(pollIDs, p.ID)
	}

	err := s.service.ReorderPolls(r.Context(), &sessionService.ReorderPollsInput{
		SessionID: r.PathValue("id"),
		PollIDs:   pollIDs,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, successResponse())
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	out, err := s.service.GetSession(r.Context(), &sessionService.GetSessionInput{
		SessionID: r.PathValue("id"),
	})
	if err != nil {
		respondError(w, err)
		return
	}

	polls := make([]*pollJSON, 0, len(out.Session.Polls))
	for _, p := range out.Session.Polls {
		polls = append(polls, toPollJSON(p))
	}

	respondJSON(w, http.StatusOK, struct {
		SessionID        string      `json:"sessionId"`
		Name             string      `json:"name"`
		Status           string      `json:"status"`
		Polls            []*pollJSON `json:"polls"`
		CurrentPollIndex int         `json:"currentPollIndex"`
	}{
		SessionID:        out.Session.ID,
		Name:             out.Session.Name,
		Status:           string(out.Session.Status),
		Polls:            polls,
		CurrentPollIndex: out.Session.CurrentPollIndex,
	})
}

func (s *Server) handleCurrentPoll(w http.ResponseWriter, r *http.Request) {
	out, err := s.service.GetCurrentPoll(r.Context(), &sessionService.GetCurrentPollInput{
		SessionID: r.PathValue("id"),
		VoterID:   r.URL.Query().Get("voterId"),
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, struct {
		CurrentPoll *pollJSON `json:"currentPoll"`
		PollIndex   int       `json:"pollIndex"`
		HasVoted    bool      `json:"hasVoted"`
		VoterRating *int      `json:"voterRating"`
	}{
		CurrentPoll: toPollJSON(out.Poll),
		PollIndex:   out.PollIndex,
		HasVoted:    out.HasVoted,
		VoterRating: out.VoterRating,
	})
}

func (s *Server) handleStartPoll(w http.ResponseWriter, r *http.Request) {
	index, err := pollIndex(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid poll index"})
		return
	}

	err = s.service.StartPoll(r.Context(), &sessionService.StartPollInput{
		SessionID: r.PathValue("id"),
		Index:     index,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, successResponse())
}

func (s *Server) handleCompleteSession(w http.ResponseWriter, r *http.Request) {
	err := s.service.CompleteSession(r.Context(), &sessionService.CompleteSessionInput{
		Token:     bearerToken(r),
		SessionID: r.PathValue("id"),
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, successResponse())
}

func (s *Server) handleSubmitVote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PollID  string `json:"pollId"`
		VoterID string `json:"voterId"`
		Rating  int    `json:"rating"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	err := s.service.SubmitVote(r.Context(), &sessionService.SubmitVoteInput{
		SessionID: r.PathValue("id"),
		PollID:    req.PollID,
		VoterID:   req.VoterID,
		Rating:    req.Rating,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, successResponse())
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	out, err := s.service.GetResults(r.Context(), &sessionService.GetResultsInput{
		SessionID: r.PathValue("id"),
		PollID:    r.PathValue("pollId"),
	})
	if err != nil {
		respondError(w, err)
		return
	}

	perVoter := make([]voterVoteJSON, 0, len(out.Results.PerVoter))
	for _, v := range out.Results.PerVoter {
		perVoter = append(perVoter, voterVoteJSON{Label: v.Label, Rating: v.Rating})
	}

	respondJSON(w, http.StatusOK, struct {
		TotalVotes      int             `json:"totalVotes"`
		Average         float64         `json:"average"`
		Ratings         []int           `json:"ratings"`
		VotesWithEmails []voterVoteJSON `json:"votesWithEmails"`
	}{
		TotalVotes:      out.Results.TotalVotes,
		Average:         out.Results.Average,
		Ratings:         out.Results.Ratings,
		VotesWithEmails: perVoter,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
	}{Status: "ok"})
}

func successResponse() any {
	return struct {
		Success bool `json:"success"`
	}{Success: true}
}

func pollIndex(r *http.Request) (int, error) {
	return strconv.Atoi(r.PathValue("index"))
}
