package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type matchURI struct {
	ID string `uri:"id" binding:"required"`
}

type createMatchRequest struct {
	RoundLimit int `json:"round_limit" binding:"omitempty,min=1"`
}

type joinMatchRequest struct {
	Code string `json:"code" binding:"required"`
}

func (s *Server) handleCreateMatch(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}
	var req createMatchRequest
	if c.Request.ContentLength > 0 {
		if !bindJSON(c, &req, nil, "invalid match settings") {
			return
		}
	}
	limit, err := validateRoundLimit(req.RoundLimit, s.cfg.DefaultRoundLimit, s.cfg.MaxRoundLimit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	match := s.store.CreateMatch(user, limit)
	if err := s.persistMatch(match, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create match"})
		return
	}
	s.log.Info().Str("match_id", match.ID).Str("code", match.Code).Int("user_id", user.ID).Msg("match created")
	c.JSON(http.StatusCreated, gin.H{
		"match_id":    match.ID,
		"join_code":   match.Code,
		"status":      match.Status,
		"round_limit": match.RoundLimit,
	})
}

func (s *Server) handleJoinMatch(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}
	var req joinMatchRequest
	if !bindJSON(c, &req, nil, "code is required") {
		return
	}
	found, ok := s.store.FindMatchByCode(normalizeText(req.Code))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": errMatchNotFound.Error()})
		return
	}

	var participant *Participant
	joined := false
	match, err := s.store.UpdateMatch(found.ID, func(match *Match) error {
		if existing, ok := findParticipant(match, user.ID); ok {
			if user.ID == match.CreatorID {
				return errOwnMatch
			}
			// Rejoining is idempotent.
			participant = existing
			return nil
		}
		if match.Status != statusWaiting {
			return errMatchNotJoinable
		}
		if len(match.Players) >= matchPlayerLimit {
			return errMatchFull
		}
		match.Players = append(match.Players, Participant{
			UserID:   user.ID,
			Name:     user.Name,
			JoinedAt: timeNowUTC(),
		})
		participant = &match.Players[len(match.Players)-1]
		match.Status = statusInProgress
		joined = true
		return nil
	})
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	if err := s.persistParticipant(match, participant); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to join match"})
		return
	}
	if joined {
		if err := s.persistStatus(match, "match_started", EventPayload{
			UserID: user.ID,
			Status: match.Status,
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to join match"})
			return
		}
		s.log.Info().Str("match_id", match.ID).Int("user_id", user.ID).Msg("player joined")
		s.broadcastMatchUpdate(match)
	}
	c.JSON(http.StatusOK, gin.H{
		"match_id":  match.ID,
		"join_code": match.Code,
		"status":    match.Status,
		"user_id":   user.ID,
	})
}

func (s *Server) handleGetMatch(c *gin.Context) {
	var uri matchURI
	if !bindURI(c, &uri) {
		return
	}
	match, ok := s.store.GetMatch(uri.ID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": errMatchNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, s.snapshot(match))
}

func (s *Server) handleListMatches(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}
	summaries := s.store.ListMatchSummaries(user.ID)
	matches := make([]map[string]any, 0, len(summaries))
	for _, summary := range summaries {
		matches = append(matches, map[string]any{
			"match_id":  summary.ID,
			"join_code": summary.Code,
			"status":    summary.Status,
			"players":   summary.Players,
			"rounds":    summary.Rounds,
		})
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

func (s *Server) handleCancelMatch(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}
	var uri matchURI
	if !bindURI(c, &uri) {
		return
	}
	match, err := s.store.UpdateMatch(uri.ID, func(match *Match) error {
		if !isParticipant(match, user.ID) {
			return errNotParticipant
		}
		if user.ID != match.CreatorID {
			return errNotCreator
		}
		if match.Status != statusWaiting && match.Status != statusInProgress {
			return errMatchFinished
		}
		match.Status = statusCancelled
		return nil
	})
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	if err := s.persistStatus(match, "match_cancelled", EventPayload{
		UserID: user.ID,
		Status: match.Status,
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel match"})
		return
	}
	s.log.Info().Str("match_id", match.ID).Int("user_id", user.ID).Msg("match cancelled")
	s.broadcastMatchUpdate(match)
	c.JSON(http.StatusOK, gin.H{
		"match_id": match.ID,
		"status":   match.Status,
	})
}

func (s *Server) handleCompleteMatch(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}
	var uri matchURI
	if !bindURI(c, &uri) {
		return
	}
	match, err := s.store.UpdateMatch(uri.ID, func(match *Match) error {
		if !isParticipant(match, user.ID) {
			return errNotParticipant
		}
		if match.Status != statusInProgress {
			return errMatchNotLive
		}
		match.Status = statusCompleted
		return nil
	})
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	if err := s.persistStatus(match, "match_completed", EventPayload{
		UserID: user.ID,
		Status: match.Status,
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to complete match"})
		return
	}
	s.log.Info().Str("match_id", match.ID).Int("user_id", user.ID).Msg("match completed")
	s.broadcastMatchUpdate(match)
	c.JSON(http.StatusOK, resultsForMatch(match))
}

func (s *Server) handleResults(c *gin.Context) {
	var uri matchURI
	if !bindURI(c, &uri) {
		return
	}
	match, ok := s.store.GetMatch(uri.ID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": errMatchNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, resultsForMatch(match))
}
