package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type roundURI struct {
	ID     string `uri:"id" binding:"required"`
	Number int    `uri:"number" binding:"required,min=1"`
}

type roundRequest struct {
	QuestionID int `json:"question_id" binding:"required,min=1"`
}

type answerRequest struct {
	ChoiceIndex *int `json:"choice_index" binding:"required,min=0"`
}

var answerMessages = bindMessages{
	"ChoiceIndex": {
		"required": "choice_index is required",
		"min":      "choice_index must not be negative",
	},
}

// handleAddRound appends a round to an in-progress match. The question must
// come from the asker's own bank so the opponent has never seen it.
func (s *Server) handleAddRound(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}
	var uri matchURI
	if !bindURI(c, &uri) {
		return
	}
	var req roundRequest
	if !bindJSON(c, &req, nil, "question_id is required") {
		return
	}
	question, ok := s.store.GetQuestion(req.QuestionID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": errQuestionNotFound.Error()})
		return
	}
	if question.OwnerID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": errNotOwner.Error()})
		return
	}

	var round *RoundState
	match, err := s.store.UpdateMatch(uri.ID, func(match *Match) error {
		if !isParticipant(match, user.ID) {
			return errNotParticipant
		}
		if match.Status != statusInProgress {
			return errMatchNotLive
		}
		if len(match.Rounds) >= match.RoundLimit {
			return errRoundLimit
		}
		for i := range match.Rounds {
			if match.Rounds[i].QuestionID == question.ID {
				return errQuestionUsed
			}
		}
		match.Rounds = append(match.Rounds, RoundState{
			Number:     len(match.Rounds) + 1,
			QuestionID: question.ID,
			AskerID:    user.ID,
		})
		round = &match.Rounds[len(match.Rounds)-1]
		return nil
	})
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	if err := s.persistRound(match, round); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save round"})
		return
	}
	s.log.Info().
		Str("match_id", match.ID).
		Int("round", round.Number).
		Int("question_id", question.ID).
		Msg("round added")
	s.broadcastMatchUpdate(match)
	c.JSON(http.StatusCreated, gin.H{
		"match_id":     match.ID,
		"round_number": round.Number,
		"question":     publicQuestionJSON(question),
	})
}

func (s *Server) handleSubmitAnswer(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}
	var uri roundURI
	if !bindURI(c, &uri) {
		return
	}
	var req answerRequest
	if !bindJSON(c, &req, answerMessages, "choice_index is required") {
		return
	}

	current, ok := s.store.GetMatch(uri.ID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": errMatchNotFound.Error()})
		return
	}
	known, ok := roundByNumber(current, uri.Number)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": errRoundNotFound.Error()})
		return
	}
	question, ok := s.store.GetQuestion(known.QuestionID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": errQuestionNotFound.Error()})
		return
	}
	choice := *req.ChoiceIndex
	if choice < 0 || choice >= len(question.Choices) {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidChoice.Error()})
		return
	}

	var round *RoundState
	var entry *AnswerEntry
	completed := false
	match, err := s.store.UpdateMatch(uri.ID, func(match *Match) error {
		if !isParticipant(match, user.ID) {
			return errNotParticipant
		}
		if match.Status != statusInProgress {
			return errMatchNotLive
		}
		found, ok := roundByNumber(match, uri.Number)
		if !ok {
			return errRoundNotFound
		}
		if found.AskerID == user.ID {
			return errOwnRound
		}
		for i := range found.Answers {
			if found.Answers[i].UserID == user.ID {
				return errAlreadyAnswered
			}
		}
		correct := choice == question.CorrectIndex
		points := 0
		if correct {
			points = question.Points
		}
		found.Answers = append(found.Answers, AnswerEntry{
			UserID:      user.ID,
			ChoiceIndex: choice,
			Correct:     correct,
			Points:      points,
		})
		round = found
		entry = &found.Answers[len(found.Answers)-1]
		if matchFinished(match) {
			match.Status = statusCompleted
			completed = true
		}
		return nil
	})
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	if err := s.persistAnswer(match, round, entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save answer"})
		return
	}
	if completed {
		if err := s.persistStatus(match, "match_completed", EventPayload{
			Status: match.Status,
			Reason: "round_limit_reached",
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save answer"})
			return
		}
	}
	s.log.Info().
		Str("match_id", match.ID).
		Int("round", round.Number).
		Int("user_id", user.ID).
		Bool("correct", entry.Correct).
		Msg("answer submitted")
	s.broadcastMatchUpdate(match)
	c.JSON(http.StatusCreated, gin.H{
		"match_id":      match.ID,
		"round_number":  round.Number,
		"correct":       entry.Correct,
		"points":        entry.Points,
		"correct_index": question.CorrectIndex,
		"match_status":  match.Status,
	})
}
