package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type questionURI struct {
	ID int `uri:"id" binding:"required,min=1"`
}

type questionRequest struct {
	Category     string   `json:"category" binding:"omitempty,category"`
	Difficulty   string   `json:"difficulty" binding:"omitempty,difficulty"`
	Text         string   `json:"text" binding:"required,qtext"`
	Choices      []string `json:"choices" binding:"required"`
	CorrectIndex *int     `json:"correct_index" binding:"required,min=0"`
	Points       int      `json:"points" binding:"omitempty,min=1,max=100"`
}

var questionMessages = bindMessages{
	"Text": {
		"required": "question text is required",
		"qtext":    "question text must be 280 plain characters or fewer",
	},
	"Choices": {
		"required": "choices are required",
	},
	"CorrectIndex": {
		"required": "correct_index is required",
		"min":      "correct_index must not be negative",
	},
	"Category": {
		"category": "category must use letters, digits, - or _",
	},
	"Difficulty": {
		"difficulty": "difficulty must be easy, medium or hard",
	},
	"Points": {
		"min": "points must be between 1 and 100",
		"max": "points must be between 1 and 100",
	},
}

// buildQuestion normalizes a bound request into a store question. The
// binding layer has already rejected malformed fields; this applies the
// cross-field rules and config defaults.
func (s *Server) buildQuestion(owner *User, req questionRequest) (Question, error) {
	var question Question

	text, err := validateQuestionText(req.Text)
	if err != nil {
		return question, err
	}
	choices, err := validateChoices(req.Choices)
	if err != nil {
		return question, err
	}
	category, err := validateCategory(req.Category)
	if err != nil {
		return question, err
	}
	difficulty, err := validateDifficulty(req.Difficulty)
	if err != nil {
		return question, err
	}
	points, err := validatePoints(req.Points)
	if err != nil {
		return question, err
	}
	if points == 0 {
		points = s.defaultPoints(difficulty)
	}
	if req.CorrectIndex == nil || *req.CorrectIndex < 0 || *req.CorrectIndex >= len(choices) {
		return question, errors.New("correct_index must reference one of the choices")
	}
	if category == "" {
		category = "general"
	}

	question = Question{
		OwnerID:      owner.ID,
		Category:     category,
		Difficulty:   difficulty,
		Text:         text,
		Choices:      choices,
		CorrectIndex: *req.CorrectIndex,
		Points:       points,
	}
	return question, nil
}

func (s *Server) defaultPoints(difficulty string) int {
	switch difficulty {
	case difficultyEasy:
		return s.cfg.DefaultEasyPoints
	case difficultyHard:
		return s.cfg.DefaultHardPoints
	default:
		return s.cfg.DefaultMediumPoints
	}
}

func (s *Server) handleCreateQuestion(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}
	var req questionRequest
	if !bindJSON(c, &req, questionMessages, "invalid question") {
		return
	}
	question, err := s.buildQuestion(user, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry := s.store.CreateQuestion(question)
	if err := s.persistQuestion(user, entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save question"})
		return
	}
	s.log.Info().Int("question_id", entry.ID).Int("user_id", user.ID).Msg("question created")
	c.JSON(http.StatusCreated, ownerQuestionJSON(entry))
}

func (s *Server) handleListQuestions(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}
	category, err := validateCategory(c.Query("category"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	difficulty := ""
	if raw := strings.TrimSpace(c.Query("difficulty")); raw != "" {
		difficulty, err = validateDifficulty(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	page, perPage := parsePagination(c, 20, 100)
	items := s.store.ListQuestions(user.ID, category, difficulty)
	meta := buildPaginationMeta(page, perPage, len(items))

	questions := make([]map[string]any, 0, meta.PerPage)
	for _, question := range pageSlice(items, meta.Page, meta.PerPage) {
		questions = append(questions, ownerQuestionJSON(&question))
	}
	c.JSON(http.StatusOK, gin.H{
		"questions":  questions,
		"pagination": meta,
	})
}

func (s *Server) handleGetQuestion(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}
	var uri questionURI
	if !bindURI(c, &uri) {
		return
	}
	question, ok := s.store.GetQuestion(uri.ID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": errQuestionNotFound.Error()})
		return
	}
	if question.OwnerID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": errNotOwner.Error()})
		return
	}
	c.JSON(http.StatusOK, ownerQuestionJSON(question))
}

func (s *Server) handleUpdateQuestion(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}
	var uri questionURI
	if !bindURI(c, &uri) {
		return
	}
	existing, ok := s.store.GetQuestion(uri.ID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": errQuestionNotFound.Error()})
		return
	}
	if existing.OwnerID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": errNotOwner.Error()})
		return
	}
	var req questionRequest
	if !bindJSON(c, &req, questionMessages, "invalid question") {
		return
	}
	built, err := s.buildQuestion(user, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := s.store.UpdateQuestion(uri.ID, func(question *Question) error {
		question.Category = built.Category
		question.Difficulty = built.Difficulty
		question.Text = built.Text
		question.Choices = built.Choices
		question.CorrectIndex = built.CorrectIndex
		question.Points = built.Points
		return nil
	})
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	if err := s.persistQuestionUpdate(user, updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save question"})
		return
	}
	s.log.Info().Int("question_id", updated.ID).Int("user_id", user.ID).Msg("question updated")
	c.JSON(http.StatusOK, ownerQuestionJSON(updated))
}

func (s *Server) handleDeleteQuestion(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}
	var uri questionURI
	if !bindURI(c, &uri) {
		return
	}
	existing, ok := s.store.GetQuestion(uri.ID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": errQuestionNotFound.Error()})
		return
	}
	if existing.OwnerID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": errNotOwner.Error()})
		return
	}

	deleted, err := s.store.DeleteQuestion(uri.ID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	if err := s.persistQuestionDelete(user, deleted); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete question"})
		return
	}
	s.log.Info().Int("question_id", deleted.ID).Int("user_id", user.ID).Msg("question deleted")
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
