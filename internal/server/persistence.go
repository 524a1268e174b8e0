package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"trivia-duel/internal/db"

	"github.com/jackc/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

// The store stays authoritative; every persist function mirrors one mutation
// into a single row and backfills the DB id. All of them are no-ops without a
// configured database.

func (s *Server) persistUser(user *User) error {
	if s.db == nil || user.DBID != 0 {
		return nil
	}
	record := db.User{
		Username:    user.Username,
		DisplayName: user.Name,
		AuthToken:   user.AuthToken,
	}
	if err := s.db.Create(&record).Error; err != nil {
		if isUniqueViolation(err) {
			var existing db.User
			if lookupErr := s.db.Where("username = ?", user.Username).First(&existing).Error; lookupErr == nil {
				user.DBID = existing.ID
				user.AuthToken = existing.AuthToken
				s.store.UpdateUserID(user, int(existing.ID))
				return nil
			}
		}
		return err
	}
	user.DBID = record.ID
	s.store.UpdateUserID(user, int(record.ID))
	return nil
}

func (s *Server) persistQuestion(user *User, question *Question) error {
	if s.db == nil || question.DBID != 0 {
		return nil
	}
	choices, err := json.Marshal(question.Choices)
	if err != nil {
		return err
	}
	record := db.Question{
		OwnerID:      user.DBID,
		Category:     question.Category,
		Difficulty:   question.Difficulty,
		Text:         question.Text,
		Choices:      datatypes.JSON(choices),
		CorrectIndex: question.CorrectIndex,
		Points:       question.Points,
	}
	if err := s.db.Create(&record).Error; err != nil {
		if isUniqueViolation(err) {
			var existing db.Question
			lookupErr := s.db.Where("owner_id = ? AND text = ?", user.DBID, question.Text).First(&existing).Error
			if lookupErr == nil && existing.ID != 0 {
				question.DBID = existing.ID
				s.store.UpdateQuestionID(question, int(existing.ID))
				return nil
			}
		}
		return err
	}
	question.DBID = record.ID
	s.store.UpdateQuestionID(question, int(record.ID))
	return s.persistQuestionEvent(user, question, "question_created")
}

func (s *Server) persistQuestionUpdate(user *User, question *Question) error {
	if s.db == nil {
		return nil
	}
	if question.DBID == 0 {
		return errQuestionNotFound
	}
	choices, err := json.Marshal(question.Choices)
	if err != nil {
		return err
	}
	updates := map[string]any{
		"category":      question.Category,
		"difficulty":    question.Difficulty,
		"text":          question.Text,
		"choices":       datatypes.JSON(choices),
		"correct_index": question.CorrectIndex,
		"points":        question.Points,
	}
	if err := s.db.Model(&db.Question{}).Where("id = ?", question.DBID).Updates(updates).Error; err != nil {
		return err
	}
	return s.persistQuestionEvent(user, question, "question_updated")
}

func (s *Server) persistQuestionDelete(user *User, question *Question) error {
	if s.db == nil || question.DBID == 0 {
		return nil
	}
	if err := s.db.Delete(&db.Question{}, question.DBID).Error; err != nil {
		return err
	}
	return s.persistQuestionEvent(user, question, "question_deleted")
}

func (s *Server) persistMatch(match *Match, creator *User) error {
	if s.db == nil {
		return nil
	}
	record := db.Match{
		Code:       match.Code,
		Status:     match.Status,
		RoundLimit: match.RoundLimit,
		CreatorID:  creator.DBID,
	}
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error; err != nil {
		return err
	}
	match.DBID = record.ID
	newID := fmt.Sprintf("match-%d", record.ID)
	if match.ID != newID {
		s.store.UpdateMatchID(match, newID)
	}
	if participant, ok := findParticipant(match, creator.ID); ok {
		if err := s.persistParticipant(match, participant); err != nil {
			return err
		}
	}
	return s.persistEvent(match, "match_created", EventPayload{
		MatchID: match.ID,
		Code:    match.Code,
		UserID:  creator.ID,
	})
}

func (s *Server) persistParticipant(match *Match, participant *Participant) error {
	if s.db == nil || participant.DBID != 0 {
		return nil
	}
	if match.DBID == 0 {
		if err := s.ensureMatchDBID(match); err != nil {
			return err
		}
		if match.DBID == 0 {
			return errMatchNotFound
		}
	}
	user, ok := s.store.GetUser(participant.UserID)
	if !ok || user.DBID == 0 {
		return errUserNotFound
	}
	record := db.Participant{
		MatchID:   match.DBID,
		UserID:    user.DBID,
		IsCreator: participant.IsCreator,
		JoinedAt:  participant.JoinedAt,
	}
	if err := s.db.Create(&record).Error; err != nil {
		if isUniqueViolation(err) {
			var existing db.Participant
			lookupErr := s.db.Where("match_id = ? AND user_id = ?", match.DBID, user.DBID).First(&existing).Error
			if lookupErr == nil && existing.ID != 0 {
				participant.DBID = existing.ID
				return nil
			}
		}
		return err
	}
	participant.DBID = record.ID
	return nil
}

func (s *Server) persistStatus(match *Match, eventType string, payload EventPayload) error {
	if s.db == nil {
		return nil
	}
	if match.DBID == 0 {
		if err := s.ensureMatchDBID(match); err != nil {
			return err
		}
		if match.DBID == 0 {
			return errMatchNotFound
		}
	}
	if err := s.db.Model(&db.Match{}).Where("id = ?", match.DBID).Update("status", match.Status).Error; err != nil {
		return err
	}
	return s.persistEvent(match, eventType, payload)
}

func (s *Server) persistRound(match *Match, round *RoundState) error {
	if s.db == nil || round.DBID != 0 {
		return nil
	}
	if match.DBID == 0 {
		if err := s.ensureMatchDBID(match); err != nil {
			return err
		}
		if match.DBID == 0 {
			return errMatchNotFound
		}
	}
	question, ok := s.store.GetQuestion(round.QuestionID)
	if !ok || question.DBID == 0 {
		return errQuestionNotFound
	}
	asker, ok := s.store.GetUser(round.AskerID)
	if !ok || asker.DBID == 0 {
		return errUserNotFound
	}
	record := db.Round{
		MatchID:    match.DBID,
		Number:     round.Number,
		QuestionID: question.DBID,
		AskerID:    asker.DBID,
	}
	if err := s.db.Create(&record).Error; err != nil {
		if isUniqueViolation(err) {
			var existing db.Round
			lookupErr := s.db.Where("match_id = ? AND number = ?", match.DBID, round.Number).First(&existing).Error
			if lookupErr == nil && existing.ID != 0 {
				round.DBID = existing.ID
				return nil
			}
		}
		return err
	}
	round.DBID = record.ID
	return s.persistEvent(match, "round_added", EventPayload{
		UserID:      round.AskerID,
		QuestionID:  round.QuestionID,
		RoundNumber: round.Number,
	})
}

func (s *Server) persistAnswer(match *Match, round *RoundState, answer *AnswerEntry) error {
	if s.db == nil || answer.DBID != 0 {
		return nil
	}
	if round.DBID == 0 {
		if err := s.persistRound(match, round); err != nil {
			return err
		}
		if round.DBID == 0 {
			return errRoundNotFound
		}
	}
	user, ok := s.store.GetUser(answer.UserID)
	if !ok || user.DBID == 0 {
		return errUserNotFound
	}
	record := db.Answer{
		RoundID:     round.DBID,
		UserID:      user.DBID,
		ChoiceIndex: answer.ChoiceIndex,
		Correct:     answer.Correct,
		Points:      answer.Points,
	}
	if err := s.db.Create(&record).Error; err != nil {
		if isUniqueViolation(err) {
			var existing db.Answer
			lookupErr := s.db.Where("round_id = ? AND user_id = ?", round.DBID, user.DBID).First(&existing).Error
			if lookupErr == nil && existing.ID != 0 {
				answer.DBID = existing.ID
				return nil
			}
		}
		return err
	}
	answer.DBID = record.ID
	return s.persistEvent(match, "answer_submitted", EventPayload{
		UserID:      answer.UserID,
		RoundNumber: round.Number,
		ChoiceIndex: answer.ChoiceIndex,
		Correct:     answer.Correct,
		Points:      answer.Points,
	})
}

func (s *Server) persistEvent(match *Match, eventType string, payload EventPayload) error {
	if s.db == nil {
		return nil
	}
	if match.DBID == 0 {
		if err := s.ensureMatchDBID(match); err != nil {
			return err
		}
		if match.DBID == 0 {
			return errMatchNotFound
		}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	matchID := match.DBID
	event := db.Event{
		MatchID: &matchID,
		RoundID: s.resolveEventRoundID(match, payload.RoundNumber),
		UserID:  s.resolveEventUserID(payload.UserID),
		Type:    eventType,
		Payload: datatypes.JSON(data),
	}
	return s.db.Create(&event).Error
}

// persistQuestionEvent records question-bank mutations, which have no match.
func (s *Server) persistQuestionEvent(user *User, question *Question, eventType string) error {
	if s.db == nil {
		return nil
	}
	data, err := json.Marshal(EventPayload{
		UserID:     user.ID,
		QuestionID: question.ID,
	})
	if err != nil {
		return err
	}
	event := db.Event{
		UserID:  s.resolveEventUserID(user.ID),
		Type:    eventType,
		Payload: datatypes.JSON(data),
	}
	return s.db.Create(&event).Error
}

func (s *Server) resolveEventRoundID(match *Match, number int) *uint {
	if number <= 0 {
		return nil
	}
	round, ok := roundByNumber(match, number)
	if !ok || round.DBID == 0 {
		return nil
	}
	id := round.DBID
	return &id
}

func (s *Server) resolveEventUserID(userID int) *uint {
	if userID <= 0 {
		return nil
	}
	user, ok := s.store.GetUser(userID)
	if !ok || user.DBID == 0 {
		return nil
	}
	value := user.DBID
	return &value
}

func (s *Server) ensureMatchDBID(match *Match) error {
	if s.db == nil || match.DBID != 0 {
		return nil
	}
	var record db.Match
	if err := s.db.Where("code = ?", match.Code).First(&record).Error; err != nil {
		return nil
	}
	match.DBID = record.ID
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
