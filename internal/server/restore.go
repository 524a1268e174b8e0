package server

import (
	"encoding/json"
	"fmt"

	"trivia-duel/internal/db"
)

// RestoreFromDB loads persisted users, questions, and matches back into the
// in-memory store after a restart. Store ids are the database ids, so ids
// handed out before the restart stay valid.
func (s *Server) RestoreFromDB() error {
	if s.db == nil {
		return nil
	}

	var users []db.User
	if err := s.db.Order("id asc").Find(&users).Error; err != nil {
		return fmt.Errorf("restore users: %w", err)
	}
	for i := range users {
		record := &users[i]
		s.store.RestoreUser(&User{
			ID:        int(record.ID),
			DBID:      record.ID,
			Username:  record.Username,
			Name:      record.DisplayName,
			AuthToken: record.AuthToken,
		})
	}

	var questions []db.Question
	if err := s.db.Order("id asc").Find(&questions).Error; err != nil {
		return fmt.Errorf("restore questions: %w", err)
	}
	for i := range questions {
		record := &questions[i]
		var choices []string
		if err := json.Unmarshal(record.Choices, &choices); err != nil {
			return fmt.Errorf("restore question %d: %w", record.ID, err)
		}
		s.store.RestoreQuestion(&Question{
			ID:           int(record.ID),
			DBID:         record.ID,
			OwnerID:      int(record.OwnerID),
			Category:     record.Category,
			Difficulty:   record.Difficulty,
			Text:         record.Text,
			Choices:      choices,
			CorrectIndex: record.CorrectIndex,
			Points:       record.Points,
			CreatedAt:    record.CreatedAt,
			UpdatedAt:    record.UpdatedAt,
		})
	}

	var matches []db.Match
	err := s.db.
		Preload("Participants").
		Preload("Rounds").
		Preload("Rounds.Answers").
		Order("id asc").
		Find(&matches).Error
	if err != nil {
		return fmt.Errorf("restore matches: %w", err)
	}
	for i := range matches {
		record := &matches[i]
		match := &Match{
			ID:         fmt.Sprintf("match-%d", record.ID),
			DBID:       record.ID,
			Code:       record.Code,
			Status:     record.Status,
			RoundLimit: record.RoundLimit,
			CreatorID:  int(record.CreatorID),
			CreatedAt:  record.CreatedAt,
		}
		for j := range record.Participants {
			participant := &record.Participants[j]
			name := ""
			if user, ok := s.store.GetUser(int(participant.UserID)); ok {
				name = user.Name
			}
			match.Players = append(match.Players, Participant{
				UserID:    int(participant.UserID),
				Name:      name,
				DBID:      participant.ID,
				IsCreator: participant.IsCreator,
				JoinedAt:  participant.JoinedAt,
			})
		}
		for j := range record.Rounds {
			round := &record.Rounds[j]
			state := RoundState{
				Number:     round.Number,
				DBID:       round.ID,
				QuestionID: int(round.QuestionID),
				AskerID:    int(round.AskerID),
			}
			for k := range round.Answers {
				answer := &round.Answers[k]
				state.Answers = append(state.Answers, AnswerEntry{
					UserID:      int(answer.UserID),
					ChoiceIndex: answer.ChoiceIndex,
					Correct:     answer.Correct,
					Points:      answer.Points,
					DBID:        answer.ID,
				})
			}
			match.Rounds = append(match.Rounds, state)
		}
		if err := s.store.RestoreMatch(match); err != nil {
			return err
		}
	}

	s.log.Info().
		Int("users", len(users)).
		Int("questions", len(questions)).
		Int("matches", len(matches)).
		Msg("state restored from database")
	return nil
}
