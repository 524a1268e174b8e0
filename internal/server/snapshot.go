package server

// snapshot renders the public view of a match. Correct answer indexes are
// never included; correctness only appears on answers already submitted.
func (s *Server) snapshot(match *Match) map[string]any {
	totals := scoreTotals(match)

	players := make([]map[string]any, 0, len(match.Players))
	for i := range match.Players {
		player := &match.Players[i]
		players = append(players, map[string]any{
			"user_id":    player.UserID,
			"name":       player.Name,
			"is_creator": player.IsCreator,
			"points":     totals[player.UserID],
		})
	}

	rounds := make([]map[string]any, 0, len(match.Rounds))
	for i := range match.Rounds {
		round := &match.Rounds[i]
		entry := map[string]any{
			"number":   round.Number,
			"asker_id": round.AskerID,
			"answered": len(round.Answers) > 0,
		}
		if question, ok := s.store.GetQuestion(round.QuestionID); ok {
			entry["question"] = publicQuestionJSON(question)
		}
		answers := make([]map[string]any, 0, len(round.Answers))
		for _, answer := range round.Answers {
			answers = append(answers, map[string]any{
				"user_id":      answer.UserID,
				"choice_index": answer.ChoiceIndex,
				"correct":      answer.Correct,
				"points":       answer.Points,
			})
		}
		entry["answers"] = answers
		rounds = append(rounds, entry)
	}

	return map[string]any{
		"match_id":    match.ID,
		"join_code":   match.Code,
		"status":      match.Status,
		"round_limit": match.RoundLimit,
		"creator_id":  match.CreatorID,
		"players":     players,
		"rounds":      rounds,
	}
}

// publicQuestionJSON is the question as shown to both duel players.
func publicQuestionJSON(question *Question) map[string]any {
	return map[string]any{
		"question_id": question.ID,
		"category":    question.Category,
		"difficulty":  question.Difficulty,
		"text":        question.Text,
		"choices":     question.Choices,
		"points":      question.Points,
	}
}

// ownerQuestionJSON additionally carries the correct index, for the owner's
// question bank views only.
func ownerQuestionJSON(question *Question) map[string]any {
	entry := publicQuestionJSON(question)
	entry["correct_index"] = question.CorrectIndex
	return entry
}
