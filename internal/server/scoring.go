package server

import "sort"

func scoreTotals(match *Match) map[int]int {
	totals := make(map[int]int, len(match.Players))
	for i := range match.Players {
		totals[match.Players[i].UserID] = 0
	}
	for i := range match.Rounds {
		for _, answer := range match.Rounds[i].Answers {
			totals[answer.UserID] += answer.Points
		}
	}
	return totals
}

// matchFinished reports whether every allowed round exists and has been
// answered, which auto-completes the match.
func matchFinished(match *Match) bool {
	if len(match.Players) < matchPlayerLimit {
		return false
	}
	if len(match.Rounds) < match.RoundLimit {
		return false
	}
	for i := range match.Rounds {
		if len(match.Rounds[i].Answers) == 0 {
			return false
		}
	}
	return true
}

func resultsForMatch(match *Match) map[string]any {
	totals := scoreTotals(match)

	standings := make([]map[string]any, 0, len(match.Players))
	for i := range match.Players {
		player := &match.Players[i]
		standings = append(standings, map[string]any{
			"user_id": player.UserID,
			"name":    player.Name,
			"points":  totals[player.UserID],
		})
	}
	sort.Slice(standings, func(i, j int) bool {
		pi := standings[i]["points"].(int)
		pj := standings[j]["points"].(int)
		if pi != pj {
			return pi > pj
		}
		return standings[i]["user_id"].(int) < standings[j]["user_id"].(int)
	})

	result := map[string]any{
		"match_id":  match.ID,
		"status":    match.Status,
		"standings": standings,
	}
	if match.Status == statusCompleted && len(standings) == matchPlayerLimit {
		top := standings[0]["points"].(int)
		second := standings[1]["points"].(int)
		if top == second {
			result["draw"] = true
		} else {
			result["winner_user_id"] = standings[0]["user_id"].(int)
		}
	}
	return result
}
