package server

type EventPayload struct {
	MatchID     string `json:"match_id,omitempty"`
	Code        string `json:"code,omitempty"`
	Username    string `json:"username,omitempty"`
	UserID      int    `json:"user_id,omitempty"`
	QuestionID  int    `json:"question_id,omitempty"`
	RoundNumber int    `json:"round_number,omitempty"`
	Status      string `json:"status,omitempty"`
	ChoiceIndex int    `json:"choice_index,omitempty"`
	Correct     bool   `json:"correct,omitempty"`
	Points      int    `json:"points,omitempty"`
	RoundLimit  int    `json:"round_limit,omitempty"`
	Reason      string `json:"reason,omitempty"`
}
