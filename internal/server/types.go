package server

import "time"

const (
	statusWaiting    = "waiting"
	statusInProgress = "in_progress"
	statusCompleted  = "completed"
	statusCancelled  = "cancelled"
)

const (
	difficultyEasy   = "easy"
	difficultyMedium = "medium"
	difficultyHard   = "hard"
)

const matchPlayerLimit = 2

type User struct {
	ID        int
	DBID      uint
	Username  string
	Name      string
	AuthToken string
}

type Question struct {
	ID           int
	DBID         uint
	OwnerID      int
	Category     string
	Difficulty   string
	Text         string
	Choices      []string
	CorrectIndex int
	Points       int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Match struct {
	ID         string
	DBID       uint
	Code       string
	Status     string
	RoundLimit int
	CreatorID  int
	CreatedAt  time.Time
	Players    []Participant
	Rounds     []RoundState
}

type Participant struct {
	UserID    int
	Name      string
	DBID      uint
	IsCreator bool
	JoinedAt  time.Time
}

type RoundState struct {
	Number     int
	DBID       uint
	QuestionID int
	AskerID    int
	Answers    []AnswerEntry
}

type AnswerEntry struct {
	UserID      int
	ChoiceIndex int
	Correct     bool
	Points      int
	DBID        uint
}

type MatchSummary struct {
	ID      string
	Code    string
	Status  string
	Players int
	Rounds  int
}
