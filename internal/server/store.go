package server

import (
	"crypto/subtle"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

type Store struct {
	mu             sync.Mutex
	nextUserID     int
	nextQuestionID int
	nextMatchID    int
	users          map[int]*User
	questions      map[int]*Question
	matches        map[string]*Match
}

func NewStore() *Store {
	return &Store{
		nextUserID:     1,
		nextQuestionID: 1,
		nextMatchID:    1,
		users:          make(map[int]*User),
		questions:      make(map[int]*Question),
		matches:        make(map[string]*Match),
	}
}

// EnsureUser returns the user with the given username, creating it on first
// sign-in. The second return value reports whether the user was created.
func (s *Store) EnsureUser(username, displayName, token string) (*User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if strings.EqualFold(user.Username, username) {
			if displayName != "" {
				user.Name = displayName
			}
			return user, false
		}
	}
	if displayName == "" {
		displayName = username
	}
	user := &User{
		ID:        s.nextUserID,
		Username:  username,
		Name:      displayName,
		AuthToken: token,
	}
	s.nextUserID++
	s.users[user.ID] = user
	return user, true
}

func (s *Store) GetUser(id int) (*User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	return user, ok
}

func (s *Store) FindUserByName(username string) (*User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if strings.EqualFold(user.Username, username) {
			return user, true
		}
	}
	return nil, false
}

func (s *Store) FindUserByToken(token string) (*User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.AuthToken == "" {
			continue
		}
		if subtle.ConstantTimeCompare([]byte(user.AuthToken), []byte(token)) == 1 {
			return user, true
		}
	}
	return nil, false
}

func (s *Store) UpdateUserID(user *User, newID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == newID {
		return
	}
	delete(s.users, user.ID)
	user.ID = newID
	s.users[newID] = user
	if newID >= s.nextUserID {
		s.nextUserID = newID + 1
	}
}

func (s *Store) CreateQuestion(question Question) *Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := question
	entry.ID = s.nextQuestionID
	entry.CreatedAt = timeNowUTC()
	entry.UpdatedAt = entry.CreatedAt
	s.nextQuestionID++
	s.questions[entry.ID] = &entry
	return &entry
}

func (s *Store) GetQuestion(id int) (*Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	question, ok := s.questions[id]
	return question, ok
}

func (s *Store) UpdateQuestion(id int, update func(question *Question) error) (*Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	question, ok := s.questions[id]
	if !ok {
		return nil, errQuestionNotFound
	}
	if err := update(question); err != nil {
		return nil, err
	}
	question.UpdatedAt = timeNowUTC()
	return question, nil
}

// DeleteQuestion removes a question unless a round in any match references it.
func (s *Store) DeleteQuestion(id int) (*Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	question, ok := s.questions[id]
	if !ok {
		return nil, errQuestionNotFound
	}
	for _, match := range s.matches {
		for _, round := range match.Rounds {
			if round.QuestionID == id {
				return nil, errQuestionInUse
			}
		}
	}
	delete(s.questions, id)
	return question, nil
}

func (s *Store) UpdateQuestionID(question *Question, newID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if question.ID == newID {
		return
	}
	delete(s.questions, question.ID)
	question.ID = newID
	s.questions[newID] = question
	if newID >= s.nextQuestionID {
		s.nextQuestionID = newID + 1
	}
}

// ListQuestions returns copies of the owner's questions, oldest first,
// optionally filtered by category and difficulty.
func (s *Store) ListQuestions(ownerID int, category, difficulty string) []Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]Question, 0)
	for _, question := range s.questions {
		if question.OwnerID != ownerID {
			continue
		}
		if category != "" && !strings.EqualFold(question.Category, category) {
			continue
		}
		if difficulty != "" && question.Difficulty != difficulty {
			continue
		}
		list = append(list, *question)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
	return list
}

func (s *Store) CreateMatch(creator *User, roundLimit int) *Match {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := fmt.Sprintf("match-%d", s.nextMatchID)
	s.nextMatchID++
	match := &Match{
		ID:         id,
		Code:       newMatchCode(),
		Status:     statusWaiting,
		RoundLimit: roundLimit,
		CreatorID:  creator.ID,
		CreatedAt:  timeNowUTC(),
		Players: []Participant{{
			UserID:    creator.ID,
			Name:      creator.Name,
			IsCreator: true,
			JoinedAt:  timeNowUTC(),
		}},
	}
	s.matches[id] = match
	return match
}

func (s *Store) GetMatch(id string) (*Match, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	match, ok := s.matches[id]
	return match, ok
}

func (s *Store) FindMatchByCode(code string) (*Match, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, match := range s.matches {
		if strings.EqualFold(match.Code, code) {
			return match, true
		}
	}
	return nil, false
}

func (s *Store) UpdateMatch(id string, update func(match *Match) error) (*Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	match, ok := s.matches[id]
	if !ok {
		return nil, errMatchNotFound
	}
	if err := update(match); err != nil {
		return nil, err
	}
	return match, nil
}

func (s *Store) UpdateMatchID(match *Match, newID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if match.ID == newID {
		return
	}
	delete(s.matches, match.ID)
	match.ID = newID
	s.matches[newID] = match
	if id := matchSortKey(newID); id >= s.nextMatchID {
		s.nextMatchID = id + 1
	}
}

func (s *Store) ListMatchSummaries(userID int) []MatchSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]MatchSummary, 0)
	for _, match := range s.matches {
		if !isParticipant(match, userID) {
			continue
		}
		list = append(list, MatchSummary{
			ID:      match.ID,
			Code:    match.Code,
			Status:  match.Status,
			Players: len(match.Players),
			Rounds:  len(match.Rounds),
		})
	}
	sort.Slice(list, func(i, j int) bool {
		return matchSortKey(list[i].ID) < matchSortKey(list[j].ID)
	})
	return list
}

func (s *Store) RestoreUser(user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	if user.ID >= s.nextUserID {
		s.nextUserID = user.ID + 1
	}
}

func (s *Store) RestoreQuestion(question *Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions[question.ID] = question
	if question.ID >= s.nextQuestionID {
		s.nextQuestionID = question.ID + 1
	}
}

func (s *Store) RestoreMatch(match *Match) error {
	if match == nil {
		return errMatchNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.matches[match.ID]; ok {
		return fmt.Errorf("match %s already loaded", match.ID)
	}
	for _, existing := range s.matches {
		if existing.Code == match.Code {
			return fmt.Errorf("match code %s already loaded", match.Code)
		}
	}
	s.matches[match.ID] = match
	if id := matchSortKey(match.ID); id >= s.nextMatchID {
		s.nextMatchID = id + 1
	}
	return nil
}

func matchSortKey(id string) int {
	parts := strings.Split(id, "-")
	if len(parts) < 2 {
		return 0
	}
	value, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 0
	}
	return value
}

func isParticipant(match *Match, userID int) bool {
	for i := range match.Players {
		if match.Players[i].UserID == userID {
			return true
		}
	}
	return false
}

func findParticipant(match *Match, userID int) (*Participant, bool) {
	for i := range match.Players {
		if match.Players[i].UserID == userID {
			return &match.Players[i], true
		}
	}
	return nil, false
}

func roundByNumber(match *Match, number int) (*RoundState, bool) {
	for i := range match.Rounds {
		if match.Rounds[i].Number == number {
			return &match.Rounds[i], true
		}
	}
	return nil, false
}
