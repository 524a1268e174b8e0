package server

import (
	"strings"
	"testing"
)

func TestEnsureUserClaimsExisting(t *testing.T) {
	store := NewStore()
	first, created := store.EnsureUser("alice", "Alice", "token-1")
	if !created {
		t.Fatal("expected first sign-in to create the user")
	}
	again, created := store.EnsureUser("ALICE", "", "token-2")
	if created {
		t.Fatal("expected second sign-in to claim the existing user")
	}
	if again.ID != first.ID {
		t.Fatalf("expected user %d, got %d", first.ID, again.ID)
	}
	if again.Name != "Alice" {
		t.Fatalf("expected display name to survive, got %q", again.Name)
	}
}

func TestFindUserByToken(t *testing.T) {
	store := NewStore()
	user, _ := store.EnsureUser("bob", "", "secret-token")
	found, ok := store.FindUserByToken("secret-token")
	if !ok || found.ID != user.ID {
		t.Fatal("expected token lookup to find the user")
	}
	if _, ok := store.FindUserByToken("wrong"); ok {
		t.Fatal("expected unknown token to miss")
	}
	if _, ok := store.FindUserByToken(""); ok {
		t.Fatal("expected empty token to miss")
	}
}

func TestDeleteQuestionInUse(t *testing.T) {
	store := NewStore()
	user, _ := store.EnsureUser("carol", "", "t")
	question := store.CreateQuestion(Question{OwnerID: user.ID, Text: "q", Choices: []string{"a", "b"}})
	match := store.CreateMatch(user, 5)
	_, err := store.UpdateMatch(match.ID, func(match *Match) error {
		match.Rounds = append(match.Rounds, RoundState{Number: 1, QuestionID: question.ID, AskerID: user.ID})
		return nil
	})
	if err != nil {
		t.Fatalf("update match: %v", err)
	}

	if _, err := store.DeleteQuestion(question.ID); err != errQuestionInUse {
		t.Fatalf("expected errQuestionInUse, got %v", err)
	}

	free := store.CreateQuestion(Question{OwnerID: user.ID, Text: "q2", Choices: []string{"a", "b"}})
	if _, err := store.DeleteQuestion(free.ID); err != nil {
		t.Fatalf("expected unused question to delete, got %v", err)
	}
	if _, ok := store.GetQuestion(free.ID); ok {
		t.Fatal("expected deleted question to be gone")
	}
}

func TestListQuestionsFilters(t *testing.T) {
	store := NewStore()
	user, _ := store.EnsureUser("dave", "", "t")
	other, _ := store.EnsureUser("erin", "", "t2")
	store.CreateQuestion(Question{OwnerID: user.ID, Category: "science", Difficulty: difficultyEasy, Text: "a"})
	store.CreateQuestion(Question{OwnerID: user.ID, Category: "history", Difficulty: difficultyHard, Text: "b"})
	store.CreateQuestion(Question{OwnerID: other.ID, Category: "science", Difficulty: difficultyEasy, Text: "c"})

	all := store.ListQuestions(user.ID, "", "")
	if len(all) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(all))
	}
	science := store.ListQuestions(user.ID, "Science", "")
	if len(science) != 1 || science[0].Text != "a" {
		t.Fatalf("expected the science question, got %+v", science)
	}
	hard := store.ListQuestions(user.ID, "", difficultyHard)
	if len(hard) != 1 || hard[0].Text != "b" {
		t.Fatalf("expected the hard question, got %+v", hard)
	}
}

func TestFindMatchByCode(t *testing.T) {
	store := NewStore()
	user, _ := store.EnsureUser("frank", "", "t")
	match := store.CreateMatch(user, 3)
	if match.Status != statusWaiting {
		t.Fatalf("expected new match to wait for players, got %q", match.Status)
	}
	if len(match.Players) != 1 || !match.Players[0].IsCreator {
		t.Fatal("expected the creator to be the first participant")
	}

	found, ok := store.FindMatchByCode(match.Code)
	if !ok || found.ID != match.ID {
		t.Fatal("expected code lookup to find the match")
	}
	lower, ok := store.FindMatchByCode(strings.ToLower(match.Code))
	if !ok || lower.ID != match.ID {
		t.Fatal("expected code lookup to ignore case")
	}
	if _, ok := store.FindMatchByCode("NOPE42"); ok {
		t.Fatal("expected unknown code to miss")
	}
}

func TestUpdateMatchIDRekeys(t *testing.T) {
	store := NewStore()
	user, _ := store.EnsureUser("gail", "", "t")
	match := store.CreateMatch(user, 5)
	oldID := match.ID

	store.UpdateMatchID(match, "match-42")
	if _, ok := store.GetMatch(oldID); ok {
		t.Fatal("expected the old id to be gone")
	}
	found, ok := store.GetMatch("match-42")
	if !ok || found != match {
		t.Fatal("expected the match under its new id")
	}

	next := store.CreateMatch(user, 5)
	if next.ID != "match-43" {
		t.Fatalf("expected ids to continue after the re-key, got %q", next.ID)
	}
}

func TestListMatchSummaries(t *testing.T) {
	store := NewStore()
	creator, _ := store.EnsureUser("hank", "", "t")
	joiner, _ := store.EnsureUser("iris", "", "t2")
	first := store.CreateMatch(creator, 5)
	store.CreateMatch(joiner, 5)

	_, err := store.UpdateMatch(first.ID, func(match *Match) error {
		match.Players = append(match.Players, Participant{UserID: joiner.ID, Name: joiner.Name})
		return nil
	})
	if err != nil {
		t.Fatalf("update match: %v", err)
	}

	mine := store.ListMatchSummaries(creator.ID)
	if len(mine) != 1 || mine[0].ID != first.ID {
		t.Fatalf("expected only the creator's match, got %+v", mine)
	}
	theirs := store.ListMatchSummaries(joiner.ID)
	if len(theirs) != 2 {
		t.Fatalf("expected both matches for the joiner, got %d", len(theirs))
	}
	if theirs[0].Players != 2 {
		t.Fatalf("expected the joined match to count 2 players, got %d", theirs[0].Players)
	}
}
