package server

import (
	"errors"
	"net/http"
)

var (
	errAuthRequired     = errors.New("authentication required")
	errInvalidToken     = errors.New("invalid auth token")
	errUserNotFound     = errors.New("user not found")
	errQuestionNotFound = errors.New("question not found")
	errMatchNotFound    = errors.New("match not found")
	errRoundNotFound    = errors.New("round not found")

	errNotOwner       = errors.New("question belongs to another user")
	errNotParticipant = errors.New("you are not part of this match")
	errNotCreator     = errors.New("only the match creator can do this")
	errOwnRound       = errors.New("cannot answer your own round")

	errOwnMatch         = errors.New("cannot join your own match")
	errMatchFull        = errors.New("match already has two players")
	errMatchNotJoinable = errors.New("match is not accepting players")
	errMatchNotLive     = errors.New("match is not in progress")
	errMatchFinished    = errors.New("match already finished")
	errRoundLimit       = errors.New("round limit reached")
	errQuestionUsed     = errors.New("question already used in this match")
	errQuestionInUse    = errors.New("question is used by a match")
	errAlreadyAnswered  = errors.New("round already answered")

	errInvalidChoice = errors.New("choice_index is out of range")
)

// statusForError maps a store or authorization error to the HTTP status the
// handlers respond with. Anything unmapped is a state conflict.
func statusForError(err error) int {
	switch {
	case errors.Is(err, errAuthRequired), errors.Is(err, errInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, errUserNotFound),
		errors.Is(err, errQuestionNotFound),
		errors.Is(err, errMatchNotFound),
		errors.Is(err, errRoundNotFound):
		return http.StatusNotFound
	case errors.Is(err, errNotOwner),
		errors.Is(err, errNotParticipant),
		errors.Is(err, errNotCreator),
		errors.Is(err, errOwnRound):
		return http.StatusForbidden
	case errors.Is(err, errInvalidChoice):
		return http.StatusBadRequest
	default:
		return http.StatusConflict
	}
}
