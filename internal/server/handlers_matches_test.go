package server

import (
	"net/http"
	"testing"
)

func TestCreateMatchDefaults(t *testing.T) {
	_, ts := newTestServer(t)
	user := signIn(t, ts, "alice")

	resp := doRequest(t, ts, http.MethodPost, "/api/matches", user.Token, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["status"] != statusWaiting {
		t.Fatalf("expected a waiting match, got %v", body["status"])
	}
	if body["round_limit"] != float64(5) {
		t.Fatalf("expected the default round limit, got %v", body["round_limit"])
	}
	if code, _ := body["join_code"].(string); len(code) != 6 {
		t.Fatalf("expected a 6-character join code, got %q", code)
	}
}

func TestCreateMatchRejectsBadRoundLimit(t *testing.T) {
	_, ts := newTestServer(t)
	user := signIn(t, ts, "alice")

	resp := doRequest(t, ts, http.MethodPost, "/api/matches", user.Token, map[string]any{
		"round_limit": 21,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
	resp.Body.Close()
}

func TestJoinMatchStartsDuel(t *testing.T) {
	_, ts := newTestServer(t)
	creator := signIn(t, ts, "alice")
	joiner := signIn(t, ts, "bob")
	matchID, code := createMatch(t, ts, creator, 0)

	resp := doRequest(t, ts, http.MethodPost, "/api/matches/join", joiner.Token, map[string]any{
		"code": code,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["match_id"] != matchID {
		t.Fatalf("expected match %s, got %v", matchID, body["match_id"])
	}
	if body["status"] != statusInProgress {
		t.Fatalf("expected the match to start, got %v", body["status"])
	}

	snapshot := decodeBody(t, doRequest(t, ts, http.MethodGet, "/api/matches/"+matchID, "", nil))
	if got := len(snapshot["players"].([]any)); got != 2 {
		t.Fatalf("expected 2 players, got %d", got)
	}
}

func TestJoinMatchRejectsCreator(t *testing.T) {
	_, ts := newTestServer(t)
	creator := signIn(t, ts, "alice")
	_, code := createMatch(t, ts, creator, 0)

	resp := doRequest(t, ts, http.MethodPost, "/api/matches/join", creator.Token, map[string]any{
		"code": code,
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, resp.StatusCode)
	}
	resp.Body.Close()
}

func TestJoinMatchIsIdempotentForParticipant(t *testing.T) {
	_, ts := newTestServer(t)
	creator := signIn(t, ts, "alice")
	joiner := signIn(t, ts, "bob")
	_, code := createMatch(t, ts, creator, 0)

	joinMatch(t, ts, joiner, code)
	again := joinMatch(t, ts, joiner, code)
	if again == "" {
		t.Fatal("expected the rejoin to succeed")
	}
}

func TestJoinMatchRejectsThirdPlayer(t *testing.T) {
	_, ts := newTestServer(t)
	creator := signIn(t, ts, "alice")
	joiner := signIn(t, ts, "bob")
	third := signIn(t, ts, "carol")
	_, code := createMatch(t, ts, creator, 0)
	joinMatch(t, ts, joiner, code)

	resp := doRequest(t, ts, http.MethodPost, "/api/matches/join", third.Token, map[string]any{
		"code": code,
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, resp.StatusCode)
	}
	resp.Body.Close()
}

func TestJoinMatchUnknownCode(t *testing.T) {
	_, ts := newTestServer(t)
	user := signIn(t, ts, "alice")

	resp := doRequest(t, ts, http.MethodPost, "/api/matches/join", user.Token, map[string]any{
		"code": "NOPE42",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
	resp.Body.Close()
}

func TestCancelMatchCreatorOnly(t *testing.T) {
	_, ts := newTestServer(t)
	creator := signIn(t, ts, "alice")
	joiner := signIn(t, ts, "bob")
	matchID, code := createMatch(t, ts, creator, 0)
	joinMatch(t, ts, joiner, code)

	resp := doRequest(t, ts, http.MethodPost, "/api/matches/"+matchID+"/cancel", joiner.Token, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected status %d for non-creator, got %d", http.StatusForbidden, resp.StatusCode)
	}
	resp.Body.Close()

	resp = doRequest(t, ts, http.MethodPost, "/api/matches/"+matchID+"/cancel", creator.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["status"] != statusCancelled {
		t.Fatalf("expected a cancelled match, got %v", body["status"])
	}

	resp = doRequest(t, ts, http.MethodPost, "/api/matches/"+matchID+"/cancel", creator.Token, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected status %d for a finished match, got %d", http.StatusConflict, resp.StatusCode)
	}
	resp.Body.Close()
}

func TestCompleteMatchRequiresInProgress(t *testing.T) {
	_, ts := newTestServer(t)
	creator := signIn(t, ts, "alice")
	joiner := signIn(t, ts, "bob")
	matchID, code := createMatch(t, ts, creator, 0)

	resp := doRequest(t, ts, http.MethodPost, "/api/matches/"+matchID+"/complete", creator.Token, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected status %d for a waiting match, got %d", http.StatusConflict, resp.StatusCode)
	}
	resp.Body.Close()

	joinMatch(t, ts, joiner, code)
	resp = doRequest(t, ts, http.MethodPost, "/api/matches/"+matchID+"/complete", joiner.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["status"] != statusCompleted {
		t.Fatalf("expected a completed match, got %v", body["status"])
	}
}

func TestCompleteMatchRequiresParticipant(t *testing.T) {
	_, ts := newTestServer(t)
	creator := signIn(t, ts, "alice")
	joiner := signIn(t, ts, "bob")
	outsider := signIn(t, ts, "carol")
	matchID, code := createMatch(t, ts, creator, 0)
	joinMatch(t, ts, joiner, code)

	resp := doRequest(t, ts, http.MethodPost, "/api/matches/"+matchID+"/complete", outsider.Token, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d", http.StatusForbidden, resp.StatusCode)
	}
	resp.Body.Close()
}

func TestGetMatchSnapshotIsPublic(t *testing.T) {
	_, ts := newTestServer(t)
	creator := signIn(t, ts, "alice")
	matchID, _ := createMatch(t, ts, creator, 0)

	resp := doRequest(t, ts, http.MethodGet, "/api/matches/"+matchID, "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["match_id"] != matchID {
		t.Fatalf("unexpected match id: %v", body["match_id"])
	}

	resp = doRequest(t, ts, http.MethodGet, "/api/matches/match-999", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
	resp.Body.Close()
}

func TestListMatches(t *testing.T) {
	_, ts := newTestServer(t)
	creator := signIn(t, ts, "alice")
	other := signIn(t, ts, "bob")
	createMatch(t, ts, creator, 0)
	createMatch(t, ts, other, 0)

	resp := doRequest(t, ts, http.MethodGet, "/api/matches", creator.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if got := len(body["matches"].([]any)); got != 1 {
		t.Fatalf("expected only the caller's match, got %d", got)
	}
}
