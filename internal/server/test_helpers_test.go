package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"trivia-duel/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	srv := New(nil, config.Default(), zerolog.Nop())
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return srv, ts
}

func doRequest(t *testing.T, ts *httptest.Server, method, path, token string, payload any) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

type testUser struct {
	ID    int
	Token string
}

func signIn(t *testing.T, ts *httptest.Server, username string) testUser {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/session", "", map[string]any{
		"username": username,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("sign in: expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	return testUser{
		ID:    int(body["user_id"].(float64)),
		Token: body["auth_token"].(string),
	}
}

func createQuestion(t *testing.T, ts *httptest.Server, user testUser, text string, correct int) int {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/questions", user.Token, map[string]any{
		"text":          text,
		"choices":       []string{"Red", "Green", "Blue"},
		"correct_index": correct,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create question: expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	return int(body["question_id"].(float64))
}

func createMatch(t *testing.T, ts *httptest.Server, user testUser, roundLimit int) (string, string) {
	t.Helper()
	payload := map[string]any{}
	if roundLimit > 0 {
		payload["round_limit"] = roundLimit
	}
	resp := doRequest(t, ts, http.MethodPost, "/api/matches", user.Token, payload)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create match: expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	return body["match_id"].(string), body["join_code"].(string)
}

func joinMatch(t *testing.T, ts *httptest.Server, user testUser, code string) string {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/matches/join", user.Token, map[string]any{
		"code": code,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("join match: expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	return body["match_id"].(string)
}

func addRound(t *testing.T, ts *httptest.Server, user testUser, matchID string, questionID int) int {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/matches/"+matchID+"/rounds", user.Token, map[string]any{
		"question_id": questionID,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add round: expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	return int(body["round_number"].(float64))
}

func submitAnswer(t *testing.T, ts *httptest.Server, user testUser, matchID string, round, choice int) map[string]any {
	t.Helper()
	path := "/api/matches/" + matchID + "/rounds/" + strconv.Itoa(round) + "/answers"
	resp := doRequest(t, ts, http.MethodPost, path, user.Token, map[string]any{
		"choice_index": choice,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("submit answer: expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	return decodeBody(t, resp)
}
