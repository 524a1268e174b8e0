package server

import (
	"crypto/rand"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"trivia-duel/internal/db"

	"gorm.io/gorm"
)

const sessionCookie = "td_session"

// sessionStore keeps the session-id to username mapping. Sessions live in the
// database when one is configured and in memory otherwise.
type sessionStore struct {
	db       *gorm.DB
	mu       sync.Mutex
	sessions map[string]string
}

func newSessionStore(conn *gorm.DB) *sessionStore {
	return &sessionStore{
		db:       conn,
		sessions: make(map[string]string),
	}
}

func (s *sessionStore) SetUsername(w http.ResponseWriter, r *http.Request, username string) {
	if strings.TrimSpace(username) == "" {
		return
	}
	id := s.ensureSessionID(w, r)
	if s.db == nil {
		s.mu.Lock()
		s.sessions[id] = username
		s.mu.Unlock()
		return
	}
	record := db.Session{
		ID:       id,
		Username: username,
	}
	_ = s.db.Save(&record).Error
}

func (s *sessionStore) GetUsername(w http.ResponseWriter, r *http.Request) string {
	id := s.ensureSessionID(w, r)
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.sessions[id]
	}
	var record db.Session
	if err := s.db.Where("id = ?", id).First(&record).Error; err != nil {
		return ""
	}
	return record.Username
}

func (s *sessionStore) ensureSessionID(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(sessionCookie)
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}
	id := newSessionID()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func newSessionID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("sess-%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("%x", buf)
}
