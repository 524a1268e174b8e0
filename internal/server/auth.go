package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// currentUser resolves the signed-in user from the Authorization bearer token
// or, failing that, from the session cookie. Token comparison happens in
// constant time inside the store.
func (s *Server) currentUser(c *gin.Context) (*User, error) {
	if token := bearerToken(c); token != "" {
		user, ok := s.store.FindUserByToken(token)
		if !ok {
			return nil, errInvalidToken
		}
		return user, nil
	}
	if s.sessions != nil {
		username := normalizeText(s.sessions.GetUsername(c.Writer, c.Request))
		if username != "" {
			if user, ok := s.store.FindUserByName(username); ok {
				return user, nil
			}
		}
	}
	return nil, errAuthRequired
}

// requireUser is currentUser plus the 401 response on failure.
func (s *Server) requireUser(c *gin.Context) (*User, bool) {
	user, err := s.currentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return nil, false
	}
	return user, true
}

func bearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return strings.TrimSpace(c.GetHeader("X-Auth-Token"))
}
