package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type signInRequest struct {
	Username    string `json:"username" binding:"required,username"`
	DisplayName string `json:"display_name" binding:"omitempty,max=64"`
}

var signInMessages = bindMessages{
	"Username": {
		"required": "username is required",
		"username": "username must be 20 plain characters or fewer",
	},
	"DisplayName": {
		"max": "display_name must be 64 characters or fewer",
	},
}

// handleSignIn stands in for the host framework's authentication: it claims
// or creates the named user, sets the session cookie, and hands back the
// bearer token API clients use instead of the cookie.
func (s *Server) handleSignIn(c *gin.Context) {
	var req signInRequest
	if !bindJSON(c, &req, signInMessages, "username is required") {
		return
	}
	username, err := validateUsername(req.Username)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, created := s.store.EnsureUser(username, normalizeText(req.DisplayName), uuid.NewString())
	if err := s.persistUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign in"})
		return
	}
	if s.sessions != nil {
		s.sessions.SetUsername(c.Writer, c.Request, user.Username)
	}
	if created {
		s.log.Info().Int("user_id", user.ID).Str("username", user.Username).Msg("user created")
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":      user.ID,
		"username":     user.Username,
		"display_name": user.Name,
		"auth_token":   user.AuthToken,
	})
}

func (s *Server) handleSession(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user_id":      user.ID,
		"username":     user.Username,
		"display_name": user.Name,
	})
}
