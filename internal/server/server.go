package server

import (
	"trivia-duel/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type Server struct {
	store    *Store
	db       *gorm.DB
	ws       *matchHub
	cfg      config.Config
	sessions *sessionStore
	log      zerolog.Logger
}

func New(conn *gorm.DB, cfg config.Config, log zerolog.Logger) *Server {
	return &Server{
		store:    NewStore(),
		db:       conn,
		ws:       newMatchHub(),
		cfg:      cfg,
		sessions: newSessionStore(conn),
		log:      log,
	}
}

func (s *Server) Router() *gin.Engine {
	registerValidators()
	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api")
	api.POST("/session", s.handleSignIn)
	api.GET("/session", s.handleSession)

	api.POST("/questions", s.handleCreateQuestion)
	api.GET("/questions", s.handleListQuestions)
	api.GET("/questions/:id", s.handleGetQuestion)
	api.PUT("/questions/:id", s.handleUpdateQuestion)
	api.DELETE("/questions/:id", s.handleDeleteQuestion)

	api.POST("/matches", s.handleCreateMatch)
	api.GET("/matches", s.handleListMatches)
	api.POST("/matches/join", s.handleJoinMatch)
	api.GET("/matches/:id", s.handleGetMatch)
	api.POST("/matches/:id/cancel", s.handleCancelMatch)
	api.POST("/matches/:id/complete", s.handleCompleteMatch)
	api.GET("/matches/:id/results", s.handleResults)
	api.POST("/matches/:id/rounds", s.handleAddRound)
	api.POST("/matches/:id/rounds/:number/answers", s.handleSubmitAnswer)

	router.GET("/ws/matches/:id", s.handleMatchWebsocket)
	return router
}
