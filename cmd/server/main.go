package main

import (
	"os"
	"time"

	"trivia-duel/internal/config"
	"trivia-duel/internal/db"
	"trivia-duel/internal/logger"
	"trivia-duel/internal/server"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		os.Stderr.WriteString("failed to load .env: " + err.Error() + "\n")
	}
	cfg := config.Load()
	log := logger.New(cfg.PrettyLogs)

	conn, err := db.Open()
	if err != nil {
		log.Warn().Err(err).Msg("running without database persistence")
		conn = nil
	}
	if conn != nil {
		if err := db.ConfigurePool(conn,
			cfg.DBMaxOpenConns,
			cfg.DBMaxIdleConns,
			time.Duration(cfg.DBConnMaxLifetimeSeconds)*time.Second,
			time.Duration(cfg.DBConnMaxIdleTimeSeconds)*time.Second,
		); err != nil {
			log.Fatal().Err(err).Msg("database pool configuration failed")
		}
		if err := db.Migrate(conn); err != nil {
			log.Fatal().Err(err).Msg("database migration failed")
		}
		log.Info().Msg("database migration complete")
	}

	gin.SetMode(gin.ReleaseMode)
	srv := server.New(conn, cfg, log)
	if err := srv.RestoreFromDB(); err != nil {
		log.Fatal().Err(err).Msg("state restore failed")
	}

	addr := ":8080"
	if env := os.Getenv("PORT"); env != "" {
		addr = ":" + env
	}
	log.Info().Str("addr", addr).Msg("trivia-duel server listening")
	if err := srv.Router().Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
