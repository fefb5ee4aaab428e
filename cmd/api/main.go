package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"todoapi/internal/config"
	"todoapi/internal/database"
	"todoapi/internal/server"
	"todoapi/internal/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	tokens, err := utils.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatal("JWT configuration error: ", err)
	}

	db, err := database.Open(cfg.DB)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer db.Close()

	if err := database.CreateTables(db); err != nil {
		log.Fatal("Failed to prepare schema: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg, server.NewRouter(cfg, db, tokens)); err != nil {
		log.Fatal("Server failed: ", err)
	}
}
