// Package server wires handlers, middleware and stores into an HTTP server.
package server

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"time"

	"todoapi/internal/config"
	"todoapi/internal/handlers"
	"todoapi/internal/middleware"
	"todoapi/internal/monitoring"
	"todoapi/internal/store"
	"todoapi/internal/utils"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with every route of the API. Recovery is
// innermost so a recovered panic is still logged and counted as a 500.
func NewRouter(cfg config.Config, db *sql.DB, tokens *utils.Tokens) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestIDMiddleware(),
		monitoring.RequestMetricsMiddleware(),
		gin.Recovery(),
	)

	todoStore := store.NewTodoStore(db)
	userStore := store.NewUserStore(db)

	router.GET("/health", handlers.HealthCheck)
	router.GET("/api/status", handlers.Status)

	auth := handlers.NewAuthHandler(userStore, tokens)
	router.POST("/signup", auth.Signup)
	router.POST("/auth/login", auth.Login)

	todos := handlers.NewTodoHandler(todoStore)
	todoRoutes := router.Group("/todos", middleware.AuthMiddleware(tokens))
	{
		todoRoutes.GET("", todos.List)
		todoRoutes.POST("", todos.Create)
		todoRoutes.GET("/:id", todos.Show)
		todoRoutes.PUT("/:id", todos.Update)
		todoRoutes.DELETE("/:id", todos.Destroy)
	}

	monitor := handlers.NewMonitorHandler(
		monitoring.NewService(time.Now(), db, todoStore, userStore),
		cfg.MonitoringAPIKey,
	)
	monitorRoutes := router.Group("/api/monitor")
	{
		monitorRoutes.GET("/status", monitor.Status)
		monitorRoutes.GET("/all", monitor.All)
		monitorRoutes.GET("/snapshot", monitor.Snapshot)
	}

	return router
}

// Run serves handler on cfg.Addr() until ctx is cancelled, then drains
// in-flight requests for at most cfg.ShutdownTimeout.
func Run(ctx context.Context, cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Todo API starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down Todo API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
