package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "parley/cmd/api/router/v1"
	cacheAdapter "parley/internal/infrastructure/cache/adapter"
	"parley/internal/infrastructure/database"
	queueAdapter "parley/internal/infrastructure/queue/adapter"
	"parley/internal/infrastructure/realtime"
	"parley/internal/pkg/auth"
	"parley/internal/pkg/chat/application/task"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file loaded", "error", err)
	}

	// Connect to the database on startup
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.NewPoolFromEnv(ctx)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		slog.Error("failed to apply schema", "error", err)
		os.Exit(1)
	}

	cache, err := cacheAdapter.NewRedisAdapter()
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer cache.Close()

	queueClient, err := queueAdapter.NewAsynqClientFromEnv()
	if err != nil {
		slog.Error("failed to create queue client", "error", err)
		os.Exit(1)
	}
	defer queueClient.Close()

	// One hub per process; everything that publishes or subscribes gets
	// this instance injected.
	hub := realtime.NewHub()

	sessions := auth.NewSessions(cache, auth.SessionTTLFromEnv())
	authService := auth.NewService(auth.NewPgStore(pool), sessions)

	// Background worker for queue tasks (member-joined announcements).
	queueServer, err := queueAdapter.NewAsynqServer()
	if err != nil {
		slog.Error("failed to create queue server", "error", err)
		os.Exit(1)
	}
	task.RegisterMemberJoinedTask(queueServer, pool, hub)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	go func() {
		if err := queueServer.Run(workerCtx); err != nil {
			slog.Error("queue server stopped", "error", err)
		}
	}()

	r := gin.Default()
	r.Use(auth.Resolve(sessions))

	// Page routes: rendering lives in the web client; the server only
	// enforces the redirect rules.
	pages := r.Group("", auth.PageGuard())
	pages.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	pages.GET("/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"page": "login"})
	})
	pages.GET("/signup", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"page": "signup"})
	})
	pages.GET("/messages", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"page": "messages"})
	})
	pages.GET("/messages/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"page": "messages", "conversation": c.Param("id")})
	})

	v1.RegisterRoutes(r, pool, queueClient, hub, authService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{Addr: ":" + port, Handler: r}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	slog.Info("shutting down")
	stopWorker()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
}
