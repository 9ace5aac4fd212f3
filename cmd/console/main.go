package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voiceops-console/internal/auth"
	"voiceops-console/internal/config"
	"voiceops-console/internal/httpapi"
	"voiceops-console/internal/platform"
	"voiceops-console/internal/session"
	"voiceops-console/internal/skillbase"
	"voiceops-console/pkg/logger"
	"voiceops-console/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	gocache "github.com/patrickmn/go-cache"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A missing .env is fine; deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	authManager, err := auth.NewManager(cfg.Auth)
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}

	backend, err := platform.New(cfg.Platform)
	if err != nil {
		log.Error("platform client init failed", "err", err)
		os.Exit(1)
	}

	// Edit-session locks fall back to in-process exclusivity when redis is
	// not configured, which is correct for a single replica.
	var locker session.Locker
	if cfg.Redis.Addr != "" {
		rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.Redis.Addr})
		if err != nil {
			log.Error("redis init failed", "err", err)
			os.Exit(1)
		}
		defer rdb.Close()
		locker = utils.NewSessionLock(rdb, 30*time.Minute)
	}

	h := httpapi.Handlers{
		Auth:           authManager,
		Platform:       backend,
		ConfigSessions: session.NewRegistry[skillbase.Config](locker),
		VoiceCache:     gocache.New(httpapi.VoiceCacheTTL, 10*time.Minute),
	}

	// Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = cfg.CORS.AllowedOrigins
		corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
		r.Use(cors.New(corsCfg))
	}

	registerRoutes(r, authManager, h)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("console listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}
}
