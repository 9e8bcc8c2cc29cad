// Command server runs the studiobook HTTP API.
//
// Configuration is environment-driven (see internal/config). With
// DATABASE_URL set the server uses postgres and applies migrations at
// startup; without it the server falls back to in-memory stores, which is
// only meant for local development. REDIS_ADDR enables login throttling.
package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"studiobook/internal/config"
	"studiobook/internal/handler"
	"studiobook/internal/password"
	"studiobook/internal/rate"
	"studiobook/internal/service"
	"studiobook/internal/store"
	"studiobook/internal/token"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration error", "err", err)
		os.Exit(1)
	}

	var (
		users    store.UserStore
		teachers store.TeacherStore
		sessions store.SessionStore
	)
	if cfg.DatabaseURL != "" {
		db, err := store.Open(cfg.DatabaseURL)
		if err != nil {
			logger.Error("database connection failed", "err", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := store.Migrate(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
			logger.Error("migrations failed", "err", err)
			os.Exit(1)
		}

		users = store.NewPostgresUserStore(db)
		teachers = store.NewPostgresTeacherStore(db)
		sessions = store.NewPostgresSessionStore(db)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory stores")
		users = store.NewMemoryUserStore()
		teachers = store.NewMemoryTeacherStore()
		sessions = store.NewMemorySessionStore()
	}

	var limiter *rate.Limiter
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		limiter = rate.New(rdb, rate.Config{
			MaxAttempts: cfg.LoginAttempts,
			Cooldown:    cfg.LoginCooldown,
		})
	} else {
		logger.Warn("REDIS_ADDR not set, login throttling disabled")
	}

	hasher, err := password.NewHasher(password.DefaultParams())
	if err != nil {
		logger.Error("password hasher init failed", "err", err)
		os.Exit(1)
	}

	codec, err := token.NewCodec(token.Config{Secret: cfg.TokenSecret, TTL: cfg.TokenTTL})
	if err != nil {
		logger.Error("token codec init failed", "err", err)
		os.Exit(1)
	}

	router := handler.NewRouter(handler.Deps{
		Auth:      service.NewAuth(users, hasher, codec, limiter, logger),
		Sessions:  service.NewSessions(sessions, users),
		Teachers:  service.NewTeachers(teachers),
		Users:     service.NewUsers(users),
		Codec:     codec,
		UserStore: users,
		Logger:    logger,
	})

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("server listening", "addr", cfg.Addr)
	if err := server.ListenAndServe(); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
