package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"rental-hub/internal/config"
	"rental-hub/internal/db"
	apihttp "rental-hub/internal/http"
	"rental-hub/internal/repository"
	"rental-hub/internal/repository/sqlite"
	"rental-hub/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// stores agrupa los repositorios del backend elegido por DATABASE_URL.
type stores struct {
	users         repository.UserRepository
	listings      repository.ListingRepository
	comments      repository.CommentRepository
	conversations repository.ConversationRepository
	messages      repository.MessageRepository
	health        apihttp.HealthFunc
	close         func()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer st.close()

	var tokenStore service.RefreshTokenStore
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory refresh tokens", zap.Error(err))
		} else {
			tokenStore = service.NewRedisRefreshTokenStore(redisClient)
		}
		cancel()
	}
	jwtSvc := service.NewJWTServiceWithStore(
		cfg.JWTSecret,
		time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWTRefreshTTLMinutes)*time.Minute,
		tokenStore,
	)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	userSvc := service.NewUserService(logger, st.users)
	listingSvc := service.NewListingService(st.listings, st.users)
	commentSvc := service.NewCommentService(st.listings, st.comments)
	conversationSvc := service.NewConversationService(logger, st.listings, st.conversations)
	messageSvc := service.NewMessageService(logger, st.conversations, st.messages)

	userHandler := apihttp.NewUserHandler(logger, userSvc, jwtSvc)
	listingHandler := apihttp.NewListingHandler(logger, listingSvc, commentSvc)
	conversationHandler := apihttp.NewConversationHandler(logger, conversationSvc, messageSvc)
	router := apihttp.NewRouter(logger, jwtSvc, cfg.CORSAllowedOrigins, st.health, userHandler, listingHandler, conversationHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
	logger.Info("server stopped")
}

func openStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (stores, error) {
	if path, ok := cfg.SQLitePath(); ok {
		conn, err := sqlite.Open(path)
		if err != nil {
			return stores{}, err
		}
		logger.Info("using sqlite store", zap.String("path", path))
		return sqliteStores(conn), nil
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		return stores{}, err
	}
	if cfg.DBAutoMigrate {
		if err := db.Migrate(ctx, pool); err != nil {
			pool.Close()
			return stores{}, err
		}
	}
	logger.Info("using postgres store")
	return stores{
		users:         repository.NewPgUserRepository(pool),
		listings:      repository.NewPgListingRepository(pool),
		comments:      repository.NewPgCommentRepository(pool),
		conversations: repository.NewPgConversationRepository(pool),
		messages:      repository.NewPgMessageRepository(pool),
		health:        func(ctx context.Context) error { return db.Ping(ctx, pool) },
		close:         pool.Close,
	}, nil
}

func sqliteStores(conn *sql.DB) stores {
	return stores{
		users:         sqlite.NewUserRepository(conn),
		listings:      sqlite.NewListingRepository(conn),
		comments:      sqlite.NewCommentRepository(conn),
		conversations: sqlite.NewConversationRepository(conn),
		messages:      sqlite.NewMessageRepository(conn),
		health:        conn.PingContext,
		close:         func() { conn.Close() },
	}
}
