package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	v1 "github.com/zennajjames/TheVillage/cmd/api/router/v1"
	"github.com/zennajjames/TheVillage/internal/auth"
	cacheAdapter "github.com/zennajjames/TheVillage/internal/infrastructure/cache/adapter"
	"github.com/zennajjames/TheVillage/internal/config"
	"github.com/zennajjames/TheVillage/internal/infrastructure/database"
	queueAdapter "github.com/zennajjames/TheVillage/internal/infrastructure/queue/adapter"
	"github.com/zennajjames/TheVillage/internal/infrastructure/realtime"
	dirAdapter "github.com/zennajjames/TheVillage/internal/pkg/directory/adapter"
	directory "github.com/zennajjames/TheVillage/internal/pkg/directory/port"
	repoAdapter "github.com/zennajjames/TheVillage/internal/pkg/messaging/persistence/repository/adapter"
	"github.com/zennajjames/TheVillage/internal/pkg/messaging/application/usecase"
	httpHandler "github.com/zennajjames/TheVillage/internal/pkg/messaging/presentation/http"
	notifAdapter "github.com/zennajjames/TheVillage/internal/pkg/notification/adapter"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := cfg.NewLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	pool, err := database.Connect(ctx, cfg.DBURL)
	cancel()
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer pool.Close()

	migrateCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = database.Migrate(migrateCtx, pool)
	cancel()
	if err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}

	// User directory, wrapped in a redis read-through cache when redis is
	// reachable. A missing cache degrades to direct lookups.
	var dir directory.Directory = dirAdapter.NewPgDirectory(pool)
	cache, err := cacheAdapter.NewRedisCache(cfg.RedisURL)
	if err != nil {
		log.WithError(err).Warn("redis unavailable, directory cache disabled")
	} else {
		defer cache.Close()
		dir = dirAdapter.NewCachedDirectory(dir, cache, 5*time.Minute, log)
	}

	queueClient, err := queueAdapter.NewAsynqClient(cfg.RedisURL)
	if err != nil {
		log.WithError(err).Fatal("failed to create queue client")
	}
	defer queueClient.Close()
	dispatcher := notifAdapter.NewQueueDispatcher(queueClient)

	conversations := repoAdapter.NewPgConversationRepository(pool)
	messages := repoAdapter.NewPgMessageRepository(pool)

	verifier := auth.NewTokenVerifier(cfg.JWTSecret)
	hub := realtime.NewHub()
	defer hub.Close()

	r := gin.Default()
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	v1.RegisterRoutes(r, httpHandler.Dependencies{
		Verifier:          verifier,
		Hub:               hub,
		Log:               log,
		ListConversations: usecase.NewListConversationsUseCase(conversations, dir),
		GetOrCreate:       usecase.NewGetOrCreateConversationUseCase(conversations, dir),
		FetchMessages:     usecase.NewFetchMessagesUseCase(conversations, messages, dir),
		SendMessage:       usecase.NewSendMessageUseCase(conversations, messages, dir, dispatcher, log),
		JoinConversation:  usecase.NewJoinConversationUseCase(conversations),
	})

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}

	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-stopCtx.Done()

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("HTTP server shutdown was not clean")
	}
}
