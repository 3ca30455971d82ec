package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/polarbear333/rag-llm-based-recommender/internal/catalog"
	"github.com/polarbear333/rag-llm-based-recommender/internal/chat"
	"github.com/polarbear333/rag-llm-based-recommender/internal/config"
	"github.com/polarbear333/rag-llm-based-recommender/internal/db"
	"github.com/polarbear333/rag-llm-based-recommender/internal/httpapi"
	"github.com/polarbear333/rag-llm-based-recommender/internal/httpapi/handlers"
	"github.com/polarbear333/rag-llm-based-recommender/internal/logger"
	"github.com/polarbear333/rag-llm-based-recommender/internal/search"
	"github.com/polarbear333/rag-llm-based-recommender/internal/store/rabbitmq"
	"github.com/polarbear333/rag-llm-based-recommender/internal/store/redisstore"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal("db connect", zap.Error(err))
	}

	catalogRepo := catalog.NewRepo(gdb)
	if err := catalogRepo.SeedIfEmpty(context.Background()); err != nil {
		log.Fatal("catalog seed", zap.Error(err))
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	persist := redisstore.New(rdb, time.Duration(cfg.SessionTTLMinutes)*time.Minute)

	searcher := search.NewClient(cfg.SearchBaseURL, log)
	jobRepo := chat.NewRepo(gdb)

	// Async sends degrade gracefully when the broker is unreachable; the
	// synchronous path works either way.
	var pub chat.JobPublisher
	rabbit, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitQueue)
	if err != nil {
		log.Warn("rabbit unavailable, async search disabled", zap.Error(err))
	} else {
		defer rabbit.Close()
		pub = rabbit
	}

	var chatSvc *chat.Service
	if pub != nil {
		chatSvc = chat.NewService(persist, searcher, jobRepo, pub, log)
	} else {
		chatSvc = chat.NewService(persist, searcher, nil, nil, log)
	}

	h := handlers.NewHandler(cfg, log, chatSvc, catalogRepo)
	r := httpapi.NewRouter(h, cfg, log)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	go func() {
		log.Info("server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("shutdown failed", zap.Error(err))
	}
	log.Info("server stopped")
}
