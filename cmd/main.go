package main

import (
	"bytes"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"linkedin-insights/internal/config"
	"linkedin-insights/internal/core/entity"
	"linkedin-insights/internal/core/extract"
	"linkedin-insights/internal/core/fetch"
	"linkedin-insights/internal/core/job"
	"linkedin-insights/internal/core/scrape"
	"linkedin-insights/internal/core/scrapelog"
	"linkedin-insights/internal/logger"
	rds "linkedin-insights/internal/platform/redis"
	tasks "linkedin-insights/internal/platform/tasks"
	"linkedin-insights/internal/server"
	"linkedin-insights/internal/worker"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log.Printf("[insights] starting at %s (env=%s)\n", cfg.HTTPAddr, cfg.AppEnv)

	logr := logger.New("main")

	// Document store connection, created once and injected everywhere.
	redisSvc, err := rds.New(rds.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer redisSvc.Close()

	taskClient := tasks.New(redisSvc)
	asynqServer := asynq.NewServer(redisSvc.AsynqRedisOpt(), asynq.Config{
		Concurrency: 10,
		Queues:      map[string]int{"default": 1},
	})

	selectors, err := extract.LoadTable(cfg.SelectorsPath)
	if err != nil {
		log.Fatalf("selector table: %v", err)
	}

	// Stores and services.
	logStore := scrapelog.NewStore(redisSvc)
	jobSvc := job.NewService(redisSvc)
	pages := entity.NewCollection(redisSvc, "page")
	posts := entity.NewCollection(redisSvc, "post")
	users := entity.NewCollection(redisSvc, "user")

	fetcher := fetch.NewPlaywrightFetcher(cfg.SessionCookie, cfg.FetchTimeout)
	scrapeSvc := scrape.NewService(fetcher, logStore, selectors)

	// Worker for queued scrapes.
	mux := worker.NewMux()
	mux.HandleFunc(scrape.TaskTypeScrape, scrapeSvc.TaskHandler(jobSvc))
	go func() {
		if err := asynqServer.Start(mux.Mux()); err != nil {
			log.Printf("[worker] stopped: %v\n", err)
		}
	}()

	app := fiber.New(fiber.Config{
		AppName: "LinkedIn Insights Engine",
		JSONEncoder: func(v interface{}) ([]byte, error) {
			var buf bytes.Buffer
			encoder := json.NewEncoder(&buf)
			encoder.SetEscapeHTML(false)
			if err := encoder.Encode(v); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		},
	})

	deps := server.Dependencies{
		Scrape:         scrapeSvc,
		ScrapeLog:      logStore,
		Job:            jobSvc,
		Tasks:          taskClient,
		Redis:          redisSvc,
		Pages:          pages,
		Posts:          posts,
		Users:          users,
		TaskMaxRetries: cfg.TaskMaxRetries,
	}
	healthHandler := server.RegisterRoutes(app, deps)

	go func() {
		time.Sleep(2 * time.Second)
		healthHandler.SetReady()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-shutdown
		logr.LogInfo("Shutting down...")
		asynqServer.Shutdown()
		_ = taskClient.Close()
		_ = app.ShutdownWithTimeout(5 * time.Second)
	}()

	if err := app.Listen(cfg.HTTPAddr); err != nil {
		log.Fatalf("server listen: %v", err)
	}
}
