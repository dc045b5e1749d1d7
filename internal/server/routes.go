package server

import (
	"linkedin-insights/internal/core/entity"
	"linkedin-insights/internal/core/job"
	"linkedin-insights/internal/core/scrape"
	"linkedin-insights/internal/core/scrapelog"
	"linkedin-insights/internal/health"
	"linkedin-insights/internal/platform/redis"
	tasks "linkedin-insights/internal/platform/tasks"

	"github.com/gofiber/fiber/v2"
)

type Dependencies struct {
	Scrape         *scrape.Service
	ScrapeLog      *scrapelog.Store
	Job            *job.Service
	Tasks          *tasks.Client
	Redis          *redis.Service
	Pages          *entity.Collection
	Posts          *entity.Collection
	Users          *entity.Collection
	TaskMaxRetries int
}

func RegisterRoutes(app *fiber.App, d Dependencies) *health.HealthHandler {
	healthHandler := health.NewHealthHandler(d.Redis)
	app.Get("/v1/health", health.HealthLimiter(), healthHandler.HandleHealth)

	api := app.Group("/v1")

	scrapeHandler := scrape.NewHandler(d.Scrape, d.ScrapeLog, d.Job, d.Tasks, d.TaskMaxRetries)
	api.Post("/scraper/scrape", scrapeHandler.HandleScrape)
	api.Post("/scraper/jobs", scrapeHandler.HandleCreateJob)
	api.Get("/scraper/jobs/:jobId", scrapeHandler.HandleGetJob)
	api.Get("/scraper/logs", scrapeHandler.HandleListLogs)
	api.Get("/scraper/logs/:logId", scrapeHandler.HandleGetLog)
	api.Get("/scraper/data/:type", scrapeHandler.HandleDataByType)

	entityHandler := entity.NewHandler(d.Pages, d.Posts, d.Users)
	api.Post("/pages", entityHandler.HandleCreatePage)
	api.Get("/pages", entityHandler.HandleListPages)
	api.Get("/pages/:pageId", entityHandler.HandleGetPage)
	api.Put("/pages/:pageId", entityHandler.HandleUpdatePage)
	api.Delete("/pages/:pageId", entityHandler.HandleDeletePage)

	api.Post("/posts", entityHandler.HandleCreatePost)
	api.Get("/posts", entityHandler.HandleListPosts)
	api.Get("/posts/:postId", entityHandler.HandleGetPost)
	api.Put("/posts/:postId", entityHandler.HandleUpdatePost)
	api.Delete("/posts/:postId", entityHandler.HandleDeletePost)

	api.Post("/users", entityHandler.HandleCreateUser)
	api.Get("/users", entityHandler.HandleListUsers)
	api.Get("/users/:linkedinId", entityHandler.HandleGetUser)
	api.Put("/users/:linkedinId", entityHandler.HandleUpdateUser)
	api.Delete("/users/:linkedinId", entityHandler.HandleDeleteUser)

	return healthHandler
}
