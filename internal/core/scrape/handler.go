package scrape

import (
	"errors"

	"linkedin-insights/internal/core/extract"
	"linkedin-insights/internal/core/job"
	"linkedin-insights/internal/core/scrapelog"
	tasks "linkedin-insights/internal/platform/tasks"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service    *Service
	store      *scrapelog.Store
	jobs       *job.Service
	tasks      *tasks.Client
	maxRetries int
}

func NewHandler(service *Service, store *scrapelog.Store, jobs *job.Service, tasks *tasks.Client, maxRetries int) *Handler {
	return &Handler{service: service, store: store, jobs: jobs, tasks: tasks, maxRetries: maxRetries}
}

// HandleScrape runs one synchronous scrape. The response always separates the
// scrape outcome (result.status) from the persistence outcome: a store
// failure is reported as such, never as an unreachable target page.
func (h *Handler) HandleScrape(c *fiber.Ctx) error {
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid body"})
	}

	res, err := h.service.Run(c.Context(), req)
	if err != nil {
		var reqErr *RequestError
		if errors.As(err, &reqErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": reqErr.Error()})
		}
		var recErr *scrapelog.RecordError
		if errors.As(err, &recErr) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success":     false,
				"error":       recErr.Error(),
				"store_error": string(recErr.Kind),
				"result":      res,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "log_id": res.ID, "result": res})
}

// HandleCreateJob enqueues an asynchronous scrape.
func (h *Handler) HandleCreateJob(c *fiber.Ctx) error {
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid body"})
	}
	jobID, err := h.service.Enqueue(c.Context(), h.tasks, h.jobs, req, h.maxRetries)
	if err != nil {
		var reqErr *RequestError
		if errors.As(err, &reqErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": reqErr.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "job_id": jobID})
}

func (h *Handler) HandleGetJob(c *fiber.Ctx) error {
	j, err := h.jobs.Get(c.Context(), c.Params("jobId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "not_found"})
	}
	return c.JSON(fiber.Map{"success": true, "job": j})
}

func (h *Handler) HandleListLogs(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	skip := c.QueryInt("skip", 0)
	logs, err := h.store.List(c.Context(), limit, skip)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "logs": logs})
}

func (h *Handler) HandleGetLog(c *fiber.Ctx) error {
	res, err := h.store.GetByID(c.Context(), c.Params("logId"))
	if err != nil {
		if errors.Is(err, scrapelog.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "log not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.JSON(res)
}

// HandleDataByType lists successful results for one declared type.
func (h *Handler) HandleDataByType(c *fiber.Ctx) error {
	t := extract.PageType(c.Params("type"))
	if !t.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "unknown type"})
	}
	limit := c.QueryInt("limit", 10)
	skip := c.QueryInt("skip", 0)
	logs, err := h.store.ListByType(c.Context(), t, limit, skip)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "data": logs})
}
