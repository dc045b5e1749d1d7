package scrape

import (
	"context"
	"encoding/json"
	"errors"

	"linkedin-insights/internal/core/job"
	"linkedin-insights/internal/core/scrapelog"
	tasks "linkedin-insights/internal/platform/tasks"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const TaskTypeScrape = "scrape:task"

type Payload struct {
	JobID   string  `json:"job_id"`
	Request Request `json:"request"`
}

// Enqueue validates the request, registers a pending job and queues the
// scrape for background execution. Invalid requests are rejected here, before
// any job state exists.
func (s *Service) Enqueue(ctx context.Context, t *tasks.Client, jobs *job.Service, req Request, maxRetries int) (string, error) {
	if err := validate(req); err != nil {
		return "", err
	}
	jobID := uuid.NewString()
	if err := jobs.InitPending(ctx, jobID, req.URL); err != nil {
		return "", err
	}
	payload, _ := json.Marshal(Payload{JobID: jobID, Request: req})
	if err := t.Enqueue(asynq.NewTask(TaskTypeScrape, payload), "default", maxRetries); err != nil {
		return "", err
	}
	return jobID, nil
}

// TaskHandler returns the asynq handler that executes queued scrapes.
func (s *Service) TaskHandler(jobs *job.Service) func(ctx context.Context, task *asynq.Task) error {
	return func(ctx context.Context, task *asynq.Task) error {
		var p Payload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			return err
		}
		if err := jobs.SetProcessing(ctx, p.JobID); err != nil {
			return err
		}

		res, err := s.Run(ctx, p.Request)
		if err != nil {
			var recErr *scrapelog.RecordError
			if errors.As(err, &recErr) {
				// The scrape outcome is known but was not durably
				// recorded; keep both on the job and let asynq retry.
				_ = jobs.Complete(ctx, p.JobID, job.StatusFailed, "", res, err.Error())
				return err
			}
			return jobs.Complete(ctx, p.JobID, job.StatusFailed, "", nil, err.Error())
		}
		return jobs.Complete(ctx, p.JobID, job.StatusCompleted, res.ID, res, "")
	}
}
