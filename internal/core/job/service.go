package job

import (
	"context"
	"fmt"

	"linkedin-insights/internal/core/scrapelog"
	rds "linkedin-insights/internal/platform/redis"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Job tracks one asynchronous scrape from enqueue to completion.
type Job struct {
	JobID  string            `json:"job_id"`
	Status Status            `json:"status"`
	URL    string            `json:"url"`
	LogID  string            `json:"log_id,omitempty"`
	Result *scrapelog.Result `json:"result,omitempty"`
	Error  string            `json:"error,omitempty"`
}

type Service struct{ redis *rds.Service }

func NewService(redis *rds.Service) *Service { return &Service{redis: redis} }

func (s *Service) Get(ctx context.Context, jobID string) (*Job, error) {
	var j Job
	if err := s.redis.CacheGet(ctx, key(jobID), &j); err != nil {
		return nil, fmt.Errorf("job not found: %s", jobID)
	}
	return &j, nil
}

func (s *Service) InitPending(ctx context.Context, jobID, url string) error {
	return s.store(ctx, Job{JobID: jobID, Status: StatusPending, URL: url})
}

func (s *Service) SetProcessing(ctx context.Context, jobID string) error {
	j, err := s.Get(ctx, jobID)
	if err != nil {
		return err
	}
	j.Status = StatusProcessing
	return s.store(ctx, *j)
}

func (s *Service) Complete(ctx context.Context, jobID string, status Status, logID string, res *scrapelog.Result, errMsg string) error {
	j, err := s.Get(ctx, jobID)
	if err != nil {
		j = &Job{JobID: jobID}
	}
	j.Status = status
	j.LogID = logID
	j.Result = res
	j.Error = errMsg
	return s.store(ctx, *j)
}

func (s *Service) store(ctx context.Context, j Job) error {
	return s.redis.CacheSet(ctx, key(j.JobID), j, ttl(j.Status))
}

func key(id string) string { return "job:" + id }

func ttl(s Status) int {
	if s == StatusCompleted || s == StatusFailed {
		return 3600
	}
	return 600
}
