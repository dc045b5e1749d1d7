package scrape

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"linkedin-insights/internal/core/extract"
	"linkedin-insights/internal/core/fetch"
	"linkedin-insights/internal/core/scrapelog"
	"linkedin-insights/internal/logger"
	"linkedin-insights/internal/utils/markdown"
)

// Request describes one scrape attempt.
type Request struct {
	URL            string           `json:"url"`
	Type           extract.PageType `json:"type"`
	PageID         string           `json:"page_id,omitempty"`
	IncludeContent bool             `json:"include_content,omitempty"`
}

type RequestErrorKind string

const (
	UnknownType  RequestErrorKind = "unknown_type"
	MalformedURL RequestErrorKind = "malformed_url"
)

// RequestError rejects a request before any resource is acquired.
type RequestError struct {
	Kind   RequestErrorKind
	Detail string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("invalid request: %s: %s", e.Kind, e.Detail)
}

// Recorder persists scrape outcomes. It must be reachable from the failure
// path as well as the success path so every attempt is auditable.
type Recorder interface {
	Insert(ctx context.Context, res *scrapelog.Result) (string, error)
}

// Service sequences fetch, extract and record for one scrape attempt.
type Service struct {
	fetcher   fetch.Fetcher
	recorder  Recorder
	selectors *extract.Table
	log       *logger.Logger
}

func NewService(fetcher fetch.Fetcher, recorder Recorder, selectors *extract.Table) *Service {
	if selectors == nil {
		selectors = extract.DefaultTable()
	}
	return &Service{
		fetcher:   fetcher,
		recorder:  recorder,
		selectors: selectors,
		log:       logger.New("ScrapeService"),
	}
}

// Run executes one attempt: validate, fetch, extract, record. The computed
// result is returned even when recording fails; in that case the error is a
// *scrapelog.RecordError so callers can report the persistence failure
// separately from the scrape outcome. A *RequestError is returned with a nil
// result and nothing is fetched or recorded.
func (s *Service) Run(ctx context.Context, req Request) (*scrapelog.Result, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	res := &scrapelog.Result{
		DeclaredType: req.Type,
		URL:          req.URL,
		PageID:       req.PageID,
		AttemptedAt:  time.Now().UTC(),
	}

	s.log.Info().Str("url", req.URL).Str("type", string(req.Type)).Msg("scrape start")
	page, err := s.fetcher.Fetch(ctx, req.URL)
	if err != nil {
		res.Status = scrapelog.StatusFailed
		res.FailureReason = err.Error()
		s.log.Warn().Str("url", req.URL).Err(err).Msg("fetch failed")
	} else {
		record, fieldErrs := extract.Extract(page, req.Type, s.selectors)
		res.Record = record
		if len(fieldErrs) == 0 {
			res.Status = scrapelog.StatusSuccess
		} else {
			res.Status = scrapelog.StatusPartial
			res.FieldErrors = fieldErrs
		}
		if req.IncludeContent {
			res.ContentMarkdown = markdown.Convert(page.HTML)
		}
		s.log.Info().Str("url", req.URL).Str("status", string(res.Status)).Int("field_errors", len(fieldErrs)).Msg("extraction done")
	}

	// Record even when the caller abandoned the run; the attempt must stay
	// auditable.
	id, recErr := s.recorder.Insert(context.WithoutCancel(ctx), res)
	if recErr != nil {
		s.log.Error().Str("url", req.URL).Err(recErr).Msg("failed to record attempt")
		return res, recErr
	}
	res.ID = id
	return res, nil
}

// validate rejects malformed requests before the fetcher is invoked.
func validate(req Request) error {
	if !req.Type.Valid() {
		return &RequestError{Kind: UnknownType, Detail: string(req.Type)}
	}
	u, err := url.Parse(req.URL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return &RequestError{Kind: MalformedURL, Detail: req.URL}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &RequestError{Kind: MalformedURL, Detail: req.URL}
	}
	return nil
}
