package scrapelog

import (
	"fmt"
	"time"

	"linkedin-insights/internal/core/extract"
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusPartial Status = "partial"
	StatusFailed  Status = "failed"
)

// Result is the immutable outcome of one scrape attempt. Invariants:
// success implies a record with no field errors, partial implies a record
// with at least one, failed implies no record and a failure reason.
type Result struct {
	ID              string               `json:"id,omitempty"`
	Status          Status               `json:"status"`
	DeclaredType    extract.PageType     `json:"type"`
	URL             string               `json:"url"`
	PageID          string               `json:"page_id,omitempty"`
	Record          *extract.Record      `json:"record,omitempty"`
	FieldErrors     []extract.FieldError `json:"field_errors,omitempty"`
	FailureReason   string               `json:"failure_reason,omitempty"`
	ContentMarkdown string               `json:"content_markdown,omitempty"`
	AttemptedAt     time.Time            `json:"attempted_at"`
}

type RecordErrorKind string

const (
	StoreUnreachable    RecordErrorKind = "store_unreachable"
	ConstraintViolation RecordErrorKind = "constraint_violation"
)

// RecordError reports that a computed result could not be durably recorded.
// It is distinct from a scrape failure: the caller knows what happened to the
// scrape but not whether it was persisted.
type RecordError struct {
	Kind RecordErrorKind
	Err  error
}

func (e *RecordError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("record result: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("record result: %s", e.Kind)
}

func (e *RecordError) Unwrap() error { return e.Err }
