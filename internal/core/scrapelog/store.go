package scrapelog

import (
	"context"
	"errors"

	"linkedin-insights/internal/core/extract"
	"linkedin-insights/internal/logger"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("scrape log not found")

const (
	keyPrefix    = "scrapelog:"
	indexKey     = "scrapelog:index"
	typeIndexFmt = "scrapelog:index:"
)

// DocStore is the slice of the document store the log store needs.
type DocStore interface {
	DocGet(ctx context.Context, key string, dest interface{}) (bool, error)
	DocSetNX(ctx context.Context, key string, val interface{}) (bool, error)
	IndexAdd(ctx context.Context, key string, score float64, member string) error
	IndexRevRange(ctx context.Context, key string, start, stop int64) ([]string, error)
}

// Store is the append-only log of scrape attempts. Entries are written once
// and only ever read back; there is no update or upsert path.
type Store struct {
	docs DocStore
	log  *logger.Logger
}

func NewStore(docs DocStore) *Store {
	return &Store{docs: docs, log: logger.New("ScrapeLog")}
}

// Insert appends one result and returns the assigned log id. Replays of the
// same request always produce an independent new entry.
func (s *Store) Insert(ctx context.Context, res *Result) (string, error) {
	id := uuid.NewString()
	entry := *res
	entry.ID = id

	stored, err := s.docs.DocSetNX(ctx, keyPrefix+id, &entry)
	if err != nil {
		return "", &RecordError{Kind: StoreUnreachable, Err: err}
	}
	if !stored {
		return "", &RecordError{Kind: ConstraintViolation, Err: errors.New("log id already present: " + id)}
	}

	score := float64(entry.AttemptedAt.UnixNano())
	if err := s.docs.IndexAdd(ctx, indexKey, score, id); err != nil {
		return "", &RecordError{Kind: StoreUnreachable, Err: err}
	}
	if err := s.docs.IndexAdd(ctx, typeIndexFmt+string(entry.DeclaredType), score, id); err != nil {
		return "", &RecordError{Kind: StoreUnreachable, Err: err}
	}

	s.log.LogDebugf("recorded attempt %s url=%s status=%s", id, entry.URL, entry.Status)
	return id, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*Result, error) {
	var res Result
	found, err := s.docs.DocGet(ctx, keyPrefix+id, &res)
	if err != nil {
		return nil, &RecordError{Kind: StoreUnreachable, Err: err}
	}
	if !found {
		return nil, ErrNotFound
	}
	return &res, nil
}

// List returns persisted results newest first.
func (s *Store) List(ctx context.Context, limit, skip int) ([]*Result, error) {
	return s.listIndex(ctx, indexKey, limit, skip, nil)
}

// ListByType returns successful results for one declared type, newest first.
func (s *Store) ListByType(ctx context.Context, t extract.PageType, limit, skip int) ([]*Result, error) {
	keep := func(r *Result) bool { return r.Status == StatusSuccess }
	return s.listIndex(ctx, typeIndexFmt+string(t), limit, skip, keep)
}

func (s *Store) listIndex(ctx context.Context, key string, limit, skip int, keep func(*Result) bool) ([]*Result, error) {
	if limit <= 0 {
		limit = 10
	}
	if skip < 0 {
		skip = 0
	}

	if keep == nil {
		ids, err := s.docs.IndexRevRange(ctx, key, int64(skip), int64(skip+limit-1))
		if err != nil {
			return nil, &RecordError{Kind: StoreUnreachable, Err: err}
		}
		results := make([]*Result, 0, len(ids))
		for _, id := range ids {
			var res Result
			found, err := s.docs.DocGet(ctx, keyPrefix+id, &res)
			if err != nil {
				return nil, &RecordError{Kind: StoreUnreachable, Err: err}
			}
			if found {
				results = append(results, &res)
			}
		}
		return results, nil
	}

	// Filter first, then skip: skip counts entries that pass the filter,
	// so pagination is stable over kept entries regardless of how filtered
	// ones are interleaved in the index.
	results := make([]*Result, 0, limit)
	toSkip := skip
	var offset int64
	for len(results) < limit {
		ids, err := s.docs.IndexRevRange(ctx, key, offset, offset+int64(limit)-1)
		if err != nil {
			return nil, &RecordError{Kind: StoreUnreachable, Err: err}
		}
		if len(ids) == 0 {
			break
		}
		for _, id := range ids {
			var res Result
			found, err := s.docs.DocGet(ctx, keyPrefix+id, &res)
			if err != nil {
				return nil, &RecordError{Kind: StoreUnreachable, Err: err}
			}
			if !found || !keep(&res) {
				continue
			}
			if toSkip > 0 {
				toSkip--
				continue
			}
			results = append(results, &res)
			if len(results) == limit {
				break
			}
		}
		offset += int64(len(ids))
	}
	return results, nil
}
