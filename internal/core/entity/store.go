package entity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"linkedin-insights/internal/logger"

	"dario.cat/mergo"
)

var (
	ErrAlreadyExists = errors.New("entity already exists")
	ErrNotFound      = errors.New("entity not found")
)

// DocStore is the slice of the document store collections need.
type DocStore interface {
	DocGet(ctx context.Context, key string, dest interface{}) (bool, error)
	DocSet(ctx context.Context, key string, val interface{}) error
	DocSetNX(ctx context.Context, key string, val interface{}) (bool, error)
	DocDel(ctx context.Context, key string) (bool, error)
	IndexAdd(ctx context.Context, key string, score float64, member string) error
	IndexRem(ctx context.Context, key, member string) error
	IndexRevRange(ctx context.Context, key string, start, stop int64) ([]string, error)
}

// Collection is a keyed-record CRUD gateway over the document store. The
// external identifier is unique: Create refuses a second document under the
// same id.
type Collection struct {
	docs DocStore
	name string
	log  *logger.Logger
}

func NewCollection(docs DocStore, name string) *Collection {
	return &Collection{docs: docs, name: name, log: logger.New("EntityStore")}
}

func (c *Collection) key(id string) string { return c.name + ":" + id }
func (c *Collection) indexKey() string     { return c.name + ":index" }

// Create stores a new document. Fails with ErrAlreadyExists when the id is
// taken; the existing document is left untouched.
func (c *Collection) Create(ctx context.Context, id string, doc interface{}) error {
	stored, err := c.docs.DocSetNX(ctx, c.key(id), doc)
	if err != nil {
		return fmt.Errorf("create %s/%s: %w", c.name, id, err)
	}
	if !stored {
		return ErrAlreadyExists
	}
	if err := c.docs.IndexAdd(ctx, c.indexKey(), float64(time.Now().UnixNano()), id); err != nil {
		return fmt.Errorf("index %s/%s: %w", c.name, id, err)
	}
	c.log.LogDebugf("created %s/%s", c.name, id)
	return nil
}

func (c *Collection) Get(ctx context.Context, id string, dest interface{}) error {
	found, err := c.docs.DocGet(ctx, c.key(id), dest)
	if err != nil {
		return fmt.Errorf("get %s/%s: %w", c.name, id, err)
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

// Update applies a partial JSON patch over the stored document. Fields absent
// from the patch keep their stored values.
func (c *Collection) Update(ctx context.Context, id string, patch json.RawMessage) error {
	var existing map[string]interface{}
	found, err := c.docs.DocGet(ctx, c.key(id), &existing)
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", c.name, id, err)
	}
	if !found {
		return ErrNotFound
	}

	var changes map[string]interface{}
	if err := json.Unmarshal(patch, &changes); err != nil {
		return fmt.Errorf("update %s/%s: parse patch: %w", c.name, id, err)
	}
	if err := mergo.Merge(&existing, changes, mergo.WithOverride); err != nil {
		return fmt.Errorf("update %s/%s: merge: %w", c.name, id, err)
	}

	if err := c.docs.DocSet(ctx, c.key(id), existing); err != nil {
		return fmt.Errorf("update %s/%s: %w", c.name, id, err)
	}
	c.log.LogDebugf("updated %s/%s", c.name, id)
	return nil
}

func (c *Collection) Delete(ctx context.Context, id string) error {
	existed, err := c.docs.DocDel(ctx, c.key(id))
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", c.name, id, err)
	}
	if !existed {
		return ErrNotFound
	}
	if err := c.docs.IndexRem(ctx, c.indexKey(), id); err != nil {
		return fmt.Errorf("deindex %s/%s: %w", c.name, id, err)
	}
	return nil
}

// List returns raw documents newest first.
func (c *Collection) List(ctx context.Context, skip, limit int) ([]json.RawMessage, error) {
	if limit <= 0 {
		limit = 10
	}
	if skip < 0 {
		skip = 0
	}
	ids, err := c.docs.IndexRevRange(ctx, c.indexKey(), int64(skip), int64(skip+limit-1))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.name, err)
	}
	out := make([]json.RawMessage, 0, len(ids))
	for _, id := range ids {
		var raw json.RawMessage
		found, err := c.docs.DocGet(ctx, c.key(id), &raw)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", c.name, err)
		}
		if found {
			out = append(out, raw)
		}
	}
	return out, nil
}
