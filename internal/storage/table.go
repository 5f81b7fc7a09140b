package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a key does not exist in the table.
var ErrNotFound = errors.New("item not found")

// updateRetries bounds optimistic retries when a concurrent writer touches
// the key between the read and the write of an Update transaction.
const updateRetries = 5

// Table is a named key namespace in the key-value store. Each item lives as
// a JSON document at "<table>:<id>", and the table keeps a set of member ids
// under its own name so Scan can enumerate them.
type Table struct {
	client redis.UniversalClient
	name   string
}

// NewTable creates a Table bound to one table name.
func NewTable(client redis.UniversalClient, name string) *Table {
	return &Table{client: client, name: name}
}

func (t *Table) key(id string) string {
	return fmt.Sprintf("%s:%s", t.name, id)
}

// Put unconditionally upserts the document under the given id.
func (t *Table) Put(ctx context.Context, id string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode item %s: %w", t.key(id), err)
	}

	pipe := t.client.TxPipeline()
	pipe.Set(ctx, t.key(id), data, 0)
	pipe.SAdd(ctx, t.name, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to put item %s: %w", t.key(id), err)
	}
	return nil
}

// Get loads the document for id into dest. Absence is reported as
// ErrNotFound, never as a generic storage error.
func (t *Table) Get(ctx context.Context, id string, dest any) error {
	data, err := t.client.Get(ctx, t.key(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get item %s: %w", t.key(id), err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to decode item %s: %w", t.key(id), err)
	}
	return nil
}

// Update merges attrs into the stored document and loads the full post-update
// document into dest. The read-merge-write runs as a single optimistic
// transaction: the key is watched, so a concurrent write aborts the attempt
// and it is retried, and an absent key yields ErrNotFound. Attribute values
// must be JSON-encodable.
func (t *Table) Update(ctx context.Context, id string, attrs map[string]any, dest any) error {
	key := t.key(id)

	txn := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if err == redis.Nil {
				return ErrNotFound
			}
			return err
		}

		doc := map[string]any{}
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to decode item %s: %w", key, err)
		}
		for k, v := range attrs {
			doc[k] = v
		}
		merged, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to encode item %s: %w", key, err)
		}

		if _, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, merged, 0)
			return nil
		}); err != nil {
			return err
		}

		return json.Unmarshal(merged, dest)
	}

	for i := 0; i < updateRetries; i++ {
		err := t.client.Watch(ctx, txn, key)
		if err == redis.TxFailedErr {
			continue
		}
		if err == nil || err == ErrNotFound {
			return err
		}
		return fmt.Errorf("failed to update item %s: %w", key, err)
	}
	return fmt.Errorf("failed to update item %s: too many conflicting writes", key)
}

// Delete removes the document by id in a single atomic call. The deletion
// count doubles as the existence check: deleting an absent id returns
// ErrNotFound, so a second delete of the same id is reported as missing.
func (t *Table) Delete(ctx context.Context, id string) error {
	pipe := t.client.TxPipeline()
	del := pipe.Del(ctx, t.key(id))
	pipe.SRem(ctx, t.name, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete item %s: %w", t.key(id), err)
	}
	if del.Val() == 0 {
		return ErrNotFound
	}
	return nil
}

// Scan loads every document in the table into dest, which must be a pointer
// to a slice, and returns the count. Results are unordered and unpaginated;
// ids whose document vanished between the index read and the fetch are
// skipped.
func (t *Table) Scan(ctx context.Context, dest any) (int, error) {
	ids, err := t.client.SMembers(ctx, t.name).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to scan table %s: %w", t.name, err)
	}

	var docs [][]byte
	if len(ids) > 0 {
		pipe := t.client.Pipeline()
		cmds := make([]*redis.StringCmd, len(ids))
		for i, id := range ids {
			cmds[i] = pipe.Get(ctx, t.key(id))
		}
		if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
			return 0, fmt.Errorf("failed to scan table %s: %w", t.name, err)
		}
		for _, cmd := range cmds {
			data, err := cmd.Bytes()
			if err == redis.Nil {
				continue
			}
			if err != nil {
				return 0, fmt.Errorf("failed to scan table %s: %w", t.name, err)
			}
			docs = append(docs, data)
		}
	}

	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, doc := range docs {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(doc)
	}
	buf.WriteByte(']')

	if err := json.Unmarshal(buf.Bytes(), dest); err != nil {
		return 0, fmt.Errorf("failed to decode scan of table %s: %w", t.name, err)
	}
	return len(docs), nil
}
