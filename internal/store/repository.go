package store

import (
	"context"
	"fmt"

	"github.com/ramanasai/diary/internal/apperr"
	"github.com/ramanasai/diary/internal/diary"
)

// KVRepository stores the entry collection as one JSON array under
// KeyEntries and rewrites the whole array on every mutation.
type KVRepository struct {
	kv KV
}

func NewKVRepository(kv KV) *KVRepository {
	return &KVRepository{kv: kv}
}

func (r *KVRepository) All(ctx context.Context) ([]diary.Entry, error) {
	var entries []diary.Entry
	if _, err := GetJSON(ctx, r.kv, KeyEntries, &entries); err != nil {
		return nil, apperr.Wrap(err, apperr.KindStorage, "LOAD_FAILED", "load entries")
	}
	if entries == nil {
		entries = []diary.Entry{}
	}
	return entries, nil
}

func (r *KVRepository) Get(ctx context.Context, id string) (diary.Entry, error) {
	entries, err := r.All(ctx)
	if err != nil {
		return diary.Entry{}, err
	}
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}
	return diary.Entry{}, fmt.Errorf("entry %s: %w", id, apperr.ErrNotFound)
}

func (r *KVRepository) Upsert(ctx context.Context, e diary.Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	entries, err := r.All(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range entries {
		if entries[i].ID == e.ID {
			entries[i] = e
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, e)
	}
	return r.save(ctx, entries, apperr.ErrSaveFailed)
}

func (r *KVRepository) Delete(ctx context.Context, id string) error {
	entries, err := r.All(ctx)
	if err != nil {
		return err
	}
	out := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			out = append(out, e)
		}
	}
	if len(out) == len(entries) {
		return fmt.Errorf("entry %s: %w", id, apperr.ErrNotFound)
	}
	return r.save(ctx, out, apperr.ErrDeleteFailed)
}

func (r *KVRepository) save(ctx context.Context, entries []diary.Entry, failure *apperr.Error) error {
	if err := SetJSON(ctx, r.kv, KeyEntries, entries); err != nil {
		e := *failure
		e.Err = err
		return &e
	}
	return nil
}
