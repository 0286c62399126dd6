// Package store defines how diary state is persisted: a Repository for the
// entry collection and a KV for everything else, under fixed keys.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ramanasai/diary/internal/diary"
)

// Persisted keys.
const (
	KeyEntries          = "diaryEntries"
	KeyFilters          = "diaryFilters"
	KeyCurrentTitle     = "currentDiaryTitle"
	KeyPendingTitle     = "pendingDiaryTitle"
	KeySelectedDate     = "selectedDiaryDate"
	KeyScrollToTime     = "scrollToTime"
	KeySwitchToDay      = "switchToDay"
	KeySelectedTimeSlot = "selectedTimeSlot"
	KeyTheme            = "diary-theme"
	KeyUser             = "diary-user"
	KeyConsent          = "consent"
)

// Keys lists every key the application writes.
var Keys = []string{
	KeyEntries, KeyFilters, KeyCurrentTitle, KeyPendingTitle, KeySelectedDate,
	KeyScrollToTime, KeySwitchToDay, KeySelectedTimeSlot, KeyTheme, KeyUser, KeyConsent,
}

// ErrNoKey is returned by KV.Get for absent keys.
var ErrNoKey = errors.New("store: key not found")

// KV is a flat string-keyed byte store.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte) error
	// Delete removes key; deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Repository persists the entry collection.
type Repository interface {
	All(ctx context.Context) ([]diary.Entry, error)
	Get(ctx context.Context, id string) (diary.Entry, error)
	// Upsert inserts e or replaces the entry with the same id.
	Upsert(ctx context.Context, e diary.Entry) error
	Delete(ctx context.Context, id string) error
}

// Backend bundles both halves of a storage implementation.
type Backend interface {
	Repository() Repository
	KV() KV
	Close() error
}

// GetJSON decodes key into v. It reports false when the key is absent.
func GetJSON(ctx context.Context, kv KV, key string, v any) (bool, error) {
	data, err := kv.Get(ctx, key)
	if errors.Is(err, ErrNoKey) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func SetJSON(ctx context.Context, kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return kv.Set(ctx, key, data)
}

// Take reads a one-shot hint and removes it.
func Take(ctx context.Context, kv KV, key string, v any) (bool, error) {
	ok, err := GetJSON(ctx, kv, key, v)
	if err != nil || !ok {
		return ok, err
	}
	return true, kv.Delete(ctx, key)
}
