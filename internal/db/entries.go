package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ramanasai/diary/internal/apperr"
	"github.com/ramanasai/diary/internal/diary"
)

// Sealer encrypts entry text at rest.
type Sealer interface {
	Seal(plaintext string) (string, error)
	Open(sealed string) (string, error)
}

// ErrLocked is returned when encrypted rows are read without a passphrase.
var ErrLocked = apperr.New(apperr.KindCrypto, "DIARY_LOCKED", "encrypted entries need a passphrase").
	WithUser("This diary is locked. Set the passphrase environment variable to open it")

// EntryRepository implements store.Repository with one row per entry.
type EntryRepository struct {
	db     *sql.DB
	sealer Sealer
}

func NewEntryRepository(db *sql.DB, sealer Sealer) *EntryRepository {
	return &EntryRepository{db: db, sealer: sealer}
}

const entryColumns = `id, title, content, type, date, emotion, time_slot, last_modified, period, tasks, encrypted`

// All returns entries in insertion order.
func (r *EntryRepository) All(ctx context.Context) ([]diary.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+entryColumns+` FROM entries ORDER BY rowid`)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindStorage, "LOAD_FAILED", "query entries")
	}
	defer rows.Close()

	out := []diary.Entry{}
	for rows.Next() {
		e, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(err, apperr.KindStorage, "LOAD_FAILED", "iterate entries")
	}
	return out, nil
}

func (r *EntryRepository) Get(ctx context.Context, id string) (diary.Entry, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE id = ?`, id)
	e, err := r.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return diary.Entry{}, fmt.Errorf("entry %s: %w", id, apperr.ErrNotFound)
	}
	return e, err
}

func (r *EntryRepository) Upsert(ctx context.Context, e diary.Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	title, content, encrypted := e.Title, e.Content, false
	if r.sealer != nil {
		var err error
		if title, err = r.sealer.Seal(e.Title); err != nil {
			return apperr.Wrap(err, apperr.KindCrypto, "ENCRYPT_FAILED", "seal title")
		}
		if content, err = r.sealer.Seal(e.Content); err != nil {
			return apperr.Wrap(err, apperr.KindCrypto, "ENCRYPT_FAILED", "seal content")
		}
		encrypted = true
	}

	var slot sql.NullInt64
	if e.TimeSlot != nil {
		slot = sql.NullInt64{Int64: int64(*e.TimeSlot), Valid: true}
	}
	var lastMod sql.NullString
	if e.LastModified != nil {
		lastMod = sql.NullString{String: e.LastModified.Format(time.RFC3339Nano), Valid: true}
	}
	period, err := jsonColumn(e.Period, e.Period == nil)
	if err != nil {
		return err
	}
	tasks, err := jsonColumn(e.Tasks, len(e.Tasks) == 0)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO entries (`+entryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			type = excluded.type,
			date = excluded.date,
			emotion = excluded.emotion,
			time_slot = excluded.time_slot,
			last_modified = excluded.last_modified,
			period = excluded.period,
			tasks = excluded.tasks,
			encrypted = excluded.encrypted
	`, e.ID, title, content, string(e.Type), e.Date.Format(time.RFC3339Nano), e.Emotion,
		slot, lastMod, period, tasks, encrypted)
	if err != nil {
		return saveErr(apperr.ErrSaveFailed, err)
	}
	return nil
}

func (r *EntryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return saveErr(apperr.ErrDeleteFailed, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("entry %s: %w", id, apperr.ErrNotFound)
	}
	return nil
}

func saveErr(sentinel *apperr.Error, cause error) error {
	e := *sentinel
	e.Err = cause
	return &e
}

func jsonColumn(v any, null bool) (sql.NullString, error) {
	if null {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encode column: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *EntryRepository) scan(s scanner) (diary.Entry, error) {
	var (
		e                     diary.Entry
		typ, date             string
		slot                  sql.NullInt64
		lastMod, period, tsks sql.NullString
		encrypted             bool
	)
	if err := s.Scan(&e.ID, &e.Title, &e.Content, &typ, &date, &e.Emotion,
		&slot, &lastMod, &period, &tsks, &encrypted); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return e, err
		}
		return e, apperr.Wrap(err, apperr.KindStorage, "LOAD_FAILED", "scan entry")
	}

	e.Type = diary.Type(typ)
	d, err := time.Parse(time.RFC3339Nano, date)
	if err != nil {
		return e, apperr.Wrap(err, apperr.KindStorage, "BAD_ROW", "parse date of "+e.ID)
	}
	e.Date = d
	if slot.Valid {
		e.TimeSlot = diary.Slot(int(slot.Int64))
	}
	if lastMod.Valid {
		lm, err := time.Parse(time.RFC3339Nano, lastMod.String)
		if err == nil {
			e.LastModified = &lm
		}
	}
	if period.Valid {
		e.Period = &diary.PeriodLog{}
		if err := json.Unmarshal([]byte(period.String), e.Period); err != nil {
			return e, apperr.Wrap(err, apperr.KindStorage, "BAD_ROW", "decode period of "+e.ID)
		}
	}
	if tsks.Valid {
		if err := json.Unmarshal([]byte(tsks.String), &e.Tasks); err != nil {
			return e, apperr.Wrap(err, apperr.KindStorage, "BAD_ROW", "decode tasks of "+e.ID)
		}
	}

	if encrypted {
		if r.sealer == nil {
			return e, ErrLocked
		}
		if e.Title, err = r.sealer.Open(e.Title); err != nil {
			return e, err
		}
		if e.Content, err = r.sealer.Open(e.Content); err != nil {
			return e, err
		}
	}
	return e, nil
}
