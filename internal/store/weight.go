package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fitlog/fitlog-cli/internal/codec"
	"github.com/fitlog/fitlog-cli/internal/live"
	"github.com/fitlog/fitlog-cli/internal/model"
)

const weightColumns = `id, weight_kg, occurred_at, note`

// InsertWeight persists e, assigning a fresh id when e.ID is zero and
// replacing any existing row otherwise. Subscribers are notified after
// the write is durable.
func (s *Store) InsertWeight(e model.WeightEntry) (int64, error) {
	if e.WeightKg <= 0 {
		return 0, fmt.Errorf("weight must be > 0")
	}
	if e.OccurredAt.IsZero() {
		return 0, fmt.Errorf("weight entry occurred-at is required")
	}

	s.global.RLock()
	defer s.global.RUnlock()
	s.weightMu.Lock()
	defer s.weightMu.Unlock()

	occurred := codec.EncodeDateTime(codec.Truncate(e.OccurredAt))
	var (
		res sql.Result
		err error
	)
	if e.ID > 0 {
		res, err = s.exec("insert weight entry",
			`INSERT OR REPLACE INTO weight_entries(id, weight_kg, occurred_at, note) VALUES(?, ?, ?, ?)`,
			e.ID, e.WeightKg, occurred, e.Note)
	} else {
		res, err = s.exec("insert weight entry",
			`INSERT INTO weight_entries(weight_kg, occurred_at, note) VALUES(?, ?, ?)`,
			e.WeightKg, occurred, e.Note)
	}
	if err != nil {
		return 0, err
	}
	id := e.ID
	if id == 0 {
		if id, err = lastInsertID("insert weight entry", res); err != nil {
			return 0, err
		}
	}
	notify(s.weightFeed, s.readWeights)
	return id, nil
}

// UpdateWeight replaces the row with e.ID. Returns 0 without error when
// the id does not exist.
func (s *Store) UpdateWeight(e model.WeightEntry) (int64, error) {
	if e.ID <= 0 {
		return 0, fmt.Errorf("weight entry id must be > 0")
	}
	if e.WeightKg <= 0 {
		return 0, fmt.Errorf("weight must be > 0")
	}
	if e.OccurredAt.IsZero() {
		return 0, fmt.Errorf("weight entry occurred-at is required")
	}

	s.global.RLock()
	defer s.global.RUnlock()
	s.weightMu.Lock()
	defer s.weightMu.Unlock()

	res, err := s.exec("update weight entry",
		`UPDATE weight_entries SET weight_kg = ?, occurred_at = ?, note = ? WHERE id = ?`,
		e.WeightKg, codec.EncodeDateTime(codec.Truncate(e.OccurredAt)), e.Note, e.ID)
	if err != nil {
		return 0, err
	}
	n, err := affectedCount("update weight entry", res)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		notify(s.weightFeed, s.readWeights)
	}
	return n, nil
}

// DeleteWeight removes the row with id. Returns 0 without error on a miss.
func (s *Store) DeleteWeight(id int64) (int64, error) {
	if id <= 0 {
		return 0, fmt.Errorf("weight entry id must be > 0")
	}

	s.global.RLock()
	defer s.global.RUnlock()
	s.weightMu.Lock()
	defer s.weightMu.Unlock()

	res, err := s.exec("delete weight entry", `DELETE FROM weight_entries WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	n, err := affectedCount("delete weight entry", res)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		notify(s.weightFeed, s.readWeights)
	}
	return n, nil
}

// Weights returns every entry, newest first.
func (s *Store) Weights() ([]model.WeightEntry, error) {
	s.global.RLock()
	defer s.global.RUnlock()
	return s.readWeights()
}

// WeightsInRange returns entries with from <= occurredAt < to, newest first.
func (s *Store) WeightsInRange(from, to time.Time) ([]model.WeightEntry, error) {
	s.global.RLock()
	defer s.global.RUnlock()
	return s.scanWeights(`SELECT `+weightColumns+` FROM weight_entries
WHERE occurred_at >= ? AND occurred_at < ?
ORDER BY occurred_at DESC, id ASC`,
		codec.EncodeDateTime(codec.Truncate(from)), codec.EncodeDateTime(codec.Truncate(to)))
}

// LatestWeight returns the most recent entry, or nil when the table is
// empty.
func (s *Store) LatestWeight() (*model.WeightEntry, error) {
	s.global.RLock()
	defer s.global.RUnlock()
	entries, err := s.scanWeights(`SELECT ` + weightColumns + ` FROM weight_entries
ORDER BY occurred_at DESC, id ASC LIMIT 1`)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

// CountWeights reports the number of entries.
func (s *Store) CountWeights() (int64, error) {
	s.global.RLock()
	defer s.global.RUnlock()
	var n int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM weight_entries`).Scan(&n); err != nil {
		return 0, storageErr("count weight entries", err)
	}
	return n, nil
}

// WatchWeights returns a live view of the table: the current snapshot,
// then a new snapshot after every mutation, in commit order.
func (s *Store) WatchWeights(ctx context.Context) *live.Subscription[[]model.WeightEntry] {
	s.global.RLock()
	defer s.global.RUnlock()
	return subscribe(ctx, &s.weightMu, s.weightFeed, s.readWeights)
}

func (s *Store) readWeights() ([]model.WeightEntry, error) {
	return s.scanWeights(`SELECT ` + weightColumns + ` FROM weight_entries
ORDER BY occurred_at DESC, id ASC`)
}

func (s *Store) scanWeights(query string, args ...any) ([]model.WeightEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, storageErr("list weight entries", err)
	}
	defer rows.Close()

	entries := make([]model.WeightEntry, 0)
	for rows.Next() {
		var (
			e        model.WeightEntry
			occurred string
			note     sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.WeightKg, &occurred, &note); err != nil {
			return nil, storageErr("scan weight entry", err)
		}
		if e.OccurredAt, err = codec.DecodeDateTime(occurred); err != nil {
			return nil, err
		}
		if note.Valid {
			v := note.String
			e.Note = &v
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate weight entries", err)
	}
	return entries, nil
}
