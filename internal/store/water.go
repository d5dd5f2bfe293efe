package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fitlog/fitlog-cli/internal/codec"
	"github.com/fitlog/fitlog-cli/internal/live"
	"github.com/fitlog/fitlog-cli/internal/model"
)

const waterColumns = `id, day, occurred_at, amount_ml`

func validateWater(w model.WaterLog) error {
	if w.AmountMl <= 0 {
		return fmt.Errorf("water amount must be > 0")
	}
	if w.OccurredAt.IsZero() {
		return fmt.Errorf("water occurred-at is required")
	}
	if w.Day == (codec.Date{}) {
		return fmt.Errorf("water day is required")
	}
	return nil
}

func (s *Store) InsertWater(w model.WaterLog) (int64, error) {
	if err := validateWater(w); err != nil {
		return 0, err
	}

	s.global.RLock()
	defer s.global.RUnlock()
	s.waterMu.Lock()
	defer s.waterMu.Unlock()

	occurred := codec.EncodeDateTime(codec.Truncate(w.OccurredAt))
	var (
		res sql.Result
		err error
	)
	if w.ID > 0 {
		res, err = s.exec("insert water log",
			`INSERT OR REPLACE INTO water_logs(id, day, occurred_at, amount_ml) VALUES(?, ?, ?, ?)`,
			w.ID, codec.EncodeDate(w.Day), occurred, w.AmountMl)
	} else {
		res, err = s.exec("insert water log",
			`INSERT INTO water_logs(day, occurred_at, amount_ml) VALUES(?, ?, ?)`,
			codec.EncodeDate(w.Day), occurred, w.AmountMl)
	}
	if err != nil {
		return 0, err
	}
	id := w.ID
	if id == 0 {
		if id, err = lastInsertID("insert water log", res); err != nil {
			return 0, err
		}
	}
	notify(s.waterFeed, s.readWater)
	return id, nil
}

func (s *Store) UpdateWater(w model.WaterLog) (int64, error) {
	if w.ID <= 0 {
		return 0, fmt.Errorf("water log id must be > 0")
	}
	if err := validateWater(w); err != nil {
		return 0, err
	}

	s.global.RLock()
	defer s.global.RUnlock()
	s.waterMu.Lock()
	defer s.waterMu.Unlock()

	res, err := s.exec("update water log",
		`UPDATE water_logs SET day = ?, occurred_at = ?, amount_ml = ? WHERE id = ?`,
		codec.EncodeDate(w.Day), codec.EncodeDateTime(codec.Truncate(w.OccurredAt)), w.AmountMl, w.ID)
	if err != nil {
		return 0, err
	}
	n, err := affectedCount("update water log", res)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		notify(s.waterFeed, s.readWater)
	}
	return n, nil
}

func (s *Store) DeleteWater(id int64) (int64, error) {
	if id <= 0 {
		return 0, fmt.Errorf("water log id must be > 0")
	}

	s.global.RLock()
	defer s.global.RUnlock()
	s.waterMu.Lock()
	defer s.waterMu.Unlock()

	res, err := s.exec("delete water log", `DELETE FROM water_logs WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	n, err := affectedCount("delete water log", res)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		notify(s.waterFeed, s.readWater)
	}
	return n, nil
}

// Water returns every log, newest first.
func (s *Store) Water() ([]model.WaterLog, error) {
	s.global.RLock()
	defer s.global.RUnlock()
	return s.readWater()
}

// WaterForDay returns one day's logs, newest first.
func (s *Store) WaterForDay(day codec.Date) ([]model.WaterLog, error) {
	s.global.RLock()
	defer s.global.RUnlock()
	return s.scanWater(`SELECT `+waterColumns+` FROM water_logs
WHERE day = ?
ORDER BY occurred_at DESC, id ASC`, codec.EncodeDate(day))
}

// WaterTotalForDay sums one day's intake in milliliters.
func (s *Store) WaterTotalForDay(day codec.Date) (float64, error) {
	s.global.RLock()
	defer s.global.RUnlock()
	var total float64
	if err := s.db.QueryRow(`SELECT COALESCE(SUM(amount_ml), 0) FROM water_logs WHERE day = ?`,
		codec.EncodeDate(day)).Scan(&total); err != nil {
		return 0, storageErr("sum water for day", err)
	}
	return total, nil
}

func (s *Store) WatchWater(ctx context.Context) *live.Subscription[[]model.WaterLog] {
	s.global.RLock()
	defer s.global.RUnlock()
	return subscribe(ctx, &s.waterMu, s.waterFeed, s.readWater)
}

func (s *Store) readWater() ([]model.WaterLog, error) {
	return s.scanWater(`SELECT ` + waterColumns + ` FROM water_logs
ORDER BY occurred_at DESC, id ASC`)
}

func (s *Store) scanWater(query string, args ...any) ([]model.WaterLog, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, storageErr("list water logs", err)
	}
	defer rows.Close()

	logs := make([]model.WaterLog, 0)
	for rows.Next() {
		var (
			w        model.WaterLog
			day      string
			occurred string
		)
		if err := rows.Scan(&w.ID, &day, &occurred, &w.AmountMl); err != nil {
			return nil, storageErr("scan water log", err)
		}
		if w.Day, err = codec.DecodeDate(day); err != nil {
			return nil, err
		}
		if w.OccurredAt, err = codec.DecodeDateTime(occurred); err != nil {
			return nil, err
		}
		logs = append(logs, w)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate water logs", err)
	}
	return logs, nil
}
