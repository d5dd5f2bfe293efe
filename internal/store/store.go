// Package store is the durable record store: one SQLite file holding the
// singleton profile, the four log tables, and the equipment flags, with a
// live snapshot feed per table.
//
// Writes are serialized per table; a writer holds the table lock across
// commit and notification, so every subscription observes snapshots in
// commit order. Cross-table writes proceed concurrently under a shared
// read lock on the store; ResetAll and Snapshot take the write side so no
// reader ever sees a half-reset state.
package store

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/fitlog/fitlog-cli/internal/db"
	"github.com/fitlog/fitlog-cli/internal/live"
	"github.com/fitlog/fitlog-cli/internal/model"
)

const busyRetryWindow = 2 * time.Second

type Store struct {
	db   *sql.DB
	path string
	log  zerolog.Logger

	// Held shared by per-table operations, exclusive by ResetAll,
	// Snapshot, and WithExclusive.
	global sync.RWMutex

	profileMu   sync.Mutex
	weightMu    sync.Mutex
	workoutMu   sync.Mutex
	mealMu      sync.Mutex
	waterMu     sync.Mutex
	equipmentMu sync.Mutex

	profileFeed   *live.Feed[*model.Profile]
	weightFeed    *live.Feed[[]model.WeightEntry]
	workoutFeed   *live.Feed[[]model.WorkoutLog]
	mealFeed      *live.Feed[[]model.MealLog]
	waterFeed     *live.Feed[[]model.WaterLog]
	equipmentFeed *live.Feed[[]model.EquipmentFlag]
}

// Open opens (or creates) the store at path and brings its schema to the
// current version with the default destructive mismatch policy.
func Open(path string, log zerolog.Logger) (*Store, error) {
	sqldb, err := db.Open(path)
	if err != nil {
		return nil, storageErr("open store", err)
	}
	if err := db.Prepare(sqldb); err != nil {
		_ = sqldb.Close()
		return nil, storageErr("prepare schema", err)
	}
	return &Store{
		db:            sqldb,
		path:          path,
		log:           log.With().Str("component", "store").Logger(),
		profileFeed:   live.NewFeed[*model.Profile]("profile", log),
		weightFeed:    live.NewFeed[[]model.WeightEntry]("weight_entries", log),
		workoutFeed:   live.NewFeed[[]model.WorkoutLog]("workout_logs", log),
		mealFeed:      live.NewFeed[[]model.MealLog]("meal_logs", log),
		waterFeed:     live.NewFeed[[]model.WaterLog]("water_logs", log),
		equipmentFeed: live.NewFeed[[]model.EquipmentFlag]("equipment", log),
	}, nil
}

// Path returns the underlying database file path.
func (s *Store) Path() string { return s.path }

// Close terminates every live subscription and closes the database.
func (s *Store) Close() error {
	s.profileFeed.Close()
	s.weightFeed.Close()
	s.workoutFeed.Close()
	s.mealFeed.Close()
	s.waterFeed.Close()
	s.equipmentFeed.Close()
	if err := s.db.Close(); err != nil {
		return storageErr("close store", err)
	}
	return nil
}

// exec runs a mutating statement, retrying while SQLite reports the file
// busy or locked, up to busyRetryWindow. Any other failure, or exhausting
// the window, surfaces as a StorageError.
func (s *Store) exec(op, query string, args ...any) (sql.Result, error) {
	var res sql.Result
	try := func() error {
		r, err := s.db.Exec(query, args...)
		if err != nil {
			if isBusy(err) {
				s.log.Debug().Str("op", op).Msg("database busy, retrying")
				return err
			}
			return backoff.Permanent(err)
		}
		res = r
		return nil
	}
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 10 * time.Millisecond
	bo.MaxElapsedTime = busyRetryWindow
	if err := backoff.Retry(try, bo); err != nil {
		return nil, storageErr(op, err)
	}
	return res, nil
}

func isBusy(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "SQLITE_BUSY")
}

func affectedCount(op string, res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, storageErr(op, err)
	}
	return n, nil
}

func lastInsertID(op string, res sql.Result) (int64, error) {
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr(op, err)
	}
	return id, nil
}

// subscribe pairs a consistent snapshot read with feed registration under
// the caller-supplied table lock, so no mutation lands between the two.
func subscribe[T any](ctx context.Context, mu *sync.Mutex, feed *live.Feed[T], read func() (T, error)) *live.Subscription[T] {
	mu.Lock()
	defer mu.Unlock()
	snap, err := read()
	if err != nil {
		return live.Failed[T](err)
	}
	return feed.Subscribe(ctx, snap)
}

// notify re-reads the table snapshot and broadcasts it. A read failure at
// this point means the table itself is broken, so the feed fails rather
// than skip an emission.
func notify[T any](feed *live.Feed[T], read func() (T, error)) {
	snap, err := read()
	if err != nil {
		feed.Fail(err)
		return
	}
	feed.Publish(snap)
}
