package render

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"splicer/internal/config"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped whenever schema.sql changes incompatibly.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database was written by another schema version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// ErrLocked is returned when another runner holds the store lock.
var ErrLocked = errors.New("another render runner is active")

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Store persists render job history in SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// JobRecord is the persisted form of a job.
type JobRecord struct {
	ID        string
	BatchID   string
	Position  int
	Output    string
	Command   string
	Status    Status
	Attempts  int
	ExitCode  int
	Duration  time.Duration
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BatchRecord summarizes the jobs of one batch.
type BatchRecord struct {
	ID        string
	Jobs      int
	Succeeded int
	Failed    int
	Canceled  int
	StartedAt time.Time
	UpdatedAt time.Time
}

// Open creates or connects to the job database in cfg's state directory.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.RenderDBPath())
}

// OpenPath creates or connects to the job database at dbPath.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: flock.New(dbPath + ".lock")}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection and releases the lock.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	_ = s.lock.Unlock()
	return s.db.Close()
}

// Lock takes the single-runner lock without blocking. The returned func
// releases it.
func (s *Store) Lock() (func(), error) {
	ok, err := s.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock file %s)", ErrLocked, s.lock.Path())
	}
	return func() { _ = s.lock.Unlock() }, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}
	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// CreateBatch records every job of a batch as pending, in order.
func (s *Store) CreateBatch(ctx context.Context, batchID string, jobs []Job) error {
	now := time.Now().UnixMilli()
	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()
		for i, job := range jobs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO jobs (id, batch_id, position, output, command, status, created_at, updated_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				job.ID, batchID, i, job.Output, job.Command(), string(StatusPending), now, now,
			); err != nil {
				return fmt.Errorf("insert job %s: %w", job.ID, err)
			}
		}
		return tx.Commit()
	})
}

// UpdateJob stores the current state of a job.
func (s *Store) UpdateJob(ctx context.Context, id string, r JobResult) error {
	errText := ""
	if r.Err != nil {
		errText = r.Err.Error()
	}
	return s.execWithRetry(ctx,
		`UPDATE jobs SET status = ?, attempts = ?, exit_code = ?, duration_ms = ?, error = ?, updated_at = ?
		 WHERE id = ?`,
		string(r.Status), r.Attempts, r.Result.ExitCode, r.Result.Duration.Milliseconds(), errText,
		time.Now().UnixMilli(), id,
	)
}

const jobColumns = "id, batch_id, position, output, command, status, attempts, exit_code, duration_ms, error, created_at, updated_at"

// Jobs returns the jobs of batchID in submission order.
func (s *Store) Jobs(ctx context.Context, batchID string) ([]JobRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+jobColumns+" FROM jobs WHERE batch_id = ? ORDER BY position", batchID)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	var out []JobRecord
	for rows.Next() {
		rec, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Job returns a single job. A missing job is (JobRecord{}, false, nil).
func (s *Store) Job(ctx context.Context, id string) (JobRecord, bool, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+jobColumns+" FROM jobs WHERE id = ?", id)
	rec, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return JobRecord{}, false, nil
	}
	if err != nil {
		return JobRecord{}, false, fmt.Errorf("get job %s: %w", id, err)
	}
	return rec, true, nil
}

// Batches returns the most recent batches first, at most limit of them
// (all when limit <= 0).
func (s *Store) Batches(ctx context.Context, limit int) ([]BatchRecord, error) {
	query := `SELECT batch_id, COUNT(1),
		SUM(CASE WHEN status = 'succeeded' THEN 1 ELSE 0 END),
		SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END),
		SUM(CASE WHEN status = 'canceled' THEN 1 ELSE 0 END),
		MIN(created_at), MAX(updated_at)
		FROM jobs GROUP BY batch_id ORDER BY MIN(created_at) DESC, batch_id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query batches: %w", err)
	}
	defer rows.Close()

	var out []BatchRecord
	for rows.Next() {
		var (
			b                BatchRecord
			started, updated int64
		)
		if err := rows.Scan(&b.ID, &b.Jobs, &b.Succeeded, &b.Failed, &b.Canceled, &started, &updated); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		b.StartedAt = time.UnixMilli(started)
		b.UpdatedAt = time.UnixMilli(updated)
		out = append(out, b)
	}
	return out, rows.Err()
}

// ResetStale marks jobs left pending or running by an interrupted runner
// as canceled. It returns the number of jobs changed.
func (s *Store) ResetStale(ctx context.Context) (int64, error) {
	var affected int64
	err := retryOnBusy(ctx, func() error {
		res, err := s.db.ExecContext(ctx,
			"UPDATE jobs SET status = ?, error = ?, updated_at = ? WHERE status IN (?, ?)",
			string(StatusCanceled), "interrupted", time.Now().UnixMilli(),
			string(StatusPending), string(StatusRunning))
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	return affected, err
}

// Prune deletes batches whose last update is older than cutoff.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	var affected int64
	err := retryOnBusy(ctx, func() error {
		res, err := s.db.ExecContext(ctx,
			`DELETE FROM jobs WHERE batch_id IN (
				SELECT batch_id FROM jobs GROUP BY batch_id HAVING MAX(updated_at) < ?)`,
			cutoff.UnixMilli())
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	return affected, err
}

func scanJob(scanner interface{ Scan(dest ...any) error }) (JobRecord, error) {
	var (
		rec              JobRecord
		status           string
		durationMs       int64
		created, updated int64
	)
	if err := scanner.Scan(&rec.ID, &rec.BatchID, &rec.Position, &rec.Output, &rec.Command, &status,
		&rec.Attempts, &rec.ExitCode, &durationMs, &rec.Error, &created, &updated); err != nil {
		return JobRecord{}, err
	}
	rec.Status = Status(status)
	rec.Duration = time.Duration(durationMs) * time.Millisecond
	rec.CreatedAt = time.UnixMilli(created)
	rec.UpdatedAt = time.UnixMilli(updated)
	return rec, nil
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code()&0xff == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) error {
	return retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx, query, args...)
		return err
	})
}
