package auditlog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"alchemist/internal/config"
)

// Record is one immutable audit entry describing a single organized document.
type Record struct {
	ID               int64
	OriginalFilename string
	NewFilename      string
	Category         string
	Summary          string
	DestPath         string
	Timestamp        string
}

// Store manages audit persistence backed by SQLite. Writes are serialized;
// reads may run concurrently with a writer thanks to WAL mode.
type Store struct {
	db   *sql.DB
	path string

	writeMu sync.Mutex
}

// Open initializes or connects to the audit database and applies the schema.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.DatabasePath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Append persists one record and returns it with its assigned id. The
// timestamp is assigned at write time when the caller left it empty.
func (s *Store) Append(ctx context.Context, record Record) (Record, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if strings.TrimSpace(record.Timestamp) == "" {
		record.Timestamp = time.Now().Format(time.RFC3339Nano)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Record{}, fmt.Errorf("begin append tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(
		ctx,
		`INSERT INTO audit_records (
            original_filename, new_filename, category, summary, dest_path, timestamp
        ) VALUES (?, ?, ?, ?, ?, ?)`,
		record.OriginalFilename,
		record.NewFilename,
		record.Category,
		record.Summary,
		record.DestPath,
		record.Timestamp,
	)
	if err != nil {
		return Record{}, fmt.Errorf("insert audit record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Record{}, fmt.Errorf("last insert id: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Record{}, fmt.Errorf("commit audit record: %w", err)
	}

	record.ID = id
	return record, nil
}

const selectColumns = "id, original_filename, new_filename, category, summary, dest_path, timestamp"

// Recent returns up to limit records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		return nil, nil
	}
	query := fmt.Sprintf(
		"SELECT %s FROM audit_records ORDER BY timestamp DESC, id DESC LIMIT ?",
		selectColumns,
	)
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent records: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// All returns every record, newest first.
func (s *Store) All(ctx context.Context) ([]Record, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM audit_records ORDER BY timestamp DESC, id DESC",
		selectColumns,
	)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query all records: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// SearchSummary returns records whose summary contains every whitespace
// token of query as a case-sensitive substring, newest first. A blank query
// matches nothing.
func (s *Store) SearchSummary(ctx context.Context, query string) ([]Record, error) {
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return nil, nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM audit_records WHERE ", selectColumns)
	args := make([]any, 0, len(tokens))
	for i, token := range tokens {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		// instr is case-sensitive, unlike LIKE.
		sb.WriteString("instr(summary, ?) > 0")
		args = append(args, token)
	}
	sb.WriteString(" ORDER BY timestamp DESC, id DESC")

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("search summaries: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Stats summarizes the audit table for the status command.
type Stats struct {
	TotalRecords  int64
	ByCategory    map[string]int64
	LastTimestamp string
}

// Stats returns aggregate counts over the audit table.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{ByCategory: make(map[string]int64)}

	rows, err := s.db.QueryContext(ctx,
		"SELECT category, COUNT(1) FROM audit_records GROUP BY category",
	)
	if err != nil {
		return Stats{}, fmt.Errorf("query category counts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var category string
		var count int64
		if err := rows.Scan(&category, &count); err != nil {
			return Stats{}, fmt.Errorf("scan category count: %w", err)
		}
		stats.ByCategory[category] = count
		stats.TotalRecords += count
	}
	if err := rows.Err(); err != nil {
		return Stats{}, fmt.Errorf("iterate category counts: %w", err)
	}

	var last sql.NullString
	err = s.db.QueryRowContext(ctx,
		"SELECT timestamp FROM audit_records ORDER BY timestamp DESC, id DESC LIMIT 1",
	).Scan(&last)
	if err != nil && err != sql.ErrNoRows {
		return Stats{}, fmt.Errorf("query last timestamp: %w", err)
	}
	if last.Valid {
		stats.LastTimestamp = last.String
	}
	return stats, nil
}

// CheckHealth verifies the database answers a trivial query.
func (s *Store) CheckHealth(ctx context.Context) error {
	var one int
	if err := s.db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("audit store unavailable: %w", err)
	}
	return nil
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var r Record
		var dest sql.NullString
		if err := rows.Scan(&r.ID, &r.OriginalFilename, &r.NewFilename, &r.Category, &r.Summary, &dest, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("scan audit record: %w", err)
		}
		r.DestPath = dest.String
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit records: %w", err)
	}
	return records, nil
}
