package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"KnowledgeExtractor/internal/domain"
	"KnowledgeExtractor/internal/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS text_analyses (
    id TEXT PRIMARY KEY,
    original_text TEXT NOT NULL,
    summary TEXT NOT NULL,
    title TEXT,
    topics TEXT NOT NULL,
    sentiment TEXT NOT NULL,
    keywords TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
)`

// SQLiteRepository persists knowledge records in a local sqlite file.
// Topics and keywords are stored as JSON arrays, matching the external
// record shape.
type SQLiteRepository struct {
	db *sql.DB
}

var _ ports.RecordStore = (*SQLiteRepository)(nil)

// OpenSQLite opens (creating if needed) the database at path and
// ensures the schema exists.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close releases the underlying database handle.
func (r *SQLiteRepository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Save inserts the record and returns its assigned id.
func (r *SQLiteRepository) Save(ctx context.Context, originalText string, record domain.KnowledgeRecord) (string, error) {
	if r.db == nil {
		return "", fmt.Errorf("sqlite repository is not initialized")
	}

	topics, err := json.Marshal(record.Topics)
	if err != nil {
		return "", fmt.Errorf("marshal topics: %w", err)
	}
	kws, err := json.Marshal(record.Keywords)
	if err != nil {
		return "", fmt.Errorf("marshal keywords: %w", err)
	}

	id := uuid.NewString()
	query, args, err := sq.Insert("text_analyses").
		Columns("id", "original_text", "summary", "title", "topics", "sentiment", "keywords", "created_at").
		Values(id, originalText, record.Summary, record.Title, string(topics),
			string(record.Sentiment), string(kws), record.CreatedAt.UTC().Format(time.RFC3339Nano)).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return "", fmt.Errorf("insert record: %w", err)
	}
	return id, nil
}

// All returns stored records newest first; a non-positive limit means
// no limit.
func (r *SQLiteRepository) All(ctx context.Context, limit int) ([]domain.StoredRecord, error) {
	if r.db == nil {
		return nil, fmt.Errorf("sqlite repository is not initialized")
	}

	builder := sq.Select("id", "original_text", "summary", "title", "topics", "sentiment", "keywords", "created_at").
		From("text_analyses").
		OrderBy("created_at DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []domain.StoredRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return records, nil
}

// Get returns a single record by id, or sql.ErrNoRows when absent.
func (r *SQLiteRepository) Get(ctx context.Context, id string) (domain.StoredRecord, error) {
	if r.db == nil {
		return domain.StoredRecord{}, fmt.Errorf("sqlite repository is not initialized")
	}

	query, args, err := sq.Select("id", "original_text", "summary", "title", "topics", "sentiment", "keywords", "created_at").
		From("text_analyses").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.StoredRecord{}, fmt.Errorf("build select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.StoredRecord{}, fmt.Errorf("query record: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return domain.StoredRecord{}, fmt.Errorf("rows iteration: %w", err)
		}
		return domain.StoredRecord{}, sql.ErrNoRows
	}
	return scanRecord(rows)
}

// CountsBySentiment groups the full table by sentiment.
func (r *SQLiteRepository) CountsBySentiment(ctx context.Context) (map[domain.Sentiment]int, error) {
	if r.db == nil {
		return nil, fmt.Errorf("sqlite repository is not initialized")
	}

	query, args, err := sq.Select("sentiment", "COUNT(*)").
		From("text_analyses").
		GroupBy("sentiment").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query counts: %w", err)
	}
	defer rows.Close()

	counts := map[domain.Sentiment]int{}
	for rows.Next() {
		var sentiment string
		var n int
		if err := rows.Scan(&sentiment, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[domain.Sentiment(sentiment)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return counts, nil
}

func scanRecord(rows *sql.Rows) (domain.StoredRecord, error) {
	var (
		rec       domain.StoredRecord
		title     sql.NullString
		topics    string
		sentiment string
		kws       string
		createdAt string
	)
	if err := rows.Scan(&rec.ID, &rec.OriginalText, &rec.Record.Summary, &title,
		&topics, &sentiment, &kws, &createdAt); err != nil {
		return domain.StoredRecord{}, fmt.Errorf("scan record: %w", err)
	}

	if title.Valid {
		rec.Record.Title = &title.String
	}
	if err := json.Unmarshal([]byte(topics), &rec.Record.Topics); err != nil {
		return domain.StoredRecord{}, fmt.Errorf("unmarshal topics: %w", err)
	}
	if err := json.Unmarshal([]byte(kws), &rec.Record.Keywords); err != nil {
		return domain.StoredRecord{}, fmt.Errorf("unmarshal keywords: %w", err)
	}
	rec.Record.Sentiment = domain.Sentiment(sentiment)

	at, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return domain.StoredRecord{}, fmt.Errorf("parse created_at: %w", err)
	}
	rec.Record.CreatedAt = at
	return rec, nil
}
