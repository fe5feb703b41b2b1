package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/lpforge/lpextract"
)

// Compile-time interface verification.
var _ lpextract.ExtractionService = (*ExtractionService)(nil)

// ExtractionService implements lpextract.ExtractionService using SQLite.
type ExtractionService struct {
	db *DB
}

// NewExtractionService creates a new ExtractionService.
func NewExtractionService(db *DB) *ExtractionService {
	return &ExtractionService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(content))
	return hex.EncodeToString(b)
}

// CreateExtraction stores a new extraction record, assigning its ID,
// content hash, and creation timestamp.
func (s *ExtractionService) CreateExtraction(ctx context.Context, rec *lpextract.ExtractionRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	rec.ID = uuid.New().String()
	rec.CreatedAt = time.Now().UTC()
	rec.ContentHash = hashContent(rec.Text)

	fields, err := json.Marshal(rec.Fields)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO extractions (id, url, text, content_hash, model, confidence, fields, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.URL, rec.Text, rec.ContentHash, rec.Model, rec.Confidence,
		string(fields), rec.CreatedAt.Format(time.RFC3339))

	return err
}

// FindExtractionByURL retrieves the most recent record for a URL.
func (s *ExtractionService) FindExtractionByURL(ctx context.Context, url string) (*lpextract.ExtractionRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, url, text, content_hash, model, confidence, fields, created_at
		FROM extractions
		WHERE url = ?
		ORDER BY created_at DESC
		LIMIT 1
	`, url)

	rec, err := scanExtraction(row.Scan)
	if err == sql.ErrNoRows {
		return nil, lpextract.Errorf(lpextract.ENOTFOUND, "extraction not found")
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// FindExtractions retrieves records matching the filter, newest first.
func (s *ExtractionService) FindExtractions(ctx context.Context, filter lpextract.ExtractionFilter) ([]*lpextract.ExtractionRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, url, text, content_hash, model, confidence, fields, created_at FROM extractions WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY created_at DESC")
	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*lpextract.ExtractionRecord
	for rows.Next() {
		rec, err := scanExtraction(rows.Scan)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

// DeleteExtraction permanently removes a record.
func (s *ExtractionService) DeleteExtraction(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM extractions WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return lpextract.Errorf(lpextract.ENOTFOUND, "extraction not found")
	}

	return nil
}

// scanExtraction reads one extraction row via the given scan function.
func scanExtraction(scan func(dest ...any) error) (*lpextract.ExtractionRecord, error) {
	var rec lpextract.ExtractionRecord
	var fields, createdAt string

	if err := scan(&rec.ID, &rec.URL, &rec.Text, &rec.ContentHash, &rec.Model,
		&rec.Confidence, &fields, &createdAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(fields), &rec.Fields); err != nil {
		return nil, err
	}

	ts, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	rec.CreatedAt = ts

	return &rec, nil
}
