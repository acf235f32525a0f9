package sink

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/dgallion1/mdsplit/internal/chunker"
	"github.com/dgallion1/mdsplit/internal/document"
)

// SQLiteSink appends each run as a document row plus its chunk rows.
// Writing to an existing database keeps earlier runs.
type SQLiteSink struct{}

func (SQLiteSink) Format() Format    { return FormatSQLite }
func (SQLiteSink) Extension() string { return ".db" }

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	content_hash TEXT NOT NULL,
	chunk_size INTEGER NOT NULL,
	chunk_count INTEGER NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS chunks (
	id TEXT PRIMARY KEY,
	document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	seq INTEGER NOT NULL,
	kind TEXT NOT NULL,
	breadcrumb TEXT NOT NULL,
	body TEXT NOT NULL,
	content TEXT NOT NULL,
	start_line INTEGER NOT NULL,
	tokens INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_chunks_document ON chunks(document_id, seq);
CREATE INDEX IF NOT EXISTS idx_documents_hash ON documents(content_hash);
`

func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return db, nil
}

func (SQLiteSink) WriteFile(ctx context.Context, path string, b Batch) error {
	db, err := openDB(path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	docID := uuid.New().String()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (id, name, content_hash, chunk_size, chunk_count, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		docID, b.Document, b.ContentHash, b.ChunkSize, len(b.Chunks), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, document_id, seq, kind, breadcrumb, body, content, start_line, tokens)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare chunk insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range b.Chunks {
		_, err := stmt.ExecContext(ctx,
			uuid.New().String(), docID, c.Index, string(c.Kind),
			strings.Join(c.Breadcrumb, "\n"), c.Body, c.Text, c.StartLine,
			chunker.EstimateTokens(c.Body),
		)
		if err != nil {
			return fmt.Errorf("insert chunk %d: %w", c.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// LoadChunks reads back the most recently written document in the database
// at path, returning its name and chunks in order.
func LoadChunks(ctx context.Context, path string) (string, []document.Chunk, error) {
	db, err := openDB(path)
	if err != nil {
		return "", nil, err
	}
	defer db.Close()

	var docID, name string
	err = db.QueryRowContext(ctx,
		`SELECT id, name FROM documents ORDER BY rowid DESC LIMIT 1`,
	).Scan(&docID, &name)
	if err != nil {
		return "", nil, fmt.Errorf("find document: %w", err)
	}

	rows, err := db.QueryContext(ctx, `
		SELECT seq, kind, breadcrumb, body, content, start_line
		FROM chunks WHERE document_id = ? ORDER BY seq`, docID)
	if err != nil {
		return "", nil, fmt.Errorf("query chunks: %w", err)
	}
	defer rows.Close()

	var chunks []document.Chunk
	for rows.Next() {
		var c document.Chunk
		var kind, crumb string
		if err := rows.Scan(&c.Index, &kind, &crumb, &c.Body, &c.Text, &c.StartLine); err != nil {
			return "", nil, fmt.Errorf("scan chunk: %w", err)
		}
		c.Kind = document.Kind(kind)
		if crumb != "" {
			c.Breadcrumb = strings.Split(crumb, "\n")
		}
		chunks = append(chunks, c)
	}
	return name, chunks, rows.Err()
}
