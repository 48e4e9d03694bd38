package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Fixed-width so imported_at sorts lexically in time order.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

var ErrDocumentNotFound = errors.New("document not found")

// DocumentInfo describes a stored document without its body.
type DocumentInfo struct {
	Name       string
	Size       int
	ImportedAt time.Time
}

type Repository struct {
	db *sql.DB
}

func NewRepository(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Repository) Init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS documents (
  name TEXT PRIMARY KEY,
  body BLOB NOT NULL,
  imported_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS write_probe (
  id INTEGER PRIMARY KEY,
  checked_at TEXT NOT NULL
);
`
	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (r *Repository) CheckWritable(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO write_probe (id, checked_at) VALUES (1, ?)
ON CONFLICT(id) DO UPDATE SET checked_at=excluded.checked_at
`, time.Now().UTC().Format(timestampLayout))
	if err != nil {
		return fmt.Errorf("write probe: %w", err)
	}
	return nil
}

func (r *Repository) SaveDocument(ctx context.Context, name string, body []byte) error {
	if name == "" {
		return errors.New("document name is required")
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
INSERT INTO documents (name, body, imported_at)
VALUES (?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
  body=excluded.body,
  imported_at=excluded.imported_at
`, name, body, time.Now().UTC().Format(timestampLayout))
	if err != nil {
		return fmt.Errorf("save document %q: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *Repository) LoadDocument(ctx context.Context, name string) ([]byte, error) {
	var body []byte
	err := r.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE name = ?`, name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load document %q: %w", name, ErrDocumentNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load document %q: %w", name, err)
	}
	return body, nil
}

func (r *Repository) ListDocuments(ctx context.Context) ([]DocumentInfo, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT name, length(body), imported_at
FROM documents
ORDER BY imported_at DESC, name ASC
`)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var docs []DocumentInfo
	for rows.Next() {
		var info DocumentInfo
		var importedAt string
		if err := rows.Scan(&info.Name, &info.Size, &importedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		info.ImportedAt, err = time.Parse(timestampLayout, importedAt)
		if err != nil {
			return nil, fmt.Errorf("parse document imported_at %q: %w", importedAt, err)
		}
		docs = append(docs, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return docs, nil
}
