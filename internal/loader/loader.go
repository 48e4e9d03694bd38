// Package loader supplies raw carousel documents to the controller. Sources
// only fetch bytes; decoding and its failures belong to the caller.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/glabrego/carousel-cli/internal/config"
)

var ErrNotFound = errors.New("document not found")

type Source interface {
	Load(ctx context.Context) ([]byte, error)
	Describe() string
}

type DocumentStore interface {
	LoadDocument(ctx context.Context, name string) ([]byte, error)
}

// FileSource reads a document bundled next to the binary or anywhere on disk.
type FileSource struct {
	Path string
}

func (s FileSource) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", s.Path, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return data, nil
}

func (s FileSource) Describe() string {
	return "file " + s.Path
}

// StoreSource reads a named document from the SQLite document store.
type StoreSource struct {
	Store DocumentStore
	Name  string
}

func (s StoreSource) Load(ctx context.Context) ([]byte, error) {
	if s.Store == nil {
		return nil, errors.New("document store is not configured")
	}
	data, err := s.Store.LoadDocument(ctx, s.Name)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s StoreSource) Describe() string {
	return fmt.Sprintf("store document %q", s.Name)
}

// FromConfig picks the source named by cfg.Source. store may be nil when the
// source is a file.
func FromConfig(cfg config.Config, store DocumentStore) (Source, error) {
	switch cfg.Source {
	case config.SourceFile:
		return FileSource{Path: cfg.DocumentPath}, nil
	case config.SourceDB:
		if store == nil {
			return nil, errors.New("db source requires a document store")
		}
		return StoreSource{Store: store, Name: cfg.DocumentName}, nil
	default:
		return nil, fmt.Errorf("unknown source %q", cfg.Source)
	}
}
