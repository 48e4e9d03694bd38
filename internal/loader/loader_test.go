package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glabrego/carousel-cli/internal/config"
)

type fakeStore struct {
	docs map[string][]byte
	err  error
}

func (f fakeStore) LoadDocument(_ context.Context, name string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, ok := f.docs[name]
	if !ok {
		return nil, errors.New("missing " + name)
	}
	return data, nil
}

func TestFileSource_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(`{"images": []}`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := FileSource{Path: path}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if string(data) != `{"images": []}` {
		t.Fatalf("unexpected data: %q", data)
	}
}

func TestFileSource_MissingFileIsSurfaced(t *testing.T) {
	src := FileSource{Path: filepath.Join(t.TempDir(), "missing.json")}

	_, err := src.Load(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "missing.json") {
		t.Fatalf("expected path in error, got %q", err.Error())
	}
}

func TestFileSource_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := (FileSource{Path: "data.json"}).Load(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestStoreSource_Load(t *testing.T) {
	store := fakeStore{docs: map[string][]byte{"spring": []byte("{}")}}

	data, err := StoreSource{Store: store, Name: "spring"}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if string(data) != "{}" {
		t.Fatalf("unexpected data: %q", data)
	}

	if _, err := (StoreSource{Store: store, Name: "winter"}).Load(context.Background()); err == nil {
		t.Fatal("expected error for missing document")
	}
	if _, err := (StoreSource{Name: "spring"}).Load(context.Background()); err == nil {
		t.Fatal("expected error without a store")
	}
}

func TestFromConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.DocumentPath = "/tmp/data.json"

	src, err := FromConfig(cfg, nil)
	if err != nil {
		t.Fatalf("FromConfig returned error: %v", err)
	}
	if _, ok := src.(FileSource); !ok {
		t.Fatalf("expected FileSource, got %T", src)
	}
	if src.Describe() != "file /tmp/data.json" {
		t.Fatalf("unexpected description: %s", src.Describe())
	}

	cfg.Source = config.SourceDB
	if _, err := FromConfig(cfg, nil); err == nil {
		t.Fatal("expected error for db source without store")
	}
	src, err = FromConfig(cfg, fakeStore{})
	if err != nil {
		t.Fatalf("FromConfig returned error: %v", err)
	}
	if src.Describe() != `store document "default"` {
		t.Fatalf("unexpected description: %s", src.Describe())
	}

	cfg.Source = "http"
	if _, err := FromConfig(cfg, fakeStore{}); err == nil {
		t.Fatal("expected error for unknown source")
	}
}
