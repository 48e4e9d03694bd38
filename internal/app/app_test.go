package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/glabrego/carousel-cli/internal/catalog"
	"github.com/glabrego/carousel-cli/internal/listctl"
)

const twoImageDocument = `{"images": [
  {"url": "https://example.com/a.jpg", "items": [{"title": "Apple", "imageUrl": "https://example.com/apple.jpg"}]},
  {"url": "https://example.com/b.jpg", "items": []}
]}`

type fakeSource struct {
	data []byte
	err  error
}

func (f fakeSource) Load(context.Context) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

func (f fakeSource) Describe() string {
	return "fake"
}

type fakeRepo struct {
	saved   map[string][]byte
	saveErr error
}

func (f *fakeRepo) SaveDocument(_ context.Context, name string, body []byte) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if f.saved == nil {
		f.saved = make(map[string][]byte)
	}
	f.saved[name] = append([]byte(nil), body...)
	return nil
}

func TestService_Load_DecodesIntoController(t *testing.T) {
	svc := NewService(fakeSource{data: []byte(twoImageDocument)}, nil, nil)

	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	ctrl := svc.Controller()
	if ctrl.ImageCount() != 2 {
		t.Fatalf("expected 2 images, got %d", ctrl.ImageCount())
	}
	if ctrl.DisplayedCount() != 1 {
		t.Fatalf("expected 1 displayed item, got %d", ctrl.DisplayedCount())
	}
}

func TestService_Load_PropagatesSourceError(t *testing.T) {
	svc := NewService(fakeSource{err: errors.New("disk gone")}, nil, nil)

	err := svc.Load(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "load document from fake") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestService_Load_PropagatesDecodeErrorAndKeepsState(t *testing.T) {
	ctrl, err := listctl.New([]byte(twoImageDocument))
	if err != nil {
		t.Fatalf("listctl.New returned error: %v", err)
	}
	svc := NewService(fakeSource{data: []byte(`{"images": 7}`)}, ctrl, nil)

	err = svc.Load(context.Background())
	var decodeErr *catalog.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if ctrl.ImageCount() != 2 {
		t.Fatalf("expected previous catalog to survive, got %d images", ctrl.ImageCount())
	}
}

func TestService_LoadBytes_WithoutSource(t *testing.T) {
	svc := NewService(nil, nil, nil)
	if _, err := svc.LoadBytes(context.Background()); err == nil {
		t.Fatal("expected error without source")
	}
	if svc.SourceName() != "none" {
		t.Fatalf("unexpected source name: %s", svc.SourceName())
	}
}

func TestService_LogsStateChangesAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	svc := NewService(fakeSource{data: []byte(twoImageDocument)}, nil, logger)

	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	svc.Controller().SetSearchText("app")

	out := buf.String()
	if !strings.Contains(out, "list state changed") {
		t.Fatalf("expected state change log, got %q", out)
	}
	if !strings.Contains(out, "search=app") {
		t.Fatalf("expected search field in log, got %q", out)
	}
	if !strings.Contains(out, "catalog decoded") {
		t.Fatalf("expected decode log, got %q", out)
	}
}

func TestService_Import_SavesValidDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(twoImageDocument), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	repo := &fakeRepo{}
	svc := NewService(nil, nil, nil)

	doc, err := svc.Import(context.Background(), repo, "spring", path)
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if len(doc.Images) != 2 || doc.ItemCount() != 1 {
		t.Fatalf("unexpected imported document: %+v", doc)
	}
	if string(repo.saved["spring"]) != twoImageDocument {
		t.Fatalf("expected original bytes to be stored, got %q", repo.saved["spring"])
	}
}

func TestService_Import_RejectsInvalidDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(`{"images": [{"url": "u"}]}`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	repo := &fakeRepo{}
	svc := NewService(nil, nil, nil)

	_, err := svc.Import(context.Background(), repo, "spring", path)
	var decodeErr *catalog.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if len(repo.saved) != 0 {
		t.Fatal("invalid document should not be stored")
	}
}

func TestService_Import_PropagatesErrors(t *testing.T) {
	svc := NewService(nil, nil, nil)
	if _, err := svc.Import(context.Background(), &fakeRepo{}, "x", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected read error")
	}

	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(twoImageDocument), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := svc.Import(context.Background(), &fakeRepo{saveErr: errors.New("locked")}, "x", path); err == nil {
		t.Fatal("expected save error")
	}
}

func writeDocument(t *testing.T, path string, items int) {
	t.Helper()
	var b strings.Builder
	b.WriteString(`{"images": [{"url": "https://example.com/a.jpg", "items": [`)
	for i := 0; i < items; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"title": "Item %d", "imageUrl": "https://example.com/%d.jpg"}`, i, i)
	}
	b.WriteString(`]}]}`)
	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}
