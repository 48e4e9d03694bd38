package actions

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeLoader struct {
	data         []byte
	err          error
	lastDeadline time.Time
}

func (f *fakeLoader) LoadBytes(ctx context.Context) ([]byte, error) {
	if dl, ok := ctx.Deadline(); ok {
		f.lastDeadline = dl
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

func TestLoadCmd(t *testing.T) {
	loader := &fakeLoader{data: []byte(`{"images":[]}`)}
	msg := LoadCmd(loader, "startup")()
	success, ok := msg.(LoadSuccessMsg)
	if !ok {
		t.Fatalf("expected LoadSuccessMsg, got %T", msg)
	}
	if string(success.Data) != `{"images":[]}` || success.Trigger != "startup" {
		t.Fatalf("unexpected success msg: %+v", success)
	}
	if loader.lastDeadline.IsZero() {
		t.Fatal("expected load to run with a deadline")
	}
}

func TestLoadCmd_Error(t *testing.T) {
	loader := &fakeLoader{err: errors.New("disk gone")}
	msg := LoadCmd(loader, "reload")()
	failure, ok := msg.(LoadErrorMsg)
	if !ok {
		t.Fatalf("expected LoadErrorMsg, got %T", msg)
	}
	if failure.Err == nil || failure.Trigger != "reload" {
		t.Fatalf("unexpected error msg: %+v", failure)
	}
}

func TestOpenURLCmd_Fallbacks(t *testing.T) {
	msg := OpenURLCmd("https://example.com/a.jpg",
		func(string) error { return nil },
		func(string) error { return nil },
	)()
	success, ok := msg.(OpenURLSuccessMsg)
	if !ok || !success.Opened {
		t.Fatalf("expected opened success, got %T %+v", msg, success)
	}

	msg = OpenURLCmd("https://example.com/a.jpg",
		func(string) error { return errors.New("open failed") },
		func(string) error { return nil },
	)()
	success, ok = msg.(OpenURLSuccessMsg)
	if !ok || success.Opened {
		t.Fatalf("expected copy fallback success, got %T %+v", msg, success)
	}

	msg = OpenURLCmd("https://example.com/a.jpg",
		func(string) error { return errors.New("open failed") },
		func(string) error { return errors.New("copy failed") },
	)()
	if _, ok := msg.(OpenURLErrorMsg); !ok {
		t.Fatalf("expected OpenURLErrorMsg, got %T", msg)
	}
}

func TestCopyURLCmd(t *testing.T) {
	var copied string
	msg := CopyURLCmd("https://example.com/a.jpg", func(u string) error { copied = u; return nil })()
	if _, ok := msg.(OpenURLSuccessMsg); !ok {
		t.Fatalf("expected OpenURLSuccessMsg, got %T", msg)
	}
	if copied != "https://example.com/a.jpg" {
		t.Fatalf("unexpected copied URL: %q", copied)
	}
	msg = CopyURLCmd("https://example.com/a.jpg", func(string) error { return errors.New("copy failed") })()
	if _, ok := msg.(OpenURLErrorMsg); !ok {
		t.Fatalf("expected OpenURLErrorMsg, got %T", msg)
	}
	msg = CopyURLCmd("https://example.com/a.jpg", nil)()
	if _, ok := msg.(OpenURLErrorMsg); !ok {
		t.Fatalf("expected OpenURLErrorMsg without copier, got %T", msg)
	}
}
