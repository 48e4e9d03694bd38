package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/glabrego/carousel-cli/internal/catalog"
	"github.com/glabrego/carousel-cli/internal/listctl"
	"github.com/glabrego/carousel-cli/internal/loader"
)

type DocumentRepository interface {
	SaveDocument(ctx context.Context, name string, body []byte) error
}

type Service struct {
	source loader.Source
	ctrl   *listctl.Controller
	logger *log.Logger
}

func NewService(source loader.Source, ctrl *listctl.Controller, logger *log.Logger) *Service {
	if ctrl == nil {
		ctrl, _ = listctl.New(nil)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Service{source: source, ctrl: ctrl, logger: logger}
	ctrl.Subscribe(s.logState)
	return s
}

func (s *Service) Controller() *listctl.Controller {
	return s.ctrl
}

func (s *Service) SourceName() string {
	if s.source == nil {
		return "none"
	}
	return s.source.Describe()
}

// LoadBytes fetches the raw document without decoding it, so the TUI can
// decode on its own update loop.
func (s *Service) LoadBytes(ctx context.Context) ([]byte, error) {
	if s.source == nil {
		return nil, errors.New("no document source configured")
	}
	data, err := s.source.Load(ctx)
	if err != nil {
		s.logger.Error("document load failed", "source", s.source.Describe(), "err", err)
		return nil, fmt.Errorf("load document from %s: %w", s.source.Describe(), err)
	}
	s.logger.Info("document loaded", "source", s.source.Describe(), "bytes", len(data))
	return data, nil
}

// Load fetches and decodes the document into the controller.
func (s *Service) Load(ctx context.Context) error {
	data, err := s.LoadBytes(ctx)
	if err != nil {
		return err
	}
	return s.Decode(data)
}

func (s *Service) Decode(data []byte) error {
	if err := s.ctrl.Decode(data); err != nil {
		s.logger.Error("document decode failed", "err", err)
		return err
	}
	s.logger.Info("catalog decoded", "images", s.ctrl.ImageCount())
	return nil
}

// Import validates the document at path and stores its original bytes under
// name. Invalid documents never reach the repository.
func (s *Service) Import(ctx context.Context, repo DocumentRepository, name, path string) (catalog.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return catalog.Document{}, fmt.Errorf("read import file: %w", err)
	}
	doc, err := catalog.Decode(data)
	if err != nil {
		s.logger.Warn("import rejected", "path", path, "err", err)
		return catalog.Document{}, fmt.Errorf("validate import file: %w", err)
	}
	if err := repo.SaveDocument(ctx, name, data); err != nil {
		return catalog.Document{}, fmt.Errorf("save document to store: %w", err)
	}
	s.logger.Info("document imported", "name", name, "images", len(doc.Images), "items", doc.ItemCount())
	return doc, nil
}

func (s *Service) logState(st listctl.State) {
	s.logger.Debug("list state changed",
		"images", len(st.Images),
		"selected", st.SelectedIndex,
		"search", st.SearchText,
		"filtered", len(st.FilteredItems),
		"displayed", len(st.DisplayedItems),
		"page", st.Page,
	)
}
