package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/glabrego/carousel-cli/internal/app"
	"github.com/glabrego/carousel-cli/internal/config"
	"github.com/glabrego/carousel-cli/internal/loader"
	"github.com/glabrego/carousel-cli/internal/storage"
	"github.com/glabrego/carousel-cli/internal/tui"
)

type options struct {
	configPath string
	filePath   string
	dbPath     string
	name       string
	importPath string
	list       bool
	check      bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "path to config.toml")
	flag.StringVar(&opts.filePath, "file", "", "read the catalog from this JSON file")
	flag.StringVar(&opts.dbPath, "db", "", "path to the SQLite document store")
	flag.StringVar(&opts.name, "name", "", "stored document name to show or import into")
	flag.StringVar(&opts.importPath, "import", "", "validate a JSON file, save it in the document store and exit")
	flag.BoolVar(&opts.list, "list", false, "list stored documents and exit")
	flag.BoolVar(&opts.check, "check", false, "load and decode the catalog, print a summary and exit")
	flag.Parse()

	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "carousel: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options, out io.Writer) error {
	_ = godotenv.Load()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	cfg, err = cfg.Apply(config.Overrides{
		DocumentPath: opts.filePath,
		DBPath:       opts.dbPath,
		DocumentName: opts.name,
	})
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: file logging disabled (%v)\n", err)
		logger, closeLog = log.New(io.Discard), func() {}
	}
	defer closeLog()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var store loader.DocumentStore
	var repo *storage.Repository
	if cfg.Source == config.SourceDB || opts.importPath != "" || opts.list {
		repo, err = openStore(ctx, cfg.DBPath)
		if err != nil {
			return err
		}
		defer repo.Close()
		store = repo
	}

	switch {
	case opts.importPath != "":
		svc := app.NewService(nil, nil, logger)
		doc, err := svc.Import(ctx, repo, cfg.DocumentName, opts.importPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "imported %q: %d images, %d items\n", cfg.DocumentName, len(doc.Images), doc.ItemCount())
		return nil
	case opts.list:
		return listDocuments(ctx, repo, out)
	}

	source, err := loader.FromConfig(cfg, store)
	if err != nil {
		return fmt.Errorf("source error: %w", err)
	}
	svc := app.NewService(source, nil, logger)

	if opts.check {
		if err := svc.Load(ctx); err != nil {
			return err
		}
		ctrl := svc.Controller()
		fmt.Fprintf(out, "%s: %d images, %d items on the first image, %d shown per page\n",
			svc.SourceName(), ctrl.ImageCount(), ctrl.FilteredCount(), ctrl.DisplayedCount())
		return nil
	}

	logger.Info("starting tui", "source", svc.SourceName(), "prefetch_rows", cfg.PrefetchRows)
	model := tui.NewModel(svc, tui.Options{PrefetchRows: cfg.PrefetchRows})
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, path string) (*storage.Repository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	repo, err := storage.NewRepository(path)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}
	if err := repo.Init(ctx); err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("storage schema error: %w", err)
	}
	if err := repo.CheckWritable(ctx); err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("storage write check failed (%v). Verify CAROUSEL_DB_PATH is writable: %s", err, path)
	}
	return repo, nil
}

func listDocuments(ctx context.Context, repo *storage.Repository, out io.Writer) error {
	docs, err := repo.ListDocuments(ctx)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		fmt.Fprintln(out, "no stored documents")
		return nil
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "BYTES", "IMPORTED")
	for _, doc := range docs {
		t.Row(doc.Name, strconv.Itoa(doc.Size), doc.ImportedAt.Local().Format(time.DateTime))
	}
	fmt.Fprintln(out, t.String())
	return nil
}

func newLogger(cfg config.Config) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "carousel",
	})
	return logger, func() { _ = f.Close() }, nil
}
