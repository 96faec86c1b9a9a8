package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docqa"
	"github.com/fwojciec/docqa/brotli"
	"github.com/fwojciec/docqa/crawl"
	"github.com/fwojciec/docqa/fs"
	"github.com/fwojciec/docqa/goquery"
	docqahttp "github.com/fwojciec/docqa/http"
	"github.com/fwojciec/docqa/qa"
	"github.com/fwojciec/docqa/redis"
	docqaslog "github.com/fwojciec/docqa/slog"
	"github.com/fwojciec/docqa/sqlite"
	"github.com/fwojciec/docqa/yaml"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// A missing .env file is not an error.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Default data directory, used when neither --data-dir nor
	// DOCQA_DATA_DIR is set. Set before calling Run().
	DataDir string

	// Fetcher used for network access. Defaults to an HTTP fetcher.
	Fetcher docqa.Fetcher

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DataDir: defaultDataDir(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var errs []error
	for i := len(m.closers) - 1; i >= 0; i-- {
		errs = append(errs, m.closers[i].Close())
	}
	m.closers = nil
	return errors.Join(errs...)
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docqa"),
		kong.Description("Answer questions from indexed release-note pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docqa --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := newLogger(stderr, cli.Verbose)
	deps.Logger = logger

	dataDir := cli.DataDir
	if dataDir == "" {
		dataDir = m.DataDir
	}

	if cli.CollectionsFile != "" {
		deps.Collections, err = yaml.Load(cli.CollectionsFile)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", docqa.ErrorMessage(err))
			return err
		}
	} else {
		deps.Collections = yaml.Default()
	}

	defer m.Close()

	store, cache, err := m.openStorage(ctx, cli, dataDir)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Set DOCQA_STORE and DOCQA_DATA_DIR to choose where indexes are kept\n")
		return err
	}
	store = docqaslog.NewLoggingIndexStore(brotli.NewIndexStore(store), logger)

	network := m.Fetcher
	if network == nil {
		network = docqahttp.NewFetcher()
	}
	fetcher := fs.NewCachingFetcher(
		docqaslog.NewLoggingFetcher(network, logger),
		cache,
		crawl.NewDomainLimiterEvery(crawl.DefaultFetchInterval),
	)
	m.closers = append(m.closers, fetcher)

	extractor := docqaslog.NewLoggingExtractor(goquery.NewSectionExtractor(fetcher), logger)

	deps.Manager = qa.NewManager(deps.Collections, extractor, store, logger)
	deps.Answerer = qa.NewService(deps.Manager)

	return kongCtx.Run(deps)
}

// openStorage opens the configured index store and the document cache
// that goes with it.
func (m *Main) openStorage(ctx context.Context, cli *CLI, dataDir string) (docqa.IndexStore, docqa.DocumentCache, error) {
	fileCache := fs.NewDocumentCache(filepath.Join(dataDir, "cache"))

	switch cli.Store {
	case "sqlite":
		path := filepath.Join(dataDir, "docqa.db")
		db := sqlite.NewDB(path)
		if err := db.Open(); err != nil {
			return nil, nil, fmt.Errorf("failed to open database at %q: %w", path, err)
		}
		m.closers = append(m.closers, db)
		return sqlite.NewIndexStore(db), sqlite.NewDocumentCache(db), nil
	case "redis":
		if cli.RedisURL == "" {
			return nil, nil, docqa.Errorf(docqa.EINVALID, "DOCQA_REDIS_URL must be set when DOCQA_STORE is redis")
		}
		store, err := redis.Open(ctx, cli.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		m.closers = append(m.closers, store)
		return store, fileCache, nil
	default:
		return fs.NewIndexStore(filepath.Join(dataDir, "index")), fileCache, nil
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "data"
	}
	return filepath.Join(home, ".docqa")
}
