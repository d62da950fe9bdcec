package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mvp-joe/ubidoc/internal/config"
	"github.com/mvp-joe/ubidoc/internal/ingest"
	"github.com/mvp-joe/ubidoc/internal/logging"
	"github.com/mvp-joe/ubidoc/internal/output"
	"github.com/mvp-joe/ubidoc/internal/scanner"
	"github.com/mvp-joe/ubidoc/internal/watcher"
)

// workspace wires configuration, discovery and ingestion for one source
// tree.
type workspace struct {
	root      string
	cfg       *config.Config
	logger    *logging.Logger
	discovery *ingest.Discovery
	cache     *ingest.FileCache
	store     *ingest.Store
}

// openWorkspace loads the tree named by args (default: the working
// directory). progress may be nil.
func openWorkspace(args []string, logOut io.Writer, progress ingest.ProgressReporter) (*workspace, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory: %w", err)
	}
	if info, err := os.Stat(root); err != nil {
		return nil, err
	} else if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	cfg, err := config.LoadConfigFromDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	level := cfg.Log.Level
	if quietFlag {
		level = "error"
	}
	if logLevelFlag != "" {
		level = logLevelFlag
	}
	logger := logging.NewConsole(level, logOut)

	discovery, err := ingest.NewDiscovery(root, cfg.Paths.Include, cfg.Paths.Ignore, cfg.EnabledLanguages())
	if err != nil {
		return nil, fmt.Errorf("invalid path patterns: %w", err)
	}

	var cache *ingest.FileCache
	if cfg.Scan.CacheSize > 0 {
		if cache, err = ingest.NewFileCache(cfg.Scan.CacheSize); err != nil {
			return nil, fmt.Errorf("failed to create cache: %w", err)
		}
	}

	var locator scanner.Locator = scanner.NewLexical(cfg.Scan.Lookahead)
	if cfg.Scan.Mode == config.ModeAST {
		locator = scanner.NewTreeLocator(cfg.Scan.Lookahead)
	}

	in := ingest.New(ingest.Options{
		Root:     root,
		Workers:  cfg.Scan.Workers,
		Locator:  locator,
		Cache:    cache,
		Logger:   logger,
		Progress: progress,
	})

	logger.Debug().
		Str("root", root).
		Str("mode", cfg.Scan.Mode).
		Strs("languages", cfg.Scan.Languages).
		Msg("workspace opened")

	return &workspace{
		root:      root,
		cfg:       cfg,
		logger:    logger,
		discovery: discovery,
		cache:     cache,
		store:     ingest.NewStore(in),
	}, nil
}

// outputDir resolves output.dir against the root.
func (w *workspace) outputDir() string {
	if filepath.IsAbs(w.cfg.Output.Dir) {
		return w.cfg.Output.Dir
	}
	return filepath.Join(w.root, w.cfg.Output.Dir)
}

func (w *workspace) outputOptions() output.Options {
	return output.Options{
		Dir:    w.outputDir(),
		Repo:   w.cfg.Output.Repo,
		Branch: w.cfg.Output.Branch,
		Logger: w.logger,
	}
}

func (w *workspace) sourceURL(file string, line int) string {
	return output.SourceURL(w.cfg.Output.Repo, w.cfg.Output.Branch, file, line)
}

// newWatcher watches the sources discovery would pick up.
func (w *workspace) newWatcher() (watcher.FileWatcher, error) {
	return watcher.NewFileWatcher(watcher.Options{
		Root:     w.root,
		Debounce: w.cfg.Debounce(),
		Match:    w.discovery.Matches,
		SkipDir:  w.discovery.Ignored,
		Logger:   w.logger,
	})
}

func (w *workspace) close() {
	w.cache.Close()
}
