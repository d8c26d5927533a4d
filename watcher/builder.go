package watcher

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/arloliu/imghref"
	"github.com/fsnotify/fsnotify"
)

// Builder provides a fluent API for constructing a Watcher.
type Builder struct {
	path     string
	debounce time.Duration
}

// New creates a Builder watching the chain config file at path.
func New(path string) *Builder {
	return &Builder{
		path:     path,
		debounce: defaultDebounceInterval,
	}
}

// WithDebounceInterval sets how long file events must settle before a
// reload is attempted. The default is 100ms.
func (b *Builder) WithDebounceInterval(d time.Duration) *Builder {
	if d > 0 {
		b.debounce = d
	}

	return b
}

// Build loads the initial chain and starts the watch loop. The initial
// load must succeed; a watcher is never started without a working chain.
func (b *Builder) Build() (*Watcher, error) {
	cfg, err := imghref.LoadChainConfigFile(b.path)
	if err != nil {
		return nil, err
	}

	chain, stop, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		stop()
		return nil, fmt.Errorf("watcher: creating fs watcher: %w", err)
	}

	// Watch the directory, not the file: editors commonly replace the
	// file on save, which drops a file-level watch.
	if err := fsw.Add(filepath.Dir(b.path)); err != nil {
		stop()
		_ = fsw.Close()
		return nil, fmt.Errorf("watcher: watching %s: %w", filepath.Dir(b.path), err)
	}

	w := &Watcher{
		path:     b.path,
		debounce: b.debounce,
		fsw:      fsw,
		current:  chain,
		stop:     stop,
		running:  true,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
		errChan:  make(chan error, 8),
	}

	go w.loop()

	return w, nil
}
