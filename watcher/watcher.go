// Package watcher provides hot-reload of resolver chain configurations.
//
// A Watcher monitors a chain config file via fsnotify and rebuilds the
// chain when the file changes, atomically swapping the active chain.
// The Watcher itself implements imghref.Resolver, so it can be installed
// once and keep resolving through reloads:
//
//	w, err := watcher.New("resolvers.yaml").Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Stop()
//
//	opts := &svgtree.Options{}
//	imghref.Install(w, opts)
//
// Reload failures keep the previous chain active and are reported on the
// Errors channel.
//
// # Thread Safety
//
// The Watcher is safe for concurrent use. The Errors channel should be
// consumed by a single goroutine; errors are dropped when it is full.
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/arloliu/imghref"
	"github.com/arloliu/imghref/svgtree"
	"github.com/fsnotify/fsnotify"
)

// defaultDebounceInterval prevents rapid successive reloads.
const defaultDebounceInterval = 100 * time.Millisecond

// Watcher monitors a chain config file and swaps the active resolver
// chain when it changes.
type Watcher struct {
	path     string
	debounce time.Duration
	fsw      *fsnotify.Watcher

	mu      sync.RWMutex
	current imghref.Resolver
	stop    func()

	runMu    sync.Mutex
	running  bool
	stopChan chan struct{}
	doneChan chan struct{}
	errChan  chan error
}

// Claims delegates to the currently active chain.
func (w *Watcher) Claims(href string) bool {
	return w.resolver().Claims(href)
}

// Resolve delegates to the currently active chain. A reload between
// calls is safe; each call uses a consistent chain snapshot.
func (w *Watcher) Resolve(href string, opts *svgtree.Options) *svgtree.ImageKind {
	return w.resolver().Resolve(href, opts)
}

// Resolver returns the currently active chain. Most callers should
// install the Watcher itself instead, so reloads take effect.
func (w *Watcher) Resolver() imghref.Resolver {
	return w.resolver()
}

// Errors returns the channel reload and watch errors are reported on.
func (w *Watcher) Errors() <-chan error {
	return w.errChan
}

// Path returns the watched config file path.
func (w *Watcher) Path() string {
	return w.path
}

// Stop shuts the watcher down: the watch loop exits, the filesystem
// watcher is closed, and worker pools of the active chain are stopped.
// Stop is idempotent.
func (w *Watcher) Stop() {
	w.runMu.Lock()
	if !w.running {
		w.runMu.Unlock()
		return
	}
	w.running = false
	w.runMu.Unlock()

	close(w.stopChan)
	<-w.doneChan
	_ = w.fsw.Close()

	w.mu.Lock()
	stop := w.stop
	w.stop = nil
	w.mu.Unlock()

	if stop != nil {
		stop()
	}
}

func (w *Watcher) resolver() imghref.Resolver {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.current
}

func (w *Watcher) loop() {
	defer close(w.doneChan)

	base := filepath.Base(w.path)

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.stopChan:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			// Editors often emit bursts of events for one save; wait for
			// the burst to settle before reloading.
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			w.reload()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.pushErr(err)
		}
	}
}

// reload rebuilds the chain from the config file. On any failure the
// previous chain stays active.
func (w *Watcher) reload() {
	cfg, err := imghref.LoadChainConfigFile(w.path)
	if err != nil {
		w.pushErr(err)
		return
	}

	chain, stop, err := cfg.Build()
	if err != nil {
		w.pushErr(err)
		return
	}

	w.mu.Lock()
	oldStop := w.stop
	w.current = chain
	w.stop = stop
	w.mu.Unlock()

	if oldStop != nil {
		oldStop()
	}
}

func (w *Watcher) pushErr(err error) {
	select {
	case w.errChan <- err:
	default:
	}
}
