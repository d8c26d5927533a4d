package imghref

import (
	"sync"

	"github.com/arloliu/imghref/svgtree"
)

// AsyncHTTPResolver fetches http:// and https:// hrefs on a pool of
// background workers, bridging the host's synchronous calling convention
// over asynchronous fetches. Each Resolve call hands the fetch to a
// worker and blocks on a one-shot completion signal.
//
// The pool must be started with Start before the resolver is used and
// stopped with Stop when it is no longer needed. Calling Resolve without
// a running pool is a caller contract violation and panics rather than
// blocking forever.
type AsyncHTTPResolver struct {
	fetcher *HTTPResolver

	mu       sync.Mutex
	running  bool
	tasks    chan fetchTask
	stopChan chan struct{}
	wg       sync.WaitGroup
}

type fetchTask struct {
	href  string
	reply chan fetchResult
}

type fetchResult struct {
	format svgtree.ImageFormat
	body   []byte
	ok     bool
}

// NewAsyncHTTPResolver creates an AsyncHTTPResolver. It accepts the same
// options as NewHTTPResolver. The worker pool is not started; call Start.
func NewAsyncHTTPResolver(opts ...Option) *AsyncHTTPResolver {
	return &AsyncHTTPResolver{fetcher: NewHTTPResolver(opts...)}
}

// Start launches the worker pool. It returns ErrAlreadyRunning if the
// pool is running and ErrNoWorkers if workers is less than 1.
func (r *AsyncHTTPResolver) Start(workers int) error {
	if workers < 1 {
		return ErrNoWorkers
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return ErrAlreadyRunning
	}

	r.tasks = make(chan fetchTask)
	r.stopChan = make(chan struct{})
	r.running = true

	for i := 0; i < workers; i++ {
		r.wg.Add(1)
		go r.worker(r.tasks, r.stopChan)
	}

	return nil
}

// Stop shuts the worker pool down, waiting for in-flight fetches to
// finish. Stop is idempotent.
func (r *AsyncHTTPResolver) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	close(r.stopChan)
	r.mu.Unlock()

	r.wg.Wait()
}

// Running reports whether the worker pool is running.
func (r *AsyncHTTPResolver) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.running
}

// Claims reports whether href starts with http:// or https://.
func (r *AsyncHTTPResolver) Claims(href string) bool {
	return claimsHTTP(href)
}

// Resolve enqueues the fetch on the worker pool and blocks until it
// completes, then materializes the classified payload on the calling
// goroutine. It returns nil on any ordinary fetch or classification
// failure.
//
// Resolve panics when the pool is not running (Start was never called,
// or Stop already ran): blocking on a pool that cannot make progress is
// unrecoverable, so the violation is surfaced loudly instead.
func (r *AsyncHTTPResolver) Resolve(href string, opts *svgtree.Options) *svgtree.ImageKind {
	r.mu.Lock()
	running, tasks, stop := r.running, r.tasks, r.stopChan
	r.mu.Unlock()

	if !running {
		panic("imghref: AsyncHTTPResolver.Resolve called without a running worker pool; call Start first")
	}

	reply := make(chan fetchResult, 1)

	select {
	case tasks <- fetchTask{href: href, reply: reply}:
	case <-stop:
		panic("imghref: AsyncHTTPResolver.Resolve raced Stop; worker pool is shut down")
	}

	// The task was handed to a worker; the buffered reply arrives
	// exactly once.
	res := <-reply
	if !res.ok {
		return nil
	}

	return svgtree.MakeImage(res.format, res.body, opts)
}

func (r *AsyncHTTPResolver) worker(tasks chan fetchTask, stop chan struct{}) {
	defer r.wg.Done()

	for {
		select {
		case <-stop:
			return
		case task := <-tasks:
			format, body, ok := r.fetcher.fetch(task.href)
			task.reply <- fetchResult{format: format, body: body, ok: ok}
		}
	}
}
