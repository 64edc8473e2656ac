package path

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	internal "github.com/ZanzyTHEbar/pathkit/pathkit"
	"github.com/ZanzyTHEbar/pathkit/pathkit/config"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"
)

// opKind selects the blocking syscall a request performs.
type opKind int

const (
	opCanonicalize opKind = iota
	opStat
	opLstat
)

func (k opKind) String() string {
	switch k {
	case opCanonicalize:
		return "canonicalize"
	case opStat:
		return "metadata"
	case opLstat:
		return "symlink_metadata"
	default:
		return "unknown"
	}
}

// request is one filesystem query handed to the worker pool. The path is an
// owned copy taken up front, so its validity never depends on the caller's
// buffer surviving the suspension.
type request struct {
	id   uuid.UUID
	kind opKind
	path string
	// result is buffered with capacity 1 so a worker can always deliver and
	// move on, even when the caller has been cancelled and will never read.
	result chan response
}

type response struct {
	resolved string
	info     os.FileInfo
	err      error
}

// DispatcherOptions configures a query dispatcher.
type DispatcherOptions struct {
	MaxWorkers int            // Number of worker goroutines executing syscalls
	QueueDepth int            // Bounded request queue; enqueueing blocks when full
	OpTimeout  time.Duration  // Per-operation deadline, 0 disables
	Fs         afero.Fs       // Filesystem backend, defaults to the OS filesystem
	Logger     zerolog.Logger // Structured logger for dispatch tracing
}

// DefaultDispatcherOptions returns dispatcher settings from the loaded
// configuration, falling back to built-in defaults when unset.
func DefaultDispatcherOptions() DispatcherOptions {
	q := config.AppConfig.Pathkit.Query

	workers := q.MaxWorkers
	if workers <= 0 {
		workers = config.DefaultMaxWorkers()
	}
	depth := q.QueueDepth
	if depth <= 0 {
		depth = internal.DefaultQueueDepth
	}
	timeout := time.Duration(q.OpTimeoutSeconds) * time.Second
	if q.OpTimeoutSeconds <= 0 {
		timeout = time.Duration(internal.DefaultOpTimeoutSeconds) * time.Second
	}

	return DispatcherOptions{
		MaxWorkers: workers,
		QueueDepth: depth,
		OpTimeout:  timeout,
		Fs:         afero.NewOsFs(),
		Logger:     internal.GetLogger(),
	}
}

// Dispatcher executes blocking filesystem syscalls on a bounded pool of
// worker goroutines so callers suspend without occupying an OS thread in a
// syscall. Queries on different paths share no mutable state; each request
// is independent, and no ordering is guaranteed between concurrent queries.
type Dispatcher struct {
	fs        afero.Fs
	logger    zerolog.Logger
	opTimeout time.Duration
	requests  chan *request
	done      chan struct{}
	wg        conc.WaitGroup
	closeOnce sync.Once
}

// NewDispatcher starts a dispatcher with the given options. Zero-valued
// pool and backend fields fall back to the defaults from
// DefaultDispatcherOptions; a zero OpTimeout leaves operations without a
// deadline of their own. The caller owns the dispatcher and should Close it
// when done.
func NewDispatcher(opts DispatcherOptions) *Dispatcher {
	defaults := DefaultDispatcherOptions()
	if opts.MaxWorkers <= 0 {
		opts.MaxWorkers = defaults.MaxWorkers
	}
	if opts.QueueDepth <= 0 {
		opts.QueueDepth = defaults.QueueDepth
	}
	if opts.Fs == nil {
		opts.Fs = defaults.Fs
	}

	d := &Dispatcher{
		fs:        opts.Fs,
		logger:    opts.Logger,
		opTimeout: opts.OpTimeout,
		requests:  make(chan *request, opts.QueueDepth),
		done:      make(chan struct{}),
	}

	for i := 0; i < opts.MaxWorkers; i++ {
		d.wg.Go(d.worker)
	}

	d.logger.Debug().
		Int("max_workers", opts.MaxWorkers).
		Int("queue_depth", opts.QueueDepth).
		Msg("query dispatcher started")

	return d
}

// Close stops the workers and waits for in-flight syscalls to finish.
// Requests still queued or arriving afterwards fail with ErrDispatcherClosed.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.done)
		d.wg.Wait()
	})
}

func (d *Dispatcher) worker() {
	for {
		select {
		case <-d.done:
			return
		case req := <-d.requests:
			req.result <- d.execute(req)
		}
	}
}

// dispatch enqueues a request and suspends the calling goroutine until a
// worker delivers the response or ctx is cancelled. On cancellation the
// in-flight syscall may still complete in the background; its response lands
// in the request's buffered channel and is discarded, never delivered.
func (d *Dispatcher) dispatch(ctx context.Context, kind opKind, p Path) (response, error) {
	if d.opTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.opTimeout)
		defer cancel()
	}

	req := &request{
		id:     uuid.New(),
		kind:   kind,
		path:   string(p),
		result: make(chan response, 1),
	}

	select {
	case d.requests <- req:
	case <-ctx.Done():
		return response{}, &QueryError{Op: kind.String(), Path: req.path, Err: ctx.Err()}
	case <-d.done:
		return response{}, &QueryError{Op: kind.String(), Path: req.path, Err: ErrDispatcherClosed}
	}

	select {
	case resp := <-req.result:
		return resp, nil
	case <-ctx.Done():
		d.logger.Debug().
			Str("request_id", req.id.String()).
			Str("op", kind.String()).
			Str("path", req.path).
			Msg("query cancelled before completion, discarding result")
		return response{}, &QueryError{Op: kind.String(), Path: req.path, Err: ctx.Err()}
	case <-d.done:
		return response{}, &QueryError{Op: kind.String(), Path: req.path, Err: ErrDispatcherClosed}
	}
}

// execute runs on a worker goroutine and performs the blocking syscall.
func (d *Dispatcher) execute(req *request) response {
	switch req.kind {
	case opStat:
		info, err := d.fs.Stat(req.path)
		return response{info: info, err: err}

	case opLstat:
		if lst, ok := d.fs.(afero.Lstater); ok {
			info, _, err := lst.LstatIfPossible(req.path)
			return response{info: info, err: err}
		}
		// Backend cannot distinguish links; following semantics apply.
		info, err := d.fs.Stat(req.path)
		return response{info: info, err: err}

	case opCanonicalize:
		resolved, err := d.canonicalize(req.path)
		return response{resolved: resolved, err: err}

	default:
		return response{err: os.ErrInvalid}
	}
}

// canonicalize resolves the path to an absolute, symlink-free form. Dot-dot
// segments must survive until symlink resolution, so the path is absolutized
// by plain concatenation rather than a cleaning join.
func (d *Dispatcher) canonicalize(path string) (string, error) {
	abs := path
	if !filepath.IsAbs(abs) {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		abs = wd + string(filepath.Separator) + abs
	}

	if _, ok := d.fs.(*afero.OsFs); ok {
		return filepath.EvalSymlinks(abs)
	}

	// Virtual backends carry no symlinks: resolve lexically, but still
	// require the target to exist so nonexistent paths fail as they would
	// against a real filesystem.
	cleaned := filepath.Clean(abs)
	if _, err := d.fs.Stat(cleaned); err != nil {
		return "", err
	}
	return cleaned, nil
}

// Canonicalize returns the canonical absolute form of p with intermediate
// components normalized and symbolic links resolved. Fails with the OS error
// when the path does not exist or is not traversable.
func (d *Dispatcher) Canonicalize(ctx context.Context, p Path) (PathBuf, error) {
	resp, err := d.dispatch(ctx, opCanonicalize, p)
	if err != nil {
		return PathBuf{}, err
	}
	if resp.err != nil {
		return PathBuf{}, &QueryError{Op: opCanonicalize.String(), Path: string(p), Err: resp.err}
	}
	return PathBufFrom(resp.resolved), nil
}

// Metadata queries information about p, traversing symbolic links to the
// destination.
func (d *Dispatcher) Metadata(ctx context.Context, p Path) (Metadata, error) {
	resp, err := d.dispatch(ctx, opStat, p)
	if err != nil {
		return Metadata{}, err
	}
	if resp.err != nil {
		return Metadata{}, &QueryError{Op: opStat.String(), Path: string(p), Err: resp.err}
	}
	return newMetadata(resp.info), nil
}

// SymlinkMetadata queries information about p without following a final
// symbolic link component.
func (d *Dispatcher) SymlinkMetadata(ctx context.Context, p Path) (Metadata, error) {
	resp, err := d.dispatch(ctx, opLstat, p)
	if err != nil {
		return Metadata{}, err
	}
	if resp.err != nil {
		return Metadata{}, &QueryError{Op: opLstat.String(), Path: string(p), Err: resp.err}
	}
	return newMetadata(resp.info), nil
}

// Exists reports whether p points at an existing entity. All failure causes,
// including permission errors and broken symbolic links, coerce to false.
func (d *Dispatcher) Exists(ctx context.Context, p Path) bool {
	_, err := d.Metadata(ctx, p)
	return err == nil
}

// MetadataAll queries metadata for every path concurrently, returning
// results in input order. The first failing query aborts the batch.
func (d *Dispatcher) MetadataAll(ctx context.Context, paths []Path) ([]Metadata, error) {
	batch := pool.NewWithResults[Metadata]().WithErrors().WithContext(ctx)
	for _, p := range paths {
		batch.Go(func(ctx context.Context) (Metadata, error) {
			return d.Metadata(ctx, p)
		})
	}
	return batch.Wait()
}

var (
	defaultDispatcher *Dispatcher
	defaultOnce       sync.Once
)

// Default returns the process-wide dispatcher backing the query methods on
// Path, lazily constructed from DefaultDispatcherOptions.
func Default() *Dispatcher {
	defaultOnce.Do(func() {
		defaultDispatcher = NewDispatcher(DefaultDispatcherOptions())
	})
	return defaultDispatcher
}
