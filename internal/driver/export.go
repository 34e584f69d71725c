package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"portast/internal/diag"
	"portast/internal/host"
	"portast/internal/lower"
	"portast/internal/observ"
	"portast/internal/options"
	"portast/internal/portable"
	"portast/internal/source"
	"portast/internal/trace"
)

// ExportOptions configures a batch of snapshot exports.
type ExportOptions struct {
	Options        options.Options
	Format         Format
	MaxDiagnostics int
	Jobs           int // <= 0 means GOMAXPROCS
	EnableTimings  bool
	Cache          *DiskCache
	Observer       PhaseObserver
}

// ExportResult is the outcome of one snapshot. Crate is nil when the
// snapshot could not be loaded or the output came from the cache.
type ExportResult struct {
	Path    string
	Crate   *portable.Crate
	Output  []byte
	Bag     *diag.Bag
	FileSet *source.FileSet
	Cached  bool
	Timing  *observ.Report
}

// ExportSnapshots exports every snapshot in paths. Snapshots are processed
// in parallel; each run is single-threaded and owns its exporter, diagnostic
// bag and file cache. Results keep the order of paths. The error is only set
// when ctx is cancelled: per-snapshot failures land in the result's bag.
func ExportSnapshots(ctx context.Context, paths []string, opts ExportOptions) ([]ExportResult, error) {
	results := make([]ExportResult, len(paths))
	if len(paths) == 0 {
		return results, nil
	}

	ctx, span := trace.Start(ctx, trace.ScopeDriver, "export")
	span.WithExtra("snapshots", fmt.Sprint(len(paths)))
	defer span.End("")

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			// Проверка отмены
			if err := gctx.Err(); err != nil {
				return err
			}
			// индекс i уникален для горутины, мьютекс не нужен
			results[i] = ExportSnapshot(gctx, path, opts)
			return nil
		})
	}
	return results, g.Wait()
}

// run is the state of one snapshot export.
type run struct {
	ctx   context.Context
	path  string
	opts  ExportOptions
	res   *ExportResult
	timer *observ.Timer
}

func (r *run) phase(name string, fn func() error) error {
	idx := -1
	if r.timer != nil {
		idx = r.timer.Begin(name)
	}
	if r.opts.Observer != nil {
		r.opts.Observer(PhaseEvent{Path: r.path, Name: name, Status: PhaseStart})
	}
	_, span := trace.Start(r.ctx, trace.ScopeBatch, name)
	start := time.Now()

	err := fn()

	note := ""
	if err != nil {
		note = "failed"
	}
	span.End(note)
	if r.timer != nil {
		r.timer.End(idx, note)
	}
	if r.opts.Observer != nil {
		r.opts.Observer(PhaseEvent{Path: r.path, Name: name, Status: PhaseEnd, Elapsed: time.Since(start), Failed: err != nil})
	}
	return err
}

// ExportSnapshot loads the snapshot at path, lowers it and encodes the
// result. It never fails: load and encode problems are reported in the bag.
func ExportSnapshot(ctx context.Context, path string, opts ExportOptions) ExportResult {
	res := ExportResult{
		Path:    path,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
		FileSet: source.NewFileSet(),
	}

	ctx, span := trace.Start(ctx, trace.ScopeBatch, "snapshot")
	span.WithExtra("path", path)

	r := &run{ctx: ctx, path: path, opts: opts, res: &res}
	if opts.EnableTimings {
		r.timer = observ.NewTimer()
	}
	r.export()

	if r.timer != nil {
		report := r.timer.Report()
		res.Timing = &report
		appendTimingDiagnostic(res.Bag, timingPayload{Path: path, TotalMS: report.TotalMS, Phases: report.Phases})
	}
	detail := "ok"
	switch {
	case res.Cached:
		detail = "cached"
	case res.Output == nil:
		detail = "failed"
	}
	span.End(detail)
	if opts.Observer != nil {
		opts.Observer(PhaseEvent{
			Path:   path,
			Name:   "snapshot",
			Status: PhaseDone,
			Failed: res.Output == nil,
			Cached: res.Cached,
		})
	}
	return res
}

func (r *run) export() {
	var (
		data []byte
		snap *host.Snapshot
		key  Digest
	)
	anchor := source.Span{Filename: source.LocalFile(r.path)}

	err := r.phase("decode", func() error {
		var err error
		// #nosec G304 -- path is given by the user
		if data, err = os.ReadFile(r.path); err != nil {
			return err
		}
		if r.opts.Cache != nil {
			key = snapshotKey(data, r.opts.Options, r.opts.Format)
			if r.restore(key) {
				return nil
			}
		}
		snap, err = host.ReadSnapshot(bytes.NewReader(data))
		return err
	})
	if err != nil {
		code := diag.IOLoadSnapshot
		if errors.Is(err, host.ErrSchema) {
			code = diag.IOSchemaVersion
		}
		r.res.Bag.Add(diag.NewError(code, anchor, "failed to load snapshot: "+err.Error()))
		return
	}
	if r.res.Cached {
		return
	}

	err = r.phase("export", func() error {
		x := lower.New(snap, lower.Config{
			Options:  &r.opts.Options,
			Reporter: diag.NewDedupReporter(diag.BagReporter{Bag: r.res.Bag}),
			Files:    r.res.FileSet,
		})
		crate, err := x.ExportCrate(r.ctx)
		r.res.Crate = crate
		return err
	})
	if err != nil {
		// only cancellation gets here; the partial crate is not written
		r.res.Bag.Add(diag.NewError(diag.ExpItemFailed, anchor, "export interrupted: "+err.Error()))
		return
	}

	err = r.phase("encode", func() error {
		var buf bytes.Buffer
		if err := Encode(&buf, r.res.Crate, r.opts.Format); err != nil {
			return err
		}
		r.res.Output = buf.Bytes()
		return nil
	})
	if err != nil {
		r.res.Bag.Add(diag.NewError(diag.IOWriteOutput, anchor, "failed to encode crate: "+err.Error()))
		return
	}

	if r.opts.Cache != nil {
		payload := &DiskPayload{
			Crate:       r.res.Crate.Name,
			Format:      r.opts.Format,
			Output:      r.res.Output,
			Diagnostics: r.res.Bag.Items(),
		}
		if err := r.opts.Cache.Put(key, payload); err != nil {
			trace.Point(trace.FromContext(r.ctx), trace.ScopeBatch, "cache_put", err.Error(), trace.CurrentSpan(r.ctx))
		}
	}
}

// restore fills the result from the cache entry at key.
func (r *run) restore(key Digest) bool {
	var payload DiskPayload
	ok, err := r.opts.Cache.Get(key, &payload)
	if err != nil || !ok || payload.Format != r.opts.Format {
		return false
	}
	r.res.Output = payload.Output
	r.res.Cached = true
	for _, d := range payload.Diagnostics {
		r.res.Bag.Add(d)
	}
	return true
}
