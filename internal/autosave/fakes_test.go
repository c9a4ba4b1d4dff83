package autosave

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"
)

type fakeDocument struct {
	mu          sync.Mutex
	snapshot    string
	snapshotErr error
	shapes      []string
	image       []byte
	renderErr   error
	renderPanic bool
	renders     int
	lastOpts    RenderOptions
}

func (d *fakeDocument) Snapshot() (json.RawMessage, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.snapshotErr != nil {
		return nil, d.snapshotErr
	}
	return json.RawMessage(d.snapshot), nil
}

func (d *fakeDocument) ShapeIDs() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shapes
}

func (d *fakeDocument) RenderImage(_ context.Context, _ []string, opts RenderOptions) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.renders++
	d.lastOpts = opts
	if d.renderPanic {
		panic("renderer crashed")
	}
	return d.image, d.renderErr
}

func (d *fakeDocument) setSnapshot(s string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.snapshot = s
}

type fakeUploader struct {
	mu    sync.Mutex
	url   string
	err   error
	calls int
}

func (u *fakeUploader) UploadImage(_ context.Context, _ []byte) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.calls++
	return u.url, u.err
}

type savedBoard struct {
	snapshot string
	url      *string
	at       time.Time
}

type fakeWriter struct {
	mu    sync.Mutex
	saves []savedBoard
	err   error
	// block, when set, holds every SaveBoard call until it is closed
	block chan struct{}
	// entered receives a value when a SaveBoard call starts
	entered chan struct{}
}

func (w *fakeWriter) SaveBoard(_ context.Context, snapshot json.RawMessage, url *string) error {
	if w.entered != nil {
		w.entered <- struct{}{}
	}
	if w.block != nil {
		<-w.block
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.saves = append(w.saves, savedBoard{snapshot: string(snapshot), url: url, at: time.Now()})
	return w.err
}

func (w *fakeWriter) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.saves)
}

func (w *fakeWriter) last() savedBoard {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.saves[len(w.saves)-1]
}

func (w *fakeWriter) setErr(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.err = err
}

var errBoom = errors.New("boom")

type statusRecorder struct {
	mu       sync.Mutex
	statuses []Status
}

func (r *statusRecorder) record(s Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, s)
}

func (r *statusRecorder) all() []Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Status(nil), r.statuses...)
}
