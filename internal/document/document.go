// Package document is a file backed board document for the boardsync client.
//
// The snapshot lives in a JSON file written by the drawing tool. Rendering is
// delegated to the tool as well: it exports the board image next to the
// snapshot and RenderImage picks it up.
package document

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"freeform-backend/internal/autosave"
	"freeform-backend/internal/errs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

const shapePrefix = "shape:"

type File struct {
	path      string
	imagePath string

	mu sync.Mutex
	// last content seen on disk, used to tell user edits from our own writes
	last []byte
}

var _ autosave.Document = (*File)(nil)

// Open reads the current snapshot from path. A missing file is an empty
// board. imagePath may be empty when no renderer exports images.
func Open(path, imagePath string) (*File, error) {
	f := &File{path: path, imagePath: imagePath}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("open document: %w", err)
	}
	f.last = data
	return f, nil
}

func (f *File) Path() string { return f.path }

// Snapshot returns the document as stored on disk
func (f *File) Snapshot() (json.RawMessage, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return json.RawMessage(`{}`), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return json.RawMessage(`{}`), nil
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("document %s is not valid JSON", f.path)
	}
	return json.RawMessage(data), nil
}

// ShapeIDs lists the shape records of the document, sorted. Both a bare
// store and a store nested under "document" are understood.
func (f *File) ShapeIDs() []string {
	snapshot, err := f.Snapshot()
	if err != nil {
		return nil
	}

	var doc struct {
		Store    map[string]json.RawMessage `json:"store"`
		Document struct {
			Store map[string]json.RawMessage `json:"store"`
		} `json:"document"`
	}
	if err := json.Unmarshal(snapshot, &doc); err != nil {
		return nil
	}

	store := doc.Store
	if len(store) == 0 {
		store = doc.Document.Store
	}

	var ids []string
	for id := range store {
		if strings.HasPrefix(id, shapePrefix) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// RenderImage returns the image the drawing tool exported for the board
func (f *File) RenderImage(ctx context.Context, shapeIDs []string, opts autosave.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(shapeIDs) == 0 || f.imagePath == "" {
		return nil, errs.ErrNoImage
	}
	if opts.Format != "" && opts.Format != "png" {
		return nil, fmt.Errorf("unsupported image format %q", opts.Format)
	}

	data, err := os.ReadFile(f.imagePath)
	if os.IsNotExist(err) {
		return nil, errs.ErrNoImage
	}
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return data, nil
}

// Load replaces the document with a snapshot from the server. It is not
// reported as an edit by Watch.
func (f *File) Load(snapshot json.RawMessage) error {
	if !json.Valid(snapshot) {
		return fmt.Errorf("load document: snapshot is not valid JSON")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(f.path), "."+filepath.Base(f.path)+".*")
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(snapshot); err != nil {
		tmp.Close()
		return fmt.Errorf("load document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	// set before the rename so the watcher never sees unknown content
	f.last = append([]byte(nil), snapshot...)
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	return nil
}

// changed reports whether the file differs from the last content seen
func (f *File) changed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		return false
	}
	if bytes.Equal(data, f.last) {
		return false
	}
	f.last = data
	return true
}
