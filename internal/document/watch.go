package document

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch calls onEdit whenever the document file changes on disk, until ctx
// is done. The parent directory is watched so editors that save by rename
// are seen too.
func (f *File) Watch(ctx context.Context, onEdit func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch document: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(f.path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch document: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if f.changed() {
				onEdit()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Println(err, "Error watching document")
		}
	}
}
