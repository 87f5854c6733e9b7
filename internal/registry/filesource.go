package registry

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// markerFile is the on-disk marker payload. The marker ID is the file name,
// so re-creating a file never re-initializes its widget.
type markerFile struct {
	Kind   Kind            `json:"kind"`
	Config json.RawMessage `json:"config"`
}

// FileSource reads widget markers from a directory of *.json files and
// watches it for files added later. It is the daemon's stand-in for document
// scanning; library embeddings call Registry.Sync directly instead.
type FileSource struct {
	dir    string
	logger *slog.Logger
}

// NewFileSource creates a marker source over the given directory.
func NewFileSource(dir string, logger *slog.Logger) *FileSource {
	return &FileSource{dir: dir, logger: logger}
}

// Snapshot loads every marker file currently in the directory.
func (s *FileSource) Snapshot(ctx context.Context) ([]Marker, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var markers []Marker
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		markers = append(markers, s.load(ctx, filepath.Join(s.dir, entry.Name())))
	}
	return markers, nil
}

// Watch streams markers for files created or rewritten after the snapshot.
// The channel closes when the context is cancelled.
func (s *FileSource) Watch(ctx context.Context) (<-chan Marker, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return nil, err
	}

	out := make(chan Marker)
	go func() {
		defer close(out)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
					continue
				}
				if !strings.HasSuffix(event.Name, ".json") {
					continue
				}
				select {
				case out <- s.load(ctx, event.Name):
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.WarnContext(ctx, "marker watch error", slog.String("error", err.Error()))
			}
		}
	}()
	return out, nil
}

// load reads one marker file. Unreadable or malformed files still produce a
// marker with an empty payload; the resulting widget is inert rather than
// the directory scan failing.
func (s *FileSource) load(ctx context.Context, path string) Marker {
	id := strings.TrimSuffix(filepath.Base(path), ".json")

	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.WarnContext(ctx, "marker file unreadable",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return Marker{ID: id}
	}

	var file markerFile
	if err := json.Unmarshal(data, &file); err != nil {
		s.logger.WarnContext(ctx, "marker file malformed",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return Marker{ID: id}
	}
	return Marker{ID: id, Kind: file.Kind, Config: file.Config}
}
