package trigger

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/cliprelay/internal/core/domain"
	"github.com/custodia-labs/cliprelay/internal/core/ports/driven"
	"github.com/custodia-labs/cliprelay/internal/logger"
)

// Spool file extensions.
const (
	// ExtPacked holds a packed item, as produced by the item packer.
	ExtPacked = ".cbor"

	// ExtJSON holds a JSON object mapping each MIME type to base64 data.
	ExtJSON = ".json"
)

// SpoolWatcher fires for every item file dropped into a directory.
// Files are removed once read. Producers should write to a temporary
// name and rename into place; names starting with "." are ignored.
type SpoolWatcher struct {
	dir    string
	packer driven.ItemPacker
	sink   Sink
}

// NewSpoolWatcher creates a watcher for dir.
func NewSpoolWatcher(dir string, packer driven.ItemPacker, sink Sink) *SpoolWatcher {
	return &SpoolWatcher{dir: dir, packer: packer, sink: sink}
}

// Run drains files already present, then watches for new ones until ctx
// is cancelled.
func (w *SpoolWatcher) Run(ctx context.Context) error {
	if err := os.MkdirAll(w.dir, 0700); err != nil {
		return fmt.Errorf("creating spool directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	logger.Debug("trigger: watching spool directory %s", w.dir)

	if err := w.Drain(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("trigger: spool watcher: %v", err)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) {
				w.handle(event.Name)
			}
		}
	}
}

// Drain processes every spool file currently in the directory, oldest
// name first.
func (w *SpoolWatcher) Drain() error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("reading spool directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		w.handle(filepath.Join(w.dir, name))
	}
	return nil
}

// handle reads, removes and fires one spool file. Unreadable files are
// removed too, so a bad file cannot block the spool.
func (w *SpoolWatcher) handle(path string) {
	name := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(name))
	if strings.HasPrefix(name, ".") || (ext != ExtPacked && ext != ExtJSON) {
		return
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return // Already handled
	}
	if err != nil {
		logger.Warn("trigger: reading %s: %v", name, err)
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warn("trigger: removing %s: %v", name, err)
	}

	item, err := w.decode(ext, data)
	if err != nil {
		logger.Error("trigger: discarding %s: %v", name, err)
		return
	}

	logger.Debug("trigger: spool item %s (%d formats)", name, item.Len())
	w.sink(item)
}

func (w *SpoolWatcher) decode(ext string, data []byte) (*domain.ClipboardItem, error) {
	if ext == ExtPacked {
		if w.packer == nil {
			return nil, fmt.Errorf("%w: no packer configured", domain.ErrInvalidInput)
		}
		return w.packer.Unpack(data)
	}
	return DecodeJSONItem(data)
}

// DecodeJSONItem parses {"mime/type": "<base64>", ...} into an item.
func DecodeJSONItem(data []byte) (*domain.ClipboardItem, error) {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	formats := make(map[domain.Format][]byte, len(raw))
	for mime, encoded := range raw {
		b, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("%w: format %q: %v", domain.ErrInvalidInput, mime, err)
		}
		formats[domain.Format(mime)] = b
	}
	return domain.NewClipboardItem(formats), nil
}
