package scheduler

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// FileWatcher reports whether a file changed since the last check, by
// modification time and size.
type FileWatcher struct {
	Path string

	modTime time.Time
	size    int64
	seen    bool
}

// Changed returns the file's contents when it differs from the previous
// call. The first successful call always reports a change.
func (w *FileWatcher) Changed() ([]byte, bool, error) {
	fi, err := os.Stat(w.Path)
	if err != nil {
		return nil, false, err
	}
	if w.seen && fi.ModTime().Equal(w.modTime) && fi.Size() == w.size {
		return nil, false, nil
	}
	b, err := os.ReadFile(w.Path)
	if err != nil {
		return nil, false, err
	}
	w.modTime, w.size, w.seen = fi.ModTime(), fi.Size(), true
	return b, true, nil
}

// WatchFile calls onChange with the file's contents every time it changes.
func WatchFile(ctx context.Context, w *FileWatcher, interval time.Duration, logger *slog.Logger, onChange func([]byte) error) {
	Every(ctx, interval, "watch:"+w.Path, logger, func(ctx context.Context) error {
		b, changed, err := w.Changed()
		if err != nil || !changed {
			return err
		}
		return onChange(b)
	})
}
