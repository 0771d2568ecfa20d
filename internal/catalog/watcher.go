package catalog

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/martinsantos/cannaval-sub000/internal/game"
)

// Update is one reload attempt. Err is set when the edited file no longer
// builds a valid catalog; the caller should keep its previous catalog.
type Update struct {
	Catalog *game.Catalog
	Err     error
}

// Watcher reloads the catalog file whenever it is written or replaced.
type Watcher struct {
	Path    string
	Updates <-chan Update

	updates chan Update
	done    chan struct{}
	watcher *fsnotify.Watcher
}

func NewWatcher(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ch := make(chan Update, 4)
	return &Watcher{
		Path:    path,
		Updates: ch,
		updates: ch,
		done:    make(chan struct{}),
		watcher: fw,
	}, nil
}

// Start watches the file's directory, since editors often save by renaming
// a temp file over the original.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.Path)); err != nil {
		return err
	}
	go w.loop()
	return nil
}

func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done
	close(w.updates)
}

func (w *Watcher) loop() {
	defer close(w.done)

	const debounce = 100 * time.Millisecond
	var pending time.Time
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	target := filepath.Clean(w.Path)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case now := <-ticker.C:
			if pending.IsZero() || now.Sub(pending) < debounce {
				continue
			}
			pending = time.Time{}
			c, err := Load(w.Path)
			select {
			case w.updates <- Update{Catalog: c, Err: err}:
			default:
				// Reader is behind; it will pick up the next write.
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}
