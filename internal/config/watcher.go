package config

import (
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a Loader whenever a watched config file changes on disk,
// publishing the merged result to subscribers. Intended for a FileSource
// pointed at a live ops-editable file; a process with no such file simply
// never starts one.
type Watcher struct {
	loader   *Loader
	fsw      *fsnotify.Watcher
	mu       sync.RWMutex
	current  Config
	onChange func(Config)
}

// NewWatcher constructs a Watcher, performs an initial Load, and begins
// watching path for writes. Call Close to stop.
func NewWatcher(loader *Loader, path string, onChange func(Config)) (*Watcher, error) {
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(path); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{loader: loader, fsw: fsw, current: cfg, onChange: onChange}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := w.loader.Load()
			if err != nil {
				continue
			}
			w.mu.Lock()
			w.current = cfg
			w.mu.Unlock()
			if w.onChange != nil {
				w.onChange(cfg)
			}
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

// Current returns the most recently loaded configuration.
func (w *Watcher) Current() Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Close stops the underlying filesystem watch.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
