package spotlight

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce drops repeated events for the same file within this window;
// editors often write a file several times per save.
const watchDebounce = 100 * time.Millisecond

// ConfigWatcher reports changes to YAML config files. It runs fsnotify on
// its own goroutine and only delivers paths over Events, so the game loop
// can drain it from Update without locking.
type ConfigWatcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewConfigWatcher watches the given files or directories. Watching a file
// watches its directory and filters to that file's events, which survives
// editors that save by rename.
func NewConfigWatcher(paths ...string) (*ConfigWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("spotlight: watch: %w", err)
	}

	filter := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, p := range paths {
		clean := filepath.Clean(p)
		if isConfigFile(clean) {
			filter[clean] = true
			dirs[filepath.Dir(clean)] = true
		} else {
			dirs[clean] = true
		}
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("spotlight: watch %s: %w", dir, err)
		}
	}

	cw := &ConfigWatcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go cw.run(filter)
	return cw, nil
}

// Close stops the watcher. Events and Errors are closed once the watching
// goroutine has exited. Safe to call more than once.
func (cw *ConfigWatcher) Close() error {
	var err error
	cw.once.Do(func() {
		close(cw.closeCh)
		err = cw.watcher.Close()
		<-cw.done
		close(cw.Events)
		close(cw.Errors)
	})
	return err
}

// Poll returns the next changed path without blocking.
func (cw *ConfigWatcher) Poll() (string, bool) {
	select {
	case p, ok := <-cw.Events:
		return p, ok
	default:
		return "", false
	}
}

func (cw *ConfigWatcher) run(filter map[string]bool) {
	defer close(cw.done)
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name := filepath.Clean(event.Name)
			if !isConfigFile(name) || (len(filter) > 0 && !filter[name]) {
				continue
			}
			now := time.Now()
			if t, ok := last[name]; ok && now.Sub(t) < watchDebounce {
				continue
			}
			last[name] = now
			select {
			case cw.Events <- name:
			case <-cw.closeCh:
				return
			}
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			select {
			case cw.Errors <- err:
			default:
				// Errors is buffered by one; drop while the loop is behind.
			}
		case <-cw.closeCh:
			return
		}
	}
}

func isConfigFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
