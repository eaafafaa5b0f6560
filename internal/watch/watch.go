// Package watch reports debounced changes of a set of files.
package watch

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce collapses bursts of writes into one notification.
const DefaultDebounce = 100 * time.Millisecond

// FileWatcher watches files through their parent directories so that
// editors replacing a file by rename are still seen.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	onChange func(string)
	debounce time.Duration
	log      zerolog.Logger

	mu     sync.Mutex
	files  map[string]bool
	dirs   map[string]int
	timers map[string]*time.Timer
	done   chan struct{}
}

// New starts a watcher calling onChange with the absolute path of a changed
// file. onChange runs on a timer goroutine.
func New(onChange func(string), debounce time.Duration, log zerolog.Logger) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw := &FileWatcher{
		watcher:  w,
		onChange: onChange,
		debounce: debounce,
		log:      log,
		files:    make(map[string]bool),
		dirs:     make(map[string]int),
		timers:   make(map[string]*time.Timer),
		done:     make(chan struct{}),
	}

	go fw.watch()
	return fw, nil
}

// Add starts watching path. The file need not exist yet.
func (fw *FileWatcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.files[abs] {
		return nil
	}

	dir := filepath.Dir(abs)
	if fw.dirs[dir] == 0 {
		if err := fw.watcher.Add(dir); err != nil {
			return err
		}
	}
	fw.dirs[dir]++
	fw.files[abs] = true
	return nil
}

// Remove stops watching path.
func (fw *FileWatcher) Remove(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if !fw.files[abs] {
		return nil
	}
	delete(fw.files, abs)

	dir := filepath.Dir(abs)
	fw.dirs[dir]--
	if fw.dirs[dir] == 0 {
		delete(fw.dirs, dir)
		return fw.watcher.Remove(dir)
	}
	return nil
}

func (fw *FileWatcher) watch() {
	for {
		select {
		case ev, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			fw.schedule(filepath.Clean(ev.Name))

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.log.Warn().Err(err).Msg("file watcher error")

		case <-fw.done:
			return
		}
	}
}

func (fw *FileWatcher) schedule(name string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if !fw.files[name] {
		return
	}
	if t, ok := fw.timers[name]; ok {
		t.Stop()
	}
	fw.timers[name] = time.AfterFunc(fw.debounce, func() {
		fw.mu.Lock()
		delete(fw.timers, name)
		watching := fw.files[name]
		fw.mu.Unlock()

		if watching && fw.onChange != nil {
			fw.onChange(name)
		}
	})
}

// Close stops the watcher.
func (fw *FileWatcher) Close() error {
	close(fw.done)

	fw.mu.Lock()
	for _, t := range fw.timers {
		t.Stop()
	}
	fw.mu.Unlock()

	return fw.watcher.Close()
}
