package sensor

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

const reloadDebounce = 100 * time.Millisecond

// FileSource reports the reading stored in a YAML file and reloads it when
// the file changes, so a script or another process can tilt the scene by
// rewriting one small file:
//
//	x: 0.3
//	y: 0.95
//	z: 0
type FileSource struct {
	path    string
	watcher *fsnotify.Watcher
	closeCh chan struct{}
	once    sync.Once
	done    sync.WaitGroup

	mu      sync.RWMutex
	current Reading
	reloads int
}

func NewFileSource(path string) (*FileSource, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	r, err := readReadingFile(abs)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors replace files by rename, which drops a
	// watch placed on the file itself.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	fs := &FileSource{
		path:    abs,
		watcher: w,
		closeCh: make(chan struct{}),
		current: r,
	}
	fs.done.Add(1)
	go fs.run()
	return fs, nil
}

func (f *FileSource) Read(time.Duration) (Reading, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.current, nil
}

// Reloads returns how many times the file has been re-read since start.
func (f *FileSource) Reloads() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.reloads
}

func (f *FileSource) Close() error {
	var err error
	f.once.Do(func() {
		close(f.closeCh)
		err = f.watcher.Close()
		f.done.Wait()
	})
	return err
}

func (f *FileSource) run() {
	defer f.done.Done()

	// Reload once writes have been quiet for reloadDebounce; a single save
	// often arrives as truncate, write, write.
	var pending *time.Timer
	var fire <-chan time.Time
	defer func() {
		if pending != nil {
			pending.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != f.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if pending != nil {
				pending.Stop()
			}
			pending = time.NewTimer(reloadDebounce)
			fire = pending.C
		case <-fire:
			fire = nil
			f.reload()
		case err, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("sensor: watch %s: %v", f.path, err)
		case <-f.closeCh:
			return
		}
	}
}

func (f *FileSource) reload() {
	r, err := readReadingFile(f.path)
	if err != nil {
		// keep the last good reading
		log.Printf("sensor: reload %s: %v", f.path, err)
		return
	}
	f.mu.Lock()
	f.current = r
	f.reloads++
	f.mu.Unlock()
}

func readReadingFile(path string) (Reading, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Reading{}, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Reading{}, fmt.Errorf("reading file %s is empty", path)
	}
	var r Reading
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Reading{}, fmt.Errorf("parse reading %s: %w", path, err)
	}
	return r, nil
}

// WriteReadingFile stores r in the format FileSource reads.
func WriteReadingFile(path string, r Reading) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
