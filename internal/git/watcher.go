package git

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for ref updates to settle.
const DefaultDebounce = 300 * time.Millisecond

// ErrWatcherStarted is returned when Start is called twice.
var ErrWatcherStarted = errors.New("watcher already started")

type WatcherOption func(*Watcher)

func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithOnChange sets the callback run once per burst of ref changes. It runs
// on the watcher's own goroutine.
func WithOnChange(fn func()) WatcherOption {
	return func(w *Watcher) {
		w.onChange = fn
	}
}

func WithOnError(fn func(error)) WatcherOption {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// Watcher reports changes to HEAD and refs in a repository's .git directory.
type Watcher struct {
	gitDir   string
	debounce time.Duration
	onChange func()
	onError  func(error)

	mu      sync.Mutex
	fs      *fsnotify.Watcher
	timer   *time.Timer
	started bool
	done    chan struct{}
}

func NewWatcher(repoPath string, opts ...WatcherOption) (*Watcher, error) {
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, err
	}
	gitDir := filepath.Join(abs, ".git")
	info, err := os.Stat(gitDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: no .git directory in %s", ErrNotRepository, abs)
	}

	w := &Watcher{
		gitDir:   gitDir,
		debounce: DefaultDebounce,
		onChange: func() {},
		onError:  func(error) {},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return ErrWatcherStarted
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}

	if err := fsw.Add(w.gitDir); err != nil {
		fsw.Close()
		return fmt.Errorf("watch %s: %w", w.gitDir, err)
	}
	if err := w.addRefDirs(fsw, filepath.Join(w.gitDir, "refs")); err != nil {
		fsw.Close()
		return err
	}

	w.fs = fsw
	w.done = make(chan struct{})
	w.started = true
	go w.loop(fsw, w.done)
	return nil
}

func (w *Watcher) loop(fsw *fsnotify.Watcher, done <-chan struct{}) {
	for {
		select {
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Create) && w.underRefs(ev.Name) {
				// New namespaces such as refs/heads/feature/ need their own watch.
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addRefDirs(fsw, ev.Name); err != nil {
						w.onError(err)
					}
				}
			}
			if w.relevant(ev) {
				w.schedule()
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.onError(err)
		case <-done:
			return
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(ev.Name)
	if strings.HasSuffix(base, ".lock") {
		return false
	}
	switch base {
	case "HEAD", "ORIG_HEAD", "FETCH_HEAD", "packed-refs":
		return true
	}
	return w.underRefs(ev.Name)
}

func (w *Watcher) underRefs(name string) bool {
	rel, err := filepath.Rel(w.gitDir, name)
	return err == nil && strings.HasPrefix(rel, "refs"+string(filepath.Separator))
}

// addRefDirs watches root and every directory below it. fsnotify watches are
// not recursive, so nested ref names each need one.
func (w *Watcher) addRefDirs(fsw *fsnotify.Watcher, root string) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", root, err)
	}
	return nil
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.started {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.onChange)
}

func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.started {
		return nil
	}
	w.started = false
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.done)
	return w.fs.Close()
}
