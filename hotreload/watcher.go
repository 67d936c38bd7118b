// Package hotreload watches a directory tree and reports changes in
// debounced batches.
package hotreload

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

var ErrClosed = errors.New("watcher closed")

type Op uint32

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

func (op Op) String() string {
	var names []string

	for _, flag := range []struct {
		op   Op
		name string
	}{
		{OpCreate, "create"},
		{OpWrite, "write"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{OpChmod, "chmod"},
	} {
		if op&flag.op != 0 {
			names = append(names, flag.name)
		}
	}

	if len(names) == 0 {
		return "none"
	}

	return strings.Join(names, "|")
}

func opOf(op fsnotify.Op) Op {
	var result Op

	if op.Has(fsnotify.Create) {
		result |= OpCreate
	}

	if op.Has(fsnotify.Write) {
		result |= OpWrite
	}

	if op.Has(fsnotify.Remove) {
		result |= OpRemove
	}

	if op.Has(fsnotify.Rename) {
		result |= OpRename
	}

	if op.Has(fsnotify.Chmod) {
		result |= OpChmod
	}

	return result
}

// Event is a change of a single path. Ops of multiple changes to the
// same path within one batch are merged.
type Event struct {
	Path string
	Op   Op
}

// Batch holds everything that happened during one debounce window.
type Batch struct {
	Events []Event
	Errors []error
}

func (b *Batch) IsEmpty() bool {
	return len(b.Events) == 0 && len(b.Errors) == 0
}

func (b *Batch) add(path string, op Op) {
	for idx := range b.Events {
		if b.Events[idx].Path == path {
			b.Events[idx].Op |= op
			return
		}
	}

	b.Events = append(b.Events, Event{Path: path, Op: op})
}

type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	out      chan<- Batch

	done    chan struct{}
	stopped chan struct{}

	closeOnce sync.Once
}

// Watch starts watching dir and all of its subdirectories. A batch is sent
// to out once no further change happened for the debounce duration. out is
// closed when the watcher stops.
func Watch(dir string, debounce time.Duration, out chan<- Batch) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		fs:       fsw,
		debounce: debounce,
		out:      out,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}

	if err := w.addRecursive(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %q: %w", dir, err)
	}

	slog.Info("Watching for changes", slog.String("dir", dir), slog.Duration("debounce", debounce))

	go w.loop()

	return w, nil
}

// Close stops the watcher and waits until the output channel was closed.
func (w *Watcher) Close() error {
	err := ErrClosed

	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fs.Close()
		<-w.stopped
	})

	return err
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !entry.IsDir() {
			return nil
		}

		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("add %q: %w", path, err)
		}

		return nil
	})
}

func (w *Watcher) loop() {
	defer close(w.stopped)
	defer close(w.out)

	var pending Batch

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	defer timer.Stop()

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}

			op := opOf(ev.Op)

			// directories created later are watched as well
			if op&OpCreate != 0 && isDir(ev.Name) {
				if err := w.addRecursive(ev.Name); err != nil {
					pending.Errors = append(pending.Errors, err)
				}
			}

			pending.add(ev.Name, op)
			timer.Reset(w.debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}

			pending.Errors = append(pending.Errors, err)
			timer.Reset(w.debounce)

		case <-timer.C:
			if pending.IsEmpty() {
				continue
			}

			select {
			case w.out <- pending:
			case <-w.done:
				return
			}

			pending = Batch{}
		}
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
