package mirror

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ChangedHandler receives the file content after an outside edit.
type ChangedHandler func(text string)

// Bridge keeps a file on disk in step with the description panel.
// Write puts the current description there; when another program
// saves the file, the watcher hands the new text to onChange.
type Bridge struct {
	path     string
	watcher  *fsnotify.Watcher
	onChange ChangedHandler

	mu   sync.Mutex
	last string // content we wrote or already reported
}

// New creates the mirror file's directory and starts watching it.
func New(path string, onChange ChangedHandler) (*Bridge, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("mirror path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return nil, fmt.Errorf("create mirror dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory so editors that replace the file are still seen.
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(absPath), err)
	}

	b := &Bridge{
		path:     absPath,
		watcher:  watcher,
		onChange: onChange,
	}

	go b.watchLoop()

	return b, nil
}

// Path returns the absolute path of the mirror file.
func (b *Bridge) Path() string { return b.path }

// Write replaces the mirror file content. The resulting file event is not
// reported back through onChange.
func (b *Bridge) Write(text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := os.WriteFile(b.path, []byte(text), 0644); err != nil {
		return fmt.Errorf("write mirror: %w", err)
	}
	b.last = text
	return nil
}

// Close stops the watcher.
func (b *Bridge) Close() error {
	return b.watcher.Close()
}

func (b *Bridge) watchLoop() {
	for {
		select {
		case event, ok := <-b.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			absPath, _ := filepath.Abs(event.Name)
			if absPath != b.path {
				continue
			}
			b.reload()
		case err, ok := <-b.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[mirror] watcher error: %v", err)
		}
	}
}

func (b *Bridge) reload() {
	// Read under the lock so a Write in progress is never seen half done.
	b.mu.Lock()
	content, err := os.ReadFile(b.path)
	if err != nil {
		b.mu.Unlock()
		log.Printf("[mirror] read file %s: %v", b.path, err)
		return
	}
	text := string(content)
	if text == b.last {
		b.mu.Unlock()
		return
	}
	b.last = text
	b.mu.Unlock()

	if b.onChange != nil {
		b.onChange(text)
	}
}
