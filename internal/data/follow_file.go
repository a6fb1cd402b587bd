package data

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/andyrewlee/vport/internal/logging"
	"github.com/andyrewlee/vport/internal/safego"
)

// FollowFile tails a file and delivers appended lines to a sink. It
// watches the parent directory rather than the file itself because many
// writers rotate by rename, which drops an inode watch.
type FollowFile struct {
	mu sync.Mutex

	path      string
	watcher   *fsnotify.Watcher
	sink      func(lines []string)
	offset    int64
	partial   string
	closeOnce sync.Once
	done      chan struct{}
}

// NewFollowFile creates a follower for path. Existing content is
// delivered on Start before any appended lines.
func NewFollowFile(path string, sink func(lines []string)) (*FollowFile, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &FollowFile{
		path:    path,
		watcher: watcher,
		sink:    sink,
		done:    make(chan struct{}),
	}, nil
}

// Start begins tailing. It returns once the watch is established; reads
// happen on a background goroutine.
func (f *FollowFile) Start() error {
	dir := parentDir(f.path)
	if err := f.watcher.Add(dir); err != nil {
		return err
	}

	f.drain()

	safego.Go("follow-file", func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case event, ok := <-f.watcher.Events:
				if !ok {
					return
				}
				if event.Name != f.path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					f.drain()
				}
			case err, ok := <-f.watcher.Errors:
				if !ok {
					return
				}
				logging.Warn("file watch error for %s: %v", f.path, err)
			case <-ticker.C:
				// Poll as a fallback; some filesystems coalesce or
				// drop write events.
				f.drain()
			case <-f.done:
				return
			}
		}
	})
	return nil
}

// Close stops tailing and releases the watch.
func (f *FollowFile) Close() error {
	var err error
	f.closeOnce.Do(func() {
		close(f.done)
		err = f.watcher.Close()
	})
	return err
}

// drain reads everything past the current offset and delivers complete
// lines to the sink.
func (f *FollowFile) drain() {
	f.mu.Lock()
	defer f.mu.Unlock()

	file, err := os.Open(f.path)
	if err != nil {
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return
	}
	if info.Size() < f.offset {
		// Truncated or rotated in place; start over.
		f.offset = 0
		f.partial = ""
	}
	if _, err := file.Seek(f.offset, io.SeekStart); err != nil {
		return
	}

	var lines []string
	reader := bufio.NewReader(file)
	for {
		chunk, err := reader.ReadString('\n')
		f.offset += int64(len(chunk))
		if err != nil {
			f.partial += chunk
			break
		}
		line := f.partial + strings.TrimRight(chunk, "\r\n")
		f.partial = ""
		lines = append(lines, line)
	}

	if len(lines) > 0 && f.sink != nil {
		f.sink(lines)
	}
}

func parentDir(path string) string {
	return filepath.Dir(path)
}
