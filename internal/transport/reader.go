// Package transport implements the append-only, line-delimited file
// channel at the core's external boundary: a tailing reader for the
// inbound peer file and a simple appending writer for the outbound
// one (spec.md §6).
//
// Grounded on ek-roj/roj-node-go/transport/udp.go's
// background-receive-loop-into-channel shape, replacing the UDP
// socket with an *os.File plus bufio.Reader, and waking on writes via
// github.com/fsnotify/fsnotify (declared dependency of
// daoran-rdk/go.mod) instead of busy-polling for new lines.
package transport

import (
	"bufio"
	"io"
	"log"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
)

// pollFallback bounds how long the reader ever blocks before retrying
// a read on its own, in case the fsnotify watch is missed (e.g. the
// write landed between Watcher.Add and the first Events read).
const pollFallback = 250 * time.Millisecond

// PeerReader tails an append-only file, reading on past EOF from the
// same open file as new data is appended, and emits each newly
// available line on Lines(). The file is not re-opened, so truncation
// or rotation is not detected. It never closes the underlying file on
// its own; call Close when the process shuts down.
type PeerReader struct {
	path    string
	lines   chan string
	watcher *fsnotify.Watcher
	closed  chan struct{}
}

// NewPeerReader starts tailing path in a background goroutine. The
// file need not exist yet; it is created empty if missing so the
// watcher always has something to attach to.
func NewPeerReader(path string) (*PeerReader, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0o644)
	if err != nil {
		return nil, err
	}
	f.Close()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, err
	}

	r := &PeerReader{
		path:    path,
		lines:   make(chan string, 64),
		watcher: watcher,
		closed:  make(chan struct{}),
	}
	go r.run()
	return r, nil
}

// Lines returns the channel of newly read lines (spec.md §4.7:
// wrapped by the run loop as DistantInput(text)).
func (r *PeerReader) Lines() <-chan string { return r.lines }

// Close stops tailing and releases the watcher.
func (r *PeerReader) Close() {
	close(r.closed)
	r.watcher.Close()
}

func (r *PeerReader) run() {
	defer close(r.lines)

	f, err := os.Open(r.path)
	if err != nil {
		log.Printf("[ERROR] transport: opening peer file %s: %v", r.path, err)
		return
	}
	defer f.Close()
	reader := bufio.NewReader(f)

	ticker := time.NewTicker(pollFallback)
	defer ticker.Stop()

	// pending accumulates a line fragment left over from a ReadString
	// that hit EOF mid-line; it's prepended to whatever completes the
	// line on a later wake, so a line written across two appends isn't
	// corrupted (spec.md §4.7 "re-opening on EOF by reseating the
	// reader").
	var pending []byte

	for {
		for {
			line, err := reader.ReadString('\n')
			if len(line) > 0 {
				pending = append(pending, line...)
			}
			if err == nil {
				r.emit(string(pending[:len(pending)-1]))
				pending = pending[:0]
				continue
			}
			if err == io.EOF {
				// Partial line at EOF: pending holds it for the next wake.
				break
			}
			log.Printf("[WARN] transport: reading peer file %s: %v", r.path, err)
			break
		}

		select {
		case <-r.closed:
			return
		case _, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			// Any watcher event: read on from the current offset.
			continue
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[WARN] transport: watcher error on %s: %v", r.path, err)
		case <-ticker.C:
			// Fallback poll in case the write raced the watch.
		}
	}
}

func (r *PeerReader) emit(line string) {
	select {
	case r.lines <- line:
	case <-r.closed:
	}
}
