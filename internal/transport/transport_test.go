package transport

import (
	"path/filepath"
	"testing"
	"time"
)

func TestWriterThenReaderTailsNewLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "peer.jsonl")

	r, err := NewPeerReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	w, err := NewWriter(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.WriteLine([]byte("first")); err != nil {
		t.Fatal(err)
	}

	select {
	case line, ok := <-r.Lines():
		if !ok {
			t.Fatal("reader channel closed unexpectedly")
		}
		if line != "first" {
			t.Fatalf("got %q, want %q", line, "first")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the tailed line")
	}

	if err := w.WriteLine([]byte("second")); err != nil {
		t.Fatal(err)
	}

	select {
	case line := <-r.Lines():
		if line != "second" {
			t.Fatalf("got %q, want %q", line, "second")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the second tailed line")
	}
}
