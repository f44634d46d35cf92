package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestPollAll_DetectsGrowth(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "session.jsonl")
	os.WriteFile(file, []byte(`{"line":1}`), 0644)

	w := New(dir, time.Hour, func() {})
	w.snapshotSizes()

	if w.pollAll() {
		t.Error("unchanged tree should not report a change")
	}

	os.WriteFile(file, []byte("{\"line\":1}\n{\"line\":2}\n"), 0644)
	if !w.pollAll() {
		t.Error("grown file should report a change")
	}
}

func TestPollAll_DetectsNewFile(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, time.Hour, func() {})
	w.snapshotSizes()

	os.WriteFile(filepath.Join(dir, "new.jsonl"), []byte(`{"line":1}`), 0644)
	if !w.pollAll() {
		t.Error("new file should report a change")
	}
}

func TestPollAll_IgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, time.Hour, func() {})
	w.snapshotSizes()

	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0644)
	if w.pollAll() {
		t.Error("non-jsonl files should be ignored")
	}
}

func TestStart_PollingFiresCallback(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "session.jsonl")
	os.WriteFile(file, []byte(`{"line":1}`), 0644)

	var fired atomic.Int32
	w := New(dir, 50*time.Millisecond, func() { fired.Add(1) })
	w.Start()
	defer w.Stop()

	time.Sleep(100 * time.Millisecond)
	os.WriteFile(file, []byte("{\"line\":1}\n{\"line\":2}\n"), 0644)

	deadline := time.After(2 * time.Second)
	for fired.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("expected the change callback to fire")
		case <-time.After(20 * time.Millisecond):
		}
	}
}
