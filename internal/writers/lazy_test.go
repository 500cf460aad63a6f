package writers_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/XavierBriggs/fortuna/services/football-sim/internal/writers"
)

func TestLazyFile_CreatedOnFirstWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "box.json")
	w := writers.NewLazyFile(path)

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("file should not exist before a write, stat err = %v", err)
	}
	if w.Opened() {
		t.Error("Opened() should be false before a write")
	}

	if _, err := w.Write([]byte("first ")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := w.Write([]byte("second")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "first second" {
		t.Errorf("unexpected contents %q", data)
	}
}

func TestLazyFile_Truncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "box.json")
	if err := os.WriteFile(path, []byte("a much longer previous run"), 0644); err != nil {
		t.Fatal(err)
	}

	w := writers.NewLazyFile(path)
	w.Write([]byte("new"))
	w.Close()

	data, _ := os.ReadFile(path)
	if string(data) != "new" {
		t.Errorf("expected truncated file, got %q", data)
	}
}

func TestLazyWriteCloser_NoWriteNoOpen(t *testing.T) {
	calls := 0
	w := writers.NewLazyWriteCloser(func() (io.WriteCloser, error) {
		calls++
		return nil, errors.New("should not be called")
	})

	if err := w.Close(); err != nil {
		t.Errorf("Close without a write should succeed, got %v", err)
	}
	if calls != 0 {
		t.Errorf("init called %d times", calls)
	}
}

func TestLazyWriteCloser_InitError(t *testing.T) {
	w := writers.NewLazyWriteCloser(func() (io.WriteCloser, error) {
		return nil, errors.New("permission denied")
	})

	n, err := w.Write([]byte("x"))
	if err == nil || n != 0 {
		t.Errorf("expected init error, got n=%d err=%v", n, err)
	}
}
