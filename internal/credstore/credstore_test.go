package credstore

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestFile(t *testing.T) *File {
	t.Helper()
	store, err := NewFile(filepath.Join(t.TempDir(), "credentials.json"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}

func TestFileStore_ReadAbsentKey(t *testing.T) {
	store := newTestFile(t)

	if _, ok := store.Read(KeyToken); ok {
		t.Error("expected absent key to read as not ok")
	}
}

func TestFileStore_WriteReadRoundTrip(t *testing.T) {
	store := newTestFile(t)

	if err := store.Write(KeyToken, "abc123"); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	value, ok := store.Read(KeyToken)
	if !ok {
		t.Fatal("expected key to be present")
	}
	if value != "abc123" {
		t.Errorf("expected abc123, got %q", value)
	}
}

func TestFileStore_LaterWriteWins(t *testing.T) {
	store := newTestFile(t)

	if err := store.Write(KeyToken, "first"); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := store.Write(KeyToken, "second"); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	value, _ := store.Read(KeyToken)
	if value != "second" {
		t.Errorf("expected second, got %q", value)
	}
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")

	first, err := NewFile(path)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if err := first.Write(KeyToken, "persisted"); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	// Simulated reload: a fresh store over the same file
	second, err := NewFile(path)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	value, ok := second.Read(KeyToken)
	if !ok || value != "persisted" {
		t.Errorf("expected persisted value after reopen, got %q (ok=%v)", value, ok)
	}
}

func TestFileStore_CorruptFileReadsAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	store, err := NewFile(path)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	if _, ok := store.Read(KeyToken); ok {
		t.Error("expected corrupt store to read as absent")
	}

	// A corrupt store must still accept new writes
	if err := store.Write(KeyToken, "fresh"); err != nil {
		t.Fatalf("write over corrupt file failed: %v", err)
	}
	if value, ok := store.Read(KeyToken); !ok || value != "fresh" {
		t.Errorf("expected fresh after rewrite, got %q (ok=%v)", value, ok)
	}
}

func TestFileStore_EraseIsIdempotent(t *testing.T) {
	store := newTestFile(t)

	if err := store.Write(KeyToken, "abc"); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := store.Erase(KeyToken); err != nil {
		t.Fatalf("first erase failed: %v", err)
	}
	if err := store.Erase(KeyToken); err != nil {
		t.Fatalf("second erase failed: %v", err)
	}
	if _, ok := store.Read(KeyToken); ok {
		t.Error("expected key to be gone after erase")
	}

	// Erasing a key that never existed is also fine
	if err := store.Erase("never-written"); err != nil {
		t.Fatalf("erase of absent key failed: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemory()

	if _, ok := store.Read(KeyToken); ok {
		t.Error("expected empty store to read as absent")
	}
	if err := store.Write(KeyToken, "v"); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if value, ok := store.Read(KeyToken); !ok || value != "v" {
		t.Errorf("expected v, got %q (ok=%v)", value, ok)
	}
	if err := store.Erase(KeyToken); err != nil {
		t.Fatalf("erase failed: %v", err)
	}
	if err := store.Erase(KeyToken); err != nil {
		t.Fatalf("second erase failed: %v", err)
	}
}
