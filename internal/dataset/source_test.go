package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSourcePrefersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stores.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	src := NewSource(NewLoader(time.Second, ""), "http://127.0.0.1:1/unreachable.csv", path)
	tbl, err := src.FetchTable(context.Background())
	if err != nil {
		t.Fatalf("FetchTable() error = %v", err)
	}
	if tbl.Source() != path {
		t.Errorf("Source() = %q, want %q", tbl.Source(), path)
	}
}

func TestSourceUnconfigured(t *testing.T) {
	src := NewSource(NewLoader(time.Second, ""), "", "")
	if _, err := src.FetchTable(context.Background()); !errors.Is(err, ErrNoSource) {
		t.Errorf("expected ErrNoSource, got %v", err)
	}
}
