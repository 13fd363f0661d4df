package graphstore

import (
	"bytes"
	"context"
	"testing"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	s := NewLocalStorage(t.TempDir())
	ctx := context.Background()

	blob := []byte(`{"id":"g1","nodes":{},"edges":[]}`)
	if err := s.PutGraph(ctx, "g1", blob); err != nil {
		t.Fatalf("PutGraph() error: %v", err)
	}

	got, err := s.GetGraph(ctx, "g1")
	if err != nil {
		t.Fatalf("GetGraph() error: %v", err)
	}
	if !bytes.Equal(got, blob) {
		t.Errorf("GetGraph() = %s, want %s", got, blob)
	}
}

func TestLocalStorageMissingGraph(t *testing.T) {
	s := NewLocalStorage(t.TempDir())
	if _, err := s.GetGraph(context.Background(), "no_such_graph"); err == nil {
		t.Error("expected an error for a missing graph")
	}
}

func TestLocalStorageOverwrite(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(dir)
	ctx := context.Background()

	if err := s.PutGraph(ctx, "g1", []byte("v1")); err != nil {
		t.Fatal(err)
	}
	if err := s.PutGraph(ctx, "g1", []byte("v2")); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetGraph(ctx, "g1")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "v2" {
		t.Errorf("GetGraph() = %s, want v2", got)
	}
}
