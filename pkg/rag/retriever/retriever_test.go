package retriever

import (
	"context"
	"testing"
)

// stubIndex records the k it was asked for and returns canned passages.
type stubIndex struct {
	lastK    int
	passages []string
}

func (s *stubIndex) Add(ctx context.Context, passages []string) error { return nil }

func (s *stubIndex) Query(ctx context.Context, text string, k int) ([]string, error) {
	s.lastK = k
	if k > len(s.passages) {
		k = len(s.passages)
	}
	return s.passages[:k], nil
}

func (s *stubIndex) Count(ctx context.Context) (int, error) { return len(s.passages), nil }

func TestRetrieve_DelegatesToIndex(t *testing.T) {
	idx := &stubIndex{passages: []string{"first", "second", "third"}}
	r := New(idx)

	got, err := r.Retrieve(context.Background(), "query", 3)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if idx.lastK != 3 {
		t.Errorf("index queried with k=%d, want 3", idx.lastK)
	}
	if len(got) != 3 || got[0] != "first" {
		t.Errorf("Retrieve = %v, want passages in index order", got)
	}
}

func TestRetrieve_DefaultTopN(t *testing.T) {
	idx := &stubIndex{passages: []string{"first", "second", "third"}}
	r := New(idx)

	got, err := r.Retrieve(context.Background(), "query", 0)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if idx.lastK != DefaultTopN {
		t.Errorf("index queried with k=%d, want default %d", idx.lastK, DefaultTopN)
	}
	if len(got) != DefaultTopN {
		t.Errorf("got %d passages, want %d", len(got), DefaultTopN)
	}
}

func TestRetrieve_EmptyIndex(t *testing.T) {
	r := New(&stubIndex{})

	got, err := r.Retrieve(context.Background(), "query", 5)
	if err != nil {
		t.Fatalf("Retrieve on empty index: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Retrieve on empty index = %v, want empty", got)
	}
}
