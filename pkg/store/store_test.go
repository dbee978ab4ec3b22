package store

import (
	"context"
	"testing"
	"time"
)

func testStores(t *testing.T) map[string]Store {
	t.Helper()
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return map[string]Store{
		"memory": NewMemoryStore(0),
		"file":   fs,
	}
}

func TestNew(t *testing.T) {
	e := New("sample", "sample.csv", []byte("GS_ID"), 0)
	if !ValidID(e.ID) {
		t.Errorf("New() ID %q is not a UUID", e.ID)
	}
	if got := e.ExpiresAt.Sub(e.CreatedAt); got != DefaultTTL {
		t.Errorf("ttl = %v, want %v", got, DefaultTTL)
	}
	if New("a", "a.csv", nil, time.Hour).ID == e.ID {
		t.Error("New() should generate distinct IDs")
	}
	if m := e.Meta(); m.Size != 5 || m.Name != "sample" {
		t.Errorf("Meta() = %+v", m)
	}
}

func TestValidID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"3f0e5b5c-8a55-4a56-9c55-4f1a9f1d2b3c", true},
		{"../etc/passwd", false},
		{"", false},
		{"not-a-uuid", false},
	}
	for _, tt := range tests {
		if got := ValidID(tt.id); got != tt.want {
			t.Errorf("ValidID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			e := New("sample", "sample.csv", []byte("data"), time.Hour)
			e.RelationsData = []byte("rels")
			e.Records = 3

			if got, err := s.Get(ctx, e.ID); got != nil || err != nil {
				t.Fatalf("Get before Put = %v, %v", got, err)
			}
			if err := s.Put(ctx, e); err != nil {
				t.Fatal(err)
			}
			got, err := s.Get(ctx, e.ID)
			if err != nil || got == nil {
				t.Fatalf("Get() = %v, %v", got, err)
			}
			if string(got.Data) != "data" || string(got.RelationsData) != "rels" || got.Records != 3 {
				t.Errorf("Get() = %+v", got)
			}

			list, err := s.List(ctx)
			if err != nil || len(list) != 1 || list[0].ID != e.ID {
				t.Errorf("List() = %+v, %v", list, err)
			}

			if err := s.Delete(ctx, e.ID); err != nil {
				t.Fatal(err)
			}
			if got, _ := s.Get(ctx, e.ID); got != nil {
				t.Error("Get after Delete should return nil")
			}
			if err := s.Delete(ctx, e.ID); err != nil {
				t.Errorf("Delete of missing entry = %v", err)
			}
		})
	}
}

func TestStoreExpiry(t *testing.T) {
	ctx := context.Background()
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			live := New("live", "live.csv", nil, time.Hour)
			dead := New("dead", "dead.csv", nil, time.Hour)
			dead.ExpiresAt = time.Now().Add(-time.Minute)
			for _, e := range []*Entry{live, dead} {
				if err := s.Put(ctx, e); err != nil {
					t.Fatal(err)
				}
			}

			list, _ := s.List(ctx)
			if len(list) != 1 || list[0].ID != live.ID {
				t.Errorf("List() = %+v, want only the live entry", list)
			}
			n, err := s.Cleanup(ctx)
			if err != nil || n != 1 {
				t.Errorf("Cleanup() = %d, %v; want 1", n, err)
			}
			if got, _ := s.Get(ctx, dead.ID); got != nil {
				t.Error("expired entry should not be returned")
			}
		})
	}
}

func TestMemoryStoreEviction(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(2)

	var ids []string
	for i := range 3 {
		e := New("d", "d.csv", nil, time.Hour)
		e.CreatedAt = e.CreatedAt.Add(time.Duration(i) * time.Second)
		ids = append(ids, e.ID)
		if err := s.Put(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	if got, _ := s.Get(ctx, ids[0]); got != nil {
		t.Error("oldest entry should have been evicted")
	}
	list, _ := s.List(ctx)
	if len(list) != 2 || list[0].ID != ids[2] {
		t.Errorf("List() = %+v, want newest first", list)
	}
}

func TestFileStoreRejectsBadIDs(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Put(context.Background(), &Entry{ID: "../escape"}); err == nil {
		t.Error("Put() with a path-like ID should fail")
	}
	if got, err := s.Get(context.Background(), "../escape"); got != nil || err != nil {
		t.Errorf("Get(bad id) = %v, %v; want nil, nil", got, err)
	}
}
