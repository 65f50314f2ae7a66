package history

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joseph-ayodele/lease-abstractor/internal/leasefields"
)

func newTestStore(t *testing.T, maxEntries int) *Store {
	t.Helper()
	s, err := NewStore(Config{Dir: t.TempDir(), MaxEntries: maxEntries}, nil)
	if err != nil {
		t.Fatal(err)
	}
	// Deterministic clock: each call advances one second.
	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	n := 0
	s.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
	return s
}

func record(tenant, address string) leasefields.Record {
	return leasefields.Clean(map[string]any{
		"tenant_name":      tenant,
		"property_address": address,
		"lease_start_date": "2026-09-01",
	})
}

func TestStoreSaveAndLoad(t *testing.T) {
	s := newTestStore(t, 100)

	id, err := s.Save("lease_a.pdf", record("Alice", "12 Oak St"))
	if err != nil {
		t.Fatal(err)
	}
	if id != "20260830_100001" {
		t.Errorf("id = %q", id)
	}

	entry, err := s.Load(id)
	if err != nil {
		t.Fatal(err)
	}
	if entry.Filename != "lease_a.pdf" || entry.Data.TenantName != "Alice" {
		t.Errorf("loaded entry = %+v", entry)
	}
	if entry.Timestamp != "2026-08-30 10:00:01" {
		t.Errorf("timestamp = %q", entry.Timestamp)
	}

	if _, err := s.Load("20990101_000000"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load missing = %v, want ErrNotFound", err)
	}
}

func TestStoreIndexLayout(t *testing.T) {
	s := newTestStore(t, 100)
	if _, err := s.Save("lease_a.pdf", record("Alice", "12 Oak St")); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(filepath.Join(s.dir, "index.json"))
	if err != nil {
		t.Fatal(err)
	}
	var idx struct {
		Extractions []map[string]any `json:"extractions"`
	}
	if err := json.Unmarshal(b, &idx); err != nil {
		t.Fatal(err)
	}
	if len(idx.Extractions) != 1 {
		t.Fatalf("extractions = %d", len(idx.Extractions))
	}
	e := idx.Extractions[0]
	for _, key := range []string{"id", "timestamp", "filename", "property_address", "tenant_name", "lease_start_date"} {
		if _, ok := e[key]; !ok {
			t.Errorf("index entry missing %q", key)
		}
	}
}

func TestStoreListNewestFirst(t *testing.T) {
	s := newTestStore(t, 100)
	first, _ := s.Save("a.pdf", record("Alice", ""))
	second, _ := s.Save("b.pdf", record("Bob", ""))

	list, err := s.List("")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].ID != second || list[1].ID != first {
		t.Errorf("list order = %+v", list)
	}
}

func TestStoreListSearch(t *testing.T) {
	s := newTestStore(t, 100)
	s.Save("riverside.pdf", record("Alice Johnson", "44 River Rd"))
	s.Save("oak.pdf", record("Bob Smith", "12 Oak St"))

	tests := []struct {
		search string
		want   int
	}{
		{"oak", 1},
		{"RIVER", 1},
		{"johnson", 1},
		{"smith", 1},
		{"", 2},
		{"nothing-matches", 0},
	}
	for _, tt := range tests {
		got, err := s.List(tt.search)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != tt.want {
			t.Errorf("List(%q) = %d entries, want %d", tt.search, len(got), tt.want)
		}
	}
}

func TestStoreEviction(t *testing.T) {
	s := newTestStore(t, 3)

	var ids []string
	for _, f := range []string{"a.pdf", "b.pdf", "c.pdf", "d.pdf"} {
		id, err := s.Save(f, record("T", ""))
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, id)
	}

	count, _ := s.Count()
	if count != 3 {
		t.Errorf("Count = %d, want 3", count)
	}

	// Oldest record file is gone, newest three remain.
	if _, err := os.Stat(s.recordPath(ids[0])); !os.IsNotExist(err) {
		t.Error("evicted record file still on disk")
	}
	for _, id := range ids[1:] {
		if _, err := os.Stat(s.recordPath(id)); err != nil {
			t.Errorf("record %s missing: %v", id, err)
		}
	}

	list, _ := s.List("")
	if list[0].ID != ids[3] || list[len(list)-1].ID != ids[1] {
		t.Errorf("unexpected survivors: %+v", list)
	}
}

func TestStoreIDCollision(t *testing.T) {
	s := newTestStore(t, 100)
	fixed := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	a, err := s.Save("a.pdf", record("A", ""))
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.Save("b.pdf", record("B", ""))
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Errorf("colliding saves produced the same id %q", a)
	}
}

func TestStoreDelete(t *testing.T) {
	s := newTestStore(t, 100)
	id, _ := s.Save("a.pdf", record("Alice", ""))

	if err := s.Delete(id); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(id); !errors.Is(err, ErrNotFound) {
		t.Error("deleted record still loadable")
	}
	list, _ := s.List("")
	if len(list) != 0 {
		t.Errorf("index still holds %d entries", len(list))
	}

	// Deleting an unknown id is not an error.
	if err := s.Delete("20990101_000000"); err != nil {
		t.Errorf("Delete unknown id = %v", err)
	}
}

func TestStoreClear(t *testing.T) {
	s := newTestStore(t, 100)
	s.Save("a.pdf", record("Alice", ""))
	s.Save("b.pdf", record("Bob", ""))

	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	count, _ := s.Count()
	if count != 0 {
		t.Errorf("Count after Clear = %d", count)
	}

	files, _ := os.ReadDir(s.dir)
	for _, f := range files {
		if f.Name() != "index.json" {
			t.Errorf("leftover file %s", f.Name())
		}
	}
}
