package session

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/joseph-ayodele/lease-abstractor/internal/leasefields"
)

func entry(filename, tenant string) Entry {
	return Entry{
		Filename:    filename,
		Data:        leasefields.Clean(map[string]any{"tenant_name": tenant}),
		ExtractedAt: time.Now(),
	}
}

func TestSessionAppendAndGet(t *testing.T) {
	s := New()
	s.Append(entry("a.pdf", "Alice"))
	s.Append(entry("b.pdf", "Bob"))

	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}

	got, ok := s.Get("b.pdf")
	if !ok || got.Data.TenantName != "Bob" {
		t.Errorf("Get(b.pdf) = (%v, %v)", got.Data.TenantName, ok)
	}
	if _, ok := s.Get("missing.pdf"); ok {
		t.Error("Get returned ok for missing filename")
	}
}

func TestSessionAppendReplacesSameFilename(t *testing.T) {
	s := New()
	s.Append(entry("a.pdf", "Alice"))
	s.Append(entry("b.pdf", "Bob"))
	s.Append(entry("a.pdf", "Alice Revised"))

	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	got, _ := s.Get("a.pdf")
	if got.Data.TenantName != "Alice Revised" {
		t.Errorf("re-appended entry not replaced: %v", got.Data.TenantName)
	}
	// Replacement keeps the original position.
	if entries := s.Entries(); entries[0].Filename != "a.pdf" {
		t.Errorf("entry order changed: %v", entries[0].Filename)
	}
}

func TestSessionEntriesIsSnapshot(t *testing.T) {
	s := New()
	s.Append(entry("a.pdf", "Alice"))

	snap := s.Entries()
	snap[0].Data.TenantName = "Mallory"

	got, _ := s.Get("a.pdf")
	if got.Data.TenantName != "Alice" {
		t.Error("mutating the snapshot changed the session")
	}
}

func TestSessionUpdateData(t *testing.T) {
	s := New()
	s.Append(entry("a.pdf", "Alice"))

	updated := leasefields.Clean(map[string]any{"tenant_name": "Alice Smith", "monthly_rent": 1200.0})
	if !s.UpdateData("a.pdf", updated) {
		t.Fatal("UpdateData returned false for existing entry")
	}
	got, _ := s.Get("a.pdf")
	if got.Data.TenantName != "Alice Smith" || got.Data.MonthlyRent != 1200 {
		t.Errorf("record not replaced: %+v", got.Data)
	}

	if s.UpdateData("missing.pdf", updated) {
		t.Error("UpdateData returned true for missing entry")
	}
}

func TestSessionReset(t *testing.T) {
	s := New()
	s.Append(entry("a.pdf", "Alice"))
	s.Reset()
	if s.Len() != 0 {
		t.Errorf("Len after Reset = %d", s.Len())
	}
}

func TestSessionConcurrentAccess(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Append(entry(fmt.Sprintf("doc_%d.pdf", i), "Tenant"))
			s.Entries()
			s.Len()
		}(i)
	}
	wg.Wait()
	if s.Len() != 50 {
		t.Errorf("Len = %d, want 50", s.Len())
	}
}
