package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joseph-ayodele/lease-abstractor/internal/leasefields"
)

// DefaultMaxEntries caps how many extractions the store keeps.
const DefaultMaxEntries = 100

// ErrNotFound is returned when an extraction id has no record on disk.
var ErrNotFound = errors.New("extraction not found")

const indexFile = "index.json"

// IndexEntry is the denormalized summary kept in the index for listing and
// search without loading every record.
type IndexEntry struct {
	ID              string `json:"id"`
	Timestamp       string `json:"timestamp"`
	Filename        string `json:"filename"`
	PropertyAddress string `json:"property_address"`
	TenantName      string `json:"tenant_name"`
	LeaseStartDate  string `json:"lease_start_date"`
}

// Entry is a full saved extraction.
type Entry struct {
	ID        string             `json:"id"`
	Timestamp string             `json:"timestamp"`
	Filename  string             `json:"filename"`
	Data      leasefields.Record `json:"data"`
}

type index struct {
	Extractions []IndexEntry `json:"extractions"`
}

// Config for the history store.
type Config struct {
	Dir        string
	MaxEntries int
}

// Store persists extractions on disk: one JSON file per record plus an
// index.json ordered newest first. The oldest records (and their files) are
// evicted once MaxEntries is exceeded. Safe for concurrent use.
type Store struct {
	dir        string
	maxEntries int
	mu         sync.Mutex
	now        func() time.Time
	logger     *slog.Logger
}

func NewStore(cfg Config, logger *slog.Logger) (*Store, error) {
	if cfg.Dir == "" {
		cfg.Dir = "history"
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = DefaultMaxEntries
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	return &Store{
		dir:        cfg.Dir,
		maxEntries: cfg.MaxEntries,
		now:        time.Now,
		logger:     logger,
	}, nil
}

// Save writes the record and prepends it to the index, evicting the oldest
// entries past the cap. Returns the new extraction id.
func (s *Store) Save(filename string, rec leasefields.Record) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	id := s.uniqueID(now)

	entry := Entry{
		ID:        id,
		Timestamp: now.Format("2006-01-02 15:04:05"),
		Filename:  filename,
		Data:      rec,
	}
	if err := writeJSON(s.recordPath(id), entry); err != nil {
		return "", fmt.Errorf("write extraction %s: %w", id, err)
	}

	idx, err := s.readIndex()
	if err != nil {
		return "", err
	}

	idx.Extractions = append([]IndexEntry{{
		ID:              id,
		Timestamp:       entry.Timestamp,
		Filename:        filename,
		PropertyAddress: rec.PropertyAddress,
		TenantName:      rec.TenantName,
		LeaseStartDate:  rec.LeaseStartDate,
	}}, idx.Extractions...)

	if len(idx.Extractions) > s.maxEntries {
		evicted := idx.Extractions[s.maxEntries:]
		idx.Extractions = idx.Extractions[:s.maxEntries]
		for _, old := range evicted {
			if err := os.Remove(s.recordPath(old.ID)); err != nil && !os.IsNotExist(err) {
				s.logger.Warn("history.evict.remove_error", "id", old.ID, "error", err)
			}
		}
		s.logger.Info("history.evict.ok", "evicted", len(evicted), "kept", s.maxEntries)
	}

	if err := s.writeIndex(idx); err != nil {
		return "", err
	}

	s.logger.Info("history.save.ok", "id", id, "filename", filename)
	return id, nil
}

// Load returns one full extraction by id.
func (s *Store) Load(id string) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.recordPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read extraction %s: %w", id, err)
	}
	var entry Entry
	if err := json.Unmarshal(b, &entry); err != nil {
		return nil, fmt.Errorf("decode extraction %s: %w", id, err)
	}
	return &entry, nil
}

// List returns index entries newest first, optionally filtered by a
// case-insensitive substring match over filename, address and tenant name.
func (s *Store) List(search string) ([]IndexEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.readIndex()
	if err != nil {
		return nil, err
	}
	if search == "" {
		return idx.Extractions, nil
	}

	needle := strings.ToLower(search)
	var out []IndexEntry
	for _, e := range idx.Extractions {
		if strings.Contains(strings.ToLower(e.Filename), needle) ||
			strings.Contains(strings.ToLower(e.PropertyAddress), needle) ||
			strings.Contains(strings.ToLower(e.TenantName), needle) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Delete removes one extraction and its index entry. Deleting an unknown id
// is not an error.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.recordPath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove extraction %s: %w", id, err)
	}

	idx, err := s.readIndex()
	if err != nil {
		return err
	}
	kept := idx.Extractions[:0]
	for _, e := range idx.Extractions {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	idx.Extractions = kept
	return s.writeIndex(idx)
}

// Clear removes every record file and resets the index.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("read history dir: %w", err)
	}
	for _, de := range entries {
		name := de.Name()
		if !strings.HasSuffix(name, ".json") || name == indexFile {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
			return fmt.Errorf("remove %s: %w", name, err)
		}
	}
	return s.writeIndex(index{Extractions: []IndexEntry{}})
}

// Count returns the number of saved extractions.
func (s *Store) Count() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.readIndex()
	if err != nil {
		return 0, err
	}
	return len(idx.Extractions), nil
}

func (s *Store) recordPath(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// uniqueID derives the extraction id from the wall clock, suffixing when two
// saves land in the same second.
func (s *Store) uniqueID(now time.Time) string {
	base := now.Format("20060102_150405")
	id := base
	for n := 1; ; n++ {
		if _, err := os.Stat(s.recordPath(id)); os.IsNotExist(err) {
			return id
		}
		id = fmt.Sprintf("%s_%d", base, n)
	}
}

func (s *Store) readIndex() (index, error) {
	var idx index
	b, err := os.ReadFile(filepath.Join(s.dir, indexFile))
	if err != nil {
		if os.IsNotExist(err) {
			return index{Extractions: []IndexEntry{}}, nil
		}
		return idx, fmt.Errorf("read index: %w", err)
	}
	if err := json.Unmarshal(b, &idx); err != nil {
		return idx, fmt.Errorf("decode index: %w", err)
	}
	if idx.Extractions == nil {
		idx.Extractions = []IndexEntry{}
	}
	return idx, nil
}

func (s *Store) writeIndex(idx index) error {
	return writeJSON(filepath.Join(s.dir, indexFile), idx)
}

func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
